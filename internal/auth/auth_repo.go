package auth

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock

type Repository interface {
	FindActiveByEmail(ctx context.Context, email string) (*Account, error)
	FindActiveByID(ctx context.Context, id int64) (*Account, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindActiveByEmail(ctx context.Context, email string) (*Account, error) {
	var account Account
	err := r.db.WithContext(ctx).
		Where("email = ? AND desativado = 0", email).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *repository) FindActiveByID(ctx context.Context, id int64) (*Account, error) {
	var account Account
	err := r.db.WithContext(ctx).
		Where("id = ? AND desativado = 0", id).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}
