package auditlog

import (
	"context"

	"gorm.io/gorm"
)

// LoadTrails returns, per entity id, the first insert entry and the most
// recent update entry recorded for table.
func LoadTrails(ctx context.Context, db *gorm.DB, table string, ids []int64) (map[int64]Trail, error) {
	trails := make(map[int64]Trail, len(ids))
	if len(ids) == 0 {
		return trails, nil
	}

	var entries []Entry
	err := db.Session(&gorm.Session{NewDB: true}).
		WithContext(ctx).
		Preload("Actor", selectActor).
		Where("tabela = ?", table).
		Where("referencia IN ?", ids).
		Where("acao IN ?", []string{ActionInsert, ActionUpdate}).
		Order("criacao ASC").
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	for i := range entries {
		e := &entries[i]
		t := trails[e.Reference]
		switch e.Action {
		case ActionInsert:
			if t.Inserted == nil {
				t.Inserted = e
			}
		case ActionUpdate:
			t.Updated = e
		}
		trails[e.Reference] = t
	}
	return trails, nil
}

// InsertionOrder orders rows of table by the timestamp of their insert entry,
// oldest first, falling back to the primary key.
func InsertionOrder(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		inserted := db.Session(&gorm.Session{NewDB: true}).
			Table("system_logs").
			Select("referencia, MIN(criacao) AS criacao").
			Where("tabela = ? AND acao = ?", table, ActionInsert).
			Group("referencia")

		return db.
			Joins("LEFT JOIN (?) AS inserted ON inserted.referencia = "+table+".id", inserted).
			Order("inserted.criacao ASC").
			Order(table + ".id ASC")
	}
}

// Attach loads and sets the trail of every item in place.
func Attach[T any, PT interface {
	*T
	Trailed
}](ctx context.Context, db *gorm.DB, table string, items []T) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]int64, len(items))
	for i := range items {
		ids[i] = PT(&items[i]).EntityID()
	}

	trails, err := LoadTrails(ctx, db, table, ids)
	if err != nil {
		return err
	}
	for i := range items {
		PT(&items[i]).SetTrail(trails[ids[i]])
	}
	return nil
}
