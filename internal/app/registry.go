package app

import (
	"go-hr-admin/internal/auditlog"
	"go-hr-admin/internal/auth"
	"go-hr-admin/internal/branch"
	"go-hr-admin/internal/config"
	"go-hr-admin/internal/employee"
	"go-hr-admin/internal/feedback"
	"go-hr-admin/internal/messaging/kafka"
	"go-hr-admin/internal/middleware"
	"go-hr-admin/internal/permission"
	"go-hr-admin/internal/rbac"
	"go-hr-admin/internal/rbac/infra"
	"go-hr-admin/internal/role"
	"go-hr-admin/internal/shared/optioncache"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// protectedResources are the resource names RBAC policies are generated for.
var protectedResources = []string{
	employee.ResourceName,
	permission.ResourceName,
	role.ResourceName,
	branch.ResourceName,
	feedback.ResourceName,
	auditlog.ResourceName,
}

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	auditRepo := auditlog.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	rbacRepo := rbac.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	permissionRepo := permission.NewRepository(gormDB)
	roleRepo := role.NewRepository(gormDB)
	branchRepo := branch.NewRepository(gormDB)
	assignmentRepo := branch.NewAssignmentRepository(gormDB)
	feedbackRepo := feedback.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(protectedResources)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)

	// --- Option caches ---
	permissionOptions := optioncache.New(rdb, permission.OptionsKey, optioncache.DefaultTTL, logger)
	roleOptions := optioncache.New(rdb, role.OptionsKey, optioncache.DefaultTTL, logger)

	// --- Services ---
	tokens := auth.NewTokenIssuer(cfg.Auth)
	authService := auth.NewService(authRepo, tokens, rbacService, logger)
	auditService := auditlog.NewService(auditRepo, logger)
	employeeService := employee.NewServiceWithOutbox(gormDB, employeeRepo, auditRepo, outboxRepo, logger)
	permissionService := permission.NewService(gormDB, permissionRepo, auditRepo, permissionOptions, logger)
	roleService := role.NewService(gormDB, roleRepo, auditRepo, roleOptions, logger)
	branchService := branch.NewService(gormDB, branchRepo, auditRepo, logger)
	assignmentService := branch.NewAssignmentService(gormDB, assignmentRepo, auditRepo, logger)
	feedbackService := feedback.NewService(gormDB, feedbackRepo, auditRepo, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.IsProduction(), logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)
	auditHandler := auditlog.NewHandler(auditService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	permissionHandler := permission.NewHandler(permissionService, logger)
	roleHandler := role.NewHandler(roleService, logger)
	branchHandler := branch.NewHandler(branchService, assignmentService, logger)
	feedbackHandler := feedback.NewHandler(feedbackService, logger)

	// --- Routes Registration ---
	public := router.Group("")
	protected := router.Group("",
		middleware.AuthMiddleware(tokens),
		middleware.ContextLogger(logger),
		middleware.Idempotency(rdb),
	)
	{
		auth.RegisterRoutes(public, protected, authHandler)
		rbac.RegisterRoutes(protected, rbacHandler)
		auditlog.RegisterRoutes(protected, auditHandler, rbacService)
		employee.RegisterRoutes(protected, employeeHandler, rbacService)
		permission.RegisterRoutes(protected, permissionHandler, rbacService)
		role.RegisterRoutes(protected, roleHandler, rbacService)
		branch.RegisterRoutes(protected, branchHandler, rbacService)
		feedback.RegisterRoutes(protected, feedbackHandler, rbacService)
	}

	return nil
}
