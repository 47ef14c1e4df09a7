package router

import (
	"time"

	"github.com/ezazee/dapur-gempita-sub000/internal/config"
	"github.com/ezazee/dapur-gempita-sub000/internal/handler"
	"github.com/ezazee/dapur-gempita-sub000/internal/middleware"
	"github.com/ezazee/dapur-gempita-sub000/internal/model"
	"github.com/ezazee/dapur-gempita-sub000/internal/repository"
	"github.com/ezazee/dapur-gempita-sub000/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	productionRepo := repository.NewProductionRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	ledgerSvc := service.NewLedgerService(ingredientRepo, movementRepo)
	auditSvc := service.NewAuditService(auditRepo)
	ingredientSvc := service.NewIngredientService(ingredientRepo, rdb,
		time.Duration(cfg.LowStockCacheTTLSeconds)*time.Second)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, auditSvc)
	receiptSvc := service.NewReceiptService(receiptRepo, purchaseRepo, ledgerSvc)
	productionSvc := service.NewProductionService(productionRepo, ledgerSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	ingredientsH := handler.NewIngredientsHandler(ingredientSvc, ledgerSvc)
	purchasesH := handler.NewPurchasesHandler(purchaseSvc)
	receiptsH := handler.NewReceiptsHandler(receiptSvc)
	productionsH := handler.NewProductionsHandler(productionSvc)
	auditH := handler.NewAuditHandler(auditSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole(model.RoleSuperAdmin, model.RolePembeli, model.RolePenerima, model.RoleChef)
	v1 := r.Group("/v1", jwtMW)
	{
		// Ingredient registry — reads for everyone, writes SUPER_ADMIN only
		v1.GET("/ingredients", anyRole, ingredientsH.List)
		v1.GET("/ingredients/alerts", anyRole, ingredientsH.LowStockAlerts)
		v1.GET("/ingredients/:id", anyRole, ingredientsH.Get)
		v1.GET("/ingredients/:id/movements", anyRole, ingredientsH.Movements)
		v1.GET("/movements", anyRole, ingredientsH.AllMovements)
		ing := v1.Group("/ingredients", middleware.RequireRole(model.RoleSuperAdmin))
		{
			ing.POST("", ingredientsH.Create)
			ing.PUT("/:id", ingredientsH.Update)
			ing.POST("/:id/adjust", ingredientsH.AdjustStock)
		}

		// Procurement — PEMBELI plans purchases, stock untouched until receipt
		v1.GET("/purchases", anyRole, purchasesH.List)
		v1.GET("/purchases/:id", anyRole, purchasesH.Get)
		buy := v1.Group("/purchases", middleware.RequireRole(model.RolePembeli, model.RoleSuperAdmin))
		{
			buy.POST("", purchasesH.Create)
			buy.PUT("/:id", purchasesH.Amend)
			buy.DELETE("/:id", purchasesH.Delete)
		}

		// Receiving — PENERIMA confirms deliveries and credits stock
		v1.GET("/receipts", anyRole, receiptsH.List)
		v1.GET("/receipts/:id", anyRole, receiptsH.Get)
		v1.POST("/receipts", middleware.RequireRole(model.RolePenerima, model.RoleSuperAdmin), receiptsH.Receive)

		// Production — CHEF records cooking events and debits stock
		v1.GET("/productions", anyRole, productionsH.List)
		v1.GET("/productions/:id", anyRole, productionsH.Get)
		v1.POST("/productions", middleware.RequireRole(model.RoleChef, model.RoleSuperAdmin), productionsH.Produce)

		// Audit trail and user administration — SUPER_ADMIN only
		v1.GET("/audit-logs", middleware.RequireRole(model.RoleSuperAdmin), auditH.List)

		users := v1.Group("/users", middleware.RequireRole(model.RoleSuperAdmin))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
