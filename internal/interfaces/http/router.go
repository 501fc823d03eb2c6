package http

import (
	"github.com/gin-gonic/gin"

	"github.com/marzgate/marzgate/internal/infrastructure/config"
	"github.com/marzgate/marzgate/internal/infrastructure/ratelimit"
	"github.com/marzgate/marzgate/internal/interfaces/http/handlers"
	"github.com/marzgate/marzgate/internal/interfaces/http/middleware"
	"github.com/marzgate/marzgate/internal/shared/authorization"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

// Router owns the gin engine and the handler set wired against it.
type Router struct {
	engine          *gin.Engine
	authHandler     *handlers.AuthHandler
	adminHandler    *handlers.AdminHandler
	planHandler     *handlers.PlanHandler
	vpnUserHandler  *handlers.VpnUserHandler
	paymentHandler  *handlers.PaymentHandler
	auditLogHandler *handlers.AuditLogHandler
	authMiddleware  *middleware.AuthMiddleware
	rateLimiter     ratelimit.RateLimiter
	logger          logger.Interface
}

func NewRouter(
	engine *gin.Engine,
	authHandler *handlers.AuthHandler,
	adminHandler *handlers.AdminHandler,
	planHandler *handlers.PlanHandler,
	vpnUserHandler *handlers.VpnUserHandler,
	paymentHandler *handlers.PaymentHandler,
	auditLogHandler *handlers.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter ratelimit.RateLimiter,
	log logger.Interface,
) *Router {
	return &Router{
		engine:          engine,
		authHandler:     authHandler,
		adminHandler:    adminHandler,
		planHandler:     planHandler,
		vpnUserHandler:  vpnUserHandler,
		paymentHandler:  paymentHandler,
		auditLogHandler: auditLogHandler,
		authMiddleware:  authMiddleware,
		rateLimiter:     rateLimiter,
		logger:          log,
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes(cfg *config.Config) {
	RegisterCustomValidators()

	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestLogger(r.logger))
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api/v1")

	r.setupAuthRoutes(api)
	r.setupSuperAdminRoutes(api)
	r.setupAdminRoutes(api)
	r.setupPublicPaymentRoutes(api)
}

func (r *Router) setupAuthRoutes(api *gin.RouterGroup) {
	loginLimit := middleware.RateLimit(r.rateLimiter, "login", ratelimit.RateLimitConfig{
		RequestsPerMinute: 10,
		RequestsPerHour:   60,
	}, r.logger)

	auth := api.Group("/auth")
	{
		auth.POST("/admin/login", loginLimit, r.authHandler.AdminLogin)
		auth.POST("/superadmin/login", loginLimit, r.authHandler.SuperAdminLogin)
	}
}

func (r *Router) setupSuperAdminRoutes(api *gin.RouterGroup) {
	sa := api.Group("/superadmin")
	sa.Use(r.authMiddleware.RequireAuth(), r.authMiddleware.RequireRole(authorization.RoleSuperAdmin))
	{
		sa.POST("/admins", r.adminHandler.CreateAdmin)
		sa.GET("/admins", r.adminHandler.ListAdmins)
		sa.GET("/admins/:id", r.adminHandler.GetAdmin)
		sa.PATCH("/admins/:id", r.adminHandler.UpdateAdmin)
		sa.DELETE("/admins/:id", r.adminHandler.DeleteAdmin)

		sa.POST("/plans", r.planHandler.CreatePlan)
		sa.GET("/plans", r.planHandler.ListPlans)
		sa.GET("/plans/:id", r.planHandler.GetPlan)
		sa.PATCH("/plans/:id", r.planHandler.UpdatePlan)
		sa.DELETE("/plans/:id", r.planHandler.DeletePlan)

		sa.GET("/action-logs", r.auditLogHandler.ListActionLogs)

		sa.GET("/panel-users", r.vpnUserHandler.ListPanelAccounts)
	}
}

func (r *Router) setupAdminRoutes(api *gin.RouterGroup) {
	chargeLimit := middleware.RateLimit(r.rateLimiter, "charge", ratelimit.RateLimitConfig{
		RequestsPerMinute: 10,
		RequestsPerHour:   100,
	}, r.logger)

	admin := api.Group("/admin")
	admin.Use(r.authMiddleware.RequireAuth(), r.authMiddleware.RequireRole(authorization.RoleAdmin))
	{
		admin.GET("/plans", r.planHandler.ListActivePlans)

		admin.POST("/vpn-users", r.vpnUserHandler.CreateVpnUser)
		admin.GET("/vpn-users", r.vpnUserHandler.ListVpnUsers)
		admin.GET("/vpn-users/:username", r.vpnUserHandler.GetVpnUserDetail)
		admin.PATCH("/vpn-users/:username", r.vpnUserHandler.ChangeVpnUserPlan)
		admin.DELETE("/vpn-users/:username", r.vpnUserHandler.DeleteVpnUser)
		admin.POST("/vpn-users/:username/reset-traffic", r.vpnUserHandler.ResetVpnUserTraffic)

		admin.POST("/payment/charge", chargeLimit, r.paymentHandler.RequestCharge)
		admin.GET("/payment/transactions", r.paymentHandler.ListTransactions)
	}
}

// setupPublicPaymentRoutes registers the gateway browser callback. It is
// unauthenticated: the payer arrives from the gateway, not from the panel.
func (r *Router) setupPublicPaymentRoutes(api *gin.RouterGroup) {
	api.GET("/payment/callback", r.paymentHandler.HandleCallback)
}
