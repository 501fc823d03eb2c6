package http

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminUC "github.com/marzgate/marzgate/internal/application/admin/usecases"
	"github.com/marzgate/marzgate/internal/application/audit"
	authUC "github.com/marzgate/marzgate/internal/application/auth/usecases"
	paymentUC "github.com/marzgate/marzgate/internal/application/payment/usecases"
	planUC "github.com/marzgate/marzgate/internal/application/plan/usecases"
	vpnUserUC "github.com/marzgate/marzgate/internal/application/vpnuser/usecases"
	"github.com/marzgate/marzgate/internal/infrastructure/auth"
	"github.com/marzgate/marzgate/internal/infrastructure/config"
	"github.com/marzgate/marzgate/internal/infrastructure/gateway/zarinpal"
	"github.com/marzgate/marzgate/internal/infrastructure/provisioning/marzban"
	"github.com/marzgate/marzgate/internal/infrastructure/ratelimit"
	"github.com/marzgate/marzgate/internal/infrastructure/repository"
	"github.com/marzgate/marzgate/internal/interfaces/http/handlers"
	"github.com/marzgate/marzgate/internal/interfaces/http/middleware"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

// BuildRouter wires repositories, use cases and handlers into a ready Router.
func BuildRouter(
	engine *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	limiter ratelimit.RateLimiter,
	log logger.Interface,
) *Router {
	// Repositories.
	superAdminRepo := repository.NewSuperAdminRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	planRepo := repository.NewPlanRepository(db)
	vpnUserRepo := repository.NewVpnUserRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// Cross-cutting services.
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	recorder := audit.NewRecorder(auditRepo, log)

	// Outbound adapters.
	panel := marzban.NewAdapter(marzban.NewClient(&cfg.Marzban, log))
	paymentGateway := zarinpal.NewAdapter(zarinpal.NewClient(&cfg.Zarinpal, log))

	// Use cases.
	adminLoginUC := authUC.NewAdminLoginUseCase(adminRepo, hasher, jwtService, recorder, log)
	superAdminLoginUC := authUC.NewSuperAdminLoginUseCase(superAdminRepo, hasher, jwtService, recorder, log)

	createAdminUC := adminUC.NewCreateAdminUseCase(adminRepo, hasher, recorder, log)
	updateAdminUC := adminUC.NewUpdateAdminUseCase(adminRepo, hasher, recorder, log)
	deleteAdminUC := adminUC.NewDeleteAdminUseCase(adminRepo, recorder, log)
	getAdminUC := adminUC.NewGetAdminUseCase(adminRepo, log)
	listAdminsUC := adminUC.NewListAdminsUseCase(adminRepo, log)

	createPlanUC := planUC.NewCreatePlanUseCase(planRepo, recorder, log)
	updatePlanUC := planUC.NewUpdatePlanUseCase(planRepo, recorder, log)
	deletePlanUC := planUC.NewDeletePlanUseCase(planRepo, recorder, log)
	getPlanUC := planUC.NewGetPlanUseCase(planRepo, log)
	listPlansUC := planUC.NewListPlansUseCase(planRepo, log)

	createVpnUserUC := vpnUserUC.NewCreateVpnUserUseCase(vpnUserRepo, planRepo, panel, recorder, log)
	deleteVpnUserUC := vpnUserUC.NewDeleteVpnUserUseCase(vpnUserRepo, panel, recorder, log)
	getDetailUC := vpnUserUC.NewGetVpnUserDetailUseCase(vpnUserRepo, panel, log)
	listVpnUsersUC := vpnUserUC.NewListVpnUsersUseCase(vpnUserRepo, log)
	resetTrafficUC := vpnUserUC.NewResetVpnUserTrafficUseCase(vpnUserRepo, panel, recorder, log)
	changePlanUC := vpnUserUC.NewChangeVpnUserPlanUseCase(vpnUserRepo, planRepo, panel, recorder, log)
	listPanelUsersUC := vpnUserUC.NewListPanelAccountsUseCase(vpnUserRepo, panel, log)

	listActionsUC := audit.NewListActionsUseCase(auditRepo, log)

	requestChargeUC := paymentUC.NewRequestChargeUseCase(paymentRepo, adminRepo, paymentGateway, cfg.Zarinpal.MinAmount, recorder, log)
	handleCallbackUC := paymentUC.NewHandleCallbackUseCase(paymentRepo, paymentGateway, cfg.Server.FrontendURL, recorder, log)
	listTransactionsUC := paymentUC.NewListTransactionsUseCase(paymentRepo, log)

	// Handlers.
	authHandler := handlers.NewAuthHandler(adminLoginUC, superAdminLoginUC)
	adminHandler := handlers.NewAdminHandler(createAdminUC, updateAdminUC, deleteAdminUC, getAdminUC, listAdminsUC)
	planHandler := handlers.NewPlanHandler(createPlanUC, updatePlanUC, deletePlanUC, getPlanUC, listPlansUC)
	vpnUserHandler := handlers.NewVpnUserHandler(createVpnUserUC, deleteVpnUserUC, getDetailUC, listVpnUsersUC, resetTrafficUC, changePlanUC, listPanelUsersUC)
	paymentHandler := handlers.NewPaymentHandler(requestChargeUC, handleCallbackUC, listTransactionsUC)
	auditLogHandler := handlers.NewAuditLogHandler(listActionsUC)

	authMiddleware := middleware.NewAuthMiddleware(jwtService, adminRepo, superAdminRepo, log)

	return NewRouter(
		engine,
		authHandler,
		adminHandler,
		planHandler,
		vpnUserHandler,
		paymentHandler,
		auditLogHandler,
		authMiddleware,
		limiter,
		log,
	)
}
