package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/marzgate/marzgate/internal/domain/admin"
	"github.com/marzgate/marzgate/internal/domain/superadmin"
	"github.com/marzgate/marzgate/internal/infrastructure/auth"
	"github.com/marzgate/marzgate/internal/shared/authorization"
	"github.com/marzgate/marzgate/internal/shared/constants"
	"github.com/marzgate/marzgate/internal/shared/logger"
	"github.com/marzgate/marzgate/internal/shared/utils"
)

// AdminDirectory resolves admin accounts by id.
type AdminDirectory interface {
	GetByID(ctx context.Context, id uint) (*admin.Admin, error)
}

// SuperAdminDirectory resolves super admin accounts by id.
type SuperAdminDirectory interface {
	GetByID(ctx context.Context, id uint) (*superadmin.SuperAdmin, error)
}

type AuthMiddleware struct {
	jwtService  *auth.JWTService
	admins      AdminDirectory
	superAdmins SuperAdminDirectory
	logger      logger.Interface
}

func NewAuthMiddleware(
	jwtService *auth.JWTService,
	admins AdminDirectory,
	superAdmins SuperAdminDirectory,
	log logger.Interface,
) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		admins:      admins,
		superAdmins: superAdmins,
		logger:      log,
	}
}

// RequireAuth verifies the bearer token, resolves the actor against the
// database and stores the identity in the request context. A valid signature
// alone is not enough: the account must still exist, and admin accounts must
// still be active, so a deactivation takes effect before the token expires.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		if !claims.Role.IsValid() {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid token role")
			c.Abort()
			return
		}

		if !m.resolveActor(c, claims.ActorID, claims.Role) {
			return
		}

		c.Set(constants.ContextKeyActorID, claims.ActorID)
		c.Set(constants.ContextKeyActorRole, string(claims.Role))

		c.Next()
	}
}

func (m *AuthMiddleware) resolveActor(c *gin.Context, actorID uint, role authorization.Role) bool {
	ctx := c.Request.Context()

	switch role {
	case authorization.RoleAdmin:
		account, err := m.admins.GetByID(ctx, actorID)
		if err != nil {
			m.logger.Warnw("token for unknown admin account", "actor_id", actorID, "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "account no longer exists")
			c.Abort()
			return false
		}
		if !account.IsActive() {
			utils.ErrorResponse(c, http.StatusForbidden, "account is deactivated")
			c.Abort()
			return false
		}
	case authorization.RoleSuperAdmin:
		if _, err := m.superAdmins.GetByID(ctx, actorID); err != nil {
			m.logger.Warnw("token for unknown super admin account", "actor_id", actorID, "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "account no longer exists")
			c.Abort()
			return false
		}
	default:
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid token role")
		c.Abort()
		return false
	}

	return true
}

// RequireRole gates a route group to a single role. It must run after
// RequireAuth.
func (m *AuthMiddleware) RequireRole(role authorization.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorRole := c.GetString(constants.ContextKeyActorRole)
		if actorRole != string(role) {
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

// ActorID extracts the authenticated actor id set by RequireAuth.
func ActorID(c *gin.Context) (uint, bool) {
	val, exists := c.Get(constants.ContextKeyActorID)
	if !exists {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}
