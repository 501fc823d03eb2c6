package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marzgate/marzgate/internal/domain/admin"
	"github.com/marzgate/marzgate/internal/domain/superadmin"
	"github.com/marzgate/marzgate/internal/infrastructure/auth"
	"github.com/marzgate/marzgate/internal/shared/authorization"
	apperrors "github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

type fakeAdminDirectory struct {
	admins map[uint]*admin.Admin
}

func (d *fakeAdminDirectory) GetByID(_ context.Context, id uint) (*admin.Admin, error) {
	if a, ok := d.admins[id]; ok {
		return a, nil
	}
	return nil, apperrors.NewNotFoundError("admin not found")
}

type fakeSuperAdminDirectory struct {
	ids map[uint]*superadmin.SuperAdmin
}

func (d *fakeSuperAdminDirectory) GetByID(_ context.Context, id uint) (*superadmin.SuperAdmin, error) {
	if s, ok := d.ids[id]; ok {
		return s, nil
	}
	return nil, apperrors.NewNotFoundError("super admin not found")
}

func directoryAdmin(t *testing.T, id uint, active bool) *admin.Admin {
	t.Helper()
	a, err := admin.NewAdmin("reseller01", "reseller@example.com", "$2a$12$hash", nil)
	require.NoError(t, err)
	a.SetID(id)
	if !active {
		a.Deactivate()
	}
	return a
}

func setupAuthTest(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService("test-secret", 60)

	root, err := superadmin.NewSuperAdmin("root", nil, "$2a$12$hash")
	require.NoError(t, err)
	root.SetID(1)

	admins := &fakeAdminDirectory{admins: map[uint]*admin.Admin{
		7: directoryAdmin(t, 7, true),
		8: directoryAdmin(t, 8, false),
	}}
	superAdmins := &fakeSuperAdminDirectory{ids: map[uint]*superadmin.SuperAdmin{1: root}}

	m := NewAuthMiddleware(jwtService, admins, superAdmins, logger.NewLogger())

	engine := gin.New()
	engine.GET("/admin-only",
		m.RequireAuth(),
		m.RequireRole(authorization.RoleAdmin),
		func(c *gin.Context) {
			id, _ := ActorID(c)
			c.JSON(http.StatusOK, gin.H{"actor_id": id})
		})

	return engine, jwtService
}

func doRequest(engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_MissingToken(t *testing.T) {
	engine, _ := setupAuthTest(t)

	w := doRequest(engine, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	engine, _ := setupAuthTest(t)

	w := doRequest(engine, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	engine, _ := setupAuthTest(t)

	w := doRequest(engine, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_TokenFromAnotherSecret(t *testing.T) {
	engine, _ := setupAuthTest(t)

	other := auth.NewJWTService("different-secret", 60)
	token, _, err := other.Generate(7, authorization.RoleAdmin)
	require.NoError(t, err)

	w := doRequest(engine, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_DeletedAccount(t *testing.T) {
	engine, jwtService := setupAuthTest(t)

	// A syntactically valid token is not enough once the account is gone.
	token, _, err := jwtService.Generate(42, authorization.RoleAdmin)
	require.NoError(t, err)

	w := doRequest(engine, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_DeactivatedAccount(t *testing.T) {
	engine, jwtService := setupAuthTest(t)

	token, _, err := jwtService.Generate(8, authorization.RoleAdmin)
	require.NoError(t, err)

	w := doRequest(engine, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAuth_DeletedSuperAdmin(t *testing.T) {
	engine, jwtService := setupAuthTest(t)

	token, _, err := jwtService.Generate(99, authorization.RoleSuperAdmin)
	require.NoError(t, err)

	w := doRequest(engine, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_WrongRole(t *testing.T) {
	engine, jwtService := setupAuthTest(t)

	token, _, err := jwtService.Generate(1, authorization.RoleSuperAdmin)
	require.NoError(t, err)

	w := doRequest(engine, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	engine, jwtService := setupAuthTest(t)

	token, _, err := jwtService.Generate(7, authorization.RoleAdmin)
	require.NoError(t, err)

	w := doRequest(engine, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"actor_id":7`)
}
