package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/marzgate/marzgate/internal/domain/admin"
	"github.com/marzgate/marzgate/internal/domain/payment"
	vo "github.com/marzgate/marzgate/internal/domain/payment/valueobjects"
	"github.com/marzgate/marzgate/internal/domain/plan"
	"github.com/marzgate/marzgate/internal/domain/vpnuser"
	"github.com/marzgate/marzgate/internal/infrastructure/persistence/models"
	apperrors "github.com/marzgate/marzgate/internal/shared/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.SuperAdminModel{},
		&models.AdminModel{},
		&models.PlanModel{},
		&models.VpnUserModel{},
		&models.PaymentTransactionModel{},
		&models.ActionLogModel{},
	))

	return db
}

func seedAdmin(t *testing.T, db *gorm.DB, username, email string) *admin.Admin {
	t.Helper()

	a, err := admin.NewAdmin(username, email, "$2a$10$hash", nil)
	require.NoError(t, err)
	require.NoError(t, NewAdminRepository(db).Create(context.Background(), a))
	return a
}

func seedPlan(t *testing.T, db *gorm.DB, name string) *plan.Plan {
	t.Helper()

	p, err := plan.NewPlan(name, vo.NewMoney(150000, ""), 30, 10)
	require.NoError(t, err)
	require.NoError(t, NewPlanRepository(db).Create(context.Background(), p))
	return p
}

func TestAdminRepository_DuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAdminRepository(db)
	ctx := context.Background()

	seedAdmin(t, db, "reseller1", "r1@example.com")

	dup, err := admin.NewAdmin("reseller1", "other@example.com", "$2a$10$hash", nil)
	require.NoError(t, err)

	err = repo.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflictError(err))
}

func TestAdminRepository_GetByUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAdminRepository(db)
	ctx := context.Background()

	created := seedAdmin(t, db, "reseller1", "r1@example.com")

	got, err := repo.GetByUsername(ctx, "reseller1")
	require.NoError(t, err)
	assert.Equal(t, created.ID(), got.ID())
	assert.Equal(t, "r1@example.com", got.Email())

	_, err = repo.GetByUsername(ctx, "missing")
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestAdminRepository_UpdateKeepsConcurrentCredit(t *testing.T) {
	db := setupTestDB(t)
	adminRepo := NewAdminRepository(db)
	paymentRepo := NewPaymentRepository(db)
	ctx := context.Background()

	a := seedAdmin(t, db, "reseller1", "r1@example.com")

	// Load the entity first, then credit the balance behind its back.
	stale, err := adminRepo.GetByID(ctx, a.ID())
	require.NoError(t, err)

	tr, err := payment.NewTransaction(a.ID(), vo.NewMoney(50000, ""), "zarinpal", "top-up")
	require.NoError(t, err)
	require.NoError(t, tr.AttachAuthority("A0000099999"))
	require.NoError(t, paymentRepo.Create(ctx, tr))
	require.NoError(t, tr.MarkSuccessful("ref-1"))
	require.NoError(t, paymentRepo.MarkSuccessfulAndCredit(ctx, tr))

	// A rename persisted from the stale entity must not touch the balance.
	require.NoError(t, stale.Rename("reseller1b"))
	require.NoError(t, adminRepo.Update(ctx, stale))

	got, err := adminRepo.GetByID(ctx, a.ID())
	require.NoError(t, err)
	assert.Equal(t, "reseller1b", got.Username())
	assert.Equal(t, int64(50000), got.Balance().Amount())
}

func TestAdminRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	a := seedAdmin(t, db, "reseller1", "r1@example.com")
	p := seedPlan(t, db, "Gold 30d")

	u, err := vpnuser.NewVpnUser("customer01", a.ID(), p.ID(), nil, "")
	require.NoError(t, err)
	require.NoError(t, NewVpnUserRepository(db).Create(ctx, u))

	tr, err := payment.NewTransaction(a.ID(), vo.NewMoney(100000, ""), "zarinpal", "top-up")
	require.NoError(t, err)
	require.NoError(t, NewPaymentRepository(db).Create(ctx, tr))

	require.NoError(t, NewAdminRepository(db).Delete(ctx, a.ID()))

	var users, txs int64
	require.NoError(t, db.Model(&models.VpnUserModel{}).Where("admin_id = ?", a.ID()).Count(&users).Error)
	require.NoError(t, db.Model(&models.PaymentTransactionModel{}).Where("admin_id = ?", a.ID()).Count(&txs).Error)
	assert.Zero(t, users)
	assert.Zero(t, txs)
}

func TestPlanRepository_DeleteRestrictedWhileReferenced(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	a := seedAdmin(t, db, "reseller1", "r1@example.com")
	p := seedPlan(t, db, "Gold 30d")

	u, err := vpnuser.NewVpnUser("customer01", a.ID(), p.ID(), nil, "")
	require.NoError(t, err)
	require.NoError(t, NewVpnUserRepository(db).Create(ctx, u))

	err = NewPlanRepository(db).Delete(ctx, p.ID())
	require.Error(t, err)
	assert.True(t, apperrors.IsConflictError(err))

	// After the referencing user is gone the plan can be deleted.
	require.NoError(t, NewVpnUserRepository(db).Delete(ctx, u.ID()))
	require.NoError(t, NewPlanRepository(db).Delete(ctx, p.ID()))
}

func TestVpnUserRepository_OwnershipScope(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVpnUserRepository(db)
	ctx := context.Background()

	a1 := seedAdmin(t, db, "reseller1", "r1@example.com")
	a2 := seedAdmin(t, db, "reseller2", "r2@example.com")
	p := seedPlan(t, db, "Gold 30d")

	u, err := vpnuser.NewVpnUser("customer01", a1.ID(), p.ID(), nil, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByUsernameForAdmin(ctx, "customer01", a1.ID())
	require.NoError(t, err)
	assert.Equal(t, u.ID(), got.ID())

	// The same username is invisible to another admin.
	_, err = repo.GetByUsernameForAdmin(ctx, "customer01", a2.ID())
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestPaymentRepository_MarkSuccessfulAndCredit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	adminRepo := NewAdminRepository(db)
	ctx := context.Background()

	a := seedAdmin(t, db, "reseller1", "r1@example.com")

	tr, err := payment.NewTransaction(a.ID(), vo.NewMoney(250000, ""), "zarinpal", "top-up")
	require.NoError(t, err)
	require.NoError(t, tr.AttachAuthority("A0000012345"))
	require.NoError(t, repo.Create(ctx, tr))

	pending, err := repo.GetPendingByAuthority(ctx, "A0000012345")
	require.NoError(t, err)
	require.NoError(t, pending.MarkSuccessful("ref-9001"))

	require.NoError(t, repo.MarkSuccessfulAndCredit(ctx, pending))

	credited, err := adminRepo.GetByID(ctx, a.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(250000), credited.Balance().Amount())

	// A second finalization attempt loses the conditional update and must
	// not credit again.
	err = repo.MarkSuccessfulAndCredit(ctx, pending)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflictError(err))

	credited, err = adminRepo.GetByID(ctx, a.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(250000), credited.Balance().Amount())
}

func TestPaymentRepository_GetPendingByAuthority_SkipsFinal(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	a := seedAdmin(t, db, "reseller1", "r1@example.com")

	tr, err := payment.NewTransaction(a.ID(), vo.NewMoney(100000, ""), "zarinpal", "top-up")
	require.NoError(t, err)
	require.NoError(t, tr.AttachAuthority("A0000054321"))
	require.NoError(t, repo.Create(ctx, tr))

	require.NoError(t, tr.MarkCanceled())
	require.NoError(t, repo.Update(ctx, tr))

	_, err = repo.GetPendingByAuthority(ctx, "A0000054321")
	assert.True(t, apperrors.IsNotFoundError(err))
}
