package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marzgate/marzgate/internal/application/payment/dto"
	domainAdmin "github.com/marzgate/marzgate/internal/domain/admin"
	vo "github.com/marzgate/marzgate/internal/domain/payment/valueobjects"
	apperrors "github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

type fakeAdminRepo struct {
	admin *domainAdmin.Admin
}

func (r *fakeAdminRepo) Create(context.Context, *domainAdmin.Admin) error { return nil }
func (r *fakeAdminRepo) Update(context.Context, *domainAdmin.Admin) error { return nil }
func (r *fakeAdminRepo) GetByID(_ context.Context, id uint) (*domainAdmin.Admin, error) {
	if r.admin != nil && r.admin.ID() == id {
		return r.admin, nil
	}
	return nil, apperrors.NewNotFoundError("admin not found")
}
func (r *fakeAdminRepo) GetByUsername(context.Context, string) (*domainAdmin.Admin, error) {
	return nil, apperrors.NewNotFoundError("admin not found")
}
func (r *fakeAdminRepo) GetByEmail(context.Context, string) (*domainAdmin.Admin, error) {
	return nil, apperrors.NewNotFoundError("admin not found")
}
func (r *fakeAdminRepo) List(context.Context, int, int) ([]*domainAdmin.Admin, int64, error) {
	return nil, 0, nil
}
func (r *fakeAdminRepo) Delete(context.Context, uint) error { return nil }

func testAdmin(t *testing.T, id uint) *domainAdmin.Admin {
	t.Helper()
	a, err := domainAdmin.NewAdmin("reseller01", "reseller@example.com", "$2a$12$hash", nil)
	require.NoError(t, err)
	a.SetID(id)
	return a
}

func newChargeUC(txRepo *fakeTxRepo, adminRepo *fakeAdminRepo, gw *fakeGateway) *RequestChargeUseCase {
	return NewRequestChargeUseCase(txRepo, adminRepo, gw, 10000, testRecorder(), logger.NewLogger())
}

func TestRequestCharge_Success(t *testing.T) {
	txRepo := newFakeTxRepo()
	adminRepo := &fakeAdminRepo{admin: testAdmin(t, 2)}
	gw := &fakeGateway{}
	uc := newChargeUC(txRepo, adminRepo, gw)

	resp, err := uc.Execute(context.Background(), 2, dto.ChargeRequest{Amount: 250000})
	require.NoError(t, err)
	assert.Equal(t, "A0000012345", resp.Authority)
	assert.Equal(t, "https://gw/StartPay/A0000012345", resp.PaymentURL)
	// The admin's contact rides along for the gateway receipt.
	assert.Equal(t, "reseller@example.com", gw.requestEmail)

	// The pending row is in place before the payer is redirected.
	tx, err := txRepo.GetPendingByAuthority(context.Background(), "A0000012345")
	require.NoError(t, err)
	assert.Equal(t, resp.TransactionID, tx.ID())
	assert.Equal(t, vo.StatusPending, tx.Status())
	assert.Equal(t, int64(250000), tx.Amount().Amount())
}

func TestRequestCharge_BelowMinimum(t *testing.T) {
	uc := newChargeUC(newFakeTxRepo(), &fakeAdminRepo{admin: testAdmin(t, 2)}, &fakeGateway{})

	_, err := uc.Execute(context.Background(), 2, dto.ChargeRequest{Amount: 500})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestRequestCharge_InactiveAccount(t *testing.T) {
	account := testAdmin(t, 2)
	account.Deactivate()
	uc := newChargeUC(newFakeTxRepo(), &fakeAdminRepo{admin: account}, &fakeGateway{})

	_, err := uc.Execute(context.Background(), 2, dto.ChargeRequest{Amount: 250000})
	require.Error(t, err)
	assert.True(t, apperrors.IsInactiveError(err))
}

func TestRequestCharge_UnknownAdmin(t *testing.T) {
	uc := newChargeUC(newFakeTxRepo(), &fakeAdminRepo{}, &fakeGateway{})

	_, err := uc.Execute(context.Background(), 99, dto.ChargeRequest{Amount: 250000})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}
