package usecases

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marzgate/marzgate/internal/application/audit"
	"github.com/marzgate/marzgate/internal/application/payment/gateway"
	"github.com/marzgate/marzgate/internal/domain/auditlog"
	domainPayment "github.com/marzgate/marzgate/internal/domain/payment"
	vo "github.com/marzgate/marzgate/internal/domain/payment/valueobjects"
	apperrors "github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

// fakeTxRepo is an in-memory payment.Repository tracking credits.
type fakeTxRepo struct {
	mu          sync.Mutex
	nextID      uint
	txs         map[uint]*domainPayment.Transaction
	credits     map[uint]int64
	conflictFin bool
}

func newFakeTxRepo() *fakeTxRepo {
	return &fakeTxRepo{
		txs:     make(map[uint]*domainPayment.Transaction),
		credits: make(map[uint]int64),
	}
}

func (r *fakeTxRepo) Create(_ context.Context, tx *domainPayment.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	tx.SetID(r.nextID)
	r.txs[r.nextID] = tx
	return nil
}

func (r *fakeTxRepo) Update(_ context.Context, tx *domainPayment.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs[tx.ID()] = tx
	return nil
}

func (r *fakeTxRepo) GetByID(_ context.Context, id uint) (*domainPayment.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tx, ok := r.txs[id]; ok {
		return tx, nil
	}
	return nil, apperrors.NewNotFoundError("transaction not found")
}

func (r *fakeTxRepo) GetPendingByAuthority(_ context.Context, authority string) (*domainPayment.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tx := range r.txs {
		if tx.Authority() != nil && *tx.Authority() == authority && tx.Status() == vo.StatusPending {
			return tx, nil
		}
	}
	return nil, apperrors.NewNotFoundError("pending transaction not found")
}

func (r *fakeTxRepo) MarkSuccessfulAndCredit(_ context.Context, tx *domainPayment.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conflictFin {
		return apperrors.NewConflictError("transaction is no longer pending")
	}
	r.txs[tx.ID()] = tx
	r.credits[tx.AdminID()] += tx.Amount().Amount()
	return nil
}

func (r *fakeTxRepo) ListByAdminID(_ context.Context, adminID uint, _, _ int) ([]*domainPayment.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domainPayment.Transaction
	for _, tx := range r.txs {
		if tx.AdminID() == adminID {
			out = append(out, tx)
		}
	}
	return out, int64(len(out)), nil
}

// fakeGateway scripts verification outcomes.
type fakeGateway struct {
	verifyResult *gateway.VerifyResult
	verifyErr    error
	verifyCalls  int
	requestEmail string
}

func (g *fakeGateway) RequestPayment(_ context.Context, _ int64, _, email string) (*gateway.ChargeResult, error) {
	g.requestEmail = email
	return &gateway.ChargeResult{Authority: "A0000012345", PaymentURL: "https://gw/StartPay/A0000012345"}, nil
}

func (g *fakeGateway) VerifyPayment(context.Context, int64, string) (*gateway.VerifyResult, error) {
	g.verifyCalls++
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	return g.verifyResult, nil
}

type fakeAuditRepo struct{}

func (fakeAuditRepo) Create(context.Context, *auditlog.Entry) error { return nil }
func (fakeAuditRepo) ListByAdminID(context.Context, uint, int, int) ([]*auditlog.Entry, int64, error) {
	return nil, 0, nil
}
func (fakeAuditRepo) List(context.Context, int, int) ([]*auditlog.Entry, int64, error) {
	return nil, 0, nil
}

func testRecorder() *audit.Recorder {
	return audit.NewRecorder(fakeAuditRepo{}, logger.NewLogger())
}

func seedPending(t *testing.T, repo *fakeTxRepo, adminID uint, amount int64, authority string) *domainPayment.Transaction {
	t.Helper()
	tx, err := domainPayment.NewTransaction(adminID, vo.NewMoney(amount, ""), "zarinpal", "top-up")
	require.NoError(t, err)
	require.NoError(t, tx.AttachAuthority(authority))
	require.NoError(t, repo.Create(context.Background(), tx))
	return tx
}

func newCallbackUC(repo *fakeTxRepo, gw *fakeGateway) *HandleCallbackUseCase {
	return NewHandleCallbackUseCase(repo, gw, "https://panel.example.com", testRecorder(), logger.NewLogger())
}

func TestHandleCallback_VerifiedCreditsOnce(t *testing.T) {
	repo := newFakeTxRepo()
	tx := seedPending(t, repo, 2, 250000, "A0000012345")

	gw := &fakeGateway{verifyResult: &gateway.VerifyResult{Verified: true, Code: 100, RefID: "9001"}}
	uc := newCallbackUC(repo, gw)

	outcome := uc.Execute(context.Background(), "A0000012345", "OK")
	assert.True(t, outcome.Success)
	assert.Equal(t, "success", outcome.Status)
	assert.Equal(t, "9001", outcome.RefID)
	assert.Contains(t, outcome.RedirectURL, "status=success")
	assert.Equal(t, int64(250000), repo.credits[2])
	assert.Equal(t, vo.StatusSuccessful, repo.txs[tx.ID()].Status())

	// A replayed callback finds no pending row and cannot credit again.
	replay := uc.Execute(context.Background(), "A0000012345", "OK")
	assert.False(t, replay.Success)
	assert.Equal(t, "invalid", replay.Status)
	assert.Equal(t, int64(250000), repo.credits[2])
	assert.Equal(t, 1, gw.verifyCalls)
}

func TestHandleCallback_UnknownAuthority(t *testing.T) {
	repo := newFakeTxRepo()
	gw := &fakeGateway{}
	uc := newCallbackUC(repo, gw)

	outcome := uc.Execute(context.Background(), "A-unknown", "OK")
	assert.False(t, outcome.Success)
	assert.Equal(t, "invalid", outcome.Status)
	assert.Zero(t, gw.verifyCalls)
}

func TestHandleCallback_CanceledByPayer(t *testing.T) {
	repo := newFakeTxRepo()
	tx := seedPending(t, repo, 2, 250000, "A0000012345")

	gw := &fakeGateway{}
	uc := newCallbackUC(repo, gw)

	outcome := uc.Execute(context.Background(), "A0000012345", "NOK")
	assert.Equal(t, "canceled", outcome.Status)
	assert.Equal(t, vo.StatusCanceled, repo.txs[tx.ID()].Status())
	assert.Zero(t, gw.verifyCalls)
	assert.Zero(t, repo.credits[2])
}

func TestHandleCallback_VerifyErrorSettlesFailed(t *testing.T) {
	repo := newFakeTxRepo()
	tx := seedPending(t, repo, 2, 250000, "A0000012345")

	gw := &fakeGateway{verifyErr: apperrors.NewUpstreamError("gateway down", 502)}
	uc := newCallbackUC(repo, gw)

	outcome := uc.Execute(context.Background(), "A0000012345", "OK")
	assert.Equal(t, "failed", outcome.Status)
	// No row may stay PENDING behind a processed callback.
	assert.Equal(t, vo.StatusFailed, repo.txs[tx.ID()].Status())
	assert.Zero(t, repo.credits[2])
}

func TestHandleCallback_DeclinedVerification(t *testing.T) {
	repo := newFakeTxRepo()
	tx := seedPending(t, repo, 2, 250000, "A0000012345")

	gw := &fakeGateway{verifyResult: &gateway.VerifyResult{Verified: false, Code: -53}}
	uc := newCallbackUC(repo, gw)

	outcome := uc.Execute(context.Background(), "A0000012345", "OK")
	assert.Equal(t, "failed", outcome.Status)
	assert.Equal(t, vo.StatusFailed, repo.txs[tx.ID()].Status())
	assert.Zero(t, repo.credits[2])
}

func TestHandleCallback_LostSettleRaceStillSuccess(t *testing.T) {
	repo := newFakeTxRepo()
	seedPending(t, repo, 2, 250000, "A0000012345")
	repo.conflictFin = true

	gw := &fakeGateway{verifyResult: &gateway.VerifyResult{Verified: true, Code: 101, RefID: "9001"}}
	uc := newCallbackUC(repo, gw)

	outcome := uc.Execute(context.Background(), "A0000012345", "OK")
	assert.True(t, outcome.Success)
	// The concurrent winner already credited; this caller must not.
	assert.Zero(t, repo.credits[2])
}

func TestHandleCallback_MissingAuthority(t *testing.T) {
	uc := newCallbackUC(newFakeTxRepo(), &fakeGateway{})

	outcome := uc.Execute(context.Background(), "", "OK")
	assert.Equal(t, "invalid", outcome.Status)
}
