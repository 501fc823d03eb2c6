package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marzgate/marzgate/internal/application/audit"
	"github.com/marzgate/marzgate/internal/application/vpnuser/dto"
	"github.com/marzgate/marzgate/internal/application/vpnuser/provisioning"
	"github.com/marzgate/marzgate/internal/domain/auditlog"
	vo "github.com/marzgate/marzgate/internal/domain/payment/valueobjects"
	domainPlan "github.com/marzgate/marzgate/internal/domain/plan"
	domainVpnUser "github.com/marzgate/marzgate/internal/domain/vpnuser"
	apperrors "github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

// fakeVpnUserRepo is an in-memory vpnuser.Repository.
type fakeVpnUserRepo struct {
	mu      sync.Mutex
	nextID  uint
	users   map[uint]*domainVpnUser.VpnUser
	failOnC bool
}

func newFakeVpnUserRepo() *fakeVpnUserRepo {
	return &fakeVpnUserRepo{users: make(map[uint]*domainVpnUser.VpnUser)}
}

func (r *fakeVpnUserRepo) Create(_ context.Context, u *domainVpnUser.VpnUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOnC {
		return apperrors.NewInternalError("database unavailable")
	}
	r.nextID++
	u.SetID(r.nextID)
	r.users[r.nextID] = u
	return nil
}

func (r *fakeVpnUserRepo) Update(_ context.Context, u *domainVpnUser.VpnUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID()] = u
	return nil
}

func (r *fakeVpnUserRepo) GetByID(_ context.Context, id uint) (*domainVpnUser.VpnUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.NewNotFoundError("vpn user not found")
}

func (r *fakeVpnUserRepo) GetByUsername(_ context.Context, username string) (*domainVpnUser.VpnUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username() == username {
			return u, nil
		}
	}
	return nil, apperrors.NewNotFoundError("vpn user not found")
}

func (r *fakeVpnUserRepo) GetByUsernameForAdmin(_ context.Context, username string, adminID uint) (*domainVpnUser.VpnUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username() == username && u.AdminID() == adminID {
			return u, nil
		}
	}
	return nil, apperrors.NewNotFoundError("vpn user not found")
}

func (r *fakeVpnUserRepo) ListByAdminID(_ context.Context, adminID uint, _, _ int) ([]*domainVpnUser.VpnUser, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domainVpnUser.VpnUser
	for _, u := range r.users {
		if u.AdminID() == adminID {
			out = append(out, u)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeVpnUserRepo) CountByPlanID(_ context.Context, planID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.PlanID() == planID {
			n++
		}
	}
	return n, nil
}

func (r *fakeVpnUserRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperrors.NewNotFoundError("vpn user not found")
	}
	delete(r.users, id)
	return nil
}

// fakePlanRepo serves a single plan.
type fakePlanRepo struct {
	plan *domainPlan.Plan
}

func (r *fakePlanRepo) Create(context.Context, *domainPlan.Plan) error { return nil }
func (r *fakePlanRepo) Update(context.Context, *domainPlan.Plan) error { return nil }

func (r *fakePlanRepo) GetByID(_ context.Context, id uint) (*domainPlan.Plan, error) {
	if r.plan != nil && r.plan.ID() == id {
		return r.plan, nil
	}
	return nil, apperrors.NewNotFoundError("plan not found")
}

func (r *fakePlanRepo) GetByName(context.Context, string) (*domainPlan.Plan, error) {
	return nil, apperrors.NewNotFoundError("plan not found")
}

func (r *fakePlanRepo) List(context.Context, int, int) ([]*domainPlan.Plan, int64, error) {
	return nil, 0, nil
}

func (r *fakePlanRepo) ListActive(context.Context) ([]*domainPlan.Plan, error) { return nil, nil }
func (r *fakePlanRepo) Delete(context.Context, uint) error                     { return nil }

// fakePanel scripts the provisioning behavior.
type fakePanel struct {
	mu          sync.Mutex
	createErr   error
	getErr      error
	modifyErr   error
	listErr     error
	deleteErr   error
	resetErr    error
	created     []string
	modified    []provisioning.ProvisionRequest
	deleted     []string
	resets      []string
	renameOnCre string
	remote      *provisioning.RemoteAccount
	listing     []provisioning.RemoteAccount
	listTotal   int64
}

func (p *fakePanel) CreateUser(_ context.Context, req provisioning.ProvisionRequest) (*provisioning.RemoteAccount, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.createErr != nil {
		return nil, p.createErr
	}
	username := req.Username
	if p.renameOnCre != "" {
		username = p.renameOnCre
	}
	p.created = append(p.created, username)
	return &provisioning.RemoteAccount{
		Username:        username,
		Status:          "active",
		SubscriptionURL: "/sub/" + username,
	}, nil
}

func (p *fakePanel) GetUser(_ context.Context, username string) (*provisioning.RemoteAccount, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.getErr != nil {
		return nil, p.getErr
	}
	if p.remote != nil {
		return p.remote, nil
	}
	return &provisioning.RemoteAccount{Username: username, Status: "active"}, nil
}

func (p *fakePanel) ModifyUser(_ context.Context, username string, dataLimitGB, durationDays int) (*provisioning.RemoteAccount, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.modifyErr != nil {
		return nil, p.modifyErr
	}
	p.modified = append(p.modified, provisioning.ProvisionRequest{
		Username:     username,
		DataLimitGB:  dataLimitGB,
		DurationDays: durationDays,
	})
	return &provisioning.RemoteAccount{Username: username, Status: "active"}, nil
}

func (p *fakePanel) ListUsers(_ context.Context, _, _ int) ([]provisioning.RemoteAccount, int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.listErr != nil {
		return nil, 0, p.listErr
	}
	return p.listing, p.listTotal, nil
}

func (p *fakePanel) DeleteUser(_ context.Context, username string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.deleteErr != nil {
		return p.deleteErr
	}
	p.deleted = append(p.deleted, username)
	return nil
}

func (p *fakePanel) ResetUserDataUsage(_ context.Context, username string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.resetErr != nil {
		return p.resetErr
	}
	p.resets = append(p.resets, username)
	return nil
}

// fakeAuditRepo swallows audit writes.
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

func testPlan(t *testing.T, id uint, durationDays, dataLimitGB int) *domainPlan.Plan {
	t.Helper()
	p, err := domainPlan.NewPlan("Gold 30d", vo.NewMoney(150000, ""), durationDays, dataLimitGB)
	require.NoError(t, err)
	p.SetID(id)
	return p
}

func TestCreateVpnUser_Success(t *testing.T) {
	repo := newFakeVpnUserRepo()
	panel := &fakePanel{}
	uc := NewCreateVpnUserUseCase(repo, &fakePlanRepo{plan: testPlan(t, 5, 30, 10)}, panel, testRecorder(), logger.NewLogger())

	resp, err := uc.Execute(context.Background(), 2, dto.CreateVpnUserRequest{
		Username: "customer01",
		PlanID:   5,
	})
	require.NoError(t, err)

	assert.Equal(t, "customer01", resp.Username)
	assert.Equal(t, uint(5), resp.PlanID)
	require.NotNil(t, resp.ExpiresAt)
	assert.WithinDuration(t, time.Now().UTC().Add(30*24*time.Hour), *resp.ExpiresAt, time.Minute)
	require.NotNil(t, resp.SubscriptionLink)
	assert.Equal(t, "/sub/customer01", *resp.SubscriptionLink)
	assert.Equal(t, []string{"customer01"}, panel.created)
}

func TestCreateVpnUser_UsesPanelConfirmedUsername(t *testing.T) {
	repo := newFakeVpnUserRepo()
	panel := &fakePanel{renameOnCre: "customer01_x"}
	uc := NewCreateVpnUserUseCase(repo, &fakePlanRepo{plan: testPlan(t, 5, 30, 10)}, panel, testRecorder(), logger.NewLogger())

	resp, err := uc.Execute(context.Background(), 2, dto.CreateVpnUserRequest{
		Username: "customer01",
		PlanID:   5,
	})
	require.NoError(t, err)
	assert.Equal(t, "customer01_x", resp.Username)
}

func TestCreateVpnUser_InactivePlan(t *testing.T) {
	p := testPlan(t, 5, 30, 10)
	p.Deactivate()
	panel := &fakePanel{}
	uc := NewCreateVpnUserUseCase(newFakeVpnUserRepo(), &fakePlanRepo{plan: p}, panel, testRecorder(), logger.NewLogger())

	_, err := uc.Execute(context.Background(), 2, dto.CreateVpnUserRequest{Username: "customer01", PlanID: 5})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	assert.Empty(t, panel.created)
}

func TestCreateVpnUser_DuplicateUsername(t *testing.T) {
	repo := newFakeVpnUserRepo()
	existing, err := domainVpnUser.NewVpnUser("customer01", 9, 5, nil, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), existing))

	panel := &fakePanel{}
	uc := NewCreateVpnUserUseCase(repo, &fakePlanRepo{plan: testPlan(t, 5, 30, 10)}, panel, testRecorder(), logger.NewLogger())

	_, err = uc.Execute(context.Background(), 2, dto.CreateVpnUserRequest{Username: "customer01", PlanID: 5})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflictError(err))
	assert.Empty(t, panel.created)
}

func TestCreateVpnUser_PanelFailureLeavesNoRow(t *testing.T) {
	repo := newFakeVpnUserRepo()
	panel := &fakePanel{createErr: apperrors.NewUpstreamError("panel down", 502)}
	uc := NewCreateVpnUserUseCase(repo, &fakePlanRepo{plan: testPlan(t, 5, 30, 10)}, panel, testRecorder(), logger.NewLogger())

	_, err := uc.Execute(context.Background(), 2, dto.CreateVpnUserRequest{Username: "customer01", PlanID: 5})
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstreamError(err))
	assert.Empty(t, repo.users)
}

func TestCreateVpnUser_LocalFailureRollsBackRemote(t *testing.T) {
	repo := newFakeVpnUserRepo()
	repo.failOnC = true
	panel := &fakePanel{}
	uc := NewCreateVpnUserUseCase(repo, &fakePlanRepo{plan: testPlan(t, 5, 30, 10)}, panel, testRecorder(), logger.NewLogger())

	_, err := uc.Execute(context.Background(), 2, dto.CreateVpnUserRequest{Username: "customer01", PlanID: 5})
	require.Error(t, err)
	assert.Equal(t, []string{"customer01"}, panel.deleted)
}

func TestDeleteVpnUser_RemoteFailureKeepsRow(t *testing.T) {
	repo := newFakeVpnUserRepo()
	u, err := domainVpnUser.NewVpnUser("customer01", 2, 5, nil, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))

	panel := &fakePanel{deleteErr: apperrors.NewUpstreamError("panel down", 502)}
	uc := NewDeleteVpnUserUseCase(repo, panel, testRecorder(), logger.NewLogger())

	err = uc.Execute(context.Background(), 2, "customer01")
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstreamError(err))
	assert.Len(t, repo.users, 1)
}

func TestDeleteVpnUser_RemoteAlreadyGone(t *testing.T) {
	repo := newFakeVpnUserRepo()
	u, err := domainVpnUser.NewVpnUser("customer01", 2, 5, nil, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))

	panel := &fakePanel{deleteErr: apperrors.NewNotFoundError("account not found on provisioning panel")}
	uc := NewDeleteVpnUserUseCase(repo, panel, testRecorder(), logger.NewLogger())

	require.NoError(t, uc.Execute(context.Background(), 2, "customer01"))
	assert.Empty(t, repo.users)
}

func TestDeleteVpnUser_OtherAdminsUserInvisible(t *testing.T) {
	repo := newFakeVpnUserRepo()
	u, err := domainVpnUser.NewVpnUser("customer01", 9, 5, nil, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))

	uc := NewDeleteVpnUserUseCase(repo, &fakePanel{}, testRecorder(), logger.NewLogger())

	err = uc.Execute(context.Background(), 2, "customer01")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
	assert.Len(t, repo.users, 1)
}

func TestGetVpnUserDetail_MergesRemoteState(t *testing.T) {
	repo := newFakeVpnUserRepo()
	u, err := domainVpnUser.NewVpnUser("customer01", 2, 5, nil, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))

	panel := &fakePanel{remote: &provisioning.RemoteAccount{
		Username:    "customer01",
		Status:      "active",
		UsedTraffic: 5 << 30,
		DataLimit:   10 << 30,
	}}
	uc := NewGetVpnUserDetailUseCase(repo, panel, logger.NewLogger())

	detail, err := uc.Execute(context.Background(), 2, "customer01")
	require.NoError(t, err)
	assert.True(t, detail.RemoteAvailable)
	require.NotNil(t, detail.Remote)
	assert.Equal(t, int64(5<<30), detail.Remote.UsedTraffic)
}

func TestGetVpnUserDetail_DegradesWhenPanelDown(t *testing.T) {
	repo := newFakeVpnUserRepo()
	u, err := domainVpnUser.NewVpnUser("customer01", 2, 5, nil, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))

	panel := &fakePanel{getErr: apperrors.NewUpstreamError("panel down", 502)}
	uc := NewGetVpnUserDetailUseCase(repo, panel, logger.NewLogger())

	detail, err := uc.Execute(context.Background(), 2, "customer01")
	require.NoError(t, err)
	assert.False(t, detail.RemoteAvailable)
	assert.Nil(t, detail.Remote)
	assert.Equal(t, "customer01", detail.Username)
}

func TestResetVpnUserTraffic(t *testing.T) {
	repo := newFakeVpnUserRepo()
	u, err := domainVpnUser.NewVpnUser("customer01", 2, 5, nil, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))

	panel := &fakePanel{}
	uc := NewResetVpnUserTrafficUseCase(repo, panel, testRecorder(), logger.NewLogger())

	require.NoError(t, uc.Execute(context.Background(), 2, "customer01"))
	assert.Equal(t, []string{"customer01"}, panel.resets)
}
