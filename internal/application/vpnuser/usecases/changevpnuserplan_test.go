package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marzgate/marzgate/internal/application/vpnuser/dto"
	"github.com/marzgate/marzgate/internal/application/vpnuser/provisioning"
	domainVpnUser "github.com/marzgate/marzgate/internal/domain/vpnuser"
	apperrors "github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
	"github.com/marzgate/marzgate/internal/shared/utils"
)

func TestChangeVpnUserPlan_Success(t *testing.T) {
	repo := newFakeVpnUserRepo()
	u, err := domainVpnUser.NewVpnUser("customer01", 2, 5, nil, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))

	panel := &fakePanel{}
	uc := NewChangeVpnUserPlanUseCase(repo, &fakePlanRepo{plan: testPlan(t, 9, 60, 50)}, panel, testRecorder(), logger.NewLogger())

	resp, err := uc.Execute(context.Background(), 2, "customer01", dto.ChangeVpnUserPlanRequest{PlanID: 9})
	require.NoError(t, err)

	assert.Equal(t, uint(9), resp.PlanID)
	require.NotNil(t, resp.ExpiresAt)
	assert.WithinDuration(t, time.Now().UTC().Add(60*24*time.Hour), *resp.ExpiresAt, time.Minute)

	// The panel received the new plan's limits.
	require.Len(t, panel.modified, 1)
	assert.Equal(t, "customer01", panel.modified[0].Username)
	assert.Equal(t, 50, panel.modified[0].DataLimitGB)
	assert.Equal(t, 60, panel.modified[0].DurationDays)

	stored, err := repo.GetByUsername(context.Background(), "customer01")
	require.NoError(t, err)
	assert.Equal(t, uint(9), stored.PlanID())
}

func TestChangeVpnUserPlan_RemoteFailureKeepsPlan(t *testing.T) {
	repo := newFakeVpnUserRepo()
	u, err := domainVpnUser.NewVpnUser("customer01", 2, 5, nil, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))

	panel := &fakePanel{modifyErr: apperrors.NewUpstreamError("panel down", 502)}
	uc := NewChangeVpnUserPlanUseCase(repo, &fakePlanRepo{plan: testPlan(t, 9, 60, 50)}, panel, testRecorder(), logger.NewLogger())

	_, err = uc.Execute(context.Background(), 2, "customer01", dto.ChangeVpnUserPlanRequest{PlanID: 9})
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstreamError(err))

	stored, err := repo.GetByUsername(context.Background(), "customer01")
	require.NoError(t, err)
	assert.Equal(t, uint(5), stored.PlanID())
}

func TestChangeVpnUserPlan_InactivePlan(t *testing.T) {
	repo := newFakeVpnUserRepo()
	u, err := domainVpnUser.NewVpnUser("customer01", 2, 5, nil, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))

	p := testPlan(t, 9, 60, 50)
	p.Deactivate()
	panel := &fakePanel{}
	uc := NewChangeVpnUserPlanUseCase(repo, &fakePlanRepo{plan: p}, panel, testRecorder(), logger.NewLogger())

	_, err = uc.Execute(context.Background(), 2, "customer01", dto.ChangeVpnUserPlanRequest{PlanID: 9})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	assert.Empty(t, panel.modified)
}

func TestChangeVpnUserPlan_OtherAdminsUserInvisible(t *testing.T) {
	repo := newFakeVpnUserRepo()
	u, err := domainVpnUser.NewVpnUser("customer01", 9, 5, nil, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))

	uc := NewChangeVpnUserPlanUseCase(repo, &fakePlanRepo{plan: testPlan(t, 9, 60, 50)}, &fakePanel{}, testRecorder(), logger.NewLogger())

	_, err = uc.Execute(context.Background(), 2, "customer01", dto.ChangeVpnUserPlanRequest{PlanID: 9})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestListPanelAccounts_MarksUntrackedAccounts(t *testing.T) {
	repo := newFakeVpnUserRepo()
	u, err := domainVpnUser.NewVpnUser("customer01", 2, 5, nil, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))

	panel := &fakePanel{
		listing: []provisioning.RemoteAccount{
			{Username: "customer01", Status: "active", UsedTraffic: 1 << 30},
			{Username: "orphan01", Status: "active"},
		},
		listTotal: 2,
	}
	uc := NewListPanelAccountsUseCase(repo, panel, logger.NewLogger())

	rows, total, err := uc.Execute(context.Background(), utils.Pagination{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)

	assert.True(t, rows[0].Tracked)
	assert.Equal(t, uint(2), rows[0].AdminID)
	// The orphan exists on the panel but no ledger row claims it.
	assert.False(t, rows[1].Tracked)
	assert.Zero(t, rows[1].AdminID)
}

func TestListPanelAccounts_PanelDown(t *testing.T) {
	uc := NewListPanelAccountsUseCase(newFakeVpnUserRepo(), &fakePanel{listErr: apperrors.NewUpstreamError("panel down", 502)}, logger.NewLogger())

	_, _, err := uc.Execute(context.Background(), utils.Pagination{Page: 1, PageSize: 20})
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstreamError(err))
}
