package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/marzgate/marzgate/internal/domain/payment/valueobjects"
)

func TestNewPlan(t *testing.T) {
	p, err := NewPlan("Gold 30d", vo.NewMoney(150000, "IRT"), 30, 10)
	require.NoError(t, err)

	assert.Equal(t, "Gold 30d", p.Name())
	assert.Equal(t, 30, p.DurationDays())
	assert.Equal(t, 10, p.DataLimitGB())
	assert.True(t, p.IsActive())
}

func TestNewPlan_Validation(t *testing.T) {
	_, err := NewPlan("", vo.NewMoney(1000, ""), 30, 10)
	assert.Error(t, err)

	_, err = NewPlan("p", vo.NewMoney(-1, ""), 30, 10)
	assert.Error(t, err)

	_, err = NewPlan("p", vo.NewMoney(1000, ""), 0, 10)
	assert.Error(t, err)

	_, err = NewPlan("p", vo.NewMoney(1000, ""), 30, -1)
	assert.Error(t, err)
}

func TestPlan_UnlimitedData(t *testing.T) {
	p, err := NewPlan("Unlimited", vo.NewMoney(300000, ""), 30, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, p.DataLimitGB())
}

func TestPlan_Mutations(t *testing.T) {
	p, err := NewPlan("Gold 30d", vo.NewMoney(150000, ""), 30, 10)
	require.NoError(t, err)

	require.NoError(t, p.ChangePrice(vo.NewMoney(200000, "")))
	assert.Equal(t, int64(200000), p.Price().Amount())

	assert.Error(t, p.ChangeDuration(0))
	require.NoError(t, p.ChangeDuration(60))
	assert.Equal(t, 60, p.DurationDays())

	p.Deactivate()
	assert.False(t, p.IsActive())
}
