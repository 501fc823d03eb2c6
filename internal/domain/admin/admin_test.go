package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/marzgate/marzgate/internal/domain/payment/valueobjects"
)

func TestNewAdmin(t *testing.T) {
	creator := uint(3)
	a, err := NewAdmin("reseller1", "reseller1@example.com", "$2a$12$hash", &creator)
	require.NoError(t, err)

	assert.Equal(t, "reseller1", a.Username())
	assert.True(t, a.IsActive())
	assert.Equal(t, int64(0), a.Balance().Amount())
	require.NotNil(t, a.CreatedBy())
	assert.Equal(t, uint(3), *a.CreatedBy())
}

func TestNewAdmin_Validation(t *testing.T) {
	_, err := NewAdmin("", "a@b.c", "hash", nil)
	assert.Error(t, err)

	_, err = NewAdmin("user", "", "hash", nil)
	assert.Error(t, err)

	_, err = NewAdmin("user", "a@b.c", "", nil)
	assert.Error(t, err)
}

func TestAdmin_Credit(t *testing.T) {
	a, err := NewAdmin("reseller1", "r@example.com", "hash", nil)
	require.NoError(t, err)

	require.NoError(t, a.Credit(vo.NewMoney(50000, "IRT")))
	assert.Equal(t, int64(50000), a.Balance().Amount())

	require.NoError(t, a.Credit(vo.NewMoney(25000, "IRT")))
	assert.Equal(t, int64(75000), a.Balance().Amount())

	assert.Error(t, a.Credit(vo.NewMoney(0, "IRT")))
	assert.Error(t, a.Credit(vo.NewMoney(-100, "IRT")))
	assert.Equal(t, int64(75000), a.Balance().Amount())
}

func TestAdmin_ActivateDeactivate(t *testing.T) {
	a, err := NewAdmin("reseller1", "r@example.com", "hash", nil)
	require.NoError(t, err)

	a.Deactivate()
	assert.False(t, a.IsActive())
	a.Activate()
	assert.True(t, a.IsActive())
}

func TestPatch_IsEmpty(t *testing.T) {
	assert.True(t, Patch{}.IsEmpty())

	name := "x"
	assert.False(t, Patch{Username: &name}.IsEmpty())
}
