package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/marzgate/marzgate/internal/domain/payment/valueobjects"
)

func newTestTransaction(t *testing.T) *Transaction {
	tx, err := NewTransaction(1, vo.NewMoney(50000, "IRT"), "zarinpal", "recharge")
	require.NoError(t, err)
	return tx
}

func TestNewTransaction(t *testing.T) {
	t.Run("creates pending transaction", func(t *testing.T) {
		tx := newTestTransaction(t)
		assert.Equal(t, vo.StatusPending, tx.Status())
		assert.Equal(t, int64(50000), tx.Amount().Amount())
		assert.Nil(t, tx.Authority())
		assert.Nil(t, tx.ConfirmedAt())
	})

	t.Run("rejects zero admin", func(t *testing.T) {
		_, err := NewTransaction(0, vo.NewMoney(1000, ""), "zarinpal", "")
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewTransaction(1, vo.NewMoney(0, ""), "zarinpal", "")
		assert.Error(t, err)
		_, err = NewTransaction(1, vo.NewMoney(-5, ""), "zarinpal", "")
		assert.Error(t, err)
	})
}

func TestTransaction_AttachAuthority(t *testing.T) {
	tx := newTestTransaction(t)

	require.NoError(t, tx.AttachAuthority("A0000012345"))
	require.NotNil(t, tx.Authority())
	assert.Equal(t, "A0000012345", *tx.Authority())

	assert.Error(t, tx.AttachAuthority(""))

	require.NoError(t, tx.MarkFailed("gateway rejected"))
	assert.Error(t, tx.AttachAuthority("A0000099999"))
}

func TestTransaction_MarkSuccessful(t *testing.T) {
	t.Run("pending to successful", func(t *testing.T) {
		tx := newTestTransaction(t)
		require.NoError(t, tx.MarkSuccessful("123456"))
		assert.Equal(t, vo.StatusSuccessful, tx.Status())
		require.NotNil(t, tx.RefID())
		assert.Equal(t, "123456", *tx.RefID())
		assert.NotNil(t, tx.ConfirmedAt())
	})

	t.Run("idempotent when already successful", func(t *testing.T) {
		tx := newTestTransaction(t)
		require.NoError(t, tx.MarkSuccessful("123456"))
		confirmed := *tx.ConfirmedAt()

		require.NoError(t, tx.MarkSuccessful("123456"))
		assert.Equal(t, confirmed, *tx.ConfirmedAt())
	})

	t.Run("rejected from other terminal states", func(t *testing.T) {
		tx := newTestTransaction(t)
		require.NoError(t, tx.MarkCanceled())
		assert.Error(t, tx.MarkSuccessful("123456"))
	})
}

func TestTransaction_MarkFailed(t *testing.T) {
	tx := newTestTransaction(t)
	require.NoError(t, tx.MarkFailed("verification failed"))
	assert.Equal(t, vo.StatusFailed, tx.Status())
	assert.Equal(t, "verification failed", tx.RawResponse()["failure_reason"])

	// no-op on repeat
	require.NoError(t, tx.MarkFailed("again"))

	// cannot fail a successful transaction
	tx2 := newTestTransaction(t)
	require.NoError(t, tx2.MarkSuccessful("1"))
	assert.Error(t, tx2.MarkFailed("late"))
}

func TestTransaction_MarkCanceled(t *testing.T) {
	tx := newTestTransaction(t)
	require.NoError(t, tx.MarkCanceled())
	assert.Equal(t, vo.StatusCanceled, tx.Status())

	require.NoError(t, tx.MarkCanceled())

	tx2 := newTestTransaction(t)
	require.NoError(t, tx2.MarkSuccessful("1"))
	assert.Error(t, tx2.MarkCanceled())
}

func TestTransactionStatus(t *testing.T) {
	assert.True(t, vo.StatusSuccessful.IsFinal())
	assert.True(t, vo.StatusFailed.IsFinal())
	assert.True(t, vo.StatusCanceled.IsFinal())
	assert.False(t, vo.StatusPending.IsFinal())
	assert.False(t, vo.TransactionStatus("BOGUS").IsValid())
}
