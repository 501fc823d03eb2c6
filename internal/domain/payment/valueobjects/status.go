package valueobjects

// TransactionStatus is the payment transaction state machine. A transaction
// starts PENDING and moves to exactly one terminal state.
type TransactionStatus string

const (
	StatusPending    TransactionStatus = "PENDING"
	StatusSuccessful TransactionStatus = "SUCCESSFUL"
	StatusFailed     TransactionStatus = "FAILED"
	StatusCanceled   TransactionStatus = "CANCELED"
)

func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusSuccessful, StatusFailed, StatusCanceled:
		return true
	}
	return false
}

// IsFinal reports whether the status is terminal.
func (s TransactionStatus) IsFinal() bool {
	return s != StatusPending && s.IsValid()
}

func (s TransactionStatus) String() string {
	return string(s)
}
