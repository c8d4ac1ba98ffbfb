package console

import "github.com/jask/bankconsole/internal/api"

// refreshOrigin says what triggered a customer refresh, which decides
// where a failure is shown.
type refreshOrigin int

const (
	originStartup refreshOrigin = iota
	originRowAction
	originTransfer
	originManual
)

type customersMsg struct {
	ticket   uint64
	rows     []api.CustomerRow
	err      error
	origin   refreshOrigin
	thenFeed bool
}

type transactionsMsg struct {
	ticket  uint64
	entries []api.TransactionEntry
	err     error
}

type customerCreatedMsg struct {
	created api.Created
	err     error
}

type rowActionDoneMsg struct {
	action PendingAction
	err    error
}

type transferDoneMsg struct {
	action PendingAction
	err    error
}

// CustomerCreatedMsg announces a successful registration to other views.
type CustomerCreatedMsg struct {
	AccountNo string
}
