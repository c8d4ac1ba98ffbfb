// Package console holds the operation orchestration behind the bank
// console: input validation, remote calls through the API client, the
// re-fetch that follows every successful mutation, and error surfacing.
//
// Controllers never block. Operations return tea.Cmd values that perform
// the network call and come back as messages; Update applies those
// messages on the caller's single UI loop. Tests drive them headlessly by
// running the returned commands and feeding the results back.
package console

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/jask/bankconsole/internal/api"
	"github.com/jask/bankconsole/internal/journal"
	"github.com/jask/bankconsole/internal/logging"
)

// Backend is the slice of the API client the controllers use.
type Backend interface {
	ListCustomers(ctx context.Context) ([]api.CustomerRow, error)
	CreateCustomer(ctx context.Context, in api.NewCustomer) (api.Created, error)
	Deposit(ctx context.Context, accountNo string, amount decimal.Decimal) error
	Withdraw(ctx context.Context, accountNo string, amount decimal.Decimal) error
	DeleteCustomer(ctx context.Context, accountNo string) error
	Transfer(ctx context.Context, from, to string, amount decimal.Decimal) error
	ListTransactions(ctx context.Context, limit int) ([]api.TransactionEntry, error)
}

// Recorder receives one entry per completed operation.
type Recorder interface {
	Record(ctx context.Context, e journal.Entry) error
}

// MessageKind selects the visual channel of an inline message.
type MessageKind int

const (
	MsgNone MessageKind = iota
	MsgValidation
	MsgSuccess
	MsgError
)

// Deps are shared by both controllers.
type Deps struct {
	Ctx      context.Context
	Backend  Backend
	Recorder Recorder
	Log      *slog.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Ctx == nil {
		d.Ctx = context.Background()
	}
	if d.Log == nil {
		d.Log = logging.Discard()
	}
	return d
}

// record writes the outcome of a to the journal. Journal failures are
// logged and otherwise ignored.
func (d Deps) record(a PendingAction, err error) {
	if d.Recorder == nil {
		return
	}
	e := journal.Entry{
		Kind:    string(a.Kind),
		From:    a.From,
		To:      a.To,
		Amount:  a.Amount.String(),
		Outcome: journal.OutcomeOK,
	}
	if err != nil {
		e.Outcome = journal.OutcomeFailed
		e.Message = api.MessageOf(err)
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			e.RequestID = apiErr.RequestID
		}
	}
	if rerr := d.Recorder.Record(d.Ctx, e); rerr != nil {
		d.Log.Warn("journal write failed", "kind", a.Kind, "error", rerr)
	}
}
