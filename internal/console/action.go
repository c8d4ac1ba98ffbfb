package console

import (
	"github.com/shopspring/decimal"
)

// RowAction is an operator action on one customer row.
type RowAction interface {
	Account() string
	kind() ActionKind
}

type Deposit struct{ AccountNo string }

type Withdraw struct{ AccountNo string }

type Delete struct{ AccountNo string }

func (a Deposit) Account() string  { return a.AccountNo }
func (a Withdraw) Account() string { return a.AccountNo }
func (a Delete) Account() string   { return a.AccountNo }

func (Deposit) kind() ActionKind  { return KindDeposit }
func (Withdraw) kind() ActionKind { return KindWithdraw }
func (Delete) kind() ActionKind   { return KindDelete }

// ActionKind names what a PendingAction does.
type ActionKind string

const (
	KindDeposit  ActionKind = "deposit"
	KindWithdraw ActionKind = "withdraw"
	KindDelete   ActionKind = "delete"
	KindTransfer ActionKind = "transfer"
	KindCreate   ActionKind = "create"
)

// PendingAction is the intent behind one in-flight operation. It lives for
// a single gesture and is never queued.
type PendingAction struct {
	Kind   ActionKind
	From   string
	To     string
	Amount decimal.Decimal
}
