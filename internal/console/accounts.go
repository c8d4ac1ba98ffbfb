package console

import (
	"errors"
	"strings"

	"github.com/agnivade/levenshtein"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/bankconsole/internal/api"
)

// DefaultFeedLimit is the transaction feed page size.
const DefaultFeedLimit = 20

// AccountsOptions tunes the account console.
type AccountsOptions struct {
	FeedLimit int
	Currency  string
}

// Accounts lists customers, runs row actions and transfers, and keeps the
// recent-transactions feed.
type Accounts struct {
	deps      Deps
	opts      AccountsOptions
	state     State
	dialog    Dialog
	alert     string
	Transfer  TransferForm
	xferMsg   string
	xferKind  MessageKind
	status    string
	statusErr bool
}

func NewAccounts(deps Deps, opts AccountsOptions) *Accounts {
	if opts.FeedLimit <= 0 {
		opts.FeedLimit = DefaultFeedLimit
	}
	if opts.Currency == "" {
		opts.Currency = "₹"
	}
	return &Accounts{deps: deps.withDefaults(), opts: opts}
}

func (a *Accounts) State() *State   { return &a.state }
func (a *Accounts) Dialog() *Dialog { return &a.dialog }

// Alert returns the pending blocking alert, if any.
func (a *Accounts) Alert() string { return a.alert }

func (a *Accounts) DismissAlert() { a.alert = "" }

// TransferMessage returns the transfer form's inline message.
func (a *Accounts) TransferMessage() (string, MessageKind) { return a.xferMsg, a.xferKind }

// Status returns the console status line for refresh failures outside any
// form or row action.
func (a *Accounts) Status() (string, bool) { return a.status, a.statusErr }

// Init refreshes the customer list and then, once it has loaded, the feed.
func (a *Accounts) Init() tea.Cmd {
	return a.refreshCustomers(originStartup, true)
}

// RefreshCustomers re-fetches the full customer list.
func (a *Accounts) RefreshCustomers() tea.Cmd {
	return a.refreshCustomers(originManual, false)
}

func (a *Accounts) refreshCustomers(origin refreshOrigin, thenFeed bool) tea.Cmd {
	ticket := a.state.custSlot.issue()
	deps := a.deps
	return func() tea.Msg {
		rows, err := deps.Backend.ListCustomers(deps.Ctx)
		return customersMsg{ticket: ticket, rows: rows, err: err, origin: origin, thenFeed: thenFeed}
	}
}

// RefreshTransactions re-fetches the feed. Failures are not surfaced.
func (a *Accounts) RefreshTransactions() tea.Cmd {
	ticket := a.state.feedSlot.issue()
	deps, limit := a.deps, a.opts.FeedLimit
	return func() tea.Msg {
		entries, err := deps.Backend.ListTransactions(deps.Ctx, limit)
		return transactionsMsg{ticket: ticket, entries: entries, err: err}
	}
}

// Dispatch opens the dialog for a row action. It is ignored while another
// dialog or an alert is showing.
func (a *Accounts) Dispatch(action RowAction) tea.Cmd {
	if a.dialog.Open() || a.alert != "" || action == nil || action.Account() == "" {
		return nil
	}
	switch action.(type) {
	case Deposit:
		a.dialog.open(action, "Deposit amount for "+action.Account(), false)
	case Withdraw:
		a.dialog.open(action, "Withdraw amount for "+action.Account(), false)
	case Delete:
		a.dialog.open(action, "Delete this customer?", true)
	}
	return nil
}

// ConfirmDialog accepts the open dialog with value (ignored for confirm
// dialogs) and returns the resulting operation, if any.
func (a *Accounts) ConfirmDialog(value string) tea.Cmd {
	if !a.dialog.Confirm(value) {
		return nil
	}
	return a.resolveDialog()
}

// CancelDialog abandons the open dialog without a network call.
func (a *Accounts) CancelDialog() tea.Cmd {
	if !a.dialog.Cancel() {
		return nil
	}
	return a.resolveDialog()
}

func (a *Accounts) resolveDialog() tea.Cmd {
	action, value, confirmed := a.dialog.take()
	if !confirmed {
		return nil
	}
	acc := action.Account()
	switch action.(type) {
	case Delete:
		return a.rowCmd(PendingAction{Kind: KindDelete, From: acc})
	case Deposit, Withdraw:
		if strings.TrimSpace(value) == "" {
			return nil
		}
		amount, err := ParseAmount(value)
		if err != nil {
			a.alert = err.Error()
			return nil
		}
		return a.rowCmd(PendingAction{Kind: action.kind(), From: acc, Amount: amount})
	}
	return nil
}

func (a *Accounts) rowCmd(p PendingAction) tea.Cmd {
	deps := a.deps
	return func() tea.Msg {
		var err error
		switch p.Kind {
		case KindDeposit:
			err = deps.Backend.Deposit(deps.Ctx, p.From, p.Amount)
		case KindWithdraw:
			err = deps.Backend.Withdraw(deps.Ctx, p.From, p.Amount)
		case KindDelete:
			err = deps.Backend.DeleteCustomer(deps.Ctx, p.From)
		}
		deps.record(p, err)
		return rowActionDoneMsg{action: p, err: err}
	}
}

// SubmitTransfer validates the transfer form and returns the transfer
// command when it passes.
func (a *Accounts) SubmitTransfer() tea.Cmd {
	a.xferMsg, a.xferKind = "", MsgNone
	from, to, amount, err := ValidateTransfer(a.Transfer)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			a.xferMsg, a.xferKind = verr.Message, MsgValidation
		}
		return nil
	}
	p := PendingAction{Kind: KindTransfer, From: from, To: to, Amount: amount}
	deps := a.deps
	return func() tea.Msg {
		err := deps.Backend.Transfer(deps.Ctx, p.From, p.To, p.Amount)
		deps.record(p, err)
		return transferDoneMsg{action: p, err: err}
	}
}

// Update applies command results.
func (a *Accounts) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case customersMsg:
		a.state.applyCustomers(m.ticket, m.rows, m.err)
		if m.err != nil {
			a.customersFailed(m)
			return nil
		}
		if m.origin == originStartup || m.origin == originManual {
			a.status, a.statusErr = "", false
		}
		if m.thenFeed {
			return a.RefreshTransactions()
		}
	case transactionsMsg:
		if m.err != nil {
			a.deps.Log.Debug("transaction feed refresh failed", "error", m.err)
		}
		a.state.applyTransactions(m.ticket, m.entries, m.err)
	case rowActionDoneMsg:
		if m.err != nil {
			a.deps.Log.Warn("row action failed", "kind", m.action.Kind, "account_no", m.action.From, "error", m.err)
			a.alert = api.MessageOf(m.err)
			return nil
		}
		a.deps.Log.Info("row action done", "kind", m.action.Kind, "account_no", m.action.From)
		return a.refreshCustomers(originRowAction, false)
	case transferDoneMsg:
		if m.err != nil {
			a.deps.Log.Warn("transfer failed", "from", m.action.From, "to", m.action.To, "error", m.err)
			a.xferMsg, a.xferKind = api.MessageOf(m.err), MsgError
			return nil
		}
		a.deps.Log.Info("transfer done", "from", m.action.From, "to", m.action.To, "amount", m.action.Amount.String())
		a.xferMsg, a.xferKind = "Transferred "+a.opts.Currency+m.action.Amount.StringFixed(2), MsgSuccess
		a.Transfer = TransferForm{}
		return a.refreshCustomers(originTransfer, true)
	case CustomerCreatedMsg:
		return a.RefreshCustomers()
	}
	return nil
}

// customersFailed routes a list failure to where the triggering action
// reports errors. The previous snapshot stays in place.
func (a *Accounts) customersFailed(m customersMsg) {
	text := api.MessageOf(m.err)
	a.deps.Log.Warn("customer refresh failed", "error", m.err)
	switch m.origin {
	case originRowAction:
		a.alert = text
	case originTransfer:
		a.xferMsg, a.xferKind = text, MsgError
	default:
		a.status, a.statusErr = text, true
	}
}

// SuggestAccount returns the closest known account number to input when
// input is not itself a known account. It is a hint only.
func (a *Accounts) SuggestAccount(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" || len(a.state.customers) == 0 {
		return "", false
	}
	best, bestDist := "", 3
	for _, c := range a.state.customers {
		if c.AccountNo == input {
			return "", false
		}
		d := levenshtein.ComputeDistance(strings.ToUpper(input), strings.ToUpper(c.AccountNo))
		if d < bestDist {
			best, bestDist = c.AccountNo, d
		}
	}
	return best, best != ""
}
