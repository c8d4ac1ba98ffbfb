package console

import (
	"strings"
	"time"

	"github.com/jask/bankconsole/internal/api"
)

// Placeholders shown in place of empty collections.
const (
	NoCustomers    = "No customers yet."
	NoTransactions = "No transactions yet."
)

// CustomerLine is one rendered customer row.
type CustomerLine struct {
	AccountNo string
	Name      string
	Email     string
	Mobile    string
	Type      string
	Balance   string
}

// CustomerTable is the customer list as displayed.
type CustomerTable struct {
	Hidden      bool
	Placeholder string
	Rows        []CustomerLine
}

// ProjectCustomers renders rows in the order given. It is a pure function
// of its input; nothing is carried over from earlier renders.
func ProjectCustomers(rows []api.CustomerRow) CustomerTable {
	if len(rows) == 0 {
		return CustomerTable{Hidden: true, Placeholder: NoCustomers}
	}
	out := CustomerTable{Rows: make([]CustomerLine, 0, len(rows))}
	for _, c := range rows {
		out.Rows = append(out.Rows, CustomerLine{
			AccountNo: c.AccountNo,
			Name:      c.Name,
			Email:     c.Email,
			Mobile:    c.Mobile,
			Type:      c.Type,
			Balance:   c.Balance.StringFixed(2),
		})
	}
	return out
}

// CustomerView projects the current customer snapshot. Before the first
// snapshot arrives the table is hidden with no placeholder.
func (a *Accounts) CustomerView() CustomerTable {
	if !a.state.CustomersLoaded() {
		return CustomerTable{Hidden: true}
	}
	return ProjectCustomers(a.state.customers)
}

// FeedFormat controls how feed lines are written.
type FeedFormat struct {
	Currency string
	Layout   string
	Location *time.Location
}

// FeedView is the transaction feed as displayed.
type FeedView struct {
	Placeholder string
	Lines       []string
}

// ProjectFeed renders one line per entry in service order:
// "<local time> — <TYPE> — <details> — <currency><amount>".
func ProjectFeed(entries []api.TransactionEntry, f FeedFormat) FeedView {
	if len(entries) == 0 {
		return FeedView{Placeholder: NoTransactions}
	}
	if f.Location == nil {
		f.Location = time.Local
	}
	if f.Layout == "" {
		f.Layout = "02/01/2006, 15:04:05"
	}
	lines := make([]string, 0, len(entries))
	for _, t := range entries {
		lines = append(lines, strings.Join([]string{
			t.Timestamp.In(f.Location).Format(f.Layout),
			strings.ToUpper(t.Type),
			t.Details,
			f.Currency + t.Amount.StringFixed(2),
		}, " — "))
	}
	return FeedView{Lines: lines}
}

// FeedView projects the current feed snapshot with the console currency.
func (a *Accounts) FeedView(layout string, loc *time.Location) FeedView {
	if !a.state.TransactionsLoaded() {
		return FeedView{}
	}
	return ProjectFeed(a.state.transactions, FeedFormat{Currency: a.opts.Currency, Layout: layout, Location: loc})
}
