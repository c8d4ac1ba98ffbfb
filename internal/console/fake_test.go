package console

import (
	"context"
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/jask/bankconsole/internal/api"
	"github.com/jask/bankconsole/internal/journal"
)

// fakeBackend scripts service responses and records every call.
type fakeBackend struct {
	mu        sync.Mutex
	customers []api.CustomerRow
	txns      []api.TransactionEntry
	created   api.Created
	fail      map[string]error
	calls     []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{fail: map[string]error{}}
}

func (f *fakeBackend) note(format string, args ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := fmt.Sprintf(format, args...)
	f.calls = append(f.calls, call)
	for prefix, err := range f.fail {
		if len(call) >= len(prefix) && call[:len(prefix)] == prefix {
			return err
		}
	}
	return nil
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) ListCustomers(context.Context) ([]api.CustomerRow, error) {
	if err := f.note("list-customers"); err != nil {
		return nil, err
	}
	return append([]api.CustomerRow(nil), f.customers...), nil
}

func (f *fakeBackend) CreateCustomer(_ context.Context, in api.NewCustomer) (api.Created, error) {
	if err := f.note("create %s %s %s %s %s", in.Name, in.Email, in.Mobile, in.PIN, in.Type); err != nil {
		return api.Created{}, err
	}
	return f.created, nil
}

func (f *fakeBackend) Deposit(_ context.Context, acc string, amount decimal.Decimal) error {
	return f.note("deposit %s %s", acc, amount)
}

func (f *fakeBackend) Withdraw(_ context.Context, acc string, amount decimal.Decimal) error {
	return f.note("withdraw %s %s", acc, amount)
}

func (f *fakeBackend) DeleteCustomer(_ context.Context, acc string) error {
	return f.note("delete %s", acc)
}

func (f *fakeBackend) Transfer(_ context.Context, from, to string, amount decimal.Decimal) error {
	return f.note("transfer %s %s %s", from, to, amount)
}

func (f *fakeBackend) ListTransactions(_ context.Context, limit int) ([]api.TransactionEntry, error) {
	if err := f.note("list-transactions %d", limit); err != nil {
		return nil, err
	}
	return append([]api.TransactionEntry(nil), f.txns...), nil
}

type fakeRecorder struct {
	mu      sync.Mutex
	entries []journal.Entry
}

func (r *fakeRecorder) Record(_ context.Context, e journal.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

// updater is satisfied by both controllers.
type updater interface {
	Update(tea.Msg) tea.Cmd
}

// drain runs cmd and every follow-up command to completion, feeding each
// message back through the given controllers in order.
func drain(t *testing.T, cmd tea.Cmd, ctrls ...updater) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 50 {
			t.Fatal("command chain did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		for _, c := range ctrls {
			if follow := c.Update(msg); follow != nil {
				queue = append(queue, follow)
			}
		}
	}
}

func customer(acc, name string, balance string) api.CustomerRow {
	return api.CustomerRow{
		AccountNo: acc, Name: name, Email: name + "@gmail.com", Mobile: "9876543210",
		Type: api.AccountSavings, Balance: decimal.RequireFromString(balance),
	}
}
