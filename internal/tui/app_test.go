package tui

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"

	"github.com/jask/bankconsole/internal/api"
	"github.com/jask/bankconsole/internal/config"
	"github.com/jask/bankconsole/internal/console"
	"github.com/jask/bankconsole/internal/fakebank"
	"github.com/jask/bankconsole/internal/journal"
	"github.com/jask/bankconsole/internal/logging"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig() config.Config {
	return config.Config{
		API:  config.APIConfig{Root: "http://bank.test/api"},
		Feed: config.FeedConfig{Limit: 20},
		UI: config.UIConfig{
			CurrencySymbol:  "₹",
			TimestampFormat: "02/01/2006, 15:04:05",
			Timezone:        "UTC",
		},
	}
}

func newTestApp(t *testing.T) (*App, *journal.Store) {
	t.Helper()
	bank := fakebank.New(fakebank.WithAccountNumbers(fakebank.Sequential("AC", 100)))
	srv := httptest.NewServer(bank.Router())
	t.Cleanup(srv.Close)

	db, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	store := journal.NewStore(db)

	client := api.NewClient(api.NewGateway(srv.URL+"/api", api.WithTimeout(5*time.Second)))
	app := New(context.Background(), testConfig(), Deps{Backend: client, Journal: store, Log: logging.Discard()})
	return app, store
}

// run executes cmd and every follow-up synchronously.
func run(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("command chain did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		_, follow := a.Update(msg)
		queue = append(queue, follow)
	}
}

func press(t *testing.T, a *App, k tea.KeyMsg) {
	t.Helper()
	_, cmd := a.Update(k)
	run(t, a, cmd)
}

func keyRune(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
)

func typeText(t *testing.T, a *App, s string) {
	t.Helper()
	for _, r := range s {
		press(t, a, keyRune(string(r)))
	}
}

func register(t *testing.T, a *App, name, email, mobile string) {
	t.Helper()
	if a.state != viewRegister {
		press(t, a, keyRune("n"))
	}
	if a.state != viewRegister {
		t.Fatalf("state = %s, want register", a.state)
	}
	for _, v := range []string{name, email, mobile, "1234"} {
		typeText(t, a, v)
		press(t, a, keyTab)
	}
	press(t, a, keyRight)
	press(t, a, keyEnter)
}

func TestStartupShowsPlaceholders(t *testing.T) {
	a, _ := newTestApp(t)
	run(t, a, a.Init())

	view := a.View()
	if !strings.Contains(view, console.NoCustomers) {
		t.Fatalf("view missing customer placeholder:\n%s", view)
	}
	if !strings.Contains(view, console.NoTransactions) {
		t.Fatalf("view missing feed placeholder:\n%s", view)
	}
}

func TestRegisterDepositTransferFlow(t *testing.T) {
	a, store := newTestApp(t)
	run(t, a, a.Init())

	register(t, a, "Asha", "asha@gmail.com", "9876543210")
	if msg, _ := a.reg.Message(); msg != "Customer created. Account: AC100" {
		t.Fatalf("registration message = %q", msg)
	}
	for i, in := range a.regInputs {
		if in.Value() != "" {
			t.Fatalf("input %d not cleared: %q", i, in.Value())
		}
	}
	register(t, a, "Ravi", "ravi@gmail.com", "9876543211")
	press(t, a, keyEsc)

	rows := a.acc.State().Customers()
	if len(rows) != 2 || rows[0].AccountNo != "AC101" {
		t.Fatalf("customers = %+v", rows)
	}

	// Deposit into the selected (newest) row.
	press(t, a, keyRune("d"))
	if !a.acc.Dialog().Open() {
		t.Fatalf("deposit dialog not open")
	}
	typeText(t, a, "500")
	press(t, a, keyEnter)
	if got := a.acc.CustomerView().Rows[0].Balance; got != "500.00" {
		t.Fatalf("balance = %s, want 500.00", got)
	}

	// Overdraw: alert blocks until acknowledged.
	press(t, a, keyRune("w"))
	typeText(t, a, "900")
	press(t, a, keyEnter)
	if a.acc.Alert() != "Insufficient balance" {
		t.Fatalf("alert = %q", a.acc.Alert())
	}
	if !strings.Contains(a.View(), "Insufficient balance") {
		t.Fatalf("alert not rendered")
	}
	press(t, a, keyRune("d"))
	if a.acc.Dialog().Open() {
		t.Fatalf("dialog opened behind alert")
	}
	press(t, a, keyEnter)
	if a.acc.Alert() != "" {
		t.Fatalf("alert not dismissed")
	}

	// Transfer prefilled from the selected row.
	press(t, a, keyRune("t"))
	if got := a.xferInputs[xferFrom].Value(); got != "AC101" {
		t.Fatalf("from = %q", got)
	}
	typeText(t, a, "AC100")
	press(t, a, keyTab)
	typeText(t, a, "200")
	press(t, a, keyEnter)

	if msg, kind := a.acc.TransferMessage(); msg != "Transferred ₹200.00" || kind != console.MsgSuccess {
		t.Fatalf("transfer message = %q (%v)", msg, kind)
	}
	if a.xferInputs[xferAmount].Value() != "" {
		t.Fatalf("transfer form not reset")
	}
	view := a.View()
	if !strings.Contains(view, "TRANSFER — From AC101 to AC100 — ₹200.00") {
		t.Fatalf("feed missing transfer:\n%s", view)
	}

	press(t, a, keyEsc)
	press(t, a, keyRune("l"))
	if a.state != viewJournal {
		t.Fatalf("state = %s, want journal", a.state)
	}
	if len(a.journalRows) != 5 {
		t.Fatalf("journal rows = %d, want 5", len(a.journalRows))
	}
	if a.journalRows[0].Kind != "transfer" {
		t.Fatalf("newest journal row = %+v", a.journalRows[0])
	}

	press(t, a, keyRune("x"))
	press(t, a, keyRune("y"))
	recent, err := store.Recent(context.Background(), 10)
	if err != nil || len(recent) != 0 {
		t.Fatalf("journal after clear = %d rows, err %v", len(recent), err)
	}
}

func TestRegistrationValidationShownInline(t *testing.T) {
	a, _ := newTestApp(t)
	register(t, a, "Asha", "asha@yahoo.com", "9876543210")

	msg, kind := a.reg.Message()
	if msg != console.MsgBadEmail || kind != console.MsgValidation {
		t.Fatalf("message = %q (%v)", msg, kind)
	}
	if a.regInputs[regEmail].Value() != "asha@yahoo.com" {
		t.Fatalf("form cleared on validation failure")
	}
}

func TestDeleteDeclinedKeepsCustomer(t *testing.T) {
	a, _ := newTestApp(t)
	run(t, a, a.Init())
	register(t, a, "Asha", "asha@gmail.com", "9876543210")
	press(t, a, keyEsc)

	press(t, a, keyRune("x"))
	if !a.acc.Dialog().ConfirmOnly() {
		t.Fatalf("delete should ask for confirmation")
	}
	press(t, a, keyRune("n"))
	if len(a.acc.State().Customers()) != 1 {
		t.Fatalf("customer removed after declining")
	}

	press(t, a, keyRune("x"))
	press(t, a, keyRune("y"))
	if !a.acc.CustomerView().Hidden {
		t.Fatalf("table still visible after deleting the only customer")
	}
}

func TestEmptyAmountAbandonsDialog(t *testing.T) {
	a, _ := newTestApp(t)
	run(t, a, a.Init())
	register(t, a, "Asha", "asha@gmail.com", "9876543210")
	press(t, a, keyEsc)

	press(t, a, keyRune("d"))
	press(t, a, keyEnter)
	if a.acc.Dialog().Open() || a.acc.Alert() != "" {
		t.Fatalf("dialog=%v alert=%q", a.acc.Dialog().Open(), a.acc.Alert())
	}
	if got := a.acc.CustomerView().Rows[0].Balance; got != "0.00" {
		t.Fatalf("balance = %s", got)
	}
}

func TestSaveAPIRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("BANKCONSOLE_CONFIG", path)
	a, _ := newTestApp(t)

	press(t, a, keyRune("s"))
	if a.modal != modalEditAPIRoot {
		t.Fatalf("modal = %q", a.modal)
	}
	a.rootInput.SetValue("")
	typeText(t, a, "http://10.0.0.5:3000/api/")
	press(t, a, keyEnter)

	if a.status != "API root saved to config (restart to apply)" {
		t.Fatalf("status = %q", a.status)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Root != "http://10.0.0.5:3000/api" {
		t.Fatalf("saved root = %q", cfg.API.Root)
	}
}

func TestRefreshFailureShownOnStatusLine(t *testing.T) {
	a := New(context.Background(), testConfig(), Deps{
		Backend: api.NewClient(api.NewGateway("http://127.0.0.1:1/api", api.WithTimeout(time.Second))),
		Log:     logging.Discard(),
	})
	run(t, a, a.Init())

	msg, isErr := a.acc.Status()
	if msg == "" || !isErr {
		t.Fatalf("status = %q (%v)", msg, isErr)
	}
	press(t, a, keyRune("l"))
	if !strings.Contains(a.View(), "Journal disabled.") {
		t.Fatalf("journal view should report it is disabled")
	}
}
