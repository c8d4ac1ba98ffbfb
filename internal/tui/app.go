package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/bankconsole/internal/config"
	"github.com/jask/bankconsole/internal/console"
	"github.com/jask/bankconsole/internal/journal"
)

// JournalLimit caps the journal view.
const JournalLimit = 100

// Journal is the local operation log behind the journal view.
type Journal interface {
	Record(ctx context.Context, e journal.Entry) error
	Recent(ctx context.Context, limit int) ([]journal.Entry, error)
	Clear(ctx context.Context) error
}

// Deps are the collaborators the App drives.
type Deps struct {
	Backend console.Backend
	Journal Journal
	Log     *slog.Logger
}

// App ties together views.
type App struct {
	ctx     context.Context
	cfg     config.Config
	journal Journal
	reg     *console.Registration
	acc     *console.Accounts
	keys    keyMap
	help    help.Model
	tz      *time.Location

	state        appState
	modal        modalState
	cursor       int
	journalRows  []journal.Entry
	journalCur   int
	status       string
	statusErr    bool
	width        int
	showFullHelp bool

	regInputs []textinput.Model
	regFocus  int
	regType   int

	xferInputs []textinput.Model
	xferField  int
	xferFocus  bool

	dialogInput textinput.Model
	dialogFor   string
	rootInput   textinput.Model
}

type appState string

const (
	viewAccounts appState = "accounts"
	viewRegister appState = "register"
	viewJournal  appState = "journal"
)

type modalState string

const (
	modalNone         modalState = ""
	modalEditAPIRoot  modalState = "editAPIRoot"
	modalConfirmClear modalState = "confirmClear"
)

func New(ctx context.Context, cfg config.Config, deps Deps) *App {
	cdeps := console.Deps{Ctx: ctx, Backend: deps.Backend, Log: deps.Log}
	if deps.Journal != nil {
		cdeps.Recorder = deps.Journal
	}
	return &App{
		ctx:     ctx,
		cfg:     cfg,
		journal: deps.Journal,
		reg:     console.NewRegistration(cdeps),
		acc: console.NewAccounts(cdeps, console.AccountsOptions{
			FeedLimit: cfg.Feed.Limit,
			Currency:  cfg.UI.CurrencySymbol,
		}),
		keys:        defaultKeys(),
		help:        help.New(),
		tz:          cfg.UI.Location(),
		state:       viewAccounts,
		width:       100,
		regInputs:   newRegInputs(),
		regType:     -1,
		xferInputs:  newXferInputs(),
		dialogInput: newInput("> "),
		rootInput:   newInput("> "),
	}
}

// Registration exposes the registration controller.
func (a *App) Registration() *console.Registration { return a.reg }

// Accounts exposes the account console controller.
func (a *App) Accounts() *console.Accounts { return a.acc }

func (a *App) Init() tea.Cmd {
	return a.acc.Init()
}

func (a *App) loadJournal() tea.Cmd {
	j := a.journal
	return func() tea.Msg {
		if j == nil {
			return journalMsg(nil)
		}
		rows, err := j.Recent(a.ctx, JournalLimit)
		if err != nil {
			return errMsg{err}
		}
		return journalMsg(rows)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(m)
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.help.Width = m.Width
		return a, nil
	case journalMsg:
		a.journalRows = []journal.Entry(m)
		if a.journalCur >= len(a.journalRows) {
			a.journalCur = 0
		}
		return a, nil
	case journalClearedMsg:
		a.journalRows, a.journalCur = nil, 0
		a.status, a.statusErr = "journal cleared", false
		return a, nil
	case statusMsg:
		a.status, a.statusErr = string(m), false
		return a, nil
	case errMsg:
		a.status, a.statusErr = "error: "+m.Error(), true
		return a, nil
	}

	if _, ok := msg.(console.CustomerCreatedMsg); ok {
		a.regFocus = regName
		focusInput(a.regInputs, a.regFocus)
	}
	cmd := tea.Batch(a.reg.Update(msg), a.acc.Update(msg))
	a.pullRegistration()
	a.pullTransfer()
	a.clampCursor()
	return a, cmd
}

func (a *App) clampCursor() {
	n := len(a.acc.State().Customers())
	if a.cursor >= n {
		a.cursor = max(0, n-1)
	}
}

func (a *App) selectedAccount() string {
	rows := a.acc.State().Customers()
	if a.cursor < 0 || a.cursor >= len(rows) {
		return ""
	}
	return rows[a.cursor].AccountNo
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.acc.Alert() != "" {
		switch m.String() {
		case "enter", "esc", " ":
			a.acc.DismissAlert()
		}
		return a, nil
	}
	if d := a.acc.Dialog(); d.Open() {
		return a.handleDialogKey(m, d)
	}
	if a.modal != modalNone {
		return a.handleModalKey(m)
	}
	switch {
	case a.state == viewRegister:
		return a.handleRegisterKey(m)
	case a.state == viewJournal:
		return a.handleJournalKey(m)
	case a.xferFocus:
		return a.handleTransferKey(m)
	}
	return a.handleAccountsKey(m)
}

func (a *App) handleAccountsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := a.keys
	switch {
	case key.Matches(m, k.Quit):
		return a, tea.Quit
	case key.Matches(m, k.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(m, k.Down):
		if a.cursor < len(a.acc.State().Customers())-1 {
			a.cursor++
		}
	case key.Matches(m, k.Deposit):
		return a, a.dispatch(console.Deposit{AccountNo: a.selectedAccount()})
	case key.Matches(m, k.Withdraw):
		return a, a.dispatch(console.Withdraw{AccountNo: a.selectedAccount()})
	case key.Matches(m, k.Delete):
		return a, a.dispatch(console.Delete{AccountNo: a.selectedAccount()})
	case key.Matches(m, k.Transfer):
		a.xferFocus = true
		a.xferField = xferFrom
		if acc := a.selectedAccount(); acc != "" && a.xferInputs[xferFrom].Value() == "" {
			a.xferInputs[xferFrom].SetValue(acc)
			a.xferField = xferTo
			a.pushTransfer()
		}
		focusInput(a.xferInputs, a.xferField)
	case key.Matches(m, k.Register):
		a.state = viewRegister
		focusInput(a.regInputs, a.regFocus)
	case key.Matches(m, k.Refresh):
		return a, tea.Batch(a.acc.RefreshCustomers(), a.acc.RefreshTransactions())
	case key.Matches(m, k.Journal):
		a.state = viewJournal
		return a, a.loadJournal()
	case key.Matches(m, k.Settings):
		a.modal = modalEditAPIRoot
		a.rootInput.SetValue(a.cfg.API.Root)
		a.rootInput.Focus()
	case key.Matches(m, k.Help):
		a.showFullHelp = !a.showFullHelp
	}
	return a, nil
}

func (a *App) dispatch(action console.RowAction) tea.Cmd {
	cmd := a.acc.Dispatch(action)
	if a.acc.Dialog().Open() {
		a.dialogFor = action.Account()
		a.dialogInput.SetValue("")
		a.dialogInput.Focus()
	}
	return cmd
}

func (a *App) handleDialogKey(m tea.KeyMsg, d *console.Dialog) (tea.Model, tea.Cmd) {
	if d.ConfirmOnly() {
		switch m.String() {
		case "y", "Y", "enter":
			return a, a.acc.ConfirmDialog("")
		case "n", "N", "esc":
			return a, a.acc.CancelDialog()
		}
		return a, nil
	}
	switch m.Type {
	case tea.KeyEsc:
		a.dialogInput.Blur()
		return a, a.acc.CancelDialog()
	case tea.KeyEnter:
		value := a.dialogInput.Value()
		a.dialogInput.Blur()
		return a, a.acc.ConfirmDialog(value)
	}
	var cmd tea.Cmd
	a.dialogInput, cmd = a.dialogInput.Update(m)
	return a, cmd
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalConfirmClear:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			return a, a.clearJournalCmd()
		case "n", "N", "esc":
			a.modal = modalNone
		}
	case modalEditAPIRoot:
		switch m.Type {
		case tea.KeyEsc:
			a.modal = modalNone
			a.rootInput.Blur()
		case tea.KeyEnter:
			text := strings.TrimSpace(a.rootInput.Value())
			if text == "" {
				a.status, a.statusErr = "enter a value", true
				return a, nil
			}
			a.modal = modalNone
			a.rootInput.Blur()
			return a, a.saveAPIRootCmd(text)
		default:
			var cmd tea.Cmd
			a.rootInput, cmd = a.rootInput.Update(m)
			return a, cmd
		}
	}
	return a, nil
}

func (a *App) handleJournalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := a.keys
	switch {
	case key.Matches(m, k.Quit):
		return a, tea.Quit
	case key.Matches(m, k.Back):
		a.state = viewAccounts
	case key.Matches(m, k.Up):
		if a.journalCur > 0 {
			a.journalCur--
		}
	case key.Matches(m, k.Down):
		if a.journalCur < len(a.journalRows)-1 {
			a.journalCur++
		}
	case key.Matches(m, k.Refresh):
		return a, a.loadJournal()
	case key.Matches(m, k.Clear):
		if a.journal != nil {
			a.modal = modalConfirmClear
		}
	}
	return a, nil
}

// commands
func (a *App) saveAPIRootCmd(root string) tea.Cmd {
	cfg := a.cfg
	cfg.API.Root = strings.TrimRight(root, "/")
	a.cfg = cfg
	return func() tea.Msg {
		if err := config.Save(cfg); err != nil {
			return errMsg{err}
		}
		return statusMsg("API root saved to config (restart to apply)")
	}
}

func (a *App) clearJournalCmd() tea.Cmd {
	j := a.journal
	return func() tea.Msg {
		if err := j.Clear(a.ctx); err != nil {
			return errMsg{fmt.Errorf("clear journal: %w", err)}
		}
		return journalClearedMsg{}
	}
}
