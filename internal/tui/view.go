package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/bankconsole/internal/api"
	"github.com/jask/bankconsole/internal/console"
	"github.com/jask/bankconsole/internal/journal"
)

var (
	colorText    lipgloss.Color = "#cdd6f4"
	colorMuted   lipgloss.Color = "#a6adc8"
	colorBorder  lipgloss.Color = "#585b70"
	colorAccent  lipgloss.Color = "#89b4fa"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorError   lipgloss.Color = "#f38ba8"
	colorWarn    lipgloss.Color = "#f9e2af"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	warnStyle    = lipgloss.NewStyle().Foreground(colorWarn)
	cursorStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	modalStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Foreground(colorText).
			Padding(0, 1)
)

func (a *App) View() string {
	var body string
	switch a.state {
	case viewRegister:
		body = a.renderRegister()
	case viewJournal:
		body = a.renderJournal()
	default:
		body = a.renderAccounts()
	}
	if modal := a.renderModal(); modal != "" {
		body += "\n\n" + modalStyle.Render(modal)
	}
	body += "\n" + a.renderStatus()
	body += "\n" + a.help.ShortHelpView(a.bindings())
	return body
}

func messageStyle(kind console.MessageKind) lipgloss.Style {
	switch kind {
	case console.MsgSuccess:
		return successStyle
	case console.MsgError:
		return errorStyle
	case console.MsgValidation:
		return warnStyle
	default:
		return mutedStyle
	}
}

func (a *App) renderRegister() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Register customer") + "\n")
	for _, in := range a.regInputs {
		b.WriteString(in.View() + "\n")
	}
	marker := "  "
	if a.regFocus == regType {
		marker = cursorStyle.Render("▶ ")
	}
	var opts []string
	for i, t := range api.AccountTypes {
		dot := "( )"
		if i == a.regType {
			dot = "(•)"
		}
		opts = append(opts, dot+" "+t)
	}
	b.WriteString(marker + "Type:   " + strings.Join(opts, "  ") + "\n")
	if a.reg.SubmitDisabled() {
		b.WriteString(mutedStyle.Render("[ creating... ]") + "\n")
	} else {
		b.WriteString("[ enter: create ]\n")
	}
	if msg, kind := a.reg.Message(); msg != "" {
		b.WriteString(messageStyle(kind).Render(msg) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderAccounts() string {
	var b strings.Builder
	title := titleStyle.Render("Customers")
	if a.acc.State().CustomersRefreshing() {
		title += mutedStyle.Render("  refreshing...")
	}
	b.WriteString(title + "\n")
	b.WriteString(a.renderCustomerTable())
	b.WriteString("\n\n" + a.renderTransfer())
	b.WriteString("\n\n" + titleStyle.Render("Recent transactions") + "\n")
	b.WriteString(a.renderFeed())
	return b.String()
}

func (a *App) renderCustomerTable() string {
	view := a.acc.CustomerView()
	if view.Hidden {
		if view.Placeholder == "" {
			return mutedStyle.Render("loading...")
		}
		return mutedStyle.Render(view.Placeholder)
	}
	lines := []string{headerStyle.Render(fmt.Sprintf("  %-14s %-20s %-26s %-10s %-8s %12s", "Account", "Name", "Email", "Mobile", "Type", "Balance"))}
	for i, r := range view.Rows {
		marker := "  "
		if i == a.cursor {
			marker = cursorStyle.Render("▶ ")
		}
		lines = append(lines, marker+fmt.Sprintf("%-14s %-20s %-26s %-10s %-8s %12s",
			fit(r.AccountNo, 14), fit(r.Name, 20), fit(r.Email, 26), fit(r.Mobile, 10), fit(r.Type, 8),
			a.cfg.UI.CurrencySymbol+r.Balance))
	}
	return a.clip(strings.Join(lines, "\n"))
}

// fit truncates s to width display cells.
func fit(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

func (a *App) clip(s string) string {
	if a.width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, a.width, "")
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderTransfer() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Transfer") + "\n")
	for _, in := range a.xferInputs {
		b.WriteString(in.View() + "\n")
	}
	var hints []string
	for _, v := range []string{a.acc.Transfer.From, a.acc.Transfer.To} {
		if s, ok := a.acc.SuggestAccount(v); ok {
			hints = append(hints, fmt.Sprintf("did you mean %s?", s))
		}
	}
	if len(hints) > 0 {
		b.WriteString(mutedStyle.Render(strings.Join(hints, "  ")) + "\n")
	}
	if msg, kind := a.acc.TransferMessage(); msg != "" {
		b.WriteString(messageStyle(kind).Render(msg) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderFeed() string {
	view := a.acc.FeedView(a.cfg.UI.TimestampFormat, a.tz)
	if view.Placeholder != "" {
		return mutedStyle.Render(view.Placeholder)
	}
	if len(view.Lines) == 0 {
		return mutedStyle.Render("loading...")
	}
	return a.clip(strings.Join(view.Lines, "\n"))
}

func (a *App) renderJournal() string {
	title := titleStyle.Render("Journal")
	if a.journal == nil {
		return title + "\n" + mutedStyle.Render("Journal disabled.")
	}
	if len(a.journalRows) == 0 {
		return title + "\n" + mutedStyle.Render("No operations recorded.")
	}
	lines := []string{title}
	for i, e := range a.journalRows {
		marker := "  "
		if i == a.journalCur {
			marker = cursorStyle.Render("▶ ")
		}
		lines = append(lines, marker+a.journalLine(e))
	}
	return a.clip(strings.Join(lines, "\n"))
}

func (a *App) journalLine(e journal.Entry) string {
	target := e.From
	if e.To != "" {
		if target != "" {
			target += " → " + e.To
		} else {
			target = e.To
		}
	}
	outcome := successStyle.Render(e.Outcome)
	if e.Outcome != journal.OutcomeOK {
		outcome = errorStyle.Render(e.Outcome)
	}
	line := fmt.Sprintf("%s  %-8s %-30s %10s  %s", e.CreatedAt.In(a.tz).Format(a.cfg.UI.TimestampFormat), e.Kind, fit(target, 30), e.Amount, outcome)
	if e.Message != "" {
		line += "  " + e.Message
	}
	return line
}

func (a *App) renderModal() string {
	if alert := a.acc.Alert(); alert != "" {
		return errorStyle.Render(alert) + "\n[enter] OK"
	}
	if d := a.acc.Dialog(); d.Open() {
		if d.ConfirmOnly() {
			return titleStyle.Render(d.Prompt()) + "\n" + a.dialogFor + "\n[y] Yes  [n] No"
		}
		return titleStyle.Render(d.Prompt()) + "\n" + a.dialogInput.View() + "\n[enter] OK  [esc] Cancel"
	}
	switch a.modal {
	case modalEditAPIRoot:
		return titleStyle.Render("API root (stored in config.toml)") + "\n" + a.rootInput.View() + "\n[enter] Save  [esc] Cancel"
	case modalConfirmClear:
		return titleStyle.Render("Clear journal?") + "\nThis deletes every recorded operation.\n[y] Yes  [n] No"
	}
	return ""
}

func (a *App) renderStatus() string {
	msg, isErr := a.acc.Status()
	if msg == "" {
		msg, isErr = a.status, a.statusErr
	}
	if msg == "" {
		return mutedStyle.Render("Ready · " + a.cfg.API.Root)
	}
	if isErr {
		return errorStyle.Render(ansi.Truncate(msg, max(1, a.width), ""))
	}
	return successStyle.Render(ansi.Truncate(msg, max(1, a.width), ""))
}
