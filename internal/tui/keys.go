package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Register key.Binding
	Deposit  key.Binding
	Withdraw key.Binding
	Delete   key.Binding
	Transfer key.Binding
	Refresh  key.Binding
	Journal  key.Binding
	Settings key.Binding
	Back     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Submit   key.Binding
	Toggle   key.Binding
	Clear    key.Binding
	Help     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Register: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new customer")),
		Deposit:  key.NewBinding(key.WithKeys("d", "+"), key.WithHelp("d", "deposit")),
		Withdraw: key.NewBinding(key.WithKeys("w", "-"), key.WithHelp("w", "withdraw")),
		Delete:   key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		Transfer: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "transfer")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Journal:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "journal")),
		Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "api root")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Toggle:   key.NewBinding(key.WithKeys("left", "right", " "), key.WithHelp("←/→", "account type")),
		Clear:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear journal")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	}
}

// bindings returns the keys shown in the footer for the current view.
func (a *App) bindings() []key.Binding {
	k := a.keys
	switch {
	case a.state == viewRegister:
		return []key.Binding{k.Next, k.Prev, k.Toggle, k.Submit, k.Back}
	case a.state == viewJournal:
		return []key.Binding{k.Up, k.Down, k.Refresh, k.Clear, k.Back, k.Quit}
	case a.xferFocus:
		return []key.Binding{k.Next, k.Prev, k.Submit, k.Back}
	case a.showFullHelp:
		return []key.Binding{k.Up, k.Down, k.Deposit, k.Withdraw, k.Delete, k.Transfer, k.Register, k.Refresh, k.Journal, k.Settings, k.Help, k.Quit}
	default:
		return []key.Binding{k.Deposit, k.Withdraw, k.Delete, k.Transfer, k.Register, k.Help, k.Quit}
	}
}
