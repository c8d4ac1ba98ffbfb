package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/bankconsole/internal/api"
	"github.com/jask/bankconsole/internal/console"
)

// Registration field order. The account type is a toggle, not an input.
const (
	regName = iota
	regEmail
	regMobile
	regPIN
	regType
	regFieldCount
)

const (
	xferFrom = iota
	xferTo
	xferAmount
)

func newInput(prompt string) textinput.Model {
	inp := textinput.New()
	inp.Prompt = prompt
	inp.Cursor.SetMode(cursor.CursorStatic)
	return inp
}

func newRegInputs() []textinput.Model {
	inputs := []textinput.Model{
		newInput("Name:   "),
		newInput("Email:  "),
		newInput("Mobile: "),
		newInput("PIN:    "),
	}
	inputs[regMobile].CharLimit = 10
	inputs[regPIN].CharLimit = 4
	inputs[regPIN].EchoMode = textinput.EchoPassword
	inputs[regName].Focus()
	return inputs
}

func newXferInputs() []textinput.Model {
	return []textinput.Model{
		newInput("From:   "),
		newInput("To:     "),
		newInput("Amount: "),
	}
}

// focusInput moves focus to idx, blurring the rest. An idx past the end
// leaves every input blurred.
func focusInput(inputs []textinput.Model, idx int) {
	for i := range inputs {
		if i == idx {
			inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}
}

func cycle(cur, dir, n int) int {
	return (cur + dir + n) % n
}

// pushRegistration copies the on-screen fields into the controller form.
func (a *App) pushRegistration() {
	typ := ""
	if a.regType >= 0 {
		typ = api.AccountTypes[a.regType]
	}
	a.reg.Form = console.RegistrationForm{
		Name:   a.regInputs[regName].Value(),
		Email:  a.regInputs[regEmail].Value(),
		Mobile: a.regInputs[regMobile].Value(),
		PIN:    a.regInputs[regPIN].Value(),
		Type:   typ,
	}
}

// pullRegistration mirrors controller-side form changes (a reset after a
// successful create) back onto the screen.
func (a *App) pullRegistration() {
	f := a.reg.Form
	setIfChanged(&a.regInputs[regName], f.Name)
	setIfChanged(&a.regInputs[regEmail], f.Email)
	setIfChanged(&a.regInputs[regMobile], f.Mobile)
	setIfChanged(&a.regInputs[regPIN], f.PIN)
	a.regType = -1
	for i, t := range api.AccountTypes {
		if t == f.Type {
			a.regType = i
		}
	}
}

func (a *App) pushTransfer() {
	a.acc.Transfer = console.TransferForm{
		From:   a.xferInputs[xferFrom].Value(),
		To:     a.xferInputs[xferTo].Value(),
		Amount: a.xferInputs[xferAmount].Value(),
	}
}

func (a *App) pullTransfer() {
	f := a.acc.Transfer
	setIfChanged(&a.xferInputs[xferFrom], f.From)
	setIfChanged(&a.xferInputs[xferTo], f.To)
	setIfChanged(&a.xferInputs[xferAmount], f.Amount)
}

func setIfChanged(inp *textinput.Model, v string) {
	if inp.Value() != v {
		inp.SetValue(v)
	}
}

func (a *App) handleRegisterKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.state = viewAccounts
		return a, nil
	case "tab", "shift+tab", "down", "up":
		dir := 1
		if m.String() == "shift+tab" || m.String() == "up" {
			dir = -1
		}
		a.regFocus = cycle(a.regFocus, dir, regFieldCount)
		focusInput(a.regInputs, a.regFocus)
		return a, nil
	case "enter":
		a.pushRegistration()
		return a, a.reg.Submit()
	}
	if a.regFocus == regType {
		switch m.String() {
		case "left", "right", " ":
			a.regType = (a.regType + 1) % len(api.AccountTypes)
			a.pushRegistration()
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.regInputs[a.regFocus], cmd = a.regInputs[a.regFocus].Update(m)
	a.pushRegistration()
	return a, cmd
}

func (a *App) handleTransferKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.xferFocus = false
		focusInput(a.xferInputs, -1)
		return a, nil
	case "tab", "shift+tab":
		dir := 1
		if m.String() == "shift+tab" {
			dir = -1
		}
		a.xferField = cycle(a.xferField, dir, len(a.xferInputs))
		focusInput(a.xferInputs, a.xferField)
		return a, nil
	case "enter":
		a.pushTransfer()
		return a, a.acc.SubmitTransfer()
	}
	var cmd tea.Cmd
	a.xferInputs[a.xferField], cmd = a.xferInputs[a.xferField].Update(m)
	a.pushTransfer()
	return a, cmd
}
