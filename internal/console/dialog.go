package console

// DialogState is the lifecycle of an operator prompt.
type DialogState int

const (
	DialogClosed DialogState = iota
	DialogAwaitingInput
	DialogConfirmed
	DialogCancelled
)

func (s DialogState) String() string {
	switch s {
	case DialogAwaitingInput:
		return "awaiting-input"
	case DialogConfirmed:
		return "confirmed"
	case DialogCancelled:
		return "cancelled"
	default:
		return "closed"
	}
}

// Dialog replaces blocking prompt/confirm boxes. An amount dialog collects
// text; a confirm dialog only needs a yes or no.
type Dialog struct {
	state       DialogState
	prompt      string
	confirmOnly bool
	action      RowAction
	value       string
}

func (d *Dialog) State() DialogState { return d.state }
func (d *Dialog) Prompt() string     { return d.prompt }
func (d *Dialog) ConfirmOnly() bool  { return d.confirmOnly }
func (d *Dialog) Open() bool         { return d.state == DialogAwaitingInput }

// Action returns the row action the dialog was opened for.
func (d *Dialog) Action() RowAction { return d.action }

func (d *Dialog) open(action RowAction, prompt string, confirmOnly bool) {
	*d = Dialog{state: DialogAwaitingInput, prompt: prompt, confirmOnly: confirmOnly, action: action}
}

// Confirm accepts the dialog with value. Only valid while awaiting input.
func (d *Dialog) Confirm(value string) bool {
	if d.state != DialogAwaitingInput {
		return false
	}
	d.state = DialogConfirmed
	d.value = value
	return true
}

// Cancel dismisses the dialog. Only valid while awaiting input.
func (d *Dialog) Cancel() bool {
	if d.state != DialogAwaitingInput {
		return false
	}
	d.state = DialogCancelled
	return true
}

// take consumes a resolved dialog and closes it.
func (d *Dialog) take() (action RowAction, value string, confirmed bool) {
	action, value, confirmed = d.action, d.value, d.state == DialogConfirmed
	*d = Dialog{}
	return action, value, confirmed
}
