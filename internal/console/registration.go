package console

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/bankconsole/internal/api"
)

// RegistrationState is Idle or Submitting.
type RegistrationState int

const (
	RegIdle RegistrationState = iota
	RegSubmitting
)

// Registration validates and submits new-customer creation.
type Registration struct {
	deps    Deps
	Form    RegistrationForm
	state   RegistrationState
	message string
	kind    MessageKind
}

func NewRegistration(deps Deps) *Registration {
	return &Registration{deps: deps.withDefaults()}
}

func (r *Registration) State() RegistrationState { return r.state }

// SubmitDisabled reports whether the submit control is disabled.
func (r *Registration) SubmitDisabled() bool { return r.state == RegSubmitting }

// Message returns the inline message and its channel.
func (r *Registration) Message() (string, MessageKind) { return r.message, r.kind }

// Submit validates the form and, when valid, disables the submit control
// and returns the create command. Invalid input yields the first failing
// rule's message and no command.
func (r *Registration) Submit() tea.Cmd {
	if r.state == RegSubmitting {
		return nil
	}
	r.message, r.kind = "", MsgNone
	form := r.Form.Trimmed()
	if err := ValidateRegistration(form); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			r.message, r.kind = verr.Message, MsgValidation
		}
		return nil
	}

	r.state = RegSubmitting
	deps := r.deps
	return func() tea.Msg {
		created, err := deps.Backend.CreateCustomer(deps.Ctx, api.NewCustomer{
			Name: form.Name, Email: form.Email, Mobile: form.Mobile, PIN: form.PIN, Type: form.Type,
		})
		deps.record(PendingAction{Kind: KindCreate, To: created.AccountNo}, err)
		return customerCreatedMsg{created: created, err: err}
	}
}

// Update applies a create result. The submit control is re-enabled before
// anything else, whatever the outcome.
func (r *Registration) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(customerCreatedMsg)
	if !ok {
		return nil
	}
	r.state = RegIdle
	if m.err != nil {
		r.deps.Log.Warn("create customer failed", "error", m.err)
		r.message, r.kind = api.MessageOf(m.err), MsgError
		return nil
	}
	r.Form = RegistrationForm{}
	r.message, r.kind = "Customer created. Account: "+m.created.AccountNo, MsgSuccess
	r.deps.Log.Info("customer created", "account_no", m.created.AccountNo)
	return func() tea.Msg { return CustomerCreatedMsg{AccountNo: m.created.AccountNo} }
}
