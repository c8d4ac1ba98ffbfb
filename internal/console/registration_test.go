package console

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/bankconsole/internal/api"
	"github.com/jask/bankconsole/internal/journal"
)

func TestRegistrationSuccessClearsForm(t *testing.T) {
	backend := newFakeBackend()
	backend.created = api.Created{AccountNo: "AC100"}
	rec := &fakeRecorder{}
	reg := NewRegistration(Deps{Backend: backend, Recorder: rec})
	reg.Form = RegistrationForm{Name: " Asha ", Email: "a@gmail.com", Mobile: "9876543210", PIN: "1234", Type: "Savings"}

	cmd := reg.Submit()
	require.NotNil(t, cmd)
	require.True(t, reg.SubmitDisabled(), "submit control disabled while the call is in flight")
	require.Equal(t, RegSubmitting, reg.State())

	drain(t, cmd, reg)

	require.False(t, reg.SubmitDisabled())
	msg, kind := reg.Message()
	require.Equal(t, "Customer created. Account: AC100", msg)
	require.Equal(t, MsgSuccess, kind)
	require.Equal(t, RegistrationForm{}, reg.Form)
	require.Equal(t, []string{"create Asha a@gmail.com 9876543210 1234 Savings"}, backend.Calls())
	require.Len(t, rec.entries, 1)
	require.Equal(t, "create", rec.entries[0].Kind)
	require.Equal(t, "AC100", rec.entries[0].To)
	require.Equal(t, journal.OutcomeOK, rec.entries[0].Outcome)
}

func TestRegistrationFailureKeepsForm(t *testing.T) {
	backend := newFakeBackend()
	backend.fail["create"] = &api.Error{Status: http.StatusBadRequest, Message: "Email or mobile already exists", RequestID: "rid"}
	rec := &fakeRecorder{}
	reg := NewRegistration(Deps{Backend: backend, Recorder: rec})
	form := validForm()
	reg.Form = form

	drain(t, reg.Submit(), reg)

	require.False(t, reg.SubmitDisabled(), "control re-enabled after a failed call")
	msg, kind := reg.Message()
	require.Equal(t, "Email or mobile already exists", msg)
	require.Equal(t, MsgError, kind)
	require.Equal(t, form, reg.Form)
	require.Equal(t, journal.OutcomeFailed, rec.entries[0].Outcome)
	require.Equal(t, "rid", rec.entries[0].RequestID)
}

func TestRegistrationGenericErrorMessage(t *testing.T) {
	backend := newFakeBackend()
	backend.fail["create"] = &api.Error{Status: http.StatusInternalServerError, Message: api.GenericMessage}
	reg := NewRegistration(Deps{Backend: backend})
	reg.Form = validForm()

	drain(t, reg.Submit(), reg)

	msg, kind := reg.Message()
	require.Equal(t, "API error", msg)
	require.Equal(t, MsgError, kind)
}

func TestRegistrationValidationMakesNoCall(t *testing.T) {
	backend := newFakeBackend()
	reg := NewRegistration(Deps{Backend: backend})
	reg.Form = validForm()
	reg.Form.Mobile = "12345"

	cmd := reg.Submit()
	require.Nil(t, cmd)
	require.False(t, reg.SubmitDisabled())
	msg, kind := reg.Message()
	require.Equal(t, MsgBadMobile, msg)
	require.Equal(t, MsgValidation, kind)
	require.Empty(t, backend.Calls())
	require.Equal(t, "12345", reg.Form.Mobile)
}

func TestRegistrationIgnoresSubmitWhileSubmitting(t *testing.T) {
	backend := newFakeBackend()
	backend.created = api.Created{AccountNo: "AC1"}
	reg := NewRegistration(Deps{Backend: backend})
	reg.Form = validForm()

	first := reg.Submit()
	require.NotNil(t, first)
	require.Nil(t, reg.Submit())

	drain(t, first, reg)
	require.Len(t, backend.Calls(), 1)
}

func TestRegistrationAnnouncesCreatedCustomer(t *testing.T) {
	backend := newFakeBackend()
	backend.created = api.Created{AccountNo: "AC7"}
	reg := NewRegistration(Deps{Backend: backend})
	reg.Form = validForm()

	msg := reg.Submit()()
	follow := reg.Update(msg)
	require.NotNil(t, follow)
	require.Equal(t, CustomerCreatedMsg{AccountNo: "AC7"}, follow())
}

func TestRegistrationLeavesAccountTypeToService(t *testing.T) {
	backend := newFakeBackend()
	backend.created = api.Created{AccountNo: "AC100"}
	reg := NewRegistration(Deps{Backend: backend})
	reg.Form = RegistrationForm{Email: "a@gmail.com", Mobile: "9876543210", PIN: "1234", Type: "SAVINGS"}

	cmd := reg.Submit()
	require.NotNil(t, cmd, "an upper-case type is not rejected locally")
	drain(t, cmd, reg)

	msg, kind := reg.Message()
	require.Equal(t, "Customer created. Account: AC100", msg)
	require.Equal(t, MsgSuccess, kind)
	require.Equal(t, RegistrationForm{}, reg.Form)
	require.Equal(t, []string{"create  a@gmail.com 9876543210 1234 SAVINGS"}, backend.Calls())
}
