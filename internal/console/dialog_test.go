package console

import "testing"

func TestDialogLifecycle(t *testing.T) {
	var d Dialog
	if d.Confirm("5") || d.Cancel() {
		t.Fatalf("closed dialog accepted a transition")
	}

	d.open(Deposit{AccountNo: "AC1"}, "Deposit amount for AC1", false)
	if d.State() != DialogAwaitingInput || !d.Open() {
		t.Fatalf("state = %v, want awaiting-input", d.State())
	}
	if !d.Confirm("5") {
		t.Fatalf("confirm rejected")
	}
	if d.Cancel() {
		t.Fatalf("cancel after confirm accepted")
	}
	action, value, confirmed := d.take()
	if !confirmed || value != "5" || action.Account() != "AC1" {
		t.Fatalf("take = %v %q %v", action, value, confirmed)
	}
	if d.State() != DialogClosed || d.Action() != nil {
		t.Fatalf("dialog not reset: %v", d.State())
	}

	d.open(Delete{AccountNo: "AC2"}, "Delete this customer?", true)
	d.Cancel()
	if d.State().String() != "cancelled" {
		t.Fatalf("state = %v", d.State())
	}
	if _, _, confirmed := d.take(); confirmed {
		t.Fatalf("cancelled dialog reported confirmed")
	}
}
