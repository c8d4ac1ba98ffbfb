package console

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError is a local input failure. It never reaches the gateway.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	emailPattern  = regexp.MustCompile(`(?i)^\S+@gmail\.com$`)
	mobilePattern = regexp.MustCompile(`^[6789]\d{9}$`)
	pinPattern    = regexp.MustCompile(`^\d{4}$`)
)

// Validation messages shown verbatim to the operator.
const (
	MsgBadEmail    = "Email must end with @gmail.com"
	MsgBadMobile   = "Mobile must start with 6/7/8/9 and be 10 digits"
	MsgBadPIN      = "PIN must be exactly 4 digits"
	MsgBadType     = "Choose account type"
	MsgBadTransfer = "Provide valid from/to accounts and positive amount"
	MsgBadAmount   = "Invalid amount"
)

// RegistrationForm holds the new-customer inputs.
type RegistrationForm struct {
	Name   string
	Email  string
	Mobile string
	PIN    string
	Type   string
}

// Trimmed returns the form with surrounding whitespace removed. Type is a
// selection and is left alone.
func (f RegistrationForm) Trimmed() RegistrationForm {
	return RegistrationForm{
		Name:   strings.TrimSpace(f.Name),
		Email:  strings.TrimSpace(f.Email),
		Mobile: strings.TrimSpace(f.Mobile),
		PIN:    strings.TrimSpace(f.PIN),
		Type:   f.Type,
	}
}

// ValidateRegistration applies the registration rules in order; the first
// failing rule wins. The account type only has to be chosen; the service
// decides which types it accepts.
func ValidateRegistration(f RegistrationForm) error {
	switch {
	case !emailPattern.MatchString(f.Email):
		return &ValidationError{Field: "email", Message: MsgBadEmail}
	case !mobilePattern.MatchString(f.Mobile):
		return &ValidationError{Field: "mobile", Message: MsgBadMobile}
	case !pinPattern.MatchString(f.PIN):
		return &ValidationError{Field: "pin", Message: MsgBadPIN}
	case f.Type == "":
		return &ValidationError{Field: "type", Message: MsgBadType}
	}
	return nil
}

// TransferForm holds the fund-transfer inputs.
type TransferForm struct {
	From   string
	To     string
	Amount string
}

// ValidateTransfer checks both accounts are present and the amount is a
// positive number, returning the parsed amount.
func ValidateTransfer(f TransferForm) (from, to string, amount decimal.Decimal, err error) {
	from = strings.TrimSpace(f.From)
	to = strings.TrimSpace(f.To)
	amount, perr := ParseAmount(f.Amount)
	if from == "" || to == "" || perr != nil || !amount.IsPositive() {
		return "", "", decimal.Zero, &ValidationError{Field: "transfer", Message: MsgBadTransfer}
	}
	return from, to, amount, nil
}

// ParseAmount reads a numeric amount typed by the operator.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "amount", Message: MsgBadAmount}
	}
	return d, nil
}
