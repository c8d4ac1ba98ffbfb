package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Account types accepted by the service.
const (
	AccountSavings = "Savings"
	AccountCurrent = "Current"
)

// AccountTypes lists the selectable account types in display order.
var AccountTypes = []string{AccountSavings, AccountCurrent}

// CustomerRow is one customer as returned by GET /customers.
type CustomerRow struct {
	AccountNo string          `json:"account_no"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Mobile    string          `json:"mobile"`
	Type      string          `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt string          `json:"created_at,omitempty"`
}

// TransactionEntry is one row of the transaction feed.
type TransactionEntry struct {
	TxnID     string          `json:"txn_id"`
	Timestamp time.Time       `json:"timestamp"`
	Type      string          `json:"type"`
	Details   string          `json:"details"`
	Amount    decimal.Decimal `json:"amount"`
}

// UnmarshalJSON accepts RFC 3339 timestamps as well as the naive
// ISO-8601 form the service emits (no zone, read as UTC).
func (t *TransactionEntry) UnmarshalJSON(data []byte) error {
	type alias TransactionEntry
	var raw struct {
		alias
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = TransactionEntry(raw.alias)
	if raw.Timestamp == "" {
		t.Timestamp = time.Time{}
		return nil
	}
	ts, err := ParseTimestamp(raw.Timestamp)
	if err != nil {
		return err
	}
	t.Timestamp = ts
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses a service timestamp.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse timestamp %q", s)
}

// NewCustomer is the body of POST /customers.
type NewCustomer struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
	PIN    string `json:"pin"`
	Type   string `json:"type"`
}

// Created is the success body of POST /customers.
type Created struct {
	AccountNo string `json:"account_no"`
}

// Number is a decimal that encodes as a bare JSON number rather than the
// quoted string decimal.Decimal produces.
type Number struct{ decimal.Decimal }

// NewNumber wraps d.
func NewNumber(d decimal.Decimal) Number { return Number{d} }

func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.Decimal.String()), nil
}

// AmountRequest is the body of deposit and withdraw calls.
type AmountRequest struct {
	Amount Number `json:"amount"`
}

// TransferRequest is the body of POST /transfer.
type TransferRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount Number `json:"amount"`
}
