package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// Caller is the gateway contract the typed client is built on.
type Caller interface {
	Call(ctx context.Context, method, path string, body any) (json.RawMessage, error)
}

// Client exposes the banking endpoints the console consumes.
type Client struct {
	gw Caller
}

func NewClient(gw Caller) *Client { return &Client{gw: gw} }

func (c *Client) ListCustomers(ctx context.Context) ([]CustomerRow, error) {
	var out []CustomerRow
	if err := c.do(ctx, http.MethodGet, "/customers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCustomer(ctx context.Context, accountNo string) (CustomerRow, error) {
	var out CustomerRow
	err := c.do(ctx, http.MethodGet, customerPath(accountNo), nil, &out)
	return out, err
}

func (c *Client) CreateCustomer(ctx context.Context, in NewCustomer) (Created, error) {
	var out Created
	err := c.do(ctx, http.MethodPost, "/customers", in, &out)
	return out, err
}

func (c *Client) Deposit(ctx context.Context, accountNo string, amount decimal.Decimal) error {
	return c.do(ctx, http.MethodPost, customerPath(accountNo)+"/deposit", AmountRequest{Amount: NewNumber(amount)}, nil)
}

func (c *Client) Withdraw(ctx context.Context, accountNo string, amount decimal.Decimal) error {
	return c.do(ctx, http.MethodPost, customerPath(accountNo)+"/withdraw", AmountRequest{Amount: NewNumber(amount)}, nil)
}

func (c *Client) DeleteCustomer(ctx context.Context, accountNo string) error {
	return c.do(ctx, http.MethodDelete, customerPath(accountNo), nil, nil)
}

func (c *Client) Transfer(ctx context.Context, from, to string, amount decimal.Decimal) error {
	return c.do(ctx, http.MethodPost, "/transfer", TransferRequest{From: from, To: to, Amount: NewNumber(amount)}, nil)
}

// ListTransactions returns the newest limit entries in service order.
func (c *Client) ListTransactions(ctx context.Context, limit int) ([]TransactionEntry, error) {
	var out []TransactionEntry
	if err := c.do(ctx, http.MethodGet, "/transactions?limit="+strconv.Itoa(limit), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.gw.Call(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func customerPath(accountNo string) string {
	return "/customers/" + url.PathEscape(accountNo)
}
