// Package fakebank is an in-memory stand-in for the banking service the
// console talks to. It follows the real service's rules and messages closely
// enough to drive the console end to end in tests and local runs.
package fakebank

import (
	"encoding/binary"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type customer struct {
	AccountNo string
	Name      string
	Email     string
	Mobile    string
	PIN       string
	Type      string
	Balance   decimal.Decimal
	CreatedAt time.Time
}

type txn struct {
	ID        string
	Type      string
	Amount    decimal.Decimal
	Details   string
	Timestamp time.Time
}

// Bank holds customers and the transaction log.
type Bank struct {
	mu        sync.Mutex
	customers []*customer // oldest first
	txns      []txn       // oldest first
	now       func() time.Time
	nextAcct  func() string
}

// Option configures a Bank.
type Option func(*Bank)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Bank) { b.now = now }
}

// WithAccountNumbers overrides account number generation.
func WithAccountNumbers(next func() string) Option {
	return func(b *Bank) { b.nextAcct = next }
}

// New returns an empty bank.
func New(opts ...Option) *Bank {
	b := &Bank{now: func() time.Time { return time.Now().UTC() }, nextAcct: randomAccountNo}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Sequential returns a generator yielding prefix1, prefix2, ...
func Sequential(prefix string, start int) func() string {
	n := start
	return func() string {
		s := fmt.Sprintf("%s%d", prefix, n)
		n++
		return s
	}
}

func randomAccountNo() string {
	id := uuid.New()
	n := binary.BigEndian.Uint64(id[:8]) % 1_000_000_000_000
	return fmt.Sprintf("%012d", n)
}

// Router returns the HTTP API mounted under /api.
func (b *Bank) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders:    []string{"Content-Type", "X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))

	api := r.Group("/api")
	api.GET("/customers", b.listCustomers)
	api.POST("/customers", b.createCustomer)
	api.GET("/customers/:acc", b.getCustomer)
	api.DELETE("/customers/:acc", b.deleteCustomer)
	api.POST("/customers/:acc/deposit", b.deposit)
	api.POST("/customers/:acc/withdraw", b.withdraw)
	api.POST("/transfer", b.transfer)
	api.GET("/transactions", b.listTransactions)
	return r
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

func customerJSON(cu *customer) gin.H {
	f, _ := cu.Balance.Float64()
	return gin.H{
		"account_no": cu.AccountNo,
		"name":       cu.Name,
		"email":      cu.Email,
		"mobile":     cu.Mobile,
		"type":       cu.Type,
		"balance":    f,
		"created_at": cu.CreatedAt.Format("2006-01-02T15:04:05.000000"),
	}
}

func (b *Bank) listCustomers(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]gin.H, 0, len(b.customers))
	for i := len(b.customers) - 1; i >= 0; i-- {
		out = append(out, customerJSON(b.customers[i]))
	}
	c.JSON(http.StatusOK, out)
}

type createRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
	PIN    string `json:"pin"`
	Type   string `json:"type"`
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

var accountTypes = []string{"Savings", "Current"}

// accountType returns the canonical spelling of s, or "" when the bank
// offers no such account.
func accountType(s string) string {
	for _, t := range accountTypes {
		if strings.EqualFold(s, t) {
			return t
		}
	}
	return ""
}

func (b *Bank) createCustomer(c *gin.Context) {
	var req createRequest
	_ = c.ShouldBindJSON(&req)
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	mobile := strings.TrimSpace(req.Mobile)
	pin := strings.TrimSpace(req.PIN)
	typ := accountType(strings.TrimSpace(req.Type))

	switch {
	case name == "":
		fail(c, http.StatusBadRequest, "Name required")
		return
	case !strings.HasSuffix(email, "@gmail.com"):
		fail(c, http.StatusBadRequest, "Email must end with @gmail.com")
		return
	case len(mobile) != 10 || !strings.ContainsRune("6789", rune(mobile[0])) || !isDigits(mobile):
		fail(c, http.StatusBadRequest, "Invalid mobile")
		return
	case len(pin) != 4 || !isDigits(pin):
		fail(c, http.StatusBadRequest, "PIN must be 4 digits")
		return
	case typ == "":
		fail(c, http.StatusBadRequest, "Invalid account type")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, cu := range b.customers {
		if cu.Email == email || cu.Mobile == mobile {
			fail(c, http.StatusBadRequest, "Email or mobile already exists")
			return
		}
	}
	acc := b.nextAcct()
	for b.findLocked(acc) != nil {
		acc = b.nextAcct()
	}
	b.customers = append(b.customers, &customer{
		AccountNo: acc, Name: name, Email: email, Mobile: mobile, PIN: pin, Type: typ,
		Balance: decimal.Zero, CreatedAt: b.now(),
	})
	c.JSON(http.StatusCreated, gin.H{"account_no": acc})
}

func (b *Bank) findLocked(acc string) *customer {
	for _, cu := range b.customers {
		if cu.AccountNo == acc {
			return cu
		}
	}
	return nil
}

func (b *Bank) getCustomer(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cu := b.findLocked(c.Param("acc"))
	if cu == nil {
		fail(c, http.StatusNotFound, "Customer not found")
		return
	}
	c.JSON(http.StatusOK, customerJSON(cu))
}

func (b *Bank) deleteCustomer(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc := c.Param("acc")
	for i, cu := range b.customers {
		if cu.AccountNo == acc {
			b.customers = append(b.customers[:i], b.customers[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
			return
		}
	}
	fail(c, http.StatusNotFound, "Customer not found")
}

func readAmount(c *gin.Context) (decimal.Decimal, bool) {
	var req struct {
		Amount *decimal.Decimal `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid amount")
		return decimal.Zero, false
	}
	if req.Amount == nil {
		return decimal.Zero, true
	}
	return *req.Amount, true
}

func (b *Bank) recordLocked(kind string, amount decimal.Decimal, details string) {
	b.txns = append(b.txns, txn{ID: uuid.NewString(), Type: kind, Amount: amount, Details: details, Timestamp: b.now()})
}

func (b *Bank) deposit(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc := c.Param("acc")
	cu := b.findLocked(acc)
	if cu == nil {
		fail(c, http.StatusNotFound, "Customer not found")
		return
	}
	amt, ok := readAmount(c)
	if !ok {
		return
	}
	if !amt.IsPositive() {
		fail(c, http.StatusBadRequest, "Amount must be positive")
		return
	}
	cu.Balance = cu.Balance.Add(amt)
	b.recordLocked("deposit", amt, "Deposit to "+acc)
	f, _ := cu.Balance.Float64()
	c.JSON(http.StatusOK, gin.H{"balance": f})
}

func (b *Bank) withdraw(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc := c.Param("acc")
	cu := b.findLocked(acc)
	if cu == nil {
		fail(c, http.StatusNotFound, "Customer not found")
		return
	}
	amt, ok := readAmount(c)
	if !ok {
		return
	}
	if !amt.IsPositive() {
		fail(c, http.StatusBadRequest, "Amount must be positive")
		return
	}
	if cu.Balance.LessThan(amt) {
		fail(c, http.StatusBadRequest, "Insufficient balance")
		return
	}
	cu.Balance = cu.Balance.Sub(amt)
	b.recordLocked("withdraw", amt, "Withdraw from "+acc)
	f, _ := cu.Balance.Float64()
	c.JSON(http.StatusOK, gin.H{"balance": f})
}

func (b *Bank) transfer(c *gin.Context) {
	var req struct {
		From   string           `json:"from"`
		To     string           `json:"to"`
		Amount *decimal.Decimal `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid amount")
		return
	}
	amount := decimal.Zero
	if req.Amount != nil {
		amount = *req.Amount
	}
	if req.From == "" || req.To == "" || req.From == req.To {
		fail(c, http.StatusBadRequest, "Provide valid different from/to accounts")
		return
	}
	if !amount.IsPositive() {
		fail(c, http.StatusBadRequest, "Amount must be positive")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	src, dst := b.findLocked(req.From), b.findLocked(req.To)
	if src == nil || dst == nil {
		fail(c, http.StatusNotFound, "One or both accounts not found")
		return
	}
	if src.Balance.LessThan(amount) {
		fail(c, http.StatusBadRequest, "Insufficient funds in source account")
		return
	}
	src.Balance = src.Balance.Sub(amount)
	dst.Balance = dst.Balance.Add(amount)
	b.recordLocked("transfer", amount, fmt.Sprintf("From %s to %s", req.From, req.To))
	fromBal, _ := src.Balance.Float64()
	toBal, _ := dst.Balance.Float64()
	c.JSON(http.StatusOK, gin.H{"message": "Transferred", "from_balance": fromBal, "to_balance": toBal})
}

func (b *Bank) listTransactions(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fail(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	// A negative limit lists everything.
	n := len(b.txns)
	if limit >= 0 && limit < n {
		n = limit
	}
	out := make([]gin.H, 0, n)
	for i := len(b.txns) - 1; len(out) < n; i-- {
		t := b.txns[i]
		f, _ := t.Amount.Float64()
		out = append(out, gin.H{
			"txn_id":    t.ID,
			"type":      t.Type,
			"amount":    f,
			"details":   t.Details,
			"timestamp": t.Timestamp.Format("2006-01-02T15:04:05.000000"),
		})
	}
	c.JSON(http.StatusOK, out)
}
