package console

import "github.com/jask/bankconsole/internal/api"

// refreshSlot tracks one independently refreshable collection. Each fetch
// takes a ticket; a response is applied only when its ticket is newer than
// the last applied one, so the most recently issued refresh wins even if
// responses arrive out of order.
type refreshSlot struct {
	issued   uint64
	applied  uint64
	inFlight int
	loaded   bool
}

func (s *refreshSlot) issue() uint64 {
	s.issued++
	s.inFlight++
	return s.issued
}

// settle records a response for ticket and reports whether it should
// replace the current snapshot.
func (s *refreshSlot) settle(ticket uint64, ok bool) bool {
	if s.inFlight > 0 {
		s.inFlight--
	}
	if !ok || ticket <= s.applied {
		return false
	}
	s.applied = ticket
	s.loaded = true
	return true
}

// State is the last-known view of the service. Collections are only ever
// replaced wholesale.
type State struct {
	customers    []api.CustomerRow
	transactions []api.TransactionEntry
	custSlot     refreshSlot
	feedSlot     refreshSlot
}

// Customers returns the last applied customer snapshot.
func (s *State) Customers() []api.CustomerRow { return s.customers }

// Transactions returns the last applied feed snapshot.
func (s *State) Transactions() []api.TransactionEntry { return s.transactions }

// CustomersRefreshing reports a customer fetch in flight.
func (s *State) CustomersRefreshing() bool { return s.custSlot.inFlight > 0 }

// TransactionsRefreshing reports a feed fetch in flight.
func (s *State) TransactionsRefreshing() bool { return s.feedSlot.inFlight > 0 }

// CustomersLoaded reports whether any customer snapshot has been applied.
func (s *State) CustomersLoaded() bool { return s.custSlot.loaded }

// TransactionsLoaded reports whether any feed snapshot has been applied.
func (s *State) TransactionsLoaded() bool { return s.feedSlot.loaded }

func (s *State) applyCustomers(ticket uint64, rows []api.CustomerRow, err error) bool {
	if !s.custSlot.settle(ticket, err == nil) {
		return false
	}
	s.customers = rows
	return true
}

func (s *State) applyTransactions(ticket uint64, entries []api.TransactionEntry, err error) bool {
	if !s.feedSlot.settle(ticket, err == nil) {
		return false
	}
	s.transactions = entries
	return true
}
