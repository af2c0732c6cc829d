// Package ledger holds the participants and expense items of one bill-splitting session.
//
// A Ledger is not safe for concurrent use. Servers keep one Ledger per session
// and serialize access to it (see storage.Session).
package ledger

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/dutchpay/internal/calculator"
	"github.com/mmynk/dutchpay/internal/models"
)

const (
	// MinParticipants is the smallest roster InitParticipants accepts.
	MinParticipants = 2
	// MaxParticipants is the largest roster InitParticipants accepts.
	MaxParticipants = 20
	// MaxPriceDigits bounds the number of integer digits of an item price.
	MaxPriceDigits = 15
)

// Ledger is the canonical set of participants and expense items.
// Every SharedBy entry of every item refers to a participant on the roster.
type Ledger struct {
	state        State
	participants []models.Participant
	index        map[string]int
	items        []models.ExpenseItem
	account      models.SettlementAccount

	newID func() (string, error)
	now   func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithIDGenerator overrides how item ids are generated.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(l *Ledger) { l.newID = gen }
}

// WithClock overrides the clock used for item timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New returns an empty Ledger in StateSetup.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		index: make(map[string]int),
		newID: newItemID,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// newItemID returns a UUIDv7; ids generated in the same millisecond stay unique and ordered.
func newItemID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// State returns the current session state.
func (l *Ledger) State() State {
	return l.state
}

// InitParticipants creates the roster with ids "1".."count" and default names,
// moving the ledger from StateSetup to StateActive.
func (l *Ledger) InitParticipants(count int) ([]models.Participant, error) {
	if l.state != StateSetup {
		return nil, fmt.Errorf("%w: participants already initialized", ErrInvalidState)
	}
	if count < MinParticipants || count > MaxParticipants {
		return nil, fmt.Errorf("%w: participant count %d must be between %d and %d",
			ErrInvalidConfiguration, count, MinParticipants, MaxParticipants)
	}

	l.participants = make([]models.Participant, count)
	l.index = make(map[string]int, count)
	for i := 0; i < count; i++ {
		p := models.Participant{
			ID:   strconv.Itoa(i + 1),
			Name: models.DefaultParticipantName(i + 1),
		}
		l.participants[i] = p
		l.index[p.ID] = i
	}
	l.state = StateActive

	return l.Participants(), nil
}

// RenameParticipant replaces a participant's display name. Any name, including
// an empty one, is accepted.
func (l *Ledger) RenameParticipant(id, name string) error {
	if err := l.requireActive(); err != nil {
		return err
	}
	i, ok := l.index[id]
	if !ok {
		return fmt.Errorf("%w: participant %q", ErrNotFound, id)
	}
	l.participants[i].Name = name
	return nil
}

// AddItem validates and appends a new item, returning its id.
// Duplicate sharer ids are collapsed, keeping the first occurrence.
func (l *Ledger) AddItem(name string, price decimal.Decimal, sharerIDs []string) (string, error) {
	if err := l.requireActive(); err != nil {
		return "", err
	}
	if price.IsNegative() {
		return "", fmt.Errorf("%w: price %s is negative", ErrInvalidItem, price)
	}
	// Checked on coefficient and exponent only; comparing against a bound
	// would expand a value like 1e50000000 in full.
	if int64(price.NumDigits())+int64(price.Exponent()) > MaxPriceDigits {
		return "", fmt.Errorf("%w: price exceeds %d digits", ErrInvalidItem, MaxPriceDigits)
	}
	if !price.IsInteger() {
		return "", fmt.Errorf("%w: price %s is not a whole currency amount", ErrInvalidItem, price)
	}
	if len(sharerIDs) == 0 {
		return "", fmt.Errorf("%w: at least one sharer is required", ErrInvalidItem)
	}

	seen := make(map[string]bool, len(sharerIDs))
	sharers := make([]string, 0, len(sharerIDs))
	for _, id := range sharerIDs {
		if _, ok := l.index[id]; !ok {
			return "", fmt.Errorf("%w: unknown sharer %q", ErrInvalidItem, id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		sharers = append(sharers, id)
	}

	id, err := l.newID()
	if err != nil {
		return "", fmt.Errorf("failed to generate item id: %w", err)
	}

	l.items = append(l.items, models.ExpenseItem{
		ID:        id,
		Name:      name,
		Price:     price,
		SharedBy:  sharers,
		CreatedAt: l.now().Unix(),
	})
	return id, nil
}

// DeleteItem removes an item. Deleting an id that is not present, including
// one that was already deleted, fails with ErrNotFound.
func (l *Ledger) DeleteItem(id string) error {
	if err := l.requireActive(); err != nil {
		return err
	}
	for i, item := range l.items {
		if item.ID == id {
			l.items = append(l.items[:i:i], l.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: item %q", ErrNotFound, id)
}

// ResetAll clears items, participants and the settlement account and returns
// the ledger to StateSetup. It is a no-op in StateSetup, where the ledger is
// always empty.
func (l *Ledger) ResetAll() {
	if l.state == StateSetup {
		return
	}
	l.state = StateSetup
	l.participants = nil
	l.index = make(map[string]int)
	l.items = nil
	l.account = models.SettlementAccount{}
}

// SetSettlementAccount records where participants should transfer their share.
func (l *Ledger) SetSettlementAccount(account models.SettlementAccount) error {
	if err := l.requireActive(); err != nil {
		return err
	}
	l.account = account
	return nil
}

// SettlementAccount returns the recorded settlement account, if any.
func (l *Ledger) SettlementAccount() models.SettlementAccount {
	return l.account
}

// Participants returns a copy of the roster in id order.
func (l *Ledger) Participants() []models.Participant {
	out := make([]models.Participant, len(l.participants))
	copy(out, l.participants)
	return out
}

// Participant looks up one participant by id.
func (l *Ledger) Participant(id string) (models.Participant, error) {
	i, ok := l.index[id]
	if !ok {
		return models.Participant{}, fmt.Errorf("%w: participant %q", ErrNotFound, id)
	}
	return l.participants[i], nil
}

// Items returns a copy of the items in insertion order.
func (l *Ledger) Items() []models.ExpenseItem {
	out := make([]models.ExpenseItem, len(l.items))
	for i, item := range l.items {
		out[i] = item.Clone()
	}
	return out
}

// Receipt computes the participant's itemized receipt from the current items.
func (l *Ledger) Receipt(participantID string) (models.Receipt, error) {
	if err := l.requireActive(); err != nil {
		return models.Receipt{}, err
	}
	if _, ok := l.index[participantID]; !ok {
		return models.Receipt{}, fmt.Errorf("%w: participant %q", ErrNotFound, participantID)
	}
	return calculator.ComputeReceipt(participantID, l.participants, l.items)
}

// Receipts computes receipts for every participant, in roster order.
func (l *Ledger) Receipts() ([]models.Receipt, error) {
	if err := l.requireActive(); err != nil {
		return nil, err
	}
	return calculator.ComputeAllReceipts(l.participants, l.items), nil
}

// GrandTotal is the sum of all item prices.
func (l *Ledger) GrandTotal() (decimal.Decimal, error) {
	if err := l.requireActive(); err != nil {
		return decimal.Zero, err
	}
	return calculator.ComputeGrandTotal(l.items), nil
}

func (l *Ledger) requireActive() error {
	if l.state != StateActive {
		return fmt.Errorf("%w: ledger is in %s", ErrInvalidState, l.state)
	}
	return nil
}
