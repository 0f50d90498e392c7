// =============================================================================
// Store POS Simulator - Checkout Processor
// =============================================================================
//
// Checkout converts a cart and a payment into a completed sale or a
// rejected/aborted attempt. It is a small state machine:
//
//   Idle ──(total == 0)──────────────────────────────► Aborted
//    │
//    ▼
//   AwaitingConfirmation ──(anything but yes)────────► Aborted
//    │
//    ▼
//   AwaitingPayment ──(unparseable, attempts used)───► Aborted
//    │
//    ├──(payment < total)────────────────────────────► Rejected
//    ├──(receipt not saved)──────────────────────────► Aborted
//    └──(receipt saved)──────────────────────────────► Completed
//
// The cart is cleared when, and only when, the machine reaches Completed.
//
// =============================================================================

package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ginjaninja78/store-pos/internal/cart"
	"github.com/ginjaninja78/store-pos/internal/logger"
	"github.com/ginjaninja78/store-pos/internal/receipt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// =============================================================================
// STATES
// =============================================================================

// State is a checkout state.
type State int

const (
	Idle State = iota
	AwaitingConfirmation
	AwaitingPayment
	Completed
	Rejected
	Aborted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case AwaitingConfirmation:
		return "AwaitingConfirmation"
	case AwaitingPayment:
		return "AwaitingPayment"
	case Completed:
		return "Completed"
	case Rejected:
		return "Rejected"
	case Aborted:
		return "Aborted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// =============================================================================
// COLLABORATORS
// =============================================================================

// Prompter is the operator side of the dialogue.
type Prompter interface {
	// Ask shows question and returns the operator's answer line.
	Ask(ctx context.Context, question string) (string, error)

	// Tell shows an informational message.
	Tell(message string)
}

// ReceiptStore persists a rendered receipt and returns where it went.
type ReceiptStore interface {
	Save(ctx context.Context, r *receipt.Receipt) (string, error)
}

// Options tunes a Processor.
type Options struct {
	// PaymentAttempts is how many unparseable payment entries are accepted
	// before the checkout is aborted. Values below one mean one.
	PaymentAttempts int

	// Currency prefixes amounts in messages and on the receipt.
	Currency string

	// Clock returns the order time; time.Now when nil.
	Clock func() time.Time
}

// Outcome describes how a checkout ended.
type Outcome struct {
	State State

	// Err is the reason for a Rejected or Aborted outcome; nil on Completed.
	Err error

	Total  decimal.Decimal
	Paid   decimal.Decimal
	Change decimal.Decimal

	// Receipt and Path are set on Completed only.
	Receipt *receipt.Receipt
	Path    string

	// Transitions lists every state visited, starting with Idle.
	Transitions []State
}

// Processor runs checkouts.
type Processor struct {
	store  ReceiptStore
	opts   Options
	logger *zap.Logger
}

// NewProcessor returns a Processor saving receipts to store.
func NewProcessor(store ReceiptStore, opts Options, log *zap.Logger) *Processor {
	if opts.PaymentAttempts < 1 {
		opts.PaymentAttempts = 1
	}
	if opts.Currency == "" {
		opts.Currency = receipt.DefaultCurrency
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Processor{store: store, opts: opts, logger: logger.OrNop(log)}
}

// =============================================================================
// CHECKOUT
// =============================================================================

// Checkout runs the dialogue for c. The cart is read, and cleared only on
// Completed; no other outcome touches it.
func (p *Processor) Checkout(ctx context.Context, c *cart.Cart, prompt Prompter) Outcome {
	out := Outcome{State: Idle, Transitions: []State{Idle}, Total: c.Total()}

	if out.Total.IsZero() {
		if c.IsEmpty() {
			return p.finish(&out, Aborted, ErrEmptyCart)
		}
		return p.finish(&out, Aborted, ErrNothingOwed)
	}

	// Confirmation.
	p.enter(&out, AwaitingConfirmation)
	prompt.Tell(fmt.Sprintf("Total amount owed: %s", p.money(out.Total)))

	answer, err := prompt.Ask(ctx, "Proceed with purchase? (Y/N)")
	if err != nil {
		return p.finish(&out, Aborted, err)
	}
	if !IsYes(answer) {
		return p.finish(&out, Aborted, ErrDeclined)
	}

	// Payment.
	p.enter(&out, AwaitingPayment)
	paid, err := p.readPayment(ctx, prompt)
	if err != nil {
		return p.finish(&out, Aborted, err)
	}
	out.Paid = paid
	out.Change = paid.Sub(out.Total)

	if out.Change.IsNegative() {
		return p.finish(&out, Rejected, &InsufficientPaymentError{Total: out.Total, Paid: paid})
	}

	// Receipt.
	r := receipt.New(p.opts.Clock(), c.Aggregate(), out.Total, paid)
	r.Currency = p.opts.Currency

	path, err := p.store.Save(ctx, r)
	if err != nil {
		return p.finish(&out, Aborted, &PersistenceError{Err: err})
	}

	c.Clear()
	out.Receipt = r
	out.Path = path
	return p.finish(&out, Completed, nil)
}

func (p *Processor) readPayment(ctx context.Context, prompt Prompter) (decimal.Decimal, error) {
	var lastErr error
	for attempt := 1; attempt <= p.opts.PaymentAttempts; attempt++ {
		input, err := prompt.Ask(ctx, fmt.Sprintf("Enter payment amount: %s", p.opts.Currency))
		if err != nil {
			return decimal.Zero, err
		}

		amount, err := ParsePayment(input, p.opts.Currency)
		if err == nil {
			return amount, nil
		}

		lastErr = err
		p.logger.Warn("invalid payment entry",
			zap.String("input", input),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", p.opts.PaymentAttempts))

		if attempt < p.opts.PaymentAttempts {
			prompt.Tell(fmt.Sprintf("%v, please try again", err))
		}
	}
	return decimal.Zero, lastErr
}

func (p *Processor) enter(out *Outcome, s State) {
	out.State = s
	out.Transitions = append(out.Transitions, s)
}

func (p *Processor) finish(out *Outcome, s State, reason error) Outcome {
	p.enter(out, s)
	out.Err = reason

	fields := []zap.Field{
		zap.String("state", s.String()),
		zap.String("total", out.Total.StringFixed(2)),
	}
	if s == Completed {
		fields = append(fields,
			zap.String("receipt_id", out.Receipt.ID.String()),
			zap.String("path", out.Path),
			zap.String("change", out.Change.StringFixed(2)))
		p.logger.Info("checkout completed", fields...)
		return *out
	}

	fields = append(fields, zap.Error(reason))
	var persistErr *PersistenceError
	if errors.As(reason, &persistErr) {
		p.logger.Error("checkout failed", fields...)
	} else {
		p.logger.Info("checkout ended", fields...)
	}
	return *out
}

func (p *Processor) money(d decimal.Decimal) string {
	return p.opts.Currency + d.StringFixed(2)
}

// =============================================================================
// INPUT PARSING
// =============================================================================

// IsYes reports whether answer confirms: "y" or "yes", ignoring case and
// surrounding space.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// ParsePayment parses an amount such as "30", "30.00" or "$30.00". A leading
// currency symbol is accepted. Negative or non-numeric input yields an
// *InputFormatError.
func ParsePayment(input, currency string) (decimal.Decimal, error) {
	s := strings.TrimSpace(input)
	if currency != "" {
		s = strings.TrimSpace(strings.TrimPrefix(s, currency))
	}
	if s == "" {
		return decimal.Zero, &InputFormatError{Input: input, Reason: "no amount entered"}
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &InputFormatError{Input: input, Reason: "not a number"}
	}
	if amount.IsNegative() {
		return decimal.Zero, &InputFormatError{Input: input, Reason: "amount is negative"}
	}
	return amount, nil
}
