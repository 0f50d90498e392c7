package checkout

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ginjaninja78/store-pos/internal/cart"
	"github.com/ginjaninja78/store-pos/internal/catalog"
	"github.com/ginjaninja78/store-pos/internal/receipt"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustProduct builds a catalog product from literals and panics on invalid
// input.
func mustProduct(id, name, price string) catalog.Product {
	p, err := catalog.NewProduct(id, name, decimal.RequireFromString(price))
	if err != nil {
		panic(err)
	}
	return p
}

// scriptedPrompter answers questions from a fixed list and returns io.EOF
// once the list is used up.
type scriptedPrompter struct {
	answers   []string
	questions []string
	messages  []string
}

func (s *scriptedPrompter) Ask(_ context.Context, question string) (string, error) {
	s.questions = append(s.questions, question)
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

func (s *scriptedPrompter) Tell(message string) {
	s.messages = append(s.messages, message)
}

type memoryStore struct {
	saved []*receipt.Receipt
	err   error
}

func (m *memoryStore) Save(_ context.Context, r *receipt.Receipt) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.saved = append(m.saved, r)
	return "memory://" + r.ID.String(), nil
}

var fixedClock = func() time.Time { return time.Date(2026, time.October, 14, 10, 41, 0, 0, time.Local) }

func scenarioCart() *cart.Cart {
	c := cart.New()
	widget := mustProduct("A1", "Widget", "10.00")
	gadget := mustProduct("A2", "Gadget", "5.00")
	c.Add(widget)
	c.Add(widget)
	c.Add(gadget)
	return c
}

func newProcessor(store ReceiptStore, attempts int) *Processor {
	return NewProcessor(store, Options{PaymentAttempts: attempts, Clock: fixedClock}, nil)
}

func TestCheckout_EmptyCartNeverPrompts(t *testing.T) {
	store := &memoryStore{}
	prompt := &scriptedPrompter{answers: []string{"y", "100"}}

	out := newProcessor(store, 1).Checkout(context.Background(), cart.New(), prompt)

	assert.Equal(t, Aborted, out.State)
	assert.ErrorIs(t, out.Err, ErrEmptyCart)
	assert.Empty(t, prompt.questions)
	assert.Empty(t, store.saved)
	assert.Equal(t, []State{Idle, Aborted}, out.Transitions)
}

func TestCheckout_FreeItemsNeverPrompt(t *testing.T) {
	c := cart.New()
	c.Add(mustProduct("F1", "Free Sticker", "0"))
	store := &memoryStore{}
	prompt := &scriptedPrompter{answers: []string{"y", "100"}}

	out := newProcessor(store, 1).Checkout(context.Background(), c, prompt)

	assert.Equal(t, Aborted, out.State)
	assert.ErrorIs(t, out.Err, ErrNothingOwed)
	assert.NotErrorIs(t, out.Err, ErrEmptyCart)
	assert.Empty(t, prompt.questions)
	assert.Empty(t, store.saved)
	assert.Equal(t, 1, c.Len())
}

func TestCheckout_Declined(t *testing.T) {
	for _, answer := range []string{"n", "no", "", "maybe"} {
		c := scenarioCart()
		store := &memoryStore{}

		out := newProcessor(store, 1).Checkout(context.Background(), c, &scriptedPrompter{answers: []string{answer}})

		assert.Equal(t, Aborted, out.State, answer)
		assert.ErrorIs(t, out.Err, ErrDeclined, answer)
		assert.Equal(t, 3, c.Len(), answer)
		assert.Empty(t, store.saved, answer)
	}
}

func TestCheckout_Insufficient(t *testing.T) {
	c := scenarioCart()
	before := c.Items()
	store := &memoryStore{}

	out := newProcessor(store, 1).Checkout(context.Background(), c, &scriptedPrompter{answers: []string{"Y", "20.00"}})

	assert.Equal(t, Rejected, out.State)
	var insufficient *InsufficientPaymentError
	require.True(t, errors.As(out.Err, &insufficient))
	assert.True(t, insufficient.Shortfall().Equal(decimal.NewFromInt(5)))
	assert.Equal(t, before, c.Items())
	assert.Empty(t, store.saved)
	assert.Equal(t, []State{Idle, AwaitingConfirmation, AwaitingPayment, Rejected}, out.Transitions)
}

func TestCheckout_Completed(t *testing.T) {
	c := scenarioCart()
	store := &memoryStore{}
	prompt := &scriptedPrompter{answers: []string{"yes", "$30.00"}}

	out := newProcessor(store, 1).Checkout(context.Background(), c, prompt)

	require.Equal(t, Completed, out.State)
	assert.NoError(t, out.Err)
	assert.True(t, out.Change.Equal(decimal.NewFromInt(5)))
	assert.True(t, c.IsEmpty())
	require.Len(t, store.saved, 1)
	assert.Equal(t, []cart.Line{{Name: "Widget", Count: 2}, {Name: "Gadget", Count: 1}}, store.saved[0].Lines)
	assert.Equal(t, "memory://"+out.Receipt.ID.String(), out.Path)
	assert.Contains(t, prompt.messages, "Total amount owed: $25.00")
}

func TestCheckout_ExactPayment(t *testing.T) {
	c := scenarioCart()
	out := newProcessor(&memoryStore{}, 1).Checkout(context.Background(), c, &scriptedPrompter{answers: []string{"y", "25"}})

	assert.Equal(t, Completed, out.State)
	assert.True(t, out.Change.IsZero())
}

func TestCheckout_InvalidPaymentAborts(t *testing.T) {
	c := scenarioCart()
	store := &memoryStore{}

	out := newProcessor(store, 1).Checkout(context.Background(), c, &scriptedPrompter{answers: []string{"y", "thirty"}})

	assert.Equal(t, Aborted, out.State)
	var inputErr *InputFormatError
	require.True(t, errors.As(out.Err, &inputErr))
	assert.Equal(t, "thirty", inputErr.Input)
	assert.Equal(t, 3, c.Len())
	assert.Empty(t, store.saved)
}

func TestCheckout_InvalidPaymentRetried(t *testing.T) {
	c := scenarioCart()
	prompt := &scriptedPrompter{answers: []string{"y", "abc", "-5", "40"}}

	out := newProcessor(&memoryStore{}, 3).Checkout(context.Background(), c, prompt)

	assert.Equal(t, Completed, out.State)
	assert.True(t, out.Change.Equal(decimal.NewFromInt(15)))
	assert.Len(t, prompt.messages, 3) // total line plus two retry hints
}

func TestCheckout_InputEndsDuringPayment(t *testing.T) {
	c := scenarioCart()
	out := newProcessor(&memoryStore{}, 3).Checkout(context.Background(), c, &scriptedPrompter{answers: []string{"y"}})

	assert.Equal(t, Aborted, out.State)
	assert.ErrorIs(t, out.Err, io.EOF)
	assert.Equal(t, 3, c.Len())
}

func TestCheckout_PersistenceFailureKeepsCart(t *testing.T) {
	c := scenarioCart()
	boom := errors.New("disk full")

	out := newProcessor(&memoryStore{err: boom}, 1).Checkout(context.Background(), c, &scriptedPrompter{answers: []string{"y", "30"}})

	assert.Equal(t, Aborted, out.State)
	var persistErr *PersistenceError
	require.True(t, errors.As(out.Err, &persistErr))
	assert.ErrorIs(t, out.Err, boom)
	assert.Equal(t, 3, c.Len())
	assert.Nil(t, out.Receipt)
}

func TestCheckout_WritesReceiptFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "receiptsFolder")
	writer := receipt.NewWriter(dir, 1, 0, nil)
	c := scenarioCart()

	out := newProcessor(writer, 1).Checkout(context.Background(), c, &scriptedPrompter{answers: []string{"y", "30.00"}})
	require.Equal(t, Completed, out.State)

	files, err := receipt.List(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "202610141041.txt", filepath.Base(files[0]))

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "2x Widget\n")
	assert.Contains(t, text, "1x Gadget\n")
	assert.Contains(t, text, "Change Given: $5.00\n")
}

func TestParsePayment(t *testing.T) {
	valid := map[string]string{
		"30":      "30",
		" 30.00 ": "30",
		"$12.5":   "12.5",
		"$ 7":     "7",
		"0":       "0",
	}
	for in, want := range valid {
		got, err := ParsePayment(in, "$")
		require.NoError(t, err, in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), in)
	}

	for _, in := range []string{"", "  ", "$", "abc", "12,50", "-1"} {
		_, err := ParsePayment(in, "$")
		var inputErr *InputFormatError
		assert.True(t, errors.As(err, &inputErr), in)
	}
}

func TestIsYes(t *testing.T) {
	for _, in := range []string{"y", "Y", "yes", " YES "} {
		assert.True(t, IsYes(in), in)
	}
	for _, in := range []string{"", "n", "no", "yep", "c"} {
		assert.False(t, IsYes(in), in)
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Idle", Idle.String())
	assert.Equal(t, "AwaitingConfirmation", AwaitingConfirmation.String())
	assert.Equal(t, "Aborted", Aborted.String())
	assert.Equal(t, "State(42)", State(42).String())
}
