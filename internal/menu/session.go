// =============================================================================
// Store POS Simulator - Menu Controller
// =============================================================================
//
// A Session is one interactive shopping run over line-based input:
//
//   Welcome to the Online Store!
//   1. Show Products
//   2. Show Cart
//   3. Exit
//
// Invalid selections are reported and the menu is shown again. End of input
// at any prompt ends the session like choosing Exit. Cancelling the context
// ends it at once, even while a prompt is waiting for input.
//
// =============================================================================

package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ginjaninja78/store-pos/internal/cart"
	"github.com/ginjaninja78/store-pos/internal/catalog"
	"github.com/ginjaninja78/store-pos/internal/checkout"
	"github.com/ginjaninja78/store-pos/internal/logger"
	"github.com/ginjaninja78/store-pos/internal/receipt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options tunes a Session.
type Options struct {
	MatchMode catalog.MatchMode
	Currency  string
}

// inputLine is one line, or the read error, from the operator.
type inputLine struct {
	text string
	err  error
}

// Session drives the menu loop for a single operator.
type Session struct {
	catalog   *catalog.Catalog
	cart      *cart.Cart
	processor *checkout.Processor
	opts      Options
	in        *bufio.Scanner
	out       io.Writer
	logger    *zap.Logger

	readOnce sync.Once
	lines    chan inputLine
}

// NewSession returns a session reading operator input from in and writing
// prompts to out. The session starts with an empty cart.
func NewSession(cat *catalog.Catalog, processor *checkout.Processor, in io.Reader, out io.Writer, opts Options, log *zap.Logger) *Session {
	if opts.Currency == "" {
		opts.Currency = receipt.DefaultCurrency
	}
	id := uuid.New()
	return &Session{
		catalog:   cat,
		cart:      cart.New(),
		processor: processor,
		opts:      opts,
		in:        bufio.NewScanner(in),
		out:       out,
		logger:    logger.OrNop(log).With(zap.String("session_id", id.String())),
		lines:     make(chan inputLine),
	}
}

// Cart returns the session cart.
func (s *Session) Cart() *cart.Cart { return s.cart }

// =============================================================================
// MENU LOOP
// =============================================================================

// Run shows the main menu until the operator exits or input ends. It returns
// ctx's error if ctx is cancelled, nil otherwise.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("session started",
		zap.Int("products", s.catalog.Len()),
		zap.String("match_mode", s.opts.MatchMode.String()))

	for {
		s.printf("\nWelcome to the Online Store!\n")
		s.printf("1. Show Products\n")
		s.printf("2. Show Cart\n")
		s.printf("3. Exit\n")

		choice, err := s.Ask(ctx, "Your choice:")
		if err == nil {
			switch strings.TrimSpace(choice) {
			case "1":
				err = s.showProducts(ctx)
			case "2":
				err = s.showCart(ctx)
			case "3":
				return s.end(nil)
			default:
				s.printf("Invalid choice! Please enter 1, 2, or 3.\n")
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) && ctx.Err() == nil {
				return s.end(nil)
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
			}
			return s.end(err)
		}
	}
}

func (s *Session) end(err error) error {
	if err == nil {
		s.printf("\nThank you for shopping with us!\n")
	}
	s.logger.Info("session ended", zap.Int("cart_entries", s.cart.Len()), zap.Error(err))
	return err
}

// showProducts lists the catalog and adds the selected product(s).
func (s *Session) showProducts(ctx context.Context) error {
	s.printf("\nProducts\n")
	s.printf("--------\n")
	for _, line := range s.catalog.Listing() {
		s.printf("%s\n", line)
	}

	query, err := s.Ask(ctx, "\nEnter the id of the product you want to add to cart ('X' to return):")
	if err != nil {
		return err
	}
	query = strings.TrimSpace(query)

	if strings.EqualFold(query, "x") {
		s.printf("Returning to main menu\n")
		return nil
	}

	added, err := s.cart.AddFromCatalog(s.catalog, query, s.opts.MatchMode)
	if err != nil {
		var notFound *catalog.NotFoundError
		if errors.As(err, &notFound) {
			s.printf("We don't have a product matching: %s\n", query)
			s.logger.Debug("product not found", zap.String("query", query))
			return nil
		}
		return err
	}

	for _, p := range added {
		s.printf("Added %q to your cart!\n", p.Name())
		s.logger.Info("added to cart", zap.String("id", p.ID()), zap.String("query", query))
	}
	return nil
}

// showCart prints the aggregated cart and offers checkout.
func (s *Session) showCart(ctx context.Context) error {
	s.printf("\nYour cart\n")
	s.printf("---------\n")

	if s.cart.IsEmpty() {
		s.printf("Your cart is empty, returning to the main menu\n")
		return nil
	}

	for _, line := range s.cart.Aggregate() {
		s.printf("%dx %s\n", line.Count, line.Name)
	}
	s.printf("Total Amount: %s%s\n", s.opts.Currency, s.cart.Total().StringFixed(2))

	answer, err := s.Ask(ctx, "\nPress 'C' to checkout, Press 'X' to return to menu")
	if err != nil {
		return err
	}
	if !strings.EqualFold(strings.TrimSpace(answer), "c") {
		return nil
	}

	s.report(s.processor.Checkout(ctx, s.cart, s))
	return ctx.Err()
}

// report tells the operator how a checkout ended.
func (s *Session) report(out checkout.Outcome) {
	if out.State == checkout.Completed {
		s.printf("\n%s\n", out.Receipt.Render())
		s.printf("Receipt saved to %s\n", out.Path)
		s.printf("Thank you for your purchase!\n")
		return
	}

	var (
		insufficient *checkout.InsufficientPaymentError
		inputErr     *checkout.InputFormatError
		persistErr   *checkout.PersistenceError
	)

	switch {
	case errors.As(out.Err, &insufficient):
		s.printf("Sorry, that is not enough (short by %s%s). Your payment has been returned and your cart kept.\n",
			s.opts.Currency, insufficient.Shortfall().StringFixed(2))
	case errors.As(out.Err, &inputErr):
		s.printf("%v. Checkout cancelled, your cart was kept.\n", inputErr)
	case errors.As(out.Err, &persistErr):
		s.printf("Checkout failed: %v\nNothing was charged and your cart was kept; please try again.\n", persistErr)
	case errors.Is(out.Err, checkout.ErrEmptyCart):
		s.printf("Your cart is empty, returning to the main menu\n")
	case errors.Is(out.Err, checkout.ErrNothingOwed):
		s.printf("Nothing is owed for these items, returning to the main menu\n")
	case errors.Is(out.Err, checkout.ErrDeclined):
		s.printf("Returning to main menu\n")
	default:
		s.printf("Checkout cancelled.\n")
	}
}

// =============================================================================
// PROMPTER
// =============================================================================

// Ask prints question and waits for one input line. It returns io.EOF when
// input is exhausted and ctx's error as soon as ctx is done, without waiting
// for the operator to finish the line.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.printf("%s ", question)
	s.readOnce.Do(func() { go s.readLines() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-s.lines:
		// A line that arrives together with the cancellation is dropped.
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !ok {
			return "", io.EOF
		}
		if line.err != nil {
			return "", fmt.Errorf("failed to read input: %w", line.err)
		}
		return strings.TrimRight(line.text, "\r"), nil
	}
}

// readLines feeds s.lines until input ends. The goroutine lives as long as
// the input stays open.
func (s *Session) readLines() {
	defer close(s.lines)
	for s.in.Scan() {
		s.lines <- inputLine{text: s.in.Text()}
	}
	if err := s.in.Err(); err != nil {
		s.lines <- inputLine{err: err}
	}
}

// Tell prints message on its own line.
func (s *Session) Tell(message string) {
	s.printf("%s\n", message)
}

func (s *Session) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}
