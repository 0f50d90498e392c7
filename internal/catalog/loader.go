package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/store-pos/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// =============================================================================
// LOAD POLICY
// =============================================================================

// Policy decides what a Loader does with a malformed line.
type Policy int

const (
	// PolicyAbort stops at the first malformed line and returns no catalog.
	PolicyAbort Policy = iota

	// PolicySkip logs the malformed line, records it on the catalog and
	// carries on with the next one.
	PolicySkip
)

// String returns the configuration name of the policy.
func (p Policy) String() string {
	if p == PolicySkip {
		return "skip"
	}
	return "abort"
}

// ParsePolicy parses "abort" or "skip".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "abort":
		return PolicyAbort, nil
	case "skip":
		return PolicySkip, nil
	default:
		return PolicyAbort, fmt.Errorf("unknown load policy %q (want abort or skip)", s)
	}
}

// =============================================================================
// LOADER
// =============================================================================

// Loader builds a Catalog from a catalog source.
type Loader struct {
	Policy Policy
	Logger *zap.Logger
}

// NewLoader returns a Loader with the given policy. A nil logger discards
// warnings.
func NewLoader(policy Policy, log *zap.Logger) *Loader {
	return &Loader{Policy: policy, Logger: logger.OrNop(log)}
}

func (l *Loader) log() *zap.Logger {
	return logger.OrNop(l.Logger)
}

// LoadFile opens path and loads it. Files with an .xlsx extension are read
// as workbooks, everything else as pipe-delimited text.
func (l *Loader) LoadFile(path string) (*Catalog, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return l.LoadWorkbook(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Reason: "cannot open source", Err: err}
	}
	defer file.Close()

	return l.Load(file, path)
}

// byteOrderMark is dropped from the start of a catalog file.
const byteOrderMark = "\ufeff"

// Load reads pipe-delimited catalog lines from r. Blank lines are ignored.
// source names r in errors and log lines.
func (l *Loader) Load(r io.Reader, source string) (*Catalog, error) {
	if source == "" {
		source = "input"
	}

	b := l.newBuilder(source)
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		text := strings.TrimRight(scanner.Text(), "\r")
		if lineNo == 1 {
			text = strings.TrimPrefix(text, byteOrderMark)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		if err := b.add(lineNo, text, strings.Split(text, Delimiter)); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Source: source, Line: lineNo + 1, Reason: "read failed", Err: err}
	}

	return b.build(), nil
}

// ParseLine parses a single "id|name|price" line.
func ParseLine(line string) (Product, error) {
	return parseFields(strings.Split(strings.TrimRight(line, "\r"), Delimiter))
}

func parseFields(fields []string) (Product, error) {
	if len(fields) != 3 {
		return Product{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}

	id := strings.TrimSpace(fields[0])
	name := strings.TrimSpace(fields[1])
	rawPrice := strings.TrimSpace(fields[2])

	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		return Product{}, fmt.Errorf("price %q is not a decimal number", rawPrice)
	}

	return NewProduct(id, name, price)
}

// =============================================================================
// CATALOG BUILDER
// =============================================================================

// builder accumulates parsed records for one load and applies the policy.
type builder struct {
	loader   *Loader
	source   string
	products []Product
	skipped  []*LoadError
	seen     map[string]int
}

func (l *Loader) newBuilder(source string) *builder {
	return &builder{loader: l, source: source, seen: make(map[string]int)}
}

// add parses one record. It returns an error only when the load must stop.
func (b *builder) add(lineNo int, text string, fields []string) error {
	product, err := parseFields(fields)
	if err != nil {
		loadErr := &LoadError{Source: b.source, Line: lineNo, Text: text, Reason: err.Error(), Err: err}
		if b.loader.Policy != PolicySkip {
			return loadErr
		}
		b.loader.log().Warn("skipping malformed catalog line",
			zap.String("source", b.source),
			zap.Int("line", lineNo),
			zap.String("text", text),
			zap.String("reason", err.Error()))
		b.skipped = append(b.skipped, loadErr)
		return nil
	}

	key := strings.ToLower(product.ID())
	if first, dup := b.seen[key]; dup {
		b.loader.log().Warn("duplicate catalog identifier, first entry wins on lookup",
			zap.String("source", b.source),
			zap.String("id", product.ID()),
			zap.Int("line", lineNo),
			zap.Int("first_line", first))
	} else {
		b.seen[key] = lineNo
	}

	b.products = append(b.products, product)
	return nil
}

func (b *builder) build() *Catalog {
	b.loader.log().Info("catalog loaded",
		zap.String("source", b.source),
		zap.Int("products", len(b.products)),
		zap.Int("skipped", len(b.skipped)))
	return &Catalog{products: b.products, skipped: b.skipped}
}

