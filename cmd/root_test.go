package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns what it printed.
// Flag variables are package globals, so they are reset before every run.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeStreams(t, stdin, args...)
	return out, err
}

// executeStreams is execute that also returns what went to stderr.
func executeStreams(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("STORE_LOG_OUTPUT", "stderr")
	t.Setenv("STORE_LOG_LEVEL", "error")

	cfgFile, verbose = "", false
	catalogPath, receiptsDir, matchMode = "", "", ""
	findQuery, exportPath, showReceipt = "", "", ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte("A1|Widget|2.50\nB2|Gadget|10.00\n"), 0o644))
	return path
}

func TestCatalogCommand_ListsProducts(t *testing.T) {
	out, err := execute(t, "", "catalog", "--catalog", writeCatalog(t))
	require.NoError(t, err)
	assert.Equal(t, "A1|Widget|2.50\nB2|Gadget|10.00\n", out)
}

func TestCatalogCommand_Find(t *testing.T) {
	path := writeCatalog(t)

	out, err := execute(t, "", "catalog", "--catalog", path, "--find", "b2")
	require.NoError(t, err)
	assert.Equal(t, "B2|Gadget|10.00\n", out)

	out, err = execute(t, "", "catalog", "--catalog", path, "--find", "Z9")
	require.NoError(t, err)
	assert.Contains(t, out, "We don't have a product matching: Z9")
}

func TestCatalogCommand_ExportWorkbook(t *testing.T) {
	path := writeCatalog(t)
	xlsx := filepath.Join(t.TempDir(), "catalog.xlsx")

	out, err := execute(t, "", "catalog", "--catalog", path, "--export", xlsx)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 product(s)")

	out, err = execute(t, "", "catalog", "--catalog", xlsx)
	require.NoError(t, err)
	assert.Equal(t, "A1|Widget|2.50\nB2|Gadget|10.00\n", out)
}

func TestCatalogCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "", "catalog", "--catalog", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestShopCommand_CreatesReceiptsFolderAndExits(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "receipts")

	out, err := execute(t, "3\n", "shop", "--catalog", writeCatalog(t), "--receipts", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Receipts Folder Created!")
	assert.Contains(t, out, "Thank you for shopping with us!")
	assert.DirExists(t, dir)
}

func TestShopCommand_CompletedCheckoutIsListed(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "1\nA1\n2\nC\nY\n5\n3\n", "--catalog", writeCatalog(t), "--receipts", dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "Receipts Folder Created!")
	assert.Contains(t, out, "Change Given: $2.50")

	out, err = execute(t, "", "receipts", "--receipts", dir)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.Regexp(t, `^\d{12}\.txt$`, lines[0])

	out, err = execute(t, "", "receipts", "--receipts", dir, "--show", strings.TrimSuffix(lines[0], ".txt"))
	require.NoError(t, err)
	assert.Contains(t, out, "1x Widget")
	assert.Contains(t, out, "Sales Total: 2.50")
}

func TestReceiptsCommand_RejectsPaths(t *testing.T) {
	_, err := execute(t, "", "receipts", "--receipts", t.TempDir(), "--show", "../secret")
	require.Error(t, err)
}

func TestConfigCommand_PrintsOverrides(t *testing.T) {
	out, err := execute(t, "", "config", "--match", "contains")
	require.NoError(t, err)
	assert.Contains(t, out, "match_mode: contains")
}

func TestConfigCommand_RejectsInvalidMatchMode(t *testing.T) {
	_, err := execute(t, "", "config", "--match", "fuzzy")
	require.Error(t, err)
}

func TestCatalogCommand_SkippedLinesGoToErrorStream(t *testing.T) {
	t.Setenv("STORE_CATALOG_LOAD_POLICY", "skip")
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte("A1|Widget|2.50\nbroken\n"), 0o644))

	out, stderr, err := executeStreams(t, "", "catalog", "--catalog", path)
	require.NoError(t, err)
	assert.Equal(t, "A1|Widget|2.50\n", out)
	assert.Contains(t, stderr, "Warning:")
	assert.Contains(t, stderr, "line 2")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Store POS Simulator\nVersion:    "+Version+"\n")
	assert.Contains(t, out, "Go Version: go")
}
