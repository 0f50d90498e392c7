// =============================================================================
// Store POS Simulator - Workbook Catalogs
// =============================================================================
//
// Catalogs maintained in a spreadsheet can be used directly. The first sheet of
// the workbook is read; each non-empty row holds the same three columns as the
// text format:
//
//   | A (id) | B (name)       | C (price) |
//   |--------|----------------|-----------|
//   | A17    | Wireless Mouse | 19.99     |
//
// An optional header row whose third cell reads "price" is skipped.
//
// =============================================================================

package catalog

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// WorkbookSheet is the sheet name used when exporting a catalog.
const WorkbookSheet = "Catalog"

var workbookHeader = []string{"id", "name", "price"}

// LoadWorkbook reads the first sheet of the workbook at path.
func (l *Loader) LoadWorkbook(path string) (*Catalog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Reason: "cannot open workbook", Err: err}
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, &LoadError{Source: path, Reason: "workbook has no sheets"}
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, &LoadError{Source: path, Reason: "cannot read rows", Err: err}
	}

	l.log().Debug("reading workbook catalog",
		zap.String("source", path),
		zap.String("sheet", sheetName),
		zap.Int("rows", len(rows)))

	b := l.newBuilder(path)
	headerChecked := false

	for i, row := range rows {
		if isRowEmpty(row) {
			continue
		}

		if !headerChecked {
			headerChecked = true
			if isHeaderRow(row) {
				continue
			}
		}

		if err := b.add(i+1, strings.Join(row, Delimiter), row); err != nil {
			return nil, err
		}
	}

	return b.build(), nil
}

// WriteWorkbook exports the catalog to an .xlsx file with a header row.
func WriteWorkbook(path string, c *Catalog) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), WorkbookSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for col, title := range workbookHeader {
		if err := setCell(f, col+1, 1, title); err != nil {
			return err
		}
	}

	for i, p := range c.products {
		row := i + 2
		if err := setCell(f, 1, row, p.ID()); err != nil {
			return err
		}
		if err := setCell(f, 2, row, p.Name()); err != nil {
			return err
		}
		if err := setCell(f, 3, row, p.Price().InexactFloat64()); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("invalid cell (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(WorkbookSheet, cell, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", cell, err)
	}
	return nil
}

func isHeaderRow(row []string) bool {
	return len(row) >= 3 && strings.EqualFold(strings.TrimSpace(row[2]), "price")
}

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
