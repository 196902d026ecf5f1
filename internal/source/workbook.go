package source

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	pmferrors "pmfkit/internal/errors"
)

// Workbook is a file-backed spreadsheet source.
type Workbook struct {
	path string
	file *excelize.File
}

// OpenWorkbook opens an xlsx file. A missing file yields a NotFound error,
// distinguishable from a structurally broken one.
func OpenWorkbook(path string) (*Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, pmferrors.NotFoundWrap(path, err)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, pmferrors.StructuralWrap(path, err)
	}
	return &Workbook{path: path, file: f}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Sheet returns the named sheet as a raw cell matrix. Sheet names must match
// the upstream export convention exactly (case-sensitive). Cells are read
// raw, so date cells come back as Excel serial numbers.
func (w *Workbook) Sheet(name string) (*Document, error) {
	ref := fmt.Sprintf("%s[%s]", w.path, name)

	idx, err := w.file.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return nil, pmferrors.NotFound(ref, "sheet %q not found", name)
	}
	rows, err := w.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, pmferrors.StructuralWrap(ref, err)
	}
	return &Document{Name: ref, Rows: rows}, nil
}

// ReadSheet opens path, extracts one sheet and closes the file again.
func ReadSheet(path, sheet string) (*Document, error) {
	wb, err := OpenWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return wb.Sheet(sheet)
}
