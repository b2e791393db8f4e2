package spreadsheet

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/synchealth/wellness-backend/pkg/errors"
)

// ExcelReader reads member rows out of uploaded xlsx workbooks.
// Only the first sheet is consulted.
type ExcelReader struct{}

// NewExcelReader creates a new workbook reader
func NewExcelReader() *ExcelReader {
	return &ExcelReader{}
}

// ReadRows opens the workbook and returns the raw rows of its first
// sheet, header row included
func (r *ExcelReader) ReadRows(reader io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, errors.NewValidationError("The uploaded file is not a valid spreadsheet.")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewValidationError("The uploaded file has no sheets.")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewInternalError("failed to read sheet rows", err)
	}
	if len(rows) == 0 {
		return nil, errors.NewValidationError("No rows found in the first sheet.")
	}

	return rows, nil
}
