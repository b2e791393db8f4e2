package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/synchealth/wellness-backend/pkg/errors"
)

func workbookWithRows(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadRows_FirstSheetOnly(t *testing.T) {
	reader := NewExcelReader()

	buf := workbookWithRows(t, [][]interface{}{
		{"Full Name", "Age"},
		{"Jane Doe", 40},
	})

	rows, err := reader.ReadRows(buf)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Full Name", "Age"}, rows[0])
	assert.Equal(t, "Jane Doe", rows[1][0])
}

func TestReadRows_EmptySheet(t *testing.T) {
	reader := NewExcelReader()

	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = reader.ReadRows(buf)

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	assert.Contains(t, err.Error(), "No rows found in the first sheet.")
}

func TestReadRows_NotASpreadsheet(t *testing.T) {
	reader := NewExcelReader()

	_, err := reader.ReadRows(strings.NewReader("definitely not xlsx"))

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}
