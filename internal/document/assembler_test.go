package document

import (
	"testing"
	"time"

	"github.com/locvowork/objectdoc/internal/config"
	"github.com/locvowork/objectdoc/internal/domain"
	"github.com/locvowork/objectdoc/internal/projector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAssembler() *Assembler {
	return &Assembler{
		Font: config.FontConfig{Name: "Arial", Size: 9, HeaderSize: 12},
		Columns: []domain.ColumnSpec{
			{Header: "No.", Source: domain.SourceRowNumber, Width: 6},
			{Header: "API Name", Source: domain.SourceFullName, Width: 30},
			{Header: "Description", Source: domain.SourceDescription, Width: 40},
			{Header: "Required", Source: domain.SourceRequired, Width: 8},
		},
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 3, 7, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "Account_definition_20240307.xlsx", FileName("Account", now))
}

func TestAssembleObjectSheet(t *testing.T) {
	wb := testAssembler().Assemble(domain.ObjectSummary{
		APIName: "Invoice__c", Label: "Invoice", LabelPlural: "Invoices",
		Createable: true, Custom: true, FieldCount: 3, RecordTypeCount: 1,
	}, nil)

	require.Len(t, wb.Sheets, 2)
	sheet := wb.Sheets[0]
	assert.Equal(t, ObjectSheetName, sheet.Name)
	assert.Equal(t, 1, sheet.FrozenRows)
	assert.Equal(t, 0, sheet.FrozenColumns)
	assert.Equal(t, map[int]float64{1: 20}, sheet.RowHeights)
	assert.True(t, sheet.HideGridLines)
	assert.Empty(t, sheet.AutoFilterRange)
	assert.Equal(t, []float64{30, 50}, sheet.ColumnWidths)

	require.Len(t, sheet.Rows, 13)
	assert.Equal(t, "Property", sheet.Rows[0][0].Value)
	assert.Equal(t, objectHeaderColor, sheet.Rows[0][0].Style.Fill.Color)
	assert.Equal(t, 12.0, sheet.Rows[0][0].Style.Font.Size)

	values := map[string]interface{}{}
	for _, row := range sheet.Rows[1:] {
		values[row[0].Value.(string)] = row[1].Value
		assert.Equal(t, objectLabelColor, row[0].Style.Fill.Color)
		assert.Equal(t, 9.0, row[1].Style.Font.Size)
	}
	assert.Equal(t, "Invoice__c", values["API Name"])
	assert.Equal(t, "Invoices", values["Plural Label"])
	assert.Equal(t, projector.Marked, values["Createable"])
	assert.Equal(t, projector.Unmarked, values["Deletable"])
	assert.Equal(t, 3, values["Field Count"])
	assert.Equal(t, 1, values["Record Type Count"])
}

func TestAssembleFieldSheet(t *testing.T) {
	rows := [][]interface{}{
		{1, "Name", "the name", projector.Marked},
		{2, "Amount__c", "", ""},
	}
	wb := testAssembler().Assemble(domain.ObjectSummary{}, rows)
	sheet := wb.Sheets[1]

	assert.Equal(t, FieldSheetName, sheet.Name)
	assert.Equal(t, 1, sheet.FrozenRows)
	assert.Equal(t, 2, sheet.FrozenColumns)
	assert.Equal(t, map[int]float64{1: 20}, sheet.RowHeights)
	assert.True(t, sheet.HideGridLines)
	assert.Equal(t, "A1:D1", sheet.AutoFilterRange)
	assert.Equal(t, []float64{6, 30, 40, 8}, sheet.ColumnWidths)

	require.Len(t, sheet.Rows, 3)
	for i, want := range []string{"No.", "API Name", "Description", "Required"} {
		assert.Equal(t, want, sheet.Rows[0][i].Value)
		assert.Equal(t, fieldHeaderColor, sheet.Rows[0][i].Style.Fill.Color)
	}
	assert.Equal(t, "Amount__c", sheet.Rows[2][1].Value)

	desc := sheet.Rows[1][2].Style
	require.NotNil(t, desc.Alignment)
	assert.True(t, desc.Alignment.WrapText)
	assert.Equal(t, "top", desc.Alignment.Vertical)

	req := sheet.Rows[1][3].Style
	require.NotNil(t, req.Alignment)
	assert.Equal(t, "center", req.Alignment.Horizontal)

	assert.Nil(t, sheet.Rows[1][1].Style.Alignment)
	assert.NotNil(t, sheet.Rows[1][1].Style.Border)
}
