package document

import (
	"fmt"
	"time"

	"github.com/locvowork/objectdoc/internal/config"
	"github.com/locvowork/objectdoc/internal/domain"
	"github.com/locvowork/objectdoc/internal/projector"
	"github.com/locvowork/objectdoc/pkg/simpleexcel"
)

const (
	ObjectSheetName = "Object Definition"
	FieldSheetName  = "Field Definition"

	fileSuffix    = "definition"
	fileExtension = "xlsx"

	objectHeaderColor = "70AD47"
	objectLabelColor  = "E2EFDA"
	fieldHeaderColor  = "4472C4"
	headerFontColor   = "FFFFFF"
)

const headerRowHeight = 20

var objectSheetWidths = []float64{30, 50}

// FileName is <object>_definition_<YYYYMMDD>.xlsx for the local date of now.
func FileName(objectAPIName string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s.%s", objectAPIName, fileSuffix, now.Local().Format("20060102"), fileExtension)
}

// Assembler builds the two-sheet workbook for one object.
type Assembler struct {
	Font    config.FontConfig
	Columns []domain.ColumnSpec
}

func NewAssembler(cfg *config.DocumentConfig) *Assembler {
	return &Assembler{Font: cfg.Font, Columns: cfg.Columns}
}

// Assemble composes the object summary sheet and the field table from rows
// already projected against a.Columns.
func (a *Assembler) Assemble(summary domain.ObjectSummary, rows [][]interface{}) *simpleexcel.Workbook {
	return &simpleexcel.Workbook{
		Sheets: []simpleexcel.Sheet{
			a.objectSheet(summary),
			a.fieldSheet(rows),
		},
	}
}

func (a *Assembler) objectSheet(s domain.ObjectSummary) simpleexcel.Sheet {
	sheet := simpleexcel.Sheet{
		Name:          ObjectSheetName,
		ColumnWidths:  objectSheetWidths,
		RowHeights:    map[int]float64{1: headerRowHeight},
		FrozenRows:    1,
		HideGridLines: true,
	}

	header := a.headerStyle(objectHeaderColor)
	label := &simpleexcel.StyleTemplate{
		Font:   &simpleexcel.FontTemplate{Name: a.Font.Name, Size: a.Font.Size, Bold: true},
		Fill:   &simpleexcel.FillTemplate{Color: objectLabelColor},
		Border: simpleexcel.ThinBorder(),
	}
	value := a.bodyStyle(projector.AlignDefault)

	sheet.AddRow(
		simpleexcel.Cell{Value: "Property", Style: header},
		simpleexcel.Cell{Value: "Value", Style: header},
	)
	for _, p := range summaryRows(s) {
		sheet.AddRow(
			simpleexcel.Cell{Value: p.name, Style: label},
			simpleexcel.Cell{Value: p.value, Style: value},
		)
	}
	return sheet
}

type property struct {
	name  string
	value interface{}
}

func summaryRows(s domain.ObjectSummary) []property {
	return []property{
		{"API Name", s.APIName},
		{"Label", s.Label},
		{"Plural Label", s.LabelPlural},
		{"Createable", flag(s.Createable)},
		{"Updateable", flag(s.Updateable)},
		{"Deletable", flag(s.Deletable)},
		{"Searchable", flag(s.Searchable)},
		{"Queryable", flag(s.Queryable)},
		{"Custom", flag(s.Custom)},
		{"Feed Enabled", flag(s.FeedEnabled)},
		{"Field Count", s.FieldCount},
		{"Record Type Count", s.RecordTypeCount},
	}
}

func flag(v bool) string {
	if v {
		return projector.Marked
	}
	return projector.Unmarked
}

func (a *Assembler) fieldSheet(rows [][]interface{}) simpleexcel.Sheet {
	sheet := simpleexcel.Sheet{
		Name:          FieldSheetName,
		ColumnWidths:  make([]float64, len(a.Columns)),
		RowHeights:    map[int]float64{1: headerRowHeight},
		FrozenRows:    1,
		FrozenColumns: 2,
		HideGridLines: true,
	}
	if len(a.Columns) > 0 {
		last, _ := simpleexcel.ColumnName(len(a.Columns))
		sheet.AutoFilterRange = "A1:" + last + "1"
	}

	header := a.headerStyle(fieldHeaderColor)
	headerRow := make([]simpleexcel.Cell, len(a.Columns))
	styles := make([]*simpleexcel.StyleTemplate, len(a.Columns))
	for i, col := range a.Columns {
		sheet.ColumnWidths[i] = col.Width
		headerRow[i] = simpleexcel.Cell{Value: col.Header, Style: header}
		styles[i] = a.bodyStyle(projector.ColumnAlignment(col.Source))
	}
	sheet.AddRow(headerRow...)

	for _, row := range rows {
		cells := make([]simpleexcel.Cell, len(a.Columns))
		for i := range a.Columns {
			var v interface{}
			if i < len(row) {
				v = row[i]
			}
			cells[i] = simpleexcel.Cell{Value: v, Style: styles[i]}
		}
		sheet.AddRow(cells...)
	}
	return sheet
}

func (a *Assembler) headerStyle(fill string) *simpleexcel.StyleTemplate {
	return &simpleexcel.StyleTemplate{
		Font:      &simpleexcel.FontTemplate{Name: a.Font.Name, Size: a.Font.HeaderSize, Bold: true, Color: headerFontColor},
		Fill:      &simpleexcel.FillTemplate{Color: fill},
		Alignment: &simpleexcel.AlignmentTemplate{Horizontal: "center", Vertical: "center"},
		Border:    simpleexcel.ThinBorder(),
	}
}

func (a *Assembler) bodyStyle(align projector.Alignment) *simpleexcel.StyleTemplate {
	st := &simpleexcel.StyleTemplate{
		Font:   &simpleexcel.FontTemplate{Name: a.Font.Name, Size: a.Font.Size},
		Border: simpleexcel.ThinBorder(),
	}
	switch align {
	case projector.AlignWrapTop:
		st.Alignment = &simpleexcel.AlignmentTemplate{Vertical: "top", WrapText: true}
	case projector.AlignCenter:
		st.Alignment = &simpleexcel.AlignmentTemplate{Horizontal: "center", Vertical: "center"}
	}
	return st
}
