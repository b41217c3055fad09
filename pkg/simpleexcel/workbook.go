package simpleexcel

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Workbook is an ordered list of sheets.
type Workbook struct {
	Sheets []Sheet
}

// Sheet is a fully materialized grid plus sheet-level presentation.
type Sheet struct {
	Name            string
	Rows            [][]Cell
	ColumnWidths    []float64       // index 0 is column A; 0 keeps the default width
	RowHeights      map[int]float64 // 1-based row number
	FrozenRows      int
	FrozenColumns   int
	HideGridLines   bool
	AutoFilterRange string // e.g. "A1:M1"
}

// Cell is one value with an optional style.
type Cell struct {
	Value interface{}
	Style *StyleTemplate
}

// AddRow appends one row and returns its 1-based row number.
func (s *Sheet) AddRow(cells ...Cell) int {
	s.Rows = append(s.Rows, cells)
	return len(s.Rows)
}

// Build renders the workbook into a new excelize file.
func Build(wb *Workbook) (*excelize.File, error) {
	if wb == nil || len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	f := excelize.NewFile()
	styles := newStyleCache(f)

	for i := range wb.Sheets {
		sheet := &wb.Sheets[i]
		if sheet.Name == "" {
			f.Close()
			return nil, fmt.Errorf("sheet %d has no name", i+1)
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				f.Close()
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			f.Close()
			return nil, fmt.Errorf("add sheet %s: %w", sheet.Name, err)
		}

		if err := renderSheet(f, styles, sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("render sheet %s: %w", sheet.Name, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func renderSheet(f *excelize.File, styles *styleCache, sheet *Sheet) error {
	name := sheet.Name

	for i, w := range sheet.ColumnWidths {
		if w <= 0 {
			continue
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(name, col, col, w); err != nil {
			return err
		}
	}

	for r, row := range sheet.Rows {
		for c, cell := range row {
			addr, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if cell.Value != nil {
				if err := f.SetCellValue(name, addr, cell.Value); err != nil {
					return err
				}
			}
			if cell.Style == nil {
				continue
			}
			id, err := styles.get(cell.Style)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(name, addr, addr, id); err != nil {
				return err
			}
		}
	}

	for row, h := range sheet.RowHeights {
		if err := f.SetRowHeight(name, row, h); err != nil {
			return err
		}
	}

	if sheet.FrozenRows > 0 || sheet.FrozenColumns > 0 {
		topLeft, err := excelize.CoordinatesToCellName(sheet.FrozenColumns+1, sheet.FrozenRows+1)
		if err != nil {
			return err
		}
		pane := "bottomLeft"
		switch {
		case sheet.FrozenRows > 0 && sheet.FrozenColumns > 0:
			pane = "bottomRight"
		case sheet.FrozenColumns > 0:
			pane = "topRight"
		}
		if err := f.SetPanes(name, &excelize.Panes{
			Freeze:      true,
			XSplit:      sheet.FrozenColumns,
			YSplit:      sheet.FrozenRows,
			TopLeftCell: topLeft,
			ActivePane:  pane,
		}); err != nil {
			return err
		}
	}

	if sheet.HideGridLines {
		show := false
		if err := f.SetSheetView(name, 0, &excelize.ViewOptions{ShowGridLines: &show}); err != nil {
			return err
		}
	}

	if sheet.AutoFilterRange != "" {
		if err := f.AutoFilter(name, sheet.AutoFilterRange, nil); err != nil {
			return err
		}
	}
	return nil
}

// SaveAs writes the workbook to path, creating the parent directory, and
// returns the written path.
func SaveAs(ctx context.Context, wb *Workbook, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := Build(wb)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

// ToBytes renders the workbook in memory.
func ToBytes(wb *Workbook) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := ToWriter(wb, buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToWriter renders the workbook directly to w.
func ToWriter(wb *Workbook, w io.Writer) error {
	f, err := Build(wb)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// ColumnName converts a 1-based column number to its letter form.
func ColumnName(n int) (string, error) {
	return excelize.ColumnNumberToName(n)
}
