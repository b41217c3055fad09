package simpleexcel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// StyleTemplate defines basic styling of one cell.
type StyleTemplate struct {
	Font      *FontTemplate      `yaml:"font"`
	Fill      *FillTemplate      `yaml:"fill"`
	Alignment *AlignmentTemplate `yaml:"alignment"`
	Border    *BorderTemplate    `yaml:"border"`
}

type FontTemplate struct {
	Name  string  `yaml:"name"`
	Size  float64 `yaml:"size"`
	Bold  bool    `yaml:"bold"`
	Color string  `yaml:"color"` // Hex color
}

type FillTemplate struct {
	Color string `yaml:"color"` // Hex color
}

type AlignmentTemplate struct {
	Horizontal string `yaml:"horizontal"` // center, left, right
	Vertical   string `yaml:"vertical"`   // top, center, bottom
	WrapText   bool   `yaml:"wrap_text"`
}

// BorderTemplate draws the same line on all four sides.
type BorderTemplate struct {
	Color string `yaml:"color"`
	Style int    `yaml:"style"` // excelize border style index, 1 = thin
}

// ThinBorder is a light gray thin border on every side.
func ThinBorder() *BorderTemplate {
	return &BorderTemplate{Color: "D9D9D9", Style: 1}
}

// styleCache hands out one excelize style ID per distinct template.
type styleCache struct {
	file *excelize.File
	ids  map[string]int
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{file: f, ids: make(map[string]int)}
}

func (c *styleCache) key(tmpl *StyleTemplate) string {
	var sb strings.Builder
	if tmpl.Font != nil {
		fmt.Fprintf(&sb, "f:%s:%v:%v:%s|", tmpl.Font.Name, tmpl.Font.Size, tmpl.Font.Bold, tmpl.Font.Color)
	}
	if tmpl.Fill != nil {
		fmt.Fprintf(&sb, "i:%s|", tmpl.Fill.Color)
	}
	if tmpl.Alignment != nil {
		fmt.Fprintf(&sb, "a:%s:%s:%v|", tmpl.Alignment.Horizontal, tmpl.Alignment.Vertical, tmpl.Alignment.WrapText)
	}
	if tmpl.Border != nil {
		fmt.Fprintf(&sb, "b:%s:%d|", tmpl.Border.Color, tmpl.Border.Style)
	}
	return sb.String()
}

func (c *styleCache) get(tmpl *StyleTemplate) (int, error) {
	if tmpl == nil {
		return 0, nil
	}

	key := c.key(tmpl)
	if id, ok := c.ids[key]; ok {
		return id, nil
	}

	style := &excelize.Style{}
	if tmpl.Font != nil {
		style.Font = &excelize.Font{
			Family: tmpl.Font.Name,
			Size:   tmpl.Font.Size,
			Bold:   tmpl.Font.Bold,
			Color:  strings.TrimPrefix(tmpl.Font.Color, "#"),
		}
	}
	if tmpl.Fill != nil {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Color:   []string{strings.TrimPrefix(tmpl.Fill.Color, "#")},
			Pattern: 1,
		}
	}
	if tmpl.Alignment != nil {
		style.Alignment = &excelize.Alignment{
			Horizontal: tmpl.Alignment.Horizontal,
			Vertical:   tmpl.Alignment.Vertical,
			WrapText:   tmpl.Alignment.WrapText,
		}
	}
	if tmpl.Border != nil {
		color := strings.TrimPrefix(tmpl.Border.Color, "#")
		for _, side := range []string{"left", "top", "right", "bottom"} {
			style.Border = append(style.Border, excelize.Border{Type: side, Color: color, Style: tmpl.Border.Style})
		}
	}

	id, err := c.file.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("create style: %w", err)
	}
	c.ids[key] = id
	return id, nil
}
