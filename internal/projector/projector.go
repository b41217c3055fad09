package projector

import (
	"github.com/locvowork/objectdoc/internal/domain"
	"github.com/locvowork/objectdoc/internal/formatter"
)

const (
	// Marked is shown for true flags.
	Marked = "○"
	// Unmarked is shown for false pass-through booleans only.
	Unmarked = "-"

	FieldTypeCustom   = "custom"
	FieldTypeStandard = "standard"
)

var noLengthTypes = map[string]bool{
	"id":            true,
	"reference":     true,
	"picklist":      true,
	"multipicklist": true,
	"percent":       true,
	"email":         true,
}

// Projector turns field descriptors into rows shaped by the column specs.
type Projector struct {
	Columns           []domain.ColumnSpec
	PicklistFormat    domain.PicklistFormat
	PicklistSeparator string
	Labels            formatter.LabelLookup
}

// ProjectRow renders one row, one value per column, for the field at the
// given 0-based index.
func (p *Projector) ProjectRow(field domain.FieldDescriptor, index int, aug domain.FieldAugmentation) []interface{} {
	row := make([]interface{}, len(p.Columns))
	for i, col := range p.Columns {
		row[i] = p.value(col.Source, field, index, aug)
	}
	return row
}

func (p *Projector) value(source string, field domain.FieldDescriptor, index int, aug domain.FieldAugmentation) interface{} {
	switch source {
	case domain.SourceRowNumber:
		return index + 1

	case domain.SourceLabel:
		if field.Label != "" {
			return field.Label
		}
		return field.Name

	case domain.SourceFullName:
		return field.Name

	case domain.SourceType:
		return formatter.ClassifyFieldType(field, p.Labels)

	case domain.SourceFieldType:
		if field.Custom {
			return FieldTypeCustom
		}
		return FieldTypeStandard

	case domain.SourcePicklistValues:
		if field.Type != "picklist" && field.Type != "multipicklist" {
			return ""
		}
		return formatter.FormatPicklist(field.PicklistValues, p.PicklistFormat, p.PicklistSeparator)

	case domain.SourceFormula:
		if field.IsFormula() {
			return field.CalculatedFormula
		}
		return ""

	case domain.SourceDescription:
		if aug.Description != "" {
			return aug.Description
		}
		return field.Description

	case domain.SourceInlineHelpText:
		return field.InlineHelpText

	case domain.SourceLength:
		if noLengthTypes[field.Type] {
			return ""
		}
		if field.Length != nil && *field.Length != 0 {
			return *field.Length
		}
		if field.Precision != nil && *field.Precision != 0 {
			return *field.Precision
		}
		return ""

	// Presence-only markers: never rendered with the negative glyph.
	case domain.SourceRequired:
		return marker(field.Nillable != nil && !*field.Nillable)
	case domain.SourceExternalID:
		return marker(field.ExternalID)
	case domain.SourceTrackHistory:
		return marker(aug.TrackHistory)
	}

	raw, _ := field.RawValue(source)
	switch v := raw.(type) {
	case nil:
		return ""
	case bool:
		if v {
			return Marked
		}
		return Unmarked
	default:
		return v
	}
}

func marker(on bool) string {
	if on {
		return Marked
	}
	return ""
}

// Alignment is the cell alignment a column's data cells get.
type Alignment int

const (
	AlignDefault Alignment = iota
	AlignWrapTop
	AlignCenter
)

// ColumnAlignment returns the data-cell alignment for a column source.
func ColumnAlignment(source string) Alignment {
	switch source {
	case domain.SourcePicklistValues, domain.SourceFormula, domain.SourceDescription, domain.SourceInlineHelpText:
		return AlignWrapTop
	case domain.SourceRequired, domain.SourceExternalID, domain.SourceTrackHistory:
		return AlignCenter
	}
	return AlignDefault
}
