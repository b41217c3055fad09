package domain

// Column sources with fixed projection rules. Any other source is treated
// as the name of a raw field attribute.
const (
	SourceRowNumber      = "rowNumber"
	SourceLabel          = "label"
	SourceFullName       = "fullName"
	SourceType           = "type"
	SourceFieldType      = "fieldType"
	SourcePicklistValues = "picklistValues"
	SourceFormula        = "formula"
	SourceDescription    = "description"
	SourceInlineHelpText = "inlineHelpText"
	SourceLength         = "length"
	SourceRequired       = "required"
	SourceExternalID     = "externalId"
	SourceTrackHistory   = "trackHistory"
)

// ColumnSpec declares one output column of the field table.
type ColumnSpec struct {
	Header string  `yaml:"header" json:"header"`
	Source string  `yaml:"source" json:"source"`
	Width  float64 `yaml:"width" json:"width"`
}

// PicklistFormat selects how picklist entries are rendered.
type PicklistFormat string

const (
	PicklistFormatLabel    PicklistFormat = "label"
	PicklistFormatFullName PicklistFormat = "fullName"
	PicklistFormatBoth     PicklistFormat = "both"
)

// DefaultColumns is used when the configuration declares no columns.
func DefaultColumns() []ColumnSpec {
	return []ColumnSpec{
		{Header: "No.", Source: SourceRowNumber, Width: 6},
		{Header: "Label", Source: SourceLabel, Width: 25},
		{Header: "API Name", Source: SourceFullName, Width: 30},
		{Header: "Data Type", Source: SourceType, Width: 25},
		{Header: "Field Type", Source: SourceFieldType, Width: 10},
		{Header: "Length", Source: SourceLength, Width: 8},
		{Header: "Required", Source: SourceRequired, Width: 8},
		{Header: "External ID", Source: SourceExternalID, Width: 8},
		{Header: "Unique", Source: "unique", Width: 8},
		{Header: "Picklist Values", Source: SourcePicklistValues, Width: 40},
		{Header: "Formula", Source: SourceFormula, Width: 40},
		{Header: "Description", Source: SourceDescription, Width: 40},
		{Header: "Help Text", Source: SourceInlineHelpText, Width: 40},
		{Header: "Track History", Source: SourceTrackHistory, Width: 8},
	}
}
