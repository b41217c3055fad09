package formatter

import (
	"fmt"

	"github.com/locvowork/objectdoc/internal/domain"
)

// LabelLookup resolves a referenced object's label.
type LabelLookup interface {
	Label(objectName string) (string, bool)
}

const (
	LabelRollupSummary = "roll-up summary"
	LabelFormula       = "formula"
	LabelReference     = "reference"
	LabelInteger       = "integer(0,0)"
	LabelGeolocation   = "geolocation"
	LabelRichTextArea  = "rich text area"
	LabelLongTextArea  = "long text area"
	LabelTextArea      = "text area"

	defaultPrecision = 18
	longTextMin      = 255
)

var formulaSubkinds = map[string]string{
	"boolean":  "checkbox",
	"currency": "currency",
	"date":     "date",
	"datetime": "datetime",
	"time":     "time",
	"double":   "numeric",
	"int":      "numeric",
	"percent":  "percent",
	"string":   "text",
	"textarea": "text",
}

var typeLabels = map[string]string{
	"string":          "text",
	"encryptedstring": "text (encrypted)",
	"boolean":         "checkbox",
	"picklist":        "picklist",
	"multipicklist":   "picklist (multi-select)",
	"date":            "date",
	"datetime":        "datetime",
	"time":            "time",
	"currency":        "currency",
	"percent":         "percent",
	"phone":           "phone",
	"email":           "email",
	"url":             "url",
	"id":              "id",
	"address":         "address",
}

// ClassifyFieldType maps a field to its display type. The first matching
// rule wins; unknown primitive types are returned unchanged.
func ClassifyFieldType(field domain.FieldDescriptor, labels LabelLookup) string {
	if field.IsRollupSummary() {
		return LabelRollupSummary
	}

	if field.IsFormula() {
		if sub, ok := formulaSubkinds[field.Type]; ok {
			return fmt.Sprintf("%s (%s)", LabelFormula, sub)
		}
		return LabelFormula
	}

	switch field.Type {
	case "reference":
		if len(field.ReferenceTo) == 0 {
			return LabelReference
		}
		target := field.ReferenceTo[0]
		label := target
		if labels != nil {
			if l, ok := labels.Label(target); ok {
				label = l
			}
		}
		return fmt.Sprintf("%s (%s)", LabelReference, label)

	case "double", "int":
		if field.SoapType == "xsd:int" {
			return LabelInteger
		}
		precision := defaultPrecision
		if field.Precision != nil && *field.Precision != 0 {
			precision = *field.Precision
		}
		scale := 0
		if field.Scale != nil {
			scale = *field.Scale
		}
		return fmt.Sprintf("numeric(%d,%d)", precision-scale, scale)

	case "location":
		return LabelGeolocation

	case "textarea":
		if field.ExtraTypeInfo == "richtextarea" {
			return LabelRichTextArea
		}
		if field.Length != nil && *field.Length > longTextMin && field.ExtraTypeInfo == "plaintextarea" {
			return LabelLongTextArea
		}
		return LabelTextArea
	}

	if l, ok := typeLabels[field.Type]; ok {
		return l
	}
	return field.Type
}
