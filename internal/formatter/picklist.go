package formatter

import (
	"strings"

	"github.com/locvowork/objectdoc/internal/domain"
)

// FormatPicklist renders picklist entries joined by sep. An entry without a
// label uses its value. Unknown modes render like PicklistFormatBoth.
func FormatPicklist(values []domain.PicklistValue, mode domain.PicklistFormat, sep string) string {
	if len(values) == 0 {
		return ""
	}

	parts := make([]string, 0, len(values))
	for _, v := range values {
		label := v.Label
		if label == "" {
			label = v.Value
		}

		switch mode {
		case domain.PicklistFormatLabel:
			parts = append(parts, label)
		case domain.PicklistFormatFullName:
			parts = append(parts, v.Value)
		default:
			if label == v.Value {
				parts = append(parts, label)
			} else {
				parts = append(parts, label+"（"+v.Value+"）")
			}
		}
	}
	return strings.Join(parts, sep)
}
