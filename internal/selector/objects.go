package selector

import (
	"fmt"
	"sort"
	"strings"

	"github.com/locvowork/objectdoc/internal/domain"
)

// ObjectOption is one selectable object.
type ObjectOption struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Custom      bool   `json:"custom"`
	DisplayName string `json:"display_name"`
}

var hiddenSuffixes = []string{"__History", "__Share", "__Feed", "__Tag"}

// FilterObjects keeps queryable objects that are not history, share, feed
// or tag companions, sorted by label then name.
func FilterObjects(global *domain.GlobalDescribe) []ObjectOption {
	if global == nil {
		return nil
	}
	out := make([]ObjectOption, 0, len(global.SObjects))
	for _, o := range global.SObjects {
		if !o.Queryable || hasHiddenSuffix(o.Name) {
			continue
		}
		out = append(out, ObjectOption{
			Name:        o.Name,
			Label:       o.Label,
			Custom:      o.Custom,
			DisplayName: fmt.Sprintf("%s (%s)", o.Label, o.Name),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Label != out[j].Label {
			return out[i].Label < out[j].Label
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func hasHiddenSuffix(name string) bool {
	for _, s := range hiddenSuffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// Kind narrows the list to custom or standard objects.
type Kind string

const (
	KindAll      Kind = "all"
	KindCustom   Kind = "custom"
	KindStandard Kind = "standard"
)

// ParseKind accepts "", "all", "custom" and "standard".
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindAll:
		return KindAll, nil
	case KindCustom:
		return KindCustom, nil
	case KindStandard:
		return KindStandard, nil
	}
	return "", fmt.Errorf("unknown object kind %q", s)
}

func FilterByKind(objects []ObjectOption, kind Kind) []ObjectOption {
	if kind == KindAll || kind == "" {
		return objects
	}
	out := make([]ObjectOption, 0, len(objects))
	for _, o := range objects {
		if o.Custom == (kind == KindCustom) {
			out = append(out, o)
		}
	}
	return out
}

// Matches reports a case-insensitive substring match on the name, label or
// display name. An empty term matches everything.
func Matches(o ObjectOption, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(o.Name), term) ||
		strings.Contains(strings.ToLower(o.Label), term) ||
		strings.Contains(strings.ToLower(o.DisplayName), term)
}

func Search(objects []ObjectOption, term string) []ObjectOption {
	out := make([]ObjectOption, 0, len(objects))
	for _, o := range objects {
		if Matches(o, term) {
			out = append(out, o)
		}
	}
	return out
}
