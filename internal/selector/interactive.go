package selector

import (
	"context"
	"fmt"
	"strings"
)

const (
	doneOption   = "[Done] confirm the current selection"
	selectedMark = " ✓"
	pageSize     = 15
)

var kindChoices = []struct {
	label string
	kind  Kind
}{
	{"All objects", KindAll},
	{"Custom objects only", KindCustom},
	{"Standard objects only", KindStandard},
}

// SelectInteractively asks for a kind filter, then toggles objects one at a
// time until the done entry is chosen with at least one object selected.
// The returned names keep selection order.
func SelectInteractively(ctx context.Context, p Prompter, objects []ObjectOption) ([]string, error) {
	if len(objects) == 0 {
		return nil, fmt.Errorf("no objects available to select")
	}

	labels := make([]string, len(kindChoices))
	for i, c := range kindChoices {
		labels[i] = c.label
	}
	idx, err := p.Select(ctx, SelectConfig{Message: "Filter objects by kind:", Options: labels})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(kindChoices) {
		return nil, fmt.Errorf("invalid kind choice %d", idx)
	}
	candidates := FilterByKind(objects, kindChoices[idx].kind)
	if err := p.Info(ctx, fmt.Sprintf("%d objects available", len(candidates))); err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no %s objects available", kindChoices[idx].kind)
	}

	var selected []string
	for {
		msg := fmt.Sprintf("Selected: %d", len(selected))
		if len(selected) > 0 {
			msg += " (" + strings.Join(selected, ", ") + ")"
		}
		if err := p.Info(ctx, msg); err != nil {
			return nil, err
		}

		options := make([]string, 0, len(candidates)+1)
		options = append(options, doneOption)
		for _, o := range candidates {
			name := o.DisplayName
			if contains(selected, o.Name) {
				name += selectedMark
			}
			options = append(options, name)
		}

		choice, err := p.Select(ctx, SelectConfig{
			Message:  "Search and select an object (type to filter):",
			Options:  options,
			PageSize: pageSize,
			Filter: func(filter string, index int) bool {
				if index == 0 {
					return true
				}
				return Matches(candidates[index-1], filter)
			},
		})
		if err != nil {
			return nil, err
		}

		if choice == 0 {
			if len(selected) == 0 {
				if err := p.Info(ctx, "Select at least one object"); err != nil {
					return nil, err
				}
				continue
			}
			return selected, nil
		}
		if choice < 0 || choice > len(candidates) {
			return nil, fmt.Errorf("invalid object choice %d", choice)
		}

		name := candidates[choice-1].Name
		if i := indexOf(selected, name); i >= 0 {
			selected = append(selected[:i], selected[i+1:]...)
			if err := p.Info(ctx, "Removed "+name); err != nil {
				return nil, err
			}
			continue
		}
		selected = append(selected, name)
		if err := p.Info(ctx, "Added "+name); err != nil {
			return nil, err
		}
	}
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}

func contains(list []string, v string) bool {
	return indexOf(list, v) >= 0
}
