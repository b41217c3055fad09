package metadata

import (
	"context"

	"github.com/locvowork/objectdoc/internal/domain"
	"github.com/locvowork/objectdoc/internal/logger"
)

// ReferenceTargets lists the distinct first reference targets of fields in
// first-seen order.
func ReferenceTargets(fields []domain.FieldDescriptor) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range fields {
		if f.Type != "reference" || len(f.ReferenceTo) == 0 {
			continue
		}
		target := f.ReferenceTo[0]
		if target == "" || seen[target] {
			continue
		}
		seen[target] = true
		out = append(out, target)
	}
	return out
}

// ResolveReferenceLabels describes every reference target once and returns
// a fresh cache. A failed describe caches the identifier as its own label.
func ResolveReferenceLabels(ctx context.Context, client domain.PlatformClient, fields []domain.FieldDescriptor) *domain.LabelCache {
	cache := domain.NewLabelCache()
	targets := ReferenceTargets(fields)
	if len(targets) == 0 {
		return cache
	}

	logger.InfoLog(ctx, "resolving labels of %d referenced objects", len(targets))
	for _, name := range targets {
		d, err := client.Describe(ctx, name)
		if err != nil {
			logger.WarnLog(ctx, "describe of %s failed, using API name: %v", name, err)
			cache.Set(name, name)
			continue
		}
		cache.Set(name, d.Label)
	}
	return cache
}
