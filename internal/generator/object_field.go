package generator

import (
	"context"
	"fmt"

	"github.com/locvowork/objectdoc/internal/document"
	"github.com/locvowork/objectdoc/internal/domain"
	"github.com/locvowork/objectdoc/internal/logger"
	"github.com/locvowork/objectdoc/internal/metadata"
	"github.com/locvowork/objectdoc/internal/projector"
	"github.com/locvowork/objectdoc/pkg/simpleexcel"
)

// Collected is everything fetched from the platform for one object. Labels
// is filled before any row is projected and only read afterwards.
type Collected struct {
	Describe      *domain.ObjectDescribe
	Augmentations metadata.Augmentations
	Labels        *domain.LabelCache
}

func (c *Collected) FieldCount() int {
	if c == nil || c.Describe == nil {
		return 0
	}
	return len(c.Describe.Fields)
}

// ObjectFieldGenerator writes the object and field definition workbook.
type ObjectFieldGenerator struct {
	deps   Deps
	object string
}

func NewObjectFieldGenerator(deps Deps, object string) *ObjectFieldGenerator {
	return &ObjectFieldGenerator{deps: deps, object: object}
}

func (g *ObjectFieldGenerator) Collect(ctx context.Context) (*Collected, error) {
	logger.InfoLog(ctx, "fetching schema")
	describe, err := g.deps.Client.Describe(ctx, g.object)
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", g.object, err)
	}
	logger.InfoLog(ctx, "schema has %d fields", len(describe.Fields))

	merger := metadata.NewMerger(g.deps.Client)
	augs := merger.Merge(ctx, g.object, describe.Fields)

	labels := metadata.ResolveReferenceLabels(ctx, g.deps.Client, describe.Fields)

	return &Collected{Describe: describe, Augmentations: augs, Labels: labels}, nil
}

func (g *ObjectFieldGenerator) Format(ctx context.Context, c *Collected) (*simpleexcel.Workbook, error) {
	if c == nil || c.Describe == nil {
		return nil, fmt.Errorf("nothing collected for %s", g.object)
	}
	cfg := g.deps.Config

	p := &projector.Projector{
		Columns:           cfg.Columns,
		PicklistFormat:    cfg.PicklistFormat,
		PicklistSeparator: cfg.PicklistSeparator,
		Labels:            c.Labels,
	}
	rows := make([][]interface{}, 0, len(c.Describe.Fields))
	for i, f := range c.Describe.Fields {
		rows = append(rows, p.ProjectRow(f, i, c.Augmentations.Get(f.Name)))
	}
	logger.DebugLog(ctx, "projected %d rows over %d columns", len(rows), len(cfg.Columns))

	return document.NewAssembler(cfg).Assemble(c.Describe.Summary(), rows), nil
}

func (g *ObjectFieldGenerator) Export(ctx context.Context, wb *simpleexcel.Workbook) (string, error) {
	path := g.deps.outputPath(document.FileName(g.object, g.deps.now()))
	return simpleexcel.SaveAs(ctx, wb, path)
}
