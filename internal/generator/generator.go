package generator

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/locvowork/objectdoc/internal/config"
	"github.com/locvowork/objectdoc/internal/domain"
	"github.com/locvowork/objectdoc/internal/logger"
	"github.com/locvowork/objectdoc/pkg/simpleexcel"
)

// Kind selects a document generator.
type Kind string

const KindObjectField Kind = "object-field"

// Generator produces one document in three steps.
type Generator interface {
	Collect(ctx context.Context) (*Collected, error)
	Format(ctx context.Context, c *Collected) (*simpleexcel.Workbook, error)
	Export(ctx context.Context, wb *simpleexcel.Workbook) (string, error)
}

// Deps are the collaborators shared by every generator in a run.
type Deps struct {
	Client    domain.PlatformClient
	Config    *config.DocumentConfig
	OutputDir string
	Now       func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Deps) outputDir() string {
	if d.OutputDir != "" {
		return d.OutputDir
	}
	if d.Config != nil && d.Config.Output.Dir != "" {
		return d.Config.Output.Dir
	}
	return "."
}

func (d Deps) outputPath(name string) string {
	return filepath.Join(d.outputDir(), name)
}

// New returns the generator registered for kind.
func New(kind Kind, deps Deps, object string) (Generator, error) {
	if deps.Client == nil {
		return nil, fmt.Errorf("generator %s: no platform client", kind)
	}
	if deps.Config == nil {
		return nil, fmt.Errorf("generator %s: no document config", kind)
	}
	switch kind {
	case KindObjectField:
		return NewObjectFieldGenerator(deps, object), nil
	default:
		return nil, fmt.Errorf("unknown generator kind %q", kind)
	}
}

// Output is what one successful Run produced.
type Output struct {
	Path       string
	FieldCount int
}

// Run chains Collect, Format and Export.
func Run(ctx context.Context, g Generator) (Output, error) {
	collected, err := g.Collect(ctx)
	if err != nil {
		return Output{}, fmt.Errorf("collect: %w", err)
	}
	wb, err := g.Format(ctx, collected)
	if err != nil {
		return Output{}, fmt.Errorf("format: %w", err)
	}
	path, err := g.Export(ctx, wb)
	if err != nil {
		return Output{}, fmt.Errorf("export: %w", err)
	}
	return Output{Path: path, FieldCount: collected.FieldCount()}, nil
}

// Document is one written file of a batch.
type Document struct {
	Object     string
	Path       string
	FieldCount int
}

// Failure is an object whose document could not be produced.
type Failure struct {
	Object string
	Err    error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Object, f.Err)
}

type BatchResult struct {
	Documents []Document
	Failures  []Failure
}

// Paths lists the written files in batch order.
func (r BatchResult) Paths() []string {
	out := make([]string, 0, len(r.Documents))
	for _, d := range r.Documents {
		out = append(out, d.Path)
	}
	return out
}

func (r BatchResult) Failed() bool {
	return len(r.Failures) > 0
}

// GenerateForObjects runs one object-field generator per name, strictly in
// order. A failing object is recorded and the remaining objects still run.
func GenerateForObjects(ctx context.Context, deps Deps, names []string) BatchResult {
	var result BatchResult
	for i, name := range names {
		octx := logger.WithFields(ctx, "object", name)
		logger.InfoLog(octx, "[%d/%d] generating object definition", i+1, len(names))

		if err := ctx.Err(); err != nil {
			result.Failures = append(result.Failures, Failure{Object: name, Err: err})
			continue
		}

		g, err := New(KindObjectField, deps, name)
		if err != nil {
			result.Failures = append(result.Failures, Failure{Object: name, Err: err})
			continue
		}
		out, err := Run(octx, g)
		if err != nil {
			logger.ErrorLog(octx, "generation failed: %v", err)
			result.Failures = append(result.Failures, Failure{Object: name, Err: err})
			continue
		}
		logger.InfoLog(octx, "written %s", out.Path)
		result.Documents = append(result.Documents, Document{Object: name, Path: out.Path, FieldCount: out.FieldCount})
	}
	return result
}
