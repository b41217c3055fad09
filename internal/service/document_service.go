package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/locvowork/objectdoc/internal/document"
	"github.com/locvowork/objectdoc/internal/domain"
	"github.com/locvowork/objectdoc/internal/generator"
	"github.com/locvowork/objectdoc/internal/logger"
	"github.com/locvowork/objectdoc/internal/selector"
	"github.com/locvowork/objectdoc/pkg/simpleexcel"
)

var ErrNoObjects = errors.New("no objects requested")

type DocumentService interface {
	Generate(ctx context.Context, names []string) (generator.BatchResult, error)
	Render(ctx context.Context, object string) (string, []byte, error)
	ListObjects(ctx context.Context, kind selector.Kind, term string) ([]selector.ObjectOption, error)
	History(ctx context.Context, limit int) ([]domain.GeneratedDocument, error)
}

// documentService runs one generation at a time so requests to the
// platform never overlap.
type documentService struct {
	deps generator.Deps
	repo domain.DocumentRepository

	mu sync.Mutex
}

func NewDocumentService(deps generator.Deps, repo domain.DocumentRepository) DocumentService {
	return &documentService{deps: deps, repo: repo}
}

func (s *documentService) Generate(ctx context.Context, names []string) (generator.BatchResult, error) {
	names = cleanNames(names)
	if len(names) == 0 {
		return generator.BatchResult{}, ErrNoObjects
	}

	s.mu.Lock()
	result := generator.GenerateForObjects(ctx, s.deps, names)
	s.mu.Unlock()

	for _, d := range result.Documents {
		rec := &domain.GeneratedDocument{
			ObjectAPIName: d.Object,
			FilePath:      d.Path,
			FieldCount:    d.FieldCount,
			GeneratedAt:   s.now(),
		}
		if err := s.repo.Create(ctx, rec); err != nil {
			logger.WarnLog(ctx, "failed to record generated document %s: %v", d.Path, err)
		}
	}
	return result, nil
}

// Render builds one object's workbook in memory and returns its file name
// and content.
func (s *documentService) Render(ctx context.Context, object string) (string, []byte, error) {
	object = strings.TrimSpace(object)
	if object == "" {
		return "", nil, ErrNoObjects
	}

	g, err := generator.New(generator.KindObjectField, s.deps, object)
	if err != nil {
		return "", nil, err
	}

	s.mu.Lock()
	collected, err := g.Collect(ctx)
	s.mu.Unlock()
	if err != nil {
		return "", nil, fmt.Errorf("collect %s: %w", object, err)
	}
	wb, err := g.Format(ctx, collected)
	if err != nil {
		return "", nil, fmt.Errorf("format %s: %w", object, err)
	}
	data, err := simpleexcel.ToBytes(wb)
	if err != nil {
		return "", nil, fmt.Errorf("render %s: %w", object, err)
	}
	return document.FileName(object, s.now()), data, nil
}

func (s *documentService) ListObjects(ctx context.Context, kind selector.Kind, term string) ([]selector.ObjectOption, error) {
	s.mu.Lock()
	global, err := s.deps.Client.DescribeGlobal(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("describe global: %w", err)
	}
	objects := selector.FilterByKind(selector.FilterObjects(global), kind)
	return selector.Search(objects, term), nil
}

func (s *documentService) History(ctx context.Context, limit int) ([]domain.GeneratedDocument, error) {
	return s.repo.List(ctx, limit)
}

func (s *documentService) now() time.Time {
	if s.deps.Now != nil {
		return s.deps.Now()
	}
	return time.Now()
}

func cleanNames(names []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
