package testsupport

import (
	"context"
	"fmt"
	"sync"

	"github.com/locvowork/objectdoc/internal/domain"
)

// FakeClient is an in-memory domain.PlatformClient. Errors can be injected
// per object, per object-metadata read and per field-metadata batch (1-based).
type FakeClient struct {
	mu sync.Mutex

	Objects        map[string]*domain.ObjectDescribe
	Global         *domain.GlobalDescribe
	ObjectMeta     map[string][]domain.ObjectMetadata
	FieldMeta      map[string]domain.FieldMetadata
	DescribeErrors map[string]error
	ObjectMetaErr  error
	BatchErrors    map[int]error

	DescribeCalls []string
	FieldBatches  [][]string
}

func NewFakeClient() *FakeClient {
	return &FakeClient{
		Objects:        make(map[string]*domain.ObjectDescribe),
		ObjectMeta:     make(map[string][]domain.ObjectMetadata),
		FieldMeta:      make(map[string]domain.FieldMetadata),
		DescribeErrors: make(map[string]error),
		BatchErrors:    make(map[int]error),
	}
}

func (c *FakeClient) Describe(ctx context.Context, objectName string) (*domain.ObjectDescribe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DescribeCalls = append(c.DescribeCalls, objectName)
	if err := c.DescribeErrors[objectName]; err != nil {
		return nil, err
	}
	d, ok := c.Objects[objectName]
	if !ok {
		return nil, fmt.Errorf("object %s not found", objectName)
	}
	return d, nil
}

func (c *FakeClient) DescribeGlobal(ctx context.Context) (*domain.GlobalDescribe, error) {
	if c.Global == nil {
		return &domain.GlobalDescribe{}, nil
	}
	return c.Global, nil
}

func (c *FakeClient) ReadObjectMetadata(ctx context.Context, objectName string) ([]domain.ObjectMetadata, error) {
	if c.ObjectMetaErr != nil {
		return nil, c.ObjectMetaErr
	}
	return c.ObjectMeta[objectName], nil
}

func (c *FakeClient) ReadFieldMetadata(ctx context.Context, fullNames []string) ([]domain.FieldMetadata, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.FieldBatches = append(c.FieldBatches, append([]string(nil), fullNames...))
	if err := c.BatchErrors[len(c.FieldBatches)]; err != nil {
		return nil, err
	}
	var out []domain.FieldMetadata
	for _, n := range fullNames {
		if m, ok := c.FieldMeta[n]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// AddObject registers a describe result under its name.
func (c *FakeClient) AddObject(d *domain.ObjectDescribe) {
	c.Objects[d.Name] = d
}

// Bool and Int return pointers for optional descriptor attributes.
func Bool(b bool) *bool { return &b }

func Int(n int) *int { return &n }
