package metadata

import (
	"context"
	"strings"

	"github.com/locvowork/objectdoc/internal/domain"
	"github.com/locvowork/objectdoc/internal/logger"
)

// MaxFieldBatchSize is the most field names the metadata API reads per call.
const MaxFieldBatchSize = 10

// Augmentations maps a bare field name to its secondary metadata.
type Augmentations map[string]domain.FieldAugmentation

// Get returns the augmentation for name, or the zero value when absent.
func (a Augmentations) Get(name string) domain.FieldAugmentation {
	return a[name]
}

// Merger combines object-level and per-field metadata into Augmentations.
type Merger struct {
	client    domain.PlatformClient
	batchSize int
}

func NewMerger(client domain.PlatformClient) *Merger {
	return &Merger{client: client, batchSize: MaxFieldBatchSize}
}

// Merge never fails: object metadata errors and per-batch field metadata
// errors only leave the affected fields without augmentation.
func (m *Merger) Merge(ctx context.Context, objectName string, fields []domain.FieldDescriptor) Augmentations {
	out := make(Augmentations)

	objects, err := m.client.ReadObjectMetadata(ctx, objectName)
	if err != nil {
		logger.WarnLog(ctx, "object metadata for %s unavailable: %v", objectName, err)
	} else if len(objects) > 0 {
		entries := 0
		for _, fm := range objects[0].Fields {
			if fm.FullName == "" {
				continue
			}
			out[fm.FullName] = domain.FieldAugmentation{
				TrackHistory: fm.TrackHistory,
				Description:  fm.Description,
			}
			entries++
		}
		logger.InfoLog(ctx, "object metadata returned %d field entries", entries)
	}

	var fullNames []string
	for _, f := range fields {
		if f.Custom && f.Name != "" {
			fullNames = append(fullNames, objectName+"."+f.Name)
		}
	}
	if len(fullNames) == 0 {
		return out
	}

	for _, batch := range Batches(fullNames, m.batchSize) {
		records, err := m.client.ReadFieldMetadata(ctx, batch)
		if err != nil {
			// Compound field components (geolocation latitude/longitude and the
			// like) cannot be read individually; their columns stay blank.
			logger.InfoLog(ctx, "field metadata skipped for %s: %v", strings.Join(batch, ", "), err)
			continue
		}
		for _, r := range records {
			if r.FullName == "" {
				continue
			}
			out[BareFieldName(r.FullName)] = domain.FieldAugmentation{
				TrackHistory: r.TrackHistory,
				Description:  r.Description,
			}
		}
	}
	logger.InfoLog(ctx, "field metadata read for %d custom fields", len(fullNames))

	return out
}

// Batches splits names into consecutive groups of at most size entries.
func Batches(names []string, size int) [][]string {
	if size <= 0 {
		size = MaxFieldBatchSize
	}
	var out [][]string
	for i := 0; i < len(names); i += size {
		end := i + size
		if end > len(names) {
			end = len(names)
		}
		out = append(out, names[i:end])
	}
	return out
}

// BareFieldName strips the "Object." prefix from a dotted full name.
func BareFieldName(fullName string) string {
	if i := strings.LastIndex(fullName, "."); i >= 0 {
		return fullName[i+1:]
	}
	return fullName
}
