package domain

import "context"

// PlatformClient is the remote platform contract the generator depends on.
// Metadata reads always return ordered slices; callers never see the
// single-record-or-array shape of the underlying API.
type PlatformClient interface {
	Describe(ctx context.Context, objectName string) (*ObjectDescribe, error)
	DescribeGlobal(ctx context.Context) (*GlobalDescribe, error)
	ReadObjectMetadata(ctx context.Context, objectName string) ([]ObjectMetadata, error)
	ReadFieldMetadata(ctx context.Context, fullNames []string) ([]FieldMetadata, error)
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *GeneratedDocument) error
	List(ctx context.Context, limit int) ([]GeneratedDocument, error)
}
