package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/locvowork/objectdoc/internal/config"
	"github.com/locvowork/objectdoc/internal/domain"
	"github.com/locvowork/objectdoc/internal/generator"
	"github.com/locvowork/objectdoc/internal/logger"
	"github.com/locvowork/objectdoc/internal/selector"
	"github.com/locvowork/objectdoc/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, doc *domain.GeneratedDocument) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *mockRepo) List(ctx context.Context, limit int) ([]domain.GeneratedDocument, error) {
	args := m.Called(ctx, limit)
	docs, _ := args.Get(0).([]domain.GeneratedDocument)
	return docs, args.Error(1)
}

var fixedNow = time.Date(2024, 6, 3, 8, 0, 0, 0, time.Local)

func newTestService(t *testing.T, repo domain.DocumentRepository) (DocumentService, *testsupport.FakeClient, string) {
	t.Helper()
	client := testsupport.NewFakeClient()
	client.AddObject(&domain.ObjectDescribe{
		Name: "Account", Label: "Account",
		Fields: []domain.FieldDescriptor{{Name: "Name", Label: "Account Name", Type: "string"}},
	})
	client.Global = &domain.GlobalDescribe{SObjects: []domain.GlobalObject{
		{Name: "Account", Label: "Account", Queryable: true},
		{Name: "Invoice__c", Label: "Invoice", Custom: true, Queryable: true},
	}}

	cfg, err := config.ParseDocumentConfig([]byte("target: {}\n"))
	require.NoError(t, err)
	dir := t.TempDir()
	svc := NewDocumentService(generator.Deps{
		Client: client, Config: cfg, OutputDir: dir,
		Now: func() time.Time { return fixedNow },
	}, repo)
	return svc, client, dir
}

func TestGenerateRecordsHistory(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(d *domain.GeneratedDocument) bool {
		return d.ObjectAPIName == "Account" && d.FieldCount == 1 && d.GeneratedAt.Equal(fixedNow)
	})).Return(nil).Once()

	svc, _, _ := newTestService(t, repo)
	result, err := svc.Generate(context.Background(), []string{" Account ", "Account", "Missing__c"})
	require.NoError(t, err)

	require.Len(t, result.Documents, 1)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "Missing__c", result.Failures[0].Object)
	repo.AssertExpectations(t)
}

func TestGenerateIgnoresHistoryFailure(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	svc, _, _ := newTestService(t, repo)
	result, err := svc.Generate(context.Background(), []string{"Account"})
	require.NoError(t, err)
	assert.Len(t, result.Documents, 1)
}

func TestGenerateRequiresNames(t *testing.T) {
	svc, _, _ := newTestService(t, &mockRepo{})
	_, err := svc.Generate(context.Background(), []string{" ", ""})
	assert.ErrorIs(t, err, ErrNoObjects)
}

func TestRender(t *testing.T) {
	svc, _, dir := newTestService(t, &mockRepo{})

	name, data, err := svc.Render(context.Background(), "Account")
	require.NoError(t, err)
	assert.Equal(t, "Account_definition_20240603.xlsx", name)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("Field Definition", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Name", v)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "render does not write files")
}

func TestListObjects(t *testing.T) {
	svc, _, _ := newTestService(t, &mockRepo{})

	all, err := svc.ListObjects(context.Background(), selector.KindAll, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	custom, err := svc.ListObjects(context.Background(), selector.KindCustom, "inv")
	require.NoError(t, err)
	require.Len(t, custom, 1)
	assert.Equal(t, "Invoice__c", custom[0].Name)
}

func TestHistory(t *testing.T) {
	repo := &mockRepo{}
	want := []domain.GeneratedDocument{{ID: 1, ObjectAPIName: "Account"}}
	repo.On("List", mock.Anything, 20).Return(want, nil)

	svc, _, _ := newTestService(t, repo)
	got, err := svc.History(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
