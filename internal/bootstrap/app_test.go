package bootstrap

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/locvowork/objectdoc/internal/config"
	"github.com/locvowork/objectdoc/internal/domain"
	"github.com/locvowork/objectdoc/internal/handler"
	"github.com/locvowork/objectdoc/internal/logger"
	"github.com/locvowork/objectdoc/internal/selector"
	"github.com/locvowork/objectdoc/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type pickFirst struct{ calls int }

func (p *pickFirst) Select(ctx context.Context, cfg selector.SelectConfig) (int, error) {
	p.calls++
	switch p.calls {
	case 1:
		return 0, nil // all kinds
	case 2:
		return 1, nil // first object
	default:
		return 0, nil // done
	}
}

func (p *pickFirst) Info(ctx context.Context, msg string) error { return nil }

func TestResolveTargetsFromConfig(t *testing.T) {
	cfg, err := config.ParseDocumentConfig([]byte("target:\n  objectApiName: Account\n  objectApiNames: [Contact, Account]\n"))
	require.NoError(t, err)

	got, err := ResolveTargets(context.Background(), testsupport.NewFakeClient(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Account", "Contact"}, got)
}

func TestResolveTargetsInteractive(t *testing.T) {
	cfg, err := config.ParseDocumentConfig([]byte("target: {}\n"))
	require.NoError(t, err)

	client := testsupport.NewFakeClient()
	client.Global = &domain.GlobalDescribe{SObjects: []domain.GlobalObject{
		{Name: "Contact", Label: "Contact", Queryable: true},
		{Name: "Account", Label: "Account", Queryable: true},
	}}

	got, err := ResolveTargets(context.Background(), client, cfg, &pickFirst{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Account"}, got)

	_, err = ResolveTargets(context.Background(), client, cfg, nil)
	assert.Error(t, err)
}

func TestInitializeFailsWithoutCredentials(t *testing.T) {
	for _, k := range []string{"SF_USERNAME", "SF_PASSWORD", "SF_SECURITY_TOKEN"} {
		t.Setenv(k, "")
	}
	envFile := filepath.Join(t.TempDir(), "missing.env")

	err := NewApp().Initialize(context.Background(), Options{EnvFiles: []string{envFile}})
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingCredentials)
	assert.Contains(t, err.Error(), "SF_SECURITY_TOKEN")
}

func TestRegisterRoutes(t *testing.T) {
	app := NewApp()
	app.RegisterRoutes(handler.NewDocumentHandler(nil))

	var routes []string
	for _, r := range app.Echo.Routes() {
		routes = append(routes, r.Method+" "+r.Path)
	}
	sort.Strings(routes)
	assert.Equal(t, []string{
		http.MethodGet + " /documents/:object/download",
		http.MethodGet + " /documents/history",
		http.MethodGet + " /objects",
		http.MethodPost + " /documents",
	}, routes)
}

func TestCloseReleasesLogFile(t *testing.T) {
	defer logger.SetOutput(io.Discard)
	path := filepath.Join(t.TempDir(), "app.log")

	logger.InitLogging(path)
	logger.InfoLog(context.Background(), "before close")
	NewApp().Close()
	logger.InfoLog(context.Background(), "after close")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "before close")
	assert.NotContains(t, string(data), "after close")
}
