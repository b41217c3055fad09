package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/locvowork/objectdoc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentConfig(t *testing.T) {
	yamlContent := `
target:
  objectApiName: Account
  objectApiNames:
    - Contact
    - Account
    - Invoice__c
picklistFormat: label
picklistSeparator: "\n"
font:
  name: Arial
columns:
  - header: "No."
    source: rowNumber
    width: 6
  - header: "API Name"
    source: fullName
    width: 30
`
	cfg, err := ParseDocumentConfig([]byte(yamlContent))
	require.NoError(t, err)

	assert.Equal(t, []string{"Account", "Contact", "Invoice__c"}, cfg.Targets())
	assert.Equal(t, domain.PicklistFormatLabel, cfg.PicklistFormat)
	assert.Equal(t, "\n", cfg.PicklistSeparator)
	assert.Equal(t, "Arial", cfg.Font.Name)
	assert.Equal(t, float64(DefaultFontSize), cfg.Font.Size)
	assert.Equal(t, float64(DefaultHeaderFontSize), cfg.Font.HeaderSize)
	require.Len(t, cfg.Columns, 2)
	assert.Equal(t, domain.ColumnSpec{Header: "API Name", Source: "fullName", Width: 30}, cfg.Columns[1])
}

func TestParseDocumentConfigDefaults(t *testing.T) {
	cfg, err := ParseDocumentConfig([]byte("target: {}\n"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Targets())
	assert.Equal(t, domain.PicklistFormatBoth, cfg.PicklistFormat)
	assert.Equal(t, DefaultPicklistSeparator, cfg.PicklistSeparator)
	assert.Equal(t, domain.DefaultColumns(), cfg.Columns)
}

func TestParseDocumentConfigInvalid(t *testing.T) {
	_, err := ParseDocumentConfig([]byte("columns: [unclosed"))
	assert.Error(t, err)

	_, err = ParseDocumentConfig([]byte("picklistFormat: pretty\n"))
	assert.EqualError(t, err, `invalid picklistFormat "pretty"`)

	_, err = ParseDocumentConfig([]byte("columns:\n  - header: Broken\n"))
	assert.Error(t, err)
}

func TestLoadDocumentConfigMissingFile(t *testing.T) {
	_, err := LoadDocumentConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestLoadDocumentConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "object-field.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target:\n  objectApiName: Lead\n"), 0o644))

	cfg, err := LoadDocumentConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lead"}, cfg.Targets())
}

func TestLoadEnvConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "SF_USERNAME=user@example.com\nSF_PASSWORD=secret\nDB_MAX_OPEN_CONNS=7\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("SF_USERNAME", "")
	t.Setenv("SF_PASSWORD", "")
	t.Setenv("SF_SECURITY_TOKEN", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "")
	require.NoError(t, os.Unsetenv("SF_USERNAME"))
	require.NoError(t, os.Unsetenv("SF_PASSWORD"))
	require.NoError(t, os.Unsetenv("DB_MAX_OPEN_CONNS"))

	require.NoError(t, LoadEnvConfig(path))

	cfg := DefaultEnvConfig
	assert.Equal(t, "user@example.com", cfg.SF_USERNAME)
	assert.Equal(t, "https://login.salesforce.com", cfg.SF_LOGIN_URL)
	assert.Equal(t, 7, cfg.DB_MAX_OPEN_CONNS)
	assert.False(t, cfg.DatabaseEnabled())

	err := cfg.ValidateCredentials()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingCredentials))
	assert.Contains(t, err.Error(), "SF_SECURITY_TOKEN")
	assert.NotContains(t, err.Error(), "SF_USERNAME")
}

func TestSampleConfigParses(t *testing.T) {
	cfg, err := LoadDocumentConfig(filepath.Join("..", "..", DefaultConfigPath))
	require.NoError(t, err)
	assert.Equal(t, []string{"Account"}, cfg.Targets())
	assert.Equal(t, domain.DefaultColumns(), cfg.Columns)
}
