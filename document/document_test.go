package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSave(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "dapp.config.devnet.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"a": {"b": 1}}`), 0o600))

	doc, err := Load(in, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, in, doc.Path)

	require.NoError(t, doc.Save(""))

	got, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": {\n        \"b\": 1\n    }\n}", string(got))

	info, err := os.Stat(in)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "mode of existing file changed")
}

func TestSave_CreatesParents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "dist", "config", "config.yaml")

	doc := decodeString(t, "a: 1\n", FormatYAML)
	require.NoError(t, doc.Save(out))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(got))
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"), FormatYAML)
	require.ErrorIs(t, err, ErrRead)
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o600))

	_, err = Load(bad, FormatJSON)
	require.ErrorIs(t, err, ErrDecode)

	require.ErrorIs(t, WriteFile("", nil), ErrWrite)
}

func TestFormatOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"config.devnet.yaml", FormatYAML, true},
		{"config.yml", FormatYAML, true},
		{"dapp.config.json", FormatJSON, true},
		{"config.toml", FormatYAML, false},
	}

	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		assert.Equal(t, tt.ok, err == nil, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}
