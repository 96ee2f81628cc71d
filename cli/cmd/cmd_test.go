package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/envlay/document"
	"github.com/ardnew/envlay/handoff"
	"github.com/ardnew/envlay/overlay"
)

const (
	testYAML = "# service settings\nserver:\n  host: localhost\n  port: 8080 # listen\n"
	testJSON = `{"name": "x", "n": 1}`
)

type testCLI struct {
	Doc Options `embed:""`

	Apply Apply `cmd:"" default:"withargs"`
	Diff  Diff  `cmd:""`
	Show  Show  `cmd:""`
	Value Value `cmd:""`
}

// fixture writes the default devnet documents to a new config directory and
// returns the directory and the YAML output path.
func fixture(t *testing.T) (dir, out string) {
	t.Helper()

	root := t.TempDir()
	dir = filepath.Join(root, "config")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config.devnet.yaml"), []byte(testYAML), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "dapp.config.devnet.json"), []byte(testJSON), 0o644))

	return dir, filepath.Join(root, "dist", "config", "config.yaml")
}

// run parses args and executes the selected command with the variables of src.
func run(t *testing.T, src overlay.Source, args ...string) (string, error) {
	t.Helper()

	var (
		cli testCLI
		out bytes.Buffer
	)

	parser, err := kong.New(&cli,
		kong.Writers(&out, &out),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	require.NoError(t, err)

	ktx, err := parser.Parse(args)
	require.NoError(t, err)

	ctx := WithContext(WithSource(context.Background(), src), ktx)
	ktx.BindTo(ctx, (*context.Context)(nil))

	err = ktx.Run(&cli.Doc)

	return out.String(), err
}

func TestApply(t *testing.T) {
	t.Parallel()

	dir, out := fixture(t)
	src := overlay.Map(map[string]string{
		"CFG_server_port": "num:9090",
		"CFG_db_tls":      "bool:true",
		"DAPP_name":       "raw:y",
		"OTHER":           "ignored",
	})

	_, err := run(t, src, "--config-dir", dir, "--yaml-out", out, "apply", "--no-exec")
	require.NoError(t, err)

	y, err := document.Load(out, document.FormatYAML)
	require.NoError(t, err)

	port, ok := y.Root.Lookup("server", "port")
	require.True(t, ok)
	n, ok := port.Scalar.Int()
	require.True(t, ok)
	assert.Equal(t, int64(9090), n)

	tls, ok := y.Root.Lookup("db", "tls")
	require.True(t, ok)
	b, ok := tls.Scalar.Bool()
	require.True(t, ok)
	assert.True(t, b)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# service settings")
	assert.Contains(t, string(data), "# listen")

	// The YAML input is never modified; the JSON document is rewritten in place.
	data, err = os.ReadFile(filepath.Join(dir, "config.devnet.yaml"))
	require.NoError(t, err)
	assert.Equal(t, testYAML, string(data))

	data, err = os.ReadFile(filepath.Join(dir, "dapp.config.devnet.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"name\": \"y\",\n    \"n\": 1\n}", string(data))
}

func TestApplyIdempotent(t *testing.T) {
	t.Parallel()

	dir, out := fixture(t)
	src := overlay.Map(map[string]string{
		"CFG_a_b_c": "num:1",
		"DAPP_list": "arr:[1,2,3]",
	})

	_, err := run(t, src, "--config-dir", dir, "--yaml-out", out, "apply", "--no-exec")
	require.NoError(t, err)

	first, err := os.ReadFile(out)
	require.NoError(t, err)

	firstJSON, err := os.ReadFile(filepath.Join(dir, "dapp.config.devnet.json"))
	require.NoError(t, err)

	_, err = run(t, src, "--config-dir", dir, "--yaml-out", out, "apply", "--no-exec")
	require.NoError(t, err)

	second, err := os.ReadFile(out)
	require.NoError(t, err)

	secondJSON, err := os.ReadFile(filepath.Join(dir, "dapp.config.devnet.json"))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, string(firstJSON), string(secondJSON))
	assert.Contains(t, string(secondJSON), "\"list\": [\n        1,\n        2,\n        3\n    ]")
}

func TestApplyDryRun(t *testing.T) {
	t.Parallel()

	dir, out := fixture(t)
	src := overlay.Map(map[string]string{"DAPP_name": "changed"})

	_, err := run(t, src, "--config-dir", dir, "--yaml-out", out, "apply", "--dry-run")
	require.NoError(t, err)

	assert.NoFileExists(t, out)

	data, err := os.ReadFile(filepath.Join(dir, "dapp.config.devnet.json"))
	require.NoError(t, err)
	assert.Equal(t, testJSON, string(data))
}

func TestApplyMissingInput(t *testing.T) {
	t.Parallel()

	dir, out := fixture(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "dapp.config.devnet.json")))

	_, err := run(t, overlay.List{}, "--config-dir", dir, "--yaml-out", out,
		"apply", "--no-exec")
	require.ErrorIs(t, err, document.ErrRead)

	// Nothing is written when either document fails to load.
	assert.NoFileExists(t, out)
}

func TestApplyStrict(t *testing.T) {
	t.Parallel()

	dir, out := fixture(t)
	src := overlay.Map(map[string]string{
		"CFG_server_host":    "example.com",
		"CFG_server_missing": "x",
	})

	_, err := run(t, src, "--config-dir", dir, "--yaml-out", out,
		"--yaml-policy", "strict", "apply", "--no-exec")
	require.NoError(t, err)

	y, err := document.Load(out, document.FormatYAML)
	require.NoError(t, err)

	host, ok := y.Root.Lookup("server", "host")
	require.True(t, ok)
	assert.Equal(t, "example.com", host.Scalar.Text)

	_, ok = y.Root.Lookup("server", "missing")
	assert.False(t, ok)
}

func TestApplyProfileFromEnvironment(t *testing.T) {
	dir, out := fixture(t)
	require.NoError(t, os.Rename(
		filepath.Join(dir, "config.devnet.yaml"),
		filepath.Join(dir, "config.mainnet.yaml")))
	require.NoError(t, os.Rename(
		filepath.Join(dir, "dapp.config.devnet.json"),
		filepath.Join(dir, "dapp.config.mainnet.json")))

	t.Setenv("DEFAULT_CFG_FILE", "mainnet")

	_, err := run(t, overlay.List{}, "--config-dir", dir, "--yaml-out", out,
		"apply", "--no-exec")
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestApplySuccessor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		command []string
		want    []string
	}{
		{"default", nil, handoff.DefaultCommand},
		{"explicit", []string{"npm", "start"}, []string{"npm", "start"}},
		{"separator", []string{"--", "npm", "start"}, []string{"npm", "start"}},
		{"separator_only", []string{"--"}, handoff.DefaultCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := Apply{Command: tt.command, ExecPath: []string{"/opt/bin"}}
			s := a.successor()
			assert.Equal(t, tt.want, s.Args)
			assert.Equal(t, []string{"/opt/bin"}, s.Path)
		})
	}
}

func TestShow(t *testing.T) {
	t.Parallel()

	dir, out := fixture(t)
	src := overlay.Map(map[string]string{"DAPP_n": "num:2"})

	stdout, err := run(t, src, "--config-dir", dir, "--yaml-out", out, "show", "json")
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"name\": \"x\",\n    \"n\": 2\n}\n", stdout)

	// show never writes.
	assert.NoFileExists(t, out)

	data, err := os.ReadFile(filepath.Join(dir, "dapp.config.devnet.json"))
	require.NoError(t, err)
	assert.Equal(t, testJSON, string(data))
}

func TestDiff(t *testing.T) {
	t.Parallel()

	dir, out := fixture(t)
	src := overlay.Map(map[string]string{"DAPP_name": "y"})

	stdout, err := run(t, src, "--config-dir", dir, "--yaml-out", out,
		"diff", "--no-color")
	require.NoError(t, err)

	jsonPath := filepath.Join(dir, "dapp.config.devnet.json")
	assert.Contains(t, stdout, "--- "+jsonPath+"\n+++ "+jsonPath+"\n")
	assert.Contains(t, stdout, "-    \"name\": \"x\",\n")
	assert.Contains(t, stdout, "+    \"name\": \"y\",\n")
	assert.Contains(t, stdout, "     \"n\": 1\n")

	// The YAML document is unchanged, so it is not listed.
	assert.NotContains(t, stdout, "config.devnet.yaml")
	assert.NoFileExists(t, out)
}

func TestValue(t *testing.T) {
	t.Parallel()

	stdout, err := run(t, nil, "value", "num:42", "bool:TRUE", "raw:a:b", "foo:bar")
	require.NoError(t, err)
	assert.Equal(t,
		"num:42\tint(42)\n"+
			"bool:TRUE\tbool(true)\n"+
			"raw:a:b\traw(\"a:b\")\n"+
			"foo:bar\tstring(\"foo:bar\")\n",
		stdout)

	stdout, err = run(t, nil, "value", "num:abc", "arr:[1,2]")
	require.ErrorIs(t, err, ErrLiteral)
	assert.Contains(t, stdout, "num:abc\terror: ")
	assert.Contains(t, stdout, "arr:[1,2]\tarray(2 items)\n")
}

func TestSourceFromDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, overlay.Environ(), sourceFrom(context.Background()))

	src := overlay.List{{Name: "A", Value: "1"}}
	assert.Equal(t, src, sourceFrom(WithSource(context.Background(), src)))
}
