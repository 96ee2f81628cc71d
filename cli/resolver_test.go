package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFlatten(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		load  kong.ConfigurationLoader
		input string
		want  config
	}{
		{
			name: "yaml_nested",
			load: resolve("yaml", yaml.Unmarshal),
			input: "log:\n  level: debug\n  caller: true\nyaml-indent: 4\n" +
				"exec-path: [/opt/bin, 7]\n",
			want: config{
				"log-level":   "debug",
				"log-caller":  true,
				"yaml-indent": "4",
				"exec-path":   []any{"/opt/bin", "7"},
			},
		},
		{
			name:  "toml_tables",
			load:  resolve("toml", toml.Unmarshal),
			input: "profile = \"mainnet\"\n[log]\nlevel = \"warn\"\n[json]\nindent = -1\n",
			want: config{
				"profile":     "mainnet",
				"log-level":   "warn",
				"json-indent": "-1",
			},
		},
		{
			name:  "empty",
			load:  resolve("yaml", yaml.Unmarshal),
			input: "",
			want:  config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := tt.load(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, r)
		})
	}
}

func TestResolveInvalid(t *testing.T) {
	t.Parallel()

	_, err := resolve("toml", toml.Unmarshal)(strings.NewReader("= broken"))
	require.ErrorIs(t, err, ErrConfigFile)
}

func TestConfigResolve(t *testing.T) {
	t.Parallel()

	cfg := config{"log-level": "debug", "yaml_prefix": "APP_"}

	value, err := cfg.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "log-level"}})
	require.NoError(t, err)
	assert.Equal(t, "debug", value)

	value, err = cfg.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "yaml-prefix"}})
	require.NoError(t, err)
	assert.Equal(t, "APP_", value)

	value, err = cfg.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "missing"}})
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestConfigurationFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path,
		[]byte("log:\n  level: warn\nprefix: APP_\nindent: 3\n"), 0o644))

	var cli struct {
		Log struct {
			Level string `default:"info"`
		} `embed:"" prefix:"log-"`
		Prefix string `default:"CFG_"`
		Indent int    `default:"2"`
	}

	parser, err := kong.New(&cli,
		kong.Configuration(resolve("yaml", yaml.Unmarshal), path),
	)
	require.NoError(t, err)

	_, err = parser.Parse([]string{"--prefix", "CLI_"})
	require.NoError(t, err)

	assert.Equal(t, "warn", cli.Log.Level)
	assert.Equal(t, 3, cli.Indent)
	// Command-line flags take precedence over the configuration file.
	assert.Equal(t, "CLI_", cli.Prefix)
}
