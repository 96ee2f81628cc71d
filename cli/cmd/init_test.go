package cmd

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		subdir  string
		setup   func(t *testing.T, path string)
		wantErr bool
	}{
		{
			name:   "create_missing_directory",
			subdir: filepath.Join("xdg", "envlay"),
		},
		{
			name:  "create_new_config",
			force: false,
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing content"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name:  "fail_without_force",
			force: false,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing content"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), tt.subdir, "config.yaml")

			if tt.setup != nil {
				tt.setup(t, confPath)
			}

			var cli struct {
				Doc Options `embed:""`
			}

			parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
			if err != nil {
				t.Fatal(err)
			}

			kctx, err := parser.Parse([]string{"--profile", "testnet"})
			if err != nil {
				t.Fatal(err)
			}

			ctx := WithContext(context.Background(), kctx)

			initCmd := &Init{Force: tt.force}
			err = initCmd.Run(ctx)

			if (err != nil) != tt.wantErr {
				t.Errorf("Init.Run() error = %v, wantErr %v", err, tt.wantErr)

				return
			}

			if tt.wantErr {
				return
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(content, &got); err != nil {
				t.Fatalf("generated config is not valid YAML: %v", err)
			}

			if got["profile"] != "testnet" {
				t.Errorf("profile = %v, want testnet", got["profile"])
			}

			if got["yaml-prefix"] != "CFG_" {
				t.Errorf("yaml-prefix = %v, want CFG_", got["yaml-prefix"])
			}

			if got["preserve-quotes"] != true {
				t.Errorf("preserve-quotes = %v, want true", got["preserve-quotes"])
			}

			if _, ok := got["yaml-in"]; ok {
				t.Error("unset flag yaml-in was written")
			}
		})
	}
}

// TestInitBuildConfig tests that buildConfig keeps flag declaration order.
func TestInitBuildConfig(t *testing.T) {
	t.Parallel()

	var cli struct {
		Verbose bool   `help:"Enable verbose output" name:"verbose"`
		Output  string `help:"Output file"           name:"output"`
		Count   int    `help:"Number of items"       name:"count"`
		Empty   string `help:"Never set"             name:"empty"`
	}

	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse([]string{"--verbose", "--output=test.txt", "--count=5"})
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithContext(context.Background(), kctx)

	got := (&Init{}).buildConfig(ctx)
	want := yaml.MapSlice{
		{Key: "verbose", Value: true},
		{Key: "output", Value: "test.txt"},
		{Key: "count", Value: int64(5)},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("buildConfig() = %#v, want %#v", got, want)
	}
}

// TestNativeValue tests the conversion of flag values.
func TestNativeValue(t *testing.T) {
	t.Parallel()

	type named string

	tests := []struct {
		name   string
		value  any
		want   any
		wantOK bool
	}{
		{"bool_true", true, true, true},
		{"string_value", "test", "test", true},
		{"empty_string", "", nil, false},
		{"named_string", named("info"), "info", true},
		{"int_value", 42, int64(42), true},
		{"uint_value", uint8(7), uint64(7), true},
		{"float_value", 1.5, 1.5, true},
		{"string_slice", []string{"a", "b"}, []any{"a", "b"}, true},
		{"empty_slice", []string{}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := nativeValue(reflect.ValueOf(tt.value))
			if ok != tt.wantOK {
				t.Fatalf("nativeValue(%v) ok = %v, want %v", tt.value, ok, tt.wantOK)
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("nativeValue(%v) = %#v, want %#v", tt.value, got, tt.want)
			}
		})
	}
}
