package cmd

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/ardnew/envlay/document"
	"github.com/ardnew/envlay/log"
	"github.com/ardnew/envlay/mutate"
	"github.com/ardnew/envlay/overlay"
)

// Options selects the documents and the rules for overlaying them.
type Options struct {
	Profile   string `default:"devnet" env:"DEFAULT_CFG_FILE" help:"Profile selecting the input documents."       short:"P"`
	ConfigDir string `default:"config"                        help:"Directory containing the input documents." name:"config-dir" type:"path"`

	YAMLIn  string `help:"YAML input document (default: <config-dir>/config.<profile>.yaml)."              name:"yaml-in"  type:"path"`
	JSONIn  string `help:"JSON document, rewritten in place (default: <config-dir>/dapp.config.<profile>.json)." name:"json-in"  type:"path"`
	YAMLOut string `default:"/app/dist/config/config.yaml" help:"YAML output document."                      name:"yaml-out" type:"path"`

	YAMLPrefix string `default:"CFG_"       help:"Prefix of variables overlaid on the YAML document." name:"yaml-prefix"`
	JSONPrefix string `default:"DAPP_"      help:"Prefix of variables overlaid on the JSON document." name:"json-prefix"`
	YAMLPolicy string `default:"permissive" enum:"permissive,strict" help:"Handling of missing YAML paths." name:"yaml-policy"`
	JSONPolicy string `default:"permissive" enum:"permissive,strict" help:"Handling of missing JSON paths." name:"json-policy"`

	YAMLIndent     int  `default:"2" help:"YAML indent width."                                    name:"yaml-indent"`
	JSONIndent     int  `default:"4" help:"JSON indent width. A negative width writes one line."   name:"json-indent"`
	PreserveQuotes bool `default:"true" help:"Keep the quoting style of YAML scalars."            name:"preserve-quotes" negatable:""`
	EnsureASCII    bool `default:"true" help:"Escape non-ASCII characters in JSON strings."       name:"ensure-ascii"    negatable:""`
}

// yamlIn returns the path of the YAML input document.
func (o *Options) yamlIn() string {
	if o.YAMLIn != "" {
		return o.YAMLIn
	}

	return filepath.Join(o.ConfigDir, "config."+o.Profile+".yaml")
}

// jsonIn returns the path of the JSON document.
func (o *Options) jsonIn() string {
	if o.JSONIn != "" {
		return o.JSONIn
	}

	return filepath.Join(o.ConfigDir, "dapp.config."+o.Profile+".json")
}

// documents is the pair of documents overlaid by a run.
type documents struct {
	yaml *document.Document
	json *document.Document
}

// output is an encoded document and the file it is written to.
type output struct {
	from string
	path string
	data []byte
}

// load reads both documents. Nothing is mutated unless both load.
func (o *Options) load(ctx context.Context) (*documents, error) {
	y, err := document.Load(o.yamlIn(), document.FormatYAML,
		document.WithIndent(o.YAMLIndent),
		document.WithPreserveQuotes(o.PreserveQuotes),
	)
	if err != nil {
		return nil, err
	}

	j, err := document.Load(o.jsonIn(), document.FormatJSON,
		document.WithIndent(o.JSONIndent),
		document.WithEnsureASCII(o.EnsureASCII),
	)
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "loaded documents",
		slog.String("yaml", y.Path),
		slog.String("json", j.Path),
	)

	return &documents{yaml: y, json: j}, nil
}

// targets returns the overlay targets of d, YAML first.
func (o *Options) targets(d *documents) ([]overlay.Target, error) {
	yp, err := mutate.ParsePolicy(o.YAMLPolicy)
	if err != nil {
		return nil, err
	}

	jp, err := mutate.ParsePolicy(o.JSONPolicy)
	if err != nil {
		return nil, err
	}

	return []overlay.Target{
		{Root: d.yaml.Root, Name: "yaml", Prefix: o.YAMLPrefix, Policy: yp},
		{Root: d.json.Root, Name: "json", Prefix: o.JSONPrefix, Policy: jp},
	}, nil
}

// overlay applies the variables of src to both documents.
func (o *Options) overlay(
	ctx context.Context,
	d *documents,
	src overlay.Source,
) ([]overlay.Report, error) {
	targets, err := o.targets(d)
	if err != nil {
		return nil, err
	}

	reports := make([]overlay.Report, 0, len(targets))

	for _, t := range targets {
		report := overlay.Apply(ctx, src, t)
		log.DebugContext(ctx, "overlay complete", slog.Any("report", report))

		reports = append(reports, report)
	}

	return reports, ctx.Err()
}

// encode encodes both documents. The YAML document is destined for the
// output path and the JSON document for the path it was loaded from.
func (o *Options) encode(d *documents) ([]output, error) {
	y, err := d.yaml.Bytes()
	if err != nil {
		return nil, err
	}

	j, err := d.json.Bytes()
	if err != nil {
		return nil, err
	}

	return []output{
		{from: d.yaml.Path, path: o.YAMLOut, data: y},
		{from: d.json.Path, path: d.json.Path, data: j},
	}, nil
}

// write writes every encoded document.
func write(ctx context.Context, outs []output) error {
	for _, out := range outs {
		if err := document.WriteFile(out.path, out.data); err != nil {
			return err
		}

		log.InfoContext(ctx, "wrote document", slog.String("path", out.path))
	}

	return nil
}
