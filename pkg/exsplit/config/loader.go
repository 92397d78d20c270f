package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Load reads a condition file. The format is determined by the extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
func Load(ctx context.Context, path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading condition file: %w", err)
	}

	var spec *Spec
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		spec, err = loadJSON(data)
	case ".yaml", ".yml":
		spec, err = loadYAML(data)
	case ".hcl":
		spec, err = loadHCL(data, path)
	default:
		return nil, errors.Errorf("unsupported file extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	file, err := spec.Build()
	if err != nil {
		return nil, errors.Errorf("validating %s: %w", path, err)
	}
	file.Path = path

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("conditions", len(file.Conditions)).
		Msg("condition file loaded")

	return file, nil
}

// loadJSON loads a spec from JSON data
func loadJSON(data []byte) (*Spec, error) {
	var spec Spec
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&spec); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &spec, nil
}

// loadYAML loads a spec from YAML data
func loadYAML(data []byte) (*Spec, error) {
	var spec Spec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &spec, nil
}

type hclCondition struct {
	Output   string   `hcl:"output,label"`
	Column   string   `hcl:"column"`
	Op       *string  `hcl:"op,optional"`
	Value    *float64 `hcl:"value,optional"`
	Value2   *float64 `hcl:"value2,optional"`
	Contains *string  `hcl:"contains,optional"`
	Regex    *string  `hcl:"regex,optional"`
	Negate   bool     `hcl:"negate,optional"`
}

type hclSpec struct {
	Sheet      string         `hcl:"sheet,optional"`
	Mode       string         `hcl:"mode,optional"`
	Output     string         `hcl:"output,optional"`
	Conditions []hclCondition `hcl:"condition,block"`
}

// loadHCL loads a spec from HCL data. Each condition is a block labelled
// with its output name.
func loadHCL(data []byte, filename string) (*Spec, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var raw hclSpec
	diags = gohcl.DecodeBody(hclFile.Body, ctx, &raw)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	spec := &Spec{
		Sheet:  raw.Sheet,
		Mode:   raw.Mode,
		Output: raw.Output,
	}
	for _, c := range raw.Conditions {
		entry := ConditionSpec{
			Column:   c.Column,
			Contains: c.Contains,
			Regex:    c.Regex,
			Negate:   c.Negate,
			Output:   c.Output,
		}
		if c.Op != nil || c.Value != nil {
			if c.Op == nil || c.Value == nil {
				return nil, errors.Errorf("condition %q: op and value must be set together", c.Output)
			}
			entry.Numeric = &NumericSpec{Op: *c.Op, Value: c.Value, Value2: c.Value2}
		}
		spec.Conditions = append(spec.Conditions, entry)
	}
	return spec, nil
}
