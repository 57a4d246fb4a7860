package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/ctxlog"
)

// DefaultFileName is the overrides file picked up from the working directory
// when --config is not given.
const DefaultFileName = "mod-converter.hcl"

// File is the HCL schema of the overrides file. Every attribute is optional;
// unknown attributes are rejected so typos surface instead of being ignored.
type File struct {
	OutputDir       string   `hcl:"output_dir,optional"`
	Version         string   `hcl:"version,optional"`
	ProjectName     string   `hcl:"project_name,optional"`
	ModsDir         string   `hcl:"mods_dir,optional"`
	RetocPath       string   `hcl:"retoc_path,optional"`
	RetocCandidates []string `hcl:"retoc_candidates,optional"`
}

// LoadFile parses and decodes an HCL overrides file. Attribute expressions
// can reference process environment variables through the env object, e.g.
//
//	mods_dir = "${env.HOME}/rivals/~mods"
func LoadFile(ctx context.Context, path string) (*File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading config file.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	var f File
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &f)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	logger.Debug("Config file loaded.", "path", path)
	return &f, nil
}

// evalContext exposes the process environment to attribute expressions as
// the env object.
func evalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		vars[key] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}
