// Copyright 2025 catpack authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Pointer fields keep "absent" distinguishable from "false" so defaults
	// survive partial configs.
	type hclExcludes struct {
		Files  map[string]bool `hcl:"files,optional"`
		Search map[string]bool `hcl:"search,optional"`
	}
	type hclConfig struct {
		Patterns            *string      `hcl:"patterns,optional"`
		RespectIgnoreFiles  *bool        `hcl:"respect_ignore_files,optional"`
		RespectHostExcludes *bool        `hcl:"respect_host_excludes,optional"`
		CustomExcludes      *string      `hcl:"custom_excludes,optional"`
		Excludes            *hclExcludes `hcl:"excludes,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := Default()
	if hclCfg.Patterns != nil {
		cfg.Patterns = *hclCfg.Patterns
	}
	if hclCfg.RespectIgnoreFiles != nil {
		cfg.RespectIgnoreFiles = *hclCfg.RespectIgnoreFiles
	}
	if hclCfg.RespectHostExcludes != nil {
		cfg.RespectHostExcludes = *hclCfg.RespectHostExcludes
	}
	if hclCfg.CustomExcludes != nil {
		cfg.CustomExcludes = *hclCfg.CustomExcludes
	}
	if hclCfg.Excludes != nil {
		cfg.Excludes = ExcludeSettings{
			Files:  hclCfg.Excludes.Files,
			Search: hclCfg.Excludes.Search,
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}
