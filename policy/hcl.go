package policy

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/vk/symtrace/qualname"
)

// policyConfig is the top-level structure of a policy document.
type policyConfig struct {
	Leaf      *leafBlock      `hcl:"leaf,block"`
	Overrides []overrideBlock `hcl:"override,block"`
}

// leafBlock configures the default classification rules.
type leafBlock struct {
	Packages     []string `hcl:"packages,optional"`
	TraceThrough []string `hcl:"trace_through,optional"`
}

// overrideBlock forces the classification of one qualified path.
type overrideBlock struct {
	Path string `hcl:"path,label"`
	Leaf bool   `hcl:"leaf"`
}

// ParseHCL builds a policy from an HCL document:
//
//	leaf {
//	  packages      = ["github.com/vk/symtrace/nn"]
//	  trace_through = ["Sequential"]
//	}
//
//	override "encoder.block1" { leaf = false }
//
// Omitted leaf attributes keep the Default values. filename is used in
// diagnostics only; the source is plain bytes, nothing is read from disk.
func ParseHCL(filename string, src []byte) (*Policy, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing policy %s: %w", filename, diags)
	}

	var cfg policyConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decoding policy %s: %w", filename, diags)
	}

	p := Default()
	if cfg.Leaf != nil {
		if cfg.Leaf.Packages != nil {
			p.LeafPackages = cfg.Leaf.Packages
		}
		if cfg.Leaf.TraceThrough != nil {
			p.TraceThrough = cfg.Leaf.TraceThrough
		}
	}
	for _, ov := range cfg.Overrides {
		if _, err := qualname.Parse(ov.Path); err != nil {
			return nil, fmt.Errorf("policy %s: override %q: %w", filename, ov.Path, err)
		}
		p.Override(ov.Path, ov.Leaf)
	}
	return p, nil
}
