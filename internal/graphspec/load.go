package graphspec

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/rwcarlsen/femloop/internal/ctxlog"
)

// rawNode captures a "node" block's label and defers every attribute to
// a manual cty decode, the way the teacher's step blocks defer their
// body to bggohcl helpers instead of a single flat gohcl struct.
type rawNode struct {
	Name   string   `hcl:"name,label"`
	Remain hcl.Body `hcl:",remain"`
}

type fileRoot struct {
	Nodes []*rawNode `hcl:"node,block"`
}

// Load parses every ".hcl" file named directly or found by walking a
// named directory, and decodes their "node" blocks into a GraphSpec.
func Load(ctx context.Context, paths ...string) (*GraphSpec, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("graphspec: load started", "path_count", len(paths))

	files, err := findHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("graphspec: discovered files", "count", len(files))

	parser := hclparse.NewParser()
	spec := &GraphSpec{}
	seen := make(map[string]struct{})

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("graphspec: parse %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("graphspec: decode %s: %w", file, diags)
		}

		for _, raw := range root.Nodes {
			if _, dup := seen[raw.Name]; dup {
				return nil, fmt.Errorf("graphspec: node %q in %s: %w", raw.Name, file, ErrDuplicateNode)
			}
			seen[raw.Name] = struct{}{}

			ns, err := decodeNode(raw)
			if err != nil {
				return nil, fmt.Errorf("graphspec: node %q in %s: %w", raw.Name, file, err)
			}
			spec.Nodes = append(spec.Nodes, ns)
		}
	}

	logger.Debug("graphspec: load complete", "nodes", len(spec.Nodes))
	return spec, nil
}

// decodeNode pulls each optional attribute out of raw's body as a
// cty.Value and converts it with gocty, matching the way the teacher's
// converter resolves an HCL expression's default value before handing
// it to the agnostic model.
func decodeNode(raw *rawNode) (*NodeSpec, error) {
	attrs, diags := raw.Remain.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	ns := &NodeSpec{Name: raw.Name}

	if attr, ok := attrs["cached"]; ok {
		if err := decodeAttr(attr, cty.Bool, &ns.Cached); err != nil {
			return nil, err
		}
	}
	if attr, ok := attrs["reducing"]; ok {
		if err := decodeAttr(attr, cty.Bool, &ns.Reducing); err != nil {
			return nil, err
		}
	}
	if attr, ok := attrs["block"]; ok {
		if err := decodeAttr(attr, cty.Number, &ns.Block); err != nil {
			return nil, err
		}
	}
	if attr, ok := attrs["category"]; ok {
		var catStr string
		if err := decodeAttr(attr, cty.String, &catStr); err != nil {
			return nil, err
		}
		cat, err := parseCategory(catStr)
		if err != nil {
			return nil, err
		}
		ns.Category = cat
	}
	if attr, ok := attrs["depends_on"]; ok {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		listVal, err := convert.Convert(val, cty.List(cty.String))
		if err != nil {
			return nil, fmt.Errorf("graphspec: depends_on: %w", err)
		}
		it := listVal.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			ns.DependsOn = append(ns.DependsOn, elem.AsString())
		}
	}

	return ns, nil
}

func decodeAttr(attr *hcl.Attribute, want cty.Type, out any) error {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return diags
	}
	converted, err := convert.Convert(val, want)
	if err != nil {
		return fmt.Errorf("graphspec: attribute %q: %w", attr.Name, err)
	}
	return gocty.FromCtyValue(converted, out)
}

func findHCLFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			files = append(files, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("graphspec: stat %s: %w", path, err)
		}
		if info.IsDir() {
			err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && filepath.Ext(p) == ".hcl" {
					add(p)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}
		if filepath.Ext(path) == ".hcl" {
			add(path)
		}
	}
	return files, nil
}
