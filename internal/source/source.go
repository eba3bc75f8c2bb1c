// Package source builds the initial sales tree from built-in sample data or an
// external file (JSON, YAML or SQLite).
package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/salestable/internal/alloc"
	"github.com/theirongolddev/salestable/internal/model"
)

// Sample returns the built-in sales data.
func Sample() model.Tree {
	return model.Tree{
		{
			ID:    "electronics",
			Label: "Electronics",
			Value: 1500,
			Children: []model.Node{
				{ID: "phones", Label: "Phones", Value: 800},
				{ID: "laptops", Label: "Laptops", Value: 700},
			},
		},
		{
			ID:    "furniture",
			Label: "Furniture",
			Value: 1000,
			Children: []model.Node{
				{ID: "tables", Label: "Tables", Value: 300},
				{ID: "chairs", Label: "Chairs", Value: 700},
			},
		},
	}
}

// Format identifies a tree file encoding.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// DetectFormat maps a file extension to its Format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("unsupported data file %q (want .json, .yaml, .yml, .db, .sqlite)", path)
	}
}

// Load reads a tree from path. An empty path returns Sample().
// Nodes without an ID get a generated one, and subtotals are recomputed so the
// returned tree is consistent.
func Load(path string) (model.Tree, error) {
	if path == "" {
		return Sample(), nil
	}

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var tree model.Tree
	switch format {
	case FormatSQLite:
		tree, err = loadSQLite(path)
		if err != nil {
			return nil, err
		}
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading data file: %w", err)
		}
		tree, err = Decode(data, format)
		if err != nil {
			return nil, err
		}
	}

	return normalize(tree), nil
}

// Decode parses a JSON or YAML document holding a list of root nodes.
func Decode(data []byte, format Format) (model.Tree, error) {
	var tree model.Tree
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("parsing json tree: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("parsing yaml tree: %w", err)
		}
	default:
		return nil, fmt.Errorf("cannot decode %s data in memory", format)
	}
	return tree, nil
}

func normalize(tree model.Tree) model.Tree {
	assignIDs(tree)
	return alloc.RecomputeSubtotals(tree)
}

// assignIDs fills in missing IDs in place. The tree is freshly decoded and
// not yet shared.
func assignIDs(nodes []model.Node) {
	for i := range nodes {
		if nodes[i].ID == "" {
			nodes[i].ID = uuid.NewString()
		}
		assignIDs(nodes[i].Children)
	}
}
