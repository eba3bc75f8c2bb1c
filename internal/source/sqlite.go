package source

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/theirongolddev/salestable/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

type categoryRow struct {
	id       string
	parentID string
	label    string
	value    float64
}

// loadSQLite reads the categories table:
//
//	categories(id TEXT PRIMARY KEY, parent_id TEXT, label TEXT, value REAL, position INTEGER)
//
// Rows with a NULL parent_id are roots and siblings keep position order.
// The database is opened read-only.
func loadSQLite(path string) (model.Tree, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening sqlite data file: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite data file: %w", err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.Query(`SELECT id, parent_id, label, value
		FROM categories
		ORDER BY position, rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var all []categoryRow
	known := make(map[string]struct{})
	for rows.Next() {
		var r categoryRow
		var parentID sql.NullString
		if err := rows.Scan(&r.id, &parentID, &r.label, &r.value); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		if r.id == "" {
			return nil, fmt.Errorf("category with empty id (parent %q)", parentID.String)
		}
		if parentID.Valid {
			r.parentID = parentID.String
		}
		all = append(all, r)
		known[r.id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}

	return buildTree(all, known)
}

// buildTree assembles rows into a tree, keeping row order among siblings.
func buildTree(all []categoryRow, known map[string]struct{}) (model.Tree, error) {
	byParent := make(map[string][]categoryRow)
	for _, r := range all {
		if r.parentID != "" {
			if _, ok := known[r.parentID]; !ok {
				return nil, fmt.Errorf("category %q references missing parent %q", r.id, r.parentID)
			}
		}
		byParent[r.parentID] = append(byParent[r.parentID], r)
	}

	built := 0
	var build func(parentID string) []model.Node
	build = func(parentID string) []model.Node {
		children := byParent[parentID]
		if len(children) == 0 {
			return nil
		}
		nodes := make([]model.Node, len(children))
		for i, r := range children {
			built++
			nodes[i] = model.Node{
				ID:       r.id,
				Label:    r.label,
				Value:    r.value,
				Children: build(r.id),
			}
		}
		return nodes
	}

	tree := model.Tree(build(""))
	if built != len(all) {
		return nil, fmt.Errorf("categories contain a parent cycle (%d of %d rows reachable)", built, len(all))
	}
	return tree, nil
}
