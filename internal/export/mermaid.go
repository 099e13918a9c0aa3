// Package export renders a generated project as a Mermaid import diagram
// and a JSON generation summary.
package export

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/dusk-indust/frontgen/internal/graph"
)

// GenerateMermaid produces a Mermaid "graph TD" diagram from a graph store.
// Files are grouped by directory; IMPORTS edges between files become arrows.
func GenerateMermaid(ctx context.Context, store graph.Store) (string, error) {
	files, err := store.Files(ctx)
	if err != nil {
		return "", fmt.Errorf("get files: %w", err)
	}
	edges, err := store.Edges(ctx)
	if err != nil {
		return "", fmt.Errorf("get edges: %w", err)
	}

	// Mermaid IDs must be alphanumeric; files are numbered in path order.
	nodeIDs := make(map[string]string, len(files))
	groups := make(map[string][]string)
	for i, f := range files {
		nodeIDs[f.Path] = fmt.Sprintf("N%d", i)
		dir := path.Dir(f.Path)
		groups[dir] = append(groups[dir], f.Path)
	}
	dirs := make([]string, 0, len(groups))
	for d := range groups {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for i, dir := range dirs {
		label := dir
		if dir == "." {
			label = "/"
		}
		fmt.Fprintf(&sb, "  subgraph D%d[\"%s\"]\n", i, label)
		for _, p := range groups[dir] {
			fmt.Fprintf(&sb, "    %s[\"%s\"]\n", nodeIDs[p], path.Base(p))
		}
		sb.WriteString("  end\n")
	}

	for _, e := range edges {
		if e.Kind != graph.EdgeKindImports {
			continue
		}
		src, ok := nodeIDs[e.SourceID]
		if !ok {
			continue
		}
		tgt, ok := nodeIDs[e.TargetID]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "  %s --> %s\n", src, tgt)
	}

	return sb.String(), nil
}
