// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"fmt"
	"io"
)

// BatchSummary holds counts from a batch generation run.
type BatchSummary struct {
	Generated int
	Failed    int
}

// Total returns the number of projects processed.
func (s BatchSummary) Total() int {
	return s.Generated + s.Failed
}

// HasFailures reports whether any projects failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// GenerateBatch runs the project_id pipeline for the first limit registry
// records (all of them when limit <= 0), writing per-project progress to w.
// A failing project is reported and skipped; the run continues.
func (g *Generator) GenerateBatch(ctx context.Context, limit int, w io.Writer) (BatchSummary, error) {
	if g.registry == nil {
		return BatchSummary{}, fmt.Errorf("no project registry configured")
	}

	projects, err := g.registry.List(ctx)
	if err != nil {
		return BatchSummary{}, err
	}
	if limit > 0 && limit < len(projects) {
		projects = projects[:limit]
	}

	var summary BatchSummary
	for _, p := range projects {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		fmt.Fprintf(w, "generating %s\n", p.ProjectID)
		if _, err := g.GenerateFromProjectID(ctx, p.ProjectID); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", p.ProjectID, err)
			summary.Failed++
			continue
		}
		fmt.Fprintf(w, "generated %s\n", p.ProjectID)
		summary.Generated++
	}

	return summary, nil
}
