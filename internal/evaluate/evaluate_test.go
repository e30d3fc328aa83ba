// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evaluate

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmbedder returns deterministic vectors keyed by input text.
type stubEmbedder struct {
	vectors map[string][]float64
	calls   int
	err     error
}

func (s *stubEmbedder) Encode(ctx context.Context, text string) ([]float64, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.vectors[text], nil
}

func (s *stubEmbedder) Model() string {
	return "stub-embedder"
}

func TestEvaluateSkipsMissingReference(t *testing.T) {
	stub := &stubEmbedder{}
	e := New(stub, nil)

	for _, reference := range []string{"", "   ", "\n"} {
		result := e.Evaluate(context.Background(), "p1", "generated", reference)
		assert.True(t, result.Skipped())
		assert.Nil(t, result.Score)
		assert.Contains(t, result.Reason, "reference description missing")
		assert.Equal(t, "p1", result.ProjectID)
	}
	// A skip must not touch the embedding backend.
	assert.Equal(t, 0, stub.calls)
}

func TestEvaluateScoresIdenticalVectors(t *testing.T) {
	stub := &stubEmbedder{vectors: map[string][]float64{
		"generated": {1, 2, 3},
		"reference": {1, 2, 3},
	}}
	e := New(stub, nil)

	result := e.Evaluate(context.Background(), "p1", "generated", "reference")
	require.False(t, result.Skipped())
	assert.InDelta(t, 1.0, *result.Score, 1e-9)
	assert.Equal(t, MetricName, result.Metric)
	assert.Equal(t, "stub-embedder", result.EmbeddingModel)
	assert.Equal(t, 3, result.Dimensions)
	assert.Equal(t, "reference", result.ReferenceExcerpt)
}

func TestEvaluateOrthogonalVectors(t *testing.T) {
	stub := &stubEmbedder{vectors: map[string][]float64{
		"generated": {1, 0},
		"reference": {0, 1},
	}}
	e := New(stub, nil)

	result := e.Evaluate(context.Background(), "p1", "generated", "reference")
	require.False(t, result.Skipped())
	assert.Equal(t, 0.0, *result.Score)
}

func TestEvaluateRoundsToFourDecimals(t *testing.T) {
	// cos = 2/sqrt(6) = 0.81649..., which must persist as 0.8165.
	stub := &stubEmbedder{vectors: map[string][]float64{
		"generated": {1, 1, 1},
		"reference": {1, 1, 0},
	}}
	e := New(stub, nil)

	result := e.Evaluate(context.Background(), "p1", "generated", "reference")
	require.False(t, result.Skipped())
	assert.Equal(t, 0.8165, *result.Score)
}

func TestEvaluateDeterministic(t *testing.T) {
	stub := &stubEmbedder{vectors: map[string][]float64{
		"generated": {0.3, 0.7, 0.1},
		"reference": {0.2, 0.9, 0.4},
	}}
	e := New(stub, nil)

	first := e.Evaluate(context.Background(), "p1", "generated", "reference")
	second := e.Evaluate(context.Background(), "p1", "generated", "reference")
	require.False(t, first.Skipped())
	assert.Equal(t, *first.Score, *second.Score)
}

func TestEvaluateBackendFailureBecomesSkip(t *testing.T) {
	stub := &stubEmbedder{err: fmt.Errorf("embedding service down")}
	e := New(stub, nil)

	result := e.Evaluate(context.Background(), "p1", "generated", "reference")
	assert.True(t, result.Skipped())
	assert.Contains(t, result.Reason, "embedding service down")
}

func TestEvaluateDimensionMismatchBecomesSkip(t *testing.T) {
	stub := &stubEmbedder{vectors: map[string][]float64{
		"generated": {1, 2},
		"reference": {1, 2, 3},
	}}
	e := New(stub, nil)

	result := e.Evaluate(context.Background(), "p1", "generated", "reference")
	assert.True(t, result.Skipped())
	assert.Contains(t, result.Reason, "dimensions differ")
}

func TestExcerptTruncation(t *testing.T) {
	long := ""
	for i := 0; i < 50; i++ {
		long += "0123456789"
	}
	assert.Len(t, excerpt(long, 300), 300)
	assert.Equal(t, "short", excerpt("  short  ", 300))
}
