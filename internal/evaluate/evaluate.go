// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package evaluate scores generated text against a human-written reference
// via embedding cosine similarity. Evaluation is strictly best-effort: every
// failure path degrades to a skip record with a reason, never an error, so a
// scoring problem can never undo a generation that already succeeded.
package evaluate

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/outreach-engine/pkg/types"
)

// MetricName identifies the scoring method in persisted evaluation records.
const MetricName = "embedding_cosine_similarity"

// excerptLen is how much of the reference text is kept for traceability.
const excerptLen = 300

// Embedder encodes text into a dense vector. Implementations are expected to
// be constructed once per process and reused; a shared instance invoked from
// multiple goroutines must be guarded by the caller.
type Embedder interface {
	Encode(ctx context.Context, text string) ([]float64, error)
	Model() string
}

// Evaluator compares generated texts against references using an injected
// embedding backend.
type Evaluator struct {
	embedder Embedder
	logger   *zap.Logger
}

// New builds an Evaluator. A nil logger falls back to a no-op logger.
func New(embedder Embedder, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{embedder: embedder, logger: logger}
}

// Evaluate scores generatedText against referenceText. A missing reference
// short-circuits to a skip record without touching the backend; this is the
// expected path for most projects. Scores are rounded to four decimals for
// stable persistence and display.
func (e *Evaluator) Evaluate(ctx context.Context, projectID, generatedText, referenceText string) *types.EvaluationResult {
	if strings.TrimSpace(referenceText) == "" {
		e.logger.Debug("evaluation skipped", zap.String("project_id", projectID), zap.String("reason", "missing reference"))
		return skip(projectID, "reference description missing; evaluation skipped")
	}

	genVec, err := e.embedder.Encode(ctx, generatedText)
	if err != nil {
		e.logger.Warn("embedding generated text failed", zap.String("project_id", projectID), zap.Error(err))
		return skip(projectID, fmt.Sprintf("embedding generated text: %v", err))
	}
	refVec, err := e.embedder.Encode(ctx, referenceText)
	if err != nil {
		e.logger.Warn("embedding reference text failed", zap.String("project_id", projectID), zap.Error(err))
		return skip(projectID, fmt.Sprintf("embedding reference text: %v", err))
	}

	score, err := cosineSimilarity(genVec, refVec)
	if err != nil {
		e.logger.Warn("similarity computation failed", zap.String("project_id", projectID), zap.Error(err))
		return skip(projectID, fmt.Sprintf("computing similarity: %v", err))
	}

	rounded := math.Round(score*10000) / 10000
	e.logger.Info("evaluation scored",
		zap.String("project_id", projectID),
		zap.Float64("score", rounded),
		zap.String("embedding_model", e.embedder.Model()))

	return &types.EvaluationResult{
		ProjectID:        projectID,
		Metric:           MetricName,
		Score:            &rounded,
		EmbeddingModel:   e.embedder.Model(),
		Dimensions:       len(genVec),
		ReferenceExcerpt: excerpt(referenceText, excerptLen),
	}
}

// skip builds an unscored evaluation record.
func skip(projectID, reason string) *types.EvaluationResult {
	return &types.EvaluationResult{
		ProjectID: projectID,
		Metric:    MetricName,
		Reason:    reason,
	}
}

// cosineSimilarity computes the cosine of the angle between two vectors.
func cosineSimilarity(a, b []float64) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("empty embedding vector")
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimensions differ: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("zero-magnitude embedding vector")
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// excerpt returns the first n bytes of s, trimmed.
func excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}
