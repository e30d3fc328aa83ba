// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate coordinates one text-generation call end to end: prompt
// construction, completion, validation, optional evaluation, persistence.
package generate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/outreach-engine/internal/completion"
	"github.com/pdiddy/outreach-engine/internal/evaluate"
	"github.com/pdiddy/outreach-engine/internal/prompt"
	"github.com/pdiddy/outreach-engine/internal/registry"
	"github.com/pdiddy/outreach-engine/internal/respond"
	"github.com/pdiddy/outreach-engine/internal/storage"
	"github.com/pdiddy/outreach-engine/pkg/types"
)

// Adapter defaults applied when building a request from a bare project_id.
var (
	defaultAudience  = []types.Audience{types.AudienceFaculty, types.AudienceIndustry}
	defaultLanguages = []types.Language{types.LangGerman, types.LangEnglish}
)

// Generator wires the pipeline components together. The registry and
// evaluator are optional: without a registry only the direct request path
// works, and without an evaluator results are persisted unscored.
type Generator struct {
	client    completion.Client
	evaluator *evaluate.Evaluator
	store     *storage.Store
	registry  *registry.Store
	logger    *zap.Logger
}

// New builds a Generator. A nil logger falls back to a no-op logger.
func New(client completion.Client, evaluator *evaluate.Evaluator, store *storage.Store, reg *registry.Store, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		client:    client,
		evaluator: evaluator,
		store:     store,
		registry:  reg,
		logger:    logger,
	}
}

// Generate runs the full pipeline for one request. Any prompt, backend, or
// validation failure aborts the call before anything is written; a failed
// call never leaves a partial output.json behind. Evaluation runs on the
// primary (first requested) language's project page and can never abort the
// call: scoring failures are recorded as skip records. referenceText may be
// empty, which records a skipped evaluation.
func (g *Generator) Generate(ctx context.Context, req types.GenerationRequest, referenceText string) (*types.GenerationResult, error) {
	g.logger.Info("generating project text",
		zap.String("project_id", req.ProjectID),
		zap.Int("languages", len(req.Languages)),
		zap.Int("keywords", len(req.Keywords)))

	p, err := prompt.Build(req)
	if err != nil {
		return nil, err
	}

	raw, err := g.client.Complete(ctx, p)
	if err != nil {
		return nil, err
	}

	result, err := respond.ValidateAndNormalize(raw, req)
	if err != nil {
		return nil, err
	}
	if len(result.Warnings) > 0 {
		g.logger.Warn("generation completed with warnings",
			zap.String("project_id", req.ProjectID),
			zap.Strings("warnings", result.Warnings))
	}

	var eval *types.EvaluationResult
	if g.evaluator != nil {
		primary := req.PrimaryLanguage()
		eval = g.evaluator.Evaluate(ctx, req.ProjectID, result.ProjectPage[primary].Text, referenceText)
	}

	if err := g.store.SaveGeneration(req.ProjectID, result, eval); err != nil {
		return nil, fmt.Errorf("persisting result for %s: %w", req.ProjectID, err)
	}

	g.logger.Info("generation persisted", zap.String("project_id", req.ProjectID))
	return result, nil
}

// GenerateFromProjectID resolves a bare project_id against the registry,
// derives a request from the record (title as seed content, keywords from
// the mapped columns, fixed audience and language defaults), loads the
// reference text, and delegates to Generate. A lookup miss fails with
// registry.ErrNotFound.
func (g *Generator) GenerateFromProjectID(ctx context.Context, projectID string) (*types.GenerationResult, error) {
	if g.registry == nil {
		return nil, fmt.Errorf("no project registry configured")
	}

	project, err := g.registry.Lookup(ctx, projectID)
	if err != nil {
		return nil, err
	}

	req := types.GenerationRequest{
		ProjectID:          project.ProjectID,
		ProjectDescription: project.Title,
		Keywords:           g.registry.Keywords(project),
		TargetAudience:     defaultAudience,
		Languages:          defaultLanguages,
		SourceType:         types.SourceTable,
	}

	// A per-project reference file wins over the registry's description
	// column; most projects have neither.
	reference, err := g.store.LoadReference(projectID)
	if err != nil {
		return nil, err
	}
	if reference == "" {
		reference = project.ReferenceText
	}

	return g.Generate(ctx, req, reference)
}
