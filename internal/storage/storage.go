// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package storage persists generation results in a flat per-project layout:
//
//	<output_dir>/<project_id>/output.json
//	<output_dir>/<project_id>/evaluation.json        (only when evaluation ran)
//	<output_dir>/<project_id>/project_page_<lang>.txt
//	<output_dir>/<project_id>/faculty_teaser_<lang>.txt
//
// Writes are idempotent per project: a re-run overwrites the prior output.
// The same package serves the read side for presentation consumers.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/outreach-engine/pkg/types"
)

const (
	outputFile     = "output.json"
	evaluationFile = "evaluation.json"
)

// Store manages the on-disk output tree and the reference text files.
type Store struct {
	outputDir      string
	referencesDir  string
	writeTextFiles bool
}

// NewStore builds a Store from config. Directories are created lazily on
// first write.
func NewStore(cfg types.StorageConfig) *Store {
	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = "outputs"
	}
	return &Store{
		outputDir:      outputDir,
		referencesDir:  cfg.ReferencesDir,
		writeTextFiles: cfg.WriteTextFiles,
	}
}

// SaveGeneration writes the result, the optional evaluation, and the flat
// per-language text files for projectID. A nil evaluation removes any stale
// evaluation.json from a prior run so the directory always reflects the
// latest call.
func (s *Store) SaveGeneration(projectID string, result *types.GenerationResult, eval *types.EvaluationResult) error {
	dir := filepath.Join(s.outputDir, projectID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}

	if err := writeJSON(filepath.Join(dir, outputFile), result); err != nil {
		return fmt.Errorf("writing %s: %w", outputFile, err)
	}

	if eval != nil {
		if err := writeJSON(filepath.Join(dir, evaluationFile), eval); err != nil {
			return fmt.Errorf("writing %s: %w", evaluationFile, err)
		}
	} else if err := os.Remove(filepath.Join(dir, evaluationFile)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale %s: %w", evaluationFile, err)
	}

	if !s.writeTextFiles {
		return nil
	}
	for lang, entry := range result.ProjectPage {
		name := fmt.Sprintf("project_page_%s.txt", lang)
		if err := os.WriteFile(filepath.Join(dir, name), []byte(entry.Text), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	for lang, entry := range result.FacultyTeaser {
		name := fmt.Sprintf("faculty_teaser_%s.txt", lang)
		if err := os.WriteFile(filepath.Join(dir, name), []byte(entry.Text), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}

// LoadGeneration reads output.json for projectID.
func (s *Store) LoadGeneration(projectID string) (*types.GenerationResult, error) {
	data, err := os.ReadFile(filepath.Join(s.outputDir, projectID, outputFile))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", outputFile, err)
	}
	var result types.GenerationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", outputFile, err)
	}
	return &result, nil
}

// LoadEvaluation reads evaluation.json for projectID. A missing file is a
// normal state and returns (nil, nil).
func (s *Store) LoadEvaluation(projectID string) (*types.EvaluationResult, error) {
	data, err := os.ReadFile(filepath.Join(s.outputDir, projectID, evaluationFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", evaluationFile, err)
	}
	var eval types.EvaluationResult
	if err := json.Unmarshal(data, &eval); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", evaluationFile, err)
	}
	return &eval, nil
}

// ListProjects returns the IDs of all projects with a persisted output,
// sorted.
func (s *Store) ListProjects() ([]string, error) {
	entries, err := os.ReadDir(s.outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading output directory: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.outputDir, e.Name(), outputFile)); err == nil {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// LoadReference reads the per-project reference text file
// (<references_dir>/<project_id>.txt). Absence is a valid, expected state
// and returns an empty string with no error.
func (s *Store) LoadReference(projectID string) (string, error) {
	if s.referencesDir == "" {
		return "", nil
	}
	data, err := os.ReadFile(filepath.Join(s.referencesDir, projectID+".txt"))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading reference text: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// writeJSON marshals v with indentation and writes it to path.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
