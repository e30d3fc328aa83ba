// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/outreach-engine/pkg/types"
)

func sampleResult() *types.GenerationResult {
	return &types.GenerationResult{
		ProjectPage: map[types.Language]types.TextEntry{
			types.LangEnglish: {Text: "English page.", ReadingLevel: types.ReadingIntermediate, WordCount: 450},
			types.LangGerman:  {Text: "Deutsche Seite.", ReadingLevel: types.ReadingIntermediate, WordCount: 430},
		},
		FacultyTeaser: map[types.Language]types.TextEntry{
			types.LangEnglish: {Text: "English teaser.", ReadingLevel: types.ReadingBeginner, WordCount: 60},
			types.LangGerman:  {Text: "Deutscher Teaser.", ReadingLevel: types.ReadingBeginner, WordCount: 70},
		},
		UsedKeywords: []string{"sensors", "traffic"},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return NewStore(types.StorageConfig{
		OutputDir:      filepath.Join(dir, "outputs"),
		ReferencesDir:  filepath.Join(dir, "references"),
		WriteTextFiles: true,
	})
}

func TestSaveAndLoadGeneration(t *testing.T) {
	store := newTestStore(t)
	want := sampleResult()

	require.NoError(t, store.SaveGeneration("p1", want, nil))

	got, err := store.LoadGeneration("p1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveWritesFlatTextFiles(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveGeneration("p1", sampleResult(), nil))

	dir := filepath.Join(store.outputDir, "p1")
	for _, name := range []string{
		"output.json",
		"project_page_en.txt", "project_page_de.txt",
		"faculty_teaser_en.txt", "faculty_teaser_de.txt",
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "expected %s", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "project_page_en.txt"))
	require.NoError(t, err)
	assert.Equal(t, "English page.", string(data))
}

func TestSaveTextFilesDisabled(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(types.StorageConfig{OutputDir: dir, WriteTextFiles: false})
	require.NoError(t, store.SaveGeneration("p1", sampleResult(), nil))

	_, err := os.Stat(filepath.Join(dir, "p1", "project_page_en.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	first := sampleResult()
	require.NoError(t, store.SaveGeneration("p1", first, nil))

	second := sampleResult()
	second.ProjectPage[types.LangEnglish] = types.TextEntry{Text: "Rewritten.", ReadingLevel: types.ReadingAdvanced, WordCount: 1}
	require.NoError(t, store.SaveGeneration("p1", second, nil))

	got, err := store.LoadGeneration("p1")
	require.NoError(t, err)
	assert.Equal(t, "Rewritten.", got.ProjectPage[types.LangEnglish].Text)
}

func TestSaveEvaluation(t *testing.T) {
	store := newTestStore(t)
	score := 0.8165
	eval := &types.EvaluationResult{
		ProjectID:      "p1",
		Metric:         "embedding_cosine_similarity",
		Score:          &score,
		EmbeddingModel: "stub",
		Dimensions:     3,
	}

	require.NoError(t, store.SaveGeneration("p1", sampleResult(), eval))

	got, err := store.LoadEvaluation("p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, eval, got)
}

func TestSaveRemovesStaleEvaluation(t *testing.T) {
	store := newTestStore(t)
	score := 0.5
	eval := &types.EvaluationResult{ProjectID: "p1", Metric: "m", Score: &score}
	require.NoError(t, store.SaveGeneration("p1", sampleResult(), eval))

	// Re-running without evaluation must not leave the old record behind.
	require.NoError(t, store.SaveGeneration("p1", sampleResult(), nil))

	got, err := store.LoadEvaluation("p1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLoadEvaluationMissingIsNotAnError(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveGeneration("p1", sampleResult(), nil))

	got, err := store.LoadEvaluation("p1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListProjects(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveGeneration("p2", sampleResult(), nil))
	require.NoError(t, store.SaveGeneration("p1", sampleResult(), nil))

	ids, err := store.ListProjects()
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids)
}

func TestListProjectsNoOutputDir(t *testing.T) {
	store := NewStore(types.StorageConfig{OutputDir: filepath.Join(t.TempDir(), "missing")})
	ids, err := store.ListProjects()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestLoadReference(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(store.referencesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(store.referencesDir, "p1.txt"), []byte("  Human-written description.\n"), 0o644))

	got, err := store.LoadReference("p1")
	require.NoError(t, err)
	assert.Equal(t, "Human-written description.", got)
}

func TestLoadReferenceMissingIsEmpty(t *testing.T) {
	store := newTestStore(t)

	got, err := store.LoadReference("nope")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}
