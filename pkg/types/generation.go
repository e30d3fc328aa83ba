// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Audience identifies an intended readership group for generated text.
type Audience string

const (
	AudienceFaculty       Audience = "faculty"
	AudienceStudents      Audience = "students"
	AudienceIndustry      Audience = "industry"
	AudienceGeneralPublic Audience = "general_public"
)

// Language is an output language code (closed set).
type Language string

const (
	LangEnglish Language = "en"
	LangGerman  Language = "de"
)

// ReadingLevel classifies the difficulty of a generated text. The model
// self-assigns one of the three levels; ReadingUnknown is the sentinel used
// when the model omits the field.
type ReadingLevel string

const (
	ReadingBeginner     ReadingLevel = "beginner"
	ReadingIntermediate ReadingLevel = "intermediate"
	ReadingAdvanced     ReadingLevel = "advanced"
	ReadingUnknown      ReadingLevel = "unknown"
)

// ValidReadingLevel reports whether s is one of the three model-assignable
// reading levels.
func ValidReadingLevel(s string) bool {
	switch ReadingLevel(s) {
	case ReadingBeginner, ReadingIntermediate, ReadingAdvanced:
		return true
	}
	return false
}

// SourceType records the provenance of a request's metadata. Informational
// only; not validated against business logic.
type SourceType string

const (
	SourceDatabase SourceType = "database"
	SourceTable    SourceType = "table"
)

// GenerationRequest is the input to the generation orchestrator. It carries
// only high-level project metadata; the system never sees the project's
// technical documentation.
type GenerationRequest struct {
	// ProjectID is the stable identifier used as the persistence key.
	ProjectID string `json:"project_id"`

	// ProjectDescription is the free-text seed content (typically the
	// project title plus whatever sparse context the source provides).
	// May be empty; generation degrades to generic output.
	ProjectDescription string `json:"project_description"`

	// Keywords are contextual signals for the model, deduplicated and
	// order-preserving. Optional.
	Keywords []string `json:"keywords,omitempty"`

	// TargetAudience lists the intended readership groups. Must be non-empty.
	TargetAudience []Audience `json:"target_audience"`

	// Languages lists the output languages in order. Must be non-empty; the
	// first entry is the primary language used for evaluation.
	Languages []Language `json:"languages"`

	// SourceType records where the metadata came from.
	SourceType SourceType `json:"source_type,omitempty"`
}

// PrimaryLanguage returns the first requested language.
func (r GenerationRequest) PrimaryLanguage() Language {
	if len(r.Languages) == 0 {
		return ""
	}
	return r.Languages[0]
}

// TextEntry is one generated text unit in one language.
type TextEntry struct {
	// Text is the generated content. Empty only when the model omitted it,
	// which produces a warning on the surrounding result.
	Text string `json:"text"`

	// ReadingLevel is the model-assigned difficulty, or ReadingUnknown.
	ReadingLevel ReadingLevel `json:"reading_level"`

	// WordCount is the whitespace-token count of Text. Trusted when the
	// model supplies it, recomputed only on omission.
	WordCount int `json:"word_count"`
}

// CountWords returns the number of whitespace-separated tokens in text. This
// is the deterministic fallback used when the model omits word_count.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// GenerationResult is the unit persisted and displayed for one project.
type GenerationResult struct {
	// ProjectPage maps language code to the detailed project description.
	// Contains every requested language after validation.
	ProjectPage map[Language]TextEntry `json:"project_page"`

	// FacultyTeaser maps language code to the short teaser text, with the
	// same completeness guarantee.
	FacultyTeaser map[Language]TextEntry `json:"faculty_teaser"`

	// UsedKeywords echoes the request's keyword list for traceability.
	UsedKeywords []string `json:"used_keywords"`

	// Warnings lists soft quality issues (model-emitted notes plus length
	// checks). Never causes a failure.
	Warnings []string `json:"warnings,omitempty"`
}

// EvaluationResult records the outcome of comparing one generated text
// against a human-written reference. A nil Score marks a skipped evaluation;
// Reason explains why.
type EvaluationResult struct {
	ProjectID string `json:"project_id"`

	// Metric names the scoring method.
	Metric string `json:"metric"`

	// Score is the rounded cosine similarity, or nil when the
	// evaluation was skipped.
	Score *float64 `json:"score"`

	// Reason explains a skip or records scoring diagnostics.
	Reason string `json:"reason,omitempty"`

	// EmbeddingModel identifies the embedding backend that produced the score.
	EmbeddingModel string `json:"embedding_model,omitempty"`

	// Dimensions is the embedding vector length.
	Dimensions int `json:"dimensions,omitempty"`

	// ReferenceExcerpt holds the first part of the reference text for
	// traceability.
	ReferenceExcerpt string `json:"reference_excerpt,omitempty"`
}

// Skipped reports whether the evaluation produced no score.
func (e *EvaluationResult) Skipped() bool {
	return e.Score == nil
}
