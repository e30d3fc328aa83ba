// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package respond parses the completion backend's untrusted JSON output into
// a strictly validated GenerationResult. Structural deviations (missing
// sections, missing languages, unparseable JSON) are terminal failures;
// field-level omissions inside an entry are gap-filled with safe defaults.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/outreach-engine/pkg/types"
)

// Required top-level sections of the backend's JSON response.
const (
	SectionProjectPage   = "project_page"
	SectionFacultyTeaser = "faculty_teaser"
)

// ErrMalformedResponse marks backend output that is not valid JSON.
var ErrMalformedResponse = errors.New("malformed backend response")

// ErrSchemaViolation marks valid JSON missing a required section or a
// required per-language entry.
var ErrSchemaViolation = errors.New("backend response schema violation")

// Recommended length bands, in words, for the soft post-check. Violations
// annotate the result; they never fail the call.
const (
	projectPageMinWords = 400
	projectPageMaxWords = 500
	teaserMinWords      = 50
	teaserMaxWords      = 100
)

// MalformedResponseError carries the offending raw text so a failure is
// diagnosable without re-running the call.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%v: %v", ErrMalformedResponse, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return ErrMalformedResponse
}

// SchemaViolationError names the missing sections and per-section missing
// languages that made the response unusable.
type SchemaViolationError struct {
	// MissingSections lists absent top-level sections, sorted.
	MissingSections []string

	// MissingLanguages maps section name to the requested languages absent
	// from it, in request order.
	MissingLanguages map[string][]types.Language
}

func (e *SchemaViolationError) Error() string {
	var parts []string
	if len(e.MissingSections) > 0 {
		parts = append(parts, fmt.Sprintf("missing sections: %s", strings.Join(e.MissingSections, ", ")))
	}
	sections := make([]string, 0, len(e.MissingLanguages))
	for section := range e.MissingLanguages {
		sections = append(sections, section)
	}
	sort.Strings(sections)
	for _, section := range sections {
		langs := make([]string, 0, len(e.MissingLanguages[section]))
		for _, l := range e.MissingLanguages[section] {
			langs = append(langs, string(l))
		}
		parts = append(parts, fmt.Sprintf("section %s missing languages: %s", section, strings.Join(langs, ", ")))
	}
	return fmt.Sprintf("%v: %s", ErrSchemaViolation, strings.Join(parts, "; "))
}

func (e *SchemaViolationError) Unwrap() error {
	return ErrSchemaViolation
}

// rawEntry mirrors one per-language entry of the backend payload. Pointer
// fields distinguish an omitted field from a zero value.
type rawEntry struct {
	Text         *string `json:"text"`
	ReadingLevel *string `json:"reading_level"`
	WordCount    *int    `json:"word_count"`
}

// rawResponse mirrors the backend's top-level payload.
type rawResponse struct {
	ProjectPage   map[string]rawEntry `json:"project_page"`
	FacultyTeaser map[string]rawEntry `json:"faculty_teaser"`
	UsedKeywords  []string            `json:"used_keywords"`
	Warnings      []string            `json:"warnings"`
}

// ValidateAndNormalize parses raw as JSON, enforces the section and language
// completeness invariants for the request's languages, gap-fills per-entry
// defaults, and assembles the final result. used_keywords is echoed from the
// request, not taken from the model. Model-emitted warnings are carried
// forward, followed by soft length-band annotations.
func ValidateAndNormalize(raw string, req types.GenerationRequest) (*types.GenerationResult, error) {
	var parsed rawResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}

	violation := &SchemaViolationError{MissingLanguages: map[string][]types.Language{}}
	if parsed.ProjectPage == nil {
		violation.MissingSections = append(violation.MissingSections, SectionProjectPage)
	}
	if parsed.FacultyTeaser == nil {
		violation.MissingSections = append(violation.MissingSections, SectionFacultyTeaser)
	}
	if len(violation.MissingSections) > 0 {
		return nil, violation
	}

	for _, lang := range req.Languages {
		if _, ok := parsed.ProjectPage[string(lang)]; !ok {
			violation.MissingLanguages[SectionProjectPage] = append(violation.MissingLanguages[SectionProjectPage], lang)
		}
		if _, ok := parsed.FacultyTeaser[string(lang)]; !ok {
			violation.MissingLanguages[SectionFacultyTeaser] = append(violation.MissingLanguages[SectionFacultyTeaser], lang)
		}
	}
	if len(violation.MissingLanguages) > 0 {
		return nil, violation
	}

	result := &types.GenerationResult{
		ProjectPage:   make(map[types.Language]types.TextEntry, len(parsed.ProjectPage)),
		FacultyTeaser: make(map[types.Language]types.TextEntry, len(parsed.FacultyTeaser)),
		UsedKeywords:  req.Keywords,
		Warnings:      parsed.Warnings,
	}

	// Extra languages from the backend are tolerated and carried through.
	for lang, entry := range parsed.ProjectPage {
		normalized, warnings := NormalizeEntry(entry.Text, entry.ReadingLevel, entry.WordCount, SectionProjectPage, lang)
		result.ProjectPage[types.Language(lang)] = normalized
		result.Warnings = append(result.Warnings, warnings...)
	}
	for lang, entry := range parsed.FacultyTeaser {
		normalized, warnings := NormalizeEntry(entry.Text, entry.ReadingLevel, entry.WordCount, SectionFacultyTeaser, lang)
		result.FacultyTeaser[types.Language(lang)] = normalized
		result.Warnings = append(result.Warnings, warnings...)
	}

	result.Warnings = append(result.Warnings, lengthWarnings(result, req)...)
	return result, nil
}

// NormalizeEntry fills gaps in one per-language entry: absent text becomes
// the empty string, an absent or out-of-enum reading level becomes the
// unknown sentinel, and an absent word count is recomputed from the text.
// A supplied word count is trusted as-is. Normalization never fails; soft
// issues are reported as warnings.
func NormalizeEntry(text, readingLevel *string, wordCount *int, section, lang string) (types.TextEntry, []string) {
	var entry types.TextEntry
	var warnings []string

	if text != nil {
		entry.Text = *text
	} else {
		warnings = append(warnings, fmt.Sprintf("%s[%s]: model omitted text", section, lang))
	}

	switch {
	case readingLevel == nil:
		entry.ReadingLevel = types.ReadingUnknown
	case types.ValidReadingLevel(*readingLevel):
		entry.ReadingLevel = types.ReadingLevel(*readingLevel)
	default:
		entry.ReadingLevel = types.ReadingUnknown
		warnings = append(warnings, fmt.Sprintf("%s[%s]: unrecognized reading level %q", section, lang, *readingLevel))
	}

	if wordCount != nil {
		entry.WordCount = *wordCount
	} else {
		entry.WordCount = types.CountWords(entry.Text)
	}

	return entry, warnings
}

// lengthWarnings reports requested-language entries whose word counts fall
// outside the recommended bands.
func lengthWarnings(result *types.GenerationResult, req types.GenerationRequest) []string {
	var warnings []string
	for _, lang := range req.Languages {
		if entry, ok := result.ProjectPage[lang]; ok {
			if entry.WordCount < projectPageMinWords || entry.WordCount > projectPageMaxWords {
				warnings = append(warnings, fmt.Sprintf("%s[%s]: word count %d outside recommended %d-%d",
					SectionProjectPage, lang, entry.WordCount, projectPageMinWords, projectPageMaxWords))
			}
		}
		if entry, ok := result.FacultyTeaser[lang]; ok {
			if entry.WordCount < teaserMinWords || entry.WordCount > teaserMaxWords {
				warnings = append(warnings, fmt.Sprintf("%s[%s]: word count %d outside recommended %d-%d",
					SectionFacultyTeaser, lang, entry.WordCount, teaserMinWords, teaserMaxWords))
			}
		}
	}
	return warnings
}
