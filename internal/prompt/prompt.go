// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt renders the structured instruction sent to the completion
// backend. The prompt is a pure function of the request: same metadata in,
// same bytes out.
package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/outreach-engine/pkg/types"
)

// ErrInvalidRequest marks a request the template cannot render a meaningful
// instruction for. Checked before anything touches the network.
var ErrInvalidRequest = errors.New("invalid generation request")

// noKeywords is the sentinel rendered when a request carries no keywords.
const noKeywords = "None provided"

// generationTmpl instructs the model to produce public-facing project texts
// from high-level metadata only, in every requested language, as strict JSON.
// The section headers, length bands, and no-new-facts constraint bound what
// the model may produce; the output-format block is the literal shape the
// response validator expects.
var generationTmpl = template.Must(template.New("generation").Parse(`You are a science communication expert at a university.

Your task is to generate public-facing descriptions of a research project using ONLY the high-level metadata provided below.

PROJECT METADATA

Project description:
{{.Description}}

Keywords and contextual signals:
{{.Keywords}}

IMPORTANT CONSTRAINTS:
- Use only the metadata above. Do NOT introduce facts, results, methods, or claims that are not present in it.
- Keep all descriptions high-level and generic where necessary.
- Integrate the provided keywords into the texts where they fit naturally.

TASK

Generate TWO texts:

1. Project Page Description
   - Length: 400-500 words
   - Structure with exactly these section headers, in this order:
     - English: Motivation, Research Goals, Societal Relevance, Expected Impact, Cooperation and Funding
     - German: Motivation, Forschungsziele, Gesellschaftliche Relevanz, Erwartete Wirkung, Kooperation und Finanzierung

2. Faculty Teaser
   - Length: 50-100 words
   - Concise, accessible summary

TARGET AUDIENCE

{{.Audiences}}

LANGUAGES

Generate output in the following languages:
{{.Languages}}

READING LEVEL

For EACH generated text, choose an appropriate reading level based on audience and content complexity. Allowed values: beginner, intermediate, advanced.

STYLE GUIDELINES

- Popular science tone
- Clear explanations
- No proposal language
- No internal references
- No unverifiable claims
- Neutral, informative style

OUTPUT FORMAT (STRICT JSON)

{
  "project_page": {
    "<language_code>": {
      "text": "...",
      "reading_level": "...",
      "word_count": 0
    }
  },
  "faculty_teaser": {
    "<language_code>": {
      "text": "...",
      "reading_level": "...",
      "word_count": 0
    }
  },
  "used_keywords": ["..."],
  "warnings": ["..."]
}

Replace <language_code> with each requested language (e.g. "de", "en"). Every requested language must appear as a key in both "project_page" and "faculty_teaser".

Return ONLY valid JSON.
`))

// templateData carries the pre-rendered field values for generationTmpl.
type templateData struct {
	Description string
	Keywords    string
	Audiences   string
	Languages   string
}

// Build renders the generation prompt for a request. It rejects requests
// without a project ID, target audience, or languages, since the template
// cannot express a meaningful task for them.
func Build(req types.GenerationRequest) (string, error) {
	if err := validate(req); err != nil {
		return "", err
	}

	audiences := make([]string, 0, len(req.TargetAudience))
	for _, a := range req.TargetAudience {
		audiences = append(audiences, string(a))
	}
	languages := make([]string, 0, len(req.Languages))
	for _, l := range req.Languages {
		languages = append(languages, string(l))
	}

	keywords := noKeywords
	if len(req.Keywords) > 0 {
		keywords = strings.Join(req.Keywords, ", ")
	}

	description := strings.TrimSpace(req.ProjectDescription)
	if description == "" {
		description = "(no description provided)"
	}

	var buf bytes.Buffer
	err := generationTmpl.Execute(&buf, templateData{
		Description: description,
		Keywords:    keywords,
		Audiences:   strings.Join(audiences, ", "),
		Languages:   strings.Join(languages, ", "),
	})
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return buf.String(), nil
}

// validate checks the structural preconditions the template depends on.
func validate(req types.GenerationRequest) error {
	if strings.TrimSpace(req.ProjectID) == "" {
		return fmt.Errorf("%w: empty project_id", ErrInvalidRequest)
	}
	if len(req.Languages) == 0 {
		return fmt.Errorf("%w: no target languages", ErrInvalidRequest)
	}
	if len(req.TargetAudience) == 0 {
		return fmt.Errorf("%w: no target audience", ErrInvalidRequest)
	}
	return nil
}
