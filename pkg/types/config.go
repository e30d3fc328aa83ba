package types

import "time"

// AIConfig holds shared settings for components that call an external AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the API endpoint for OpenAI-compatible backends.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// RetryBaseDelay is the base duration for exponential backoff (default 2s).
	RetryBaseDelay time.Duration `json:"retry_base_delay" yaml:"retry_base_delay"`
}

// CompletionConfig holds settings for the text-completion backend.
type CompletionConfig struct {
	AIConfig `yaml:",inline"`

	// Temperature is the sampling temperature for generation (default 0.4).
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// EvaluationConfig holds settings for the similarity evaluator.
type EvaluationConfig struct {
	AIConfig `yaml:",inline"`

	// Enabled controls whether generated texts are scored against references.
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// StorageConfig holds settings for the persistence layer.
type StorageConfig struct {
	// OutputDir is the base directory for generated outputs; each project
	// gets a subdirectory keyed by project_id.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// ReferencesDir holds per-project reference text files (<project_id>.txt).
	ReferencesDir string `json:"references_dir" yaml:"references_dir"`

	// WriteTextFiles controls whether flat per-language .txt files are
	// written alongside output.json for direct download.
	WriteTextFiles bool `json:"write_text_files" yaml:"write_text_files"`
}

// RegistryConfig holds settings for the project registry.
type RegistryConfig struct {
	// RegistryDir is the directory for the registry database.
	RegistryDir string `json:"registry_dir" yaml:"registry_dir"`

	// MappingFile is an optional YAML file mapping source table columns to
	// registry fields. When empty, the built-in defaults apply.
	MappingFile string `json:"mapping_file,omitempty" yaml:"mapping_file,omitempty"`

	// MaxKeywords caps the number of keywords derived per project (default 12).
	MaxKeywords int `json:"max_keywords" yaml:"max_keywords"`
}

// PipelineConfig groups all component configurations.
type PipelineConfig struct {
	Completion CompletionConfig `json:"completion" yaml:"completion"`
	Evaluation EvaluationConfig `json:"evaluation" yaml:"evaluation"`
	Storage    StorageConfig    `json:"storage" yaml:"storage"`
	Registry   RegistryConfig   `json:"registry" yaml:"registry"`
}
