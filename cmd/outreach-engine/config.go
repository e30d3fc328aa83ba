// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/viper"

	"github.com/pdiddy/outreach-engine/internal/completion"
	"github.com/pdiddy/outreach-engine/internal/evaluate"
	"github.com/pdiddy/outreach-engine/internal/generate"
	"github.com/pdiddy/outreach-engine/internal/registry"
	"github.com/pdiddy/outreach-engine/internal/storage"
	"github.com/pdiddy/outreach-engine/pkg/types"
)

// pipelineConfig assembles the component configuration from viper (config
// file and environment) with API keys falling back to .secrets/.
func pipelineConfig() types.PipelineConfig {
	viper.SetDefault("completion.model", "gpt-4o-mini")
	viper.SetDefault("evaluation.model", "text-embedding-3-small")
	viper.SetDefault("evaluation.enabled", true)
	viper.SetDefault("storage.output_dir", "outputs")
	viper.SetDefault("storage.references_dir", "references")
	viper.SetDefault("storage.write_text_files", true)
	viper.SetDefault("registry.registry_dir", "registry")

	return types.PipelineConfig{
		Completion: types.CompletionConfig{
			AIConfig: types.AIConfig{
				Model:          viper.GetString("completion.model"),
				APIKey:         secretDefault("llm-api-key", viper.GetString("completion.api_key")),
				BaseURL:        viper.GetString("completion.base_url"),
				MaxRetries:     viper.GetInt("completion.max_retries"),
				RetryBaseDelay: viper.GetDuration("completion.retry_base_delay"),
			},
			Temperature: viper.GetFloat64("completion.temperature"),
		},
		Evaluation: types.EvaluationConfig{
			AIConfig: types.AIConfig{
				Model:   viper.GetString("evaluation.model"),
				APIKey:  secretDefault("embedding-api-key", viper.GetString("evaluation.api_key")),
				BaseURL: viper.GetString("evaluation.base_url"),
			},
			Enabled: viper.GetBool("evaluation.enabled"),
		},
		Storage: types.StorageConfig{
			OutputDir:      viper.GetString("storage.output_dir"),
			ReferencesDir:  viper.GetString("storage.references_dir"),
			WriteTextFiles: viper.GetBool("storage.write_text_files"),
		},
		Registry: types.RegistryConfig{
			RegistryDir: viper.GetString("registry.registry_dir"),
			MappingFile: viper.GetString("registry.mapping_file"),
			MaxKeywords: viper.GetInt("registry.max_keywords"),
		},
	}
}

// newGenerator wires the pipeline from config. The caller owns closing the
// returned registry store. withRegistry controls whether the registry is
// opened; the direct generation path does not need it.
func newGenerator(cfg types.PipelineConfig, withRegistry bool) (*generate.Generator, *registry.Store, error) {
	var client completion.Client = completion.NewOpenAIClient(cfg.Completion)
	client = completion.WithRetry(client, cfg.Completion.MaxRetries, cfg.Completion.RetryBaseDelay)

	var evaluator *evaluate.Evaluator
	if cfg.Evaluation.Enabled {
		evaluator = evaluate.New(evaluate.NewOpenAIEmbedder(cfg.Evaluation), logger)
	}

	store := storage.NewStore(cfg.Storage)

	var reg *registry.Store
	if withRegistry {
		var err error
		reg, err = registry.Open(cfg.Registry)
		if err != nil {
			return nil, nil, err
		}
	}

	return generate.New(client, evaluator, store, reg, logger), reg, nil
}
