// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads the scoring service configuration from YAML
// with environment overrides, and hot-reloads the reviewer-curated
// keyword and phrase tables without a restart.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/talentforge/TalentForge/services/scoring/consistency"
	"github.com/talentforge/TalentForge/services/scoring/gaming"
)

// ServiceConfig is the full scoring service configuration.
type ServiceConfig struct {
	Service struct {
		Name        string `json:"name"`
		Environment string `json:"environment"`
		ListenAddr  string `json:"listen_addr"`
	} `json:"service"`

	Logging struct {
		Level  string `json:"level"`
		LogDir string `json:"log_dir"`
		JSON   bool   `json:"json"`
	} `json:"logging"`

	Models struct {
		// Primary is the OpenAI model used for scoring samples.
		Primary string `json:"primary"`

		// SecondaryHost and SecondaryModel select the local Ollama
		// model used for cross-validation.
		SecondaryHost  string `json:"secondary_host"`
		SecondaryModel string `json:"secondary_model"`
	} `json:"models"`

	Consistency consistency.Config `json:"consistency"`
	Gaming      gaming.Config      `json:"gaming"`

	Storage struct {
		// CatalogDir holds the template catalog SQLite database.
		CatalogDir string `json:"catalog_dir"`

		// HistoryDir holds the submission history BadgerDB files.
		HistoryDir string `json:"history_dir"`
	} `json:"storage"`

	// KeywordsFile points at the reviewer-curated keyword/phrase YAML
	// watched for hot reload. Empty disables the watcher.
	KeywordsFile string `json:"keywords_file"`
}

// Default returns the built-in configuration.
func Default() ServiceConfig {
	var cfg ServiceConfig
	cfg.Service.Name = "scoringd"
	cfg.Service.Environment = "development"
	cfg.Service.ListenAddr = ":8086"
	cfg.Logging.Level = "info"
	cfg.Models.Primary = "gpt-4o-mini"
	cfg.Models.SecondaryHost = "http://localhost:11434"
	cfg.Models.SecondaryModel = "llama3.1:8b"
	cfg.Consistency = consistency.DefaultConfig()
	cfg.Gaming = gaming.DefaultConfig()
	home, _ := os.UserHomeDir()
	cfg.Storage.CatalogDir = filepath.Join(home, ".talentforge")
	cfg.Storage.HistoryDir = filepath.Join(home, ".talentforge", "history")
	return cfg
}

// Load reads the configuration file and applies environment overrides.
//
// Description:
//
//	Missing files are not an error: the defaults stand and the
//	environment still applies. Environment variables use the
//	SCORING_ prefix with underscores for nesting, e.g.
//	SCORING_SERVICE_LISTEN_ADDR.
//
// Inputs:
//
//	path - Configuration file path; "" checks ./scoring.yaml.
//
// Outputs:
//
//	ServiceConfig - The merged configuration.
//	error - Non-nil on unreadable or malformed files.
func Load(path string) (ServiceConfig, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("scoring")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("scoring")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if (path == "" && errors.As(err, &notFound)) || os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	// Pipeline config structs carry json tags; decode against those so
	// the YAML keys match the wire names everywhere.
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) { dc.TagName = "json" }); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
