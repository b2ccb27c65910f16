// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/talentforge/TalentForge/services/scoring/catalog"
	"github.com/talentforge/TalentForge/services/scoring/config"
	"github.com/talentforge/TalentForge/services/scoring/gaming"
)

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "integrity",
		Short:        "Offline tools for the scoring-integrity pipeline.",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to scoring.yaml (optional).")

	rootCmd.AddCommand(newScanCmd(&configPath))
	rootCmd.AddCommand(newTemplatesCmd(&configPath))
	return rootCmd
}

func newScanCmd(configPath *string) *cobra.Command {
	var (
		file      string
		gameID    string
		primary   []string
		secondary []string
		refFile   string
	)

	cmd := &cobra.Command{
		Use:   "scan [text]",
		Short: "Run the gaming detectors over one submission and print the verdict as JSON.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			text := ""
			switch {
			case len(args) == 1:
				text = args[0]
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read submission file: %w", err)
				}
				text = string(data)
			default:
				return fmt.Errorf("provide the submission text as an argument or via --file")
			}

			reference := ""
			if refFile != "" {
				data, err := os.ReadFile(refFile)
				if err != nil {
					return fmt.Errorf("read reference file: %w", err)
				}
				reference = string(data)
			}

			var templates gaming.TemplateSource
			store, err := catalog.New(catalog.Config{DataDir: cfg.Storage.CatalogDir, BusyTimeout: 5 * time.Second})
			if err == nil {
				defer store.Close()
				templates = catalog.NewTemplateSource(store)
			}

			scanner := gaming.NewScanner(cfg.Gaming, templates, nil, nil)
			result, err := scanner.DetectGaming(cmd.Context(), text, gaming.DetectionContext{
				GameID: gameID,
				Keywords: &gaming.KeywordSet{
					Primary:   primary,
					Secondary: secondary,
				},
				ReferenceSolution: reference,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Read the submission text from a file.")
	cmd.Flags().StringVar(&gameID, "game", "", "Game ID for template catalog lookups.")
	cmd.Flags().StringSliceVar(&primary, "primary", nil, "Primary rubric keywords.")
	cmd.Flags().StringSliceVar(&secondary, "secondary", nil, "Secondary rubric keywords.")
	cmd.Flags().StringVar(&refFile, "reference", "", "Read the reference solution from a file.")
	return cmd
}

func newTemplatesCmd(configPath *string) *cobra.Command {
	templatesCmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage the known answer template catalog.",
	}

	openStore := func() (*catalog.Store, error) {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}
		return catalog.New(catalog.Config{DataDir: cfg.Storage.CatalogDir, BusyTimeout: 5 * time.Second})
	}

	var (
		gameID    string
		tmplType  string
		threshold float64
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List active templates for a game.",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			templates, err := store.ListActiveTemplates(cmd.Context(), gameID)
			if err != nil {
				return err
			}
			return printJSON(cmd, templates)
		},
	}
	listCmd.Flags().StringVar(&gameID, "game", "", "Game ID; global templates are always included.")

	addCmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Register a new template.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(args[0]) == "" {
				return fmt.Errorf("template text must not be empty")
			}
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := store.AddTemplate(cmd.Context(), catalog.Template{
				GameID:       gameID,
				Type:         tmplType,
				Text:         args[0],
				MinThreshold: threshold,
			})
			if err != nil {
				return err
			}
			cmd.Printf("template %d registered\n", id)
			return nil
		},
	}
	addCmd.Flags().StringVar(&gameID, "game", "", "Game ID; empty registers a global template.")
	addCmd.Flags().StringVar(&tmplType, "type", "generic", "Template type label.")
	addCmd.Flags().Float64Var(&threshold, "threshold", 0, "Per-template similarity threshold; 0 uses the default.")

	retireCmd := &cobra.Command{
		Use:   "retire [id]",
		Short: "Deactivate a template.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id int64
			if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
				return fmt.Errorf("invalid template id %q", args[0])
			}
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeactivateTemplate(cmd.Context(), id); err != nil {
				return err
			}
			cmd.Printf("template %d retired\n", id)
			return nil
		},
	}

	templatesCmd.AddCommand(listCmd)
	templatesCmd.AddCommand(addCmd)
	templatesCmd.AddCommand(retireCmd)
	return templatesCmd
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}
