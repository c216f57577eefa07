package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CampusPulse/Compass/internal/config"
	"github.com/CampusPulse/Compass/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score <profile.json>",
	Short: "Evaluate one student profile without starting the server",
	Long:  "Reads a JSON file holding a metrics map ({\"attendance_pct\": 95, ...}), runs the scoring pipeline once, and prints the result.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScore(cmd, args[0])
	},
}

func runScore(cmd *cobra.Command, path string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	engine, err := engineFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("build scoring engine: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}
	var input scoring.MetricInput
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("parse profile: %w", err)
	}

	result, err := engine.Evaluate(input)
	if err != nil {
		return err
	}

	out := struct {
		Result     *scoring.PredictionResult `json:"result"`
		Advisories []scoring.Advisory        `json:"advisories,omitempty"`
	}{Result: result, Advisories: scoring.CheckAdvisories(input)}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
