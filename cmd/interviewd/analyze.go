package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-platform/internal/config"
	"github.com/jonathan/interview-platform/internal/extraction"
	"github.com/jonathan/interview-platform/internal/interview"
	"github.com/jonathan/interview-platform/internal/llm"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume-file>",
	Short: "Extract and analyze a resume file",
	Long:  `Extract text from a resume (.pdf, .docx, .doc) and print the structured candidate profile as JSON.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if !cfg.HasAPIKey() {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	path := args[0]
	ext := strings.ToLower(filepath.Ext(path))
	if !extraction.Supported(ext) {
		return fmt.Errorf("unsupported file extension %q", ext)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open resume: %w", err)
	}
	defer file.Close()

	text, err := extraction.ExtractUpload(file, ext)
	if err != nil {
		return fmt.Errorf("failed to extract resume text: %w", err)
	}

	client, err := llm.NewClient(llm.DefaultOpenAIConfig().WithBaseURL(cfg.BaseURL).WithModel(cfg.Model), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create reasoning client: %w", err)
	}
	defer client.Close()

	analysis, err := interview.NewAnalyzer(client).Analyze(context.Background(), text)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(analysis)
}
