package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kshitij-139/GEM-JD/internal/generator"
	"github.com/kshitij-139/GEM-JD/internal/model"
	"github.com/kshitij-139/GEM-JD/internal/session"
)

var genFlags struct {
	title       string
	function    string
	experience  string
	skills      string
	language    string
	temperature float64
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one job description and FAQ list, print them, exit",
	Long:  "One-shot generation from flags. Run `gemjd options` for the accepted function, experience and language values.",
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&genFlags.title, "title", "t", "", "job title (required)")
	f.StringVarP(&genFlags.function, "function", "f", "", "business function (required)")
	f.StringVarP(&genFlags.experience, "experience", "e", "", "experience band (required)")
	f.StringVarP(&genFlags.skills, "skills", "s", "", "key skills, comma separated")
	f.StringVarP(&genFlags.language, "language", "l", string(model.BaseLanguage), "output language for the job description")
	f.Float64Var(&genFlags.temperature, "temperature", model.DefaultTemperature, "creativity between 0.0 and 1.0 (default: generation.default_temperature)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, _, closeHistory, err := setupService(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("set up generator: %w", err)
	}
	defer closeHistory()

	temperature := cfg.Generation.DefaultTemperature
	if cmd.Flags().Changed("temperature") {
		temperature = genFlags.temperature
	}
	req := model.JobRequest{
		Title:       strings.TrimSpace(genFlags.title),
		Function:    model.Function(genFlags.function),
		Experience:  model.ExperienceBand(genFlags.experience),
		Skills:      strings.TrimSpace(genFlags.skills),
		Language:    model.Language(genFlags.language),
		Temperature: temperature,
	}

	sess := session.New()
	res := svc.Generate(ctx, sess, req)
	if res.Validation != nil {
		return res.Validation
	}

	v := generator.Snapshot(sess, req)
	printPanel(v.JD)
	if res.JDErr == nil {
		printPanel(v.FAQ)
	}
	if res.JDErr != nil || res.FAQErr != nil {
		return errors.New("generation failed")
	}
	return nil
}

func printPanel(p generator.Panel) {
	if p.Error != "" {
		fmt.Fprintf(os.Stderr, "%s: %s\n", p.Title, p.Error)
		return
	}
	fmt.Printf("\n%s (%s)\n", p.Title, p.Meta)
	fmt.Println(strings.Repeat("─", 60))
	fmt.Println(p.Text)
}
