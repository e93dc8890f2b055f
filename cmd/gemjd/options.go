package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kshitij-139/GEM-JD/internal/model"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List accepted functions, experience bands and languages",
	Long:  "Prints the values accepted by the form, the API and `gemjd generate`.",
	Run:   runOptions,
}

func init() {
	rootCmd.AddCommand(optionsCmd)
}

func runOptions(cmd *cobra.Command, args []string) {
	printTable("Function", model.Functions)
	printTable("Experience", model.ExperienceBands)
	printTable("Language", model.Languages)

	steps := make([]string, 0, len(model.TemperatureSteps()))
	for _, t := range model.TemperatureSteps() {
		steps = append(steps, fmt.Sprintf("%.1f", t))
	}
	fmt.Printf("Creativity: %s (default %.1f)\n", strings.Join(steps, " "), model.DefaultTemperature)
}

func printTable[T ~string](header string, values []T) {
	fmt.Printf("%-4s %s\n", "#", header)
	fmt.Println(strings.Repeat("─", 47))
	for i, v := range values {
		fmt.Printf("%-4d %s\n", i+1, v)
	}
	fmt.Printf("\nTotal: %d\n\n", len(values))
}
