package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"insight/internal/agent"
	"insight/internal/usecase"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask an audience question",
	Long: `Ask a question about a product audience. The question is routed to the
matching analysis template, grounded in retrieved reviews, and enhanced with
recommendations.

Examples:
  insight ask "what are the demographics of mechanical keyboard buyers?"
  insight ask --json "how satisfied are robot vacuum owners?"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output as JSON")
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	model, err := newLLM()
	if err != nil {
		return err
	}

	registry := agent.NewRegistry(model)
	recommender := agent.NewRecommender(model, logger)
	askUC := usecase.NewAskUseCase(model, registry, recommender, a.gatherer, logger)

	result, err := askUC.Ask(args[0])
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		output, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if result.Status != "ok" {
		fmt.Println(result.Message)
		return nil
	}

	fmt.Printf("Analysis (%s) for %q:\n\n", result.Analysis.Kind, result.Analysis.Audience)
	fmt.Println(result.Analysis.Output)
	if result.Analysis.Recommendations != "" {
		fmt.Println()
		fmt.Println("Recommendations:")
		fmt.Println(result.Analysis.Recommendations)
	}

	return nil
}
