package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abelbrown/nibble/internal/logging"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "nibbled",
		Short:   "Dish suggestion service",
		Version: logging.Version,
		Long: `nibbled answers POST /suggest with dish suggestions for partial input.

Environment variables (a .env file in the working directory is read first):
  PORT                          listen port (default: 3000)
  AZURE_OPENAI_ENDPOINT         Azure OpenAI resource URL
  AZURE_OPENAI_API_KEY          Azure OpenAI key
  AZURE_OPENAI_DEPLOYMENT_NAME  deployment to call (default: gpt-4.1-nano)
  AZURE_OPENAI_API_VERSION      API version (default: 2025-01-01-preview)
  OPENAI_API_KEY                used when Azure is not configured
  OPENAI_MODEL                  model for OPENAI_API_KEY (default: gpt-4.1-nano)
  LLM_RATE_PER_MINUTE           upstream completions per minute, 0 = unlimited
  SENTRY_DSN                    report errors and traces to Sentry
  ENVIRONMENT                   development logs as text, anything else as JSON

Without model credentials nibbled answers from a built-in dish catalog.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(testAICmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
