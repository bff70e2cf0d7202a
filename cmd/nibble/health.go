package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abelbrown/nibble/internal/config"
	"github.com/abelbrown/nibble/internal/suggest"
)

func healthCmd(cfg *config.Config) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the suggestion service is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			client := suggest.New(cfg.APIURL)
			h, err := client.Health(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", client.BaseURL(), err)
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(h)
			}
			fmt.Printf("%s  %s\n", h.Status, h.Message)
			fmt.Printf("  url:      %s\n", client.BaseURL())
			fmt.Printf("  provider: %s\n", h.AIProvider)
			if h.Model != "" {
				fmt.Printf("  model:    %s\n", h.Model)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the response as JSON")
	return cmd
}
