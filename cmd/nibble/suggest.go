package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abelbrown/nibble/internal/config"
	"github.com/abelbrown/nibble/internal/suggest"
)

// requestTimeout bounds one-shot CLI calls. The picker has no such limit;
// it relies on staleness instead.
const requestTimeout = 30 * time.Second

func suggestCmd(cfg *config.Config) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "suggest <text...>",
		Short: "Print suggestions for text and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return fmt.Errorf("nothing to suggest for")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()
			ctx = suggest.WithRequestID(ctx, uuid.NewString()[:8])

			suggestions, err := suggest.New(cfg.APIURL).Suggest(ctx, text)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"suggestions": suggestions})
			}
			if len(suggestions) == 0 {
				fmt.Fprintln(os.Stderr, "no suggestions")
				return nil
			}
			for _, s := range suggestions {
				fmt.Println(s)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the response as JSON")
	return cmd
}
