package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func testAICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test-ai",
		Short: "Send one probe completion to the active provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, mgr, cleanup, err := setup()
			if err != nil {
				return err
			}
			defer cleanup()

			p := mgr.Active()
			if p == nil {
				return fmt.Errorf("no provider available")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			start := time.Now()
			out, err := p.Probe(ctx)
			if err != nil {
				return fmt.Errorf("%s (%s): %w", p.Name(), p.Model(), err)
			}
			fmt.Printf("SUCCESS  %s (%s) in %s\n", p.Name(), p.Model(), time.Since(start).Round(time.Millisecond))
			fmt.Println(out)
			return nil
		},
	}
}
