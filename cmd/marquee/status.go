package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Server status and cache statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		status, err := NewClient(serverURL).Status()
		if err != nil {
			return fmt.Errorf("status check failed: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), status)
		}
		printStatus(cmd.OutOrStdout(), serverURL, status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func printStatus(w io.Writer, server string, s *StatusResponse) {
	fmt.Fprintf(w, "marquee v%s | Server: %s | Status: %s\n\n", s.Version, server, s.Status)

	fmt.Fprintln(w, "Caches")
	for _, c := range s.Caches {
		capacity := "unbounded"
		if c.Capacity > 0 {
			capacity = fmt.Sprintf("%d", c.Capacity)
		}
		ttl := time.Duration(c.TTLSeconds * float64(time.Second))
		fmt.Fprintf(w, "  %-9s %5d / %-9s  ttl %s\n", c.Resource+":", c.Entries, capacity, ttl)
	}
}
