package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kalpyotish/kalp-admin/internal/ui"
	"github.com/kalpyotish/kalp-admin/internal/workflow"
)

// StatsCmd returns the `kalp-admin stats` command. It prints the same
// counters as the dashboard; one failed count does not hide the others.
func StatsCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print platform totals",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			if _, ok := env.Session.Current(); !ok {
				return errNotLoggedIn
			}
			slots := workflow.FetchCounts(ui.DashboardQueries(env.Client)...)

			tw := tabwriter.NewWriter(c.OutOrStdout(), 0, 0, 2, ' ', 0)
			failed := 0
			for _, s := range slots {
				if s.Phase == workflow.SlotFailed {
					failed++
					env.logger().Warn("count failed", "key", s.Key, "error", s.Err)
					fmt.Fprintf(tw, "%s\t%s (%v)\n", s.Label, s.Display(), s.Err)
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\n", s.Label, s.Display())
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if len(slots) > 0 && failed == len(slots) {
				return fmt.Errorf("stats unavailable: %w", slots[0].Err)
			}
			return nil
		},
	}
}
