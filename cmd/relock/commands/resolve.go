package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Ask the solver which version a candidate requirement settles on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobPath, _ := cmd.Flags().GetString("job")
			candidate, _ := cmd.Flags().GetString("candidate")
			version, err := c.app.Resolve(cmd.Context(), jobPath, candidate)
			if err != nil {
				return err
			}
			if version == "" {
				cmd.Println("dependency no longer present in resolution")
				return nil
			}
			cmd.Println(version)
			return nil
		},
	}
	cmd.Flags().StringP("job", "j", "job.yaml", "Path to the update job file")
	cmd.Flags().StringP("candidate", "c", "", "Candidate requirement expression; empty probes the latest resolvable version")
	return cmd
}
