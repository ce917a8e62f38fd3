package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Apply the job's requirement changes to the project files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobPath, _ := cmd.Flags().GetString("job")
			changed, err := c.app.Update(cmd.Context(), jobPath)
			if err != nil {
				return err
			}
			for _, path := range changed {
				cmd.Println(path)
			}
			return nil
		},
	}
	cmd.Flags().StringP("job", "j", "job.yaml", "Path to the update job file")
	return cmd
}
