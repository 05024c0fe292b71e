package planctl

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/WUZhiyun112/travelplanner/internal/app/client"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently generated plans",
	Long: `List the plans the server has stored. Servers running without a
history database return an empty list.`,
	RunE: runRecent,
}

func init() {
	rootCmd.AddCommand(recentCmd)
}

func runRecent(cmd *cobra.Command, args []string) error {
	log := cliLogger()
	defer log.Sync()

	timeout := requestTimeout()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	api := client.New(viper.GetString("server"), log)
	plans, err := api.RecentPlans(ctx)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return err
	}

	if len(plans) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No stored plans.")
		return nil
	}
	for _, p := range plans {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s, %s days  (%s)\n",
			p.CreatedAt.Format("2006-01-02 15:04"), p.Destination, p.Days, p.ID)
	}
	return nil
}
