package planctl

import (
	"github.com/spf13/cobra"

	"github.com/WUZhiyun112/travelplanner/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the planner server",
	Long: `Run the API server in the foreground. Configuration comes from the
environment; DEEPSEEK_API_KEY is required, GOOGLE_API_KEY and
GOOGLE_SEARCH_ENGINE_ID enable live web search, POSTGRES_PASSWORD
enables plan history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
