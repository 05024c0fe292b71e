package planctl

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/WUZhiyun112/travelplanner/internal/app/client"
	"github.com/WUZhiyun112/travelplanner/internal/app/controller"
	"github.com/WUZhiyun112/travelplanner/pkg/clipboard"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Run a destination search",
	Long: `Search the web for a destination through the server and print the
results as rendered HTML. When the server has no search provider
configured it falls back to a single link-only result.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	log := cliLogger()
	defer log.Sync()

	api := client.New(viper.GetString("server"), log)
	view := newTerminalView(cmd.OutOrStdout(), os.Stderr)
	ctl := controller.New(api, view, clipboard.NewOSC52Writer(), controller.Config{
		SearchTimeout: requestTimeout(),
	}, log)

	ctl.Search(cmd.Context(), strings.Join(args, " "))
	if ctl.State(controller.ActionSearch) != controller.StateSuccess {
		return errors.New("search request failed")
	}
	return nil
}
