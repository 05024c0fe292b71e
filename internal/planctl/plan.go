package planctl

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/WUZhiyun112/travelplanner/internal/app/client"
	"github.com/WUZhiyun112/travelplanner/internal/app/controller"
	"github.com/WUZhiyun112/travelplanner/internal/app/models"
	"github.com/WUZhiyun112/travelplanner/pkg/clipboard"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Request a travel itinerary",
	Long: `Request a day-by-day itinerary from the server and print it as
rendered HTML. The days and destination are required; budget and
preferences are passed through as free text.`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().String("days", "", "trip length in days (required)")
	planCmd.Flags().String("destination", "", "destination city or region (required)")
	planCmd.Flags().String("budget", "", "budget, free text")
	planCmd.Flags().String("preferences", "", "interests and preferences, free text")
	planCmd.Flags().Bool("copy", false, "copy the rendered plan to the clipboard via OSC 52")
	_ = planCmd.MarkFlagRequired("days")
	_ = planCmd.MarkFlagRequired("destination")
}

func runPlan(cmd *cobra.Command, args []string) error {
	days, _ := cmd.Flags().GetString("days")
	destination, _ := cmd.Flags().GetString("destination")
	budget, _ := cmd.Flags().GetString("budget")
	preferences, _ := cmd.Flags().GetString("preferences")
	copyPlan, _ := cmd.Flags().GetBool("copy")

	log := cliLogger()
	defer log.Sync()

	api := client.New(viper.GetString("server"), log)
	view := newTerminalView(cmd.OutOrStdout(), os.Stderr)
	ctl := controller.New(api, view, clipboard.NewOSC52Writer(), controller.Config{
		PlanTimeout: requestTimeout(),
	}, log)

	ctl.SubmitItinerary(cmd.Context(), models.ItineraryRequest{
		Days:        models.FlexString(days),
		Destination: destination,
		Budget:      budget,
		Preferences: preferences,
	})
	if ctl.State(controller.ActionPlan) != controller.StateSuccess {
		return errors.New("plan request failed")
	}

	if copyPlan {
		ctl.CopyPlan(view.planHTML)
	}
	return nil
}
