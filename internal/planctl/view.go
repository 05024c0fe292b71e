package planctl

import (
	"fmt"
	"io"

	"github.com/WUZhiyun112/travelplanner/internal/app/controller"
)

// terminalView adapts the controller's presentation surface to a
// terminal. Rendered HTML goes to out; status lines go to status so the
// document output stays pipeable.
type terminalView struct {
	out    io.Writer
	status io.Writer

	planHTML string
}

func newTerminalView(out, status io.Writer) *terminalView {
	return &terminalView{out: out, status: status}
}

func (v *terminalView) SetBusy(a controller.Action, busy bool) {}

func (v *terminalView) ShowPending(a controller.Action) {
	switch a {
	case controller.ActionPlan:
		fmt.Fprintln(v.status, "Generating your plan...")
	case controller.ActionSearch:
		fmt.Fprintln(v.status, "Searching...")
	}
}

func (v *terminalView) ShowPlan(planHTML, referencesHTML string) {
	v.planHTML = planHTML
	fmt.Fprintln(v.out, planHTML)
	if referencesHTML != "" {
		fmt.Fprintln(v.out, referencesHTML)
	}
}

func (v *terminalView) ShowSearch(resultsHTML string) {
	fmt.Fprintln(v.out, resultsHTML)
}

func (v *terminalView) ShowError(a controller.Action, message string) {
	fmt.Fprintln(v.status, "Error:", message)
}

func (v *terminalView) ShowCopied() {
	fmt.Fprintln(v.status, "Plan copied to the clipboard.")
}

func (v *terminalView) ResetCopy() {}

func (v *terminalView) PromptManualCopy(text string) {
	fmt.Fprintln(v.status, "Copying to the clipboard failed; the plan is printed above so you can copy it manually.")
}
