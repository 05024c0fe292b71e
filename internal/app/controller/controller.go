// Package controller drives the submit-and-render lifecycle for plan
// generation and search. It owns the per-action state machine
// (Idle -> Pending -> Success|Error -> Idle), the request deadlines and
// the discard of late responses; presentation goes through an injected
// View so the controller is testable without any real UI.
package controller

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/WUZhiyun112/travelplanner/internal/app/client"
	"github.com/WUZhiyun112/travelplanner/internal/app/models"
	"github.com/WUZhiyun112/travelplanner/internal/app/render"
	"github.com/WUZhiyun112/travelplanner/pkg/clipboard"
)

// Action identifies one of the two independent request lifecycles. Each
// action has its own state, trigger and deadline; neither blocks the
// other.
type Action string

const (
	ActionPlan   Action = "plan"
	ActionSearch Action = "search"
)

// State is the lifecycle state of a single action.
type State int

const (
	StateIdle State = iota
	StatePending
	StateSuccess
	StateError
)

// User-facing messages. Internals such as detail fields or raw errors are
// logged, never shown.
const (
	msgEmptyQuery    = "Please enter a search term first."
	msgTimeout       = "The request timed out. Please try again in a moment."
	msgManualCopy    = "Copying to the clipboard failed; please select the plan text and copy it manually."
	msgNetworkFailed = "Could not reach the server. Please check your connection and try again."
)

// copyRevertDelay is how long the copy control shows its confirmation
// before reverting.
const copyRevertDelay = 2 * time.Second

// API is the slice of the server client the controller needs.
type API interface {
	GeneratePlan(ctx context.Context, req models.ItineraryRequest) (*models.ItineraryResponse, error)
	Search(ctx context.Context, query string) (*models.SearchResponse, error)
}

// View is the presentation surface the controller drives. SetBusy pairs
// are guaranteed: every started action releases its trigger on every exit
// path, including panics.
type View interface {
	SetBusy(a Action, busy bool)
	ShowPending(a Action)
	ShowPlan(planHTML, referencesHTML string)
	ShowSearch(resultsHTML string)
	ShowError(a Action, message string)
	ShowCopied()
	ResetCopy()
	PromptManualCopy(text string)
}

// Controller coordinates one in-flight request per action.
type Controller struct {
	api  API
	view View
	clip clipboard.Writer
	log  *zap.Logger

	planTimeout   time.Duration
	searchTimeout time.Duration

	// after schedules the copy-label revert; swapped out in tests.
	after func(d time.Duration, f func()) *time.Timer

	mu    sync.Mutex
	state map[Action]State
	gen   map[Action]uint64
}

// Config carries the controller's tunables. PlanTimeout depends on the
// backend's latency profile: 60s is enough for plain generation, while
// deployments that run a web search before responding need up to 120s.
type Config struct {
	PlanTimeout   time.Duration
	SearchTimeout time.Duration
}

// New builds a controller. A nil logger disables debug logging, which is
// the plain (non-debug) variant.
func New(api API, view View, clip clipboard.Writer, cfg Config, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.PlanTimeout <= 0 {
		cfg.PlanTimeout = 60 * time.Second
	}
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = cfg.PlanTimeout
	}
	return &Controller{
		api:           api,
		view:          view,
		clip:          clip,
		log:           log,
		planTimeout:   cfg.PlanTimeout,
		searchTimeout: cfg.SearchTimeout,
		after:         time.AfterFunc,
		state:         map[Action]State{ActionPlan: StateIdle, ActionSearch: StateIdle},
		gen:           map[Action]uint64{},
	}
}

// State reports the current lifecycle state of an action.
func (c *Controller) State(a Action) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state[a]
}

// SubmitItinerary sends the form fields exactly as given and renders the
// returned plan. A second call while a submission is pending is a no-op;
// the search action stays independently usable throughout.
func (c *Controller) SubmitItinerary(ctx context.Context, req models.ItineraryRequest) {
	gen, ok := c.begin(ActionPlan)
	if !ok {
		c.log.Debug("Submission ignored, plan request already pending")
		return
	}
	defer c.finish(ActionPlan, gen)

	cctx, cancel := context.WithTimeout(ctx, c.planTimeout)
	defer cancel()

	resp, err := c.api.GeneratePlan(cctx, req)

	// The deadline check comes before the success branch: a response that
	// slips in while the deadline is firing is discarded, never rendered.
	if cctx.Err() == context.DeadlineExceeded {
		c.log.Warn("Plan request timed out", zap.Duration("timeout", c.planTimeout))
		c.fail(ActionPlan, gen, msgTimeout)
		return
	}
	if err != nil {
		c.fail(ActionPlan, gen, c.userMessage(ActionPlan, err))
		return
	}

	planHTML := render.Markdown(resp.Plan)
	refsHTML := render.References(resp.References)
	c.succeed(ActionPlan, gen, func() {
		c.view.ShowPlan(planHTML, refsHTML)
	})
}

// Search trims the query and refuses to call the network when nothing is
// left; otherwise it mirrors the submission lifecycle, including the
// deadline.
func (c *Controller) Search(ctx context.Context, query string) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		c.mu.Lock()
		if c.state[ActionSearch] == StatePending {
			c.mu.Unlock()
			return
		}
		c.state[ActionSearch] = StateError
		c.mu.Unlock()
		c.view.ShowError(ActionSearch, msgEmptyQuery)
		return
	}

	gen, ok := c.begin(ActionSearch)
	if !ok {
		c.log.Debug("Search ignored, request already pending")
		return
	}
	defer c.finish(ActionSearch, gen)

	cctx, cancel := context.WithTimeout(ctx, c.searchTimeout)
	defer cancel()

	resp, err := c.api.Search(cctx, trimmed)

	if cctx.Err() == context.DeadlineExceeded {
		c.log.Warn("Search request timed out", zap.Duration("timeout", c.searchTimeout))
		c.fail(ActionSearch, gen, msgTimeout)
		return
	}
	if err != nil {
		c.fail(ActionSearch, gen, c.userMessage(ActionSearch, err))
		return
	}

	resultsHTML := render.SearchResults(resp.Results, resp.UsingAPI)
	c.succeed(ActionSearch, gen, func() {
		c.view.ShowSearch(resultsHTML)
	})
}

// CopyPlan writes the plan text to the clipboard. On success the copy
// control shows a confirmation and reverts after a fixed window; on
// failure the user gets a manual-copy prompt.
func (c *Controller) CopyPlan(text string) {
	if err := c.clip.WriteText(text); err != nil {
		c.log.Warn("Clipboard write failed", zap.Error(err))
		c.view.PromptManualCopy(text)
		return
	}
	c.view.ShowCopied()
	c.after(copyRevertDelay, c.view.ResetCopy)
}

// begin claims an action. It reports false when the action is already
// pending, which makes a second trigger while in flight a no-op.
func (c *Controller) begin(a Action) (uint64, bool) {
	c.mu.Lock()
	if c.state[a] == StatePending {
		c.mu.Unlock()
		return 0, false
	}
	c.state[a] = StatePending
	c.gen[a]++
	gen := c.gen[a]
	c.mu.Unlock()

	c.view.SetBusy(a, true)
	c.view.ShowPending(a)
	return gen, true
}

// finish releases the trigger. Deferred by every action entry point so
// the control is restored on success, error, timeout and panic alike. A
// finish for a superseded generation leaves the newer invocation's busy
// state alone.
func (c *Controller) finish(a Action, gen uint64) {
	c.mu.Lock()
	if c.gen[a] != gen {
		c.mu.Unlock()
		return
	}
	if c.state[a] == StatePending {
		// The action exited without a terminal transition (a panic
		// below us); treat it as errored out.
		c.state[a] = StateError
	}
	c.mu.Unlock()
	c.view.SetBusy(a, false)
}

// succeed applies a success transition unless the generation is stale, in
// which case the response is dropped without touching the view.
func (c *Controller) succeed(a Action, gen uint64, show func()) {
	c.mu.Lock()
	if c.gen[a] != gen {
		c.mu.Unlock()
		c.log.Debug("Discarding stale response", zap.String("action", string(a)))
		return
	}
	c.state[a] = StateSuccess
	c.mu.Unlock()
	show()
}

func (c *Controller) fail(a Action, gen uint64, message string) {
	c.mu.Lock()
	if c.gen[a] != gen {
		c.mu.Unlock()
		c.log.Debug("Discarding stale error", zap.String("action", string(a)))
		return
	}
	c.state[a] = StateError
	c.mu.Unlock()
	c.view.ShowError(a, message)
}

// userMessage maps a classified client error to display text. Detail
// fields and raw transport errors are logged here and never surface.
func (c *Controller) userMessage(a Action, err error) string {
	var appErr *client.ApplicationError
	var transportErr *client.TransportError
	switch {
	case errors.Is(err, client.ErrTimeout):
		return msgTimeout
	case errors.As(err, &appErr):
		if appErr.Detail != "" {
			c.log.Warn("Server reported failure",
				zap.String("action", string(a)),
				zap.String("detail", appErr.Detail),
			)
		}
		return appErr.Message
	case errors.As(err, &transportErr):
		return transportErr.Error()
	default:
		c.log.Warn("Request failed", zap.String("action", string(a)), zap.Error(err))
		return msgNetworkFailed
	}
}
