package client

import (
	"fmt"

	"github.com/pkg/errors"
)

// maxErrorBody caps how much of a non-2xx response body is kept for
// display.
const maxErrorBody = 300

// ErrTimeout marks a call that was cancelled because its deadline fired
// before the response arrived. Distinct from other transport failures so
// the user sees a dedicated message.
var ErrTimeout = errors.New("request deadline exceeded")

// TransportError is a non-2xx HTTP status. Body holds a truncated copy of
// the response body for display.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Body)
}

// ApplicationError is a well-formed response whose success flag is false.
// Message is the server-supplied user-facing text; Detail is internal
// diagnostics and must only ever be logged.
type ApplicationError struct {
	Message string
	Detail  string
}

func (e *ApplicationError) Error() string {
	return e.Message
}

func truncateBody(body []byte) string {
	s := string(body)
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}
