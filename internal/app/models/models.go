package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ItineraryRequest carries the four trip form fields. The fields travel
// verbatim; required-field checks happen server side so an empty or
// whitespace-only destination is still sent.
type ItineraryRequest struct {
	Days        FlexString `json:"days"`
	Destination string     `json:"destination"`
	Budget      string     `json:"budget,omitempty"`
	Preferences string     `json:"preferences,omitempty"`
}

// ItineraryResponse is the generate-plan endpoint payload. Plan is set
// whenever Success is true. Detail carries internal diagnostics and must
// never be shown to end users.
type ItineraryResponse struct {
	Success    bool        `json:"success"`
	Plan       string      `json:"plan,omitempty"`
	References []Reference `json:"references,omitempty"`
	Error      string      `json:"error,omitempty"`
	Detail     string      `json:"detail,omitempty"`
}

// Reference is a titled source link cited for a generated plan.
type Reference struct {
	Title string `json:"title,omitempty"`
	Link  string `json:"link,omitempty"`
}

// SearchRequest is the search endpoint payload.
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchResult is a single web search hit. IsLinkOnly marks the degraded
// mode where the server has no search credentials and Link is only a
// hand-off URL to the search engine.
type SearchResult struct {
	Title      string `json:"title"`
	Link       string `json:"link"`
	Snippet    string `json:"snippet"`
	IsLinkOnly bool   `json:"is_link_only,omitempty"`
}

// SearchResponse is the search endpoint payload. UsingAPI reports whether
// real search credentials were used or the link-only fallback.
type SearchResponse struct {
	Success  bool           `json:"success"`
	Results  []SearchResult `json:"results"`
	UsingAPI bool           `json:"using_api"`
	Error    string         `json:"error,omitempty"`
}

// PlanRecord is a persisted generated plan.
type PlanRecord struct {
	ID          uuid.UUID `json:"id"`
	Days        string    `json:"days"`
	Destination string    `json:"destination"`
	Budget      string    `json:"budget,omitempty"`
	Preferences string    `json:"preferences,omitempty"`
	Plan        string    `json:"plan"`
	CreatedAt   time.Time `json:"created_at"`
}

// FlexString accepts both JSON strings and bare numbers, since clients
// historically sent the trip length either way.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return string(f)
}
