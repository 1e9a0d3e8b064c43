package webclip

import "context"

// Mode selects how content is captured.
type Mode string

// Clip modes.
const (
	ModeSelection Mode = "selection"
	ModeAuto      Mode = "auto"
	ModeFull      Mode = "full"
)

// Action identifies an inbound message.
type Action string

// Inbound message actions.
const (
	ActionPing           Action = "ping"
	ActionGetPageInfo    Action = "getPageInfo"
	ActionExtractContent Action = "extractContent"
)

// Request is the inbound message consumed from the caller.
type Request struct {
	Action   Action `json:"action"`
	ClipType Mode   `json:"clipType,omitempty"`

	// Selection carries the captured selection for ModeSelection.
	Selection *Selection `json:"-"`
}

// Response is the outbound message. Exactly one of the field groups is
// populated depending on the request action; callers always receive a
// response, never an unhandled failure.
type Response struct {
	// Ping.
	Status string `json:"status,omitempty"`

	// GetPageInfo.
	Title string `json:"title,omitempty"`

	// ExtractContent.
	Success  bool     `json:"success"`
	Content  string   `json:"content,omitempty"`
	Metadata Metadata `json:"metadata,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Dispatcher resolves a request to an extraction strategy and normalizes
// its outcome. Extraction never panics or errors past the dispatcher;
// failures degrade to lower-fidelity result types or, when no strategy
// can run at all, to a failure-shaped response.
type Dispatcher interface {
	// Handle processes an inbound message against a page.
	Handle(ctx context.Context, page *Page, req *Request) *Response

	// Extract runs the extraction pipeline for a mode and returns the
	// normalized record. The returned result is always well-formed.
	Extract(ctx context.Context, page *Page, mode Mode, sel *Selection) *Result
}
