package clip

import (
	"context"
	"fmt"

	"github.com/fwojciec/webclip"
)

// Ensure Dispatcher implements webclip.Dispatcher at compile time.
var _ webclip.Dispatcher = (*Dispatcher)(nil)

// noContent is the content placeholder when every strategy comes back
// empty.
const noContent = "No readable content found."

// Dispatcher routes inbound messages to an extraction strategy and
// normalizes the outcome. Strategy failures degrade tier by tier: site
// extractor, then readability, then the generic fallback, which never
// fails. A panic inside any extractor is contained and treated as that
// tier failing.
type Dispatcher struct {
	Registry    webclip.Registry
	Readability webclip.Extractor
	Fallback    webclip.Extractor
	FullPage    webclip.Extractor
	Converter   webclip.Converter
}

// Handle processes an inbound message against a page. Every request
// gets a response; unknown actions produce a failure-shaped one.
func (d *Dispatcher) Handle(ctx context.Context, page *webclip.Page, req *webclip.Request) *webclip.Response {
	switch req.Action {
	case webclip.ActionPing:
		return &webclip.Response{Status: "ok", Success: true}

	case webclip.ActionGetPageInfo:
		return &webclip.Response{
			Title:   webclip.TruncateTitle(page.Title),
			Success: true,
		}

	case webclip.ActionExtractContent:
		mode := req.ClipType
		if mode == "" {
			mode = webclip.ModeAuto
		}
		result := d.Extract(ctx, page, mode, req.Selection)
		return &webclip.Response{
			Success:  true,
			Title:    result.Title,
			Content:  result.Content,
			Metadata: result.Metadata,
			Warnings: result.Warnings,
		}

	default:
		return &webclip.Response{
			Success: false,
			Error:   fmt.Sprintf("unknown action %q", req.Action),
		}
	}
}

// Extract runs the extraction pipeline for a mode. The returned result
// is always well-formed: non-empty title and content, typed metadata.
func (d *Dispatcher) Extract(ctx context.Context, page *webclip.Page, mode webclip.Mode, sel *webclip.Selection) *webclip.Result {
	var result *webclip.Result

	switch mode {
	case webclip.ModeSelection:
		result = d.selectionResult(page, sel)
	case webclip.ModeFull:
		result = d.fullResult(ctx, page)
	default:
		result = d.autoResult(ctx, page)
	}

	return d.normalize(result, page)
}

// autoResult runs the tiered pipeline: site extractor by hostname, then
// readability, then the generic fallback.
func (d *Dispatcher) autoResult(ctx context.Context, page *webclip.Page) *webclip.Result {
	var carried []string

	if d.Registry != nil {
		if e, ok := d.Registry.Lookup(page.Hostname()); ok {
			result, err := safeExtract(ctx, e, page)
			if err == nil {
				return result
			}
			carried = append(carried, fmt.Sprintf("site extractor %q failed: %s", e.Name(), webclip.ErrorMessage(err)))
		}
	}

	if d.Readability != nil {
		result, err := safeExtract(ctx, d.Readability, page)
		if err == nil {
			result.Warnings = append(carried, result.Warnings...)
			return result
		}
		carried = append(carried, "readability failed: "+webclip.ErrorMessage(err))
	}

	result, err := safeExtract(ctx, d.Fallback, page)
	if err != nil {
		result = &webclip.Result{
			Content:  noContent,
			Metadata: webclip.Metadata{"type": webclip.TypeFallbackExtraction},
		}
		carried = append(carried, "fallback failed: "+webclip.ErrorMessage(err))
	}
	result.Warnings = append(carried, result.Warnings...)
	return result
}

// fullResult converts the whole page, degrading to the auto pipeline
// when the full-page extractor fails.
func (d *Dispatcher) fullResult(ctx context.Context, page *webclip.Page) *webclip.Result {
	if d.FullPage == nil {
		return d.autoResult(ctx, page)
	}
	result, err := safeExtract(ctx, d.FullPage, page)
	if err != nil {
		result = d.autoResult(ctx, page)
		result.Warn("full-page extraction failed: %s", webclip.ErrorMessage(err))
	}
	return result
}

// normalize guarantees the record shape: a title (the page title, capped,
// or the placeholder), non-empty content, and typed metadata.
func (d *Dispatcher) normalize(result *webclip.Result, page *webclip.Page) *webclip.Result {
	if result == nil {
		result = &webclip.Result{}
	}
	if result.Title == "" {
		result.Title = page.Title
	}
	result.Title = webclip.TruncateTitle(result.Title)
	if result.Title == "" {
		result.Title = "Untitled"
	}
	if result.Content == "" {
		result.Content = noContent
		result.Warn("extraction produced no content")
	}
	if result.Metadata == nil {
		result.Metadata = webclip.Metadata{}
	}
	if result.Metadata.Type() == "" {
		result.Metadata["type"] = webclip.TypeGeneric
	}
	return result
}

// safeExtract runs an extractor with panic containment. A nil extractor
// and a nil result both count as failures.
func safeExtract(ctx context.Context, e webclip.Extractor, page *webclip.Page) (result *webclip.Result, err error) {
	if e == nil {
		return nil, webclip.Errorf(webclip.EINTERNAL, "no extractor configured")
	}
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = webclip.Errorf(webclip.EINTERNAL, "extractor %q panicked: %v", e.Name(), r)
		}
	}()
	result, err = e.Extract(ctx, page)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, webclip.Errorf(webclip.EINTERNAL, "extractor %q returned no result", e.Name())
	}
	return result, nil
}
