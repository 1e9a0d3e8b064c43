package clip

import (
	"strings"

	"github.com/fwojciec/webclip"
)

// noSelection is the content placeholder for an empty selection.
const noSelection = "No text selected"

// selectionResult builds the record for a captured selection. Multi-line
// selections keep the raw text verbatim since the visual line structure
// is what the user chose; single-line selections go through the Markdown
// converter so inline formatting survives.
func (d *Dispatcher) selectionResult(page *webclip.Page, sel *webclip.Selection) *webclip.Result {
	result := &webclip.Result{
		Metadata: webclip.Metadata{"type": webclip.TypeSelection},
	}

	text := ""
	if sel != nil {
		text = strings.TrimSpace(sel.Text)
	}
	if text == "" {
		result.Title = page.Title
		result.Content = noSelection
		result.Warn("selection empty")
		return result
	}

	result.Title = webclip.TruncateTitle(text)
	result.Content = text

	if !strings.Contains(text, "\n") && d.Converter != nil && sel.HTML != "" {
		if md, err := d.Converter.Convert(sel.HTML, page.URL); err == nil && strings.TrimSpace(md) != "" {
			result.Content = strings.TrimSpace(md)
		} else if err != nil {
			result.Warn("selection conversion failed, keeping raw text")
		}
	}

	return result
}
