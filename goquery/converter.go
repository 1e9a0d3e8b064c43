package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webclip"
	"golang.org/x/net/html"
)

// Ensure Converter implements webclip.Converter at compile time.
var _ webclip.Converter = (*Converter)(nil)

// Converter walks an HTML subtree and emits Markdown using the shared
// primitives. The input is parsed into a detached tree which the pipeline
// mutates step by step; the step order matters and must not change, or
// earlier replacements get double-escaped by later ones.
type Converter struct{}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Convert transforms an HTML fragment into normalized Markdown.
// Relative link and image targets are resolved against baseURL.
func (c *Converter) Convert(fragment string, baseURL string) (string, error) {
	if strings.TrimSpace(fragment) == "" {
		return "", webclip.Errorf(webclip.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", webclip.Errorf(webclip.EINVALID, "failed to parse HTML: %v", err)
	}

	var base *url.URL
	if baseURL != "" {
		base, _ = url.Parse(baseURL)
	}

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	return convertTree(root, base), nil
}

// convertTree runs the conversion pipeline over an already-detached tree.
// Used by Convert and directly by site extractors holding a parsed copy.
func convertTree(root *goquery.Selection, base *url.URL) string {
	// 1. Tables become Markdown blocks before anything touches their cells.
	root.Find("table").Each(func(_ int, el *goquery.Selection) {
		replaceWithText(el, RenderTable(el))
	})

	// 2. Headings.
	root.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, el *goquery.Selection) {
		level := int(goquery.NodeName(el)[1] - '0')
		text := strings.TrimSpace(el.Text())
		replaceWithText(el, "\n"+strings.Repeat("#", level)+" "+text+"\n\n")
	})

	// 3. Paragraphs keep their children and gain a blank line after.
	root.Find("p").Each(func(_ int, el *goquery.Selection) {
		el.AppendNodes(textNode("\n\n"))
	})

	// 4. Explicit line breaks.
	root.Find("br").Each(func(_ int, el *goquery.Selection) {
		replaceWithText(el, "\n")
	})

	// 5. Preformatted blocks become fenced code preserving inner text.
	root.Find("pre").Each(func(_ int, el *goquery.Selection) {
		text := el.Text()
		if code := el.Find("code"); code.Length() > 0 {
			text = code.Text()
		}
		replaceWithText(el, "\n```\n"+strings.TrimRight(text, "\n")+"\n```\n\n")
	})

	// 6. Inline code. Pre blocks are gone, so every code element left
	// is inline.
	root.Find("code").Each(func(_ int, el *goquery.Selection) {
		replaceWithText(el, "`"+el.Text()+"`")
	})

	// 7. Hyperlinks, with relative targets resolved.
	root.Find("a").Each(func(_ int, el *goquery.Selection) {
		text := strings.TrimSpace(el.Text())
		href := ResolveURL(base, el.AttrOr("href", ""))
		switch {
		case href == "":
			replaceWithText(el, text)
		case text == "":
			replaceWithText(el, "["+href+"]("+href+")")
		default:
			replaceWithText(el, "["+text+"]("+href+")")
		}
	})

	// 8. Images.
	root.Find("img").Each(func(_ int, el *goquery.Selection) {
		src := ResolveURL(base, el.AttrOr("src", ""))
		if src == "" {
			replaceWithText(el, "")
			return
		}
		alt := strings.TrimSpace(el.AttrOr("alt", ""))
		if alt == "" {
			alt = "Image"
		}
		replaceWithText(el, "!["+alt+"]("+src+")")
	})

	// 9. Bold and italic.
	root.Find("strong, b").Each(func(_ int, el *goquery.Selection) {
		replaceWithText(el, "**"+strings.TrimSpace(el.Text())+"**")
	})
	root.Find("em, i").Each(func(_ int, el *goquery.Selection) {
		replaceWithText(el, "*"+strings.TrimSpace(el.Text())+"*")
	})

	// 10. Lists. Only top-level lists are rendered; RenderList flattens
	// any nesting into its items.
	root.Find("ul, ol").Each(func(_ int, el *goquery.Selection) {
		if el.ParentsFiltered("ul, ol").Length() > 0 {
			return
		}
		if len(el.Nodes) > 0 && el.Nodes[0].Parent == nil {
			return
		}
		replaceWithText(el, RenderList(el))
	})

	return Normalize(FlattenText(root))
}

// replaceWithText swaps each matched element for a plain text node.
func replaceWithText(sel *goquery.Selection, text string) {
	sel.Each(func(_ int, el *goquery.Selection) {
		if len(el.Nodes) == 0 || el.Nodes[0].Parent == nil {
			return
		}
		el.ReplaceWithNodes(textNode(text))
	})
}

func textNode(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}
