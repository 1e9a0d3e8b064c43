package goquery

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	newlineRunRe = regexp.MustCompile(`\n{3,}`)
	spaceRunRe   = regexp.MustCompile(`[ \t]+`)
	cellSpaceRe  = regexp.MustCompile(`\s+`)
)

// blockTags are elements whose text is followed by a line break when
// flattening a subtree to text.
var blockTags = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "tr": true,
}

// RenderTable converts a table element into a pipe-delimited Markdown
// table. Literal pipes in cell text are escaped as \| and internal
// whitespace is collapsed to single spaces. A separator row of dashes
// (minimum width 3 per column) follows the first row containing header
// cells, or the first row when the table has no header cells.
func RenderTable(table *goquery.Selection) string {
	rows := table.Find("tr")
	if rows.Length() == 0 {
		return ""
	}

	// Separator goes after the first row with th cells, else after row 0.
	sepAfter := 0
	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		if row.Find("th").Length() > 0 {
			sepAfter = i
			return false
		}
		return true
	})

	var b strings.Builder
	b.WriteString("\n")
	rows.Each(func(i int, row *goquery.Selection) {
		cells := row.Find("th, td")
		texts := make([]string, 0, cells.Length())
		cells.Each(func(_ int, cell *goquery.Selection) {
			texts = append(texts, escapeTableCell(cell.Text()))
		})
		b.WriteString("| " + strings.Join(texts, " | ") + " |\n")

		if i == sepAfter {
			seps := make([]string, len(texts))
			for j, t := range texts {
				seps[j] = strings.Repeat("-", max(len(t), 3))
			}
			b.WriteString("| " + strings.Join(seps, " | ") + " |\n")
		}
	})
	b.WriteString("\n")

	return b.String()
}

// escapeTableCell prepares cell text for a Markdown table row.
func escapeTableCell(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "|", `\|`)
	return cellSpaceRe.ReplaceAllString(text, " ")
}

// RenderInline renders a run of inline content as Markdown: text nodes
// verbatim, anchors as [text](href), bold as **text**, italic as *text*,
// code as `text`. Relative link targets are resolved against base.
func RenderInline(sel *goquery.Selection, base *url.URL) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		renderInlineNode(&b, n, base)
	}
	return b.String()
}

func renderInlineNode(b *strings.Builder, n *html.Node, base *url.URL) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	if n.Type != html.ElementNode {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderInlineNode(b, c, base)
		}
		return
	}

	switch n.Data {
	case "a":
		text := strings.TrimSpace(nodeText(n))
		href := ResolveURL(base, attrValue(n, "href"))
		if href == "" {
			b.WriteString(text)
			return
		}
		if text == "" {
			text = href
		}
		b.WriteString("[" + text + "](" + href + ")")
	case "strong", "b":
		b.WriteString("**" + nodeText(n) + "**")
	case "em", "i":
		b.WriteString("*" + nodeText(n) + "*")
	case "code":
		b.WriteString("`" + nodeText(n) + "`")
	case "br":
		b.WriteString("\n")
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderInlineNode(b, c, base)
		}
	}
}

// RenderList converts a list element to Markdown. Ordered lists are
// numbered from 1, unordered lists use "-". Nested lists are flattened
// to their text; nesting depth is not preserved.
func RenderList(list *goquery.Selection) string {
	ordered := goquery.NodeName(list) == "ol"

	var b strings.Builder
	b.WriteString("\n")
	n := 0
	list.Find("li").Each(func(_ int, item *goquery.Selection) {
		text := strings.TrimSpace(cellSpaceRe.ReplaceAllString(listItemText(item), " "))
		if text == "" {
			return
		}
		n++
		if ordered {
			fmt.Fprintf(&b, "%d. %s\n", n, text)
		} else {
			b.WriteString("- " + text + "\n")
		}
	})
	b.WriteString("\n")

	return b.String()
}

// listItemText returns the item's own text, excluding nested lists
// (those are emitted as their own flat items).
func listItemText(item *goquery.Selection) string {
	var b strings.Builder
	for _, n := range item.Nodes {
		listItemNodeText(&b, n)
	}
	return b.String()
}

func listItemNodeText(b *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
			continue
		}
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			continue
		}
		listItemNodeText(b, c)
	}
}

// Normalize applies the late whitespace cleanup to an assembled Markdown
// block: runs of spaces and tabs collapse to one space, three or more
// consecutive newlines collapse to exactly two, leading and trailing
// blank space is trimmed, and the result ends with exactly one trailing
// newline. Empty input stays empty. Normalize is idempotent.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = spaceRunRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " \n", "\n")
	s = strings.ReplaceAll(s, "\n ", "\n")
	s = newlineRunRe.ReplaceAllString(s, "\n\n")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return s + "\n"
}

// FlattenText extracts the text of a subtree while preserving the visual
// line structure: each block element's content is followed by a line
// break, <br> becomes a newline, all other text is emitted verbatim.
func FlattenText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		flattenNode(&b, n)
	}
	return b.String()
}

func flattenNode(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "br" {
		b.WriteString("\n")
		return
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		flattenNode(b, c)
	}
	if n.Type == html.ElementNode && blockTags[n.Data] {
		b.WriteString("\n")
	}
}

// nodeText returns the concatenated text of a node's subtree.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
