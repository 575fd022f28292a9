package reader

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

// junkSelector matches elements stripped before any extraction.
const junkSelector = "script, style, nav, footer, iframe, svg, noscript"

// structuralSelector matches the elements the code focus keeps, in
// document order.
const structuralSelector = "h1, h2, h3, h4, pre, code, table"

// fragmentKind tags the variants of structural content.
type fragmentKind int

const (
	fragmentHeader fragmentKind = iota
	fragmentPre
	fragmentInlineCode
	fragmentTable
)

// fragment is one structural element lifted out of the DOM. text carries
// the element content except for tables, which carry rows of cell texts.
type fragment struct {
	kind   fragmentKind
	text   string
	rows   [][]string
	broken bool
}

// stripJunk removes elements that never carry readable content.
func stripJunk(doc *goquery.Document) {
	doc.Find(junkSelector).Remove()
}

// collectFragments walks the cleaned document in order and lifts every
// structural element into a tagged fragment. Code nested directly under
// pre is skipped so fenced blocks are not emitted twice.
func collectFragments(doc *goquery.Document, log zerolog.Logger) []fragment {
	var fragments []fragment
	doc.Find(structuralSelector).Each(func(_ int, sel *goquery.Selection) {
		switch goquery.NodeName(sel) {
		case "h1", "h2", "h3", "h4":
			fragments = append(fragments, fragment{kind: fragmentHeader, text: strings.TrimSpace(sel.Text())})
		case "pre":
			fragments = append(fragments, fragment{kind: fragmentPre, text: sel.Text()})
		case "code":
			if goquery.NodeName(sel.Parent()) == "pre" {
				return
			}
			fragments = append(fragments, fragment{kind: fragmentInlineCode, text: strings.TrimSpace(sel.Text())})
		case "table":
			fragments = append(fragments, tableFragment(sel, log))
		}
	})
	return fragments
}

// tableFragment extracts up to tableRowLimit rows from a table. A panic
// while reading one table marks that fragment broken instead of killing
// the whole extraction.
func tableFragment(sel *goquery.Selection, log zerolog.Logger) (frag fragment) {
	frag.kind = fragmentTable
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Msg("Table parsing failed")
			frag.rows = nil
			frag.broken = true
		}
	}()

	rows := sel.Find("tr")
	count := rows.Length()
	if count > tableRowLimit {
		count = tableRowLimit
	}
	for i := 0; i < count; i++ {
		var cells []string
		rows.Eq(i).Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		frag.rows = append(frag.rows, cells)
	}
	return frag
}

// renderCode renders fragments into output blocks, dropping the ones
// whose text collapses to nothing. Rows without cells keep their place
// in the row budget but produce no line.
func renderCode(fragments []fragment) []string {
	var blocks []string
	for _, frag := range fragments {
		switch frag.kind {
		case fragmentHeader:
			if frag.text != "" {
				blocks = append(blocks, "\n## "+frag.text)
			}
		case fragmentPre:
			if strings.TrimSpace(frag.text) != "" {
				blocks = append(blocks, "```\n"+frag.text+"\n```")
			}
		case fragmentInlineCode:
			if frag.text != "" {
				blocks = append(blocks, "`"+frag.text+"`")
			}
		case fragmentTable:
			if frag.broken {
				blocks = append(blocks, "\n[Table - parsing failed]")
				continue
			}
			if len(frag.rows) == 0 {
				continue
			}
			blocks = append(blocks, "\n[Table]")
			for _, cells := range frag.rows {
				if len(cells) > 0 {
					blocks = append(blocks, strings.Join(cells, " | "))
				}
			}
		}
	}
	return blocks
}

// flattenText renders the whole document as plain text, one text node
// per line, with every line trimmed and blank lines dropped.
func flattenText(doc *goquery.Document) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, root := range doc.Nodes {
		walk(root)
	}

	var lines []string
	for _, part := range parts {
		for _, line := range strings.Split(part, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				lines = append(lines, trimmed)
			}
		}
	}
	return strings.Join(lines, "\n")
}
