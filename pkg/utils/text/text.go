// Package text provides the plain-text normalization used when composing
// card rows: whitespace trimming, markdown stripping and date formatting.
package text

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// maxMarkdownInput caps the input handed to the markdown parser so that
// pathological payloads stay bounded.
const maxMarkdownInput = 64 * 1024

// TrimNewLinesAndSpaces collapses runs of whitespace and newlines into
// single spaces and trims the ends. When maxLen > 0 the result is truncated
// to maxLen runes with a trailing ellipsis. Empty input yields an empty
// string.
func TrimNewLinesAndSpaces(s string, maxLen int) string {
	out := strings.Join(strings.Fields(s), " ")
	if maxLen <= 0 {
		return out
	}

	runes := []rune(out)
	if len(runes) <= maxLen {
		return out
	}
	return strings.TrimSpace(string(runes[:maxLen])) + "..."
}

// StripMarkdown removes markdown markup, leaving only the visible text.
// It is best effort and never fails: unparsable input comes back as-is.
func StripMarkdown(s string) string {
	if s == "" {
		return ""
	}
	if len(s) > maxMarkdownInput {
		s = s[:maxMarkdownInput]
	}

	src := []byte(s)
	doc := goldmark.New().Parser().Parse(gmtext.NewReader(src))

	var b strings.Builder
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				b.WriteByte('\n')
			}
			return ast.WalkContinue, nil
		}

		switch v := n.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.AutoLink:
			b.Write(v.URL(src))
		case *ast.CodeBlock:
			writeBlockLines(&b, v, src)
		case *ast.FencedCodeBlock:
			writeBlockLines(&b, v, src)
		case *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return s
	}

	return strings.TrimSpace(b.String())
}

func writeBlockLines(b *strings.Builder, n ast.Node, src []byte) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
}

// ShortRelativeDate returns the compact age of t relative to now ("2h",
// "3d", "Jan 02" beyond a month). The result is empty for a zero time so
// callers can omit the timestamp instead of rendering a bogus date.
func ShortRelativeDate(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	case t.Year() == now.Year():
		return t.Format("Jan 02")
	default:
		return t.Format("Jan 02, 2006")
	}
}

// LongRelativeDate returns the spoken form of the age of t ("2 hours ago"),
// empty for a zero time.
func LongRelativeDate(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// FullDateText returns the absolute timestamp used for tooltips, empty for
// a zero time.
func FullDateText(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Mon, Jan 02, 2006 15:04 MST")
}
