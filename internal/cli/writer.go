package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/coderite/auditor/internal/domain"
	"github.com/coderite/auditor/internal/event"
	"github.com/coderite/auditor/internal/review"
)

// ANSI 256-color codes used across the CLI output.
const (
	colorOrange  = 208 // event prefix
	colorGreen   = 42  // pass, high tier
	colorRed     = 196 // fail, low tier
	colorAmber   = 214 // warning, mid tier
	colorCyan    = 117 // section headers
	colorDim     = 241 // labels
	colorWhite   = 255 // values
	colorMagenta = 205 // title, active markers
)

// Writer prints workflow events and audit reports to an output stream.
// In non-TTY mode it prints plain text without ANSI escapes.
type Writer struct {
	out      io.Writer
	isTTY    bool
	width    int
	mu       sync.Mutex
	renderer *glamour.TermRenderer
}

// NewWriter creates a Writer. If width is <= 0, defaults to 80.
func NewWriter(out io.Writer, isTTY bool, width int) *Writer {
	if width <= 0 {
		width = 80
	}

	w := &Writer{
		out:   out,
		isTTY: isTTY,
		width: width,
	}

	if isTTY {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(max(width-6, 40)),
		)
		if err == nil {
			w.renderer = r
		}
	}

	return w
}

// WriteEvent prints a single workflow event.
func (w *Writer) WriteEvent(ev event.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var line string
	switch ev.Kind {
	case event.KindInfo:
		line = w.prefixed(ev.Text)
	case event.KindUploadStarted:
		line = w.prefixed("uploading " + ev.Text)
	case event.KindUploadDone:
		line = w.prefixed("extracted " + ev.Text)
	case event.KindAnalyzeStarted:
		if ev.Text == "" {
			line = w.prefixed("analyzing document")
		} else {
			line = w.prefixed("analyzing against " + ev.Text)
		}
	case event.KindAnalyzeDone:
		line = w.prefixed("analysis complete (" + ev.Text + ")")
	case event.KindFailure:
		line = maybeFgBold(w.isTTY, colorRed, "✗ ") + ev.Text
	case event.KindMarkdown:
		line = w.markdown(ev.Text)
	}

	fmt.Fprintln(w.out, line)
}

// WriteReport renders a full audit report: score card, per-section checks,
// suggestions, and the rewritten document when present.
func (w *Writer) WriteReport(filename string, res *domain.ReviewResponse) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(maybeFgBold(w.isTTY, colorMagenta, "AUDIT REPORT"))
	if filename != "" {
		b.WriteString(maybeFg(w.isTTY, colorDim, "  "+filename))
	}
	b.WriteString("\n\n")

	tier := review.ScoreTier(res.Score)
	b.WriteString(maybeFg(w.isTTY, colorDim, "Score:  "))
	b.WriteString(maybeFgBold(w.isTTY, tierColor(tier), fmt.Sprintf("%d", res.Score)))
	b.WriteString(maybeFg(w.isTTY, colorDim, fmt.Sprintf("  (%s)", tier)))
	b.WriteString("\n")

	tally := review.Count(res.Checklist)
	b.WriteString(maybeFg(w.isTTY, colorDim, "Checks: "))
	b.WriteString(fmt.Sprintf("%s pass, %s fail, %s warning\n",
		maybeFg(w.isTTY, colorGreen, fmt.Sprintf("%d", tally.Pass)),
		maybeFg(w.isTTY, colorRed, fmt.Sprintf("%d", tally.Fail)),
		maybeFg(w.isTTY, colorAmber, fmt.Sprintf("%d", tally.Warning))))

	for _, section := range review.Group(res.Checklist) {
		b.WriteString("\n")
		b.WriteString(maybeFgBold(w.isTTY, colorCyan, section.Name))
		b.WriteString("\n")
		for _, item := range section.Items {
			b.WriteString(fmt.Sprintf("  %s %s\n", w.statusMark(item.Status), item.Item))
			if item.Comment != "" {
				b.WriteString(maybeFg(w.isTTY, colorDim, "      "+item.Comment))
				b.WriteString("\n")
			}
		}
	}

	if len(res.Suggestions) > 0 {
		b.WriteString("\n")
		b.WriteString(maybeFgBold(w.isTTY, colorMagenta, "SUGGESTIONS"))
		b.WriteString("\n")
		for i, s := range res.Suggestions {
			b.WriteString(fmt.Sprintf("  %s %s\n", maybeFg(w.isTTY, colorDim, fmt.Sprintf("%d.", i+1)), s))
		}
	}

	if res.RewrittenContent != "" {
		b.WriteString("\n")
		b.WriteString(maybeFgBold(w.isTTY, colorMagenta, "REWRITTEN DOCUMENT"))
		b.WriteString("\n")
		b.WriteString(w.markdown(res.RewrittenContent))
		b.WriteString("\n")
	}

	fmt.Fprint(w.out, b.String())
}

func (w *Writer) statusMark(status domain.CheckStatus) string {
	switch status {
	case domain.StatusPass:
		return maybeFg(w.isTTY, colorGreen, "✓")
	case domain.StatusFail:
		return maybeFg(w.isTTY, colorRed, "✗")
	case domain.StatusWarning:
		return maybeFg(w.isTTY, colorAmber, "!")
	default:
		return maybeFg(w.isTTY, colorDim, "?")
	}
}

func tierColor(t review.Tier) int {
	switch t {
	case review.TierHigh:
		return colorGreen
	case review.TierMid:
		return colorAmber
	default:
		return colorRed
	}
}

func (w *Writer) prefixed(text string) string {
	prefix := "auditor: "
	if w.isTTY {
		return fgBold(colorOrange, "▶ "+prefix) + text
	}
	return prefix + text
}

func (w *Writer) markdown(text string) string {
	if w.renderer != nil {
		if rendered, err := w.renderer.Render(text); err == nil {
			return strings.TrimRight(rendered, "\n")
		}
	}
	return text
}

