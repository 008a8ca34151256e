// Package report renders diagnostic output for the terminal: section
// headers, pass/fail lines and pretty-printed JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	colorText    = lipgloss.Color("#c0caf5")
	colorTextDim = lipgloss.Color("#565f89")
	colorSuccess = lipgloss.Color("#9ece6a")
	colorError   = lipgloss.Color("#f7768e")
	colorPrimary = lipgloss.Color("#7aa2f7")
	colorWarn    = lipgloss.Color("#e0af68")
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	ruleStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	passStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	failStyle = lipgloss.NewStyle().Foreground(colorError)
	warnStyle = lipgloss.NewStyle().Foreground(colorWarn)
	infoStyle = lipgloss.NewStyle().Foreground(colorText)
	dimStyle  = lipgloss.NewStyle().Foreground(colorTextDim)
)

// Printer writes styled diagnostic output
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a Printer for w. Width comes from the terminal when w
// is a TTY, with an 80-column fallback.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{out: w, width: terminalWidth(w)}
}

// Section prints a titled separator, the diagnostic scripts' banner style
func (p *Printer) Section(title string) {
	rule := strings.Repeat("=", p.width)
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, ruleStyle.Render(rule))
	fmt.Fprintln(p.out, headerStyle.Render(" "+title))
	fmt.Fprintln(p.out, ruleStyle.Render(rule))
}

// Pass prints a check that succeeded
func (p *Printer) Pass(format string, args ...any) {
	fmt.Fprintln(p.out, passStyle.Render("✅ "+fmt.Sprintf(format, args...)))
}

// Fail prints a check that failed
func (p *Printer) Fail(format string, args ...any) {
	fmt.Fprintln(p.out, failStyle.Render("❌ "+fmt.Sprintf(format, args...)))
}

// Warn prints a warning observation
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.out, warnStyle.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// Info prints an informational line
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.out, infoStyle.Render("ℹ️ "+fmt.Sprintf(format, args...)))
}

// Plain prints an unstyled line
func (p *Printer) Plain(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Dim prints a secondary line
func (p *Printer) Dim(format string, args ...any) {
	fmt.Fprintln(p.out, dimStyle.Render(fmt.Sprintf(format, args...)))
}

// KV prints an aligned key/value line
func (p *Printer) KV(key string, value any) {
	fmt.Fprintf(p.out, "%s %v\n", dimStyle.Render(key+":"), value)
}

// Check prints Pass or Fail depending on ok
func (p *Printer) Check(ok bool, format string, args ...any) {
	if ok {
		p.Pass(format, args...)
	} else {
		p.Fail(format, args...)
	}
}

// JSON pretty-prints v
func (p *Printer) JSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(p.out, "%v\n", v)
		return
	}
	fmt.Fprintln(p.out, string(data))
}

// RawJSON re-indents raw JSON bytes, falling back to printing them verbatim
func (p *Printer) RawJSON(raw []byte) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		fmt.Fprintln(p.out, string(raw))
		return
	}
	p.JSON(v)
}

// terminalWidth returns w's terminal width clamped to [40, 100], or 80 when
// w is not a terminal
func terminalWidth(w io.Writer) int {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return 80
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	if width < 40 {
		return 40
	}
	if width > 100 {
		return 100
	}
	return width
}

// FormatError renders err with the HTTP context attached by the API client
func FormatError(err error, context string) string {
	if err == nil {
		return ""
	}
	return failStyle.Render(fmt.Sprintf("✗ %s: %v", context, err))
}
