// Package output formats command-line results.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// ColorMode represents color output mode
type ColorMode int

const (
	// ColorAuto enables colors unless NO_COLOR is set or the terminal is dumb
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on
	ColorAlways
	// ColorNever forces colors off
	ColorNever
)

// ParseColorMode parses a string into a ColorMode
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// ResolveColors determines whether to use colors based on mode and environment
func ResolveColors(mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		return os.Getenv("TERM") != "dumb"
	}
}

// Printer writes command results to out and diagnostics to err.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
	quiet     bool
}

// NewPrinter creates a printer. Quiet suppresses everything but errors.
func NewPrinter(out, err io.Writer, useColors, quiet bool) *Printer {
	return &Printer{
		out:       out,
		err:       err,
		useColors: useColors,
		quiet:     quiet,
	}
}

// Out returns the writer results are printed to.
func (p *Printer) Out() io.Writer {
	return p.out
}

// Info prints an informational message
func (p *Printer) Info(format string, args ...any) {
	if p.quiet {
		return
	}
	p.fprintf(p.out, color.FgCyan, "", format, args...)
}

// Success prints a success message
func (p *Printer) Success(format string, args ...any) {
	if p.quiet {
		return
	}
	if p.useColors {
		p.fprintf(p.out, color.FgGreen, "✓ ", format, args...)
		return
	}
	p.fprintf(p.out, 0, "[OK] ", format, args...)
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...any) {
	if p.quiet {
		return
	}
	if p.useColors {
		p.fprintf(p.err, color.FgYellow, "⚠ ", format, args...)
		return
	}
	p.fprintf(p.err, 0, "[WARN] ", format, args...)
}

// Error prints an error message. It is never suppressed.
func (p *Printer) Error(format string, args ...any) {
	if p.useColors {
		p.fprintf(p.err, color.FgRed, "✗ ", format, args...)
		return
	}
	p.fprintf(p.err, 0, "[ERROR] ", format, args...)
}

// Print prints a plain line. Machine-readable output goes through here,
// so it ignores quiet.
func (p *Printer) Print(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Header prints a section header
func (p *Printer) Header(title string) {
	if p.quiet {
		return
	}
	if p.useColors {
		color.New(color.FgWhite, color.Bold).Fprintf(p.out, "\n%s\n", title)
		color.New(color.FgWhite).Fprintf(p.out, "%s\n", strings.Repeat("─", len(title)))
		return
	}
	fmt.Fprintf(p.out, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
}

// RemovableBadge marks whether a tag may be deleted by name.
func (p *Printer) RemovableBadge(removable bool) string {
	if removable {
		if !p.useColors {
			return "yes"
		}
		return color.GreenString("yes")
	}
	if !p.useColors {
		return "fixed"
	}
	return color.YellowString("fixed")
}

// Bold returns text in bold
func (p *Printer) Bold(text string) string {
	if p.useColors {
		return color.New(color.Bold).Sprint(text)
	}
	return text
}

// Dim returns dimmed text
func (p *Printer) Dim(text string) string {
	if p.useColors {
		return color.New(color.Faint).Sprint(text)
	}
	return text
}

func (p *Printer) fprintf(w io.Writer, attr color.Attribute, prefix, format string, args ...any) {
	if p.useColors && attr != 0 {
		c := color.New(attr)
		// fatih/color skips escapes when stdout is not a terminal; the
		// caller has already decided.
		c.EnableColor()
		c.Fprintf(w, prefix+format+"\n", args...)
		return
	}
	fmt.Fprintf(w, prefix+format+"\n", args...)
}
