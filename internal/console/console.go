package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const defaultWidth = 72

var (
	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("214")). // gold
			Foreground(lipgloss.Color("205")).       // pink
			Bold(true).
			Padding(0, 4)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal
)

// Console is the line-oriented surface the casino talks to the player through.
type Console struct {
	out   io.Writer
	in    Prompter
	width int
}

// New creates a console writing to out and reading answers through in.
func New(out io.Writer, in Prompter) *Console {
	return &Console{
		out:   out,
		in:    in,
		width: defaultWidth,
	}
}

// Writer exposes the console output for collaborators that print directly.
func (c *Console) Writer() io.Writer {
	return c.out
}

// Println writes a line, wrapping long text to the console width.
func (c *Console) Println(a ...any) {
	_, _ = fmt.Fprintln(c.out, wordwrap.String(fmt.Sprint(a...), c.width))
}

// Printf writes formatted text as is.
func (c *Console) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(c.out, format, a...)
}

// Notice writes a highlighted informational line.
func (c *Console) Notice(msg string) {
	c.Println(noticeStyle.Render(msg))
}

// Warn writes a highlighted diagnostic line.
func (c *Console) Warn(msg string) {
	c.Println(warnStyle.Render(msg))
}

// Banner writes a boxed title.
func (c *Console) Banner(title string) {
	_, _ = fmt.Fprintln(c.out, bannerStyle.Render(title))
}

// List writes one "- item" line per option.
func (c *Console) List(items []string) {
	for _, item := range items {
		_, _ = fmt.Fprintln(c.out, "- "+item)
	}
}

// Ask prompts once and returns the answer trimmed and lower-cased.
func (c *Console) Ask(prompt string) (string, error) {
	line, err := c.in.ReadLine(prompt)
	if err != nil {
		return "", err
	}
	return Normalize(line), nil
}

// ChooseOptions configures Choose.
type ChooseOptions struct {
	// ShowList re-prints the options before every prompt.
	ShowList bool
	// Invalid is printed when the answer matches no option.
	Invalid string
}

// Choose prompts until the answer exactly matches one of options
// (case-insensitively) and returns the matched option.
// A near miss earns a "did you mean" hint but is never accepted.
func (c *Console) Choose(prompt string, options []string, opts ChooseOptions) (string, error) {
	for {
		if opts.ShowList {
			c.List(options)
		}

		answer, err := c.Ask(prompt)
		if err != nil {
			return "", err
		}
		for _, o := range options {
			if answer == Normalize(o) {
				return o, nil
			}
		}

		msg := opts.Invalid
		if msg == "" {
			msg = "Invalid input."
		}
		if s, ok := Suggest(answer, options); ok {
			msg += fmt.Sprintf(" Did you mean %q?", s)
		}
		c.Warn(msg)
	}
}

// Normalize trims surrounding whitespace and lower-cases s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Suggest returns the option closest to input when it is within a few
// edits, scaling the allowed distance with the option length.
func Suggest(input string, options []string) (string, bool) {
	input = Normalize(input)
	if input == "" {
		return "", false
	}

	best, bestDist := "", -1
	for _, o := range options {
		cand := Normalize(o)
		dist := levenshtein.ComputeDistance(input, cand)
		if dist > distanceLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = o, dist
		}
	}
	return best, bestDist >= 0
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
