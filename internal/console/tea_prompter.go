package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TeaPrompter runs a small inline bubbletea program for every prompt
// so the player gets cursor movement and line editing.
type TeaPrompter struct {
	in  io.Reader
	out io.Writer
}

// Ensure TeaPrompter implements Prompter interface
var _ Prompter = (*TeaPrompter)(nil)

// NewTeaPrompter creates a prompter on the given terminal streams.
// A nil in or out falls back to bubbletea's defaults (stdin and stdout).
func NewTeaPrompter(in io.Reader, out io.Writer) *TeaPrompter {
	return &TeaPrompter{in: in, out: out}
}

func (p *TeaPrompter) ReadLine(prompt string) (string, error) {
	var opts []tea.ProgramOption
	if p.in != nil {
		opts = append(opts, tea.WithInput(p.in))
	}
	if p.out != nil {
		opts = append(opts, tea.WithOutput(p.out))
	}

	final, err := tea.NewProgram(newPromptModel(prompt), opts...).Run()
	if err != nil {
		return "", fmt.Errorf("failed to run prompt: %w", err)
	}

	m, ok := final.(promptModel)
	if !ok || m.aborted {
		return "", ErrInputClosed
	}
	return m.input.Value(), nil
}

// promptModel is a single-line text input that quits on Enter.
type promptModel struct {
	input   textinput.Model
	done    bool
	aborted bool
}

func newPromptModel(prompt string) promptModel {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.CharLimit = 200
	ti.Focus()
	return promptModel{input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || m.aborted {
		// Leave the answered prompt on screen as plain text.
		return m.input.Prompt + m.input.Value() + "\n"
	}
	return m.input.View()
}
