package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/darylhandley/15five-utils/internal/infrastructure/config"
)

// Sensitive field labels whose input should be masked
var sensitiveLabels = map[string]bool{
	"Session ID": true,
	"CSRF Token": true,
}

type setupModel struct {
	inputs     []textinput.Model
	labels     []string
	focusIndex int
	done       bool
	cancelled  bool
	err        error
}

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	noStyle      = lipgloss.NewStyle()

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			MarginTop(1)
)

func newSetupModel(existing *config.Config) setupModel {
	m := setupModel{
		labels: []string{"15Five URL", "Session ID", "CSRF Token"},
	}

	placeholders := []string{
		"https://mycompany.15five.com",
		"sessionid cookie value from your browser",
		"ff_csrf_token cookie value from your browser",
	}
	values := []string{"", "", ""}
	if existing != nil {
		values = []string{existing.BaseURL, existing.SessionID, existing.CSRFToken}
	}

	for i, label := range m.labels {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.CharLimit = 300
		input.Width = 50
		if sensitiveLabels[label] {
			input.EchoMode = textinput.EchoPassword
		}
		input.SetValue(values[i])
		m.inputs = append(m.inputs, input)
	}

	m.inputs[0].Focus()
	m.inputs[0].PromptStyle = focusedStyle
	m.inputs[0].TextStyle = focusedStyle

	return m
}

func (m setupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "tab", "down":
			m.focusIndex++
			if m.focusIndex >= len(m.inputs) {
				m.focusIndex = 0
			}
			return m, m.updateFocus()

		case "shift+tab", "up":
			m.focusIndex--
			if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs) - 1
			}
			return m, m.updateFocus()

		case "enter":
			if m.focusIndex == len(m.inputs)-1 {
				if err := m.validate(); err != nil {
					m.err = err
					return m, nil
				}
				m.done = true
				return m, tea.Quit
			}
			m.focusIndex++
			return m, m.updateFocus()
		}
	}

	cmd := m.updateInputs(msg)
	return m, cmd
}

func (m *setupModel) updateFocus() tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		if i == m.focusIndex {
			cmds[i] = m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle
		} else {
			m.inputs[i].Blur()
			m.inputs[i].PromptStyle = noStyle
			m.inputs[i].TextStyle = noStyle
		}
	}
	return tea.Batch(cmds...)
}

func (m *setupModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m setupModel) validate() error {
	if strings.TrimSpace(m.inputs[0].Value()) == "" {
		return fmt.Errorf("15Five URL is required")
	}
	if strings.TrimSpace(m.inputs[1].Value()) == "" {
		return fmt.Errorf("session ID is required")
	}
	if strings.TrimSpace(m.inputs[2].Value()) == "" {
		return fmt.Errorf("CSRF token is required")
	}
	return nil
}

func (m setupModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Configure 15Five Session"))
	b.WriteString("\n\n")

	for i, input := range m.inputs {
		label := m.labels[i]
		if i == m.focusIndex {
			b.WriteString(focusedStyle.Render(fmt.Sprintf("› %s:", label)))
		} else {
			b.WriteString(blurredStyle.Render(fmt.Sprintf("  %s:", label)))
		}
		b.WriteString("\n")
		b.WriteString("  ")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	help := "[Tab/↓] Next • [Shift+Tab/↑] Previous • [Enter] Save • [Esc] Cancel"
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

func (m setupModel) getConfig() *config.Config {
	return &config.Config{
		BaseURL:   strings.TrimRight(strings.TrimSpace(m.inputs[0].Value()), "/"),
		SessionID: strings.TrimSpace(m.inputs[1].Value()),
		CSRFToken: strings.TrimSpace(m.inputs[2].Value()),
	}
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure your 15Five session interactively",
	Long: `Configure your 15Five session using an interactive form.

Log in to 15Five in a browser, then copy the 'sessionid' and
'ff_csrf_token' cookie values from the browser's developer tools. The
credentials are saved to ~/.15fiveutils/config.yaml with owner-only
permissions and picked up by a running shell without a restart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		existing, err := config.Load()
		if err != nil {
			existing = nil
		}

		m := newSetupModel(existing)
		p := tea.NewProgram(m)

		finalModel, err := p.Run()
		if err != nil {
			return fmt.Errorf("setup failed: %w", err)
		}

		result := finalModel.(setupModel)
		if result.cancelled || !result.done {
			fmt.Println("Cancelled.")
			return nil
		}

		cfg := result.getConfig()
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		path, _ := config.Path()
		success.Println("Session configured.")
		fmt.Printf("  Saved to: %s\n", path)
		fmt.Printf("  15Five URL: %s\n", cfg.BaseURL)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(setupCmd)
}
