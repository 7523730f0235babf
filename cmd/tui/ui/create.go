package ui

import (
	"fmt"
	"strings"

	"github.com/avelez/taskvault/cmd/tui/client"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type createTaskSuccessMsg struct {
	title string
}

type createTaskErrorMsg struct {
	err error
}

type CreateModel struct {
	titleInput       string
	descriptionInput string
	focusedInput     int
	loading          bool
	result           string
	err              error
	client           *client.Client
}

func (m *CreateModel) Init() tea.Cmd {
	return nil
}

func NewCreateModel() *CreateModel {
	return &CreateModel{
		focusedInput: 0,
	}
}

func (m *CreateModel) SetClient(c *client.Client) {
	m.client = c
}

func createTaskCmd(c *client.Client, title, description string) tea.Cmd {
	return func() tea.Msg {
		task, err := c.CreateTask(title, description)
		if err != nil {
			return createTaskErrorMsg{err: err}
		}
		return createTaskSuccessMsg{title: task.Title}
	}
}

func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case createTaskSuccessMsg:
		m.loading = false
		m.err = nil
		m.result = msg.title
		m.titleInput = ""
		m.descriptionInput = ""
		m.focusedInput = 0
		return m, nil

	case createTaskErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab", "shift+tab":
			m.focusedInput = (m.focusedInput + 1) % 2
		case "enter":
			if strings.TrimSpace(m.titleInput) == "" {
				m.err = fmt.Errorf("title cannot be empty")
				return m, nil
			}
			if strings.TrimSpace(m.descriptionInput) == "" {
				m.err = fmt.Errorf("description cannot be empty")
				return m, nil
			}

			if m.client != nil {
				m.loading = true
				m.err = nil
				m.result = ""
				return m, createTaskCmd(m.client, m.titleInput, m.descriptionInput)
			} else {
				m.err = fmt.Errorf("client not connected")
			}
		case "backspace":
			if m.focusedInput == 0 && len(m.titleInput) > 0 {
				m.titleInput = m.titleInput[:len(m.titleInput)-1]
			} else if m.focusedInput == 1 && len(m.descriptionInput) > 0 {
				m.descriptionInput = m.descriptionInput[:len(m.descriptionInput)-1]
			}
		case "ctrl+l":
			m.titleInput = ""
			m.descriptionInput = ""
			m.err = nil
			m.result = ""
		default:
			if len(msg.String()) == 1 {
				if m.focusedInput == 0 {
					m.titleInput += msg.String()
				} else {
					m.descriptionInput += msg.String()
				}
			}
		}
	}
	return m, nil
}

func (m *CreateModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render("NEW TASK")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		MarginBottom(2).
		Render(header))
	b.WriteString("\n\n")

	// Title input
	titleLabel := LabelStyle.Width(15).Render("Title:")
	var titleInputStyle lipgloss.Style
	if m.focusedInput == 0 {
		titleInputStyle = FocusedInputStyle
	} else {
		titleInputStyle = InputStyle
	}
	titleValue := titleInputStyle.Width(50).Render(m.titleInput)
	titleField := lipgloss.JoinHorizontal(lipgloss.Left, titleLabel, titleValue)
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(titleField))
	b.WriteString("\n\n")

	// Description input
	descLabel := LabelStyle.Width(15).Render("Description:")
	var descInputStyle lipgloss.Style
	if m.focusedInput == 1 {
		descInputStyle = FocusedInputStyle
	} else {
		descInputStyle = InputStyle
	}
	descValue := descInputStyle.Width(50).Render(m.descriptionInput)
	descField := lipgloss.JoinHorizontal(lipgloss.Left, descLabel, descValue)
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(descField))
	b.WriteString("\n\n")

	// Status messages
	if m.loading {
		loading := InfoStyle.Render("🔄 Creating task...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(loading))
		b.WriteString("\n")
	}

	if m.err != nil {
		errMsg := ErrorStyle.Render("❌ " + m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(errMsg))
		b.WriteString("\n")
	}

	if m.result != "" {
		success := SuccessStyle.Render("✅ Created: " + m.result)
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(success))
		b.WriteString("\n")
	}

	// Help
	b.WriteString("\n")
	help := InfoStyle.Render("tab switch  •  enter create  •  ctrl+l clear  •  q back")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return BoxStyle.Width(76).Render(b.String())
}
