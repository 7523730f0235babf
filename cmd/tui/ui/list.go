package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/avelez/taskvault/cmd/tui/client"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type TaskItem struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	CreatedAt   string
}

type listTasksSuccessMsg struct {
	tasks []TaskItem
}

type listTasksErrorMsg struct {
	err error
}

type taskMutatedMsg struct{}

type ListModel struct {
	tasks   []TaskItem
	cursor  int
	loading bool
	err     error
	client  *client.Client
	loaded  bool
}

func (m *ListModel) Init() tea.Cmd {
	return nil
}

func NewListModel() *ListModel {
	return &ListModel{
		tasks: []TaskItem{},
	}
}

func (m *ListModel) SetClient(c *client.Client) {
	m.client = c
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func relativeTime(rfc3339 string) string {
	createdAt, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		return rfc3339
	}
	ago := time.Since(createdAt)

	if ago < time.Hour {
		return fmt.Sprintf("%d min ago", int(ago.Minutes()))
	} else if ago < 24*time.Hour {
		return fmt.Sprintf("%d hours ago", int(ago.Hours()))
	}
	return fmt.Sprintf("%d days ago", int(ago.Hours()/24))
}

func listTasksCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		resp, err := c.ListTasks()
		if err != nil {
			return listTasksErrorMsg{err: err}
		}

		tasks := make([]TaskItem, 0, len(resp))
		for _, t := range resp {
			tasks = append(tasks, TaskItem{
				ID:          t.ID,
				Title:       t.Title,
				Description: t.Description,
				Completed:   t.Completed,
				CreatedAt:   relativeTime(t.CreatedAt),
			})
		}

		return listTasksSuccessMsg{tasks: tasks}
	}
}

func toggleTaskCmd(c *client.Client, task TaskItem) tea.Cmd {
	return func() tea.Msg {
		if _, err := c.SetTaskCompleted(task.ID, !task.Completed); err != nil {
			return listTasksErrorMsg{err: err}
		}
		return taskMutatedMsg{}
	}
}

func deleteTaskCmd(c *client.Client, task TaskItem) tea.Cmd {
	return func() tea.Msg {
		if err := c.DeleteTask(task.ID); err != nil {
			return listTasksErrorMsg{err: err}
		}
		return taskMutatedMsg{}
	}
}

func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listTasksSuccessMsg:
		m.loading = false
		m.tasks = msg.tasks
		m.err = nil
		m.loaded = true
		if m.cursor >= len(m.tasks) && len(m.tasks) > 0 {
			m.cursor = len(m.tasks) - 1
		}
		return m, nil

	case listTasksErrorMsg:
		m.loading = false
		m.err = msg.err
		m.loaded = true
		return m, nil

	case taskMutatedMsg:
		// Re-fetch so the list reflects what the server holds.
		m.loading = true
		return m, listTasksCmd(m.client)

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case "r":
			if !m.loading {
				m.loading = true
				m.err = nil
				return m, listTasksCmd(m.client)
			}
		case " ", "enter":
			if !m.loading && m.cursor < len(m.tasks) {
				m.loading = true
				m.err = nil
				return m, toggleTaskCmd(m.client, m.tasks[m.cursor])
			}
		case "d":
			if !m.loading && m.cursor < len(m.tasks) {
				m.loading = true
				m.err = nil
				return m, deleteTaskCmd(m.client, m.tasks[m.cursor])
			}
		}
	}

	if !m.loaded && !m.loading && m.client != nil {
		m.loading = true
		return m, listTasksCmd(m.client)
	}

	return m, nil
}

func (m *ListModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render("YOUR TASKS")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		MarginBottom(2).
		Render(header))
	b.WriteString("\n\n")

	if m.loading {
		loading := lipgloss.NewStyle().
			Foreground(Accent).
			Render("⏳ Loading tasks...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(loading))
		b.WriteString("\n")
	} else if m.err != nil {
		errMsg := ErrorStyle.Render("❌ " + m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(errMsg))
		b.WriteString("\n")
	} else if len(m.tasks) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(Muted).
			Render("📝 No tasks found. Create one first!")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(empty))
		b.WriteString("\n")
	} else {
		// Display tasks as cards
		for i, task := range m.tasks {
			var cardStyle lipgloss.Style
			if i == m.cursor {
				cardStyle = lipgloss.NewStyle().
					Border(lipgloss.RoundedBorder()).
					BorderForeground(Accent).
					Padding(1, 2).
					Width(70).
					MarginBottom(1)
			} else {
				cardStyle = lipgloss.NewStyle().
					Border(lipgloss.RoundedBorder()).
					BorderForeground(Muted).
					Padding(1, 2).
					Width(70).
					MarginBottom(1)
			}

			// Card content
			var statusIcon string
			var titleValue string
			if task.Completed {
				statusIcon = lipgloss.NewStyle().Foreground(Success).Bold(true).Render("✔ ")
				titleValue = lipgloss.NewStyle().Foreground(Muted).Strikethrough(true).Render(task.Title)
			} else {
				statusIcon = lipgloss.NewStyle().Foreground(Warning).Bold(true).Render("○ ")
				titleValue = lipgloss.NewStyle().Foreground(Text).Bold(true).Render(task.Title)
			}
			titleLine := statusIcon + titleValue

			descLabel := lipgloss.NewStyle().Foreground(Secondary).Render("📎 ")
			descValue := lipgloss.NewStyle().Foreground(Text).Render(truncate(task.Description, 55))
			descLine := descLabel + descValue

			timeLine := lipgloss.NewStyle().Foreground(Muted).Render("Created " + task.CreatedAt)

			cardContent := lipgloss.JoinVertical(lipgloss.Left,
				titleLine,
				descLine,
				timeLine,
			)

			card := cardStyle.Render(cardContent)
			b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(card))
		}
	}

	b.WriteString("\n")
	help := InfoStyle.Render("↑/↓ navigate  •  space toggle  •  d delete  •  r refresh  •  q back")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return BoxStyle.Width(76).Render(b.String())
}
