package profile

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/NotMugil/profile-tui/internal/common"
)

func (m *Model) getWidth() int {
	if m.width > 0 {
		return m.width
	}
	return 80
}

func (m *Model) getHeight() int {
	if m.height > 0 {
		return m.height
	}
	return 24
}

func (m *Model) View() string {
	if m.loading {
		return common.AppStyle.Render(
			fmt.Sprintf("\n  %s Loading profile...\n", m.spinner.View()),
		)
	}

	if m.err != nil {
		return common.AppStyle.Render(
			common.ErrorStyle.Render("Error: "+m.err.Error()) + "\n\n" +
				common.HelpStyle.Render("r: retry"),
		)
	}

	if m.profile == nil {
		return common.AppStyle.Render(
			common.ValueStyle.Render("No profile data available"),
		)
	}
	p := m.profile

	fbW := m.getWidth() - 2
	if fbW < 60 {
		fbW = 80
	}
	m.flexBox.SetWidth(fbW)
	m.flexBox.SetHeight(m.getHeight())
	m.flexBox.ForceRecalculate()

	leftCell := m.flexBox.GetRow(0).GetCell(0)
	rightCell := m.flexBox.GetRow(0).GetCell(1)
	leftW := leftCell.GetWidth()
	rightW := rightCell.GetWidth()

	var leftPanels []string
	if m.avatarArt != "" {
		leftPanels = append(leftPanels, common.RenderPanel("", m.avatarArt, leftW))
	}

	var account strings.Builder
	account.WriteString(common.TitleStyle.Render(p.DisplayName()))
	account.WriteString("\n")
	if p.Email != nil && *p.Email != "" {
		account.WriteString(common.LabelStyle.Render("Email:  ") + common.ValueStyle.Render(*p.Email) + "\n")
	}
	if !p.CreatedAt.IsZero() {
		account.WriteString(common.LabelStyle.Render("Joined: ") + common.ValueStyle.Render(p.CreatedAt.Format("January 2006")) + "\n")
	}
	account.WriteString(common.LabelStyle.Render("ID:     ") + common.ValueStyle.Render(fmt.Sprintf("%d", p.ID)))
	leftPanels = append(leftPanels, common.RenderPanel("Account", account.String(), leftW))
	leftCell.SetContent(lipgloss.JoinVertical(lipgloss.Left, leftPanels...))

	m.editor.SetSize(rightW - 4)
	m.tags.SetSize(rightW - 4)

	nickPanel := common.RenderPanel
	if m.editor.Editing() {
		nickPanel = common.RenderActivePanel
	}
	rightPanels := []string{
		nickPanel("Nickname", m.editor.View(), rightW),
		common.RenderPanel("Hobbies", m.tags.View(), rightW),
	}
	rightCell.SetContent(lipgloss.JoinVertical(lipgloss.Left, rightPanels...))

	return common.AppStyle.Render(m.flexBox.Render())
}
