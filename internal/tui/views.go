package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the console (required by Bubble Tea)
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// No guard decision renders before session initialization completes.
	if !m.ready {
		return m.spinner.View() + " Loading session..."
	}

	var body string
	switch m.view {
	case ViewDashboard:
		body = m.renderDashboard()
	case ViewUsers:
		body = m.renderUsers()
	case ViewCommissions:
		body = m.renderCommissions()
	case ViewLogin:
		body = m.renderLogin()
	case ViewRegister:
		body = m.renderRegister()
	case ViewDenied:
		body = m.renderDenied()
	default:
		body = "Unknown view"
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderHelp())
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render("refadmin")
	if m.snapshot.Profile != nil {
		return title + m.styles.Subtitle.Render(fmt.Sprintf("  Welcome, %s", m.snapshot.Profile.Name))
	}
	return title
}

func (m Model) renderHelp() string {
	switch m.view {
	case ViewLogin:
		return m.helpLine("tab", "switch field", "enter", "login", "ctrl+r", "register", "ctrl+c", "quit")
	case ViewRegister:
		return m.helpLine("tab", "switch field", "enter", "sign up", "esc", "back to login")
	case ViewUsers:
		if m.confirmDelete {
			return m.helpLine("y", "confirm delete", "n", "cancel")
		}
		return m.helpLine("↑/↓", "select", "x", "delete", "r", "refresh", "d", "dashboard", "c", "commissions", "q", "quit")
	default:
		return m.helpLine("d", "dashboard", "u", "users", "c", "commissions", "r", "refresh", "L", "logout", "q", "quit")
	}
}

func (m Model) helpLine(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(m.styles.KeyDesc.Render("  •  "))
		}
		b.WriteString(m.styles.Key.Render(pairs[i]))
		b.WriteString(m.styles.KeyDesc.Render(" " + pairs[i+1]))
	}
	return m.styles.Help.Render(b.String())
}

func (m Model) errorBanner(message string) string {
	return m.styles.Error.Render(message) +
		m.styles.Muted.Render("  (press r to retry)")
}

func (m Model) renderDashboard() string {
	if m.statsLoading {
		return m.spinner.View() + " Loading dashboard..."
	}
	if m.statsErr != "" {
		return m.errorBanner(m.statsErr)
	}
	if m.stats == nil {
		return m.styles.Muted.Render("No stats available.")
	}

	card := func(label string, value string) string {
		return m.styles.Card.Render(
			m.styles.Muted.Render(label) + "\n" + m.styles.CardStat.Render(value),
		)
	}

	cards := []string{}
	// The total-users card is reserved for administrators.
	if m.snapshot.Profile.IsAdmin() {
		cards = append(cards, card("Total Users", fmt.Sprintf("%d", m.stats.UserCount)))
	}
	cards = append(cards,
		card("Total Referrals", fmt.Sprintf("%d", m.stats.RefereeCount)),
		card("Active Referrals", fmt.Sprintf("%d", m.stats.ActiveReferralsCount)),
		card("Revenue", fmt.Sprintf("$%.2f", m.stats.TotalCommissions)),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Status.Render("Dashboard"),
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
	)
}

func (m Model) renderUsers() string {
	if m.usersLoading {
		return m.spinner.View() + " Loading users..."
	}
	if m.usersErr != "" {
		return m.errorBanner(m.usersErr)
	}

	var b strings.Builder
	b.WriteString(m.styles.Status.Render("Users") + "\n")
	b.WriteString(m.styles.TableHdr.Render(
		fmt.Sprintf(" %-6s %-24s %-30s %-12s ", "ID", "NAME", "EMAIL", "ROLE")) + "\n")

	if len(m.users) == 0 {
		b.WriteString(m.styles.Muted.Render("No users found"))
		return b.String()
	}

	for i, user := range m.users {
		role := "N/A"
		if len(user.Roles) > 0 {
			role = user.Roles[0].Name
		}
		row := fmt.Sprintf(" %-6d %-24s %-30s %-12s ", user.ID, truncate(user.Name, 24), truncate(user.Email, 30), role)

		style := m.styles.RowEven
		if i%2 == 1 {
			style = m.styles.RowOdd
		}
		if i == m.userCursor {
			style = m.styles.Selected
		}
		b.WriteString(style.Render(row) + "\n")
	}

	if m.confirmDelete && m.userCursor < len(m.users) {
		b.WriteString("\n" + m.styles.Error.Render(
			fmt.Sprintf("Delete %s? (y/n)", m.users[m.userCursor].Email)))
	}

	return b.String()
}

func (m Model) renderCommissions() string {
	if m.logsLoading {
		return m.spinner.View() + " Loading commission logs..."
	}
	if m.logsErr != "" {
		return m.errorBanner(m.logsErr)
	}

	var b strings.Builder
	b.WriteString(m.styles.Status.Render("Commission Logs") + "\n")
	b.WriteString(m.styles.TableHdr.Render(
		fmt.Sprintf(" %-4s %-20s %-26s %-14s %-10s %-10s %-16s ",
			"NO.", "USER", "EMAIL", "REFERRAL ID", "AMOUNT", "TYPE", "DATE")) + "\n")

	if len(m.logs) == 0 {
		b.WriteString(m.styles.Muted.Render("No commission logs found"))
		return b.String()
	}

	for i, entry := range m.logs {
		row := fmt.Sprintf(" %-4d %-20s %-26s %-14s %-10s %-10s %-16s ",
			i+1,
			truncate(entry.User.Name, 20),
			truncate(entry.User.Email, 26),
			truncate(entry.User.ReferralUUID, 14),
			fmt.Sprintf("$%.2f", entry.Amount),
			truncate(entry.Type, 10),
			entry.CreatedAt.Format("2006-01-02 15:04"),
		)
		style := m.styles.RowEven
		if i%2 == 1 {
			style = m.styles.RowOdd
		}
		b.WriteString(style.Render(row) + "\n")
	}

	return b.String()
}

func (m Model) renderLogin() string {
	var b strings.Builder
	b.WriteString(m.styles.Status.Render("Sign In") + "\n\n")
	for i := range m.loginInputs {
		b.WriteString(m.loginInputs[i].View() + "\n")
	}
	if m.loginBusy {
		b.WriteString("\n" + m.spinner.View() + " Signing in...")
	}
	if m.loginErr != "" {
		b.WriteString("\n" + m.styles.Error.Render(m.loginErr))
	}
	return b.String()
}

func (m Model) renderRegister() string {
	var b strings.Builder
	b.WriteString(m.styles.Status.Render("Create Account") + "\n\n")
	for i := range m.regInputs {
		b.WriteString(m.regInputs[i].View() + "\n")
		if i == regReferral {
			b.WriteString(m.renderReferralIndicator())
		}
	}
	if m.regBusy {
		b.WriteString("\n" + m.spinner.View() + " Creating account...")
	}
	if m.regErr != "" {
		b.WriteString("\n" + m.styles.Error.Render(m.regErr))
	}
	return b.String()
}

// renderReferralIndicator shows the debounced validation verdict inline
// under the referral field.
func (m Model) renderReferralIndicator() string {
	switch {
	case m.refState.IsValidating:
		return m.spinner.View() + m.styles.Muted.Render(" checking referral code...") + "\n"
	case m.refState.IsValid:
		return m.styles.Success.Render("✓ Valid referral code") +
			m.styles.Muted.Render("  Referred by: "+m.refState.ReferrerInfo) + "\n"
	case m.refState.Error != "":
		return m.styles.Error.Render("✗ "+m.refState.Error) + "\n"
	default:
		return ""
	}
}

func (m Model) renderDenied() string {
	return m.styles.Denied.Render(
		m.styles.Error.Render("Access Denied") + "\n\n" +
			"You don't have permission to access this page.\n" +
			m.styles.Muted.Render("Press d to go to the dashboard."),
	)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
