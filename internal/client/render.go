package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-user-service/models"
	"github.com/charmbracelet/lipgloss"
)

var (
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Faint(true)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

func renderMessage(message string) string {
	return successStyle.Render(message)
}

func renderError(err error) string {
	return errorStyle.Render("error: ") + err.Error()
}

// renderUser draws the user record as a bordered key/value table.
func renderUser(title string, user models.User) string {
	rows := [][2]string{
		{"ID", user.ID},
		{"First name", user.FirstName},
		{"Last name", user.LastName},
		{"Email", user.Email},
		{"Created", formatTime(user.CreatedAt)},
		{"Updated", formatTime(user.UpdatedAt)},
	}

	labelWidth := 0
	for _, row := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(row[0]))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(labelStyle.Width(labelWidth + 2).Render(row[0]))
		b.WriteString(row[1])
	}

	return boxStyle.Render(b.String())
}

func renderAccount(resp models.AccountResponse) string {
	return renderMessage(resp.Message) + "\n" + renderUser("Account", resp.User)
}

func renderBuildInfo(info models.AppBuildInfo) string {
	body := fmt.Sprintf("Version: %s\nDate:    %s\nCommit:  %s",
		info.BuildVersion(), info.BuildDate(), info.BuildCommit())
	return boxStyle.Render(titleStyle.Render("go-user-service client") + "\n" + body)
}

func renderUsage() string {
	return strings.Join([]string{
		titleStyle.Render("usage: client <command> [flags]"),
		"",
		"  health                                       check that the server is up",
		"  register -first -last -email -password       create an account",
		"  login -email -password                       start a session",
		"  profile                                      show your profile",
		"  update [-first] [-last] [-email] [-password] change your profile",
		"  logout                                       forget the stored session",
		"  version                                      print build information",
		"",
		helpStyle.Render("server and session file come from ADAPTER_ADDRESS and ADAPTER_SESSION_FILE"),
	}, "\n")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Local().Format(time.DateTime)
}
