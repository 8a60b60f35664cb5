package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lvitali/cronosheet/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// ProjectDot renders a bullet in the project's own palette color.
func ProjectDot(p domain.Project) string {
	if p.Color == "" {
		return StyleDim.Render("●")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("●")
}

// SubscriptionPill returns a colored tier indicator.
func SubscriptionPill(status domain.SubscriptionStatus) string {
	switch status {
	case domain.SubscriptionTrial:
		return StyleYellow.Render("● Trial")
	case domain.SubscriptionActive:
		return StyleGreen.Render("● Active")
	case domain.SubscriptionPro:
		return StyleBlue.Render("● Pro")
	case domain.SubscriptionElite:
		return StylePurple.Render("● Elite")
	case domain.SubscriptionExpired:
		return StyleRed.Render("✖ Expired")
	default:
		return StyleDim.Render(string(status))
	}
}

// RolePill returns a colored role indicator.
func RolePill(role domain.Role) string {
	if role == domain.RoleAdmin {
		return StylePurple.Render("★ Admin")
	}
	return StyleFg.Render("User")
}

// ApprovalPill marks whether an account has been let in yet.
func ApprovalPill(approved bool) string {
	if approved {
		return StyleGreen.Render("✔ Approved")
	}
	return StyleYellow.Render("○ Pending")
}

// NightBadge marks night shift entries; returns "" for day work.
func NightBadge(isNight bool) string {
	if !isNight {
		return ""
	}
	return StylePurple.Render("☾ night")
}

// RunningBadge marks an entry that is still being tracked.
func RunningBadge() string {
	return StyleGreen.Render("▶ running")
}
