package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorCyan   = lipgloss.AdaptiveColor{Dark: "#66D9EF", Light: "#0987A0"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
)

// BannerStyle renders the startup banner.
var BannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorCyan)

// BannerTaglineStyle renders the tagline below the banner title.
var BannerTaglineStyle = lipgloss.NewStyle().
	Foreground(ColorYellow)

// SectionStyle renders section headers and their rule lines.
var SectionStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorCyan)

// SuccessStyle marks completed steps.
var SuccessStyle = lipgloss.NewStyle().
	Foreground(ColorGreen)

// ErrorStyle marks failures.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorRed)

// WarningStyle marks cautions the operator should read.
var WarningStyle = lipgloss.NewStyle().
	Foreground(ColorYellow)

// InfoStyle marks neutral progress notes.
var InfoStyle = lipgloss.NewStyle().
	Foreground(ColorBlue)

// LabelStyle renders summary field labels.
var LabelStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite)

// ValueStyle renders summary field values.
var ValueStyle = lipgloss.NewStyle().
	Foreground(ColorCyan)

// MutedStyle renders secondary text such as hints and previews.
var MutedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)
