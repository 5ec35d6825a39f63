// Package styles holds the trimmer's Ciapre colour palette and shared Lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - Ciapre (warm, earthy) theme from Gogh
const (
	// DeepPurple is the main background colour (Ciapre background)
	DeepPurple = lipgloss.Color("#191C27")
	// DarkPurple is a secondary dark background (Ciapre ANSI 0 black)
	DarkPurple = lipgloss.Color("#181818")
	// Purple is the border/dim accent colour (Ciapre ANSI 6 brown)
	Purple = lipgloss.Color("#5C4F4B")
	// BrightPurple is used for highlights and focus states (Ciapre ANSI 5 magenta)
	BrightPurple = lipgloss.Color("#724D7C")
	// Lavender is a secondary text colour (Ciapre foreground)
	Lavender = lipgloss.Color("#AEA47A")
	// LightLavender is the primary text colour (Ciapre ANSI 14 cream)
	LightLavender = lipgloss.Color("#F3DBB2")
	// Pink is an accent colour for headers and special elements (Ciapre ANSI 13 bright magenta)
	Pink = lipgloss.Color("#D33061")
	// Cyan is an accent colour for information and interactive elements (Ciapre ANSI 12 bright blue)
	Cyan = lipgloss.Color("#3097C6")
	// Amber is a warm accent for sub-headers (Ciapre derived)
	Amber = lipgloss.Color("#CC8B3F")
	// Red is used for warnings and errors (Ciapre ANSI 1)
	Red = lipgloss.Color("#AC3835")
	// Green is used for success messages (Ciapre ANSI 2)
	Green = lipgloss.Color("#A6A75D")
)

// Trimmer styles shared by the strip and the result line.
var (
	// Handle draws an idle trim handle.
	Handle = lipgloss.NewStyle().
		Foreground(LightLavender).
		Background(BrightPurple).
		Bold(true)

	// GrabbedHandle draws the handle held by the keyboard.
	GrabbedHandle = lipgloss.NewStyle().
			Foreground(DeepPurple).
			Background(Amber).
			Bold(true)

	// Indicator draws the playback position line.
	Indicator = lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true)

	// EmptyCell draws strip cells without a thumbnail yet.
	EmptyCell = lipgloss.NewStyle().
			Foreground(Purple)

	// Warning is the style for errors in the result line.
	Warning = lipgloss.NewStyle().
		Foreground(Red).
		Bold(true)

	// Success is the style for confirmations in the result line.
	Success = lipgloss.NewStyle().
		Foreground(Green).
		Bold(true)
)
