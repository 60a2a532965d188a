// Package style holds the lipgloss styles used by confkit's terminal
// output. AdaptiveColor keeps the palette readable on both light and dark
// backgrounds.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	HeadingColor = lipgloss.AdaptiveColor{
		Light: "#212529",
		Dark:  "#F8F9FA",
	}

	OptionColor = lipgloss.AdaptiveColor{
		Light: "#007ACC",
		Dark:  "#3D9EFF",
	}

	ValueColor = lipgloss.AdaptiveColor{
		Light: "#495057",
		Dark:  "#E9ECEF",
	}

	MutedColor = lipgloss.AdaptiveColor{
		Light: "#6C757D",
		Dark:  "#A0A8B0",
	}

	ErrorColor = lipgloss.AdaptiveColor{
		Light: "#DC3545",
		Dark:  "#FF6B7D",
	}
)

var (
	// SectionStyle renders section headers in configuration dumps.
	SectionStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	// OptionStyle renders option names.
	OptionStyle = lipgloss.NewStyle().
			Foreground(OptionColor)

	// ValueStyle renders resolved option values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(ValueColor)

	// MutedStyle renders secondary detail such as source paths.
	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	// ErrorStyle renders failure messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)
)
