// Package layout draws the frame around the active screen: a header with
// the brand, screen title and status, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/vodila/vodila/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20

	brand = "  Vodila"
	// frame is the border plus the inner padding of header and footer.
	frame = 4
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"The cards need more room.\n\nResize to at least %d × %d\n(now %d × %d)",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader renders the brand on the left, title centred and status on
// the right. The title is dropped when the three do not fit.
func RenderHeader(title, status string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(brand)
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	inner := max(width-frame, 0)
	l, c, r := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)

	var content string
	if l+c+r+2 > inner {
		content = left + gap(inner-l-r) + right
	} else {
		leftGap := max((inner-c)/2-l, 1)
		content = left + gap(leftGap) + center + gap(inner-l-leftGap-c-r) + right
	}
	return theme.Bar.Width(width).Render(content)
}

// RenderFooter renders the key hints. Descriptions are dropped when the
// hints would overflow the width.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	full := make([]string, 0, len(hints))
	keys := make([]string, 0, len(hints))
	for _, h := range hints {
		full = append(full, keyStyle.Render(h.Key)+" "+descStyle.Render(h.Description))
		keys = append(keys, keyStyle.Render(h.Key))
	}

	content := "  " + strings.Join(full, "   ")
	if lipgloss.Width(content) > width-frame {
		content = "  " + strings.Join(keys, "  ")
	}
	return theme.Bar.Width(width).Render(content)
}

// RenderFrame stacks header, content and footer, sizing the content to
// fill the remaining height.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).Render(content),
		footer,
	)
}

func gap(n int) string {
	return strings.Repeat(" ", max(n, 1))
}
