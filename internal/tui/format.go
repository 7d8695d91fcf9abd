package tui

import (
	"fmt"
	"strings"
	"time"
)

// wrapText wraps text to fit within width, with optional indent for continuation lines.
// maxLines limits output; 0 means unlimited. Truncates with "..." if exceeded.
func wrapText(text string, width int, indent string, maxLines int) string {
	if width <= 0 {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	currentLine := words[0]
	firstLine := true
	contWidth := width - len(indent)

	for _, word := range words[1:] {
		lineWidth := width
		if !firstLine {
			lineWidth = contWidth
		}

		if len(currentLine)+1+len(word) <= lineWidth {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			if maxLines > 0 && len(lines) >= maxLines {
				last := lines[len(lines)-1]
				if len(last) > 3 {
					lines[len(lines)-1] = last[:len(last)-3] + "..."
				}
				return strings.Join(lines, "\n")
			}
			firstLine = false
			currentLine = indent + word
		}
	}
	lines = append(lines, currentLine)

	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		last := lines[len(lines)-1]
		if len(last) > 3 {
			lines[len(lines)-1] = last[:len(last)-3] + "..."
		}
	}

	return strings.Join(lines, "\n")
}

func sectionHeader(title string, width int) string {
	padding := max(1, (width-len(title)-2)/2)
	line := strings.Repeat("─", padding)
	return labelStyle.Render(line+" ") + valueStyle.Render(title) + labelStyle.Render(" "+line)
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
