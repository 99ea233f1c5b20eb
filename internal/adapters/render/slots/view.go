package slots

import (
	"fmt"
	"math"
	"time"

	"github.com/bnema/saveslots/internal/application"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now        time.Time
	ShowIDs    bool
	DropTitle  bool
	TitleLabel string
}

const defaultTitle = "Preserved Sessions"

func renderView(slots []application.Slot, opts RenderOptions, s styles) string {
	lines := []string{}
	if !opts.DropTitle {
		title := opts.TitleLabel
		if title == "" {
			title = defaultTitle
		}
		lines = append(lines, s.title.Render(title))
	}
	lines = append(lines, s.header.Render(fmt.Sprintf("slots: %d", len(slots))))

	if len(slots) == 0 {
		lines = append(lines, s.empty.Render("No preserved sessions."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, slot := range slots {
		lines = append(lines, renderSlot(slot, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSlot(slot application.Slot, opts RenderOptions, s styles) string {
	marker := "[ ]"
	label := s.slot.Render(slot.Label)
	if slot.Selected {
		marker = "[x]"
		label = s.selected.Render(slot.Label)
	}

	parts := []string{s.marker.Render(marker), " ", label}
	if age := formatAge(slot.SavedAt, opts.Now); age != "" {
		parts = append(parts, " ", s.detail.Render("("+age+")"))
	}
	if opts.ShowIDs {
		parts = append(parts, " ", s.detail.Render(slot.ID))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func formatAge(savedAt, now time.Time) string {
	if now.IsZero() || savedAt.IsZero() {
		return ""
	}
	if !savedAt.Before(now) {
		return "just now"
	}

	elapsed := now.Sub(savedAt)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return plural(int(elapsed.Minutes()), "minute") + " ago"
	case elapsed < 24*time.Hour:
		return plural(int(elapsed.Hours()), "hour") + " ago"
	default:
		return plural(int(math.Floor(elapsed.Hours()/24)), "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
