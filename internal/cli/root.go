package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitkeep/internal/models"
	"github.com/julianstephens/habitkeep/internal/storage"
	"github.com/julianstephens/habitkeep/internal/timeutil"
	"github.com/julianstephens/habitkeep/internal/tracker"
)

type Context struct {
	Store   storage.Provider
	Tracker *tracker.Tracker
	Clock   timeutil.Clock
}

var (
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	partialStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle    = lipgloss.NewStyle().Bold(true)
)

// StyleForStatus returns the lipgloss style for a day cell.
func StyleForStatus(status *models.Status) lipgloss.Style {
	if status == nil {
		return mutedStyle
	}
	switch *status {
	case models.StatusCompleted:
		return completedStyle
	case models.StatusPartial:
		return partialStyle
	case models.StatusFailed:
		return failedStyle
	default:
		return mutedStyle
	}
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "all" || part == "daily" {
			return []time.Weekday{
				time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
				time.Thursday, time.Friday, time.Saturday,
			}, nil
		}
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
		} else {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err == nil && num >= 0 && num <= 6 {
				weekdays = append(weekdays, time.Weekday(num))
			} else {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}

	return weekdays, nil
}

// FormatWeekdays renders a weekday list as short names in calendar order.
func FormatWeekdays(days []time.Weekday) string {
	if len(days) == 7 {
		return "daily"
	}
	sorted := make([]time.Weekday, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	names := make([]string, 0, len(sorted))
	for _, wd := range sorted {
		names = append(names, wd.String()[:3])
	}
	return strings.Join(names, ",")
}

// resolveDate returns today's date when the flag is empty, otherwise parses it.
func resolveDate(ctx *Context, dateStr string) (time.Time, error) {
	if dateStr == "" {
		return ctx.Clock.Now(), nil
	}
	return timeutil.ParseDate(dateStr)
}
