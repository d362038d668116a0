package complaint

import (
	"fmt"
	"strings"
	"time"
)

// CalculateStats derives the complaint counters from a list.
// Total == Pending + InProgress + Resolved whenever every element carries one
// of the three known statuses.
func CalculateStats(complaints []Complaint) Stats {
	stats := Stats{Total: len(complaints)}
	for _, c := range complaints {
		switch c.Status {
		case StatusPending:
			stats.Pending++
		case StatusInProgress:
			stats.InProgress++
		case StatusResolved:
			stats.Resolved++
		}
	}
	return stats
}

// Filter returns the subsequence of `complaints` matching all set predicates
// of `filter` (see QueryFilter). Pure; the input slice is never mutated.
func Filter(complaints []Complaint, filter QueryFilter) []Complaint {
	filter.Clean()
	search := strings.ToLower(filter.Search)

	matched := make([]Complaint, 0, len(complaints))
	for _, c := range complaints {
		matchesSearch := search == "" ||
			strings.Contains(strings.ToLower(c.Title), search) ||
			strings.Contains(strings.ToLower(c.Description), search) ||
			strings.Contains(strings.ToLower(c.StudentName), search) ||
			strings.Contains(strings.ToLower(c.Room), search)

		matchesCategory := filter.Category == "" || c.Category == filter.Category
		matchesPriority := filter.Priority == "" || strings.EqualFold(c.Priority, filter.Priority)
		matchesStatus := filter.Status == "" || c.Status == filter.Status
		matchesBlock := filter.Block == "" || c.Block == filter.Block

		if matchesSearch && matchesCategory && matchesPriority && matchesStatus && matchesBlock {
			matched = append(matched, c)
		}
	}
	return matched
}

// StatusColor maps a status to its display style class.
// Presentation only; computed at the API boundary, never persisted.
func StatusColor(status string) string {
	switch status {
	case StatusPending:
		return "bg-orange-100 text-orange-800"
	case StatusInProgress:
		return "bg-blue-100 text-blue-800"
	case StatusResolved:
		return "bg-green-100 text-green-800"
	default:
		return "bg-gray-100 text-gray-800"
	}
}

// PriorityColor maps a priority to its display style class.
func PriorityColor(priority string) string {
	switch strings.ToLower(priority) {
	case "high":
		return "bg-red-100 text-red-800"
	case "medium":
		return "bg-yellow-100 text-yellow-800"
	case "low":
		return "bg-green-100 text-green-800"
	default:
		return "bg-gray-100 text-gray-800"
	}
}

// FormatDate renders a timestamp in the display form used by dashboards.
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// TimeAgo renders a coarse relative time ("Just now", "5 hours ago", ...).
func TimeAgo(t time.Time) string {
	hours := int(time.Since(t).Hours())
	if hours < 1 {
		return "Just now"
	}
	if hours < 24 {
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%d days ago", days)
	}
	return fmt.Sprintf("%d weeks ago", days/7)
}
