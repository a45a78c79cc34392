package viewmodel

import (
	"sort"
	"time"

	"taskan/internal/models"
)

const (
	monthWidthPx   = 300.0
	minContentPx   = 1200.0
	hoursPerDay    = 24.0
	fallbackMonths = 3
)

// Marker is one dated task plotted on the timeline.
type Marker struct {
	TaskID      string            `json:"task_id"`
	Title       string            `json:"title"`
	Status      models.TaskStatus `json:"status"`
	DueDate     time.Time         `json:"due_date"`
	LeftPercent float64           `json:"left_percent"`
}

// Row is one period's lane on the timeline. Undated tasks never appear
// here; they stay visible in the roadmap and statistics views.
type Row struct {
	PeriodID string   `json:"period_id"`
	Title    string   `json:"title"`
	Markers  []Marker `json:"markers"`
}

// TimelineModel is the shared horizontal time axis plus every period lane.
// Start and End always fall on month boundaries, so the range spans whole
// months and strictly contains the latest due date.
type TimelineModel struct {
	Start      time.Time   `json:"start"`
	End        time.Time   `json:"end"`
	TotalDays  float64     `json:"total_days"`
	GridLabels []time.Time `json:"grid_labels"`
	Rows       []Row       `json:"rows"`
}

// Timeline derives the chronological view of a project. With no dated
// tasks it falls back to a three-month placeholder window around now, so
// the grid still renders. Otherwise the scale runs from the first day of
// the earliest due month to the first day of the month after the latest
// due month, with one grid label per month boundary.
func Timeline(p models.Project, now time.Time) TimelineModel {
	periods := make([]models.Period, len(p.Periods))
	copy(periods, p.Periods)
	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].Position < periods[j].Position
	})

	var minDue, maxDue time.Time
	dated := 0
	for _, period := range periods {
		for _, t := range period.Tasks {
			if t.DueDate == nil {
				continue
			}
			d := *t.DueDate
			if dated == 0 || d.Before(minDue) {
				minDue = d
			}
			if dated == 0 || d.After(maxDue) {
				maxDue = d
			}
			dated++
		}
	}

	if dated == 0 {
		// Normalize before subtracting: AddDate on a month-end day can
		// overflow into the wrong month (Mar 31 - 1 month = Mar 2).
		start := monthStart(now).AddDate(0, -1, 0)
		end := monthStart(now).AddDate(0, 2, 0)
		rows := make([]Row, 0, len(periods))
		for _, period := range periods {
			rows = append(rows, Row{PeriodID: period.ID, Title: period.Title})
		}
		return TimelineModel{
			Start:      start,
			End:        end,
			TotalDays:  daysBetween(start, end),
			GridLabels: monthLabels(start, end),
			Rows:       rows,
		}
	}

	start := monthStart(minDue)
	end := monthStart(maxDue).AddDate(0, 1, 0)
	totalDays := daysBetween(start, end)

	rows := make([]Row, 0, len(periods))
	for _, period := range periods {
		var markers []Marker
		for _, t := range period.Tasks {
			if t.DueDate == nil {
				continue
			}
			left := 0.0
			if totalDays > 0 {
				left = daysBetween(start, *t.DueDate) / totalDays * 100
			}
			markers = append(markers, Marker{
				TaskID:      t.ID,
				Title:       t.Title,
				Status:      t.Status,
				DueDate:     *t.DueDate,
				LeftPercent: left,
			})
		}
		sort.SliceStable(markers, func(i, j int) bool {
			return markers[i].DueDate.Before(markers[j].DueDate)
		})
		rows = append(rows, Row{PeriodID: period.ID, Title: period.Title, Markers: markers})
	}

	return TimelineModel{
		Start:      start,
		End:        end,
		TotalDays:  totalDays,
		GridLabels: monthLabels(start, end),
		Rows:       rows,
	}
}

// ContentWidth converts a grid-label count and zoom scale into the
// rendered width of the timeline content. The floor keeps short ranges
// usable.
func ContentWidth(labelCount int, scale float64) float64 {
	months := labelCount
	if months <= 1 {
		months = fallbackMonths
	}
	base := float64(months) * monthWidthPx
	if base < minContentPx {
		base = minContentPx
	}
	return base * scale
}

// monthStart truncates t to the first of its month in UTC. The instant is
// converted to UTC before reading the calendar fields, so a zoned time
// near a month boundary lands in the month of its UTC instant.
func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func monthLabels(start, end time.Time) []time.Time {
	var labels []time.Time
	for d := start; d.Before(end); d = d.AddDate(0, 1, 0) {
		labels = append(labels, d)
	}
	return labels
}

func daysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / hoursPerDay
}
