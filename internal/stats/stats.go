// Package stats computes performance intel over completion logs: adherence,
// temporal heatmaps, trends and achievement progress.
package stats

import (
	"strconv"
	"time"

	"github.com/mindpilot/commandhq/internal/models"
)

// Sector is a temporal bucket for the performance heatmap. The heatmap split
// (morning < 12, afternoon < 17, evening otherwise) intentionally differs
// from the dashboard phase windows, which carve out the small hours.
type Sector struct {
	Period    string
	Successes int
	Failures  int
}

// CategoryRate is the success rate for one habit category.
type CategoryRate struct {
	Name      string
	Rate      int
	Successes int
}

// TrendPoint is one day of the recent trend, oldest first.
type TrendPoint struct {
	Day       string
	Successes int
}

// Report aggregates every metric the stats views and the coach context need.
type Report struct {
	Successes     int
	Failures      int
	GlobalRate    int
	Categories    []CategoryRate
	Heatmap       [3]Sector
	Trend         []TrendPoint
	Volatility    int
	MaxStreak     int
	PerfectDays   int
	MissionsTotal int
}

// Compute builds a full report from the current habits and logs. now anchors
// the 7-day trend and date bucketing.
func Compute(habits []models.Habit, logs []models.CompletionLog, now time.Time) Report {
	r := Report{
		Heatmap: [3]Sector{
			{Period: "morning"},
			{Period: "afternoon"},
			{Period: "evening"},
		},
	}

	byID := make(map[string]models.Habit, len(habits))
	for _, h := range habits {
		byID[h.ID] = h
	}

	type catAgg struct{ total, success int }
	cats := map[string]*catAgg{}
	catOrder := []string{}
	for _, h := range habits {
		if _, ok := cats[h.Category]; !ok {
			cats[h.Category] = &catAgg{}
			catOrder = append(catOrder, h.Category)
		}
	}

	successByDate := map[string]int{}
	for _, l := range logs {
		success := l.Status == models.StatusSuccess
		if success {
			r.Successes++
			successByDate[l.Timestamp.Format("2006-01-02")]++
		} else {
			r.Failures++
		}

		if h, ok := byID[l.HabitID]; ok {
			cats[h.Category].total++
			if success {
				cats[h.Category].success++
			}
		}

		idx := SectorIndex(l.Timestamp.Hour())
		if success {
			r.Heatmap[idx].Successes++
		} else {
			r.Heatmap[idx].Failures++
		}
	}

	r.MissionsTotal = len(logs)
	if r.MissionsTotal > 0 {
		r.GlobalRate = int(float64(r.Successes)/float64(r.MissionsTotal)*100 + 0.5)
	}

	for _, name := range catOrder {
		agg := cats[name]
		cr := CategoryRate{Name: name, Successes: agg.success}
		if agg.total > 0 {
			cr.Rate = int(float64(agg.success)/float64(agg.total)*100 + 0.5)
		}
		r.Categories = append(r.Categories, cr)
	}

	r.Trend = trend7Days(logs, now)

	for _, h := range habits {
		if h.Streak == 0 {
			r.Volatility++
		}
		if h.Streak > r.MaxStreak {
			r.MaxStreak = h.Streak
		}
	}

	// A perfect day requires at least min(len(habits), 3) successes.
	threshold := min(len(habits), 3)
	if threshold > 0 {
		for _, count := range successByDate {
			if count >= threshold {
				r.PerfectDays++
			}
		}
	}

	return r
}

// SectorIndex buckets an hour into the heatmap: 0 morning, 1 afternoon,
// 2 evening.
func SectorIndex(hour int) int {
	switch {
	case hour < 12:
		return 0
	case hour < 17:
		return 1
	default:
		return 2
	}
}

// AdherenceRate formats the global success rate for the coach context, one
// decimal place, or "N/A" when no missions have been logged.
func AdherenceRate(logs []models.CompletionLog) string {
	if len(logs) == 0 {
		return "N/A"
	}
	s := 0
	for _, l := range logs {
		if l.Status == models.StatusSuccess {
			s++
		}
	}
	rate := float64(s) / float64(len(logs)) * 100
	return formatPercent(rate)
}

// History10Days maps the last ten days of one habit's activity, today first.
// 1 is a success, 0 a failure and -1 no log that day.
func History10Days(habitID string, logs []models.CompletionLog, now time.Time) [10]int {
	var out [10]int
	for i := range out {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		out[i] = -1
		for _, l := range logs {
			if l.HabitID == habitID && l.Timestamp.Format("2006-01-02") == day {
				if l.Status == models.StatusSuccess {
					out[i] = 1
				} else {
					out[i] = 0
				}
				break
			}
		}
	}
	return out
}

func formatPercent(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 1, 64) + "%"
}

func trend7Days(logs []models.CompletionLog, now time.Time) []TrendPoint {
	out := make([]TrendPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		key := d.Format("2006-01-02")
		p := TrendPoint{Day: d.Format("Mon")}
		for _, l := range logs {
			if l.Status == models.StatusSuccess && l.Timestamp.Format("2006-01-02") == key {
				p.Successes++
			}
		}
		out = append(out, p)
	}
	return out
}
