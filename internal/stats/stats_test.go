package stats_test

import (
	"testing"
	"time"

	"github.com/mindpilot/commandhq/internal/models"
	"github.com/mindpilot/commandhq/internal/stats"
)

var statsNow = time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

func logAt(habitID string, status models.CompletionStatus, t time.Time) models.CompletionLog {
	return models.CompletionLog{ID: "l-" + t.Format("0102-1504"), HabitID: habitID, Status: status, Timestamp: t}
}

func TestComputeGlobalAndCategoryRates(t *testing.T) {
	habits := []models.Habit{
		{ID: "h1", Name: "Run", Category: "Fitness", Streak: 4},
		{ID: "h2", Name: "Read", Category: "Mind", Streak: 0},
	}
	logs := []models.CompletionLog{
		logAt("h1", models.StatusSuccess, statsNow.Add(-1*time.Hour)),
		logAt("h1", models.StatusSuccess, statsNow.Add(-25*time.Hour)),
		logAt("h1", models.StatusFail, statsNow.Add(-49*time.Hour)),
		logAt("h2", models.StatusFail, statsNow.Add(-2*time.Hour)),
	}

	r := stats.Compute(habits, logs, statsNow)

	if r.Successes != 2 || r.Failures != 2 {
		t.Errorf("got %d successes / %d failures", r.Successes, r.Failures)
	}
	if r.GlobalRate != 50 {
		t.Errorf("expected global rate 50, got %d", r.GlobalRate)
	}
	if len(r.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(r.Categories))
	}
	if r.Categories[0].Name != "Fitness" || r.Categories[0].Rate != 67 {
		t.Errorf("unexpected fitness rate: %+v", r.Categories[0])
	}
	if r.Categories[1].Name != "Mind" || r.Categories[1].Rate != 0 {
		t.Errorf("unexpected mind rate: %+v", r.Categories[1])
	}
	if r.Volatility != 1 {
		t.Errorf("expected volatility 1 (one habit at streak 0), got %d", r.Volatility)
	}
	if r.MaxStreak != 4 {
		t.Errorf("expected max streak 4, got %d", r.MaxStreak)
	}
}

func TestComputeHeatmapBuckets(t *testing.T) {
	habits := []models.Habit{{ID: "h1", Category: "X"}}
	day := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	logs := []models.CompletionLog{
		logAt("h1", models.StatusSuccess, day.Add(8*time.Hour)),  // morning
		logAt("h1", models.StatusFail, day.Add(13*time.Hour)),    // afternoon
		logAt("h1", models.StatusSuccess, day.Add(21*time.Hour)), // evening
		logAt("h1", models.StatusSuccess, day.Add(2*time.Hour)),  // 02:00 counts as morning here
	}

	r := stats.Compute(habits, logs, statsNow)

	if r.Heatmap[0].Successes != 2 {
		t.Errorf("morning successes = %d, want 2", r.Heatmap[0].Successes)
	}
	if r.Heatmap[1].Failures != 1 {
		t.Errorf("afternoon failures = %d, want 1", r.Heatmap[1].Failures)
	}
	if r.Heatmap[2].Successes != 1 {
		t.Errorf("evening successes = %d, want 1", r.Heatmap[2].Successes)
	}
}

func TestComputePerfectDays(t *testing.T) {
	habits := []models.Habit{
		{ID: "h1", Category: "A"}, {ID: "h2", Category: "A"},
		{ID: "h3", Category: "A"}, {ID: "h4", Category: "A"},
	}
	perfect := time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC)
	partial := time.Date(2026, 3, 19, 9, 0, 0, 0, time.UTC)
	logs := []models.CompletionLog{
		logAt("h1", models.StatusSuccess, perfect),
		logAt("h2", models.StatusSuccess, perfect.Add(time.Hour)),
		logAt("h3", models.StatusSuccess, perfect.Add(2*time.Hour)),
		logAt("h1", models.StatusSuccess, partial),
		logAt("h2", models.StatusFail, partial.Add(time.Hour)),
	}

	r := stats.Compute(habits, logs, statsNow)
	if r.PerfectDays != 1 {
		t.Errorf("expected 1 perfect day, got %d", r.PerfectDays)
	}
}

func TestComputeTrendSpansSevenDays(t *testing.T) {
	habits := []models.Habit{{ID: "h1", Category: "A"}}
	logs := []models.CompletionLog{
		logAt("h1", models.StatusSuccess, statsNow),
		logAt("h1", models.StatusSuccess, statsNow.AddDate(0, 0, -6)),
		logAt("h1", models.StatusSuccess, statsNow.AddDate(0, 0, -8)), // out of window
	}

	r := stats.Compute(habits, logs, statsNow)
	if len(r.Trend) != 7 {
		t.Fatalf("expected 7 trend points, got %d", len(r.Trend))
	}
	if r.Trend[0].Successes != 1 || r.Trend[6].Successes != 1 {
		t.Errorf("unexpected trend endpoints: %+v", r.Trend)
	}
	total := 0
	for _, p := range r.Trend {
		total += p.Successes
	}
	if total != 2 {
		t.Errorf("expected 2 in-window successes, got %d", total)
	}
}

func TestAdherenceRate(t *testing.T) {
	if got := stats.AdherenceRate(nil); got != "N/A" {
		t.Errorf("empty logs: got %q", got)
	}
	logs := []models.CompletionLog{
		{Status: models.StatusSuccess}, {Status: models.StatusSuccess}, {Status: models.StatusFail},
	}
	if got := stats.AdherenceRate(logs); got != "66.7%" {
		t.Errorf("got %q, want 66.7%%", got)
	}
}

func TestHistory10Days(t *testing.T) {
	logs := []models.CompletionLog{
		logAt("h1", models.StatusSuccess, statsNow),
		logAt("h1", models.StatusFail, statsNow.AddDate(0, 0, -2)),
		logAt("other", models.StatusSuccess, statsNow.AddDate(0, 0, -1)),
	}

	h := stats.History10Days("h1", logs, statsNow)
	if h[0] != 1 {
		t.Errorf("today = %d, want 1", h[0])
	}
	if h[1] != -1 {
		t.Errorf("yesterday = %d, want -1 (other habit's log)", h[1])
	}
	if h[2] != 0 {
		t.Errorf("two days ago = %d, want 0", h[2])
	}
	for i := 3; i < 10; i++ {
		if h[i] != -1 {
			t.Errorf("day -%d = %d, want -1", i, h[i])
		}
	}
}

func TestAchievements(t *testing.T) {
	r := stats.Report{Successes: 25, PerfectDays: 4, MaxStreak: 11}
	cats := stats.Achievements(r)
	if len(cats) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(cats))
	}

	finished := cats[0]
	if finished.Current != 25 {
		t.Errorf("finished current = %d", finished.Current)
	}
	if !finished.Badges[2].Unlocked || finished.Badges[3].Unlocked {
		t.Errorf("finished tiers wrong: %+v", finished.Badges)
	}
	if finished.Badges[0].Label != "Finish Habit for The First Time" {
		t.Errorf("unexpected first badge label: %q", finished.Badges[0].Label)
	}

	perfect := cats[1]
	if !perfect.Badges[0].Unlocked || perfect.Badges[1].Unlocked {
		t.Errorf("perfect day tiers wrong: %+v", perfect.Badges)
	}

	streak := cats[2]
	if !streak.Badges[2].Unlocked || streak.Badges[3].Unlocked {
		t.Errorf("streak tiers wrong: %+v", streak.Badges)
	}
}
