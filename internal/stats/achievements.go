package stats

import "fmt"

// Badge is one achievement tier with its unlock threshold.
type Badge struct {
	Label    string
	Value    int
	Unlocked bool
}

// AchievementCategory groups badges sharing a progress counter.
type AchievementCategory struct {
	Title   string
	Current int
	Badges  []Badge
}

var (
	finishedTiers    = []int{1, 10, 20, 50, 100, 300}
	perfectDayTiers  = []int{3, 10, 20, 30, 50, 100}
	bestStreakTiers  = []int{3, 5, 10, 15, 30, 90}
	bestStreakLabels = "%d Days Streak"
)

// Achievements derives badge progress from a computed report.
func Achievements(r Report) []AchievementCategory {
	finished := AchievementCategory{Title: "Habits Finished", Current: r.Successes}
	for _, v := range finishedTiers {
		label := fmt.Sprintf("Finish Habit %d Times", v)
		if v == 1 {
			label = "Finish Habit for The First Time"
		}
		finished.Badges = append(finished.Badges, Badge{Label: label, Value: v, Unlocked: r.Successes >= v})
	}

	perfect := AchievementCategory{Title: "Perfect Days", Current: r.PerfectDays}
	for _, v := range perfectDayTiers {
		perfect.Badges = append(perfect.Badges, Badge{
			Label:    fmt.Sprintf("%d Perfect Days", v),
			Value:    v,
			Unlocked: r.PerfectDays >= v,
		})
	}

	streak := AchievementCategory{Title: "Best Streak", Current: r.MaxStreak}
	for _, v := range bestStreakTiers {
		streak.Badges = append(streak.Badges, Badge{
			Label:    fmt.Sprintf(bestStreakLabels, v),
			Value:    v,
			Unlocked: r.MaxStreak >= v,
		})
	}

	return []AchievementCategory{finished, perfect, streak}
}
