package models

// HabitTemplate is a predefined protocol the operator can deploy from the
// library without filling in the full habit form.
type HabitTemplate struct {
	Name        string
	Category    string
	Time        string // HH:MM
	DurationMin int
}

// Habit builds a daily habit from the template. Callers assign identity and
// creation time.
func (t HabitTemplate) Habit() Habit {
	return Habit{
		Name:           t.Name,
		Category:       t.Category,
		Time:           t.Time,
		DurationMin:    t.DurationMin,
		RecurrenceMode: RecurrenceFixed,
		AlertType:      AlertStandard,
	}
}

// HabitTemplates is the built-in protocol library.
var HabitTemplates = []HabitTemplate{
	{Name: "Sleep Schedule", Category: "Health", Time: "22:30", DurationMin: 480},
	{Name: "Wake Up Routine", Category: "Health", Time: "06:30", DurationMin: 30},
	{Name: "Yoga", Category: "Wellness", Time: "07:00", DurationMin: 20},
	{Name: "Workout / Gym", Category: "Fitness", Time: "17:30", DurationMin: 60},
	{Name: "Reading", Category: "Personal Growth", Time: "21:00", DurationMin: 30},
	{Name: "Meditation", Category: "Wellness", Time: "08:00", DurationMin: 15},
	{Name: "Study Session", Category: "Productivity", Time: "14:00", DurationMin: 90},
	{Name: "Writing / Journaling", Category: "Wellness", Time: "22:00", DurationMin: 10},
	{Name: "Water Intake", Category: "Health", Time: "10:00", DurationMin: 2},
	{Name: "Screen-time Control", Category: "Discipline", Time: "20:00", DurationMin: 0},
	{Name: "Gratitude Practice", Category: "Wellness", Time: "08:30", DurationMin: 5},
	{Name: "Personal Project", Category: "Career", Time: "19:00", DurationMin: 60},
}
