package models

import "time"

// NotificationStyle controls how alarms are surfaced by the dispatcher.
type NotificationStyle string

const (
	NotifySilent     NotificationStyle = "silent"
	NotifyBanner     NotificationStyle = "banner"
	NotifyPersistent NotificationStyle = "persistent"
)

// UserProfile is the singleton operator record for an installation.
type UserProfile struct {
	Name            string            `json:"name"`
	Age             int               `json:"age,omitempty"`
	Timezone        string            `json:"timezone"`
	DailyGoal       int               `json:"daily_goal"`
	JoinedAt        time.Time         `json:"joined_at"`
	MotivationScore int               `json:"motivation_score"`
	EnableSound     bool              `json:"enable_sound"`
	NotifStyle      NotificationStyle `json:"notif_style"`
	Language        string            `json:"language"`
	VoiceName       string            `json:"voice_name,omitempty"`
	CoachAvatar     string            `json:"coach_avatar,omitempty"`
	AlarmSound      string            `json:"alarm_sound,omitempty"`
	Theme           string            `json:"theme,omitempty"`
}

// DefaultProfile returns the profile used before the operator has customized
// anything, and the fallback when the persisted profile is unreadable.
func DefaultProfile(now time.Time) UserProfile {
	tz := "UTC"
	if loc := now.Location(); loc != nil {
		tz = loc.String()
	}
	return UserProfile{
		Name:            "OPERATOR",
		Age:             25,
		Timezone:        tz,
		DailyGoal:       5,
		JoinedAt:        now,
		MotivationScore: 100,
		EnableSound:     true,
		NotifStyle:      NotifyBanner,
		Language:        "en-US",
		VoiceName:       "Charon",
		CoachAvatar:     "tactical",
		Theme:           "light",
	}
}
