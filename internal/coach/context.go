package coach

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mindpilot/commandhq/internal/models"
	"github.com/mindpilot/commandhq/internal/stats"
)

// Snapshot is the adherence context serialized into the coach's system
// instruction. Field names are part of the prompt contract.
type Snapshot struct {
	OperatorName         string          `json:"operatorName"`
	MotivationScore      int             `json:"motivationScore"`
	JoinedAt             string          `json:"joinedAt"`
	IsDeepAuditRequested bool            `json:"isDeepAuditRequested"`
	CurrentOperations    []OperationView `json:"currentOperations"`
	TemporalHeatmap      Heatmap         `json:"temporalHeatmap"`
	GlobalMetrics        GlobalMetrics   `json:"globalMetrics"`
}

// OperationView is one habit's recent record as the coach sees it.
type OperationView struct {
	Name                   string  `json:"name"`
	Streak                 int     `json:"streak"`
	Category               string  `json:"category"`
	ScheduledTime          string  `json:"scheduledTime"`
	ExecutionHistory10Days [10]int `json:"executionHistory10Days"`
	TotalSuccessCount      int     `json:"totalSuccessCount"`
	TotalFailureCount      int     `json:"totalFailureCount"`
}

type HeatmapCell struct {
	S int `json:"s"`
	F int `json:"f"`
}

type Heatmap struct {
	Morning   HeatmapCell `json:"morning"`
	Afternoon HeatmapCell `json:"afternoon"`
	Evening   HeatmapCell `json:"evening"`
}

type GlobalMetrics struct {
	AdherenceRate   string `json:"adherenceRate"`
	VolatilityScore int    `json:"volatilityScore"`
}

// BuildSnapshot assembles the adherence context for one exchange.
func BuildSnapshot(profile models.UserProfile, habits []models.Habit, logs []models.CompletionLog, deepAudit bool, now time.Time) Snapshot {
	snap := Snapshot{
		OperatorName:         profile.Name,
		MotivationScore:      profile.MotivationScore,
		JoinedAt:             profile.JoinedAt.Format("2006-01-02"),
		IsDeepAuditRequested: deepAudit,
		GlobalMetrics: GlobalMetrics{
			AdherenceRate: stats.AdherenceRate(logs),
		},
	}

	for _, h := range habits {
		if h.Streak == 0 {
			snap.GlobalMetrics.VolatilityScore++
		}

		view := OperationView{
			Name:                   h.Name,
			Streak:                 h.Streak,
			Category:               h.Category,
			ScheduledTime:          h.Time,
			ExecutionHistory10Days: stats.History10Days(h.ID, logs, now),
		}
		for _, l := range logs {
			if l.HabitID != h.ID {
				continue
			}
			if l.Status == models.StatusSuccess {
				view.TotalSuccessCount++
			} else {
				view.TotalFailureCount++
			}
		}
		snap.CurrentOperations = append(snap.CurrentOperations, view)
	}

	for _, l := range logs {
		cell := &snap.TemporalHeatmap.Evening
		switch stats.SectorIndex(l.Timestamp.Hour()) {
		case 0:
			cell = &snap.TemporalHeatmap.Morning
		case 1:
			cell = &snap.TemporalHeatmap.Afternoon
		}
		if l.Status == models.StatusSuccess {
			cell.S++
		} else {
			cell.F++
		}
	}

	return snap
}

// JSON serializes the snapshot for prompt embedding.
func (s Snapshot) JSON() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to serialize coach context: %w", err)
	}
	return string(b), nil
}
