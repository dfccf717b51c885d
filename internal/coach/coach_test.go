package coach

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"google.golang.org/genai"

	"github.com/mindpilot/commandhq/internal/models"
)

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: text}}}},
		},
	}
}

func fakeCoach(resp *genai.GenerateContentResponse, err error) (*Coach, *struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}) {
	captured := &struct {
		model    string
		contents []*genai.Content
		config   *genai.GenerateContentConfig
	}{}
	c := &Coach{gen: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		captured.model = model
		captured.contents = contents
		captured.config = config
		return resp, err
	}}
	return c, captured
}

func TestMotivationUsesFlashModel(t *testing.T) {
	c, captured := fakeCoach(textResponse("Move."), nil)

	got, err := c.Motivation(context.Background(), "Morning Run", "stay sharp")
	if err != nil {
		t.Fatalf("motivation: %v", err)
	}
	if got != "Move." {
		t.Errorf("unexpected reply: %q", got)
	}
	if captured.model != "gemini-3-flash-preview" {
		t.Errorf("unexpected model: %q", captured.model)
	}
}

func TestMotivationFallbackOnEmptyResponse(t *testing.T) {
	c, _ := fakeCoach(&genai.GenerateContentResponse{}, nil)

	got, err := c.Motivation(context.Background(), "Morning Run", "stay sharp")
	if err != nil {
		t.Fatalf("motivation: %v", err)
	}
	if !strings.Contains(got, "Discipline is the baseline.") {
		t.Errorf("expected scripted fallback, got %q", got)
	}
}

func TestMotivationErrorSurfaces(t *testing.T) {
	c, _ := fakeCoach(nil, errors.New("quota exhausted"))
	if _, err := c.Motivation(context.Background(), "X", "Y"); err == nil {
		t.Error("expected transport error to surface")
	}
}

func TestVoiceCallScriptFallbackNamesHabit(t *testing.T) {
	c, _ := fakeCoach(&genai.GenerateContentResponse{}, nil)

	got, err := c.VoiceCallScript(context.Background(), "Deep Work", "")
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if !strings.Contains(got, "protocol Deep Work is now active") {
		t.Errorf("fallback should name the habit: %q", got)
	}
}

func TestViolationBriefingFallback(t *testing.T) {
	c, _ := fakeCoach(&genai.GenerateContentResponse{}, nil)

	got, err := c.ViolationBriefing(context.Background(), "Deep Work")
	if err != nil {
		t.Fatalf("briefing: %v", err)
	}
	if !strings.Contains(got, "Security compromised.") {
		t.Errorf("unexpected fallback: %q", got)
	}
}

func TestChatAttachesContext(t *testing.T) {
	c, captured := fakeCoach(textResponse("Hold the line, Operator."), nil)

	snap := Snapshot{OperatorName: "VIPER", MotivationScore: 80}
	got, err := c.Chat(context.Background(), "status report", snap)
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if got != "Hold the line, Operator." {
		t.Errorf("unexpected reply: %q", got)
	}
	if captured.model != "gemini-3-pro-preview" {
		t.Errorf("unexpected model: %q", captured.model)
	}
	if captured.config == nil || captured.config.SystemInstruction == nil {
		t.Fatal("expected system instruction")
	}
	instr := captured.config.SystemInstruction.Parts[0].Text
	if !strings.Contains(instr, `"operatorName":"VIPER"`) {
		t.Errorf("context not embedded in system instruction: %s", instr)
	}
}

func TestChatFallbackOnEmptyResponse(t *testing.T) {
	c, _ := fakeCoach(&genai.GenerateContentResponse{}, nil)

	got, err := c.Chat(context.Background(), "hello", Snapshot{})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if got != "Awaiting status report. State your objective." {
		t.Errorf("unexpected fallback: %q", got)
	}
}

func TestSpeechExtractsAudio(t *testing.T) {
	audio := []byte{0x01, 0x02, 0x03}
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{InlineData: &genai.Blob{Data: audio, MIMEType: "audio/pcm"}},
			}}},
		},
	}
	c, captured := fakeCoach(resp, nil)

	got, err := c.Speech(context.Background(), "mission start", "")
	if err != nil {
		t.Fatalf("speech: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("unexpected audio payload: %v", got)
	}
	if captured.model != "gemini-2.5-flash-preview-tts" {
		t.Errorf("unexpected model: %q", captured.model)
	}
	if captured.config.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName != "Kore" {
		t.Error("expected default voice Kore")
	}
}

func TestSpeechNoAudioErrors(t *testing.T) {
	c, _ := fakeCoach(&genai.GenerateContentResponse{}, nil)
	if _, err := c.Speech(context.Background(), "x", "Charon"); err == nil {
		t.Error("expected error when no audio returned")
	}
}

func TestBuildSnapshot(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	profile := models.UserProfile{
		Name:            "VIPER",
		MotivationScore: 85,
		JoinedAt:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	habits := []models.Habit{
		{ID: "h1", Name: "Run", Category: "Fitness", Time: "07:00", Streak: 4},
		{ID: "h2", Name: "Read", Category: "Mind", Time: "21:00", Streak: 0},
	}
	logs := []models.CompletionLog{
		{HabitID: "h1", Status: models.StatusSuccess, Timestamp: now.Add(-4 * time.Hour)},       // morning
		{HabitID: "h1", Status: models.StatusFail, Timestamp: now.AddDate(0, 0, -1)},            // afternoon
		{HabitID: "h2", Status: models.StatusSuccess, Timestamp: now.AddDate(0, 0, -2).Add(9 * time.Hour)}, // evening
	}

	snap := BuildSnapshot(profile, habits, logs, true, now)

	if snap.OperatorName != "VIPER" || snap.MotivationScore != 85 {
		t.Errorf("profile fields wrong: %+v", snap)
	}
	if snap.JoinedAt != "2026-01-01" {
		t.Errorf("joinedAt = %q", snap.JoinedAt)
	}
	if !snap.IsDeepAuditRequested {
		t.Error("deep audit flag lost")
	}
	if len(snap.CurrentOperations) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(snap.CurrentOperations))
	}
	run := snap.CurrentOperations[0]
	if run.TotalSuccessCount != 1 || run.TotalFailureCount != 1 {
		t.Errorf("run counts wrong: %+v", run)
	}
	if run.ExecutionHistory10Days[0] != 1 {
		t.Errorf("today's history should be success: %v", run.ExecutionHistory10Days)
	}
	if snap.GlobalMetrics.VolatilityScore != 1 {
		t.Errorf("volatility = %d, want 1", snap.GlobalMetrics.VolatilityScore)
	}
	if snap.GlobalMetrics.AdherenceRate != "66.7%" {
		t.Errorf("adherence = %q", snap.GlobalMetrics.AdherenceRate)
	}
	if snap.TemporalHeatmap.Morning.S != 1 || snap.TemporalHeatmap.Afternoon.F != 1 || snap.TemporalHeatmap.Evening.S != 1 {
		t.Errorf("heatmap wrong: %+v", snap.TemporalHeatmap)
	}

	// The serialized form keeps the exact field names the prompt expects.
	out, err := snap.JSON()
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"operatorName", "motivationScore", "joinedAt", "isDeepAuditRequested", "currentOperations", "temporalHeatmap", "globalMetrics"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("serialized snapshot missing %q", key)
		}
	}
}
