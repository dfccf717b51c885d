// Package coach talks to the Gemini API in the voice of a tactical command
// operator. Every text method substitutes a scripted line when the model
// returns nothing; transport errors surface to the caller.
package coach

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/mindpilot/commandhq/internal/keyring"
)

const (
	flashModel = "gemini-3-flash-preview"
	proModel   = "gemini-3-pro-preview"
	ttsModel   = "gemini-2.5-flash-preview-tts"

	// ChatOfflineLine is shown in place of a coach reply when the API call
	// itself fails.
	ChatOfflineLine = "Signal interference detected."

	chatFallback      = "Awaiting status report. State your objective."
	motivateFallback  = "Discipline is the bridge to excellence. Execute now. Discipline is the baseline."
	ViolationFallback = "Security compromised. Distractions are tactical weaknesses. Secure your perimeter and return to the mission immediately."

	systemInstruction = `
IDENTITY: You are "Personal Command", a high-performance personal coach.
MISSION: Act as a direct, supportive, but strictly disciplined coach for the user (Operator).
CONTEXT: %s
CAPABILITIES:
- Behavioral Analysis: Look at the adherence data and provide coaching feedback.
- Strategic Encouragement: When the operator is doing well, acknowledge the momentum. When they fail, demand immediate correction without excuses.
- Tactical Prescriptions: Offer specific, actionable advice to fix schedule breaches.
TONE: Direct, concise, authoritative, and personalized. Address the user as "Operator" or by their name. Use tactical terminology (Sectors, Integrity, Momentum, Protocol).
CONSTRAINTS: Max 60 words. No corporate fluff. Focus on the raw reality of discipline.`
)

type generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Coach wraps the Gemini client.
type Coach struct {
	gen generateFunc
}

// New builds a coach from an API key. Use ResolveAPIKey to locate one.
func New(ctx context.Context, apiKey string) (*Coach, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("coach API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create coach client: %w", err)
	}
	return &Coach{gen: client.Models.GenerateContent}, nil
}

// ResolveAPIKey finds the Gemini API key: environment first (COMMANDHQ_API_KEY,
// then GEMINI_API_KEY), then the OS keyring.
func ResolveAPIKey() (string, error) {
	if key := os.Getenv("COMMANDHQ_API_KEY"); key != "" {
		return key, nil
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key, nil
	}
	key, err := keyring.GetAPIKey()
	if err != nil {
		return "", fmt.Errorf("no API key configured, set COMMANDHQ_API_KEY or run 'hq auth key': %w", err)
	}
	return key, nil
}

// Chat sends one operator message with the full adherence context attached.
func (c *Coach) Chat(ctx context.Context, userMessage string, snapshot Snapshot) (string, error) {
	contextJSON, err := snapshot.JSON()
	if err != nil {
		return "", err
	}

	resp, err := c.gen(ctx, proModel, genai.Text(userMessage), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(fmt.Sprintf(systemInstruction, contextJSON), genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("coach chat failed: %w", err)
	}
	return textOrFallback(resp, chatFallback), nil
}

// Motivation produces a short briefing for a habit the operator is avoiding.
func (c *Coach) Motivation(ctx context.Context, habitName, intention string) (string, error) {
	prompt := fmt.Sprintf(`COMMANDER BRIEFING: User struggling with "%s". Intention: "%s". Give a high-intensity, discipline-focused motivation (max 25 words). Tone: Elite Military Coach. Use "Discipline is the baseline." at the end.`, habitName, intention)

	resp, err := c.gen(ctx, flashModel, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("motivation briefing failed: %w", err)
	}
	return textOrFallback(resp, motivateFallback), nil
}

// VoiceCallScript writes the script read out when a phone-call alert fires.
func (c *Coach) VoiceCallScript(ctx context.Context, habitName, intention string) (string, error) {
	prompt := fmt.Sprintf(`AUTOMATED TACTICAL CALL: User is starting "%s". Objective: "%s". Write a 30-word verbal script as an AI command operator. Remind them of the mission importance. Keep it cold, professional, and high-stakes.`, habitName, intention)

	resp, err := c.gen(ctx, flashModel, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("voice call script failed: %w", err)
	}
	fallback := fmt.Sprintf("Commander, protocol %s is now active. Neutralize all distractions. Your objective is clear. Execution is the only metric of success. Stand by for mission start.", habitName)
	return textOrFallback(resp, fallback), nil
}

// ViolationBriefing produces the warning shown after a focus breach.
func (c *Coach) ViolationBriefing(ctx context.Context, habitName string) (string, error) {
	prompt := fmt.Sprintf(`ALERT: Perimeter breach for "%s". Provide a cold, firm tactical warning. Remind them that focus is the only currency that matters. Max 35 words. No fluff.`, habitName)

	resp, err := c.gen(ctx, flashModel, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("violation briefing failed: %w", err)
	}
	return textOrFallback(resp, ViolationFallback), nil
}

// Speech renders text to PCM audio with the configured prebuilt voice. An
// empty voice name falls back to Kore.
func (c *Coach) Speech(ctx context.Context, text, voiceName string) ([]byte, error) {
	if voiceName == "" {
		voiceName = "Kore"
	}

	resp, err := c.gen(ctx, ttsModel, genai.Text(text), &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voiceName},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}
	return nil, fmt.Errorf("no audio returned")
}

func textOrFallback(resp *genai.GenerateContentResponse, fallback string) string {
	if resp == nil {
		return fallback
	}
	if text := resp.Text(); text != "" {
		return text
	}
	return fallback
}
