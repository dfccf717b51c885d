// Package notifier dispatches alarms to the desktop tray companion over its
// localhost webhook. The tray app writes a lockfile ("port|pid|secret") on
// startup; we validate the pid actually belongs to the tray before posting.
package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/mindpilot/commandhq/internal/constants"
	"github.com/mindpilot/commandhq/internal/models"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

type Notifier struct{}

type WebhookPayload struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	HabitID    string `json:"habit_id,omitempty"`
	DurationMs uint32 `json:"duration_ms"`
	AlertType  string `json:"alert_type,omitempty"`
}

func New() *Notifier {
	return &Notifier{}
}

// DecorateTitle prefixes the alarm title per the habit's alert type.
func DecorateTitle(name string, alertType models.AlertType) string {
	switch alertType {
	case models.AlertPhoneCall:
		return "INCOMING CALL: " + name
	case models.AlertVoiceAI:
		return "NEURAL UPLINK: " + name
	default:
		return "HABIT PROTOCOL: " + name
	}
}

// NotifyHabit raises the alarm for a due habit, honoring the operator's
// notification style. Silent mode swallows the alarm entirely; the trigger
// stamp has already been written, so nothing repeats.
func (n *Notifier) NotifyHabit(h models.Habit, style models.NotificationStyle) error {
	if style == models.NotifySilent {
		return nil
	}

	duration := uint32(constants.NotificationDurationMs)
	if style == models.NotifyPersistent {
		duration = constants.PersistentDurationMs
	}

	body := h.Intention
	if body == "" {
		body = fmt.Sprintf("Scheduled for %s. Report status when complete.", h.Time)
	}

	return n.send(WebhookPayload{
		Title:      DecorateTitle(h.Name, h.AlertType),
		Body:       body,
		HabitID:    h.ID,
		DurationMs: duration,
		AlertType:  string(h.AlertType),
	})
}

// Notify raises a plain informational notification.
func (n *Notifier) Notify(title, body string) error {
	return n.send(WebhookPayload{
		Title:      title,
		Body:       body,
		DurationMs: constants.NotificationDurationMs,
	})
}

func (n *Notifier) send(payload WebhookPayload) error {
	trayAppConfigPath, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}

	port, secret, err := findAndValidateTrayProcess(filepath.Join(trayAppConfigPath, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt < constants.NotifyMaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(constants.NotifyRetryDelay)
		}
		if lastErr = postNotification(port, secret, payload); lastErr == nil {
			return nil
		}
	}
	return lastErr
}

// GetTrayAppConfigDir returns the configuration directory used by the tray
// application, honoring a custom lockfile dir from its settings.json.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	settingsPath := filepath.Join(trayConfigDir, "settings.json")
	if _, err := os.Stat(settingsPath); err == nil {
		data, err := os.ReadFile(settingsPath)
		if err == nil {
			var store struct {
				Settings struct {
					LockfileDir *string `json:"lockfile_dir"`
				} `json:"settings"`
			}
			if err := json.Unmarshal(data, &store); err == nil {
				if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
					return *store.Settings.LockfileDir, nil
				}
			}
		}
	}

	return trayConfigDir, nil
}

func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("commandhq-tray is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := parts[0]
	if strings.TrimSpace(port) == "" {
		return "", "", errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", errors.New("commandhq-tray process not running")
	}

	if !strings.HasPrefix(process.Executable(), "commandhq-tray") {
		return "", "", fmt.Errorf("process with PID %d is not commandhq-tray (is %s)", pid, process.Executable())
	}

	return port, secret, nil
}

func postNotification(port string, secret string, payload WebhookPayload) error {
	url := fmt.Sprintf("http://127.0.0.1:%s", port)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-CommandHQ-Secret", secret)

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
}
