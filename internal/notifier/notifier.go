// Package notifier delivers desktop notifications, preferring the tray
// companion app and falling back to the OS notification service.
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

	"github.com/gen2brain/beeep"
	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/waketrack/internal/constants"
	"github.com/julianstephens/waketrack/internal/logger"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
	desktopNotifyFunc = func(title, text string) error { return beeep.Notify(title, text, "") }
)

// Modes accepted by New.
const (
	ModeAuto    = "auto"
	ModeTray    = "tray"
	ModeDesktop = "desktop"
	ModeOff     = "off"
)

type Notifier interface {
	Notify(title, text string) error
}

type WebhookPayload struct {
	Title      string `json:"title,omitempty"`
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// New returns the notifier for mode. Unknown modes behave like auto.
func New(mode string) Notifier {
	beeep.AppName = constants.AppName
	switch mode {
	case ModeOff:
		return Nop{}
	case ModeTray:
		return Tray{}
	case ModeDesktop:
		return Desktop{}
	default:
		return Auto{}
	}
}

type Nop struct{}

func (Nop) Notify(string, string) error { return nil }

// Desktop uses the OS notification service.
type Desktop struct{}

func (Desktop) Notify(title, text string) error {
	return desktopNotifyFunc(title, text)
}

// Tray posts to the webhook of a running tray app.
type Tray struct{}

func (Tray) Notify(title, text string) error {
	trayAppConfigPath, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}

	port, secret, err := findAndValidateTrayProcess(filepath.Join(trayAppConfigPath, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := WebhookPayload{
		Title:      title,
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	}

	var lastErr error
	for attempt := 0; attempt < constants.NotifyMaxRetries; attempt++ {
		if lastErr = sendNotification(port, secret, payload); lastErr == nil {
			return nil
		}
		time.Sleep(constants.NotifyRetryDelay)
	}
	return lastErr
}

// Auto tries the tray app first and the desktop service second.
type Auto struct{}

func (Auto) Notify(title, text string) error {
	err := Tray{}.Notify(title, text)
	if err == nil {
		return nil
	}
	logger.Debug("Tray notification unavailable, using desktop", "error", err)
	return Desktop{}.Notify(title, text)
}

// GetTrayAppConfigDir returns the configuration directory used by the tray application.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	// settings.json may point the lockfile somewhere else
	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err != nil {
		return trayConfigDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err == nil && store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
		return *store.Settings.LockfileDir, nil
	}
	return trayConfigDir, nil
}

// findAndValidateTrayProcess reads "port|pid|secret" from the lockfile and
// checks that pid is a live tray process.
func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", fmt.Errorf("%s is not running", constants.TrayExecutable)
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := strings.TrimSpace(parts[0])
	if port == "" {
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
	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", fmt.Errorf("%s process not running", constants.TrayExecutable)
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayExecutable) {
		return "", "", fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayExecutable, process.Executable())
	}

	return port, secret, nil
}

var httpClient = &http.Client{Timeout: 5 * time.Second}

func sendNotification(port string, secret string, payload WebhookPayload) error {
	url := fmt.Sprintf("http://127.0.0.1:%s", port)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Waketrack-Secret", secret)

	res, err := httpClient.Do(req)
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
