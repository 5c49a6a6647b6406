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

	"github.com/mitchellh/go-ps"

	"github.com/tomaskoller/arbor/internal/constants"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// Client talks to the local arbor-agent process, which owns the OS
// notification surface. The agent publishes a lockfile with its loopback
// port, pid and a shared secret; every request is authenticated with that
// secret. Client implements reminder.Scheduler.
type Client struct {
	http *http.Client
}

func New() *Client {
	return &Client{
		http: &http.Client{Timeout: constants.AgentClientTimeout},
	}
}

// AgentConfigDir returns the configuration directory used by the
// notification agent.
func AgentConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(configDir, constants.AgentIdentifier), nil
}

// Schedule registers a daily repeating notification with the agent and
// returns the agent's id for it.
func (c *Client) Schedule(hour, minute int, title, body string) (string, error) {
	req := struct {
		Hour    int    `json:"hour"`
		Minute  int    `json:"minute"`
		Title   string `json:"title"`
		Body    string `json:"body"`
		Repeats bool   `json:"repeats"`
	}{Hour: hour, Minute: minute, Title: title, Body: body, Repeats: true}

	var resp struct {
		ID string `json:"id"`
	}
	if err := c.call("/schedule", req, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", errors.New("agent returned an empty schedule id")
	}
	return resp.ID, nil
}

// Cancel removes a scheduled notification. A handle the agent no longer
// knows is treated as already cancelled.
func (c *Client) Cancel(handle string) error {
	req := struct {
		ID string `json:"id"`
	}{ID: handle}

	err := c.call("/cancel", req, nil)
	var se *statusError
	if errors.As(err, &se) && se.code == http.StatusNotFound {
		return nil
	}
	return err
}

// RequestPermission asks the agent whether notifications may be shown,
// prompting the user on first use.
func (c *Client) RequestPermission() (bool, error) {
	var resp struct {
		Granted bool `json:"granted"`
	}
	if err := c.call("/permission", struct{}{}, &resp); err != nil {
		return false, err
	}
	return resp.Granted, nil
}

// EnsureChannel asks the agent to set up its notification channel. The
// agent no-ops on platforms without channels.
func (c *Client) EnsureChannel() error {
	return c.call("/channel", struct{}{}, nil)
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("agent request failed with status %d: %s", e.code, e.body)
}

func (c *Client) call(path string, payload interface{}, out interface{}) error {
	configDir, err := AgentConfigDir()
	if err != nil {
		return err
	}

	port, secret, err := findAndValidateAgentProcess(filepath.Join(configDir, constants.AgentLockfileName))
	if err != nil {
		return err
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://127.0.0.1:%s%s", port, path)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Arbor-Secret", secret)

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return &statusError{code: res.StatusCode, body: strings.TrimSpace(string(body))}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// findAndValidateAgentProcess reads the agent lockfile (port|pid|secret) and
// verifies the recorded process is actually the agent before trusting it.
func findAndValidateAgentProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("arbor-agent is not running")
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
		return "", "", errors.New("arbor-agent process not running")
	}

	if !strings.HasPrefix(process.Executable(), constants.AgentProcessName) {
		return "", "", fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.AgentProcessName, process.Executable())
	}

	return port, secret, nil
}
