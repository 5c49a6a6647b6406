package notifier

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/tomaskoller/arbor/internal/constants"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func writeLockfile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, constants.AgentLockfileName)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindAndValidateAgentProcess(t *testing.T) {
	oldFind := findProcessFunc
	defer func() { findProcessFunc = oldFind }()
	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "arbor-agent"}, nil
	}

	tests := []struct {
		name     string
		content  string
		wantPort string
		wantErr  bool
	}{
		{"valid", "8753|1234|s3cret", "8753", false},
		{"missing secret field", "8753|1234", "", true},
		{"too many fields", "8753|1234|s3cret|extra", "", true},
		{"empty port", "|1234|s3cret", "", true},
		{"non numeric port", "abc|1234|s3cret", "", true},
		{"port out of range", "70000|1234|s3cret", "", true},
		{"non numeric pid", "8753|abc|s3cret", "", true},
		{"empty secret", "8753|1234| ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeLockfile(t, t.TempDir(), tt.content)
			port, secret, err := findAndValidateAgentProcess(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if port != tt.wantPort || secret != "s3cret" {
				t.Errorf("got (%s, %s), want (%s, s3cret)", port, secret, tt.wantPort)
			}
		})
	}
}

func TestFindAndValidateAgentProcessMissingLockfile(t *testing.T) {
	_, _, err := findAndValidateAgentProcess(filepath.Join(t.TempDir(), constants.AgentLockfileName))
	if err == nil {
		t.Fatal("expected error for missing lockfile")
	}
}

func TestFindAndValidateAgentProcessWrongExecutable(t *testing.T) {
	oldFind := findProcessFunc
	defer func() { findProcessFunc = oldFind }()
	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "impostor"}, nil
	}

	path := writeLockfile(t, t.TempDir(), "8753|1234|s3cret")
	if _, _, err := findAndValidateAgentProcess(path); err == nil {
		t.Fatal("expected error for wrong executable name")
	}
}

// startAgent runs a fake agent webhook and wires the lockfile/process seams
// at it. Returns the server for handler inspection.
func startAgent(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	u, err := url.Parse(ts.URL)
	if err != nil {
		t.Fatal(err)
	}

	configRoot := t.TempDir()
	agentDir := filepath.Join(configRoot, constants.AgentIdentifier)
	if err := os.MkdirAll(agentDir, 0700); err != nil {
		t.Fatal(err)
	}
	writeLockfile(t, agentDir, fmt.Sprintf("%s|1234|s3cret", u.Port()))

	oldConfig := userConfigDirFunc
	oldFind := findProcessFunc
	t.Cleanup(func() {
		userConfigDirFunc = oldConfig
		findProcessFunc = oldFind
	})
	userConfigDirFunc = func() (string, error) { return configRoot, nil }
	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "arbor-agent"}, nil
	}

	return ts
}

func TestClientSchedule(t *testing.T) {
	var gotSecret string
	var gotReq struct {
		Hour    int    `json:"hour"`
		Minute  int    `json:"minute"`
		Title   string `json:"title"`
		Body    string `json:"body"`
		Repeats bool   `json:"repeats"`
	}

	startAgent(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schedule" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotSecret = r.Header.Get("X-Arbor-Secret")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Error(err)
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "n-42"})
	}))

	handle, err := New().Schedule(8, 30, "Habit reminder", "read")
	if err != nil {
		t.Fatal(err)
	}
	if handle != "n-42" {
		t.Errorf("handle = %q, want n-42", handle)
	}
	if gotSecret != "s3cret" {
		t.Errorf("secret header = %q", gotSecret)
	}
	if gotReq.Hour != 8 || gotReq.Minute != 30 || !gotReq.Repeats {
		t.Errorf("request = %+v", gotReq)
	}
	if gotReq.Title != "Habit reminder" || gotReq.Body != "read" {
		t.Errorf("content = %q / %q", gotReq.Title, gotReq.Body)
	}
}

func TestClientScheduleEmptyID(t *testing.T) {
	startAgent(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))

	if _, err := New().Schedule(8, 30, "t", "b"); err == nil {
		t.Fatal("expected error for empty schedule id")
	}
}

func TestClientCancelIdempotent(t *testing.T) {
	calls := 0
	startAgent(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		// Agent does not know this handle anymore
		http.Error(w, "unknown id", http.StatusNotFound)
	}))

	if err := New().Cancel("gone"); err != nil {
		t.Fatalf("Cancel of unknown handle must succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestClientCancelServerError(t *testing.T) {
	startAgent(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	if err := New().Cancel("n-1"); err == nil {
		t.Fatal("expected error on agent failure")
	}
}

func TestClientRequestPermission(t *testing.T) {
	for _, granted := range []bool{true, false} {
		t.Run(fmt.Sprintf("granted=%v", granted), func(t *testing.T) {
			startAgent(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/permission" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				json.NewEncoder(w).Encode(map[string]bool{"granted": granted})
			}))

			got, err := New().RequestPermission()
			if err != nil {
				t.Fatal(err)
			}
			if got != granted {
				t.Errorf("granted = %v, want %v", got, granted)
			}
		})
	}
}

func TestClientNoAgent(t *testing.T) {
	configRoot := t.TempDir()
	oldConfig := userConfigDirFunc
	defer func() { userConfigDirFunc = oldConfig }()
	userConfigDirFunc = func() (string, error) { return configRoot, nil }

	if _, err := New().Schedule(8, 30, "t", "b"); err == nil {
		t.Fatal("expected error when no agent lockfile exists")
	}
}
