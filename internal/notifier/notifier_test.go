package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/myroutine/internal/constants"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func withConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := userConfigDirFunc
	userConfigDirFunc = func() (string, error) { return dir, nil }
	t.Cleanup(func() { userConfigDirFunc = old })
	return dir
}

func withProcess(t *testing.T, executable string) {
	t.Helper()
	old := findProcessFunc
	findProcessFunc = func(pid int) (ps.Process, error) {
		if executable == "" {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: executable}, nil
	}
	t.Cleanup(func() { findProcessFunc = old })
}

func TestGetTrayAppConfigDir(t *testing.T) {
	base := withConfigDir(t)
	trayDir := filepath.Join(base, constants.TrayAppIdentifier)

	dir, err := GetTrayAppConfigDir()
	if err != nil || dir != trayDir {
		t.Errorf("default dir = %q, %v", dir, err)
	}

	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatal(err)
	}
	custom := "/custom/myroutine/dir"
	os.WriteFile(filepath.Join(trayDir, "settings.json"), []byte(fmt.Sprintf(`{"settings": {"lockfile_dir": %q}}`, custom)), 0644)
	if dir, _ := GetTrayAppConfigDir(); dir != custom {
		t.Errorf("custom dir = %q, want %q", dir, custom)
	}

	os.WriteFile(filepath.Join(trayDir, "settings.json"), []byte("{not json"), 0644)
	if dir, _ := GetTrayAppConfigDir(); dir != trayDir {
		t.Errorf("unreadable settings should fall back, got %q", dir)
	}
}

func TestParseLockfile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    endpoint
		wantErr string
	}{
		{name: "valid", content: "8080|12345|s3cret\n", want: endpoint{port: 8080, pid: 12345, secret: "s3cret"}},
		{name: "old two part format", content: "8080|12345", wantErr: "malformed"},
		{name: "garbage", content: "invalid", wantErr: "malformed"},
		{name: "empty secret", content: "8080|12345|", wantErr: "secret"},
		{name: "empty port", content: "|12345|x", wantErr: "port"},
		{name: "port out of range", content: "99999|12345|x", wantErr: "range"},
		{name: "bad pid", content: "8080|abc|x", wantErr: "process ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLockfile(tt.content)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("parseLockfile() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("parseLockfile() = %+v, %v", got, err)
			}
		})
	}
}

func TestFindTray(t *testing.T) {
	lockfile := filepath.Join(t.TempDir(), constants.NotifierLockfileName)

	if _, err := findTray(lockfile); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("missing lockfile error = %v", err)
	}
	os.WriteFile(lockfile, []byte("8080|12345|secret"), 0600)

	withProcess(t, "")
	if _, err := findTray(lockfile); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("dead process error = %v", err)
	}

	withProcess(t, "other-app")
	if _, err := findTray(lockfile); err == nil || !strings.Contains(err.Error(), "other-app") {
		t.Errorf("wrong executable error = %v", err)
	}

	withProcess(t, "myroutine-tray")
	ep, err := findTray(lockfile)
	if err != nil || ep.port != 8080 || ep.secret != "secret" {
		t.Errorf("findTray() = %+v, %v", ep, err)
	}
}

func newTrayServer(t *testing.T, failures int32) (*httptest.Server, *atomic.Int32, int) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get(secretHeader) != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorized"))
			return
		}
		var payload WebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if payload.Text == "fail" || n <= failures {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	parts := strings.Split(server.URL, ":")
	port, _ := strconv.Atoi(parts[len(parts)-1])
	return server, &calls, port
}

func TestSend(t *testing.T) {
	_, _, port := newTrayServer(t, 0)
	n := New()
	ctx := context.Background()

	if err := n.send(ctx, endpoint{port: port, secret: "test-secret"}, WebhookPayload{Text: "hello"}); err != nil {
		t.Errorf("send() failed: %v", err)
	}
	if err := n.send(ctx, endpoint{port: port, secret: "wrong"}, WebhookPayload{Text: "hello"}); err == nil {
		t.Error("expected error for wrong secret")
	}
	if err := n.send(ctx, endpoint{port: port, secret: "test-secret"}, WebhookPayload{Text: "fail"}); err == nil {
		t.Error("expected error for server failure")
	}
}

func TestNotifyRetries(t *testing.T) {
	base := withConfigDir(t)
	withProcess(t, "myroutine-tray")
	_, calls, port := newTrayServer(t, 2)

	trayDir := filepath.Join(base, constants.TrayAppIdentifier)
	os.MkdirAll(trayDir, 0755)
	os.WriteFile(filepath.Join(trayDir, constants.NotifierLockfileName), []byte(fmt.Sprintf("%d|1|test-secret", port)), 0600)

	n := New()
	n.retryDelay = time.Millisecond
	if err := n.Notify(context.Background(), FocusMessage("estudo", 25)); err != nil {
		t.Fatalf("Notify() failed: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server saw %d calls, want 3", got)
	}
}

func TestFocusMessage(t *testing.T) {
	if got := FocusMessage("estudo", 25); !strings.Contains(got, "25 min") {
		t.Errorf("FocusMessage() = %q", got)
	}
	if got := FocusMessage("treino", 0); !strings.Contains(got, "before a full minute") {
		t.Errorf("FocusMessage(0) = %q", got)
	}
}
