package player

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/castdeck/castdeck/constant"
	"github.com/castdeck/castdeck/log"
	"github.com/castdeck/castdeck/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

var errNotStarted = errors.New("mpv is not running")

// MPV drives an idle mpv process over its JSON-IPC socket.
// The process is spawned on the first Open and reused for later items.
type MPV struct {
	binary     string
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when the mpv process exits
	mu         sync.Mutex    // serializes socket writes
	startMu    sync.Mutex
	events     *EventListener
	listener   Listener
}

// NewMPV creates an MPV surface using the given executable. An empty binary means "mpv".
func NewMPV(binary string) *MPV {
	if binary == "" {
		binary = "mpv"
	}
	return &MPV{binary: binary}
}

// Socket returns the IPC socket path, empty until the process is started.
func (m *MPV) Socket() string {
	return m.socketPath
}

func (m *MPV) Listen(l Listener) {
	m.startMu.Lock()
	defer m.startMu.Unlock()
	m.listener = l
	if m.events != nil {
		m.events.translator.setListener(l)
	}
}

// Open loads source paused at normal speed and full volume, starting mpv if necessary.
func (m *MPV) Open(source string) error {
	target, err := sanitizeMediaTarget(source)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if err := m.ensureStarted(); err != nil {
		return err
	}

	// mpv keeps these properties across files.
	for _, p := range []struct {
		name  string
		value interface{}
	}{{"pause", true}, {"speed", 1.0}, {"volume", 100.0}} {
		if err := m.set(p.name, p.value); err != nil {
			return err
		}
	}
	_, err = m.sendCommand([]interface{}{"loadfile", target, "replace"})
	return err
}

func (m *MPV) Play() error {
	return m.set("pause", false)
}

func (m *MPV) Pause() error {
	return m.set("pause", true)
}

// SetPosition seeks to an absolute position. mpv reads negative absolute
// targets as offsets from the end, so they are sent as 0.
func (m *MPV) SetPosition(seconds float64) error {
	if seconds < 0 {
		seconds = 0
	}
	_, err := m.sendCommand([]interface{}{"seek", seconds, "absolute"})
	return err
}

func (m *MPV) SetPlaybackRate(rate float64) error {
	return m.set("speed", rate)
}

// SetVolume maps the 0..1 level onto mpv's 0..100 volume property.
func (m *MPV) SetVolume(level float64) error {
	return m.set("volume", level*100)
}

func (m *MPV) RequestFullscreen() error {
	return m.set("fullscreen", true)
}

func (m *MPV) ExitFullscreen() error {
	return m.set("fullscreen", false)
}

func (m *MPV) IsFullscreenActive() (bool, error) {
	data, err := m.get("fullscreen")
	if err != nil {
		return false, err
	}
	active, ok := data.(bool)
	if !ok {
		return false, fmt.Errorf("property fullscreen: expected bool, got %T", data)
	}
	return active, nil
}

// Running reports whether the mpv process is alive.
func (m *MPV) Running() bool {
	if m.exited == nil {
		return false
	}
	select {
	case <-m.exited:
		return false
	default:
		return true
	}
}

// Close quits mpv, killing it if it does not exit in time, and removes the socket.
func (m *MPV) Close() error {
	m.startMu.Lock()
	defer m.startMu.Unlock()

	if m.events != nil {
		m.events.Stop()
		m.events = nil
	}

	if !m.Running() {
		return nil
	}

	_, _ = m.sendCommand([]interface{}{"quit"})

	select {
	case <-m.exited:
	case <-time.After(quitTimeout):
		log.Warn("mpv did not quit in time, killing it")
		terminate(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

func (m *MPV) ensureStarted() error {
	m.startMu.Lock()
	defer m.startMu.Unlock()

	if m.Running() {
		return nil
	}

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Errorf("generate socket name: %w", err)
	}
	m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("%s-%x.sock", constant.App, randomBytes))

	// Only the socket and window behaviour are forced; everything else comes from the user's mpv.conf.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--idle=yes",
		"--force-window=yes",
		"--keep-open=yes",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--title=%s", constant.App),
	}

	m.cmd = exec.Command(m.binary, args...)
	isolate(m.cmd)
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", m.binary, err)
	}

	exited := make(chan struct{})
	m.exited = exited
	cmd := m.cmd
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			terminate(cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.events = NewEventListener(m.socketPath, m.listener)
	if err := m.events.Start(); err != nil {
		log.Warnf("mpv events unavailable: %v", err)
		m.events = nil
	}

	log.Infof("mpv started (pid %d, socket %s)", cmd.Process.Pid, m.socketPath)
	return nil
}

// waitForSocket polls until the IPC socket accepts connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			_ = conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *MPV) set(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

func (m *MPV) get(property string) (interface{}, error) {
	data, err := m.sendCommand([]interface{}{"get_property", property})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("property %s: nil response", property)
	}
	return data, nil
}

// sanitizeMediaTarget rejects locators that mpv could read as flags
// and anything that is neither http(s) nor a local path.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}
