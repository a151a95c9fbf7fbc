package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math"
	"net"
	"sync"
	"time"

	"github.com/castdeck/castdeck/log"
	"golang.org/x/time/rate"
)

// timeUpdateInterval bounds how often time-pos changes reach the listener.
const timeUpdateInterval = 250 * time.Millisecond

var observed = []string{"time-pos", "duration", "pause", "eof-reached"}

// mpvEvent is one line mpv pushes to an observing client.
type mpvEvent struct {
	Event string          `json:"event"`
	Name  string          `json:"name"`
	Data  json.RawMessage `json:"data"`
}

// translator turns mpv property changes into Listener calls.
type translator struct {
	mu       sync.Mutex
	listener Listener
	duration float64
	position float64
	throttle *rate.Sometimes
}

func newTranslator(l Listener, interval time.Duration) *translator {
	return &translator{
		listener: l,
		duration: math.NaN(),
		throttle: &rate.Sometimes{Interval: interval},
	}
}

func (t *translator) setListener(l Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listener = l
}

// handle processes a single JSON line. Command replies and unknown events are ignored.
func (t *translator) handle(line []byte) {
	var event mpvEvent
	if err := json.Unmarshal(line, &event); err != nil {
		return
	}

	t.mu.Lock()
	l := t.listener
	t.mu.Unlock()
	if l == nil {
		return
	}

	if event.Event == "property-change" {
		t.property(l, event.Name, event.Data)
	}
}

// number decodes a numeric property value; null means unavailable.
func number(raw json.RawMessage) (float64, bool) {
	var v *float64
	if json.Unmarshal(raw, &v) != nil || v == nil {
		return 0, false
	}
	return *v, true
}

func (t *translator) property(l Listener, name string, raw json.RawMessage) {
	switch name {
	case "time-pos":
		pos, ok := number(raw)
		if !ok {
			return
		}
		t.mu.Lock()
		t.position = pos
		duration := t.duration
		t.mu.Unlock()
		t.throttle.Do(func() {
			l.OnTimeUpdate(pos, duration)
		})
	case "duration":
		duration, ok := number(raw)
		if !ok {
			duration = math.NaN()
		}
		t.mu.Lock()
		t.duration = duration
		pos := t.position
		t.mu.Unlock()
		l.OnTimeUpdate(pos, duration)
	case "pause":
		var paused *bool
		if json.Unmarshal(raw, &paused) != nil || paused == nil {
			return
		}
		if *paused {
			l.OnPause()
		} else {
			l.OnPlay()
		}
	case "eof-reached":
		var eof bool
		if json.Unmarshal(raw, &eof) == nil && eof {
			l.OnEnded()
		}
	}
}

// EventListener holds a persistent IPC connection on which mpv property
// observers are registered and reads their change notifications.
type EventListener struct {
	socketPath string
	conn       net.Conn
	translator *translator
	done       chan struct{}
	mu         sync.Mutex
	listening  bool
}

// NewEventListener creates a listener for the given socket that forwards to l.
func NewEventListener(socketPath string, l Listener) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		translator: newTranslator(l, timeUpdateInterval),
	}
}

// Start connects, registers the observers and starts the read loop.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	// Observers belong to the connection that registered them.
	for id, name := range observed {
		payload, err := encodeCommand([]interface{}{"observe_property", id + 1, name})
		if err != nil {
			_ = conn.Close()
			return err
		}
		if _, err := conn.Write(payload); err != nil {
			_ = conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.done = make(chan struct{})
	el.listening = true

	go el.readLoop(conn, el.done)

	log.Infof("mpv event listener started on %s (observing: %v)", el.socketPath, observed)
	return nil
}

// Stop closes the connection and waits for the read loop to return.
func (el *EventListener) Stop() {
	el.mu.Lock()
	if !el.listening {
		el.mu.Unlock()
		return
	}
	el.listening = false
	conn, done := el.conn, el.done
	el.mu.Unlock()

	_ = conn.Close()
	<-done
}

func (el *EventListener) readLoop(conn net.Conn, done chan struct{}) {
	defer close(done)

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, readBufSize), 1<<20)
	for scanner.Scan() {
		el.translator.handle(scanner.Bytes())
	}

	if err := scanner.Err(); err != nil {
		el.mu.Lock()
		stopping := !el.listening
		el.mu.Unlock()
		if !stopping {
			log.Warnf("event listener read error: %v", err)
		}
	}
}
