package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// ipcCommand is the JSON structure sent to mpv's IPC socket.
type ipcCommand struct {
	Command []interface{} `json:"command"`
}

// ipcResponse is the JSON structure received from mpv's IPC socket.
type ipcResponse struct {
	Data  interface{} `json:"data"`
	Error string      `json:"error"`
	Event string      `json:"event"`
}

const (
	maxRetries   = 3
	retryDelay   = 100 * time.Millisecond
	readDeadline = 1 * time.Second
	readBufSize  = 4096
)

// sendCommand sends one command, retrying transient connection errors.
func (m *MPV) sendCommand(command []interface{}) (interface{}, error) {
	if !m.Running() {
		return nil, errNotStarted
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		result, err := doSendCommand(m.socketPath, command)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ipc command %v failed after %d attempts: %w", command[0], maxRetries, lastErr)
}

func doSendCommand(socketPath string, command []interface{}) (interface{}, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	payload, err := encodeCommand(command)
	if err != nil {
		return nil, err
	}

	if _, err = conn.Write(payload); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	// mpv broadcasts some events to every client, so skip lines until the reply shows up.
	reader := bufio.NewReaderSize(conn, readBufSize)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}

		data, reply, err := decodeResponse(line)
		if reply {
			return data, err
		}
	}
}

// encodeCommand renders a newline-terminated command line.
func encodeCommand(command []interface{}) ([]byte, error) {
	payload, err := json.Marshal(ipcCommand{Command: command})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	return append(payload, '\n'), nil
}

// decodeResponse parses one line. reply is false for event lines.
func decodeResponse(line []byte) (data interface{}, reply bool, err error) {
	var resp ipcResponse
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, true, fmt.Errorf("unmarshal: %w", err)
	}

	if resp.Event != "" {
		return nil, false, nil
	}

	if resp.Error != "" && resp.Error != "success" {
		return nil, true, fmt.Errorf("mpv error: %s", resp.Error)
	}

	return resp.Data, true, nil
}
