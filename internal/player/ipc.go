package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// ipcTimeout bounds every socket interaction. The player answers property
// reads in well under this; anything slower is treated as unavailable.
const ipcTimeout = 100 * time.Millisecond

// IPCErrorKind classifies an IPC failure.
type IPCErrorKind int

const (
	// IPCTransport covers dial and read/write failures on the socket.
	IPCTransport IPCErrorKind = iota
	// IPCTimeout means the player did not answer within the deadline.
	IPCTimeout
	// IPCProtocol means the player answered with an error or malformed JSON.
	IPCProtocol
)

func (k IPCErrorKind) String() string {
	switch k {
	case IPCTransport:
		return "transport"
	case IPCTimeout:
		return "timeout"
	case IPCProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// IPCError is a typed player IPC failure. Callers inspect Kind to decide
// whether to swallow (the usual case during playback) or propagate.
type IPCError struct {
	Kind IPCErrorKind
	Err  error
}

func (e *IPCError) Error() string {
	return fmt.Sprintf("player ipc %s error: %v", e.Kind, e.Err)
}

func (e *IPCError) Unwrap() error {
	return e.Err
}

// ipcClient issues one-shot commands over the player's unix socket using the
// {"command": [...]} line protocol. Each call dials a fresh connection; the
// socket lives only as long as the current track's process.
type ipcClient struct {
	socketPath string
	timeout    time.Duration
}

func newIPCClient(socketPath string) *ipcClient {
	return &ipcClient{socketPath: socketPath, timeout: ipcTimeout}
}

// ipcResponse is a command reply. The player also emits event lines on the
// same socket; those carry "event" instead of "error" and are skipped.
type ipcResponse struct {
	Error string          `json:"error"`
	Data  json.RawMessage `json:"data"`
	Event string          `json:"event"`
}

func classify(err error) *IPCError {
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return &IPCError{Kind: IPCTimeout, Err: err}
	}
	return &IPCError{Kind: IPCTransport, Err: err}
}

// roundTrip sends one command and reads reply lines until the matching
// response arrives or the deadline passes.
func (c *ipcClient) roundTrip(cmd []any) (json.RawMessage, *IPCError) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, classify(err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, &IPCError{Kind: IPCTransport, Err: err}
	}

	payload, err := json.Marshal(map[string]any{"command": cmd})
	if err != nil {
		return nil, &IPCError{Kind: IPCProtocol, Err: err}
	}

	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return nil, classify(err)
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var resp ipcResponse
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			return nil, &IPCError{Kind: IPCProtocol, Err: err}
		}

		if resp.Event != "" {
			continue
		}

		if resp.Error != "success" {
			return nil, &IPCError{Kind: IPCProtocol, Err: fmt.Errorf("player replied %q", resp.Error)}
		}

		return resp.Data, nil
	}

	if err := scanner.Err(); err != nil {
		return nil, classify(err)
	}

	return nil, &IPCError{Kind: IPCTransport, Err: fmt.Errorf("connection closed before reply")}
}

// command sends a command and discards its data.
func (c *ipcClient) command(args ...any) *IPCError {
	_, err := c.roundTrip(args)
	return err
}

// getProperty reads a player property into out.
func (c *ipcClient) getProperty(name string, out any) *IPCError {
	data, ipcErr := c.roundTrip([]any{"get_property", name})
	if ipcErr != nil {
		return ipcErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &IPCError{Kind: IPCProtocol, Err: err}
	}

	return nil
}
