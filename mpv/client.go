package mpv

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

const (
	// DefaultSocketPath is the default Unix socket path for mpv IPC.
	DefaultSocketPath = "/tmp/trim-timeline-mpv.sock"
	// DefaultTimeout bounds one request/response exchange.
	DefaultTimeout = 2 * time.Second
)

var (
	// ErrNotConnected is returned when attempting operations on a disconnected client.
	ErrNotConnected = errors.New("mpv: not connected")
	// ErrSocketNotFound is returned when the socket file doesn't exist.
	ErrSocketNotFound = errors.New("mpv: socket not found - is mpv running with --input-ipc-server?")
)

// ipcRequest represents a JSON IPC request to mpv.
type ipcRequest struct {
	Command   []interface{} `json:"command"`
	RequestID uint64        `json:"request_id"`
}

// ipcResponse represents a JSON IPC reply or event from mpv.
type ipcResponse struct {
	Data      interface{} `json:"data"`
	RequestID uint64      `json:"request_id"`
	Error     string      `json:"error"`
	Event     string      `json:"event"`
}

// PlaybackState is one snapshot of the properties the trimmer polls.
type PlaybackState struct {
	TimePos    float64
	Paused     bool
	EOFReached bool
}

// Client is an mpv IPC client that communicates via Unix socket.
// It is safe for concurrent use; exchanges are serialized.
type Client struct {
	socketPath string
	// Timeout bounds each exchange; zero means DefaultTimeout.
	Timeout time.Duration

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
	nextID uint64
}

// NewClient creates a new mpv IPC client.
// If socketPath is empty, DefaultSocketPath is used.
func NewClient(socketPath string) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	return &Client{socketPath: socketPath}
}

// Connect establishes a connection to the mpv IPC socket.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}

	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSocketNotFound, err)
	}

	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

// Close closes the connection to mpv.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropLocked()
}

func (c *Client) dropLocked() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	return err
}

// IsConnected returns true if the client is connected to mpv.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// SocketPath returns the socket path this client is configured to use.
func (c *Client) SocketPath() string {
	return c.socketPath
}

// GetProperty retrieves the value of an mpv property ("time-pos", "pause", ...).
func (c *Client) GetProperty(name string) (interface{}, error) {
	return c.command("get_property", name)
}

// SetProperty sets the value of an mpv property.
func (c *Client) SetProperty(name string, value interface{}) error {
	_, err := c.command("set_property", name, value)
	return err
}

// State fetches position, pause and EOF in a single pipelined exchange so the
// playback tick costs one round trip.
func (c *Client) State() (PlaybackState, error) {
	results, err := c.exchange(
		[]interface{}{"get_property", "time-pos"},
		[]interface{}{"get_property", "pause"},
		[]interface{}{"get_property", "eof-reached"},
	)
	if err != nil {
		return PlaybackState{}, err
	}
	var s PlaybackState
	if s.TimePos, err = toFloat64(results[0]); err != nil {
		return PlaybackState{}, err
	}
	if s.Paused, err = toBool("pause", results[1]); err != nil {
		return PlaybackState{}, err
	}
	if s.EOFReached, err = toBool("eof-reached", results[2]); err != nil {
		return PlaybackState{}, err
	}
	return s, nil
}

// SeekAbsolute seeks to seconds with exact precision.
func (c *Client) SeekAbsolute(seconds float64) error {
	_, err := c.command("seek", seconds, "absolute+exact")
	return err
}

// SetPaused pauses or resumes playback.
func (c *Client) SetPaused(paused bool) error {
	return c.SetProperty("pause", paused)
}

// TogglePause flips the pause state.
func (c *Client) TogglePause() error {
	_, err := c.command("cycle", "pause")
	return err
}

// LoadFile replaces the current file.
func (c *Client) LoadFile(path string) error {
	_, err := c.command("loadfile", path, "replace")
	return err
}

func toBool(name string, v interface{}) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("mpv: unexpected %s value type: %T", name, v)
	}
	return b, nil
}

// toFloat64 converts a decoded JSON number. mpv reports unavailable
// properties (no file loaded) as null.
func toFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("mpv: unexpected numeric value type: %T", v)
	}
}

func (c *Client) command(args ...interface{}) (interface{}, error) {
	results, err := c.exchange(args)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// exchange writes every command as one newline-terminated JSON line and then
// reads until each has been answered. Event lines are skipped. A timeout or
// broken pipe drops the connection, since replies can no longer be matched.
func (c *Client) exchange(commands ...[]interface{}) ([]interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, ErrNotConnected
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if err := c.conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return nil, fmt.Errorf("mpv: set deadline: %w", err)
	}

	first := c.nextID + 1
	var buf []byte
	for _, cmd := range commands {
		c.nextID++
		data, err := json.Marshal(ipcRequest{Command: cmd, RequestID: c.nextID})
		if err != nil {
			return nil, fmt.Errorf("mpv: failed to marshal command: %w", err)
		}
		buf = append(append(buf, data...), '\n')
	}
	if _, err := c.conn.Write(buf); err != nil {
		c.dropLocked()
		return nil, fmt.Errorf("mpv: failed to send command: %w", err)
	}

	results := make([]interface{}, len(commands))
	var firstErr error
	for remaining := len(commands); remaining > 0; {
		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			c.dropLocked()
			return nil, fmt.Errorf("mpv: failed to read response: %w", err)
		}

		var resp ipcResponse
		if err := json.Unmarshal(line, &resp); err != nil || resp.Event != "" {
			continue
		}
		if resp.RequestID < first || resp.RequestID > c.nextID {
			continue
		}
		remaining--
		if resp.Error != "" && resp.Error != "success" {
			if firstErr == nil {
				firstErr = fmt.Errorf("mpv: %s: %s", commands[resp.RequestID-first][0], resp.Error)
			}
			continue
		}
		results[resp.RequestID-first] = resp.Data
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
