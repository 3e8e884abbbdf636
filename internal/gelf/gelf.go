// Package gelf ships standard-library log lines to a Graylog endpoint as
// GELF 1.1 messages over UDP.
package gelf

import (
	"encoding/json"
	"net"
	"os"
	"strings"
	"time"
)

// Syslog levels used for the level field.
const (
	LevelError   = 3
	LevelWarning = 4
	LevelInfo    = 6
)

// message is one GELF 1.1 payload.
type message struct {
	Version      string  `json:"version"`
	Host         string  `json:"host"`
	ShortMessage string  `json:"short_message"`
	Timestamp    float64 `json:"timestamp"`
	Level        int     `json:"level"`
	Service      string  `json:"_service"`
	File         string  `json:"_file,omitempty"`
}

// Writer sends one GELF message per Write. It implements io.Writer so it
// can be combined with stderr via io.MultiWriter and passed to log.SetOutput.
type Writer struct {
	conn     net.Conn
	hostname string
	service  string
	now      func() time.Time
}

// New creates a writer connected to addr (e.g. "graylog:12201").
func New(addr, service string) (*Writer, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, err
	}

	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = service
	}

	return &Writer{conn: conn, hostname: hostname, service: service, now: time.Now}, nil
}

// Close closes the UDP socket.
func (w *Writer) Close() error {
	return w.conn.Close()
}

// Write implements io.Writer. Logging never fails because of the network:
// marshal and send errors are dropped and len(p) is always returned.
func (w *Writer) Write(p []byte) (int, error) {
	short, file := parseLine(strings.TrimRight(string(p), "\n"))

	payload, err := json.Marshal(message{
		Version:      "1.1",
		Host:         w.hostname,
		ShortMessage: short,
		Timestamp:    float64(w.now().UnixNano()) / 1e9,
		Level:        level(short),
		Service:      w.service,
		File:         file,
	})
	if err != nil {
		return len(p), nil
	}

	_, _ = w.conn.Write(payload)
	return len(p), nil
}

// parseLine strips the "2006/01/02 15:04:05 " prefix the standard logger
// writes and splits off a "file.go:12: " location when present.
func parseLine(line string) (msg, file string) {
	msg = line
	if len(msg) > 20 && msg[4] == '/' && msg[7] == '/' && msg[10] == ' ' && msg[13] == ':' {
		msg = msg[20:]
	}
	if loc, rest, ok := strings.Cut(msg, ": "); ok && strings.Contains(loc, ".go:") && !strings.Contains(loc, " ") {
		return rest, loc
	}
	return msg, ""
}

func level(msg string) int {
	switch {
	case strings.Contains(msg, "PANIC:"), strings.Contains(msg, "Fatal"):
		return LevelError
	case strings.HasPrefix(msg, "Warning:"):
		return LevelWarning
	default:
		return LevelInfo
	}
}
