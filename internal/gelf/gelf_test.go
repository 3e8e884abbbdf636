package gelf

import (
	"encoding/json"
	"log"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantMsg  string
		wantFile string
	}{
		{"plain", "server started", "server started", ""},
		{"date prefix", "2024/03/15 10:00:00 server started", "server started", ""},
		{"date and file", "2024/03/15 10:00:00 main.go:42: server started", "server started", "main.go:42"},
		{"colon in message", "2024/03/15 10:00:00 Warning: disk: full", "Warning: disk: full", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, file := parseLine(tt.line)
			assert.Equal(t, tt.wantMsg, msg)
			assert.Equal(t, tt.wantFile, file)
		})
	}
}

func TestLevel(t *testing.T) {
	assert.Equal(t, LevelInfo, level("Saved Tagesbericht_neu.pdf"))
	assert.Equal(t, LevelWarning, level("Warning: Fehler: keine Position"))
	assert.Equal(t, LevelError, level("PANIC: boom"))
	assert.Equal(t, LevelError, level("Fatal error"))
}

func TestWriter_SendsGELF(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	w, err := New(pc.LocalAddr().String(), "mcp-field-reports")
	require.NoError(t, err)
	defer w.Close()
	w.now = func() time.Time { return time.Unix(1710496800, 0) }

	logger := log.New(w, "", log.LstdFlags|log.Lshortfile)
	logger.Print("Warning: verification failed")

	require.NoError(t, pc.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 4096)
	n, _, err := pc.ReadFrom(buf)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf[:n], &got))
	assert.Equal(t, "1.1", got["version"])
	assert.Equal(t, "Warning: verification failed", got["short_message"])
	assert.Equal(t, float64(LevelWarning), got["level"])
	assert.Equal(t, "mcp-field-reports", got["_service"])
	assert.Equal(t, float64(1710496800), got["timestamp"])
	assert.Contains(t, got["_file"], "gelf_test.go:")
}
