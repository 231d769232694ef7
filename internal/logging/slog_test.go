package logging

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

func TestSetup_Destinations(t *testing.T) {
	tests := []struct {
		name       string
		withFile   bool
		level      string
		wantFile   []string
		wantStdout []string
		never      []string
	}{
		{
			name:     "file keeps stdout quiet",
			withFile: true,
			level:    "info",
			wantFile: []string{"outline closed", "points=4"},
			never:    []string{"vertex added"},
		},
		{
			name:       "stdout without file",
			level:      "info",
			wantStdout: []string{"outline closed"},
			never:      []string{"vertex added"},
		},
		{
			name:     "debug shows vertices",
			withFile: true,
			level:    "debug",
			wantFile: []string{"vertex added", "outline closed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore := captureStdout(t)

			var file bytes.Buffer
			m := NewSlogManager()
			if tt.withFile {
				m.Setup(&file, tt.level, nil)
			} else {
				m.Setup(nil, tt.level, nil)
			}
			m.Logger().Debug("vertex added", "x", 210, "y", 10)
			m.Logger().Info("outline closed", "points", 4)

			stdout := restore()
			for _, want := range tt.wantFile {
				assert.Contains(t, file.String(), want)
			}
			for _, want := range tt.wantStdout {
				assert.Contains(t, stdout, want)
			}
			if tt.withFile {
				assert.Empty(t, stdout)
			}
			for _, never := range tt.never {
				assert.NotContains(t, file.String()+stdout, never)
			}
		})
	}
}

func TestSetup_GraylogSink(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer conn.Close()

	gl, err := NewGraylogWriter(conn.LocalAddr().String())
	require.NoError(t, err)
	defer gl.Close()

	var file bytes.Buffer
	m := NewSlogManager()
	m.Setup(&file, "info", nil, WithSink(gl))

	// Setup logs its own line first; read until the export line arrives.
	m.Logger().Info("layout exported", "panels", 40)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg struct {
		Short    string `json:"short_message"`
		Facility string `json:"facility"`
	}
	buf := make([]byte, 8192)
	for msg.Short == "" || !bytes.Contains([]byte(msg.Short), []byte("layout exported")) {
		n, _, err := conn.ReadFrom(buf)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(inflate(t, buf[:n]), &msg))
	}

	assert.Contains(t, msg.Short, "panels=40")
	assert.Equal(t, "roofsolar", msg.Facility)
	assert.Contains(t, file.String(), "layout exported")
}

func TestNewGraylogWriter_BadAddress(t *testing.T) {
	_, err := NewGraylogWriter("no-port-here")
	assert.Error(t, err)
}

// failingSink stands in for an unreachable remote log sink.
type failingSink struct{}

func (failingSink) Write([]byte) (int, error) { return 0, errors.New("sink down") }

func TestSetup_FailingSinkKeepsFile(t *testing.T) {
	var file bytes.Buffer
	m := NewSlogManager()
	m.Setup(&file, "info", nil, WithSink(failingSink{}), WithSink(nil))

	r := slog.NewRecord(time.Now(), slog.LevelWarn, "imagery fetch failed", 0)
	err := m.Logger().Handler().Handle(context.Background(), r)

	assert.ErrorContains(t, err, "sink down")
	assert.Contains(t, file.String(), "imagery fetch failed")
}

// recordingExporter keeps the bodies of exported OTel records.
type recordingExporter struct {
	mu     sync.Mutex
	bodies []string
}

func (e *recordingExporter) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range records {
		e.bodies = append(e.bodies, r.Body().AsString())
	}
	return nil
}

func (e *recordingExporter) Shutdown(context.Context) error   { return nil }
func (e *recordingExporter) ForceFlush(context.Context) error { return nil }

func TestSetup_OTelBridge(t *testing.T) {
	exp := &recordingExporter{}
	provider := sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exp)))
	defer provider.Shutdown(context.Background())

	var file bytes.Buffer
	m := NewSlogManager()
	m.Setup(&file, "info", provider, WithInstrumentationName("roofsolar-test"))
	m.Logger().Info("session relocated")
	require.NoError(t, m.Flush(context.Background()))

	exp.mu.Lock()
	defer exp.mu.Unlock()
	assert.Contains(t, exp.bodies, "session relocated")
	assert.Contains(t, file.String(), "session relocated")
}

func TestFlush_NoProvider(t *testing.T) {
	m := NewSlogManager()
	assert.Equal(t, slog.Default(), m.Logger())
	assert.NoError(t, m.Flush(context.Background()))
}

func TestParseLevel(t *testing.T) {
	for input, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"Error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	} {
		assert.Equal(t, want, parseLevel(input), input)
	}
}

// inflate undoes the GELF writer's compression.
func inflate(t *testing.T, packet []byte) []byte {
	t.Helper()
	var (
		rd  io.Reader
		err error
	)
	switch {
	case len(packet) > 1 && packet[0] == 0x1f && packet[1] == 0x8b:
		rd, err = gzip.NewReader(bytes.NewReader(packet))
	case len(packet) > 0 && packet[0] == 0x78:
		rd, err = zlib.NewReader(bytes.NewReader(packet))
	default:
		return packet
	}
	require.NoError(t, err)
	out, err := io.ReadAll(rd)
	require.NoError(t, err)
	return out
}

// captureStdout redirects the manager's stdout to a pipe and returns a
// function that restores it and returns what was written.
func captureStdout(t *testing.T) func() string {
	t.Helper()

	r, w, err := osPipe()
	require.NoError(t, err)

	orig := osStdout
	osStdout = w

	return func() string {
		w.Close()
		osStdout = orig
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		r.Close()
		return buf.String()
	}
}
