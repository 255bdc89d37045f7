package logger

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
	assert.NotEmpty(t, cfg.TimeFormat)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "default config", cfg: DefaultConfig()},
		{
			name: "debug console",
			cfg: &Config{
				Level:      "debug",
				Format:     "console",
				Output:     "stdout",
				TimeFormat: "2006-01-02T15:04:05Z07:00",
			},
		},
		{
			name: "json to stderr",
			cfg: &Config{
				Level:      "warn",
				Format:     "json",
				Output:     "stderr",
				TimeFormat: "2006-01-02T15:04:05Z07:00",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.level))
		})
	}
}

func TestNewWriter(t *testing.T) {
	for _, output := range []string{"stdout", "stderr", "STDOUT"} {
		t.Run(output, func(t *testing.T) {
			assert.NotNil(t, newWriter(output))
		})
	}

	t.Run("file path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stocktier.log")
		assert.NotNil(t, newWriter(path))
	})
}

func TestNewEncoder(t *testing.T) {
	console := newEncoder(&Config{Format: "console", TimeFormat: "2006-01-02T15:04:05Z07:00"})
	assert.NotNil(t, console)

	jsonEnc := newEncoder(&Config{Format: "json", TimeFormat: "2006-01-02T15:04:05Z07:00"})
	assert.NotNil(t, jsonEnc)
}

func TestSync(t *testing.T) {
	log, err := New(DefaultConfig())
	require.NoError(t, err)

	// Sync on stdout may fail on some platforms; it must not panic.
	_ = Sync(log)
}

func testJSONCore(buf *bytes.Buffer, level zapcore.Level) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		LevelKey:    "level",
		MessageKey:  "msg",
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}
	return zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(buf),
		level,
	))
}

func TestLogOutput(t *testing.T) {
	var buf bytes.Buffer
	log := testJSONCore(&buf, zapcore.InfoLevel)

	log.Info("stock adjusted", zap.String("sku", "105-001"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "stock adjusted", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "105-001", entry["sku"])
}

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer

	log := testJSONCore(&buf, zapcore.DebugLevel)
	log.Debug("resolving quote")
	assert.True(t, strings.Contains(buf.String(), "resolving quote"))

	buf.Reset()
	log = testJSONCore(&buf, zapcore.InfoLevel)
	log.Debug("resolving quote")
	assert.False(t, strings.Contains(buf.String(), "resolving quote"))

	log.Info("transaction completed")
	assert.True(t, strings.Contains(buf.String(), "transaction completed"))
}
