package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		env  string
		want zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"nonsense", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.env)
			assert.Equal(t, tt.want, Level())
		})
	}
}

func TestDir(t *testing.T) {
	t.Setenv("LOG_DIR", "")
	assert.Equal(t, "logs", Dir())

	t.Setenv("LOG_DIR", "/tmp/rates")
	assert.Equal(t, "/tmp/rates", Dir())
}
