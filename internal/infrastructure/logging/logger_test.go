package logging_test

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"gallery/internal/infrastructure/logging"
)

func TestNewLogger(t *testing.T) {
	log, err := logging.NewLogger("warn")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info should be disabled at warn level")
	}
	if !log.Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("warn should be enabled")
	}

	if _, err := logging.NewLogger("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
