package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestTestLogger(t *testing.T) {
	tl := NewTestLogger()
	ctx := context.Background()

	tl.Trace(ctx, "deep detail")
	tl.Info(ctx, "entry stored", zap.String("entry_id", "e1"))

	tl.AssertLogged(t, TraceLevel, "deep")
	tl.AssertLogged(t, zapcore.InfoLevel, "stored")
	tl.AssertNotLogged(t, zapcore.ErrorLevel, "stored")
	tl.AssertField(t, "entry stored", "entry_id", "e1")
	tl.AssertNoField(t, "notes")

	tl.Reset()
	if len(tl.All()) != 0 {
		t.Fatalf("Reset left %d entries", len(tl.All()))
	}
}
