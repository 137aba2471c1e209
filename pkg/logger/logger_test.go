package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Levels(t *testing.T) {
	testCases := []struct {
		level    string
		encoding string
		wantErr  bool
	}{
		{"debug", "json", false},
		{"info", "console", false},
		{"WARN", "", false},
		{"verbose", "json", true},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			l, err := New(tc.level, tc.encoding)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromZap(zap.New(core))

	ctx := WithContextFields(context.Background(), StringField("run_id", "abc"))
	ctx = WithContextFields(ctx, StringField("profile", "default"))
	l.InfoContext(ctx, "ticker processed", StringField("ticker", "PETR4.SA"))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "abc", fields["run_id"])
	assert.Equal(t, "default", fields["profile"])
	assert.Equal(t, "PETR4.SA", fields["ticker"])
}

func TestContextFields_NoValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromZap(zap.New(core))

	l.ErrorContext(context.Background(), "boom", IntField("n", 1))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, int64(1), logs.All()[0].ContextMap()["n"])
}
