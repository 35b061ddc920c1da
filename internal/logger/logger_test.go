package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		level   string
		wantErr bool
	}{
		{name: "prod json profile", env: "prod"},
		{name: "local console profile", env: "local"},
		{name: "docker console profile", env: "docker"},
		{name: "level override", env: "prod", level: "debug"},
		{name: "unknown environment", env: "staging", wantErr: true},
		{name: "invalid level", env: "prod", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLogger(tt.env, tt.level)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if l == nil {
				t.Fatal("expected a logger")
			}
		})
	}
}

func TestFromContextReturnsStoredLogger(t *testing.T) {
	stored := zap.NewNop().Named("request")
	ctx := ContextWithLogger(context.Background(), stored)

	if got := FromContext(ctx, zap.NewNop()); got != stored {
		t.Error("expected the request-scoped logger")
	}
}

func TestFromContextFallsBack(t *testing.T) {
	fallback := zap.NewNop().Named("service")

	if got := FromContext(context.Background(), fallback); got != fallback {
		t.Error("expected the fallback logger")
	}
	if got := FromContext(context.Background(), nil); got == nil {
		t.Error("expected a nop logger, not nil")
	}
}
