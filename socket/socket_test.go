package socket

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"garupa/utils"
)

// The rebroadcast loop is tied to the caller's context; with Redis
// unavailable and the context already cancelled, construction must
// still return a usable server immediately instead of hanging.
func TestInitSocketIO_StopsWithContext(t *testing.T) {
	utils.Logger = zap.NewNop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	io := InitSocketIO(ctx)
	if io == nil {
		t.Fatal("expected a server")
	}
	if GetHandler(io) == nil {
		t.Fatal("expected an HTTP handler")
	}
}
