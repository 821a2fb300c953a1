package httpapi

import (
	"context"
	"net"
)

// serverBaseCtx is a process-level context that is canceled on shutdown.
// Defaults to Background if not set.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level base context used by handlers.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// BaseContext is suitable for http.Server.BaseContext.
func BaseContext(net.Listener) context.Context { return serverBaseCtx }

// shuttingDown reports whether the base context has ended.
func shuttingDown() bool { return serverBaseCtx.Err() != nil }
