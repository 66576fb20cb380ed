package logging

import (
	"context"
	"sync/atomic"
)

// MirrorFunc receives every emitted log record after the primary core has
// accepted it. Used to fan records out to an external log pipeline.
type MirrorFunc func(ctx context.Context, level Level, msg string, args ...any)

var mirrorFunc atomic.Pointer[MirrorFunc]

// SetMirror installs the process-wide mirror. Passing nil removes it.
func SetMirror(fn MirrorFunc) {
	if fn == nil {
		mirrorFunc.Store(nil)
		return
	}
	mirrorFunc.Store(&fn)
}

func mirrorRecord(ctx context.Context, level Level, msg string, args []any) {
	ptr := mirrorFunc.Load()
	if ptr == nil {
		return
	}
	(*ptr)(ctx, level, msg, args...)
}
