package safe

import (
	"log/slog"
	"runtime/debug"
)

// Run executes fn and converts a panic into an error log instead of
// tearing down the process.
func Run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered",
				slog.Any("recover", r),
				slog.String("component", "safe.Run"),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	fn()
}

// Do executes fn and returns the recovered panic value, if any, so callers
// that must report the failure (tool dispatch) can turn it into a payload.
func Do(fn func()) (recovered any) {
	defer func() {
		if r := recover(); r != nil {
			recovered = r
			slog.Error("panic recovered",
				slog.Any("recover", r),
				slog.String("component", "safe.Do"),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	fn()
	return
}
