package camview

// traceFn receives diagnostic traces of frustum recomputation.
// Tracing is disabled while it is nil.
var traceFn func(format string, v ...interface{})

// SetTraceFunc installs a diagnostic trace sink, e.g. log.Printf.
// Passing nil disables tracing. Tracing is disabled by default.
func SetTraceFunc(f func(format string, v ...interface{})) {
	traceFn = f
}

func tracef(format string, v ...interface{}) {
	if traceFn != nil {
		traceFn(format, v...)
	}
}
