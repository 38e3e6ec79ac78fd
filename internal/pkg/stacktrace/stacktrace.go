// Package stacktrace trims goroutine stacks down to this module's own frames
// for compact panic logs.
package stacktrace

import (
	"runtime"
	"strconv"
	"strings"
)

const maxDepth = 64

// Internal returns "internal/<pkg>/<file>.go:<line>" for every frame of the
// calling goroutine that lives under an internal/ directory, innermost first.
// skip counts frames above the caller, as in runtime.Callers.
func Internal(skip int) []string {
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var paths []string
	for {
		frame, more := frames.Next()
		if p, ok := shorten(frame.File, frame.Line); ok {
			paths = append(paths, p)
		}
		if !more {
			break
		}
	}
	return paths
}

func shorten(file string, line int) (string, bool) {
	idx := strings.LastIndex(file, "/internal/")
	if idx == -1 {
		return "", false
	}
	return file[idx+1:] + ":" + strconv.Itoa(line), true
}
