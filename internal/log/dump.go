package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// DumpLogger records every rendered artifact, e.g. for inspecting what a
// build script generated without opening the output tree.
type DumpLogger interface {
	Dump(artifact string, content string)
}

// dumpLogger implements DumpLogger with thread-safe writes.
type dumpLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewDump creates a new DumpLogger. If writer is nil, returns a no-op logger.
func NewDump(w io.Writer) DumpLogger {
	return &dumpLogger{w: w}
}

// Dump emits a timestamped header followed by the artifact text.
func (d *dumpLogger) Dump(artifact string, content string) {
	if d.w == nil {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s ==> %s (%d bytes)\n",
		time.Now().Format("2006/01/02 15:04:05"),
		artifact,
		len(content))
	b.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		b.WriteByte('\n')
	}

	d.mu.Lock()
	_, _ = io.WriteString(d.w, b.String())
	d.mu.Unlock()
}
