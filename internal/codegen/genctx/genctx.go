// Package genctx carries the process-wide inputs of a generation run (clock,
// logger, attribution, artifact dump) so that renderers never reach for
// globals and tests can pin the date and silence output.
package genctx

import (
	"log/slog"
	"time"

	"github.com/smolos/drvgen/internal/log"
)

// DateLayout is the DD-MM-YYYY layout used by the date marker.
const DateLayout = "02-01-2006"

// DefaultAuthor is substituted for the author marker.
const DefaultAuthor = "Auto-generated by drvgen"

// Context is passed explicitly to every generation stage.
type Context struct {
	Logger *slog.Logger
	Dump   log.DumpLogger
	Now    func() time.Time
	Author string
}

// New returns a context reading the wall clock.
func New(logger *slog.Logger, dump log.DumpLogger) *Context {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if dump == nil {
		dump = log.NewDump(nil)
	}
	return &Context{
		Logger: logger,
		Dump:   dump,
		Now:    time.Now,
		Author: DefaultAuthor,
	}
}

// Quiet returns a context with a fixed clock that logs and dumps nothing.
func Quiet(now time.Time) *Context {
	c := New(nil, nil)
	c.Now = Fixed(now)
	return c
}

// Fixed returns a clock always reporting t.
func Fixed(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Date formats the current date for the date marker.
func (c *Context) Date() string {
	return c.Now().Format(DateLayout)
}
