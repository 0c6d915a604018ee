// Package driverkind turns a configured driver into the C expressions the
// generated code uses to reach its hardware handle.
//
// Each supported driver type (USART, GPIO, ...) is a Kind. Kinds are looked up
// by the driver's type string; types without a dedicated Kind fall back to a
// passive kind that only accepts drivers without a peripheral.
package driverkind

import (
	"fmt"

	"github.com/smolos/drvgen/internal/drvconf"
)

// NullPointer is the C literal used for "no handle" / "no buffer".
const NullPointer = "0"

// Handle is a resolved peripheral reference. Decls holds auxiliary C
// declarations the expression depends on (e.g. a GPIO_ALLOC constant);
// callers that only need the expression may ignore them.
type Handle struct {
	Expr  string
	Decls []string
}

// Kind is the behaviour attached to one driver type.
type Kind interface {
	// Name is the driver type string this kind serves.
	Name() string
	// Resolve returns the C expression referencing the driver's handle.
	Resolve(d drvconf.Driver) (Handle, error)
	// Includes lists headers the generated source needs for this kind.
	Includes() []string
	// PerDriverInit reports whether init sequences are expanded once per
	// driver with placeholder substitution, instead of once per type.
	PerDriverInit() bool
	// IRQBody returns the statements of the <peripheral>_it_handler wrapper.
	IRQBody(d drvconf.Driver, h Handle) []string
}

// Resolve is a shortcut for Lookup(d.Type).Resolve(d).
func Resolve(d drvconf.Driver) (Handle, error) {
	return Lookup(d.Type).Resolve(d)
}

func driverKey(d drvconf.Driver) string {
	return fmt.Sprintf("drivers[%s].peripheral", d.Name)
}

// passive serves driver types without a dedicated kind.
type passive struct{ name string }

func (p passive) Name() string { return p.name }

func (p passive) Resolve(d drvconf.Driver) (Handle, error) {
	if d.Peripheral.IsAbsent() {
		return Handle{Expr: NullPointer}, nil
	}
	return Handle{}, drvconf.ErrUnsupportedType(fmt.Sprintf("drivers[%s].type", d.Name), d.Type)
}

func (passive) Includes() []string { return nil }

func (passive) PerDriverInit() bool { return false }

func (passive) IRQBody(drvconf.Driver, Handle) []string { return nil }
