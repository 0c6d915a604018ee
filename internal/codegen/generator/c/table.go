package cgen

import (
	"fmt"

	"github.com/smolos/drvgen/internal/codegen/common"
	"github.com/smolos/drvgen/internal/codegen/driverkind"
	"github.com/smolos/drvgen/internal/codegen/meta"
	"github.com/smolos/drvgen/internal/drvconf"
)

// Names shared with drivers_types.h.
const (
	DriverAllocType  = "DRIVER_ALLOC"
	DriverAllocTable = "DRIVERS_ALLOC"
	DriverAllocSize  = "DRIVERS_ALLOC_SIZE"
	RxBufferType     = "RX_BUFFER"
	InitFuncName     = "drivers_init"
)

// BuildTable emits the auxiliary handle declarations followed by the driver
// allocation table. Row i describes cfg.Drivers[i] and carries i as its id.
func BuildTable(cfg *drvconf.Config, a *meta.Analysis) ([]string, error) {
	var decls, rows []string
	declared := make(map[string]bool)

	for i, d := range cfg.Drivers {
		h, err := driverkind.Resolve(d)
		if err != nil {
			return nil, fmt.Errorf("build driver table: %w", err)
		}
		// Two drivers sharing a pin share its constant.
		if len(h.Decls) > 0 && !declared[h.Decls[0]] {
			declared[h.Decls[0]] = true
			decls = append(decls, h.Decls...)
		}

		buffer := driverkind.NullPointer
		if b, ok := a.BufferFor(d.Name); ok {
			buffer = b.Ref()
		}
		rows = append(rows, tableRow(d, h.Expr, buffer, i))
	}

	out := append(decls, common.ArrayOpen(DriverAllocType, DriverAllocTable, true))
	out = append(out, rows...)
	return append(out, "};"), nil
}

func tableRow(d drvconf.Driver, handle, buffer string, id int) string {
	return fmt.Sprintf("    { (uint8_t*)\"%s\", %s, %s, (void*) %s, (void*) %s, %d },",
		d.Name, d.Type, d.Direction, handle, buffer, id)
}

// BufferDecls emits the backing array and RX_BUFFER object of every buffer.
func BufferDecls(a *meta.Analysis) []string {
	var out []string
	for _, b := range a.Buffers {
		out = append(out, fmt.Sprintf("uint8_t %s[%s];", b.Storage(), b.SizeSymbol))
		out = append(out, common.StructInit(RxBufferType, b.Name, []common.Field{
			{Name: "buffer", Value: b.Storage()},
			{Name: "size", Value: "0"},
		}, false)...)
	}
	return out
}

// ExternDecls emits the header declarations matching BufferDecls and BuildTable.
func ExternDecls(a *meta.Analysis) []string {
	out := []string{fmt.Sprintf("extern const %s %s[];", DriverAllocType, DriverAllocTable)}
	for _, b := range a.Buffers {
		out = append(out, fmt.Sprintf("extern %s %s;", RxBufferType, b.Name))
	}
	return out
}
