package cgen

import (
	"fmt"

	"github.com/smolos/drvgen/internal/codegen/common"
	"github.com/smolos/drvgen/internal/codegen/driverkind"
	"github.com/smolos/drvgen/internal/drvconf"
)

// IRQHandlers emits one <peripheral>_it_handler() wrapper per
// interrupt-enabled driver, in input order. The body comes from the driver
// kind; kinds without interrupt support produce an empty body.
func IRQHandlers(cfg *drvconf.Config) ([]string, error) {
	var out []string
	for _, d := range cfg.Drivers {
		if !d.ITEnabled {
			continue
		}
		kind := driverkind.Lookup(d.Type)
		h, err := kind.Resolve(d)
		if err != nil {
			return nil, fmt.Errorf("interrupt handler for %s: %w", d.Name, err)
		}
		out = append(out, "", fmt.Sprintf("void %s()", common.ITHandlerName(d.Peripheral.String())), "{")
		out = append(out, common.Indent(4, kind.IRQBody(d, h))...)
		out = append(out, "}")
	}
	return out, nil
}
