package analyzer

import (
	"github.com/smolos/drvgen/internal/codegen/driverkind"
	"github.com/smolos/drvgen/internal/codegen/meta"
	"github.com/smolos/drvgen/internal/drvconf"
)

// Summary condenses an analysis for reporting.
type Summary struct {
	Drivers    int
	Types      []string
	Buffers    int
	Interrupts int
	Includes   []string
	// Passive lists driver types without a registered kind; their drivers
	// must not name a peripheral.
	Passive []string
}

// Summarize reports what a generation pass over cfg would produce.
func Summarize(cfg *drvconf.Config, a *meta.Analysis) Summary {
	s := Summary{
		Drivers:  len(cfg.Drivers),
		Types:    a.InitOrder,
		Buffers:  len(a.Buffers),
		Includes: a.Includes,
	}
	seen := map[string]bool{}
	for _, d := range cfg.Drivers {
		if d.ITEnabled {
			s.Interrupts++
		}
		if !driverkind.Registered(d.Type) && !seen[d.Type] {
			seen[d.Type] = true
			s.Passive = append(s.Passive, d.Type)
		}
	}
	return s
}
