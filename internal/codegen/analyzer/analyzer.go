// Package analyzer runs the pre-analysis pass over the driver list.
//
// The pass is a single forward walk over the drivers in input order and is
// fully deterministic: the same configuration always yields the same
// meta.Analysis, element for element.
package analyzer

import (
	"fmt"
	"slices"

	"github.com/smolos/drvgen/internal/codegen/driverkind"
	"github.com/smolos/drvgen/internal/codegen/meta"
	"github.com/smolos/drvgen/internal/drvconf"
)

const (
	ActivationPrefix = "DRIVER_ACTIVATE_"
	BufferNameSuffix = "_BUFFER"
	BufferSizeSuffix = "_BUFFER_SIZE"
)

// Analyze derives includes, activation macros, init order and receive
// buffers from cfg.
func Analyze(cfg *drvconf.Config) (*meta.Analysis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("analyze: nil configuration")
	}

	a := &meta.Analysis{}
	for _, d := range cfg.Drivers {
		kind := driverkind.Lookup(d.Type)
		for _, inc := range kind.Includes() {
			a.Includes = appendUnique(a.Includes, inc)
		}

		a.Activations = appendUnique(a.Activations, ActivationPrefix+d.Type)

		seq, hasSeq := cfg.SequenceFor(d.Type)
		if !slices.Contains(a.InitOrder, d.Type) {
			a.InitOrder = append(a.InitOrder, d.Type)
			if hasSeq {
				for _, inc := range seq.Includes {
					a.Includes = appendUnique(a.Includes, inc)
				}
			}
		}

		if d.ITEnabled && hasSeq {
			if d.Peripheral.IsAbsent() {
				return nil, drvconf.ErrInvalidPeripheral(
					fmt.Sprintf("drivers[%s].peripheral", d.Name),
					"interrupt-enabled drivers need a peripheral to name their buffer and handler")
			}
			if seq.BufferSize == "" {
				return nil, drvconf.ErrMissingKey(fmt.Sprintf("init_sequence[%s].buffer_size", d.Type))
			}
			b := meta.BufferSpec{
				Name:       d.Peripheral.String() + BufferNameSuffix,
				SizeSymbol: d.Type + BufferSizeSuffix,
				Driver:     d.Name,
			}
			a.Buffers = append(a.Buffers, b)
			a.BufferSizes.Set(b.SizeSymbol, string(seq.BufferSize))
		}
	}
	return a, nil
}

func appendUnique(list []string, v string) []string {
	if slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}
