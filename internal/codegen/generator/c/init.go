package cgen

import (
	"fmt"
	"strings"

	"github.com/smolos/drvgen/internal/codegen/analyzer"
	"github.com/smolos/drvgen/internal/codegen/common"
	"github.com/smolos/drvgen/internal/codegen/driverkind"
	"github.com/smolos/drvgen/internal/codegen/meta"
	"github.com/smolos/drvgen/internal/drvconf"
)

// Placeholders substituted in per-driver init sequences.
const (
	PlaceholderDriver  = "<drv_name>"
	PlaceholderHandler = "<handler>"
	PlaceholderBuffer  = "<buffer>"
)

type sequenceVariant struct {
	lines  []string
	itOnly bool
}

// ExpandInit builds the drivers_init() definition. Driver types are visited
// in analysis order; types without an init sequence are skipped. The
// it_enabled_sequence lines are expanded only for interrupt-enabled drivers,
// since only they own the receive buffer behind <buffer>.
func ExpandInit(cfg *drvconf.Config, a *meta.Analysis) ([]string, error) {
	var body []string

	for _, typ := range a.InitOrder {
		seq, ok := cfg.SequenceFor(typ)
		if !ok {
			continue
		}
		kind := driverkind.Lookup(typ)

		variants := []sequenceVariant{{lines: seq.Sequence}}
		if seq.ITSequence != nil {
			variants = append(variants, sequenceVariant{lines: seq.ITSequence, itOnly: true})
		}

		for _, v := range variants {
			if v.lines == nil {
				continue
			}
			if !kind.PerDriverInit() {
				body = append(body, fmt.Sprintf("// %s initialization", typ))
				body = append(body, v.lines...)
				body = append(body, "")
				continue
			}
			for _, d := range cfg.DriversOfType(typ) {
				if v.itOnly && !d.ITEnabled {
					continue
				}
				h, err := kind.Resolve(d)
				if err != nil {
					return nil, fmt.Errorf("expand %s init sequence: %w", typ, err)
				}
				body = append(body, fmt.Sprintf("// %s initialization", d.Peripheral))
				r := placeholders(d, h)
				for _, instr := range v.lines {
					body = append(body, r.Replace(instr))
				}
				body = append(body, "")
			}
		}
	}

	out := []string{fmt.Sprintf("void %s()", InitFuncName), "{"}
	out = append(out, common.Indent(4, body)...)
	return append(out, "}"), nil
}

func placeholders(d drvconf.Driver, h driverkind.Handle) *strings.Replacer {
	name := d.Peripheral.String()
	return strings.NewReplacer(
		PlaceholderDriver, name,
		PlaceholderHandler, h.Expr,
		PlaceholderBuffer, name+analyzer.BufferNameSuffix,
	)
}

// InitPrototype is the header declaration of drivers_init.
func InitPrototype() string {
	return fmt.Sprintf("void %s();", InitFuncName)
}
