// Package rust emits the Rust side of the interrupt plumbing: extern
// declarations of the C wrappers and one #[interrupt] vector per
// interrupt-enabled driver.
package rust

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/smolos/drvgen/internal/codegen/common"
	"github.com/smolos/drvgen/internal/drvconf"
)

// Ext is the extension of the emitted file.
const Ext = ".rs"

const bindingsTemplate = `use {{.InterruptPath}};

unsafe extern "C" {
{{- range .Vectors}}
    pub fn {{.Handler}}();
{{- end}}
}

{{range .Vectors -}}
#[allow(non_snake_case)]
#[interrupt]
fn {{.Name}}() {
    unsafe { {{.Handler}}(); }
}
{{end -}}
`

var bindingsTmpl = template.Must(template.New("bindings").Parse(bindingsTemplate))

type vector struct {
	Name    string
	Handler string
}

type bindingsData struct {
	InterruptPath string
	Vectors       []vector
}

// FileName is the emitted file name, extension included.
func FileName(cfg *drvconf.Config) string {
	return cfg.TargetRust.Name + Ext
}

// Render produces the bindings file for the interrupt-enabled drivers of
// cfg, in input order.
func Render(cfg *drvconf.Config) (string, error) {
	data := bindingsData{InterruptPath: cfg.TargetRust.InterruptPathOrDefault()}
	for i, d := range cfg.Drivers {
		if !d.ITEnabled {
			continue
		}
		if d.Peripheral.IsAbsent() {
			return "", drvconf.ErrInvalidPeripheral(fmt.Sprintf("drivers[%d].peripheral", i), "interrupt-enabled driver needs a peripheral")
		}
		name := d.Peripheral.String()
		data.Vectors = append(data.Vectors, vector{Name: name, Handler: common.ITHandlerName(name)})
	}

	var b strings.Builder
	if err := bindingsTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render rust bindings: %w", err)
	}
	return b.String(), nil
}
