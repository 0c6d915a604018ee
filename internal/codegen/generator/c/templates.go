package cgen

import (
	"embed"
	"fmt"
	"io/fs"
)

// Template file names, also used when exporting the defaults.
const (
	SourceTemplateFile = "c_file.template"
	HeaderTemplateFile = "h_file.template"
)

//go:embed templates/*.template
var templatesFS embed.FS

// DefaultTemplates exposes the built-in templates so callers can copy or
// override them.
func DefaultTemplates() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// TemplateFile returns the file name of the template for a flavor.
func TemplateFile(f Flavor) string {
	if f == Header {
		return HeaderTemplateFile
	}
	return SourceTemplateFile
}

// DefaultTemplate returns the built-in template text of a flavor.
func DefaultTemplate(f Flavor) (string, error) {
	data, err := fs.ReadFile(DefaultTemplates(), TemplateFile(f))
	if err != nil {
		return "", fmt.Errorf("read embedded %s template: %w", f, err)
	}
	return string(data), nil
}
