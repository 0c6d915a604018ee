package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	cgen "github.com/smolos/drvgen/internal/codegen/generator/c"
	"github.com/smolos/drvgen/internal/store"
)

// TemplatesCommand groups template-related subcommands.
type TemplatesCommand struct {
	Export TemplatesExport `cmd:"" help:"Write the built-in templates to a directory for customization"`
}

type TemplatesExport struct {
	Dir   string `arg:"" name:"dir" help:"Destination directory"`
	Force bool   `help:"Overwrite existing templates"`
}

// Run is called by Kong when the templates export command is executed.
func (t *TemplatesExport) Run(logger *slog.Logger) error {
	st := store.NewOS()
	templates := cgen.DefaultTemplates()
	return fs.WalkDir(templates, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		dest := filepath.Join(t.Dir, path)
		if !t.Force {
			if _, err := os.Stat(dest); err == nil {
				return fmt.Errorf("%s exists; use --force to overwrite", dest)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}
		data, err := fs.ReadFile(templates, path)
		if err != nil {
			return err
		}
		if _, err := st.Persist(dest, string(data)); err != nil {
			return err
		}
		logger.Info("Exported template", "file", dest)
		return nil
	})
}
