package cmd

import (
	"log/slog"
	"path/filepath"

	"github.com/smolos/drvgen/internal/codegen/analyzer"
	"github.com/smolos/drvgen/internal/codegen/generator"
	"github.com/smolos/drvgen/internal/codegen/genctx"
	"github.com/smolos/drvgen/internal/drvconf"
	"github.com/smolos/drvgen/internal/store"
)

type Check struct {
	Config       string `arg:"" name:"config" help:"Drivers configuration document (yaml, json or toml)"`
	TemplatesDir string `help:"Directory holding c_file.template and h_file.template" env:"DRVGEN_TEMPLATES_DIR"`
}

// Run is called by Kong when the check command is executed. It renders
// every artifact in memory, so a document passes only if generate would
// accept it too.
func (c *Check) Run(logger *slog.Logger) error {
	cfg, err := drvconf.Load(c.Config)
	if err != nil {
		return err
	}
	a, err := analyzer.Analyze(cfg)
	if err != nil {
		return err
	}

	gen := generator.New(store.NewOS(), genctx.New(logger, nil), generator.Options{
		TemplatesDir: c.TemplatesDir,
		ConfigDir:    filepath.Dir(c.Config),
		DryRun:       true,
	})
	artifacts, err := gen.Render(cfg)
	if err != nil {
		return err
	}

	s := analyzer.Summarize(cfg, a)
	logger.Info("Configuration is valid", "config", c.Config, "drivers", s.Drivers, "types", s.Types, "buffers", s.Buffers, "interrupts", s.Interrupts)
	for _, art := range artifacts {
		logger.Info("Would generate", "file", art.Path)
	}
	if len(s.Passive) > 0 {
		logger.Debug("Driver types without a kind, emitted with a null handle", "types", s.Passive)
	}
	return nil
}
