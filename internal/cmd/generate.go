package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/smolos/drvgen/internal/codegen/generator"
	"github.com/smolos/drvgen/internal/codegen/genctx"
	"github.com/smolos/drvgen/internal/drvconf"
	"github.com/smolos/drvgen/internal/log"
	"github.com/smolos/drvgen/internal/store"
)

// SourceDateEpochEnv pins the date marker for reproducible builds.
const SourceDateEpochEnv = "SOURCE_DATE_EPOCH"

type Generate struct {
	Config       string `arg:"" name:"config" help:"Drivers configuration document (yaml, json or toml)"`
	TemplatesDir string `help:"Directory holding c_file.template and h_file.template" env:"DRVGEN_TEMPLATES_DIR"`
	DryRun       bool   `help:"Render and dump artifacts without writing them" env:"DRVGEN_DRY_RUN"`
	Date         string `help:"Date stamped into generated files (DD-MM-YYYY); defaults to SOURCE_DATE_EPOCH, then today" env:"DRVGEN_DATE"`
	Author       string `help:"Author stamped into generated files" default:"Auto-generated by drvgen" env:"DRVGEN_AUTHOR"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger, dump log.DumpLogger) error {
	logger.Info("Generating drivers allocation", "config", g.Config)

	cfg, err := drvconf.Load(g.Config)
	if err != nil {
		return err
	}

	gc := genctx.New(logger, dump)
	if g.Author != "" {
		gc.Author = g.Author
	}
	now, err := g.clock()
	if err != nil {
		return err
	}
	if now != nil {
		gc.Now = now
	}

	gen := generator.New(store.NewOS(), gc, generator.Options{
		TemplatesDir: g.TemplatesDir,
		ConfigDir:    filepath.Dir(g.Config),
		DryRun:       g.DryRun,
	})
	artifacts, err := gen.Generate(cfg)
	if err != nil {
		return err
	}

	written := 0
	for _, a := range artifacts {
		if a.Changed {
			written++
		}
	}
	logger.Info("Generation complete", "artifacts", len(artifacts), "written", written, "dryRun", g.DryRun)
	return nil
}

// clock resolves the date option. A nil clock means the wall clock.
func (g *Generate) clock() (func() time.Time, error) {
	if g.Date != "" {
		t, err := time.Parse(genctx.DateLayout, g.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid --date %q (expected DD-MM-YYYY): %w", g.Date, err)
		}
		return genctx.Fixed(t), nil
	}
	if v := os.Getenv(SourceDateEpochEnv); v != "" {
		secs, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", SourceDateEpochEnv, v, err)
		}
		return genctx.Fixed(time.Unix(secs, 0).UTC()), nil
	}
	return nil, nil
}
