// Package generator runs a whole generation pass: analysis, C source and
// header rendering, Rust bindings, then persistence.
package generator

import (
	"fmt"
	"path/filepath"

	"github.com/smolos/drvgen/internal/codegen/analyzer"
	cgen "github.com/smolos/drvgen/internal/codegen/generator/c"
	"github.com/smolos/drvgen/internal/codegen/generator/rust"
	"github.com/smolos/drvgen/internal/codegen/genctx"
	"github.com/smolos/drvgen/internal/codegen/meta"
	"github.com/smolos/drvgen/internal/drvconf"
	"github.com/smolos/drvgen/internal/store"
)

// Options tune a generation pass.
type Options struct {
	// TemplatesDir holds c_file.template and h_file.template, overriding
	// both the config's templates key and the embedded defaults.
	TemplatesDir string
	// ConfigDir anchors relative template paths found in the config.
	ConfigDir string
	// DryRun renders and dumps artifacts without persisting them.
	DryRun bool
}

// Artifact is one generated file.
type Artifact struct {
	Path    string
	Content string
	Changed bool
}

type Generator struct {
	store store.Store
	gc    *genctx.Context
	opts  Options
}

func New(st store.Store, gc *genctx.Context, opts Options) *Generator {
	return &Generator{
		store: st,
		gc:    gc,
		opts:  opts,
	}
}

// Paths returns the output paths of the source, header and Rust files.
func Paths(cfg *drvconf.Config) (source, header, rs string) {
	c := cfg.TargetC
	source = filepath.Join(c.Directory, c.SourceDirOrDefault(), c.Name+cgen.Source.Ext())
	header = filepath.Join(c.Directory, c.HeaderDirOrDefault(), c.Name+cgen.Header.Ext())
	rs = filepath.Join(cfg.TargetRust.Directory, rust.FileName(cfg))
	return
}

// Generate renders every artifact of cfg and persists them unless the
// pass is a dry run. Nothing is written when any render fails.
func (g *Generator) Generate(cfg *drvconf.Config) ([]Artifact, error) {
	artifacts, err := g.Render(cfg)
	if err != nil {
		return nil, err
	}
	if g.opts.DryRun {
		g.gc.Logger.Info("Dry run, nothing written", "artifacts", len(artifacts))
		return artifacts, nil
	}

	for i := range artifacts {
		a := &artifacts[i]
		changed, err := g.store.Persist(a.Path, a.Content)
		if err != nil {
			return nil, err
		}
		a.Changed = changed
		if changed {
			g.gc.Logger.Info("Generated file", "file", a.Path)
		} else {
			g.gc.Logger.Debug("File unchanged", "file", a.Path)
		}
	}
	return artifacts, nil
}

// Render analyzes cfg and renders the source, header and Rust artifacts in
// that order, without touching the store except to read templates.
func (g *Generator) Render(cfg *drvconf.Config) ([]Artifact, error) {
	g.gc.Logger.Debug("Analyzing configuration", "drivers", len(cfg.Drivers))
	a, err := analyzer.Analyze(cfg)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	g.gc.Logger.Debug("Analysis complete",
		"includes", len(a.Includes),
		"activations", len(a.Activations),
		"buffers", len(a.Buffers))

	sourcePath, headerPath, rsPath := Paths(cfg)

	source, err := g.renderC(cfg, a, cgen.Source)
	if err != nil {
		return nil, err
	}
	header, err := g.renderC(cfg, a, cgen.Header)
	if err != nil {
		return nil, err
	}
	rs, err := rust.Render(cfg)
	if err != nil {
		return nil, err
	}

	artifacts := []Artifact{
		{Path: sourcePath, Content: source},
		{Path: headerPath, Content: header},
		{Path: rsPath, Content: rs},
	}
	for _, art := range artifacts {
		g.gc.Dump.Dump(art.Path, art.Content)
	}
	return artifacts, nil
}

func (g *Generator) renderC(cfg *drvconf.Config, a *meta.Analysis, flavor cgen.Flavor) (string, error) {
	tmpl, err := g.template(cfg, flavor)
	if err != nil {
		return "", err
	}
	out, err := cgen.NewRenderer(flavor).Render(g.gc, cfg, a, tmpl)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", flavor, err)
	}
	return out, nil
}

// template picks the template of flavor: the templates directory option,
// then the config's templates key, then the embedded default.
func (g *Generator) template(cfg *drvconf.Config, flavor cgen.Flavor) (string, error) {
	if g.opts.TemplatesDir != "" {
		return g.store.Load(filepath.Join(g.opts.TemplatesDir, cgen.TemplateFile(flavor)))
	}
	if cfg.Templates != nil {
		path := cfg.Templates.C
		if flavor == cgen.Header {
			path = cfg.Templates.H
		}
		if path != "" {
			if !filepath.IsAbs(path) && g.opts.ConfigDir != "" {
				path = filepath.Join(g.opts.ConfigDir, path)
			}
			return g.store.Load(path)
		}
	}
	return cgen.DefaultTemplate(flavor)
}
