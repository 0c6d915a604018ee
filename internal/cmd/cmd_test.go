package cmd

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	cgen "github.com/smolos/drvgen/internal/codegen/generator/c"
	"github.com/smolos/drvgen/internal/drvconf"
	"github.com/smolos/drvgen/internal/log"
)

func discard() *slog.Logger { return slog.New(slog.DiscardHandler) }

// writeSample writes the default sample document with its targets under dir.
func writeSample(t *testing.T, dir string) string {
	t.Helper()
	ans := DefaultSampleAnswers()
	ans.TargetDir = filepath.Join(dir, "Interface")
	ans.RustDir = filepath.Join(dir, "rust")
	data, err := drvconf.Encode(SampleConfig(ans), drvconf.FormatYAML)
	require.NoError(t, err)
	path := filepath.Join(dir, "drivers_conf.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestGenerateRun(t *testing.T) {
	dir := t.TempDir()
	g := &Generate{Config: writeSample(t, dir), Date: "01-02-2026", Author: "ci"}
	require.NoError(t, g.Run(discard(), log.NewDump(nil)))

	src, err := os.ReadFile(filepath.Join(dir, "Interface", "Src", "drivers_alloc.c"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "Created on 01-02-2026")
	assert.Contains(t, string(src), "@author             : ci")
	assert.Contains(t, string(src), `{ (uint8_t*)"uart_console", USART, INOUT, (void*) &huart1, (void*) &USART1_BUFFER, 0 },`)
	assert.Contains(t, string(src), `{ (uint8_t*)"lcd", LCD, OUT, (void*) 0, (void*) 0, 2 },`)

	assert.FileExists(t, filepath.Join(dir, "Interface", "Inc", "drivers_alloc.h"))
	rs, err := os.ReadFile(filepath.Join(dir, "rust", "interrupts.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(rs), "fn USART1() {")
}

func TestGenerateDryRun(t *testing.T) {
	dir := t.TempDir()
	g := &Generate{Config: writeSample(t, dir), DryRun: true}
	require.NoError(t, g.Run(discard(), log.NewDump(nil)))
	assert.NoDirExists(t, filepath.Join(dir, "Interface"))
}

func TestGenerateInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("drivers: []\n"), 0o644))

	err := (&Generate{Config: path}).Run(discard(), log.NewDump(nil))
	require.Error(t, err)
	assert.True(t, drvconf.IsKind(err, drvconf.KindMissingKey))
}

func TestGenerateClock(t *testing.T) {
	t.Setenv(SourceDateEpochEnv, "")
	now, err := (&Generate{}).clock()
	require.NoError(t, err)
	assert.Nil(t, now)

	now, err = (&Generate{Date: "24-12-2025"}).clock()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.December, 24, 0, 0, 0, 0, time.UTC), now())

	_, err = (&Generate{Date: "2025-12-24"}).clock()
	assert.Error(t, err)

	t.Setenv(SourceDateEpochEnv, "1767225600")
	now, err = (&Generate{}).clock()
	require.NoError(t, err)
	assert.Equal(t, "01-01-2026", now().Format("02-01-2006"))

	t.Setenv(SourceDateEpochEnv, "soon")
	_, err = (&Generate{}).clock()
	assert.Error(t, err)
}

func TestCheckRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, (&Check{Config: writeSample(t, dir)}).Run(discard()))
	assert.NoDirExists(t, filepath.Join(dir, "Interface"))

	assert.Error(t, (&Check{Config: filepath.Join(dir, "missing.yaml")}).Run(discard()))
}

func TestCheckRejectsWhatGenerateRejects(t *testing.T) {
	dir := t.TempDir()
	cfg := SampleConfig(DefaultSampleAnswers())
	cfg.Drivers = append(cfg.Drivers, drvconf.Driver{Name: "spi", Type: "SPI", Direction: "INOUT", Peripheral: drvconf.Ident("SPI1")})
	data, err := drvconf.Encode(cfg, drvconf.FormatYAML)
	require.NoError(t, err)
	path := filepath.Join(dir, "drivers_conf.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	err = (&Check{Config: path}).Run(discard())
	require.Error(t, err)
	assert.True(t, drvconf.IsKind(err, drvconf.KindUnsupportedType), "got %v", err)

	err = (&Generate{Config: path, DryRun: true}).Run(discard(), log.NewDump(nil))
	assert.True(t, drvconf.IsKind(err, drvconf.KindUnsupportedType), "got %v", err)

	assert.Error(t, (&Check{Config: writeSample(t, dir), TemplatesDir: filepath.Join(dir, "nowhere")}).Run(discard()))
}

func TestTemplatesExport(t *testing.T) {
	dir := t.TempDir()
	exp := &TemplatesExport{Dir: dir}
	require.NoError(t, exp.Run(discard()))

	for _, name := range []string{cgen.SourceTemplateFile, cgen.HeaderTemplateFile} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Contains(t, string(data), "@@marker:functions")
	}

	assert.Error(t, exp.Run(discard()), "existing templates are kept without --force")
	exp.Force = true
	assert.NoError(t, exp.Run(discard()))
}

func TestConfigInitGenerate(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "generate.yaml")
	c := &ConfigInit{Command: "generate", Format: "yaml", Output: dest}
	require.NoError(t, c.Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, map[string]any{
		"templates_dir": "",
		"dry_run":       false,
		"date":          "",
		"author":        "Auto-generated by drvgen",
	}, got)

	assert.Error(t, c.Run())
	c.Force = true
	assert.NoError(t, c.Run())
}

func TestConfigInitRootOptions(t *testing.T) {
	got := buildMapFromStruct(reflect.TypeOf(CLI{}))
	assert.Equal(t, "info", got["log"].(map[string]any)["level"])
	assert.Contains(t, got["log"], "dump_file")
	assert.Contains(t, got, "config")
	assert.NotContains(t, got, "generate")
}

func TestSnakeCase(t *testing.T) {
	for in, want := range map[string]string{
		"TemplatesDir": "templates_dir",
		"DryRun":       "dry_run",
		"ITEnabled":    "it_enabled",
		"Date":         "date",
	} {
		assert.Equal(t, want, snakeCase(in), in)
	}
}

func TestConfigSample(t *testing.T) {
	for _, format := range []string{"yaml", "toml", "json"} {
		t.Run(format, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "drivers_conf."+format)
			require.NoError(t, (&ConfigSample{Format: format, Output: dest}).Run(discard()))

			cfg, err := drvconf.Load(dest)
			require.NoError(t, err)
			assert.Equal(t, SampleConfig(DefaultSampleAnswers()), cfg)
		})
	}
}

type scriptedPrompter struct {
	inputs   map[string]string
	confirms map[string]bool
	err      error
}

func (p *scriptedPrompter) Input(message, def string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	if v, ok := p.inputs[message]; ok {
		return v, nil
	}
	return def, nil
}

func (p *scriptedPrompter) Confirm(message string, def bool) (bool, error) {
	if v, ok := p.confirms[message]; ok {
		return v, nil
	}
	return def, nil
}

func TestConfigSampleInteractive(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "board.yaml")
	c := &ConfigSample{Format: "yaml", Output: dest, Interactive: true, prompter: &scriptedPrompter{
		inputs: map[string]string{
			"C file base name:":        "board_alloc",
			"Console UART peripheral:": "USART3",
		},
		confirms: map[string]bool{
			"Receive on the console UART with interrupts?": false,
			"Include an LCD driver?":                       false,
		},
	}}
	require.NoError(t, c.Run(discard()))

	cfg, err := drvconf.Load(dest)
	require.NoError(t, err)
	assert.Equal(t, "board_alloc", cfg.TargetC.Name)
	assert.Equal(t, []string{"board_alloc.h"}, cfg.IncludesC)
	require.Len(t, cfg.Drivers, 2)
	assert.Equal(t, drvconf.Ident("USART3"), cfg.Drivers[0].Peripheral)
	assert.False(t, cfg.Drivers[0].ITEnabled)
}

func TestConfigSampleInteractiveAborted(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "board.yaml")
	c := &ConfigSample{Format: "yaml", Output: dest, Interactive: true, prompter: &scriptedPrompter{err: ErrAborted}}
	err := c.Run(discard())
	assert.True(t, errors.Is(err, ErrAborted))
	assert.NoFileExists(t, dest)
}
