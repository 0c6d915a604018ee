package cmd

import "github.com/alecthomas/kong"

// LogConfig holds the logging flags shared by every command.
type LogConfig struct {
	Level    string `help:"Log level" default:"info" enum:"trace,debug,info,warn,error" env:"DRVGEN_LOG_LEVEL"`
	File     string `help:"Also write logs to this file" env:"DRVGEN_LOG_FILE"`
	DumpFile string `help:"Write every rendered artifact to this file" env:"DRVGEN_LOG_DUMP_FILE"`
}

// CLI is the root command tree.
type CLI struct {
	ConfigFile string           `name:"config" help:"Tool options file (json, yaml or toml)" env:"DRVGEN_CONFIG"`
	Log        LogConfig        `embed:"" prefix:"log."`
	Version    kong.VersionFlag `help:"Print version and exit"`

	Generate  Generate         `cmd:"" help:"Generate the driver allocation sources and Rust interrupt bindings"`
	Check     Check            `cmd:"" help:"Load, validate and analyze a drivers configuration without writing files"`
	Templates TemplatesCommand `cmd:"" help:"Manage the C templates"`
	Config    ConfigCommand    `cmd:"" help:"Scaffold configuration files"`
}
