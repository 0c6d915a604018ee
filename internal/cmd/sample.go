package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/term"

	"github.com/smolos/drvgen/internal/drvconf"
)

// ErrAborted is returned when the user interrupts an interactive prompt.
var ErrAborted = errors.New("aborted")

// ConfigSample writes a starter drivers configuration document.
type ConfigSample struct {
	Format      string `help:"Output format" enum:"yaml,toml,json" default:"yaml"`
	Output      string `help:"Destination file path (defaults to drivers_conf.<format>)"`
	Interactive bool   `help:"Prompt for the target names and the drivers to include"`
	Force       bool   `help:"Overwrite if the file already exists"`

	prompter prompter `kong:"-"`
}

// SampleAnswers are the choices a sample document is built from.
type SampleAnswers struct {
	TargetDir   string
	TargetName  string
	RustDir     string
	RustName    string
	UARTPeriph  string
	UARTIT      bool
	LEDPort     string
	LEDPin      string
	IncludeLCD  bool
	BufferBytes string
}

// DefaultSampleAnswers describes a console UART, a status LED and an LCD.
func DefaultSampleAnswers() SampleAnswers {
	return SampleAnswers{
		TargetDir:   "drivers/Interface",
		TargetName:  "drivers_alloc",
		RustDir:     "src",
		RustName:    "interrupts",
		UARTPeriph:  "USART1",
		UARTIT:      true,
		LEDPort:     "J",
		LEDPin:      "5",
		IncludeLCD:  true,
		BufferBytes: "64",
	}
}

// SampleConfig builds the drivers document described by ans.
func SampleConfig(ans SampleAnswers) *drvconf.Config {
	cfg := &drvconf.Config{
		Drivers: []drvconf.Driver{
			{Name: "uart_console", Type: "USART", Direction: "INOUT", Peripheral: drvconf.Ident(ans.UARTPeriph), ITEnabled: ans.UARTIT},
			{Name: "led_status", Type: "GPIO", Direction: "OUT", Peripheral: drvconf.Pin(ans.LEDPort, ans.LEDPin)},
		},
		InitSequence: []drvconf.InitSequence{
			{
				Driver:     "USART",
				Sequence:   []string{"MX_<drv_name>_UART_Init();"},
				ITSequence: []string{"HAL_UART_Receive_IT(<handler>, <buffer>.buffer, 1);"},
				Includes:   []string{"lib_buffer.h"},
				BufferSize: drvconf.SizeExpr(ans.BufferBytes),
			},
			{
				Driver:   "GPIO",
				Sequence: []string{"MX_GPIO_Init();"},
				Includes: []string{"gpio.h"},
			},
		},
		IncludesC:  []string{ans.TargetName + ".h"},
		IncludesH:  []string{"drivers_types.h"},
		TargetC:    &drvconf.CTarget{Directory: ans.TargetDir, Name: ans.TargetName},
		TargetRust: &drvconf.RustTarget{Directory: ans.RustDir, Name: ans.RustName},
	}
	if ans.IncludeLCD {
		cfg.Drivers = append(cfg.Drivers, drvconf.Driver{Name: "lcd", Type: "LCD", Direction: "OUT"})
	}
	return cfg
}

// Run is called by Kong when the config sample command is executed.
func (c *ConfigSample) Run(logger *slog.Logger) error {
	format := drvconf.NormalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}
	dest := c.Output
	if dest == "" {
		dest = "drivers_conf." + format
	}

	ans := DefaultSampleAnswers()
	if c.Interactive {
		p := c.prompter
		if p == nil {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return errors.New("--interactive needs a terminal on stdin")
			}
			p = surveyPrompter{}
		}
		var err error
		if ans, err = askSample(p, ans); err != nil {
			return err
		}
	}

	cfg := SampleConfig(ans)
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := drvconf.Encode(cfg, format)
	if err != nil {
		return err
	}
	if err := writeNew(dest, data, c.Force); err != nil {
		return err
	}
	logger.Info("Wrote sample drivers configuration", "file", dest, "drivers", len(cfg.Drivers))
	return nil
}

// prompter is the subset of survey prompts the sample flow needs.
type prompter interface {
	Input(message, def string) (string, error)
	Confirm(message string, def bool) (bool, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Input(message, def string) (string, error) {
	var out string
	prompt := &survey.Input{Message: message, Default: def}
	if err := survey.AskOne(prompt, &out, survey.WithValidator(survey.Required)); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyPrompter) Confirm(message string, def bool) (bool, error) {
	var out bool
	prompt := &survey.Confirm{Message: message, Default: def}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func askSample(p prompter, ans SampleAnswers) (SampleAnswers, error) {
	inputs := []struct {
		msg string
		dst *string
	}{
		{"C output directory:", &ans.TargetDir},
		{"C file base name:", &ans.TargetName},
		{"Rust output directory:", &ans.RustDir},
		{"Rust file base name:", &ans.RustName},
		{"Console UART peripheral:", &ans.UARTPeriph},
		{"Status LED port:", &ans.LEDPort},
		{"Status LED pin:", &ans.LEDPin},
	}
	for _, in := range inputs {
		v, err := p.Input(in.msg, *in.dst)
		if err != nil {
			return ans, err
		}
		*in.dst = v
	}

	var err error
	if ans.UARTIT, err = p.Confirm("Receive on the console UART with interrupts?", ans.UARTIT); err != nil {
		return ans, err
	}
	if ans.UARTIT {
		if ans.BufferBytes, err = p.Input("Receive buffer size:", ans.BufferBytes); err != nil {
			return ans, err
		}
	}
	if ans.IncludeLCD, err = p.Confirm("Include an LCD driver?", ans.IncludeLCD); err != nil {
		return ans, err
	}
	return ans, nil
}
