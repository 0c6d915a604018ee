// Package drvconf holds the decoded drivers configuration document consumed
// by the code generator, together with its loaders and validation rules.
package drvconf

// Default values applied to optional target fields.
const (
	DefaultSourceDir     = "Src"
	DefaultHeaderDir     = "Inc"
	DefaultInterruptPath = "stm32f7::stm32f769::interrupt"
)

// Config is the whole drivers configuration document.
type Config struct {
	Drivers      []Driver       `yaml:"drivers" json:"drivers"`
	InitSequence []InitSequence `yaml:"init_sequence" json:"init_sequence"`
	IncludesC    []string       `yaml:"includes_c" json:"includes_c"`
	IncludesH    []string       `yaml:"includes_h" json:"includes_h"`
	TargetC      *CTarget       `yaml:"target_c_file" json:"target_c_file"`
	TargetRust   *RustTarget    `yaml:"target_rust_file" json:"target_rust_file"`
	Templates    *Templates     `yaml:"templates,omitempty" json:"templates,omitempty"`
}

// Driver is one configured peripheral instance.
type Driver struct {
	Name       string     `yaml:"name" json:"name"`
	Type       string     `yaml:"type" json:"type"`
	Direction  string     `yaml:"direction" json:"direction"`
	Peripheral Peripheral `yaml:"peripheral,omitempty" json:"peripheral"`
	ITEnabled  bool       `yaml:"it_enabled,omitempty" json:"it_enabled,omitempty"`
}

// InitSequence lists the setup instructions of one driver type.
// Instruction lines may carry the <drv_name>, <handler> and <buffer>
// placeholders, which are only substituted for per-driver kinds.
type InitSequence struct {
	Driver     string   `yaml:"driver" json:"driver"`
	Sequence   []string `yaml:"sequence" json:"sequence"`
	ITSequence []string `yaml:"it_enabled_sequence,omitempty" json:"it_enabled_sequence,omitempty"`
	Includes   []string `yaml:"includes,omitempty" json:"includes,omitempty"`
	BufferSize SizeExpr `yaml:"buffer_size,omitempty" json:"buffer_size,omitempty"`
}

// CTarget describes where the C source/header pair is written.
type CTarget struct {
	Directory string `yaml:"directory" json:"directory"`
	Name      string `yaml:"name" json:"name"`
	SourceDir string `yaml:"source_dir,omitempty" json:"source_dir,omitempty"`
	HeaderDir string `yaml:"header_dir,omitempty" json:"header_dir,omitempty"`
}

// RustTarget describes where the interrupt binding file is written.
type RustTarget struct {
	Directory     string `yaml:"directory" json:"directory"`
	Name          string `yaml:"name" json:"name"`
	InterruptPath string `yaml:"interrupt_path,omitempty" json:"interrupt_path,omitempty"`
}

// Templates optionally overrides the embedded C and header templates.
type Templates struct {
	C string `yaml:"c,omitempty" json:"c,omitempty"`
	H string `yaml:"h,omitempty" json:"h,omitempty"`
}

// SequenceFor returns the init sequence registered for a driver type.
func (c *Config) SequenceFor(driverType string) (*InitSequence, bool) {
	for i := range c.InitSequence {
		if c.InitSequence[i].Driver == driverType {
			return &c.InitSequence[i], true
		}
	}
	return nil, false
}

// DriversOfType returns the drivers of one type, in input order.
func (c *Config) DriversOfType(driverType string) []Driver {
	var out []Driver
	for _, d := range c.Drivers {
		if d.Type == driverType {
			out = append(out, d)
		}
	}
	return out
}

// SourceDirOrDefault returns the subdirectory receiving the .c file.
func (t *CTarget) SourceDirOrDefault() string {
	if t.SourceDir == "" {
		return DefaultSourceDir
	}
	return t.SourceDir
}

// HeaderDirOrDefault returns the subdirectory receiving the .h file.
func (t *CTarget) HeaderDirOrDefault() string {
	if t.HeaderDir == "" {
		return DefaultHeaderDir
	}
	return t.HeaderDir
}

// InterruptPathOrDefault returns the Rust path imported for the interrupt attribute.
func (t *RustTarget) InterruptPathOrDefault() string {
	if t.InterruptPath == "" {
		return DefaultInterruptPath
	}
	return t.InterruptPath
}
