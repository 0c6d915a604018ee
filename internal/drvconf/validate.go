package drvconf

import (
	"errors"
	"fmt"
)

// Validate checks the keys the generator reads and rejects the invariant
// violations older tooling let through: duplicate driver names, two init
// sequences for the same driver type, or two interrupt-enabled drivers on
// one peripheral (their buffers and IRQ wrappers would collide). All
// defects are joined in one error.
func (c *Config) Validate() error {
	var errs []error

	if c.Drivers == nil {
		errs = append(errs, ErrMissingKey("drivers"))
	}
	if c.InitSequence == nil {
		errs = append(errs, ErrMissingKey("init_sequence"))
	}
	if c.IncludesC == nil {
		errs = append(errs, ErrMissingKey("includes_c"))
	}
	if c.IncludesH == nil {
		errs = append(errs, ErrMissingKey("includes_h"))
	}
	if c.TargetC == nil {
		errs = append(errs, ErrMissingKey("target_c_file"))
	} else {
		if c.TargetC.Directory == "" {
			errs = append(errs, ErrMissingKey("target_c_file.directory"))
		}
		if c.TargetC.Name == "" {
			errs = append(errs, ErrMissingKey("target_c_file.name"))
		}
	}
	if c.TargetRust == nil {
		errs = append(errs, ErrMissingKey("target_rust_file"))
	} else {
		if c.TargetRust.Directory == "" {
			errs = append(errs, ErrMissingKey("target_rust_file.directory"))
		}
		if c.TargetRust.Name == "" {
			errs = append(errs, ErrMissingKey("target_rust_file.name"))
		}
	}

	names := make(map[string]int, len(c.Drivers))
	irqs := make(map[string]struct{})
	for i, d := range c.Drivers {
		key := fmt.Sprintf("drivers[%d]", i)
		if d.Name == "" {
			errs = append(errs, ErrMissingKey(key+".name"))
		}
		if d.Type == "" {
			errs = append(errs, ErrMissingKey(key+".type"))
		}
		if d.Direction == "" {
			errs = append(errs, ErrMissingKey(key+".direction"))
		}
		if d.ITEnabled && d.Peripheral.IsAbsent() {
			errs = append(errs, ErrInvalidPeripheral(key+".peripheral", "interrupt-enabled driver needs a peripheral"))
		} else if d.ITEnabled {
			p := d.Peripheral.String()
			if _, ok := irqs[p]; ok {
				errs = append(errs, ErrDuplicatePeripheral(key+".peripheral", p))
			}
			irqs[p] = struct{}{}
		}
		if d.Name == "" {
			continue
		}
		if _, ok := names[d.Name]; ok {
			errs = append(errs, ErrDuplicateName(key+".name", d.Name))
			continue
		}
		names[d.Name] = i
	}

	seqs := make(map[string]struct{}, len(c.InitSequence))
	for i, s := range c.InitSequence {
		key := fmt.Sprintf("init_sequence[%d]", i)
		if s.Driver == "" {
			errs = append(errs, ErrMissingKey(key+".driver"))
			continue
		}
		if _, ok := seqs[s.Driver]; ok {
			errs = append(errs, ErrDuplicateSequence(key+".driver", s.Driver))
			continue
		}
		seqs[s.Driver] = struct{}{}
	}

	return errors.Join(errs...)
}
