package drvconf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// legacyAbsent is the literal older configuration files use for "no peripheral".
const legacyAbsent = "None"

// GPIOPin is the structured peripheral of a GPIO driver.
type GPIOPin struct {
	Port string `yaml:"port" json:"port"`
	Pin  string `yaml:"pin" json:"pin"`
}

// Peripheral is either absent, a plain identifier (e.g. "USART3") or a GPIO
// port/pin pair. The zero value is absent.
type Peripheral struct {
	ID  string
	Pin *GPIOPin
}

// Ident returns a peripheral referring to a named hardware block.
func Ident(id string) Peripheral { return Peripheral{ID: id} }

// Pin returns a GPIO port/pin peripheral.
func Pin(port, pin string) Peripheral { return Peripheral{Pin: &GPIOPin{Port: port, Pin: pin}} }

// IsAbsent reports whether no peripheral is attached to the driver.
func (p Peripheral) IsAbsent() bool { return p.ID == "" && p.Pin == nil }

// IsZero lets yaml omitempty drop absent peripherals.
func (p Peripheral) IsZero() bool { return p.IsAbsent() }

// String renders the peripheral the way it appears in generated identifiers.
func (p Peripheral) String() string {
	switch {
	case p.Pin != nil:
		return "P" + p.Pin.Port + p.Pin.Pin
	default:
		return p.ID
	}
}

func (p *Peripheral) setScalar(v string) {
	v = strings.TrimSpace(v)
	if v == "" || v == legacyAbsent {
		*p = Peripheral{}
		return
	}
	*p = Peripheral{ID: v}
}

func (p *Peripheral) setPin(port, pin any) error {
	if port == nil || pin == nil {
		return fmt.Errorf("peripheral mapping requires both port and pin")
	}
	*p = Peripheral{Pin: &GPIOPin{Port: fmt.Sprint(port), Pin: fmt.Sprint(pin)}}
	return nil
}

// UnmarshalYAML accepts a scalar identifier or a {port, pin} mapping.
func (p *Peripheral) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			*p = Peripheral{}
			return nil
		}
		p.setScalar(n.Value)
		return nil
	case yaml.MappingNode:
		var raw struct {
			Port any `yaml:"port"`
			Pin  any `yaml:"pin"`
		}
		if err := n.Decode(&raw); err != nil {
			return err
		}
		return p.setPin(raw.Port, raw.Pin)
	default:
		return fmt.Errorf("line %d: peripheral must be a string or a {port, pin} mapping", n.Line)
	}
}

// MarshalYAML writes the peripheral back in its document form.
func (p Peripheral) MarshalYAML() (any, error) {
	switch {
	case p.Pin != nil:
		return p.Pin, nil
	case p.ID != "":
		return p.ID, nil
	default:
		return nil, nil
	}
}

// UnmarshalJSON accepts null, a string or a {port, pin} object.
func (p *Peripheral) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*p = Peripheral{}
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		p.setScalar(s)
		return nil
	case data[0] == '{':
		var raw struct {
			Port any `json:"port"`
			Pin  any `json:"pin"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		return p.setPin(raw.Port, raw.Pin)
	default:
		return fmt.Errorf("peripheral must be a string or a {port, pin} object, got %s", data)
	}
}

// MarshalJSON mirrors MarshalYAML.
func (p Peripheral) MarshalJSON() ([]byte, error) {
	switch {
	case p.Pin != nil:
		return json.Marshal(p.Pin)
	case p.ID != "":
		return json.Marshal(p.ID)
	default:
		return []byte("null"), nil
	}
}

// SizeExpr is a buffer size: either a number or a symbolic C expression.
// It is kept as text since it is only ever pasted into a #define.
type SizeExpr string

// IsZero lets yaml omitempty drop unset sizes.
func (s SizeExpr) IsZero() bool { return s == "" }

// UnmarshalYAML accepts any scalar.
func (s *SizeExpr) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: buffer_size must be a scalar", n.Line)
	}
	*s = SizeExpr(strings.TrimSpace(n.Value))
	return nil
}

// MarshalYAML emits numeric sizes as integers.
func (s SizeExpr) MarshalYAML() (any, error) {
	if n, err := strconv.ParseInt(string(s), 10, 64); err == nil {
		return n, nil
	}
	return string(s), nil
}

// UnmarshalJSON accepts a number or a string.
func (s *SizeExpr) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = SizeExpr(strings.TrimSpace(v))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("buffer_size must be a number or a string: %w", err)
	}
	*s = SizeExpr(n.String())
	return nil
}

// MarshalJSON emits numeric sizes as JSON numbers.
func (s SizeExpr) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(s), 10, 64); err == nil {
		return []byte(s), nil
	}
	return json.Marshal(string(s))
}
