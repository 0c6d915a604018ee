package driverkind

import (
	"github.com/smolos/drvgen/internal/codegen/common"
	"github.com/smolos/drvgen/internal/drvconf"
)

const (
	GPIOType      = "GPIO"
	gpioAllocType = "GPIO_ALLOC"
)

func init() { Register(gpio{}) }

// gpio drivers reference a const GPIO_ALLOC object named after the pin,
// which the table emits ahead of the driver array.
type gpio struct{}

func (gpio) Name() string { return GPIOType }

func (gpio) Resolve(d drvconf.Driver) (Handle, error) {
	p := d.Peripheral.Pin
	if p == nil {
		return Handle{}, drvconf.ErrInvalidPeripheral(driverKey(d), "GPIO drivers need a {port, pin} peripheral")
	}
	if p.Port == "" || p.Pin == "" {
		return Handle{}, drvconf.ErrInvalidPeripheral(driverKey(d), "GPIO port and pin must not be empty")
	}

	name := GPIOConstName(p.Port, p.Pin)
	decls := common.StructInit(gpioAllocType, name, []common.Field{
		{Name: "gpio", Value: "GPIO" + p.Port},
		{Name: "pin", Value: "GPIO_PIN_" + p.Pin},
	}, true)
	return Handle{Expr: "&" + name, Decls: decls}, nil
}

func (gpio) Includes() []string { return nil }

func (gpio) PerDriverInit() bool { return false }

func (gpio) IRQBody(drvconf.Driver, Handle) []string { return nil }

// GPIOConstName is the identifier of the GPIO_ALLOC constant for a pin.
func GPIOConstName(port, pin string) string {
	return "GPIO_P" + port + pin
}
