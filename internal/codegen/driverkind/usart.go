package driverkind

import (
	"fmt"
	"strings"

	"github.com/smolos/drvgen/internal/drvconf"
)

// USART handle naming follows the STM32Cube convention (huart1, huart2, ...).
const (
	USARTType       = "USART"
	usartHandlePfx  = "&huart"
	usartInclude    = "usart.h"
	usartIRQHandler = "HAL_UART_IRQHandler"
)

func init() { Register(usart{}) }

type usart struct{}

func (usart) Name() string { return USARTType }

func (usart) Resolve(d drvconf.Driver) (Handle, error) {
	switch {
	case d.Peripheral.IsAbsent():
		return Handle{}, drvconf.ErrInvalidPeripheral(driverKey(d), "USART drivers need a peripheral such as USART1")
	case d.Peripheral.Pin != nil:
		return Handle{}, drvconf.ErrInvalidPeripheral(driverKey(d), "USART peripheral must be an identifier, not a port/pin pair")
	}
	return Handle{Expr: usartHandlePfx + strings.TrimPrefix(d.Peripheral.ID, USARTType)}, nil
}

func (usart) Includes() []string { return []string{usartInclude} }

func (usart) PerDriverInit() bool { return true }

func (usart) IRQBody(_ drvconf.Driver, h Handle) []string {
	return []string{fmt.Sprintf("%s(%s);", usartIRQHandler, h.Expr)}
}
