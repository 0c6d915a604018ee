package common

// ITHandlerSuffix names the C function wrapping a peripheral's interrupt.
const ITHandlerSuffix = "_it_handler"

// ITHandlerName is the C symbol shared by the generated C wrapper and the
// Rust extern declaration, e.g. USART1 -> USART1_it_handler.
func ITHandlerName(peripheral string) string {
	return peripheral + ITHandlerSuffix
}
