package cgen_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/smolos/drvgen/internal/codegen/analyzer"
	"github.com/smolos/drvgen/internal/codegen/genctx"
	"github.com/smolos/drvgen/internal/codegen/meta"
	"github.com/smolos/drvgen/internal/drvconf"
)

var fixedDate = time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)

// twoDriverConfig is one interrupt-driven USART plus one GPIO pin.
func twoDriverConfig() *drvconf.Config {
	return &drvconf.Config{
		Drivers: []drvconf.Driver{
			{Name: "console", Type: "USART", Direction: "INOUT", Peripheral: drvconf.Ident("USART1"), ITEnabled: true},
			{Name: "led", Type: "GPIO", Direction: "OUT", Peripheral: drvconf.Pin("A", "5")},
		},
		InitSequence: []drvconf.InitSequence{
			{
				Driver:     "USART",
				Sequence:   []string{"MX_<drv_name>_UART_Init();"},
				ITSequence: []string{"HAL_UART_Receive_IT(<handler>, <buffer>.buffer, 1);"},
				Includes:   []string{"lib_buffer.h"},
				BufferSize: "64",
			},
			{
				Driver:   "GPIO",
				Sequence: []string{"MX_GPIO_Init();"},
				Includes: []string{"gpio.h"},
			},
		},
		IncludesC:  []string{"drivers_alloc.h"},
		IncludesH:  []string{"drivers_types.h"},
		TargetC:    &drvconf.CTarget{Directory: "drivers/Interface", Name: "drivers_alloc"},
		TargetRust: &drvconf.RustTarget{Directory: "src", Name: "interrupts"},
	}
}

func analyze(t *testing.T, cfg *drvconf.Config) *meta.Analysis {
	t.Helper()
	a, err := analyzer.Analyze(cfg)
	require.NoError(t, err)
	return a
}

func quietCtx() *genctx.Context {
	return genctx.Quiet(fixedDate)
}
