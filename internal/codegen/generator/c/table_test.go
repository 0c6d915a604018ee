package cgen_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cgen "github.com/smolos/drvgen/internal/codegen/generator/c"
	"github.com/smolos/drvgen/internal/drvconf"
)

func TestBuildTableRowsFollowInput(t *testing.T) {
	for _, n := range []int{0, 1, 5, 12} {
		t.Run(fmt.Sprintf("%d drivers", n), func(t *testing.T) {
			cfg := &drvconf.Config{}
			for i := 0; i < n; i++ {
				d := drvconf.Driver{Name: fmt.Sprintf("drv%d", i), Direction: "OUT"}
				switch i % 3 {
				case 0:
					d.Type, d.Peripheral = "USART", drvconf.Ident(fmt.Sprintf("USART%d", i+1))
				case 1:
					d.Type, d.Peripheral = "GPIO", drvconf.Pin("B", fmt.Sprint(i))
				default:
					d.Type = "LCD"
				}
				cfg.Drivers = append(cfg.Drivers, d)
			}

			lines, err := cgen.BuildTable(cfg, analyze(t, cfg))
			require.NoError(t, err)

			var rows []string
			for _, l := range lines {
				if strings.HasPrefix(l, "    { (uint8_t*)") {
					rows = append(rows, l)
				}
			}
			require.Len(t, rows, n)
			for i, row := range rows {
				assert.Contains(t, row, fmt.Sprintf(`"drv%d"`, i))
				assert.True(t, strings.HasSuffix(row, fmt.Sprintf(", %d },", i)), row)
			}
		})
	}
}

func TestBuildTable(t *testing.T) {
	cfg := twoDriverConfig()
	lines, err := cgen.BuildTable(cfg, analyze(t, cfg))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"const GPIO_ALLOC GPIO_PA5 = {",
		"    .gpio = GPIOA,",
		"    .pin = GPIO_PIN_5,",
		"};",
		"const DRIVER_ALLOC DRIVERS_ALLOC[] = {",
		`    { (uint8_t*)"console", USART, INOUT, (void*) &huart1, (void*) &USART1_BUFFER, 0 },`,
		`    { (uint8_t*)"led", GPIO, OUT, (void*) &GPIO_PA5, (void*) 0, 1 },`,
		"};",
	}, lines)
}

func TestBuildTableSharedPinDeclaredOnce(t *testing.T) {
	cfg := &drvconf.Config{Drivers: []drvconf.Driver{
		{Name: "in", Type: "GPIO", Direction: "IN", Peripheral: drvconf.Pin("C", "13")},
		{Name: "out", Type: "GPIO", Direction: "OUT", Peripheral: drvconf.Pin("C", "13")},
	}}
	lines, err := cgen.BuildTable(cfg, analyze(t, cfg))
	require.NoError(t, err)

	count := 0
	for _, l := range lines {
		if l == "const GPIO_ALLOC GPIO_PC13 = {" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestBuildTableUnsupportedType(t *testing.T) {
	cfg := &drvconf.Config{Drivers: []drvconf.Driver{
		{Name: "spi", Type: "SPI", Direction: "INOUT", Peripheral: drvconf.Ident("SPI2")},
	}}
	_, err := cgen.BuildTable(cfg, analyze(t, cfg))
	require.Error(t, err)
	assert.True(t, drvconf.IsKind(err, drvconf.KindUnsupportedType))
}

func TestBufferAndExternDecls(t *testing.T) {
	cfg := twoDriverConfig()
	a := analyze(t, cfg)

	assert.Equal(t, []string{
		"uint8_t USART1_BUFFER_BUF[USART_BUFFER_SIZE];",
		"RX_BUFFER USART1_BUFFER = {",
		"    .buffer = USART1_BUFFER_BUF,",
		"    .size = 0,",
		"};",
	}, cgen.BufferDecls(a))

	assert.Equal(t, []string{
		"extern const DRIVER_ALLOC DRIVERS_ALLOC[];",
		"extern RX_BUFFER USART1_BUFFER;",
	}, cgen.ExternDecls(a))
}
