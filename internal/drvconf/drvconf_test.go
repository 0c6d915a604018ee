package drvconf_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smolos/drvgen/internal/drvconf"
)

func TestLoadYAML(t *testing.T) {
	cfg, err := drvconf.Load(filepath.Join("testdata", "drivers_conf.yaml"))
	require.NoError(t, err)

	require.Len(t, cfg.Drivers, 3)
	assert.Equal(t, drvconf.Ident("USART1"), cfg.Drivers[0].Peripheral)
	assert.True(t, cfg.Drivers[0].ITEnabled)
	assert.Equal(t, drvconf.Pin("J", "5"), cfg.Drivers[1].Peripheral)
	assert.False(t, cfg.Drivers[1].ITEnabled)
	assert.True(t, cfg.Drivers[2].Peripheral.IsAbsent(), "legacy None must decode as absent")

	seq, ok := cfg.SequenceFor("USART")
	require.True(t, ok)
	assert.Equal(t, drvconf.SizeExpr("64"), seq.BufferSize)
	assert.Equal(t, []string{"HAL_UART_Receive_IT(<handler>, <buffer>.buffer, 1);"}, seq.ITSequence)

	_, ok = cfg.SequenceFor("LCD")
	assert.False(t, ok)

	assert.Equal(t, "Src", cfg.TargetC.SourceDirOrDefault())
	assert.Equal(t, "Inc", cfg.TargetC.HeaderDirOrDefault())
	assert.Equal(t, drvconf.DefaultInterruptPath, cfg.TargetRust.InterruptPathOrDefault())
}

func TestLoadTOMLMatchesYAMLShape(t *testing.T) {
	cfg, err := drvconf.Decode(mustRead(t, "drivers_conf.toml"), "toml")
	require.NoError(t, err)

	require.Len(t, cfg.Drivers, 2)
	assert.Equal(t, "uart_console", cfg.Drivers[0].Name)
	assert.Equal(t, drvconf.Ident("USART1"), cfg.Drivers[0].Peripheral)
	assert.Equal(t, drvconf.Pin("J", "5"), cfg.Drivers[1].Peripheral)
	require.Len(t, cfg.InitSequence, 1)
	assert.Equal(t, drvconf.SizeExpr("64"), cfg.InitSequence[0].BufferSize)
	assert.Equal(t, "drivers_alloc", cfg.TargetC.Name)
}

func TestDecodeJSONPeripheralShapes(t *testing.T) {
	doc := `{
		"drivers": [
			{"name": "a", "type": "USART", "direction": "IN", "peripheral": "USART2"},
			{"name": "b", "type": "GPIO", "direction": "OUT", "peripheral": {"port": "B", "pin": 7}},
			{"name": "c", "type": "LCD", "direction": "OUT", "peripheral": null},
			{"name": "d", "type": "LCD", "direction": "OUT"}
		],
		"init_sequence": [{"driver": "USART", "sequence": [], "buffer_size": "RX_SIZE"}],
		"includes_c": [], "includes_h": [],
		"target_c_file": {"directory": "d", "name": "n"},
		"target_rust_file": {"directory": "r", "name": "irq"}
	}`
	cfg, err := drvconf.Decode([]byte(doc), "json")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, drvconf.Ident("USART2"), cfg.Drivers[0].Peripheral)
	assert.Equal(t, drvconf.Pin("B", "7"), cfg.Drivers[1].Peripheral)
	assert.True(t, cfg.Drivers[2].Peripheral.IsAbsent())
	assert.True(t, cfg.Drivers[3].Peripheral.IsAbsent())
	assert.Equal(t, drvconf.SizeExpr("RX_SIZE"), cfg.InitSequence[0].BufferSize)
}

func TestDecodeRejectsBadPeripheral(t *testing.T) {
	doc := "drivers:\n  - name: x\n    type: GPIO\n    direction: OUT\n    peripheral: [1, 2]\n"
	_, err := drvconf.Decode([]byte(doc), "yaml")
	require.Error(t, err)
	assert.True(t, drvconf.IsKind(err, drvconf.KindDecode))
}

func TestValidate(t *testing.T) {
	base := func() *drvconf.Config {
		return &drvconf.Config{
			Drivers: []drvconf.Driver{
				{Name: "uart", Type: "USART", Direction: "INOUT", Peripheral: drvconf.Ident("USART1")},
			},
			InitSequence: []drvconf.InitSequence{{Driver: "USART"}},
			IncludesC:    []string{},
			IncludesH:    []string{},
			TargetC:      &drvconf.CTarget{Directory: "d", Name: "drivers_alloc"},
			TargetRust:   &drvconf.RustTarget{Directory: "r", Name: "interrupts"},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *drvconf.Config)
		kind   drvconf.ErrorKind
		msg    string
	}{
		{
			name:   "missing drivers",
			mutate: func(c *drvconf.Config) { c.Drivers = nil },
			kind:   drvconf.KindMissingKey,
			msg:    "drivers",
		},
		{
			name:   "missing init sequence",
			mutate: func(c *drvconf.Config) { c.InitSequence = nil },
			kind:   drvconf.KindMissingKey,
			msg:    "init_sequence",
		},
		{
			name:   "missing target name",
			mutate: func(c *drvconf.Config) { c.TargetC.Name = "" },
			kind:   drvconf.KindMissingKey,
			msg:    "target_c_file.name",
		},
		{
			name:   "missing rust target",
			mutate: func(c *drvconf.Config) { c.TargetRust = nil },
			kind:   drvconf.KindMissingKey,
			msg:    "target_rust_file",
		},
		{
			name: "duplicate driver name",
			mutate: func(c *drvconf.Config) {
				c.Drivers = append(c.Drivers, drvconf.Driver{Name: "uart", Type: "GPIO", Direction: "OUT", Peripheral: drvconf.Pin("A", "1")})
			},
			kind: drvconf.KindDuplicateName,
			msg:  "drivers[1].name",
		},
		{
			name: "duplicate init sequence",
			mutate: func(c *drvconf.Config) {
				c.InitSequence = append(c.InitSequence, drvconf.InitSequence{Driver: "USART"})
			},
			kind: drvconf.KindDuplicateSequence,
			msg:  "init_sequence[1].driver",
		},
		{
			name: "interrupt without peripheral",
			mutate: func(c *drvconf.Config) {
				c.Drivers = append(c.Drivers, drvconf.Driver{Name: "lcd", Type: "LCD", Direction: "OUT", ITEnabled: true})
			},
			kind: drvconf.KindInvalidPeripheral,
			msg:  "drivers[1].peripheral",
		},
		{
			name: "two interrupt drivers on one peripheral",
			mutate: func(c *drvconf.Config) {
				c.Drivers[0].ITEnabled = true
				c.Drivers = append(c.Drivers, drvconf.Driver{Name: "debug", Type: "USART", Direction: "IN", Peripheral: drvconf.Ident("USART1"), ITEnabled: true})
			},
			kind: drvconf.KindDuplicatePeripheral,
			msg:  "drivers[1].peripheral: USART1 already serves",
		},
		{
			name:   "driver without type",
			mutate: func(c *drvconf.Config) { c.Drivers[0].Type = "" },
			kind:   drvconf.KindMissingKey,
			msg:    "drivers[0].type",
		},
	}

	require.NoError(t, base().Validate())

	polled := base()
	polled.Drivers[0].ITEnabled = true
	polled.Drivers = append(polled.Drivers, drvconf.Driver{Name: "debug", Type: "USART", Direction: "OUT", Peripheral: drvconf.Ident("USART1")})
	require.NoError(t, polled.Validate(), "a polled driver may share an interrupt peripheral")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, drvconf.IsKind(err, tt.kind), "got %v", err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg, err := drvconf.Load(filepath.Join("testdata", "drivers_conf.yaml"))
	require.NoError(t, err)

	for _, format := range []string{"yaml", "json", "toml"} {
		t.Run(format, func(t *testing.T) {
			data, err := drvconf.Encode(cfg, format)
			require.NoError(t, err)

			back, err := drvconf.Decode(data, format)
			require.NoError(t, err)
			require.NoError(t, back.Validate())

			require.Len(t, back.Drivers, len(cfg.Drivers))
			for i := range cfg.Drivers {
				assert.Equal(t, cfg.Drivers[i], back.Drivers[i])
			}
			assert.Equal(t, cfg.InitSequence[0].BufferSize, back.InitSequence[0].BufferSize)
		})
	}
}

func mustRead(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}
