package axp209

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPowerControlSettersAreBitLocal(t *testing.T) {
	for v := 0; v < 256; v++ {
		reg := PowerControl(v)
		for _, e := range PowerControlTable {
			on := reg.With(e.Bit, true)
			require.Equal(t, reg|e.Bit, on)
			require.Equal(t, reg&^e.Bit, on.With(e.Bit, false))
			if !reg.Has(e.Bit) {
				require.Equal(t, reg, on.With(e.Bit, false), "reg=%#x bit=%s", v, e.Name)
			}
		}
	}
}

func TestAdcControlSettersAreBitLocal(t *testing.T) {
	for v := 0; v < 1<<16; v++ {
		reg := AdcControl(v)
		for _, e := range AdcControlTable {
			c := reg
			c.Set(e.Bit, !reg.Has(e.Bit))
			if c != reg^e.Bit {
				t.Fatalf("reg=%#04x %s: toggled to %#04x", v, e.Name, uint16(c))
			}
			c.Set(e.Bit, reg.Has(e.Bit))
			if c != reg {
				t.Fatalf("reg=%#04x %s: restored to %#04x", v, e.Name, uint16(c))
			}
		}
	}
}

func TestPowerControlNamedAccessors(t *testing.T) {
	var c PowerControl = 0xA0 // reserved bits 7 and 5 set
	c.SetLDO3(true)
	c.SetDCDC2(true)
	c.SetEXTEN(true)
	assert.True(t, c.LDO3())
	assert.True(t, c.DCDC2())
	assert.True(t, c.EXTEN())
	assert.False(t, c.LDO2())
	assert.False(t, c.LDO4())
	assert.False(t, c.DCDC3())
	assert.Equal(t, PowerControl(0xF1), c)

	c.SetLDO3(false)
	c.SetDCDC2(false)
	c.SetEXTEN(false)
	c.SetLDO2(true)
	c.SetLDO4(true)
	c.SetDCDC3(true)
	assert.Equal(t, PowerControl(0xAE), c)
}

func TestAdcControlNamedAccessors(t *testing.T) {
	var c AdcControl
	c.SetBatteryVoltage(true)
	c.SetBatteryCurrent(true)
	c.SetAcinVoltage(true)
	c.SetAcinCurrent(true)
	c.SetVbusVoltage(true)
	c.SetVbusCurrent(true)
	c.SetAPSVoltage(true)
	c.SetTSPin(true)
	c.SetTemperature(true)
	c.SetGPIO0(true)
	c.SetGPIO1(true)
	assert.Equal(t, AdcControl(0xFF8C), c)

	s := AdcStatus(c)
	assert.True(t, s.BatteryVoltage() && s.BatteryCurrent() && s.AcinVoltage() && s.AcinCurrent())
	assert.True(t, s.VbusVoltage() && s.VbusCurrent() && s.APSVoltage() && s.TSPin())
	assert.True(t, s.Temperature() && s.GPIO0() && s.GPIO1())

	c.SetTemperature(false)
	c.SetGPIO1(false)
	assert.False(t, c.Temperature())
	assert.False(t, c.GPIO1())
	assert.True(t, c.GPIO0())
	assert.Equal(t, AdcControl(0xFF08), c)
}

func TestStatusFlags(t *testing.T) {
	ps := PowerStatus(0b1010_0110)
	assert.True(t, ps.AcinPresent())
	assert.False(t, ps.AcinUsable())
	assert.True(t, ps.VbusPresent())
	assert.False(t, ps.VbusUsable())
	assert.False(t, ps.VbusAboveHold())
	assert.True(t, ps.Discharging())
	assert.True(t, ps.ShortCircuit())
	assert.False(t, ps.StartOnPower())

	cs := ChargingStatus(0b0110_1000)
	assert.False(t, cs.OverTemperature())
	assert.True(t, cs.Charging())
	assert.True(t, cs.BatteryPresent())
	assert.True(t, cs.CellActivation())
	assert.False(t, cs.ChargeCurrentLow())
}
