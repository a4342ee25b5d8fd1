package axp209

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterMap(t *testing.T) {
	cases := []struct {
		reg   Register
		addr  byte
		width int
		cat   Category
	}{
		{RegPowerStatus, 0x00, 1, CatStatus},
		{RegChargingStatus, 0x01, 1, CatStatus},
		{RegPowerControl, 0x12, 1, CatControl},
		{RegAdcControl, 0x82, 2, CatControl},
		{RegTimerControl, 0x8A, 1, CatTimer},
		{RegAcinVoltage, 0x56, 2, CatADC},
		{RegAcinCurrent, 0x58, 2, CatADC},
		{RegVbusVoltage, 0x5A, 2, CatADC},
		{RegVbusCurrent, 0x5C, 2, CatADC},
		{RegTemperature, 0x5E, 2, CatADC},
		{RegTSVoltage, 0x62, 2, CatADC},
		{RegGPIO0Voltage, 0x64, 2, CatADC},
		{RegGPIO1Voltage, 0x66, 2, CatADC},
		{RegBatteryVoltage, 0x78, 2, CatADC},
		{RegBatteryCharge, 0x7A, 2, CatADC},
		{RegBatteryDischarge, 0x7C, 2, CatADC},
		{RegIPSOutVoltage, 0x7E, 2, CatADC},
		{RegBatteryLevel, 0xB9, 1, CatADC},
	}
	assert.Len(t, Registers(), len(cases))
	for _, c := range cases {
		assert.Equal(t, c.addr, c.reg.Addr(), c.reg.String())
		assert.Equal(t, c.width, c.reg.Width(), c.reg.String())
		assert.Equal(t, c.cat, c.reg.Category(), c.reg.String())
	}
}

func TestRegisterAddressesUnique(t *testing.T) {
	seen := map[byte]Register{}
	for _, r := range Registers() {
		prev, dup := seen[r.Addr()]
		assert.False(t, dup, "%s shares 0x%02x with %s", r, r.Addr(), prev)
		seen[r.Addr()] = r
	}
}

func TestUnknownRegister(t *testing.T) {
	for _, r := range []Register{RegUnknown, numRegisters, 200} {
		assert.Equal(t, "unknown", r.String())
		assert.Zero(t, r.Width())
		assert.Zero(t, r.Addr())
		assert.False(t, r.Writable())
	}
}

func TestWritableRegisters(t *testing.T) {
	var got []Register
	for _, r := range Registers() {
		if r.Writable() {
			got = append(got, r)
		}
	}
	assert.Equal(t, []Register{RegPowerControl, RegAdcControl, RegTimerControl}, got)
}
