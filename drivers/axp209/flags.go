package axp209

// Flag registers. Each register category is its own type: values are taken
// from the chip without validation and setters touch exactly one bit, so
// reserved bits survive a read-modify-write.

// AdcControl mirrors ADC enable registers 0x82 (high byte) and 0x83 (low byte).
type AdcControl uint16

const (
	AdcBatteryVoltage AdcControl = 1 << 15
	AdcBatteryCurrent AdcControl = 1 << 14
	AdcAcinVoltage    AdcControl = 1 << 13
	AdcAcinCurrent    AdcControl = 1 << 12
	AdcVbusVoltage    AdcControl = 1 << 11
	AdcVbusCurrent    AdcControl = 1 << 10
	AdcAPSVoltage     AdcControl = 1 << 9
	AdcTSPin          AdcControl = 1 << 8
	AdcTemperature    AdcControl = 1 << 7
	AdcGPIO0          AdcControl = 1 << 3
	AdcGPIO1          AdcControl = 1 << 2
)

func (c AdcControl) Has(flag AdcControl) bool { return c&flag == flag }

// With returns c with flag set or cleared.
func (c AdcControl) With(flag AdcControl, on bool) AdcControl {
	if on {
		return c | flag
	}
	return c &^ flag
}

func (c *AdcControl) Set(flag AdcControl, on bool) { *c = c.With(flag, on) }

func (c AdcControl) BatteryVoltage() bool { return c.Has(AdcBatteryVoltage) }
func (c AdcControl) BatteryCurrent() bool { return c.Has(AdcBatteryCurrent) }
func (c AdcControl) AcinVoltage() bool    { return c.Has(AdcAcinVoltage) }
func (c AdcControl) AcinCurrent() bool    { return c.Has(AdcAcinCurrent) }
func (c AdcControl) VbusVoltage() bool    { return c.Has(AdcVbusVoltage) }
func (c AdcControl) VbusCurrent() bool    { return c.Has(AdcVbusCurrent) }
func (c AdcControl) APSVoltage() bool     { return c.Has(AdcAPSVoltage) }
func (c AdcControl) TSPin() bool          { return c.Has(AdcTSPin) }
func (c AdcControl) Temperature() bool    { return c.Has(AdcTemperature) }
func (c AdcControl) GPIO0() bool          { return c.Has(AdcGPIO0) }
func (c AdcControl) GPIO1() bool          { return c.Has(AdcGPIO1) }

func (c *AdcControl) SetBatteryVoltage(on bool) { c.Set(AdcBatteryVoltage, on) }
func (c *AdcControl) SetBatteryCurrent(on bool) { c.Set(AdcBatteryCurrent, on) }
func (c *AdcControl) SetAcinVoltage(on bool)    { c.Set(AdcAcinVoltage, on) }
func (c *AdcControl) SetAcinCurrent(on bool)    { c.Set(AdcAcinCurrent, on) }
func (c *AdcControl) SetVbusVoltage(on bool)    { c.Set(AdcVbusVoltage, on) }
func (c *AdcControl) SetVbusCurrent(on bool)    { c.Set(AdcVbusCurrent, on) }
func (c *AdcControl) SetAPSVoltage(on bool)     { c.Set(AdcAPSVoltage, on) }
func (c *AdcControl) SetTSPin(on bool)          { c.Set(AdcTSPin, on) }
func (c *AdcControl) SetTemperature(on bool)    { c.Set(AdcTemperature, on) }
func (c *AdcControl) SetGPIO0(on bool)          { c.Set(AdcGPIO0, on) }
func (c *AdcControl) SetGPIO1(on bool)          { c.Set(AdcGPIO1, on) }

// AdcStatus is a read-only view of the ADC enables. Bit positions match AdcControl.
type AdcStatus uint16

func (s AdcStatus) Has(flag AdcControl) bool { return uint16(s)&uint16(flag) == uint16(flag) }

func (s AdcStatus) BatteryVoltage() bool { return s.Has(AdcBatteryVoltage) }
func (s AdcStatus) BatteryCurrent() bool { return s.Has(AdcBatteryCurrent) }
func (s AdcStatus) AcinVoltage() bool    { return s.Has(AdcAcinVoltage) }
func (s AdcStatus) AcinCurrent() bool    { return s.Has(AdcAcinCurrent) }
func (s AdcStatus) VbusVoltage() bool    { return s.Has(AdcVbusVoltage) }
func (s AdcStatus) VbusCurrent() bool    { return s.Has(AdcVbusCurrent) }
func (s AdcStatus) APSVoltage() bool     { return s.Has(AdcAPSVoltage) }
func (s AdcStatus) TSPin() bool          { return s.Has(AdcTSPin) }
func (s AdcStatus) Temperature() bool    { return s.Has(AdcTemperature) }
func (s AdcStatus) GPIO0() bool          { return s.Has(AdcGPIO0) }
func (s AdcStatus) GPIO1() bool          { return s.Has(AdcGPIO1) }

// PowerControl is the output enable register (0x12). Changes are local until
// written back with Device.SetPowerControl.
type PowerControl uint8

const (
	RailLDO3  PowerControl = 1 << 6
	RailDCDC2 PowerControl = 1 << 4
	RailLDO4  PowerControl = 1 << 3
	RailLDO2  PowerControl = 1 << 2
	RailDCDC3 PowerControl = 1 << 1
	RailEXTEN PowerControl = 1 << 0 // external enable pin
)

func (c PowerControl) Has(flag PowerControl) bool { return c&flag == flag }

func (c PowerControl) With(flag PowerControl, on bool) PowerControl {
	if on {
		return c | flag
	}
	return c &^ flag
}

func (c *PowerControl) Set(flag PowerControl, on bool) { *c = c.With(flag, on) }

func (c PowerControl) LDO3() bool  { return c.Has(RailLDO3) }
func (c PowerControl) DCDC2() bool { return c.Has(RailDCDC2) }
func (c PowerControl) LDO4() bool  { return c.Has(RailLDO4) }
func (c PowerControl) LDO2() bool  { return c.Has(RailLDO2) }
func (c PowerControl) DCDC3() bool { return c.Has(RailDCDC3) }
func (c PowerControl) EXTEN() bool { return c.Has(RailEXTEN) }

func (c *PowerControl) SetLDO3(on bool)  { c.Set(RailLDO3, on) }
func (c *PowerControl) SetDCDC2(on bool) { c.Set(RailDCDC2, on) }
func (c *PowerControl) SetLDO4(on bool)  { c.Set(RailLDO4, on) }
func (c *PowerControl) SetLDO2(on bool)  { c.Set(RailLDO2, on) }
func (c *PowerControl) SetDCDC3(on bool) { c.Set(RailDCDC3, on) }
func (c *PowerControl) SetEXTEN(on bool) { c.Set(RailEXTEN, on) }

// PowerStatus (0x00), read-only.
type PowerStatus uint8

const (
	PwrAcinPresent   PowerStatus = 1 << 7
	PwrAcinUsable    PowerStatus = 1 << 6
	PwrVbusPresent   PowerStatus = 1 << 5
	PwrVbusUsable    PowerStatus = 1 << 4
	PwrVbusAboveHold PowerStatus = 1 << 3
	PwrDischarging   PowerStatus = 1 << 2
	PwrShortCircuit  PowerStatus = 1 << 1 // datasheet REG00H bit 1
	PwrStartOnPower  PowerStatus = 1 << 0 // boot source was ACIN/VBUS
)

func (s PowerStatus) Has(flag PowerStatus) bool { return s&flag == flag }

func (s PowerStatus) AcinPresent() bool   { return s.Has(PwrAcinPresent) }
func (s PowerStatus) AcinUsable() bool    { return s.Has(PwrAcinUsable) }
func (s PowerStatus) VbusPresent() bool   { return s.Has(PwrVbusPresent) }
func (s PowerStatus) VbusUsable() bool    { return s.Has(PwrVbusUsable) }
func (s PowerStatus) VbusAboveHold() bool { return s.Has(PwrVbusAboveHold) }
func (s PowerStatus) Discharging() bool   { return s.Has(PwrDischarging) }
func (s PowerStatus) ShortCircuit() bool  { return s.Has(PwrShortCircuit) }
func (s PowerStatus) StartOnPower() bool  { return s.Has(PwrStartOnPower) }

// ChargingStatus (0x01), read-only.
type ChargingStatus uint8

const (
	ChgOverTemperature  ChargingStatus = 1 << 7
	ChgCharging         ChargingStatus = 1 << 6
	ChgBatteryPresent   ChargingStatus = 1 << 5
	ChgCellActivation   ChargingStatus = 1 << 3 // datasheet REG01H bit 3
	ChgChargeCurrentLow ChargingStatus = 1 << 2
)

func (s ChargingStatus) Has(flag ChargingStatus) bool { return s&flag == flag }

func (s ChargingStatus) OverTemperature() bool  { return s.Has(ChgOverTemperature) }
func (s ChargingStatus) Charging() bool         { return s.Has(ChgCharging) }
func (s ChargingStatus) BatteryPresent() bool   { return s.Has(ChgBatteryPresent) }
func (s ChargingStatus) CellActivation() bool   { return s.Has(ChgCellActivation) }
func (s ChargingStatus) ChargeCurrentLow() bool { return s.Has(ChgChargeCurrentLow) }
