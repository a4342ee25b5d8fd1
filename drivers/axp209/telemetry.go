package axp209

// Measurements (integer units).

func (d *Device) adc12(reg Register) (uint16, error) {
	b, err := d.read16(reg)
	if err != nil {
		return 0, err
	}
	return Raw12(b[0], b[1]), nil
}

// Battery

func (d *Device) BatteryMilliV() (uint16, error) {
	raw, err := d.adc12(RegBatteryVoltage)
	if err != nil {
		return 0, err
	}
	return BatteryMilliV(raw), nil
}

func (d *Device) BatteryChargeMilliA() (uint16, error) {
	raw, err := d.adc12(RegBatteryCharge)
	if err != nil {
		return 0, err
	}
	return BatteryChargeMilliA(raw), nil
}

func (d *Device) BatteryDischargeMilliA() (uint16, error) {
	b, err := d.read16(RegBatteryDischarge)
	if err != nil {
		return 0, err
	}
	return BatteryDischargeMilliA(Raw13(b[0], b[1])), nil
}

// BatteryLevel returns the fuel gauge percentage, or BatteryLevelMissing.
func (d *Device) BatteryLevel() (uint8, error) {
	b, err := d.read8(RegBatteryLevel)
	if err != nil {
		return 0, err
	}
	return BatteryLevelPercent(b), nil
}

func (d *Device) BatteryPresent() (bool, error) {
	lvl, err := d.BatteryLevel()
	if err != nil {
		return false, err
	}
	return BatteryPresent(lvl), nil
}

// Inputs

func (d *Device) AcinMilliV() (uint16, error) {
	raw, err := d.adc12(RegAcinVoltage)
	if err != nil {
		return 0, err
	}
	return AcinMilliV(raw), nil
}

func (d *Device) AcinMilliA() (uint16, error) {
	raw, err := d.adc12(RegAcinCurrent)
	if err != nil {
		return 0, err
	}
	return AcinMilliA(raw), nil
}

func (d *Device) VbusMilliV() (uint16, error) {
	raw, err := d.adc12(RegVbusVoltage)
	if err != nil {
		return 0, err
	}
	return VbusMilliV(raw), nil
}

func (d *Device) VbusMilliA() (uint16, error) {
	raw, err := d.adc12(RegVbusCurrent)
	if err != nil {
		return 0, err
	}
	return VbusMilliA(raw), nil
}

// Temperature and auxiliary inputs

func (d *Device) TemperatureC() (int16, error) {
	raw, err := d.adc12(RegTemperature)
	if err != nil {
		return 0, err
	}
	return TemperatureC(raw), nil
}

// TSMilliV is the battery temperature-sense pin voltage.
func (d *Device) TSMilliV() (uint16, error) {
	raw, err := d.adc12(RegTSVoltage)
	if err != nil {
		return 0, err
	}
	return TSMilliV(raw), nil
}

// IPSOutMilliV assumes the 1.4 mV step documented for APS applies to IPSOUT.
func (d *Device) IPSOutMilliV() (uint16, error) {
	raw, err := d.adc12(RegIPSOutVoltage)
	if err != nil {
		return 0, err
	}
	return IPSOutMilliV(raw), nil
}

func (d *Device) GPIO0MilliV() (uint16, error) {
	raw, err := d.adc12(RegGPIO0Voltage)
	if err != nil {
		return 0, err
	}
	return GPIOMilliV(raw), nil
}

func (d *Device) GPIO1MilliV() (uint16, error) {
	raw, err := d.adc12(RegGPIO1Voltage)
	if err != nil {
		return 0, err
	}
	return GPIOMilliV(raw), nil
}
