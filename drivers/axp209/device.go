package axp209

import "tinygo.org/x/drivers"

// Device represents the AXP209 on an I2C bus. It owns the bus handle; every
// method performs one transaction and re-reads the chip.
type Device struct {
	i2c drivers.I2C

	// Fixed buffers to avoid per-call heap allocations.
	w [4]byte
	r [2]byte
}

// New binds a Device to bus. The device address is fixed at Address.
func New(bus drivers.I2C) *Device {
	return &Device{i2c: bus}
}

// Status and control registers.

func (d *Device) PowerStatus() (PowerStatus, error) {
	v, err := d.read8(RegPowerStatus)
	return PowerStatus(v), err
}

func (d *Device) ChargingStatus() (ChargingStatus, error) {
	v, err := d.read8(RegChargingStatus)
	return ChargingStatus(v), err
}

func (d *Device) PowerControl() (PowerControl, error) {
	v, err := d.read8(RegPowerControl)
	return PowerControl(v), err
}

func (d *Device) SetPowerControl(v PowerControl) error {
	return d.write8(RegPowerControl, byte(v))
}

func (d *Device) AdcControl() (AdcControl, error) {
	b, err := d.read16(RegAdcControl)
	if err != nil {
		return 0, err
	}
	return AdcControl(uint16(b[0])<<8 | uint16(b[1])), nil
}

// AdcStatus reads the ADC enables as a read-only view.
func (d *Device) AdcStatus() (AdcStatus, error) {
	v, err := d.AdcControl()
	return AdcStatus(v), err
}

func (d *Device) SetAdcControl(v AdcControl) error {
	return d.write16(RegAdcControl, byte(v>>8), byte(v))
}

func (d *Device) TimerControl() (TimerControl, error) {
	v, err := d.read8(RegTimerControl)
	return TimerControl(v), err
}

// SetTimerControl writes t back to the chip. With the expired bit set the
// countdown restarts from t.Minutes().
func (d *Device) SetTimerControl(t TimerControl) error {
	return d.write8(RegTimerControl, byte(t))
}
