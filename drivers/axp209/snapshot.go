package axp209

import "errors"

// Snapshot holds every ADC quantity plus the status and control registers.
// Each field is its own transaction; zero values remain where a read failed.
type Snapshot struct {
	Battery_mV          uint16
	BatteryCharge_mA    uint16
	BatteryDischarge_mA uint16
	BatteryLevel        uint8
	BatteryPresent      bool

	Acin_mV, Acin_mA uint16
	Vbus_mV, Vbus_mA uint16
	IPSOut_mV        uint16
	TS_mV            uint16
	Temp_C           int16

	GPIO0_mV, GPIO1_mV uint16

	Power    PowerStatus
	Charging ChargingStatus
	Rails    PowerControl
	Timer    TimerControl
}

// Snapshot reads every quantity once. The returned error joins each failed
// read, so transport errors stay matchable with errors.Is.
func (d *Device) Snapshot() (Snapshot, error) {
	var s Snapshot
	err := d.SnapshotInto(&s)
	return s, err
}

func (d *Device) SnapshotInto(out *Snapshot) error {
	var s Snapshot
	var errs []error
	keep := func(err error) bool {
		if err != nil {
			errs = append(errs, err)
			return false
		}
		return true
	}

	if v, e := d.BatteryMilliV(); keep(e) {
		s.Battery_mV = v
	}
	if v, e := d.BatteryChargeMilliA(); keep(e) {
		s.BatteryCharge_mA = v
	}
	if v, e := d.BatteryDischargeMilliA(); keep(e) {
		s.BatteryDischarge_mA = v
	}
	if v, e := d.BatteryLevel(); keep(e) {
		s.BatteryLevel = v
		s.BatteryPresent = BatteryPresent(v)
	}
	if v, e := d.AcinMilliV(); keep(e) {
		s.Acin_mV = v
	}
	if v, e := d.AcinMilliA(); keep(e) {
		s.Acin_mA = v
	}
	if v, e := d.VbusMilliV(); keep(e) {
		s.Vbus_mV = v
	}
	if v, e := d.VbusMilliA(); keep(e) {
		s.Vbus_mA = v
	}
	if v, e := d.IPSOutMilliV(); keep(e) {
		s.IPSOut_mV = v
	}
	if v, e := d.TSMilliV(); keep(e) {
		s.TS_mV = v
	}
	if v, e := d.TemperatureC(); keep(e) {
		s.Temp_C = v
	}
	if v, e := d.GPIO0MilliV(); keep(e) {
		s.GPIO0_mV = v
	}
	if v, e := d.GPIO1MilliV(); keep(e) {
		s.GPIO1_mV = v
	}
	if v, e := d.PowerStatus(); keep(e) {
		s.Power = v
	}
	if v, e := d.ChargingStatus(); keep(e) {
		s.Charging = v
	}
	if v, e := d.PowerControl(); keep(e) {
		s.Rails = v
	}
	if v, e := d.TimerControl(); keep(e) {
		s.Timer = v
	}
	*out = s
	return errors.Join(errs...)
}
