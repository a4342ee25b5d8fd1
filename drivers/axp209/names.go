package axp209

// Bits is the set of flag register types that can be walked by name.
type Bits interface {
	~uint8 | ~uint16
}

// BitName pairs a bit value with a printable name.
type BitName[T Bits] struct {
	Bit  T
	Name string
}

// BitIter is a zero-alloc iterator over the bits of v listed in table.
// Caller advances with Next(); no callbacks, no closures.
type BitIter[T Bits] struct {
	v     uint16
	i     int
	table []BitName[T]
}

func NewBitIter[T Bits](v T, table []BitName[T]) BitIter[T] {
	return BitIter[T]{v: uint16(v), table: table}
}

// Next returns the next SET bit: (name, ok). ok=false when done.
func (it *BitIter[T]) Next() (string, bool) {
	for it.i < len(it.table) {
		e := it.table[it.i]
		it.i++
		if it.v&uint16(e.Bit) != 0 {
			return e.Name, true
		}
	}
	return "", false
}

// NextAny returns the next table entry: (name, set, ok).
func (it *BitIter[T]) NextAny() (string, bool, bool) {
	if it.i >= len(it.table) {
		return "", false, false
	}
	e := it.table[it.i]
	it.i++
	return e.Name, it.v&uint16(e.Bit) != 0, true
}

func (it *BitIter[T]) Reset() { it.i = 0 }

// SetNames appends the names of set bits in v to dst.
func SetNames[T Bits](dst []string, v T, table []BitName[T]) []string {
	it := NewBitIter(v, table)
	for {
		n, ok := it.Next()
		if !ok {
			return dst
		}
		dst = append(dst, n)
	}
}

// Display tables (ordering is cosmetic).

var PowerStatusTable = []BitName[PowerStatus]{
	{PwrAcinPresent, "acin_present"},
	{PwrAcinUsable, "acin_usable"},
	{PwrVbusPresent, "vbus_present"},
	{PwrVbusUsable, "vbus_usable"},
	{PwrVbusAboveHold, "vbus_above_hold"},
	{PwrDischarging, "discharging"},
	{PwrShortCircuit, "short_circuit"},
	{PwrStartOnPower, "start_on_power"},
}

var ChargingStatusTable = []BitName[ChargingStatus]{
	{ChgOverTemperature, "over_temperature"},
	{ChgCharging, "charging"},
	{ChgBatteryPresent, "battery_present"},
	{ChgCellActivation, "cell_activation"},
	{ChgChargeCurrentLow, "charge_current_low"},
}

var PowerControlTable = []BitName[PowerControl]{
	{RailLDO3, "ldo3"},
	{RailDCDC2, "dcdc2"},
	{RailLDO4, "ldo4"},
	{RailLDO2, "ldo2"},
	{RailDCDC3, "dcdc3"},
	{RailEXTEN, "exten"},
}

var AdcControlTable = []BitName[AdcControl]{
	{AdcBatteryVoltage, "battery_voltage"},
	{AdcBatteryCurrent, "battery_current"},
	{AdcAcinVoltage, "acin_voltage"},
	{AdcAcinCurrent, "acin_current"},
	{AdcVbusVoltage, "vbus_voltage"},
	{AdcVbusCurrent, "vbus_current"},
	{AdcAPSVoltage, "aps_voltage"},
	{AdcTSPin, "ts_pin"},
	{AdcTemperature, "temperature"},
	{AdcGPIO0, "gpio0"},
	{AdcGPIO1, "gpio1"},
}

// RailByName looks up a PowerControl bit by its table name.
func RailByName(name string) (PowerControl, bool) {
	for _, e := range PowerControlTable {
		if e.Name == name {
			return e.Bit, true
		}
	}
	return 0, false
}

// AdcByName looks up an AdcControl bit by its table name.
func AdcByName(name string) (AdcControl, bool) {
	for _, e := range AdcControlTable {
		if e.Name == name {
			return e.Bit, true
		}
	}
	return 0, false
}
