package axp209

// Register names one AXP209 register used by this driver. The bus address and
// the transfer width are separate lookups so that selecting a register never
// implies how many bytes are exchanged.
type Register uint8

const (
	RegUnknown Register = iota

	// Status / control
	RegPowerStatus    // 0x00 R
	RegChargingStatus // 0x01 R
	RegPowerControl   // 0x12 R/W
	RegAdcControl     // 0x82 R/W, 0x82..0x83
	RegTimerControl   // 0x8A R/W

	// ADC results (8 MSB at addr, LSBs at addr+1)
	RegAcinVoltage      // 0x56
	RegAcinCurrent      // 0x58
	RegVbusVoltage      // 0x5A
	RegVbusCurrent      // 0x5C
	RegTemperature      // 0x5E
	RegTSVoltage        // 0x62
	RegGPIO0Voltage     // 0x64
	RegGPIO1Voltage     // 0x66
	RegBatteryVoltage   // 0x78
	RegBatteryCharge    // 0x7A
	RegBatteryDischarge // 0x7C
	RegIPSOutVoltage    // 0x7E

	// Fuel gauge
	RegBatteryLevel // 0xB9, bit 7 is a control bit

	numRegisters
)

// Category groups registers by how their contents are interpreted.
type Category uint8

const (
	CatUnknown Category = iota
	CatStatus
	CatControl
	CatTimer
	CatADC
)

type regInfo struct {
	addr     byte
	width    uint8
	cat      Category
	writable bool
	name     string
}

var regTable = [numRegisters]regInfo{
	RegPowerStatus:    {0x00, 1, CatStatus, false, "power_status"},
	RegChargingStatus: {0x01, 1, CatStatus, false, "charging_status"},
	RegPowerControl:   {0x12, 1, CatControl, true, "power_control"},
	RegAdcControl:     {0x82, 2, CatControl, true, "adc_control"},
	RegTimerControl:   {0x8A, 1, CatTimer, true, "timer_control"},

	RegAcinVoltage:      {0x56, 2, CatADC, false, "acin_voltage"},
	RegAcinCurrent:      {0x58, 2, CatADC, false, "acin_current"},
	RegVbusVoltage:      {0x5A, 2, CatADC, false, "vbus_voltage"},
	RegVbusCurrent:      {0x5C, 2, CatADC, false, "vbus_current"},
	RegTemperature:      {0x5E, 2, CatADC, false, "temperature"},
	RegTSVoltage:        {0x62, 2, CatADC, false, "ts_voltage"},
	RegGPIO0Voltage:     {0x64, 2, CatADC, false, "gpio0_voltage"},
	RegGPIO1Voltage:     {0x66, 2, CatADC, false, "gpio1_voltage"},
	RegBatteryVoltage:   {0x78, 2, CatADC, false, "battery_voltage"},
	RegBatteryCharge:    {0x7A, 2, CatADC, false, "battery_charge_current"},
	RegBatteryDischarge: {0x7C, 2, CatADC, false, "battery_discharge_current"},
	RegIPSOutVoltage:    {0x7E, 2, CatADC, false, "ipsout_voltage"},

	RegBatteryLevel: {0xB9, 1, CatADC, false, "battery_level"},
}

func (r Register) info() regInfo {
	if r == RegUnknown || r >= numRegisters {
		return regInfo{name: "unknown"}
	}
	return regTable[r]
}

// Addr returns the one-byte register selector sent on the bus.
func (r Register) Addr() byte { return r.info().addr }

// Width returns the number of bytes read from (or written to) the register.
func (r Register) Width() int { return int(r.info().width) }

func (r Register) Category() Category { return r.info().cat }
func (r Register) Writable() bool     { return r.info().writable }
func (r Register) String() string     { return r.info().name }

// Registers returns every known register in declaration order.
func Registers() []Register {
	out := make([]Register, 0, numRegisters-1)
	for r := RegUnknown + 1; r < numRegisters; r++ {
		out = append(out, r)
	}
	return out
}
