package types

// ------------------------
// Power management unit (axp209)
// ------------------------

// One poll cycle. Published retained on pmic/<name>/value.
type PMICValue struct {
	Name string `json:"name"`
	TS   int64  `json:"ts_ns"`

	BatteryMilliV          uint16 `json:"battery_mV"`
	BatteryChargeMilliA    uint16 `json:"battery_charge_mA"`
	BatteryDischargeMilliA uint16 `json:"battery_discharge_mA"`
	BatteryPercent         uint8  `json:"battery_pct"`
	BatteryPresent         bool   `json:"battery_present"`

	AcinMilliV   uint16 `json:"acin_mV"`
	AcinMilliA   uint16 `json:"acin_mA"`
	VbusMilliV   uint16 `json:"vbus_mV"`
	VbusMilliA   uint16 `json:"vbus_mA"`
	IPSOutMilliV uint16 `json:"ipsout_mV"`
	TSMilliV     uint16 `json:"ts_mV"`
	TempC        int16  `json:"temp_C"`
	GPIO0MilliV  uint16 `json:"gpio0_mV"`
	GPIO1MilliV  uint16 `json:"gpio1_mV"`

	Power    uint8 `json:"power"`    // raw REG00H bits
	Charging uint8 `json:"charging"` // raw REG01H bits
	Rails    uint8 `json:"rails"`    // raw REG12H bits

	TimerMinutes uint8 `json:"timer_min"`
	TimerExpired bool  `json:"timer_expired"`

	// Printable flag names, set bits only.
	Flags []string `json:"flags,omitempty"`

	// Non-empty when at least one read of this cycle failed.
	Err string `json:"err,omitempty"`
}

// Control payloads, sent to pmic/<name>/control/<verb>.

type SetRails struct {
	On  []string `json:"on,omitempty"`
	Off []string `json:"off,omitempty"`
}

type ArmTimer struct {
	Minutes uint8 `json:"minutes"`
}

type SetAdcEnable struct {
	Enable  []string `json:"enable,omitempty"`
	Disable []string `json:"disable,omitempty"`
}

// Reply to a control request.
type ControlReply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
