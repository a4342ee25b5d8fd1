// Package axp209 provides a minimal TinyGo/host driver for the X-Powers AXP209
// power management unit.
//
// Design notes (datasheet references):
// • I2C, fixed 7-bit address 0x34 (not strappable from software).
// • ADC results are split across two registers: 8 MSBs then 4 (or 5) LSBs.
// • Integer-only scaling; every accessor is one bus transaction, nothing is cached.
// • Poll-only: the IRQ line and interrupt enable registers are not used.
//
// A Device is not safe for concurrent use. The bus allows one transaction in
// flight per device address; callers sharing a Device must serialise access.
package axp209

import "errors"

// Address is the fixed 7-bit I2C address of the AXP209.
const Address = 0x34

// BatteryLevelMissing is reported by the fuel gauge when no battery is attached.
const BatteryLevelMissing = 0x7F

var (
	// Sentinel errors (TinyGo-safe; no fmt)
	ErrMinutesRange = errors.New("timer minutes must be in 0..126")
	ErrWidth        = errors.New("register width does not match access")
	ErrReadOnly     = errors.New("register is read-only")
)
