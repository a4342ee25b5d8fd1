package axp209

// Raw register access. One call is one I2C transaction; errors from the
// transport are returned as-is.

func (d *Device) read8(reg Register) (byte, error) {
	if reg.Width() != 1 {
		return 0, ErrWidth
	}
	d.w[0] = reg.Addr()
	if err := d.i2c.Tx(Address, d.w[:1], d.r[:1]); err != nil {
		return 0, err
	}
	return d.r[0], nil
}

// read16 returns both bytes in the order the chip sends them (MSB first).
func (d *Device) read16(reg Register) ([2]byte, error) {
	if reg.Width() != 2 {
		return [2]byte{}, ErrWidth
	}
	d.w[0] = reg.Addr()
	if err := d.i2c.Tx(Address, d.w[:1], d.r[:2]); err != nil {
		return [2]byte{}, err
	}
	return [2]byte{d.r[0], d.r[1]}, nil
}

func (d *Device) write8(reg Register, val byte) error {
	if !reg.Writable() {
		return ErrReadOnly
	}
	if reg.Width() != 1 {
		return ErrWidth
	}
	d.w[0] = reg.Addr()
	d.w[1] = val
	return d.i2c.Tx(Address, d.w[:2], nil)
}

// write16 uses the AXP multi-write framing (addr, data, addr+1, data) so both
// halves land in a single transaction.
func (d *Device) write16(reg Register, hi, lo byte) error {
	if !reg.Writable() {
		return ErrReadOnly
	}
	if reg.Width() != 2 {
		return ErrWidth
	}
	a := reg.Addr()
	d.w[0] = a
	d.w[1] = hi
	d.w[2] = a + 1
	d.w[3] = lo
	return d.i2c.Tx(Address, d.w[:4], nil)
}
