// Package axpsim is a register-file stand-in for an AXP209 on an I2C bus.
// It is used by tests and by axpctl -sim; no TinyGo chip driver deps.
package axpsim

import (
	"errors"
	"fmt"
	"sync"

	"tinygo.org/x/drivers"
)

var ErrNack = errors.New("i2c: address not acknowledged")

const (
	addr = 0x34

	regTimer = 0x8A
)

// Tx records one bus transaction as seen by the simulator.
type Tx struct {
	Addr uint16
	W    []byte
	RLen int
}

// Sim implements drivers.I2C.
type Sim struct {
	mu   sync.Mutex
	regs [256]byte
	ptr  byte

	fail     error
	failNext []error
	log      []Tx
}

var _ drivers.I2C = (*Sim)(nil)

// New returns a simulator preloaded with a plausible idle state:
// battery at 3.9 V / 76 %, VBUS at its 4680 mV full-scale reading, die at ~40 °C.
func New() *Sim {
	s := &Sim{}
	s.regs[0x00] = 0x30 // VBUS present+usable
	s.regs[0x01] = 0x20 // battery present
	s.regs[0x12] = 0x5F // all rails on
	s.regs[0x82] = 0xC0 // battery V/I
	s.regs[0x83] = 0x80 // die temperature
	s.SetADC12(0x5A, 4095) // 4680 mV
	s.SetADC12(0x5C, 1280) // 106 mA
	s.SetADC12(0x5E, 1850) // 40 °C
	s.SetADC12(0x64, 1200) // GPIO0 600 mV
	s.SetADC12(0x78, 3546) // 3900 mV
	s.SetADC12(0x7A, 400)  // 200 mA
	s.SetADC12(0x7E, 3571) // ~5000 mV
	s.regs[0xB9] = 0x80 | 76
	return s
}

// Tx follows the AXP framing: a one-byte write selects the register, reads
// auto-increment from there; longer writes are (register, value) pairs.
func (s *Sim) Tx(a uint16, w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log = append(s.log, Tx{Addr: a, W: append([]byte(nil), w...), RLen: len(r)})

	if len(s.failNext) > 0 {
		err := s.failNext[0]
		s.failNext = s.failNext[1:]
		return err
	}
	if s.fail != nil {
		return s.fail
	}
	if a != addr {
		return ErrNack
	}

	switch {
	case len(w) == 1:
		s.ptr = w[0]
	case len(w) >= 2:
		for i := 0; i+1 < len(w); i += 2 {
			s.store(w[i], w[i+1])
		}
		s.ptr = w[len(w)-2] + 1
	}
	for i := range r {
		r[i] = s.regs[s.ptr]
		s.ptr++
	}
	return nil
}

func (s *Sim) store(reg, v byte) {
	if reg == regTimer {
		// Writing 1 to bit 7 restarts the countdown and clears the flag.
		if v&0x80 != 0 {
			v &^= 0x80
		} else {
			v |= s.regs[regTimer] & 0x80
		}
	}
	s.regs[reg] = v
}

// SetReg sets a raw register byte.
func (s *Sim) SetReg(reg, v byte) {
	s.mu.Lock()
	s.regs[reg] = v
	s.mu.Unlock()
}

func (s *Sim) Reg(reg byte) byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regs[reg]
}

// SetADC12 stores a 12-bit sample in the 8+4 split layout at reg, reg+1.
// It panics if raw does not fit in 12 bits.
func (s *Sim) SetADC12(reg byte, raw uint16) {
	if raw > 0x0FFF {
		panic(fmt.Sprintf("axpsim: %d does not fit a 12-bit sample", raw))
	}
	s.mu.Lock()
	s.regs[reg] = byte(raw >> 4)
	s.regs[reg+1] = byte(raw & 0x0F)
	s.mu.Unlock()
}

// SetADC13 stores a 13-bit sample in the 8+5 split layout.
// It panics if raw does not fit in 13 bits.
func (s *Sim) SetADC13(reg byte, raw uint16) {
	if raw > 0x1FFF {
		panic(fmt.Sprintf("axpsim: %d does not fit a 13-bit sample", raw))
	}
	s.mu.Lock()
	s.regs[reg] = byte(raw >> 5)
	s.regs[reg+1] = byte(raw & 0x1F)
	s.mu.Unlock()
}

// ExpireTimer sets the timer expired flag as the chip does on countdown end.
func (s *Sim) ExpireTimer() {
	s.mu.Lock()
	s.regs[regTimer] |= 0x80
	s.mu.Unlock()
}

// Fail makes every following transaction return err; nil restores normal operation.
func (s *Sim) Fail(err error) {
	s.mu.Lock()
	s.fail = err
	s.mu.Unlock()
}

// FailNext queues errors returned by the next transactions, in order.
func (s *Sim) FailNext(errs ...error) {
	s.mu.Lock()
	s.failNext = append(s.failNext, errs...)
	s.mu.Unlock()
}

// Log returns a copy of the transactions seen so far.
func (s *Sim) Log() []Tx {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Tx(nil), s.log...)
}

func (s *Sim) ResetLog() {
	s.mu.Lock()
	s.log = nil
	s.mu.Unlock()
}
