package axp209

// TimerControl is the countdown timer register (0x8A).
//
// Bit 7 reads as "expired" and, when written as 1, restarts the countdown from
// the minute value in bits 0-6. A minute value of 0 disables the timer.
// Mutations are local; nothing reaches the chip until Device.SetTimerControl.
type TimerControl uint8

const (
	TimerExpired TimerControl = 1 << 7

	MaxTimerMinutes = 126

	timerMinutesMask = 0x7F
)

// NewTimer builds a timer value for minutes with the restart bit set as given.
func NewTimer(minutes uint8, restart bool) (TimerControl, error) {
	var t TimerControl
	if err := t.SetMinutes(minutes); err != nil {
		return 0, err
	}
	t.SetExpired(restart)
	return t, nil
}

func (t TimerControl) Minutes() uint8 { return uint8(t &^ TimerExpired) }
func (t TimerControl) Expired() bool  { return t&TimerExpired != 0 }

// SetMinutes replaces bits 0-6 and keeps the expired bit. Values above
// MaxTimerMinutes are rejected and leave t unchanged.
func (t *TimerControl) SetMinutes(n uint8) error {
	if n > MaxTimerMinutes {
		return ErrMinutesRange
	}
	*t = (*t & TimerExpired) | TimerControl(n&timerMinutesMask)
	return nil
}

func (t *TimerControl) SetExpired(on bool) {
	if on {
		*t |= TimerExpired
	} else {
		*t &^= TimerExpired
	}
}
