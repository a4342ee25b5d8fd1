// Package pmic polls an AXP209 and hands typed values to a sink.
//
// One goroutine owns the Device; controls are queued to it so the chip only
// ever sees one transaction at a time.
package pmic

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"axpcode-go/bus"
	"axpcode-go/drivers/axp209"
	"axpcode-go/errcode"
	"axpcode-go/types"
)

// Sink receives every sampled value, including failed cycles.
// Publish runs on the service goroutine and must not block for long.
type Sink interface {
	Publish(v types.PMICValue)
}

type SinkFunc func(v types.PMICValue)

func (f SinkFunc) Publish(v types.PMICValue) { f(v) }

type opCode uint8

const (
	opSample opCode = iota
	opSetRails
	opSetAdc
	opArmTimer
)

func (o opCode) String() string {
	switch o {
	case opSample:
		return "sample"
	case opSetRails:
		return "set_rails"
	case opSetAdc:
		return "set_adc"
	case opArmTimer:
		return "arm_timer"
	}
	return "unknown"
}

type request struct {
	op  opCode
	arg any
}

type Service struct {
	cfg  Config
	dev  *axp209.Device
	sink Sink
	log  *slog.Logger

	conn    *bus.Connection
	ctrlSub *bus.Subscription

	started atomic.Bool
	reqCh   chan request
	done    chan struct{}
}

// New builds a service around dev. The service becomes the sole user of dev.
// A nil sink discards values.
func New(dev *axp209.Device, cfg Config, sink Sink, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	if sink == nil {
		sink = SinkFunc(func(types.PMICValue) {})
	}
	if cfg.QueueLen <= 0 {
		cfg.QueueLen = 8
	}
	return &Service{
		cfg:   cfg,
		dev:   dev,
		sink:  sink,
		log:   log.With("svc", "pmic", "name", cfg.Name),
		reqCh: make(chan request, cfg.QueueLen),
		done:  make(chan struct{}),
	}
}

// Start applies the start-up settings, then polls until ctx is cancelled.
// Only one Start may succeed; later calls return errcode.Busy.
func (s *Service) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return errcode.Busy
	}
	if err := s.cfg.Validate(); err != nil {
		s.started.Store(false)
		return errcode.Wrap("config", err)
	}
	if err := s.setup(); err != nil {
		s.started.Store(false)
		return err
	}
	if s.conn != nil {
		s.ctrlSub = s.conn.Subscribe(ControlTopic(s.cfg.Name, "+"))
	}
	go s.run(ctx)
	return nil
}

// Done is closed when the polling goroutine exits.
func (s *Service) Done() <-chan struct{} { return s.done }

func (s *Service) setup() error {
	if len(s.cfg.AdcEnable) > 0 {
		if err := s.setAdc(types.SetAdcEnable{Enable: s.cfg.AdcEnable}); err != nil {
			return err
		}
	}
	if len(s.cfg.Rails) > 0 {
		var r types.SetRails
		for n, on := range s.cfg.Rails {
			if on {
				r.On = append(r.On, n)
			} else {
				r.Off = append(r.Off, n)
			}
		}
		if err := s.setRails(r); err != nil {
			return err
		}
	}
	if s.cfg.TimerMinutes != nil {
		if err := s.armTimer(types.ArmTimer{Minutes: *s.cfg.TimerMinutes}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) run(ctx context.Context) {
	defer close(s.done)

	// A nil channel never fires when no bus is attached.
	var ctrl <-chan *bus.Message
	if s.ctrlSub != nil {
		ctrl = s.ctrlSub.Channel()
		defer s.conn.Unsubscribe(s.ctrlSub)
	}

	tick := time.NewTicker(s.cfg.Interval)
	defer tick.Stop()

	s.log.Info("polling", "interval", s.cfg.Interval)
	s.sample()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("stopping")
			return
		case <-tick.C:
			s.sample()
		case req := <-s.reqCh:
			s.handle(req)
		case msg := <-ctrl:
			s.handleControl(msg)
		}
	}
}

func (s *Service) handle(req request) {
	if err := s.exec(req); err != nil {
		s.log.Warn("control failed", "op", req.op, "code", errcode.Of(err), "err", err)
	}
}

func (s *Service) exec(req request) error {
	switch req.op {
	case opSample:
		s.sample()
		return nil
	case opSetRails:
		return s.setRails(req.arg.(types.SetRails))
	case opSetAdc:
		return s.setAdc(req.arg.(types.SetAdcEnable))
	case opArmTimer:
		return s.armTimer(req.arg.(types.ArmTimer))
	}
	return errcode.Unsupported
}

func (s *Service) sample() {
	snap, err := s.dev.Snapshot()
	v := valueFrom(s.cfg.Name, snap)
	if err != nil {
		v.Err = string(errcode.MapDriverErr(err))
		s.log.Warn("sample incomplete", "code", v.Err, "err", err)
	}
	s.sink.Publish(v)
}

func valueFrom(name string, snap axp209.Snapshot) types.PMICValue {
	v := types.PMICValue{
		Name: name,
		TS:   time.Now().UnixNano(),

		BatteryMilliV:          snap.Battery_mV,
		BatteryChargeMilliA:    snap.BatteryCharge_mA,
		BatteryDischargeMilliA: snap.BatteryDischarge_mA,
		BatteryPercent:         snap.BatteryLevel,
		BatteryPresent:         snap.BatteryPresent,

		AcinMilliV:   snap.Acin_mV,
		AcinMilliA:   snap.Acin_mA,
		VbusMilliV:   snap.Vbus_mV,
		VbusMilliA:   snap.Vbus_mA,
		IPSOutMilliV: snap.IPSOut_mV,
		TSMilliV:     snap.TS_mV,
		TempC:        snap.Temp_C,
		GPIO0MilliV:  snap.GPIO0_mV,
		GPIO1MilliV:  snap.GPIO1_mV,

		Power:    uint8(snap.Power),
		Charging: uint8(snap.Charging),
		Rails:    uint8(snap.Rails),

		TimerMinutes: snap.Timer.Minutes(),
		TimerExpired: snap.Timer.Expired(),
	}
	v.Flags = axp209.SetNames(v.Flags, snap.Power, axp209.PowerStatusTable)
	v.Flags = axp209.SetNames(v.Flags, snap.Charging, axp209.ChargingStatusTable)
	return v
}

// Controls. Arguments are checked here; the bus work runs on the service goroutine.

func (s *Service) send(req request) error {
	select {
	case <-s.done:
		return errcode.Unavailable
	default:
	}
	select {
	case s.reqCh <- req:
		return nil
	default:
		return errcode.Busy
	}
}

// Sample requests an immediate poll.
func (s *Service) Sample() error { return s.send(request{op: opSample}) }

func (s *Service) SetRails(v types.SetRails) error {
	if _, _, err := railMasks(v); err != nil {
		return err
	}
	return s.send(request{op: opSetRails, arg: v})
}

func (s *Service) SetAdc(v types.SetAdcEnable) error {
	if _, _, err := adcMasks(v); err != nil {
		return err
	}
	return s.send(request{op: opSetAdc, arg: v})
}

func (s *Service) ArmTimer(v types.ArmTimer) error {
	if v.Minutes > axp209.MaxTimerMinutes {
		return errcode.Wrap("arm_timer", axp209.ErrMinutesRange)
	}
	return s.send(request{op: opArmTimer, arg: v})
}

func railMasks(v types.SetRails) (on, off axp209.PowerControl, err error) {
	for _, n := range v.On {
		b, ok := axp209.RailByName(n)
		if !ok {
			return 0, 0, errcode.InvalidPayload
		}
		on |= b
	}
	for _, n := range v.Off {
		b, ok := axp209.RailByName(n)
		if !ok {
			return 0, 0, errcode.InvalidPayload
		}
		off |= b
	}
	return on, off, nil
}

func adcMasks(v types.SetAdcEnable) (on, off axp209.AdcControl, err error) {
	for _, n := range v.Enable {
		b, ok := axp209.AdcByName(n)
		if !ok {
			return 0, 0, errcode.InvalidPayload
		}
		on |= b
	}
	for _, n := range v.Disable {
		b, ok := axp209.AdcByName(n)
		if !ok {
			return 0, 0, errcode.InvalidPayload
		}
		off |= b
	}
	return on, off, nil
}

// Read-modify-write helpers; only named bits change.

func (s *Service) setRails(v types.SetRails) error {
	on, off, err := railMasks(v)
	if err != nil {
		return err
	}
	cur, err := s.dev.PowerControl()
	if err != nil {
		return errcode.Wrap("power_control", err)
	}
	next := (cur | on) &^ off
	if next == cur {
		return nil
	}
	if err := s.dev.SetPowerControl(next); err != nil {
		return errcode.Wrap("power_control", err)
	}
	s.log.Info("rails updated", "rails", axp209.SetNames(nil, next, axp209.PowerControlTable))
	return nil
}

func (s *Service) setAdc(v types.SetAdcEnable) error {
	on, off, err := adcMasks(v)
	if err != nil {
		return err
	}
	cur, err := s.dev.AdcControl()
	if err != nil {
		return errcode.Wrap("adc_control", err)
	}
	next := (cur | on) &^ off
	if next == cur {
		return nil
	}
	if err := s.dev.SetAdcControl(next); err != nil {
		return errcode.Wrap("adc_control", err)
	}
	s.log.Info("adc channels updated", "adc", axp209.SetNames(nil, next, axp209.AdcControlTable))
	return nil
}

// armTimer sets the minute count and requests a restart in one write.
func (s *Service) armTimer(v types.ArmTimer) error {
	tc, err := axp209.NewTimer(v.Minutes, true)
	if err != nil {
		return errcode.Wrap("timer_control", err)
	}
	if err := s.dev.SetTimerControl(tc); err != nil {
		return errcode.Wrap("timer_control", err)
	}
	s.log.Info("timer armed", "minutes", v.Minutes)
	return nil
}
