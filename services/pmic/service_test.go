package pmic

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axpcode-go/drivers/axp209"
	"axpcode-go/errcode"
	"axpcode-go/internal/axpsim"
	"axpcode-go/types"
)

// Bus transactions per Device.Snapshot.
const snapshotReads = 17

func quietLog() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Name = "test"
	cfg.Interval = time.Hour // samples only on start and on request
	return cfg
}

func startService(t *testing.T, sim *axpsim.Sim, cfg Config) (*Service, <-chan types.PMICValue) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan types.PMICValue, 16)
	svc := New(axp209.New(sim), cfg, SinkFunc(func(v types.PMICValue) { out <- v }), quietLog())
	require.NoError(t, svc.Start(ctx))
	t.Cleanup(func() {
		cancel()
		<-svc.Done()
	})
	return svc, out
}

func next(t *testing.T, ch <-chan types.PMICValue) types.PMICValue {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for value")
	}
	return types.PMICValue{}
}

func TestServicePublishesOnStart(t *testing.T) {
	_, out := startService(t, axpsim.New(), testConfig())

	v := next(t, out)
	assert.Equal(t, "test", v.Name)
	assert.Empty(t, v.Err)
	assert.Equal(t, uint16(3900), v.BatteryMilliV)
	assert.Equal(t, uint8(76), v.BatteryPercent)
	assert.True(t, v.BatteryPresent)
	assert.Equal(t, int16(40), v.TempC)
	assert.Equal(t, []string{"vbus_present", "vbus_usable", "battery_present"}, v.Flags)
	assert.NotZero(t, v.TS)
}

func TestServiceReportsBusFailure(t *testing.T) {
	sim := axpsim.New()
	svc, out := startService(t, sim, testConfig())
	next(t, out)

	sim.Fail(errors.New("i2c: timeout"))
	require.NoError(t, svc.Sample())
	v := next(t, out)
	assert.Equal(t, string(errcode.BusError), v.Err)
	assert.Zero(t, v.BatteryMilliV)

	sim.Fail(nil)
	require.NoError(t, svc.Sample())
	v = next(t, out)
	assert.Empty(t, v.Err)
	assert.Equal(t, uint16(3900), v.BatteryMilliV)
}

func TestServiceSetupWritesConfig(t *testing.T) {
	sim := axpsim.New()
	sim.SetReg(0x12, 0xDF) // reserved bit 7 set, rails on
	cfg := testConfig()
	cfg.AdcEnable = []string{"gpio0"}
	cfg.Rails = map[string]bool{"ldo3": false, "exten": true}
	m := uint8(5)
	cfg.TimerMinutes = &m

	_, out := startService(t, sim, cfg)
	v := next(t, out)

	assert.Equal(t, byte(0x9F), sim.Reg(0x12))
	assert.Equal(t, byte(0xC0), sim.Reg(0x82))
	assert.Equal(t, byte(0x88), sim.Reg(0x83))
	assert.Equal(t, uint8(5), v.TimerMinutes)
	assert.False(t, v.TimerExpired)
}

func TestServiceStartFailsOnBusError(t *testing.T) {
	sim := axpsim.New()
	busErr := errors.New("i2c: nack")
	sim.Fail(busErr)
	cfg := testConfig()
	cfg.Rails = map[string]bool{"ldo2": true}

	svc := New(axp209.New(sim), cfg, SinkFunc(func(types.PMICValue) {}), quietLog())
	err := svc.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, busErr)
	assert.Equal(t, errcode.BusError, errcode.Of(err))
}

func TestServiceControls(t *testing.T) {
	sim := axpsim.New()
	svc, out := startService(t, sim, testConfig())
	next(t, out)

	require.NoError(t, svc.SetRails(types.SetRails{Off: []string{"dcdc2"}}))
	require.NoError(t, svc.SetAdc(types.SetAdcEnable{Enable: []string{"vbus_voltage"}, Disable: []string{"temperature"}}))
	require.NoError(t, svc.ArmTimer(types.ArmTimer{Minutes: 30}))
	require.NoError(t, svc.Sample())

	v := next(t, out)
	assert.Equal(t, uint8(0x4F), v.Rails)
	assert.Equal(t, uint8(30), v.TimerMinutes)
	assert.False(t, v.TimerExpired)
	assert.Equal(t, byte(0xC8), sim.Reg(0x82))
	assert.Equal(t, byte(0x00), sim.Reg(0x83))
}

func TestServiceRejectsBadControls(t *testing.T) {
	svc, out := startService(t, axpsim.New(), testConfig())
	next(t, out)

	assert.ErrorIs(t, svc.SetRails(types.SetRails{On: []string{"ldo9"}}), errcode.InvalidPayload)
	assert.ErrorIs(t, svc.SetAdc(types.SetAdcEnable{Enable: []string{"bogus"}}), errcode.InvalidPayload)

	err := svc.ArmTimer(types.ArmTimer{Minutes: 127})
	assert.ErrorIs(t, err, axp209.ErrMinutesRange)
	assert.Equal(t, errcode.InvalidParams, errcode.Of(err))
}

func TestServiceBusyWhenQueueFull(t *testing.T) {
	cfg := testConfig()
	cfg.QueueLen = 1
	// Not started: nothing drains the queue.
	svc := New(axp209.New(axpsim.New()), cfg, SinkFunc(func(types.PMICValue) {}), quietLog())

	require.NoError(t, svc.Sample())
	assert.ErrorIs(t, svc.Sample(), errcode.Busy)
}

func TestServiceUnavailableAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := New(axp209.New(axpsim.New()), testConfig(), SinkFunc(func(types.PMICValue) {}), quietLog())
	require.NoError(t, svc.Start(ctx))
	cancel()
	<-svc.Done()

	assert.ErrorIs(t, svc.Sample(), errcode.Unavailable)
}

func TestServiceStartsOnce(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan types.PMICValue, 16)
	svc := New(axp209.New(axpsim.New()), testConfig(), SinkFunc(func(v types.PMICValue) { out <- v }), quietLog())

	require.NoError(t, svc.Start(ctx))
	assert.ErrorIs(t, svc.Start(ctx), errcode.Busy)
	next(t, out)

	cancel()
	<-svc.Done()
	select {
	case v := <-out:
		t.Fatalf("second poller published %+v", v)
	default:
	}
}

func TestServiceStartRetriesAfterSetupFailure(t *testing.T) {
	sim := axpsim.New()
	sim.FailNext(errors.New("i2c: nack"))
	cfg := testConfig()
	cfg.Rails = map[string]bool{"ldo2": true}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc := New(axp209.New(sim), cfg, nil, quietLog())
	require.Error(t, svc.Start(ctx))
	require.NoError(t, svc.Start(ctx))

	cancel()
	<-svc.Done()
}

func TestServiceNilSinkDiscards(t *testing.T) {
	sim := axpsim.New()
	ctx, cancel := context.WithCancel(context.Background())
	svc := New(axp209.New(sim), testConfig(), nil, quietLog())
	require.NoError(t, svc.Start(ctx))
	require.NoError(t, svc.Sample())

	// A panic in sample would kill the test binary before Done closes.
	require.Eventually(t, func() bool { return len(sim.Log()) >= 2*snapshotReads }, time.Second, 5*time.Millisecond)
	cancel()
	<-svc.Done()
}
