// axpctl reads an AXP209 power management unit over Linux I2C.
//
//	axpctl                    print battery, inputs and status once
//	axpctl -watch -interval 5s
//	axpctl -timer 5           arm the countdown timer for five minutes
//	axpctl -config /etc/axpctl.yaml -watch
//	axpctl -sim               use the built-in register simulator
//
// With -watch, values are printed as JSON lines and stdin takes control
// lines of the form "<verb> [json]", for example:
//
//	set_rails {"off":["ldo3"]}
//	arm_timer {"minutes":10}
//	read_now
//
// The kernel's own axp20x driver usually owns this chip; unbind it first.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"

	"axpcode-go/bus"
	"axpcode-go/drivers/axp209"
	"axpcode-go/internal/axpsim"
	"axpcode-go/services/pmic"
)

func main() {
	var (
		cfgPath  = flag.String("config", "", "YAML configuration file")
		busName  = flag.String("bus", "", "I2C bus name or number (default: first bus)")
		sim      = flag.Bool("sim", false, "use the register simulator instead of hardware")
		watch    = flag.Bool("watch", false, "poll until interrupted, printing JSON lines")
		interval = flag.Duration("interval", 0, "poll interval for -watch")
		timer    = flag.Int("timer", -1, "arm the countdown timer for N minutes (0-126) and exit")
		logLevel = flag.String("log-level", "info", "log level: debug, info, warn, error")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(*logLevel)}))

	if err := checkTimerFlag(*timer); err != nil {
		log.Error("flag", "timer", *timer, "err", err)
		os.Exit(2)
	}

	cfg := pmic.DefaultConfig()
	if *cfgPath != "" {
		c, err := pmic.LoadConfig(*cfgPath)
		if err != nil {
			log.Error("config", "path", *cfgPath, "err", err)
			os.Exit(2)
		}
		cfg = c
	}
	if *busName != "" {
		cfg.Bus = *busName
	}
	if *interval > 0 {
		cfg.Interval = *interval
	}

	bus, closeBus, err := openBus(cfg.Bus, *sim)
	if err != nil {
		log.Error("open i2c", "bus", cfg.Bus, "err", err)
		os.Exit(1)
	}
	defer closeBus()

	dev := axp209.New(bus)

	switch {
	case *timer >= 0:
		err = armTimer(dev, *timer)
	case *watch:
		err = runWatch(cfg, dev, log)
	default:
		err = printOnce(dev)
	}
	if err != nil {
		log.Error("axpctl", "err", err)
		closeBus()
		os.Exit(1)
	}
}

// checkTimerFlag accepts -1 (unset) or a minute count the chip can hold.
func checkTimerFlag(n int) error {
	if n == -1 || (n >= 0 && n <= axp209.MaxTimerMinutes) {
		return nil
	}
	return axp209.ErrMinutesRange
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// openBus returns either a periph host bus or the simulator; both satisfy
// the driver's Tx contract.
func openBus(name string, sim bool) (drivers.I2C, func(), error) {
	if sim {
		return axpsim.New(), func() {}, nil
	}
	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return b, func() { _ = b.Close() }, nil
}

var _ drivers.I2C = i2c.Bus(nil)

func armTimer(dev *axp209.Device, minutes int) error {
	if minutes < 0 || minutes > axp209.MaxTimerMinutes {
		return axp209.ErrMinutesRange
	}
	tc, err := axp209.NewTimer(uint8(minutes), true)
	if err != nil {
		return err
	}
	if err := dev.SetTimerControl(tc); err != nil {
		return err
	}
	fmt.Printf("Timer armed: %d min\n", minutes)
	return nil
}

func printOnce(dev *axp209.Device) error {
	level, err := dev.BatteryLevel()
	if err != nil {
		return fmt.Errorf("battery level: %w", err)
	}
	if axp209.BatteryPresent(level) {
		fmt.Printf("Battery level: %d%%\n", level)
	} else {
		fmt.Println("Battery missing")
	}

	s, err := dev.Snapshot()
	if s.BatteryPresent {
		fmt.Printf("Battery: %d mV, charge %d mA, discharge %d mA\n",
			s.Battery_mV, s.BatteryCharge_mA, s.BatteryDischarge_mA)
	}
	fmt.Printf("ACIN: %d mV, %d mA\n", s.Acin_mV, s.Acin_mA)
	fmt.Printf("VBUS: %d mV, %d mA\n", s.Vbus_mV, s.Vbus_mA)
	fmt.Printf("IPSOUT: %d mV  TS: %d mV  Die: %d C\n", s.IPSOut_mV, s.TS_mV, s.Temp_C)
	fmt.Printf("GPIO0: %d mV  GPIO1: %d mV\n", s.GPIO0_mV, s.GPIO1_mV)
	fmt.Printf("Power: %s\n", names(s.Power, axp209.PowerStatusTable))
	fmt.Printf("Charging: %s\n", names(s.Charging, axp209.ChargingStatusTable))
	fmt.Printf("Rails: %s\n", names(s.Rails, axp209.PowerControlTable))
	fmt.Printf("Timer: %d min, expired=%t\n", s.Timer.Minutes(), s.Timer.Expired())
	return err
}

func names[T axp209.Bits](v T, table []axp209.BitName[T]) string {
	n := axp209.SetNames(nil, v, table)
	if len(n) == 0 {
		return "-"
	}
	return strings.Join(n, " ")
}

// runWatch runs the poll service on an in-process bus: values go to stdout,
// control lines from stdin go to the service as bus requests.
func runWatch(cfg pmic.Config, dev *axp209.Device, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := bus.NewBus(16)
	svcConn := b.NewConnection("pmic")
	cli := b.NewConnection("axpctl")
	defer cli.Disconnect()

	values := cli.Subscribe(pmic.ValueTopic(cfg.Name))
	svc := pmic.New(dev, cfg, pmic.BusSink(svcConn, cfg.Name), log).Attach(svcConn)
	if err := svc.Start(ctx); err != nil {
		return err
	}

	go readControls(ctx, os.Stdin, cli, cfg.Name, log)

	enc := json.NewEncoder(os.Stdout)
	for {
		select {
		case <-svc.Done():
			return nil
		case m := <-values.Channel():
			if err := enc.Encode(m.Payload); err != nil {
				log.Warn("encode", "err", err)
			}
		}
	}
}

func readControls(ctx context.Context, r io.Reader, conn *bus.Connection, name string, log *slog.Logger) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		verb, arg, _ := strings.Cut(line, " ")
		var payload any
		if arg = strings.TrimSpace(arg); arg != "" {
			payload = []byte(arg)
		}

		rctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		reply, err := conn.RequestWait(rctx, conn.NewMessage(pmic.ControlTopic(name, verb), payload, false))
		cancel()
		if err != nil {
			log.Warn("control", "verb", verb, "err", err)
			continue
		}
		log.Info("control", "verb", verb, "reply", reply.Payload)
	}
}
