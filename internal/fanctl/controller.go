package fanctl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xl0/nvml-tool/internal/console"
	"github.com/xl0/nvml-tool/internal/gpu"
	"github.com/xl0/nvml-tool/internal/setpoint"
	"github.com/xl0/nvml-tool/internal/statistics"
	"github.com/xl0/nvml-tool/internal/ui"
	"github.com/xl0/nvml-tool/internal/units"
)

// ControlledDevice is a device that passed the pre-loop controllability
// check, together with a snapshot of its fan count. The list of controlled
// devices is fixed before the loop starts and never mutated while it runs.
type ControlledDevice struct {
	Device   gpu.Device
	FanCount int
}

// Prepare validates every selected device index against the open session:
// the index must exist and the device must report at least one physical fan.
// Every failing device is reported individually; if any device fails, no
// control session is started at all (fail closed).
func Prepare(session gpu.Session, indices []int) ([]ControlledDevice, error) {
	devices := session.Devices()

	var controlled []ControlledDevice
	failures := 0
	for _, index := range indices {
		if index >= len(devices) {
			ui.Error("%d:Error: Device not found (available: 0-%d)", index, len(devices)-1)
			failures++
			continue
		}

		device := devices[index]
		fanCount, err := device.FanCount()
		if err != nil {
			ui.Error("%d:Error: Cannot get number of fans: %v", index, err)
			failures++
			continue
		}
		if fanCount == 0 {
			ui.Error("%d:Error: Device has no controllable fans", index)
			failures++
			continue
		}

		controlled = append(controlled, ControlledDevice{Device: device, FanCount: fanCount})
	}

	if failures > 0 {
		return nil, fmt.Errorf("%d device(s) failed validation, refusing to start fan control", failures)
	}
	if len(controlled) == 0 {
		return nil, errors.New("no devices selected for fan control")
	}

	return controlled, nil
}

type Controller interface {
	Run(ctx context.Context) error
}

type Options struct {
	// Interval is the fixed sleep between control cycles.
	Interval time.Duration
	// Unit only affects the printed temperature, the control law always
	// operates on raw Celsius.
	Unit    units.TempUnit
	Surface console.Surface
	// Stats is optional, nil disables metrics recording.
	Stats *statistics.FanctlCollector
}

func NewController(devices []ControlledDevice, curve setpoint.Curve, opts Options) Controller {
	if opts.Interval <= 0 {
		opts.Interval = 2 * time.Second
	}
	return &fanController{
		devices:  devices,
		curve:    curve,
		interval: opts.Interval,
		unit:     opts.Unit,
		surface:  opts.Surface,
		stats:    opts.Stats,
	}
}

type fanController struct {
	devices  []ControlledDevice
	curve    setpoint.Curve
	interval time.Duration
	unit     units.TempUnit
	surface  console.Surface
	stats    *statistics.FanctlCollector
}

// Run executes control cycles until the context is cancelled or a cycle
// fails. Every exit path runs exactly one restoration pass over all
// controlled devices before returning; a restoration failure surfaces in
// the returned error when the loop itself did not fail.
func (c *fanController) Run(ctx context.Context) (err error) {
	defer func() {
		if restoreErr := c.restoreAll(); restoreErr != nil && err == nil {
			err = restoreErr
		}
	}()

	ui.Printfln("Starting dynamic fan control for %d device(s) (Ctrl-C to exit)", len(c.devices))
	ui.Printfln("Setpoints: %s", c.curve)
	if c.surface.Interactive() {
		// blank line separating the banner from the redrawn status block
		ui.Printfln("")
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	first := true
	for {
		if cycleErr := c.cycle(first); cycleErr != nil {
			return cycleErr
		}
		first = false

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// cycle samples and actuates every controlled device once, in the fixed
// order established by Prepare. Any telemetry or actuation failure aborts
// the cycle immediately: remaining devices are not actuated, a stale or
// partially applied duty must never be left to run on.
func (c *fanController) cycle(first bool) error {
	if !first {
		c.surface.Clear(len(c.devices))
	}

	for _, controlled := range c.devices {
		index := controlled.Device.Index()

		temperature, err := controlled.Device.Temperature()
		if err != nil {
			return fmt.Errorf("device %d: cannot read temperature: %w", index, err)
		}

		duty := c.curve.DutyFor(temperature)

		fanErrors := 0
		for fan := 0; fan < controlled.FanCount; fan++ {
			if err := controlled.Device.SetFanDuty(fan, duty); err != nil {
				ui.Error("%d:Fan%d:Error: %v", index, fan, err)
				fanErrors++
			}
		}
		if fanErrors > 0 {
			return fmt.Errorf("device %d: failed to set fan duty on %d of %d fans, control was applied partially", index, fanErrors, controlled.FanCount)
		}

		c.surface.Printfln("%d:%.1f%s -> %d%%", index, c.unit.Convert(temperature), c.unit, duty)

		if c.stats != nil {
			c.stats.RecordDevice(index, temperature, duty)
		}
	}

	if c.stats != nil {
		c.stats.RecordCycle()
	}
	return nil
}

// restoreAll returns every fan of every controlled device to automatic
// hardware control. Best-effort per fan: one failure never aborts the
// remaining fans or devices.
func (c *fanController) restoreAll() error {
	ui.Printfln("")
	ui.Printfln("Restoring automatic fan control...")

	failures := 0
	for _, controlled := range c.devices {
		index := controlled.Device.Index()
		for fan := 0; fan < controlled.FanCount; fan++ {
			if err := controlled.Device.RestoreAutomatic(fan); err != nil {
				ui.Error("%d:Fan%d:Error: failed to restore automatic control: %v", index, fan, err)
				failures++
				continue
			}
			ui.Printfln("%d:Fan%d:Restored to automatic control", index, fan)
		}
	}

	if failures > 0 {
		return fmt.Errorf("failed to restore automatic control on %d fan(s), manual intervention may be required", failures)
	}
	return nil
}
