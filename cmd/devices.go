package cmd

import (
	"fmt"

	"github.com/xl0/nvml-tool/cmd/global"
	"github.com/xl0/nvml-tool/internal/configuration"
	"github.com/xl0/nvml-tool/internal/gpu"
	"github.com/xl0/nvml-tool/internal/targets"
	"github.com/xl0/nvml-tool/internal/ui"
	"github.com/xl0/nvml-tool/internal/units"
)

// withSession opens the management library for the duration of fn and
// closes it exactly once afterwards.
func withSession(fn func(session gpu.Session) error) error {
	session, err := gpu.Open()
	if err != nil {
		return err
	}
	defer session.Close()
	return fn(session)
}

// forEachTarget runs fn for every selected device, in selector order.
// Out-of-range indices and per-device failures are reported individually
// without aborting the remaining devices; any of them makes the overall
// command fail.
func forEachTarget(session gpu.Session, fn func(device gpu.Device) error) error {
	indices, err := targets.Resolve(session, global.DeviceSelector, global.UUID)
	if err != nil {
		return err
	}

	devices := session.Devices()
	errorCount := 0
	for _, index := range indices {
		if index >= len(devices) {
			ui.Error("%d:Error: Device not found (available: 0-%d)", index, len(devices)-1)
			errorCount++
			continue
		}

		if err := fn(devices[index]); err != nil {
			ui.Error("%d:Error: %v", index, err)
			errorCount++
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d error(s) occurred", errorCount)
	}
	return nil
}

// displayUnit resolves the temperature display unit from the --temp-unit
// flag, falling back to the configured default.
func displayUnit() (units.TempUnit, error) {
	s := global.TempUnit
	if s == "" {
		s = configuration.CurrentConfig.TempUnit
	}
	return units.ParseTempUnit(s)
}
