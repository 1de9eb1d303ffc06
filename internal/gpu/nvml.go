//go:build !disable_nvml

package gpu

import (
	"errors"
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// helper function to turn an nvml error/return code into a go error
// (also handles success by returning nil)
func nvError(errCode nvml.Return) error {
	if errCode == nvml.SUCCESS {
		return nil
	}
	return errors.New(nvml.ErrorString(errCode))
}

type nvmlSession struct {
	devices []Device
}

// Open initializes NVML and enumerates all devices. The returned session
// must be closed exactly once; device handles die with it.
func Open() (Session, error) {
	ret := nvml.Init()
	if ret != nvml.SUCCESS {
		return nil, fmt.Errorf("failed to initialize NVML: %s", nvml.ErrorString(ret))
	}

	count, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS {
		_ = nvml.Shutdown()
		return nil, fmt.Errorf("failed to get device count: %s", nvml.ErrorString(ret))
	}
	if count == 0 {
		_ = nvml.Shutdown()
		return nil, errors.New("no NVIDIA GPUs found")
	}

	session := &nvmlSession{}
	for i := 0; i < count; i++ {
		handle, ret := nvml.DeviceGetHandleByIndex(i)
		if ret != nvml.SUCCESS {
			_ = nvml.Shutdown()
			return nil, fmt.Errorf("failed to get handle for device %d: %s", i, nvml.ErrorString(ret))
		}
		session.devices = append(session.devices, &nvmlDevice{index: i, handle: handle})
	}

	return session, nil
}

func (s *nvmlSession) Devices() []Device {
	return s.devices
}

func (s *nvmlSession) DeviceCount() int {
	return len(s.devices)
}

func (s *nvmlSession) Close() {
	s.devices = nil
	// ignore error code returned by Shutdown(), can't do anything about it anyway
	_ = nvml.Shutdown()
}

type nvmlDevice struct {
	index  int
	handle nvml.Device
}

func (d *nvmlDevice) Index() int {
	return d.index
}

func (d *nvmlDevice) Name() (string, error) {
	name, ret := d.handle.GetName()
	return name, nvError(ret)
}

func (d *nvmlDevice) UUID() (string, error) {
	uuid, ret := d.handle.GetUUID()
	return uuid, nvError(ret)
}

func (d *nvmlDevice) Temperature() (int, error) {
	temperature, ret := d.handle.GetTemperature(nvml.TEMPERATURE_GPU)
	return int(temperature), nvError(ret)
}

func (d *nvmlDevice) Memory() (Memory, error) {
	info, ret := d.handle.GetMemoryInfo()
	if ret != nvml.SUCCESS {
		return Memory{}, nvError(ret)
	}
	return Memory{Total: info.Total, Used: info.Used, Free: info.Free}, nil
}

func (d *nvmlDevice) FanCount() (int, error) {
	count, ret := d.handle.GetNumFans()
	return count, nvError(ret)
}

func (d *nvmlDevice) FanSpeed() (int, error) {
	speed, ret := d.handle.GetFanSpeed()
	return int(speed), nvError(ret)
}

func (d *nvmlDevice) SetFanDuty(fan int, duty int) error {
	return nvError(d.handle.SetFanSpeed_v2(fan, duty))
}

func (d *nvmlDevice) RestoreAutomatic(fan int) error {
	return nvError(d.handle.SetFanControlPolicy(fan, nvml.FAN_POLICY_TEMPERATURE_CONTINOUS_SW))
}

func (d *nvmlDevice) PowerUsage() (uint32, error) {
	usage, ret := d.handle.GetPowerUsage()
	return usage, nvError(ret)
}

func (d *nvmlDevice) PowerLimit() (uint32, error) {
	limit, ret := d.handle.GetPowerManagementLimit()
	return limit, nvError(ret)
}

func (d *nvmlDevice) PowerLimitConstraints() (PowerLimits, error) {
	minLimit, maxLimit, ret := d.handle.GetPowerManagementLimitConstraints()
	if ret != nvml.SUCCESS {
		return PowerLimits{}, nvError(ret)
	}
	return PowerLimits{Min: minLimit, Max: maxLimit}, nil
}

func (d *nvmlDevice) SetPowerLimit(milliwatts uint32) error {
	return nvError(d.handle.SetPowerManagementLimit(milliwatts))
}
