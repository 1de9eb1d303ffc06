package gpu

// Memory holds device memory usage in bytes.
type Memory struct {
	Total uint64
	Used  uint64
	Free  uint64
}

// PowerLimits holds the valid power management limit range in milliwatts.
type PowerLimits struct {
	Min uint32
	Max uint32
}

// Device is the telemetry/actuation surface of a single GPU. Every call may
// fail, the handle is only valid while the owning Session is open.
type Device interface {
	// Index is the stable device index used in all output and error messages.
	Index() int

	Name() (string, error)
	UUID() (string, error)

	// Temperature returns the current GPU core temperature in Celsius.
	Temperature() (int, error)

	Memory() (Memory, error)

	// FanCount returns the number of physical fans on the device. A device
	// with zero fans cannot be controlled.
	FanCount() (int, error)
	// FanSpeed returns the current fan speed in percent.
	FanSpeed() (int, error)
	// SetFanDuty pins the given fan to a fixed duty cycle in percent,
	// switching it to manual control.
	SetFanDuty(fan int, duty int) error
	// RestoreAutomatic returns the given fan to the hardware's own
	// temperature-based control policy. Safe to call repeatedly and on fans
	// already under automatic control.
	RestoreAutomatic(fan int) error

	// PowerUsage returns the current power draw in milliwatts.
	PowerUsage() (uint32, error)
	// PowerLimit returns the current power management limit in milliwatts.
	PowerLimit() (uint32, error)
	PowerLimitConstraints() (PowerLimits, error)
	// SetPowerLimit sets the power management limit in milliwatts.
	SetPowerLimit(milliwatts uint32) error
}

// Session is one open handle to the vendor management library. It owns the
// enumerated device list and must be closed exactly once, after all device
// handles obtained from it are no longer used.
type Session interface {
	Devices() []Device
	DeviceCount() int
	Close()
}
