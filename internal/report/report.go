package report

import (
	"github.com/xl0/nvml-tool/internal/gpu"
	"github.com/xl0/nvml-tool/internal/units"
)

const bytesPerMB = 1024 * 1024

// DeviceReport is the full telemetry snapshot of one device, as printed by
// `info`. Collection is best-effort: fields whose query failed keep their
// zero value and are flagged absent in the availability set.
type DeviceReport struct {
	DeviceID        int     `json:"device_id"`
	Name            string  `json:"name"`
	UUID            string  `json:"uuid"`
	Temperature     float64 `json:"temperature"`
	TemperatureUnit string  `json:"temperature_unit"`
	MemoryTotalMB   uint64  `json:"memory_total_mb"`
	MemoryUsedMB    uint64  `json:"memory_used_mb"`
	MemoryFreeMB    uint64  `json:"memory_free_mb"`
	FanSpeedPercent int     `json:"fan_speed_percent"`
	PowerUsageWatts float64 `json:"power_usage_watts"`
	PowerLimitWatts float64 `json:"power_limit_watts"`

	// HasX flags record which queries succeeded, for human output that
	// omits unavailable readings instead of printing zeros.
	HasName  bool `json:"-"`
	HasUUID  bool `json:"-"`
	HasTemp  bool `json:"-"`
	HasMem   bool `json:"-"`
	HasFan   bool `json:"-"`
	HasPower bool `json:"-"`
}

// Collect gathers every reading the device offers. Individual query
// failures are tolerated, the report is as complete as the hardware allows.
func Collect(device gpu.Device, unit units.TempUnit) DeviceReport {
	r := DeviceReport{
		DeviceID:        device.Index(),
		Name:            "Unknown",
		UUID:            "Unknown",
		TemperatureUnit: unit.String(),
	}

	if name, err := device.Name(); err == nil {
		r.Name = name
		r.HasName = true
	}
	if uuid, err := device.UUID(); err == nil {
		r.UUID = uuid
		r.HasUUID = true
	}
	if temperature, err := device.Temperature(); err == nil {
		r.Temperature = unit.Convert(temperature)
		r.HasTemp = true
	}
	if memory, err := device.Memory(); err == nil {
		r.MemoryTotalMB = memory.Total / bytesPerMB
		r.MemoryUsedMB = memory.Used / bytesPerMB
		r.MemoryFreeMB = memory.Free / bytesPerMB
		r.HasMem = true
	}
	if speed, err := device.FanSpeed(); err == nil {
		r.FanSpeedPercent = speed
		r.HasFan = true
	}
	if usage, err := device.PowerUsage(); err == nil {
		r.PowerUsageWatts = float64(usage) / 1000.0
		r.HasPower = true
		if limit, err := device.PowerLimit(); err == nil {
			r.PowerLimitWatts = float64(limit) / 1000.0
		}
	}

	return r
}

// MemoryUsedPercent returns memory usage relative to total, 0 when total is
// unknown.
func (r DeviceReport) MemoryUsedPercent() float64 {
	if r.MemoryTotalMB == 0 {
		return 0
	}
	return float64(r.MemoryUsedMB) / float64(r.MemoryTotalMB) * 100.0
}

// PowerUsedPercent returns power draw relative to the limit, 0 when the
// limit is unknown.
func (r DeviceReport) PowerUsedPercent() float64 {
	if r.PowerLimitWatts == 0 {
		return 0
	}
	return r.PowerUsageWatts / r.PowerLimitWatts * 100.0
}
