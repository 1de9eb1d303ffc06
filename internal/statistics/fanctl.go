package statistics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const fanctlSubsystem = "fanctl"

// FanctlCollector exposes the last-cycle state of the fan control loop.
// The loop records values as it goes, prometheus scrapes them on demand.
type FanctlCollector struct {
	mu           sync.Mutex
	temperatures map[int]float64
	duties       map[int]float64
	cycles       float64

	temperature *prometheus.Desc
	targetDuty  *prometheus.Desc
	cyclesTotal *prometheus.Desc
}

func NewFanctlCollector() *FanctlCollector {
	return &FanctlCollector{
		temperatures: map[int]float64{},
		duties:       map[int]float64{},
		temperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanctlSubsystem, "temperature_celsius"),
			"Last temperature reading of the controlled device",
			[]string{"device"}, nil,
		),
		targetDuty: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanctlSubsystem, "target_duty_percent"),
			"Last fan duty applied to the controlled device",
			[]string{"device"}, nil,
		),
		cyclesTotal: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanctlSubsystem, "cycles_total"),
			"Number of completed control cycles",
			nil, nil,
		),
	}
}

// RecordDevice stores the reading and applied duty of one device.
func (collector *FanctlCollector) RecordDevice(device int, temperature int, duty int) {
	collector.mu.Lock()
	defer collector.mu.Unlock()
	collector.temperatures[device] = float64(temperature)
	collector.duties[device] = float64(duty)
}

// RecordCycle counts one completed control cycle.
func (collector *FanctlCollector) RecordCycle() {
	collector.mu.Lock()
	defer collector.mu.Unlock()
	collector.cycles++
}

func (collector *FanctlCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.temperature
	ch <- collector.targetDuty
	ch <- collector.cyclesTotal
}

// Collect implements the required collect function for all prometheus collectors
func (collector *FanctlCollector) Collect(ch chan<- prometheus.Metric) {
	collector.mu.Lock()
	defer collector.mu.Unlock()

	for device, temperature := range collector.temperatures {
		label := strconv.Itoa(device)
		ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, temperature, label)
		ch <- prometheus.MustNewConstMetric(collector.targetDuty, prometheus.GaugeValue, collector.duties[device], label)
	}
	ch <- prometheus.MustNewConstMetric(collector.cyclesTotal, prometheus.CounterValue, collector.cycles)
}
