package targets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xl0/nvml-tool/internal/gpu"
)

// ParseSelector expands a device selector into a list of device indices.
// Selectors are comma-separated indices and inclusive ranges, e.g. "0",
// "0-2", "0,2,4" or "1-3,5". Indices are neither deduplicated nor bounds
// checked here; existence is validated per device by the caller.
func ParseSelector(selector string) ([]int, error) {
	var indices []int

	for _, token := range strings.Split(selector, ",") {
		token = strings.TrimSpace(token)

		if start, end, ok := strings.Cut(token, "-"); ok {
			first, err := parseIndex(start, selector)
			if err != nil {
				return nil, err
			}
			last, err := parseIndex(end, selector)
			if err != nil {
				return nil, err
			}
			if last < first {
				return nil, fmt.Errorf("invalid device range '%s' in selector '%s'", token, selector)
			}
			for i := first; i <= last; i++ {
				indices = append(indices, i)
			}
			continue
		}

		index, err := parseIndex(token, selector)
		if err != nil {
			return nil, err
		}
		indices = append(indices, index)
	}

	return indices, nil
}

func parseIndex(token string, selector string) (int, error) {
	index, err := strconv.Atoi(token)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("invalid device index '%s' in selector '%s'", token, selector)
	}
	return index, nil
}

// FindByUUID returns the index of the first enumerated device whose UUID
// contains the given substring. An unmatched UUID is an error, never an
// empty result.
func FindByUUID(devices []gpu.Device, uuid string) (int, error) {
	for _, device := range devices {
		deviceUUID, err := device.UUID()
		if err != nil {
			continue
		}
		if strings.Contains(deviceUUID, uuid) {
			return device.Index(), nil
		}
	}
	return 0, fmt.Errorf("device with UUID '%s' not found", uuid)
}

// Resolve turns the user's device selection into a concrete index list:
// a UUID substring wins over an index selector, no selection at all means
// every enumerated device.
func Resolve(session gpu.Session, selector string, uuid string) ([]int, error) {
	if uuid != "" {
		index, err := FindByUUID(session.Devices(), uuid)
		if err != nil {
			return nil, err
		}
		return []int{index}, nil
	}
	if selector != "" {
		return ParseSelector(selector)
	}
	return All(session.DeviceCount()), nil
}

// All returns the indices of all enumerated devices, in index order.
func All(count int) []int {
	indices := make([]int, count)
	for i := range indices {
		indices[i] = i
	}
	return indices
}
