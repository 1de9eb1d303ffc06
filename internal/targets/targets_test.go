package targets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xl0/nvml-tool/internal/gpu"
)

// fakeDevice only implements the pieces of gpu.Device that target
// resolution touches.
type fakeDevice struct {
	gpu.Device
	index int
	uuid  string
}

func (d *fakeDevice) Index() int {
	return d.index
}

func (d *fakeDevice) UUID() (string, error) {
	return d.uuid, nil
}

func fakeDevices(uuids ...string) []gpu.Device {
	devices := make([]gpu.Device, 0, len(uuids))
	for i, uuid := range uuids {
		devices = append(devices, &fakeDevice{index: i, uuid: uuid})
	}
	return devices
}

func TestParseSelectorRange(t *testing.T) {
	// WHEN
	indices, err := ParseSelector("0-2")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, indices)
}

func TestParseSelectorList(t *testing.T) {
	// WHEN
	indices, err := ParseSelector("0,2,4")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 2, 4}, indices)
}

func TestParseSelectorMixed(t *testing.T) {
	// WHEN
	indices, err := ParseSelector("1-3,5")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 5}, indices)
}

func TestParseSelectorSingleIndex(t *testing.T) {
	// WHEN
	indices, err := ParseSelector("3")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []int{3}, indices)
}

func TestParseSelectorKeepsDuplicates(t *testing.T) {
	// indices are not deduplicated at parse time
	indices, err := ParseSelector("0,0-1")

	assert.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1}, indices)
}

func TestParseSelectorRejectsGarbage(t *testing.T) {
	for _, selector := range []string{"", "a", "0,x", "1-", "-2", "2-1", "0;1"} {
		_, err := ParseSelector(selector)
		assert.Error(t, err, "selector %q should be rejected", selector)
	}
}

func TestFindByUUIDSubstringMatch(t *testing.T) {
	// GIVEN
	devices := fakeDevices("GPU-aaaa-1111", "GPU-bbbb-2222", "GPU-cccc-3333")

	// WHEN
	index, err := FindByUUID(devices, "bbbb")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 1, index)
}

func TestFindByUUIDFirstMatchWins(t *testing.T) {
	// GIVEN
	devices := fakeDevices("GPU-aaaa-1111", "GPU-aaaa-2222")

	// WHEN
	index, err := FindByUUID(devices, "aaaa")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 0, index)
}

func TestFindByUUIDUnmatchedIsError(t *testing.T) {
	// GIVEN
	devices := fakeDevices("GPU-aaaa-1111")

	// WHEN
	_, err := FindByUUID(devices, "zzzz")

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "zzzz")
}

func TestAll(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3}, All(4))
	assert.Empty(t, All(0))
}
