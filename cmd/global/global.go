package global

var (
	CfgFile string

	// DeviceSelector is the -d/--device selector ("0", "0-2", "0,2,4", ...).
	// Empty means all devices.
	DeviceSelector string
	// UUID selects a single device by UUID substring.
	UUID string
	// TempUnit overrides the configured display unit (C, F or K).
	TempUnit string

	NoColor bool
	NoStyle bool
	Verbose bool
)
