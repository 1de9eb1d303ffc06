package configuration

import (
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/xl0/nvml-tool/internal/ui"
)

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

type Configuration struct {
	// TempUnit is the default display unit (C, F or K), overridable per
	// invocation with --temp-unit.
	TempUnit string `json:"tempUnit"`

	// FanctlInterval is the fixed sleep between fanctl control cycles.
	FanctlInterval time.Duration `json:"fanctlInterval"`

	Statistics StatisticsConfig `json:"statistics"`
}

var CurrentConfig Configuration

// InitConfig reads in the optional config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("nvml-tool")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/nvml-tool/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()

	if err := viper.ReadInConfig(); err != nil {
		// the config file is optional, only an explicitly requested one is required
		if cfgFile != "" {
			ui.Fatal("Error reading config file, %s", err)
		}
	}

	LoadConfig()
}

func setDefaultValues() {
	viper.SetDefault("TempUnit", "C")
	viper.SetDefault("FanctlInterval", 2*time.Second)
	viper.SetDefault("Statistics.Enabled", false)
	viper.SetDefault("Statistics.Port", 9101)
}

func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig)
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}
