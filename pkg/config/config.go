package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is everything the run needs besides the ledger contents: file
// locations, how to reach the browser, and pacing. Values come from the
// config file, BILLPAY_* environment variables and command-line flags, in
// increasing precedence.
type Config struct {
	LedgerPath  string `mapstructure:"ledger"`
	SuccessPath string `mapstructure:"success_file"`
	ErrorPath   string `mapstructure:"error_file"`

	CDPAddress  string `mapstructure:"cdp_address"`
	ProfilePath string `mapstructure:"profile"`

	BatchSize    int           `mapstructure:"batch_size"`
	SettleDelay  time.Duration `mapstructure:"settle_delay"`
	LoadTimeout  time.Duration `mapstructure:"load_timeout"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
}

// Build loads configuration. cfgFile overrides the default search for
// billpay.yaml in the working directory; flags, when given, are bound on top.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("ledger", "bills.csv")
	v.SetDefault("success_file", "successful_transactions.csv")
	v.SetDefault("error_file", "error_transactions.csv")
	v.SetDefault("cdp_address", "http://localhost:9222")
	v.SetDefault("profile", "")
	v.SetDefault("batch_size", 5)
	v.SetDefault("settle_delay", 2*time.Second)
	v.SetDefault("load_timeout", 30*time.Second)
	v.SetDefault("probe_timeout", 10*time.Second)

	v.SetEnvPrefix("BILLPAY")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("billpay")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional unless one was named explicitly.
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if cfgFile != "" || !notFound {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.BatchSize < 1 {
		return nil, fmt.Errorf("batch_size must be at least 1")
	}
	return &cfg, nil
}
