package config

import (
	"strings"
	"sync"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug             = "debug"
	ConfigThreads           = "threads"
	ConfigTTable            = "ttable"
	ConfigTTableMemFraction = "ttable-mem-fraction"
	ConfigCPUProfile        = "cpu-profile"
	ConfigMemProfile        = "mem-profile"
	ConfigBatchCards        = "batch-cards"
)

type Config struct {
	sync.Mutex
	viper.Viper

	args []string
}

func (c *Config) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("hearts", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Int(ConfigThreads, 1, "number of root candidates to resolve in parallel")
	fs.Bool(ConfigTTable, true, "use the transposition table")
	fs.Float64(ConfigTTableMemFraction, 0.05, "fraction of system memory for the transposition table")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigMemProfile, "", "write a heap profile to this file")
	fs.Int(ConfigBatchCards, 4, "cards per hand in random batch positions")
	// the shell command line follows the flags
	fs.SetInterspersed(false)
	return fs
}

// Load parses flags from args and binds HEARTS_* environment variables,
// e.g. HEARTS_TTABLE_MEM_FRACTION. Whatever follows the flags is kept as
// the command to run; see Command.
func (c *Config) Load(args []string) error {
	c.Viper = *viper.New()
	fs := c.flagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.SetEnvPrefix("hearts")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	c.args = fs.Args()
	return nil
}

// Command is the non-flag part of the arguments given to Load, joined
// back into one line.
func (c *Config) Command() string {
	return strings.TrimSpace(strings.Join(c.args, " "))
}

func (c *Config) SanitizedSettings() map[string]any {
	c.Lock()
	defer c.Unlock()
	return c.AllSettings()
}

// DefaultConfig returns the flag defaults without reading the process
// arguments. Environment variables still apply.
func DefaultConfig() *Config {
	c := &Config{}
	if err := c.Load(nil); err != nil {
		panic(err)
	}
	return c
}
