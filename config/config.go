package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"abvt/protocol"
	"abvt/sim"
)

const (
	EnvAddr         = "ABVT_ADDR"
	EnvAgentCount   = "ABVT_AGENT_COUNT"
	EnvSimDim       = "ABVT_SIM_DIM"
	EnvScaleX       = "ABVT_SCALE_X"
	EnvScaleY       = "ABVT_SCALE_Y"
	EnvTickInterval = "ABVT_TICK_INTERVAL"
	EnvStaticDir    = "ABVT_STATIC_DIR"
	EnvLogLevel     = "ABVT_LOG_LEVEL"
)

type Config struct {
	Addr         string
	AgentCount   uint32
	SimDim       uint32
	ScaleX       uint8
	ScaleY       uint8
	TickInterval time.Duration
	StaticDir    string
	LogLevel     string
}

func Default() Config {
	return Config{
		Addr:         ":8080",
		AgentCount:   sim.DefaultAgentCount,
		SimDim:       sim.DefaultSimDim,
		ScaleX:       sim.DefaultScaleX,
		ScaleY:       sim.DefaultScaleY,
		TickInterval: protocol.TickInterval,
		StaticDir:    "www/dist",
		LogLevel:     "info",
	}
}

// InitConfig loads environment files into the process environment.
// A missing file is fine; anything else is reported.
func InitConfig(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

func GetEnvVariable(v string) (string, error) {
	if v == "" {
		return "", fmt.Errorf("input param empty")
	}
	b := os.Getenv(v)
	if b == "" {
		return "", fmt.Errorf("failed to get variable for %s", v)
	}

	return b, nil
}

// Load reads Config from the environment, falling back to Default for
// unset variables.
func Load() (Config, error) {
	c := Default()
	var err error

	if v, ok := lookup(EnvAddr); ok {
		c.Addr = v
	}
	if v, ok := lookup(EnvStaticDir); ok {
		c.StaticDir = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if c.AgentCount, err = uintVar(EnvAgentCount, c.AgentCount, 32); err != nil {
		return c, err
	}
	if c.SimDim, err = uintVar(EnvSimDim, c.SimDim, 32); err != nil {
		return c, err
	}
	sx, err := uintVar(EnvScaleX, uint32(c.ScaleX), 8)
	if err != nil {
		return c, err
	}
	sy, err := uintVar(EnvScaleY, uint32(c.ScaleY), 8)
	if err != nil {
		return c, err
	}
	c.ScaleX, c.ScaleY = uint8(sx), uint8(sy)

	if v, ok := lookup(EnvTickInterval); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return c, fmt.Errorf("%s: %w", EnvTickInterval, err)
		}
		if d <= 0 {
			return c, fmt.Errorf("%s: must be positive, got %s", EnvTickInterval, v)
		}
		c.TickInterval = d
	}

	if err := c.Params().Validate(); err != nil {
		return c, fmt.Errorf("simulation params: %w", err)
	}
	return c, nil
}

func (c Config) Params() sim.Params {
	return sim.Params{
		AgentCount: c.AgentCount,
		SimDim:     c.SimDim,
		ScaleX:     c.ScaleX,
		ScaleY:     c.ScaleY,
	}
}

func lookup(name string) (string, bool) {
	v, err := GetEnvVariable(name)
	if err != nil {
		return "", false
	}
	return v, true
}

func uintVar(name string, def uint32, bits int) (uint32, error) {
	v, ok := lookup(name)
	if !ok {
		return def, nil
	}
	n, err := strconv.ParseUint(v, 10, bits)
	if err != nil {
		return def, fmt.Errorf("%s: %w", name, err)
	}
	return uint32(n), nil
}
