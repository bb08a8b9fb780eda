package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	World      WorldConfig      `toml:"world"`
	Population PopulationConfig `toml:"population"`
	Simulation SimulationConfig `toml:"simulation"`
	Database   DatabaseConfig   `toml:"database"`
	Scripting  ScriptingConfig  `toml:"scripting"`
	Data       DataConfig       `toml:"data"`
	Logging    LoggingConfig    `toml:"logging"`
}

type WorldConfig struct {
	Width       uint32 `toml:"width"`
	Height      uint32 `toml:"height"`
	FoodPerTile uint32 `toml:"food_per_tile"`
}

type PopulationConfig struct {
	Size   int    `toml:"size"`
	Genome string `toml:"genome"` // preset name from the genome table
}

type SimulationConfig struct {
	TickRate       time.Duration `toml:"tick_rate"`       // 0 = run rounds back to back
	MaxRounds      uint64        `toml:"max_rounds"`      // 0 = until extinction
	Seed           int64         `toml:"seed"`            // 0 = seeded from the clock
	StatusInterval int           `toml:"status_interval"` // rounds between status lines
	StartTime      int64         // set at boot, not from config
}

type DatabaseConfig struct {
	DSN             string        `toml:"dsn"` // empty disables census recording
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
	FlushInterval   int           `toml:"flush_interval"` // rounds between census flushes
}

type ScriptingConfig struct {
	Dir string `toml:"dir"`
}

type DataConfig struct {
	Genomes string `toml:"genomes"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Simulation.StartTime = time.Now().Unix()
	return cfg, nil
}

// Default returns the built-in configuration, used when no file is present.
func Default() *Config {
	cfg := defaults()
	cfg.Simulation.StartTime = time.Now().Unix()
	return cfg
}

func (c *Config) validate() error {
	if c.World.Width == 0 || c.World.Height == 0 {
		return fmt.Errorf("world size %dx%d must be positive", c.World.Width, c.World.Height)
	}
	if c.Population.Size < 0 {
		return fmt.Errorf("population size %d is negative", c.Population.Size)
	}
	if c.Population.Size > int(c.World.Width)*int(c.World.Height) {
		return fmt.Errorf("population %d does not fit a %dx%d world",
			c.Population.Size, c.World.Width, c.World.Height)
	}
	if c.Simulation.StatusInterval < 1 {
		c.Simulation.StatusInterval = 1
	}
	if c.Database.FlushInterval < 1 {
		c.Database.FlushInterval = 1
	}
	return nil
}

func defaults() *Config {
	return &Config{
		World: WorldConfig{
			Width:       800,
			Height:      600,
			FoodPerTile: 100,
		},
		Population: PopulationConfig{
			Size:   500,
			Genome: "grazer",
		},
		Simulation: SimulationConfig{
			TickRate:       0,
			MaxRounds:      0,
			Seed:           0,
			StatusInterval: 100,
		},
		Database: DatabaseConfig{
			DSN:             "",
			MaxOpenConns:    4,
			MaxIdleConns:    1,
			ConnMaxLifetime: 30 * time.Minute,
			FlushInterval:   50,
		},
		Scripting: ScriptingConfig{
			Dir: "scripts",
		},
		Data: DataConfig{
			Genomes: "data/yaml/genomes.yaml",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
