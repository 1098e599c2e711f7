// Package engineconfig loads the engine's YAML configuration file, the way
// the teacher's database config loaders parse a dialect's YAML settings
// file: CLI flags override the config file, which overrides built-in
// defaults.
package engineconfig

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v2"
)

// Config holds the compiler's scratch directory and go tool, and the
// parallel scan/finalize settings. cmd/imlabdb reads only ScratchDir and
// GoTool; ParallelScan, ParallelFinalize and ScanShards are loaded and
// normalized but not read by the compiler or the generated code.
type Config struct {
	ScratchDir       string `yaml:"scratch_dir"`
	ParallelScan     bool   `yaml:"parallel_scan"`
	ParallelFinalize bool   `yaml:"parallel_finalize"`
	ScanShards       int    `yaml:"scan_shards"`
	GoTool           string `yaml:"go_tool"`
}

// Default returns the built-in configuration: a system temp directory for
// compiler scratch space, the "go" binary on PATH, GOMAXPROCS shards, and
// both parallel paths off.
func Default() Config {
	return Config{
		ScratchDir: os.TempDir(),
		GoTool:     "go",
		ScanShards: runtime.GOMAXPROCS(0),
	}
}

// Load reads a YAML config file on top of Default. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("engineconfig: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("engineconfig: parsing %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.ScanShards <= 0 {
		c.ScanShards = runtime.GOMAXPROCS(0)
	}
	if c.GoTool == "" {
		c.GoTool = "go"
	}
	if c.ScratchDir == "" {
		c.ScratchDir = os.TempDir()
	}
}

// Override applies CLI flag values on top of c. A zero value for any
// parameter (empty string, zero, false) leaves the existing value alone,
// so flags the user never set don't clobber the config file.
func (c Config) Override(scratchDir, goTool string, scanShards int, parallelScan, parallelFinalize bool) Config {
	if scratchDir != "" {
		c.ScratchDir = scratchDir
	}
	if goTool != "" {
		c.GoTool = goTool
	}
	if scanShards > 0 {
		c.ScanShards = scanShards
	}
	if parallelScan {
		c.ParallelScan = true
	}
	if parallelFinalize {
		c.ParallelFinalize = true
	}
	c.normalize()
	return c
}
