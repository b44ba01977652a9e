// Copyright 2025 Strata Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"

	"github.com/BurntSushi/toml"
	"github.com/strataql/strata/pkg/common/serr"
	"github.com/strataql/strata/pkg/logutil"
)

// Deep-pruning feature flags. The flags form a bitmask so that sessions can
// toggle each behavior independently.
const (
	// FlagDeepPruning is the master switch. When unset the deep projection
	// rule is a no-op and no maps are attached to scans.
	FlagDeepPruning uint64 = 1 << 0
	// FlagProjectionMerging collapses chains of adjacent projections before
	// analysis.
	FlagProjectionMerging uint64 = 1 << 1
	// FlagSubqueryTranslation mirrors requirements across correlating
	// subquery predicates.
	FlagSubqueryTranslation uint64 = 1 << 2
)

// DefaultMaxPasses bounds the optimizer's fixed-point loop.
var DefaultMaxPasses = 2

// OptimizerConfig is the immutable per-invocation optimizer configuration.
// It is passed into the planner by value; concurrent plans with different
// settings never interfere.
type OptimizerConfig struct {
	// MaxPasses bounds the fixed-point rule loop.
	MaxPasses int `toml:"max-passes"`
	// DeepPruningFlags is the Flag* bitmask.
	DeepPruningFlags uint64 `toml:"deep-pruning-flags"`
	// DegradeToLiveColumns weakens the conservative "no map" fallback to
	// "every live column required whole". Row-count correct either way;
	// this variant keeps a map attached so providers with per-column
	// metadata can still skip dead columns.
	DegradeToLiveColumns bool `toml:"degrade-to-live-columns"`
}

func (c OptimizerConfig) DeepPruningEnabled() bool {
	return c.DeepPruningFlags&FlagDeepPruning != 0
}

func (c OptimizerConfig) ProjectionMergingEnabled() bool {
	return c.DeepPruningFlags&FlagProjectionMerging != 0
}

func (c OptimizerConfig) SubqueryTranslationEnabled() bool {
	return c.DeepPruningFlags&FlagSubqueryTranslation != 0
}

// Config is the top-level configuration file layout.
type Config struct {
	Log       logutil.LogConfig `toml:"log"`
	Optimizer OptimizerConfig   `toml:"optimizer"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: logutil.LogConfig{
			Level:  "info",
			Format: "console",
		},
		Optimizer: OptimizerConfig{
			MaxPasses:        DefaultMaxPasses,
			DeepPruningFlags: FlagDeepPruning | FlagProjectionMerging,
		},
	}
}

// Load reads a TOML config file on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, serr.NewBadConfig(context.Background(), "cannot decode %s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Optimizer.MaxPasses < 1 {
		return serr.NewBadConfig(context.Background(), "max-passes must be at least 1, got %d", c.Optimizer.MaxPasses)
	}
	return nil
}
