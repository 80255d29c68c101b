// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package config binds the configuration table from the CLI's flag set,
// environment variables prefixed LIFE_, and sane defaults, using
// spf13/viper the way the teacher's own CLI-adjacent tooling binds
// configuration: register flags on a pflag.FlagSet, hand the set to
// viper, read back typed values.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is every knob §6's configuration table names, including the
// renderer-only playback rate, which cmd/hashlife parses (for parity
// with a future UI) but the core never reads.
type Config struct {
	InitialLevel          uint8
	ArenaCapacityHint     int
	StepExponent          uint8
	PlaybackRateHz        int
	MetaOnRLEPath         string
	MetaOffRLEPath        string
	EvaluatorCacheCapacity int
	ScavengeInterval      time.Duration
}

const envPrefix = "LIFE"

// RegisterFlags adds every Config field as a pflag on fs, for cmd/hashlife
// to call before parsing os.Args.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Uint8("initial-level", 16, "starting root level (square side = 2^level)")
	fs.Int("arena-capacity-hint", 1<<16, "initial node-vector capacity hint")
	fs.Uint8("step-exponent", 0, "step() advances 2^k generations")
	fs.Int("playback-rate", 10, "UI playback rate in ticks/sec (not read by the core)")
	fs.String("meta-on-rle", "", "RLE source used to render a meta-cell's 'on' state")
	fs.String("meta-off-rle", "", "RLE source used to render a meta-cell's 'off' state")
	fs.Int("evaluator-cache-capacity", 1<<20, "step_node memo cache entry limit; 0 means effectively unbounded")
	fs.Duration("scavenge-interval", 30*time.Second, "poll interval of bench --watch; never reclaims arena memory")
}

// Load binds fs (already parsed) and the LIFE_ environment namespace
// into a Config.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("config: bind flags: %w", err)
	}

	cacheCap := v.GetInt("evaluator-cache-capacity")
	if cacheCap == 0 {
		cacheCap = 1 << 30 // "effectively unbounded" per §6
	}

	return &Config{
		InitialLevel:           uint8(v.GetUint32("initial-level")),
		ArenaCapacityHint:      v.GetInt("arena-capacity-hint"),
		StepExponent:           uint8(v.GetUint32("step-exponent")),
		PlaybackRateHz:         v.GetInt("playback-rate"),
		MetaOnRLEPath:          v.GetString("meta-on-rle"),
		MetaOffRLEPath:         v.GetString("meta-off-rle"),
		EvaluatorCacheCapacity: cacheCap,
		ScavengeInterval:       v.GetDuration("scavenge-interval"),
	}, nil
}
