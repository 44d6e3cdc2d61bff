//
//  Copyright 2012 Dmitry Kolesnikov, All Rights Reserved
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//
/*
Package config assembles ready to use generators from settings. Settings are
read by viper from an optional yaml file and IDKIT_* environment variables:

	node: 0123456789ab
	log:
	  level: debug
	snowflake:
	  flavor: discord
	  worker: 1
	  process: 2

The environment overrides the file, e.g. IDKIT_SNOWFLAKE_WORKER=3.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fogfish/idkit"
	"github.com/fogfish/idkit/snowflake"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix of environment variables
const EnvPrefix = "IDKIT"

// Special values of node setting
const (
	NodeSystem = ""
	NodeRandom = "random"
	NodeEnv    = "env"
)

// Settings of identifier generators
type Settings struct {
	// Node is 12 hex digits, NodeSystem, NodeRandom or NodeEnv
	Node      string            `mapstructure:"node"`
	Log       LogSettings       `mapstructure:"log"`
	Snowflake SnowflakeSettings `mapstructure:"snowflake"`
}

type LogSettings struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// SnowflakeSettings selects the flavor and values of its fields. Epoch is
// milliseconds since Unix epoch, it is used by generic flavor only.
type SnowflakeSettings struct {
	Flavor  string `mapstructure:"flavor"`
	Epoch   int64  `mapstructure:"epoch"`
	Machine uint64 `mapstructure:"machine"`
	Worker  uint64 `mapstructure:"worker"`
	Process uint64 `mapstructure:"process"`
	Shard   uint64 `mapstructure:"shard"`
	Node    uint64 `mapstructure:"node"`
	Table   string `mapstructure:"table"`
}

// Load reads settings from yaml file and environment. Empty path or missing
// file is not an error, settings are read from environment only.
func Load(path string) (*Settings, error) {
	v := viper.New()

	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("node", NodeSystem)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("snowflake.flavor", "twitter")
	v.SetDefault("snowflake.epoch", 0)
	v.SetDefault("snowflake.machine", 0)
	v.SetDefault("snowflake.worker", 0)
	v.SetDefault("snowflake.process", 0)
	v.SetDefault("snowflake.shard", 0)
	v.SetDefault("snowflake.node", 0)
	v.SetDefault("snowflake.table", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &s, nil
}

// Validate checks settings, all problems are reported at once
func (s *Settings) Validate() error {
	var errs *multierror.Error

	switch s.Node {
	case NodeSystem, NodeRandom, NodeEnv:
	default:
		if _, err := idkit.ParseNode(s.Node); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(s.Log.Level)); err != nil {
		errs = multierror.Append(errs, idkit.Invalid("log level %q", s.Log.Level))
	}

	layout, err := s.Snowflake.Layout()
	if err != nil {
		errs = multierror.Append(errs, err)
		return errs.ErrorOrNil()
	}

	for name, value := range s.Snowflake.fields() {
		if value == 0 {
			continue
		}
		f, has := layout.Field(name)
		if !has {
			errs = multierror.Append(errs,
				idkit.Invalid("snowflake.%s is not a field of %s layout", name, layout.Name()))
			continue
		}
		if value > f.Max() {
			errs = multierror.Append(errs,
				idkit.Invalid("snowflake.%s %d exceeds maximum %d of %s layout", name, value, f.Max(), layout.Name()))
		}
	}

	if s.Snowflake.Table != "" && layout != snowflake.LayoutMastodon {
		errs = multierror.Append(errs,
			idkit.Invalid("snowflake.table is not used by %s layout", layout.Name()))
	}

	return errs.ErrorOrNil()
}

// Layout of configured flavor, twitter by default
func (s SnowflakeSettings) Layout() (*snowflake.Layout, error) {
	switch strings.ToLower(s.Flavor) {
	case "", "twitter":
		return snowflake.LayoutTwitter, nil
	case "discord":
		return snowflake.LayoutDiscord, nil
	case "instagram":
		return snowflake.LayoutInstagram, nil
	case "mastodon":
		return snowflake.LayoutMastodon, nil
	case "generic":
		return snowflake.Generic(idkit.NewEpoch(s.Epoch)), nil
	default:
		return nil, idkit.Invalid("snowflake.flavor %q is not one of twitter, discord, instagram, mastodon, generic", s.Flavor)
	}
}

func (s SnowflakeSettings) fields() map[string]uint64 {
	return map[string]uint64{
		"machine": s.Machine,
		"worker":  s.Worker,
		"process": s.Process,
		"shard":   s.Shard,
		"node":    s.Node,
	}
}
