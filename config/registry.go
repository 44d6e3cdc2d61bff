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
package config

import (
	"github.com/fogfish/idkit"
	"github.com/fogfish/idkit/snowflake"
	"github.com/fogfish/idkit/ulid"
	"github.com/fogfish/idkit/uuid"
	"github.com/rs/zerolog"
)

// Registry of generators sharing the logger
type Registry struct {
	Logger    zerolog.Logger
	UUID      *uuid.Generator
	ULID      *ulid.Generator
	Snowflake snowflake.Source
}

// New validates settings and creates generators
func New(s *Settings) (*Registry, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	logger := Logger(*s)

	layout, err := s.Snowflake.Layout()
	if err != nil {
		return nil, err
	}

	opts := []snowflake.Config{snowflake.WithLogger(logger)}
	for name, value := range s.Snowflake.fields() {
		if value != 0 {
			opts = append(opts, snowflake.WithField(name, value))
		}
	}
	if s.Snowflake.Table != "" {
		opts = append(opts, snowflake.WithTable(s.Snowflake.Table))
	}

	flake, err := snowflake.NewGenerator(layout, opts...)
	if err != nil {
		return nil, err
	}

	node := nodeOf(s.Node)
	logger.Debug().
		Str("node", node.Address()).
		Str("snowflake", layout.String()).
		Msg("identifier generators created")

	return &Registry{
		Logger:    logger,
		UUID:      uuid.NewGenerator(uuid.WithNode(node), uuid.WithLogger(logger)),
		ULID:      ulid.NewGenerator(ulid.WithLogger(logger)),
		Snowflake: flake,
	}, nil
}

func nodeOf(node string) idkit.NodeProvider {
	switch node {
	case NodeSystem:
		return idkit.SystemNode()
	case NodeRandom:
		return idkit.RandomNode()
	case NodeEnv:
		return idkit.NodeFromEnv()
	default:
		return idkit.StaticNode(node)
	}
}
