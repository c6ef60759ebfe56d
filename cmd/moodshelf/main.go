// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/poiesic/moodshelf"
	"github.com/poiesic/moodshelf/config"
	"github.com/poiesic/moodshelf/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
)

const (
	configKey   = "config"
	registryKey = "registry"
	metricsKey  = "metrics"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "moodshelf",
		Usage:  "Community keyword book recommender",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
				EnvVars: []string{config.PathEnvVar},
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log output format (text, json)",
			},
			&cli.StringFlag{
				Name:  "metrics-textfile",
				Usage: "Write Prometheus metrics to this file on exit",
			},
			&cli.StringFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "User id that submits keywords and votes",
				EnvVars: []string{"MOODSHELF_USER"},
			},
		},
		Before:   setup,
		After:    writeMetrics,
		Commands: commands(),
	}
}

// setup loads the configuration, applies flag overrides and installs the
// default logger.
func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("db") {
		cfg.Database.Path = c.String("db")
	}
	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Logging.Format = c.String("log-format")
	}
	if c.IsSet("metrics-textfile") {
		cfg.Metrics.Textfile = c.String("metrics-textfile")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.Logging.SlogLevel()}
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	reg := prometheus.NewRegistry()
	m := metrics.New()
	if err := m.Register(reg); err != nil {
		return err
	}

	c.App.Metadata = map[string]any{
		configKey:   cfg,
		registryKey: reg,
		metricsKey:  m,
	}
	return nil
}

func writeMetrics(c *cli.Context) error {
	cfg, ok := c.App.Metadata[configKey].(*config.Config)
	if !ok || cfg.Metrics.Textfile == "" {
		return nil
	}
	reg := c.App.Metadata[registryKey].(*prometheus.Registry)
	if err := prometheus.WriteToTextfile(cfg.Metrics.Textfile, reg); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// openDatabase opens the configured database. Callers must close it.
func openDatabase(c *cli.Context) (*moodshelf.Database, error) {
	cfg := c.App.Metadata[configKey].(*config.Config)
	m := c.App.Metadata[metricsKey].(*metrics.Metrics)

	opts := []moodshelf.DatabaseOption{
		moodshelf.WithAIConfig(cfg.AIConfig()),
		moodshelf.WithClusterOptions(cfg.ClusterOptions()...),
		moodshelf.WithMetrics(m),
		moodshelf.WithLogger(slog.Default()),
	}
	if cfg.Database.InMemory {
		opts = append(opts, moodshelf.WithInMemory())
	}
	db, err := moodshelf.NewDatabase(cfg.Database.Path, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
