// Package main - Entry point for the cloud-fee HTTP server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"cloud-fee/api"
	"cloud-fee/core/compare"
	"cloud-fee/internal/config"
	"cloud-fee/internal/logging"
)

const version = "0.1.0"

func main() {
	cfgFile := flag.String("config", "", "config file (json, yaml or toml)")
	addr := flag.String("addr", "", "server address; overrides server.addr")
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	server := api.NewServer(api.Options{
		Version:         version,
		Logger:          logging.Named("api"),
		Metrics:         api.NewMetrics(reg),
		DefaultSample:   compare.SampleFactor{Step: cfg.Sample.Step, Count: cfg.Sample.Count},
		MaxSamplePoints: cfg.Server.MaxSamplePoints,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("cloud-fee server starting",
		zap.String("version", version),
		zap.String("addr", cfg.Server.Addr),
	)

	err = server.ListenAndServe(ctx, cfg.Server.Addr,
		time.Duration(cfg.Server.ReadTimeoutSeconds)*time.Second,
		time.Duration(cfg.Server.WriteTimeoutSeconds)*time.Second,
	)
	if err != nil {
		logging.Fatal("server stopped", zap.Error(err))
	}
	logging.Info("server shut down")
}
