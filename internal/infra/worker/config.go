// Package worker holds the runtime scaffolding for the scheduled digest
// job: environment configuration, a small health endpoint for liveness
// probes, and the Prometheus metrics the job reports.
package worker

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"newsroom/pkg/config"
)

// WorkerConfig controls the digest job schedule and its resource limits.
type WorkerConfig struct {
	// CronSchedule is a standard five-field cron expression in the
	// configured timezone.
	CronSchedule string

	// Timezone is an IANA zone name, e.g. "America/New_York".
	Timezone string

	// DigestTimeout bounds a single digest run end to end.
	DigestTimeout time.Duration

	// NotifyMaxConcurrent caps concurrent notification dispatches
	// during a run.
	NotifyMaxConcurrent int

	// HealthPort is the port for the worker's health endpoint.
	HealthPort int
}

// DefaultConfig returns the configuration used when no environment
// overrides are present: a daily run at 06:00 UTC.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:        "0 6 * * *",
		Timezone:            "UTC",
		DigestTimeout:       15 * time.Minute,
		NotifyMaxConcurrent: 10,
		HealthPort:          9091,
	}
}

// Validate checks that every field holds a usable value.
func (c WorkerConfig) Validate() error {
	if _, err := cron.ParseStandard(c.CronSchedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", c.CronSchedule, err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if err := config.ValidateDurationRange(c.DigestTimeout, time.Minute, 2*time.Hour); err != nil {
		return fmt.Errorf("invalid digest timeout: %w", err)
	}
	if c.NotifyMaxConcurrent < 1 || c.NotifyMaxConcurrent > 100 {
		return fmt.Errorf("notify max concurrent must be between 1 and 100, got %d", c.NotifyMaxConcurrent)
	}
	if c.HealthPort < 1 || c.HealthPort > 65535 {
		return fmt.Errorf("health port must be between 1 and 65535, got %d", c.HealthPort)
	}
	return nil
}

// LoadConfigFromEnv builds a WorkerConfig from environment variables,
// falling back to defaults for unset or unparsable values. An invalid
// combination still fails hard: a worker running on a schedule nobody
// asked for is worse than one that refuses to start.
func LoadConfigFromEnv() (WorkerConfig, error) {
	def := DefaultConfig()
	cfg := WorkerConfig{
		CronSchedule:        config.GetEnvString("DIGEST_CRON_SCHEDULE", def.CronSchedule),
		Timezone:            config.GetEnvString("DIGEST_TIMEZONE", def.Timezone),
		DigestTimeout:       config.GetEnvDuration("DIGEST_TIMEOUT", def.DigestTimeout),
		NotifyMaxConcurrent: config.GetEnvInt("NOTIFY_MAX_CONCURRENT", def.NotifyMaxConcurrent),
		HealthPort:          config.GetEnvInt("WORKER_HEALTH_PORT", def.HealthPort),
	}
	if err := cfg.Validate(); err != nil {
		return WorkerConfig{}, err
	}
	return cfg, nil
}

// Location resolves the configured timezone. Validate must have passed.
func (c WorkerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
