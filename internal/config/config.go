// Package config loads the runtime-tunable settings — worker-pool sizes,
// queue capacity, resize threshold, idle timeout, monitor interval, storage
// directory, max file size — from the environment.
package config

import (
	"os"
	"runtime"
	"strconv"
	"time"
)

// Config holds every environment-tunable value the core depends on.
type Config struct {
	CoreWorkers     int
	MaxWorkers      int
	QueueCapacity   int
	ResizeThreshold int
	IdleTimeout     time.Duration
	MonitorInterval time.Duration

	StorageDir  string
	MaxFileSize int64

	MetricsAddr string
}

// Load reads Config from the environment, applying defaults when a
// variable is unset or unparseable.
func Load() Config {
	cores := runtime.NumCPU()
	return Config{
		CoreWorkers:     envInt("FILEFLOW_CORE_WORKERS", cores),
		MaxWorkers:      envInt("FILEFLOW_MAX_WORKERS", cores*4),
		QueueCapacity:   envInt("FILEFLOW_QUEUE_CAPACITY", 200),
		ResizeThreshold: envInt("FILEFLOW_RESIZE_THRESHOLD", 50),
		IdleTimeout:     envDuration("FILEFLOW_IDLE_TIMEOUT", 60*time.Second),
		MonitorInterval: envDuration("FILEFLOW_MONITOR_INTERVAL", 1*time.Second),
		StorageDir:      env("FILEFLOW_STORAGE_DIR", "./data/storage"),
		MaxFileSize:     int64(envInt("FILEFLOW_MAX_FILE_SIZE_BYTES", 100*1024*1024)),
		MetricsAddr:     env("FILEFLOW_METRICS_ADDR", ":9090"),
	}
}

// env returns the value of key or a fallback default.
func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
