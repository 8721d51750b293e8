package internal

import (
	"fmt"
	"time"
)

type Config struct {
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
	Host              string        `env:"HOST,default=0.0.0.0"`
	Port              int           `env:"PORT,default=8080"`
	HealthPort        int           `env:"HEALTH_PORT,default=8081"`
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath     string        `env:"BLUGE_FILEPATH,required=true"`
	DispatcherBacklog int           `env:"DISPATCHER_BACKLOG,default=10000"`
	ListenerTimeout   time.Duration `env:"LISTENER_TIMEOUT,default=250ms"`
	CallRetention     time.Duration `env:"CALL_RETENTION,default=24h"`
	CallSweepInterval time.Duration `env:"CALL_SWEEP_INTERVAL,default=10m"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,default=1s"`
	MonitorInterval   time.Duration `env:"MONITOR_INTERVAL,default=30s"`
	AuthSecret        string        `env:"AUTH_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	MaxContentLength  int           `env:"MAX_CONTENT_LENGTH,default=4096"`
	HistoryLimit      int           `env:"HISTORY_LIMIT,default=100"`
	DebugInspect      bool          `env:"DEBUG_INSPECT,default=false"`
}

// Validate rejects values the runtime cannot work with.
func (c Config) Validate() error {
	switch {
	case len(c.AuthSecret) < 32:
		return fmt.Errorf("AUTH_SECRET must be at least 32 bytes, got %d", len(c.AuthSecret))
	case c.DispatcherBacklog <= 0:
		return fmt.Errorf("DISPATCHER_BACKLOG must be positive, got %d", c.DispatcherBacklog)
	case c.ListenerTimeout <= 0:
		return fmt.Errorf("LISTENER_TIMEOUT must be positive, got %s", c.ListenerTimeout)
	case c.MaxContentLength <= 0 || c.HistoryLimit <= 0:
		return fmt.Errorf("MAX_CONTENT_LENGTH and HISTORY_LIMIT must be positive")
	}
	return nil
}
