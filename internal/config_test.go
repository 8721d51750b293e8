package internal

import (
	"testing"
	"time"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults_From_Environment(t *testing.T) {
	req := require.New(t)
	environ := env.EnvSet{
		"BADGER_FILEPATH": "/tmp/npchat",
		"BLUGE_FILEPATH":  "/tmp/npchat-users",
		"AUTH_SECRET":     "0123456789abcdef0123456789abcdef",
		"PORT":            "9000",
	}

	var config Config
	_, err := env.Unmarshal(environ, &config)
	req.NoError(err)

	req.Equal(9000, config.Port)
	req.Equal(8081, config.HealthPort)
	req.Equal(24*time.Hour, config.CallRetention)
	req.Equal(250*time.Millisecond, config.ListenerTimeout)
	req.NoError(config.Validate())
}

func TestConfig_Required_Keys(t *testing.T) {
	req := require.New(t)
	var config Config
	_, err := env.Unmarshal(env.EnvSet{"AUTH_SECRET": "x"}, &config)
	req.Error(err)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		AuthSecret:        "0123456789abcdef0123456789abcdef",
		DispatcherBacklog: 10,
		ListenerTimeout:   time.Second,
		MaxContentLength:  10,
		HistoryLimit:      10,
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"Short secret", func(c *Config) { c.AuthSecret = "short" }},
		{"No backlog", func(c *Config) { c.DispatcherBacklog = 0 }},
		{"No timeout", func(c *Config) { c.ListenerTimeout = 0 }},
		{"No history", func(c *Config) { c.HistoryLimit = 0 }},
	}

	require.NoError(t, valid.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid
			tt.mutate(&config)
			require.Error(t, config.Validate())
		})
	}
}
