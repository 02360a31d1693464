package redis

import (
	"context"
	"testing"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "default", mutate: func(c *Config) {}},
		{name: "no addrs", mutate: func(c *Config) { c.Addrs = nil }, wantErr: true},
		{name: "bad mode", mutate: func(c *Config) { c.Mode = "sentinel" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.ConnectTimeout = 0 }, wantErr: true},
		{name: "zero pool", mutate: func(c *Config) { c.PoolSize = 0 }, wantErr: true},
		{name: "negative retries", mutate: func(c *Config) { c.MaxRetries = -1 }, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.ErrorCodeEquals(err, string(errors.RedisConfigError)))
		})
	}
}

func TestClient_ConnectNilConfig(t *testing.T) {
	err := NewClient(nil).Connect(context.Background())
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.RedisConfigError)))
}
