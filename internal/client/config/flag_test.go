package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "http://api:8000", "-d", "x.db", "-i", "10", "-l", "debug", "-log-file=", "-t", "7"},
			expected: &Config{
				ServerURL: "http://api:8000", DBPath: "x.db", LogLevel: "debug",
				PollInterval: 10 * time.Second, RequestTimeout: 7 * time.Second,
			},
		},
		{
			name:     "unrelated flags are ignored",
			args:     []string{"cmd", "-c", "conf.json", "-verbose", "-i", "2"},
			expected: &Config{PollInterval: 2 * time.Second},
		},
		{name: "incorrect poll interval", args: []string{"cmd", "-i", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestParseFlags_KeepsPreviousValuesWhenAbsent(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cmd"}

	cfg := defaults()
	parseFlags(cfg)

	assert.Empty(t, cmp.Diff(defaults(), cfg))
}
