package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/limbo/habits/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "TEST_HABITS_NAME=habits\n" +
		"TEST_HABITS_LOOKBACK=120\n" +
		"TEST_HABITS_BROKEN_INT=ten\n" +
		"TEST_HABITS_REMINDER=true\n" +
		"TEST_HABITS_TIMEOUT=15s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg := config.New()
	require.NotNil(t, cfg)
	assert.Same(t, cfg, config.New())

	testCases := []struct {
		Desc     string
		Got      any
		Expected any
	}{
		{Desc: "string from file", Got: cfg.GetString("TEST_HABITS_NAME"), Expected: "habits"},
		{Desc: "string default", Got: cfg.GetStringOr("TEST_HABITS_MISSING", "fallback"), Expected: "fallback"},
		{Desc: "int", Got: cfg.GetInt("TEST_HABITS_LOOKBACK", 365), Expected: 120},
		{Desc: "broken int", Got: cfg.GetInt("TEST_HABITS_BROKEN_INT", 7), Expected: 7},
		{Desc: "missing int", Got: cfg.GetInt("TEST_HABITS_MISSING", 365), Expected: 365},
		{Desc: "bool", Got: cfg.GetBool("TEST_HABITS_REMINDER", false), Expected: true},
		{Desc: "duration", Got: cfg.GetDuration("TEST_HABITS_TIMEOUT", time.Second), Expected: 15 * time.Second},
		{Desc: "missing duration", Got: cfg.GetDuration("TEST_HABITS_MISSING", time.Second), Expected: time.Second},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			assert.Equal(t, tc.Expected, tc.Got)
		})
	}
}
