package main

import (
	"testing"

	"github.com/riskibarqy/touchline/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps(nil)
	require.NoError(t, err)
	require.Equal(t, 1, steps)

	steps, err = parseSteps([]string{" 3 "})
	require.NoError(t, err)
	require.Equal(t, 3, steps)

	_, err = parseSteps([]string{"0"})
	require.Error(t, err)
	_, err = parseSteps([]string{"two"})
	require.Error(t, err)
}

func TestParseVersionAndTarget(t *testing.T) {
	version, err := parseVersion("20261001090000")
	require.NoError(t, err)
	require.Equal(t, 20261001090000, version)

	_, err = parseVersion("-1")
	require.Error(t, err)

	target, err := parseTarget("20261001090000")
	require.NoError(t, err)
	require.Equal(t, uint(20261001090000), target)
}

func TestNormalizeDBURL(t *testing.T) {
	require.Equal(t, "postgres://db/touchline", normalizeDBURL("postgres://db/touchline", false))
	require.Equal(t, "postgres://db/touchline?disable_prepared_binary_result=yes", normalizeDBURL("postgres://db/touchline", true))
	require.Equal(t, "postgres://db/touchline?sslmode=disable&disable_prepared_binary_result=yes", normalizeDBURL("postgres://db/touchline?sslmode=disable", true))
	require.Equal(t, "postgres://db/touchline?disable_prepared_binary_result=no", normalizeDBURL("postgres://db/touchline?disable_prepared_binary_result=no", true))
}

func TestRun_RequiresCommand(t *testing.T) {
	require.ErrorIs(t, run(nil, logging.NewNop()), errUsage)
}

func TestRun_RequiresDBURL(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")
	t.Setenv("DB_URL", "")

	err := run([]string{"up"}, logging.NewNop())
	require.EqualError(t, err, "DB_URL is required")
}
