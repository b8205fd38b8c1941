package cmd

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/bubblehearth/blizzard"
	"github.com/s0up4200/bubblehearth/config"
	"github.com/s0up4200/bubblehearth/filter"
)

func withTestState(t *testing.T) {
	t.Helper()

	prevCfg, prevClient, prevFilters, prevLogger := cfg, bnetClient, filters, logger
	t.Cleanup(func() {
		cfg, bnetClient, filters, logger = prevCfg, prevClient, prevFilters, prevLogger
		regionFlag, localeFlag, logLevelFlag, jsonOutput = "", "", "", false
	})

	cfg = &config.Config{
		BattleNet: config.BattleNetConfig{ClientID: "id", ClientSecret: "secret", Region: "us"},
		Output:    config.OutputConfig{Format: "table"},
		Logging:   config.LoggingConfig{Level: "info", Format: "console"},
	}
	logger = zerolog.Nop()

	var err error
	bnetClient, err = newBattleNetClient(blizzard.RegionUS)
	require.NoError(t, err)
	filters = filter.NewManager()
}

func TestParseRegions(t *testing.T) {
	withTestState(t)

	regions, err := parseRegions(nil)
	require.NoError(t, err)
	assert.Equal(t, []blizzard.Region{blizzard.RegionUS}, regions)

	regions, err = parseRegions([]string{"EU", "us", "eu"})
	require.NoError(t, err)
	assert.Equal(t, []blizzard.Region{blizzard.RegionEU, blizzard.RegionUS}, regions)

	_, err = parseRegions([]string{"moon"})
	assert.ErrorIs(t, err, blizzard.ErrInvalidConfig)
}

func TestApplyFlagOverrides(t *testing.T) {
	withTestState(t)

	require.NoError(t, rootCmd.PersistentFlags().Set("region", "kr"))
	require.NoError(t, rootCmd.PersistentFlags().Set("locale", "ko-kr"))
	require.NoError(t, rootCmd.PersistentFlags().Set("json", "true"))
	t.Cleanup(func() {
		for _, name := range []string{"region", "locale", "json"} {
			rootCmd.PersistentFlags().Lookup(name).Changed = false
		}
	})

	require.NoError(t, applyFlagOverrides(rootCmd))
	assert.Equal(t, "kr", cfg.BattleNet.Region)
	assert.Equal(t, "ko-kr", cfg.BattleNet.Locale)
	assert.True(t, wantJSON())

	client, err := newBattleNetClient(blizzard.RegionKR)
	require.NoError(t, err)
	assert.Equal(t, blizzard.LocaleKorean, client.Locale())
}

func TestApplyFlagOverrides_InvalidRegion(t *testing.T) {
	withTestState(t)

	require.NoError(t, rootCmd.PersistentFlags().Set("region", "atlantis"))
	t.Cleanup(func() { rootCmd.PersistentFlags().Lookup("region").Changed = false })

	err := applyFlagOverrides(rootCmd)
	assert.ErrorIs(t, err, blizzard.ErrInvalidConfig)
	assert.Equal(t, "us", cfg.BattleNet.Region)
}

func TestApplyFlagOverrides_LogLevel(t *testing.T) {
	withTestState(t)
	t.Cleanup(func() { rootCmd.PersistentFlags().Lookup("log-level").Changed = false })

	require.NoError(t, rootCmd.PersistentFlags().Set("log-level", "verbose"))
	err := applyFlagOverrides(rootCmd)
	assert.ErrorContains(t, err, "invalid logging level: verbose")
	assert.Equal(t, "info", cfg.Logging.Level)

	require.NoError(t, rootCmd.PersistentFlags().Set("log-level", "debug"))
	require.NoError(t, applyFlagOverrides(rootCmd))
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestResolveFilter(t *testing.T) {
	withTestState(t)
	require.NoError(t, filters.RegisterFilter("cheap", "ManaCost <= 2"))

	f, err := resolveFilter("")
	require.NoError(t, err)
	assert.Nil(t, f)

	f, err = resolveFilter("cheap")
	require.NoError(t, err)
	assert.Equal(t, "ManaCost <= 2", f.Expression())

	f, err = resolveFilter("Attack > 3")
	require.NoError(t, err)
	assert.Equal(t, "Attack > 3", f.Expression())

	_, err = resolveFilter("Attack >")
	assert.ErrorContains(t, err, "invalid filter expression")
}

func TestFormatGold(t *testing.T) {
	assert.Equal(t, "0g 0s 5c", formatGold(5))
	assert.Equal(t, "12g 34s 56c", formatGold(123456))
}

func TestSetupLogger(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	setupLogger(config.LoggingConfig{Level: "warn", Format: "json"})
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	setupLogger(config.LoggingConfig{Level: "bogus", Format: "console"})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
