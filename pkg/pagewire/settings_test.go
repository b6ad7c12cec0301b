package pagewire

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmercer/pagewire/pkg/pagewire/config"
)

func TestParseSettingsDefaults(t *testing.T) {
	st, err := parseSettings(config.New(nil))
	require.NoError(t, err)

	assert.True(t, st.EnableMobileNav)
	assert.True(t, st.EnableSmoothScroll)
	assert.True(t, st.EnableContactForm)
	assert.True(t, st.EnableCarousel)
	assert.Equal(t, ".nav-toggle", st.NavToggleSelector)
	assert.Equal(t, "#contact-form", st.ContactFormSelector)
	assert.Equal(t, DefaultDraftKey, st.ContactDraftKey)
	assert.Equal(t, -1, st.SmoothScrollOffset)
	assert.Equal(t, 400*time.Millisecond, st.FormDebounce)
	assert.Equal(t, 6*time.Second, st.CarouselInterval)
}

func TestParseSettingsOverrides(t *testing.T) {
	st, err := parseSettings(config.New(map[string]any{
		"enableCarousel":     false,
		"smoothScrollOffset": 48,
		"formDebounceMs":     250,
		"carouselIntervalMs": 3000,
		"contactDraftKey":    "k",
		"logger.level":       "debug",
	}))
	require.NoError(t, err)

	assert.False(t, st.EnableCarousel)
	assert.Equal(t, 48, st.SmoothScrollOffset)
	assert.Equal(t, 250*time.Millisecond, st.FormDebounce)
	assert.Equal(t, 3*time.Second, st.CarouselInterval)
	assert.Equal(t, "k", st.ContactDraftKey)
	assert.Equal(t, "debug", st.LoggerLevel)
}

func TestParseSettingsUnknownKeysIgnored(t *testing.T) {
	_, err := parseSettings(config.New(map[string]any{
		"someFutureKnob": 7,
	}))
	assert.NoError(t, err)
}

func TestParseSettingsRejectsWrongTypes(t *testing.T) {
	cases := map[string]map[string]any{
		"bool as string":    {"enableMobileNav": "true"},
		"empty selector":    {"contactFormSelector": ""},
		"selector as int":   {"mobileNavOpenClass": 3},
		"offset as string":  {"smoothScrollOffset": "16px"},
		"zero debounce":     {"formDebounceMs": 0},
		"negative interval": {"carouselIntervalMs": -5},
		"level as bool":     {"logger.level": true},
		"unknown level":     {"logger.level": "chatty"},
		"message as number": {"messages.formSuccess": 1},
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseSettings(config.New(raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)

			var cfgErr *ConfigError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}

func TestParseSettingsSilentLevel(t *testing.T) {
	st, err := parseSettings(config.New(map[string]any{"logger.level": "silent"}))
	require.NoError(t, err)
	assert.Equal(t, "silent", st.LoggerLevel)
}
