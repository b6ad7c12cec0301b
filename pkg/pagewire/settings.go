package pagewire

import (
	"fmt"
	"time"

	"github.com/dmercer/pagewire/pkg/pagewire/config"
	"github.com/dmercer/pagewire/pkg/pagewire/observability"
)

// messages are the user-visible strings the widgets write into the page.
type messages struct {
	FormSuccess     string
	NameRequired    string
	EmailInvalid    string
	MessageTooShort string
}

// settings is the effective, validated configuration of a session.
type settings struct {
	EnableMobileNav      bool
	NavToggleSelector    string
	NavContainerSelector string
	NavOpenClass         string

	EnableSmoothScroll bool
	SmoothScrollOffset int

	EnableContactForm   bool
	ContactFormSelector string
	ContactDraftKey     string
	FormDebounce        time.Duration

	EnableCarousel   bool
	CarouselSelector string
	CarouselInterval time.Duration

	LoggerLevel string
	Messages    messages
}

// DefaultDraftKey is the storage key for persisted contact-form drafts.
const DefaultDraftKey = "aiagency_contact_draft_v1"

func defaultSettings() settings {
	return settings{
		EnableMobileNav:      true,
		NavToggleSelector:    ".nav-toggle",
		NavContainerSelector: ".site-nav",
		NavOpenClass:         "nav-open",

		EnableSmoothScroll: true,
		SmoothScrollOffset: -1,

		EnableContactForm:   true,
		ContactFormSelector: "#contact-form",
		ContactDraftKey:     DefaultDraftKey,
		FormDebounce:        400 * time.Millisecond,

		EnableCarousel:   true,
		CarouselSelector: ".carousel",
		CarouselInterval: 6 * time.Second,

		Messages: messages{
			FormSuccess:     "Thanks! Your message has been sent.",
			NameRequired:    "Please enter your name.",
			EmailInvalid:    "Please enter a valid email address.",
			MessageTooShort: "Please enter a message of at least 10 characters.",
		},
	}
}

// parseSettings validates recognized keys and overlays them on the
// defaults. Unrecognized keys are ignored; a recognized key with a
// wrong type or an unusable value is a *ConfigError. This takes the
// place of the host-language "reject non-object config" guard, which
// the type system already enforces.
func parseSettings(cfg config.Config) (settings, error) {
	st := defaultSettings()

	boolKeys := map[string]*bool{
		"enableMobileNav":    &st.EnableMobileNav,
		"enableSmoothScroll": &st.EnableSmoothScroll,
		"enableContactForm":  &st.EnableContactForm,
		"enableCarousel":     &st.EnableCarousel,
	}
	for key, dst := range boolKeys {
		if !cfg.Has(key) {
			continue
		}
		v, ok := cfg.Any(key, nil).(bool)
		if !ok {
			return settings{}, &ConfigError{Key: key, Value: cfg.Any(key, nil), Err: fmt.Errorf("%w: expected bool", ErrInvalidConfig)}
		}
		*dst = v
	}

	stringKeys := map[string]*string{
		"mobileNavToggleSelector":    &st.NavToggleSelector,
		"mobileNavContainerSelector": &st.NavContainerSelector,
		"mobileNavOpenClass":         &st.NavOpenClass,
		"contactFormSelector":        &st.ContactFormSelector,
		"contactDraftKey":            &st.ContactDraftKey,
		"carouselSelector":           &st.CarouselSelector,
	}
	for key, dst := range stringKeys {
		if !cfg.Has(key) {
			continue
		}
		v, ok := cfg.Any(key, nil).(string)
		if !ok || v == "" {
			return settings{}, &ConfigError{Key: key, Value: cfg.Any(key, nil), Err: fmt.Errorf("%w: expected non-empty string", ErrInvalidConfig)}
		}
		*dst = v
	}

	if cfg.Has("smoothScrollOffset") {
		const unset = -1 << 30
		v := cfg.Int("smoothScrollOffset", unset)
		if v == unset {
			return settings{}, &ConfigError{Key: "smoothScrollOffset", Value: cfg.Any("smoothScrollOffset", nil), Err: fmt.Errorf("%w: expected integer", ErrInvalidConfig)}
		}
		st.SmoothScrollOffset = v
	}

	durationKeys := map[string]*time.Duration{
		"formDebounceMs":     &st.FormDebounce,
		"carouselIntervalMs": &st.CarouselInterval,
	}
	for key, dst := range durationKeys {
		if !cfg.Has(key) {
			continue
		}
		v := cfg.Duration(key, -1)
		if v <= 0 {
			return settings{}, &ConfigError{Key: key, Value: cfg.Any(key, nil), Err: fmt.Errorf("%w: expected positive duration", ErrInvalidConfig)}
		}
		*dst = v
	}

	if cfg.Has("logger.level") {
		v, ok := cfg.Any("logger.level", nil).(string)
		if !ok {
			return settings{}, &ConfigError{Key: "logger.level", Value: cfg.Any("logger.level", nil), Err: fmt.Errorf("%w: expected string", ErrInvalidConfig)}
		}
		if _, _, err := observability.ParseLevel(v); err != nil {
			return settings{}, &ConfigError{Key: "logger.level", Value: v, Err: fmt.Errorf("%w: %v", ErrInvalidConfig, err)}
		}
		st.LoggerLevel = v
	}

	messageKeys := map[string]*string{
		"messages.formSuccess":     &st.Messages.FormSuccess,
		"messages.nameRequired":    &st.Messages.NameRequired,
		"messages.emailInvalid":    &st.Messages.EmailInvalid,
		"messages.messageTooShort": &st.Messages.MessageTooShort,
	}
	for key, dst := range messageKeys {
		if !cfg.Has(key) {
			continue
		}
		v, ok := cfg.Any(key, nil).(string)
		if !ok {
			return settings{}, &ConfigError{Key: key, Value: cfg.Any(key, nil), Err: fmt.Errorf("%w: expected string", ErrInvalidConfig)}
		}
		*dst = v
	}

	return st, nil
}
