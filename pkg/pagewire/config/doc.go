/*
Package config provides type-safe configuration extraction from map[string]any.

# Overview

config wraps a map[string]any and provides typed accessor methods that handle
missing keys and type mismatches gracefully by returning default values.
Session options arrive as loosely-typed YAML/JSON structures; the accessors
replace verbose type assertions and nil checks at every read site.

# Basic Usage

Create a Config from any map and extract values with defaults:

	cfg := config.New(map[string]any{
	    "enableMobileNav":   true,
	    "smoothScrollOffset": 24,
	    "formDebounceMs":    400,
	})

	nav := cfg.Bool("enableMobileNav", true)              // true
	offset := cfg.Int("smoothScrollOffset", -1)           // 24
	debounce := cfg.Duration("formDebounceMs", 400*time.Millisecond)

Dotted keys descend into nested maps:

	level := cfg.String("logger.level", "info")
	success := cfg.String("messages.formSuccess", "Thanks!")

# Type Coercion

Duration handles multiple input types:
  - string: parsed with time.ParseDuration ("400ms", "2s")
  - int/float64: interpreted as milliseconds
  - time.Duration: used directly

Numeric types handle reasonable conversions:
  - int from float64 (only without a fractional part)
  - float64 from int

All methods return the default value if the key is missing or the value
cannot be converted to the requested type.

# Merging

Merge overlays one Config on another, caller keys winning:

	effective := defaults.Merge(userConfig)

# File Loading

Load configuration from YAML or JSON files:

	cfg, err := config.FromFile("pagewire.yaml")

	// Or load from bytes
	cfg, err = config.FromYAML(yamlBytes)
	cfg, err = config.FromJSON(jsonBytes)

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
