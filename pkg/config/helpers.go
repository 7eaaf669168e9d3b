package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/glorpus-work/vibkit/pkg/errors"
)

// Keys lists the settings reachable through SetValue and GetValue, in display order.
var Keys = []string{
	"probe_timeout",
	"command_timeout",
	"transport",
	"insecure",
	"proxy",
	"log_level",
	"log_file",
	"output_format",
	"hooks.pre_apply",
	"hooks.post_apply",
}

// SetValue sets a configuration value by key. The caller validates the result.
func (c *Config) SetValue(key, value string) error {
	s := &c.Settings
	switch key {
	case "probe_timeout":
		return setDuration(&s.ProbeTimeout, key, value)
	case "command_timeout":
		return setDuration(&s.CommandTimeout, key, value)
	case "transport":
		s.Transport = value
	case "insecure":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %s", key, value)
		}
		s.Insecure = boolVal
	case "proxy":
		s.Proxy = value
	case "log_level":
		s.LogLevel = value
	case "log_file":
		s.LogFile = value
	case "output_format":
		s.OutputFormat = value
	case "hooks.pre_apply":
		s.Hooks.PreApply = value
	case "hooks.post_apply":
		s.Hooks.PostApply = value
	default:
		return errors.ErrUnknownConfigKeyWithName(key)
	}
	return nil
}

func setDuration(dst *time.Duration, key, value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid duration value for %s: %s", key, value)
	}
	*dst = d
	return nil
}

// GetValue returns the value of a setting as a string.
func (c *Config) GetValue(key string) (string, error) {
	s := c.Settings
	switch key {
	case "probe_timeout":
		return s.ProbeTimeout.String(), nil
	case "command_timeout":
		return s.CommandTimeout.String(), nil
	case "transport":
		return s.Transport, nil
	case "insecure":
		return strconv.FormatBool(s.Insecure), nil
	case "proxy":
		return s.Proxy, nil
	case "log_level":
		return s.LogLevel, nil
	case "log_file":
		return s.LogFile, nil
	case "output_format":
		return s.OutputFormat, nil
	case "hooks.pre_apply":
		return s.Hooks.PreApply, nil
	case "hooks.post_apply":
		return s.Hooks.PostApply, nil
	default:
		return "", errors.ErrUnknownConfigKeyWithName(key)
	}
}

// ToMap returns every setting keyed by its name. This is useful for displaying the configuration.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string, len(Keys))
	for _, key := range Keys {
		value, _ := c.GetValue(key)
		result[key] = value
	}
	return result
}
