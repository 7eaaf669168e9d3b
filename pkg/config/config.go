// Package config provides configuration management for vibkit.
// It loads the YAML settings file, validates it and resolves named host entries
// into the connection details the executors need.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glorpus-work/vibkit/pkg/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// General settings
	Settings Settings `yaml:"settings"`

	// Named hosts
	Hosts []*HostConfig `yaml:"hosts,omitempty" validate:"dive"`
}

// Settings represents general application settings.
type Settings struct {
	// Network settings
	ProbeTimeout   time.Duration `yaml:"probe_timeout" validate:"gte=0"`
	CommandTimeout time.Duration `yaml:"command_timeout" validate:"gte=0"`
	Proxy          string        `yaml:"proxy,omitempty" validate:"omitempty,url"`

	// Host session settings
	Transport string `yaml:"transport" validate:"oneof=vsphere ssh"`
	Insecure  bool   `yaml:"insecure"`

	// Output settings
	OutputFormat string `yaml:"output_format" validate:"oneof=text json"`
	LogLevel     string `yaml:"log_level" validate:"oneof=panic fatal error warn info debug trace"`
	LogFile      string `yaml:"log_file,omitempty"`

	// Policy scripts
	Hooks HookSettings `yaml:"hooks,omitempty"`
}

// HookSettings names the policy scripts run around an apply.
type HookSettings struct {
	PreApply  string `yaml:"pre_apply,omitempty" validate:"omitempty,endswith=.tengo"`
	PostApply string `yaml:"post_apply,omitempty" validate:"omitempty,endswith=.tengo"`
}

// HostConfig is a named ESXi host. Passwords are read from the environment variable
// named by PasswordEnv, never from the file. When VCenter is set the host is reached through
// that vCenter and Address is its inventory name.
type HostConfig struct {
	Name        string `yaml:"name" validate:"required"`
	Address     string `yaml:"address" validate:"required"`
	Transport   string `yaml:"transport,omitempty" validate:"omitempty,oneof=vsphere ssh"`
	Username    string `yaml:"username,omitempty"`
	PasswordEnv string `yaml:"password_env,omitempty"`
	SSHKeyPath  string `yaml:"ssh_key_path,omitempty"`
	Port        int    `yaml:"port,omitempty" validate:"gte=0,lte=65535"`
	VCenter     string `yaml:"vcenter,omitempty"`
	Datacenter  string `yaml:"datacenter,omitempty"`
	Datastore   string `yaml:"datastore,omitempty"`
	StagingDir  string `yaml:"staging_dir,omitempty"`
}

// Transports.
const (
	TransportVSphere = "vsphere"
	TransportSSH     = "ssh"
)

// Default configuration values.
const (
	// DefaultProbeTimeout bounds the reachability check of a remote depot.
	DefaultProbeTimeout = 10 * time.Second

	// DefaultCommandTimeout bounds a single host operation. Image profile installs are slow.
	DefaultCommandTimeout = 30 * time.Minute

	// DefaultPasswordEnv is read when a host entry names no password variable.
	DefaultPasswordEnv = "VIBKIT_PASSWORD"

	// DefaultUsername is the ESXi administrative account.
	DefaultUsername = "root"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2

	dirMode  = 0o755
	fileMode = 0o600
)

var validate = validator.New()

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			ProbeTimeout:   DefaultProbeTimeout,
			CommandTimeout: DefaultCommandTimeout,
			Transport:      TransportVSphere,
			OutputFormat:   "text",
			LogLevel:       "info",
		},
		Hosts: []*HostConfig{},
	}
}

// LoadConfig reads the configuration file at path. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	absPath, err := cleanPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(absPath)
	switch {
	case os.IsNotExist(err):
		return DefaultConfig(), nil
	case err != nil:
		return nil, errors.Wrapf(err, "cannot open config file %s", absPath)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader decodes, defaults and validates a configuration document.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	cfg := &Config{}
	if err := yaml.NewDecoder(reader).Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes the configuration to path through a temporary file renamed into place.
func (c *Config) SaveConfig(path string) error {
	absPath, err := cleanPath(path)
	if err != nil {
		return err
	}
	data, err := c.ToYAML()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(absPath), dirMode); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}
	tmp, err := os.CreateTemp(filepath.Dir(absPath), filepath.Base(absPath)+".*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}
	if err := os.Rename(tmp.Name(), absPath); err != nil {
		return errors.Wrap(errors.ErrConfigFileRename, err.Error())
	}
	return nil
}

func cleanPath(path string) (string, error) {
	if path == "" {
		return "", errors.ErrEmptyConfigPath
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}
	return absPath, nil
}

// ToYAML renders the configuration as YAML.
func (c *Config) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(YAMLIndent)
	if err := enc.Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	return buf.Bytes(), nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	for i, host := range c.Hosts {
		if host == nil {
			return fmt.Errorf("%w: hosts[%d] is empty", errors.ErrConfigValidation, i)
		}
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %s", errors.ErrConfigValidation, describe(err))
	}

	names := make(map[string]bool)
	for _, host := range c.Hosts {
		if names[host.Name] {
			return fmt.Errorf("%w: duplicate host name %q", errors.ErrConfigValidation, host.Name)
		}
		names[host.Name] = true
	}
	return nil
}

// describe turns validator failures into one line naming each offending field.
func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		msgs = append(msgs, fmt.Sprintf("%s: value %v does not satisfy %s", fe.Namespace(), fe.Value(), rule))
	}
	return strings.Join(msgs, "; ")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "vibkit", "config.yaml"), nil
}

// GetHost gets a host configuration by name.
func (c *Config) GetHost(name string) *HostConfig {
	for i, host := range c.Hosts {
		if host.Name == name {
			return c.Hosts[i]
		}
	}
	return nil
}

// ResolveHost returns the connection details for --host. The argument is a configured
// host name or a raw address; unset fields are filled from the settings.
func (c *Config) ResolveHost(nameOrAddress string) (HostConfig, error) {
	if strings.TrimSpace(nameOrAddress) == "" {
		return HostConfig{}, fmt.Errorf("%w: no host given", errors.ErrUnknownHost)
	}

	host := HostConfig{Name: nameOrAddress, Address: nameOrAddress}
	if configured := c.GetHost(nameOrAddress); configured != nil {
		host = *configured
	}
	if host.Transport == "" {
		host.Transport = c.Settings.Transport
	}
	if host.Username == "" {
		host.Username = DefaultUsername
	}
	if host.PasswordEnv == "" {
		host.PasswordEnv = DefaultPasswordEnv
	}
	return host, nil
}

// Password reads the host password from its environment variable.
func (h HostConfig) Password() string {
	return os.Getenv(h.PasswordEnv)
}

// HookVars exposes the entry to policy scripts. Credentials are left out.
func (h HostConfig) HookVars() map[string]interface{} {
	return map[string]interface{}{
		"address":    h.Address,
		"transport":  h.Transport,
		"vcenter":    h.VCenter,
		"datacenter": h.Datacenter,
		"datastore":  h.Datastore,
	}
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Settings.ProbeTimeout == 0 {
		c.Settings.ProbeTimeout = defaults.Settings.ProbeTimeout
	}
	if c.Settings.CommandTimeout == 0 {
		c.Settings.CommandTimeout = defaults.Settings.CommandTimeout
	}
	if c.Settings.Transport == "" {
		c.Settings.Transport = defaults.Settings.Transport
	}
	if c.Settings.OutputFormat == "" {
		c.Settings.OutputFormat = defaults.Settings.OutputFormat
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
	c.Settings.LogLevel = strings.ToLower(c.Settings.LogLevel)
	if c.Hosts == nil {
		c.Hosts = defaults.Hosts
	}
}
