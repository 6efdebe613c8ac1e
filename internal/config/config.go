package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/clitemplate/go-cli-template/internal/branding"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognised configuration keys. Each is also read from <PREFIX>_<KEY>.
const (
	KeyGreeting = "greeting"
	KeyJSON     = "json"
	KeyLogLevel = "log_level"
)

// DefaultLogLevel keeps diagnostics off stderr on successful runs.
const DefaultLogLevel = "warn"

// Keys returns the recognised keys in display order.
func Keys() []string {
	return []string{KeyGreeting, KeyJSON, KeyLogLevel}
}

// Dir returns the config directory. GO_CLI_TEMPLATE_HOME overrides the
// default of ~/.go-cli-template.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Store holds the layered settings for one command tree.
type Store struct {
	v    *viper.Viper
	path string
}

// New returns a Store reading from FilePath and the environment. Call Load
// to read the file.
func New() *Store {
	path := FilePath()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()
	v.SetDefault(KeyJSON, false)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)

	return &Store{v: v, path: path}
}

// Path returns the config file this Store reads and writes.
func (s *Store) Path() string { return s.path }

// Load reads the config file. A missing file is not an error.
func (s *Store) Load() error {
	if err := s.v.ReadInConfig(); err != nil && !isNotExist(err) {
		return fmt.Errorf("reading config file %s: %w", s.path, err)
	}
	return nil
}

// BindFlag makes flag the highest-precedence source for key.
func (s *Store) BindFlag(key string, flag *pflag.Flag) error {
	if err := s.v.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("binding flag --%s to %q: %w", flag.Name, key, err)
	}
	return nil
}

// Greeting returns the effective greeting.
func (s *Store) Greeting() string { return s.v.GetString(KeyGreeting) }

// JSON reports whether JSON output is enabled.
func (s *Store) JSON() bool { return s.v.GetBool(KeyJSON) }

// LogLevel returns the effective log level name.
func (s *Store) LogLevel() string { return s.v.GetString(KeyLogLevel) }

// Get returns the effective value of a recognised key.
func (s *Store) Get(key string) (string, error) {
	key = strings.ToLower(key)
	if !isKnownKey(key) {
		return "", fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(Keys(), ", "))
	}
	return s.v.GetString(key), nil
}

// Set validates key=value against the schema and writes it to the config
// file. Only values already in the file are persisted alongside it; flags,
// environment variables and defaults are never written.
func (s *Store) Set(key, value string) error {
	key = strings.ToLower(key)
	typed, err := coerce(key, value)
	if err != nil {
		return err
	}

	file := viper.New()
	file.SetConfigFile(s.path)
	file.SetConfigType(fileType)
	if err := file.ReadInConfig(); err != nil && !isNotExist(err) {
		return fmt.Errorf("reading config file %s: %w", s.path, err)
	}
	file.Set(key, typed)

	result, err := validateValue(file.AllSettings())
	if err != nil {
		return err
	}
	if !result.Valid {
		return &InvalidError{Issues: result.Issues}
	}

	if err := EnsureDir(filepath.Dir(s.path)); err != nil {
		return err
	}
	if err := file.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// ValidateFile validates the config file on disk against the schema.
func (s *Store) ValidateFile() (*ValidationResult, error) {
	return ValidateFile(s.path)
}

// InvalidError reports schema violations for a config write.
type InvalidError struct {
	Issues []ValidationIssue
}

func (e *InvalidError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msgs = append(msgs, issue.String())
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// coerce converts the command-line string to the type the schema expects.
func coerce(key, value string) (any, error) {
	if key != KeyJSON {
		return value, nil
	}
	b, err := cast.ToBoolE(value)
	if err != nil {
		return nil, fmt.Errorf("parsing %q as boolean for %q: %w", value, key, err)
	}
	return b, nil
}

func isKnownKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
