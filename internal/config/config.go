package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jask/escaperoom/internal/game"
	"github.com/jask/escaperoom/internal/logger"
)

// EnvConfigPath names the env var that points at a config file.
const EnvConfigPath = "ESCAPEROOM_CONFIG"

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// GameConfig holds rule settings.
type GameConfig struct {
	// ResetPolicy is "forget" or "keep"; see game.ResetPolicy.
	ResetPolicy string `mapstructure:"reset_policy"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ShakeDuration       time.Duration `mapstructure:"shake_duration"`
	CelebrationDuration time.Duration `mapstructure:"celebration_duration"`
	Bell                bool          `mapstructure:"bell"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "escaperoom")
}

// DefaultPath is where Load looks when neither a path nor EnvConfigPath is given.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "escaperoom", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", filepath.Join(dataDir(), "escaperoom.db"))
	v.SetDefault("game.reset_policy", string(game.ResetForget))
	v.SetDefault("ui.shake_duration", 500*time.Millisecond)
	v.SetDefault("ui.celebration_duration", 3*time.Second)
	v.SetDefault("ui.bell", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dataDir(), "escaperoom.log"))
}

// Load reads configuration from file and env. An empty path falls back to
// EnvConfigPath, then DefaultPath. A missing file is not an error; env var
// overrides use prefix ESCAPEROOM_.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ESCAPEROOM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values Load cannot type-check.
func Validate(c Config) error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("config: database.path is required")
	}
	if _, err := game.ParseResetPolicy(c.Game.ResetPolicy); err != nil {
		return fmt.Errorf("config: game.reset_policy: %w", err)
	}
	if c.UI.ShakeDuration <= 0 {
		return fmt.Errorf("config: ui.shake_duration must be positive, got %s", c.UI.ShakeDuration)
	}
	if c.UI.CelebrationDuration <= 0 {
		return fmt.Errorf("config: ui.celebration_duration must be positive, got %s", c.UI.CelebrationDuration)
	}
	if _, ok := logger.ParseLogLevel(c.Log.Level); !ok {
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}
	return nil
}

// Save writes the provided config to path, creating the directory if needed.
// An empty path falls back to EnvConfigPath, then DefaultPath.
func Save(path string, cfg Config) (string, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("game.reset_policy", cfg.Game.ResetPolicy)
	v.Set("ui.shake_duration", cfg.UI.ShakeDuration.String())
	v.Set("ui.celebration_duration", cfg.UI.CelebrationDuration.String())
	v.Set("ui.bell", cfg.UI.Bell)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
