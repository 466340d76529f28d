package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds startup configuration for the client.
type Config struct {
	Window    WindowConfig
	Splash    SplashConfig
	Render    RenderConfig
	Resources ResourcesConfig
	Debug     DebugConfig
}

// WindowConfig holds initial window settings.
type WindowConfig struct {
	Width  int
	Height int
	Title  string
}

// SplashConfig holds loading overlay settings.
type SplashConfig struct {
	HideAppearance bool          `mapstructure:"hide_appearance"`
	MinDuration    time.Duration `mapstructure:"min_duration"`
	SkipLabel      string        `mapstructure:"skip_label"`
}

// RenderConfig holds frame pacing settings.
type RenderConfig struct {
	FPSLimit int `mapstructure:"fps_limit"`
}

// ResourcesConfig lists remote resources fetched while the overlay is shown.
type ResourcesConfig struct {
	Remote   []string
	CacheDir string        `mapstructure:"cache_dir"`
	Timeout  time.Duration
}

// DebugConfig toggles developer overlays.
type DebugConfig struct {
	Profiling bool
}

// EnvPrefix is the prefix for environment overrides, e.g. MINISPLASH_SPLASH_HIDE_APPEARANCE.
const EnvPrefix = "MINISPLASH"

// New returns a viper instance with defaults, env overrides and the config file
// location set. path may be empty to use the per-user default location.
func New(path string) *viper.Viper {
	v := viper.New()

	v.SetDefault("window.width", 900)
	v.SetDefault("window.height", 600)
	v.SetDefault("window.title", "mini-splash")
	v.SetDefault("splash.hide_appearance", false)
	v.SetDefault("splash.min_duration", 1500*time.Millisecond)
	v.SetDefault("splash.skip_label", "Proceed")
	v.SetDefault("render.fps_limit", 120)
	v.SetDefault("resources.remote", []string{})
	v.SetDefault("resources.cache_dir", filepath.Join(os.TempDir(), "mini-splash", "cache"))
	v.SetDefault("resources.timeout", 10*time.Second)
	v.SetDefault("debug.profiling", false)

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "mini-splash"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Read loads the config file if present and decodes v into a Config.
// A missing file is not an error; a malformed one is.
func Read(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Load is New followed by Read.
func Load(path string) (Config, *viper.Viper, error) {
	v := New(path)
	c, err := Read(v)
	if err != nil {
		return Config{}, nil, err
	}
	return c, v, nil
}

// Apply pushes the runtime-mutable parts of c into the process-wide settings.
func Apply(c Config) {
	SetHidingAppearance(c.Splash.HideAppearance)
	SetFPSLimit(c.Render.FPSLimit)
}

// Watch re-reads the config file on every change and calls fn with the result.
// Decoding failures are passed to fn as well so callers can log them.
func Watch(v *viper.Viper, fn func(Config, error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		var c Config
		if err := v.Unmarshal(&c); err != nil {
			fn(Config{}, fmt.Errorf("reload %s: %w", e.Name, err))
			return
		}
		fn(c, nil)
	})
	v.WatchConfig()
}
