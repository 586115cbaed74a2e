// Package config loads the user settings once at startup.
//
// Values are resolved in this order: built-in defaults, the YAML config file,
// MINIFYALL_* environment variables. Deprecated keys are mapped onto their
// replacements while loading, so callers only ever see the typed Settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"minifyall/internal/compactor"
	"minifyall/pkg/document"
)

// EnvPrefix is prepended to every environment override, e.g. MINIFYALL_MINIFYONSAVE.
const EnvPrefix = "MINIFYALL"

// Settings is the typed view of every configuration key.
type Settings struct {
	HexDisabled           bool             `mapstructure:"disableHexadecimalShortener"`
	DisableLanguages      DisableLanguages `mapstructure:"disableLanguages"`
	DisableMessages       bool             `mapstructure:"disableMessages"`
	MinifyOnSave          bool             `mapstructure:"minifyOnSave"`
	MinifyOnSaveToNewFile bool             `mapstructure:"minifyOnSaveToNewFile"`
	Prefixes              Prefixes         `mapstructure:"prefixOfNewMinifiedFiles"`
	OpenMinifiedDocument  bool             `mapstructure:"openMinifiedDocument"`
	CompatComments        bool             `mapstructure:"compatComments"`
	JS                    JSOptions        `mapstructure:"terserMinifyOptions"`

	Logging struct {
		Level string `mapstructure:"level" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	} `mapstructure:"logging"`
	History struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"history"`
	Watch struct {
		Debounce time.Duration `mapstructure:"debounce" validate:"gte=0"`
	} `mapstructure:"watch"`

	// Deprecations holds one message per deprecated key found while loading.
	Deprecations []string `mapstructure:"-"`
}

// DisableLanguages switches minification off per language.
type DisableLanguages struct {
	HTML  bool `mapstructure:"html"`
	Twig  bool `mapstructure:"twig"`
	CSS   bool `mapstructure:"css"`
	SCSS  bool `mapstructure:"scss"`
	Less  bool `mapstructure:"less"`
	Sass  bool `mapstructure:"sass"`
	JSON  bool `mapstructure:"json"`
	JSONC bool `mapstructure:"jsonc"`
	JS    bool `mapstructure:"js"`
	JSR   bool `mapstructure:"jsr"`
	PHP   bool `mapstructure:"php"`
	XML   bool `mapstructure:"xml"`
}

// Disabled reports whether lang is switched off.
func (d DisableLanguages) Disabled(lang document.Language) bool {
	switch lang {
	case document.HTML:
		return d.HTML
	case document.Twig:
		return d.Twig
	case document.CSS:
		return d.CSS
	case document.SCSS:
		return d.SCSS
	case document.Less:
		return d.Less
	case document.Sass:
		return d.Sass
	case document.JSON:
		return d.JSON
	case document.JSONC:
		return d.JSONC
	case document.JavaScript:
		return d.JS
	case document.JavaScriptReact:
		return d.JSR
	case document.PHP:
		return d.PHP
	case document.XML:
		return d.XML
	}
	return false
}

// Prefixes are inserted before the extension of new minified files.
type Prefixes struct {
	CSS  string `mapstructure:"css" validate:"required,excludesall=/\\"`
	HTML string `mapstructure:"html" validate:"required,excludesall=/\\"`
	JS   string `mapstructure:"js" validate:"required,excludesall=/\\"`
	JSON string `mapstructure:"json" validate:"required,excludesall=/\\"`
}

// For returns the prefix used for files of lang.
func (p Prefixes) For(lang document.Language) string {
	switch lang.Family() {
	case "css":
		return p.CSS
	case "js":
		return p.JS
	case "json":
		return p.JSON
	default:
		return p.HTML
	}
}

// JSOptions mirrors the terser option object accepted by the settings file.
type JSOptions struct {
	Mangle   bool `mapstructure:"mangle"`
	Compress struct {
		DropConsole    bool `mapstructure:"drop_console"`
		DeadCode       bool `mapstructure:"dead_code"`
		KeepFnames     bool `mapstructure:"keep_fnames"`
		KeepClassnames bool `mapstructure:"keep_classnames"`
	} `mapstructure:"compress"`
}

// DefaultJSOptions is used when the settings file gives an option object without "mangle".
func DefaultJSOptions() JSOptions {
	var o JSOptions
	o.Mangle = true
	o.Compress.DropConsole = true
	return o
}

// CommentMode maps CompatComments onto a compactor mode.
func (s *Settings) CommentMode() compactor.Mode {
	if s.CompatComments {
		return compactor.ModeCompat
	}
	return compactor.ModeStrict
}

// Dir returns the per-user configuration directory.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not get user config dir: %v. Using current directory.\n", err)
		base = "."
	}
	return filepath.Join(base, "minifyall")
}

// DefaultPath is where `minifyall init` writes the config file.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("disableHexadecimalShortener", false)
	for _, key := range []string{"html", "twig", "css", "scss", "less", "sass", "json", "jsonc", "js", "jsr", "php", "xml"} {
		v.SetDefault("disableLanguages."+key, false)
	}
	v.SetDefault("disableMessages", false)
	v.SetDefault("minifyOnSave", false)
	v.SetDefault("minifyOnSaveToNewFile", false)
	for _, key := range []string{"css", "html", "js", "json"} {
		v.SetDefault("prefixOfNewMinifiedFiles."+key, "-min")
	}
	v.SetDefault("openMinifiedDocument", true)
	v.SetDefault("compatComments", true)

	js := DefaultJSOptions()
	v.SetDefault("terserMinifyOptions.mangle", js.Mangle)
	v.SetDefault("terserMinifyOptions.compress.drop_console", js.Compress.DropConsole)
	v.SetDefault("terserMinifyOptions.compress.dead_code", js.Compress.DeadCode)
	v.SetDefault("terserMinifyOptions.compress.keep_fnames", js.Compress.KeepFnames)
	v.SetDefault("terserMinifyOptions.compress.keep_classnames", js.Compress.KeepClassnames)

	v.SetDefault("logging.level", "info")
	v.SetDefault("history.path", filepath.Join(Dir(), "history.json"))
	v.SetDefault("watch.debounce", 200*time.Millisecond)
}

// Loader reads Settings and can watch the config file for changes.
type Loader struct {
	v       *viper.Viper
	cfgFile string
}

// NewLoader prepares a Loader. An empty cfgFile searches the user config
// directory and the working directory for config.yaml.
func NewLoader(cfgFile string) *Loader {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("yaml")
	} else {
		v.AddConfigPath(Dir())
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v, cfgFile: cfgFile}
}

// Load is a shorthand for NewLoader(cfgFile).Load().
func Load(cfgFile string) (*Settings, error) {
	return NewLoader(cfgFile).Load()
}

// Defaults returns the built-in settings, ignoring config files and the environment.
func Defaults() *Settings {
	v := viper.New()
	setDefaults(v)
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		panic(fmt.Sprintf("config: decoding defaults: %v", err))
	}
	return &s
}

// ConfigFileUsed returns the file the settings came from, or "" for defaults only.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Load reads the config file (if any), resolves deprecated keys and validates.
func (l *Loader) Load() (*Settings, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case l.cfgFile == "" && errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config file %s: %w", l.v.ConfigFileUsed(), err)
		}
	}

	var s Settings
	if err := l.v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if used := l.v.ConfigFileUsed(); used != "" {
		if _, err := os.Stat(used); err == nil {
			if err := resolveDeprecated(used, &s); err != nil {
				return nil, err
			}
		}
	}

	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Watch reloads the settings whenever the config file changes.
// It is a no-op when no config file was found.
func (l *Loader) Watch(onChange func(*Settings, error)) {
	if l.v.ConfigFileUsed() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		onChange(l.Load())
	})
	l.v.WatchConfig()
}

var validate = validator.New()

// Validate checks field constraints on s.
func Validate(s *Settings) error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}
