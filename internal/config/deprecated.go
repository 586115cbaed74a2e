package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Keys are compared case-sensitively here because viper folds case, which
// makes "minifyOnSaveToNewFIle" indistinguishable from its replacement.
const (
	keyNewFileTypo   = "minifyOnSaveToNewFIle"
	keyNewFile       = "minifyOnSaveToNewFile"
	keyConsoleLogs   = "removeJavascriptConsolelogs"
	keyTerserOptions = "terserMinifyOptions"
	keyTerserMangle  = "mangle"
)

func resolveDeprecated(path string, s *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	applyDeprecated(raw, s)
	return nil
}

func applyDeprecated(raw map[string]any, s *Settings) {
	if typo, ok := raw[keyNewFileTypo]; ok {
		s.MinifyOnSaveToNewFile = asBool(raw[keyNewFile]) || asBool(typo)
		if asBool(typo) {
			s.Deprecations = append(s.Deprecations, fmt.Sprintf(
				"You are using a deprecated setting %q, please replace it with: %q (mind the capital letter I)",
				keyNewFileTypo, keyNewFile))
		}
	}

	terser, hasTerser := raw[keyTerserOptions]
	if hasTerser {
		opts, isMap := terser.(map[string]any)
		if _, hasMangle := opts[keyTerserMangle]; !isMap || !hasMangle {
			s.JS = DefaultJSOptions()
		}
	}

	if consoleLogs, ok := raw[keyConsoleLogs]; ok {
		if !hasTerser {
			s.JS.Compress.DropConsole = asBool(consoleLogs)
		}
		if !asBool(consoleLogs) {
			return
		}
		s.Deprecations = append(s.Deprecations, fmt.Sprintf(
			"You are using a deprecated setting %q, please use %q to configure JavaScript minification",
			keyConsoleLogs, keyTerserOptions+".compress.drop_console"))
	}
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, _ := strconv.ParseBool(b)
		return parsed
	case int:
		return b != 0
	}
	return false
}
