package loader

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

// Prefix is the prefix of every tupshar environment variable.
const Prefix = "TUPSHAR_"

// EnvLoader loads configuration from environment variables.
//
// Mapped variables go to their configured path. Any other prefixed variable
// of the form PREFIX_SECTION_KEY goes to section.key, where KEY keeps its
// underscores in lower case: TUPSHAR_EDITOR_DEFAULT_VIEW sets
// editor.default_view.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
	environ func() []string
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates a loader with the default mappings.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(),
		environ: os.Environ,
		lookup:  os.LookupEnv,
	}
}

func defaultEnvMapping() map[string]string {
	return map[string]string{
		"TUPSHAR_LOG_LEVEL": "logging.level",
		"TUPSHAR_LOG_FILE":  "logging.file",
		"TUPSHAR_SIGN_LIST": "glyphs.sign_list",
		"TUPSHAR_PROJECT":   "editor.project",
		"TUPSHAR_STRICT":    "editor.strict",
	}
}

// AddMapping maps an environment variable to a configuration path.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Load reads the environment. Empty values are kept as empty strings.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for env, path := range l.mapping {
		if val, ok := l.lookup(env); ok {
			setByPath(config, path, parseValue(val))
		}
	}

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		if _, mapped := l.mapping[name]; mapped {
			continue
		}
		if path, ok := l.envToPath(name); ok {
			setByPath(config, path, parseValue(value))
		}
	}

	return config, nil
}

// envToPath converts TUPSHAR_EDITOR_DEFAULT_VIEW to editor.default_view.
// Names without a key part are ignored.
func (l *EnvLoader) envToPath(env string) (string, bool) {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return "", false
	}
	return section + "." + key, true
}

// parseValue converts booleans, integers, floats and JSON literals; anything
// else stays a string.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return v
		}
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
