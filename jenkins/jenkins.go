package jenkins

import (
	"encoding/base64"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Normalize trims surrounding whitespace from every field.
func (c RuntimeConfig) Normalize() RuntimeConfig {
	return RuntimeConfig{
		URL:      strings.TrimSpace(c.URL),
		Username: strings.TrimSpace(c.Username),
		APIToken: strings.TrimSpace(c.APIToken),
	}
}

// MissingFields returns the environment variable names of all empty fields.
func (c RuntimeConfig) MissingFields() []string {
	var missing []string
	if c.URL == "" {
		missing = append(missing, EnvURL)
	}
	if c.Username == "" {
		missing = append(missing, EnvUsername)
	}
	if c.APIToken == "" {
		missing = append(missing, EnvAPIToken)
	}
	return missing
}

// PlaceholderFields returns the environment variable names of all fields that
// still hold their template value.
func (c RuntimeConfig) PlaceholderFields() []string {
	var found []string
	if strings.TrimRight(c.URL, "/") == PlaceholderURL {
		found = append(found, EnvURL)
	}
	if c.Username == PlaceholderUsername {
		found = append(found, EnvUsername)
	}
	if c.APIToken == PlaceholderAPIToken {
		found = append(found, EnvAPIToken)
	}
	return found
}

// Environ returns base with the Jenkins variables set to the values of c,
// replacing any entries already present.
func (c RuntimeConfig) Environ(base []string) []string {
	return MergeEnv(base, map[string]string{
		EnvURL:      c.URL,
		EnvUsername: c.Username,
		EnvAPIToken: c.APIToken,
	})
}

// MergeEnv returns a copy of base in KEY=value form with every key in extra
// set to its value. Existing entries keep their position.
func MergeEnv(base []string, extra map[string]string) []string {
	env := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]bool, len(extra))
	for _, kv := range base {
		key := kv
		if i := strings.IndexByte(kv, '='); i >= 0 {
			key = kv[:i]
		}
		if v, ok := extra[key]; ok {
			if seen[key] {
				continue
			}
			seen[key] = true
			env = append(env, key+"="+v)
			continue
		}
		env = append(env, kv)
	}
	for _, key := range slices.Sorted(maps.Keys(extra)) {
		if !seen[key] {
			env = append(env, key+"="+extra[key])
		}
	}
	return env
}

// authHeader builds the value of the Authorization header for basic auth.
func (c RuntimeConfig) authHeader() string {
	authString := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%s", c.Username, c.APIToken)))
	return fmt.Sprintf("Basic %s", authString)
}
