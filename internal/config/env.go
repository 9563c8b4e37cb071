package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadEnvFile reads KEY=VALUE lines from path and sets every variable that is
// not already present in the environment. It returns the keys it set.
// A missing file yields no keys and no error.
func LoadEnvFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // best-effort close on read-only file

	var applied []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return applied, fmt.Errorf("setting %s from %s: %w", key, path, err)
		}
		applied = append(applied, key)
	}
	if err := scanner.Err(); err != nil {
		return applied, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return applied, nil
}

// EnvFiles lists the env files consulted by LoadEnvFiles, highest priority first:
// ./.env.local, ./.env, then Dir()/env.
func EnvFiles() []string {
	files := []string{".env.local", ".env"}
	if dir := Dir(); dir != "" {
		files = append(files, filepath.Join(dir, "env"))
	}
	return files
}

// LoadEnvFiles loads every file from EnvFiles. The first file to define a
// variable wins; variables already in the environment are never replaced.
// Unreadable files are skipped and reported in the returned error slice.
func LoadEnvFiles() (applied []string, errs []error) {
	for _, path := range EnvFiles() {
		keys, err := LoadEnvFile(path)
		applied = append(applied, keys...)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return applied, errs
}

// parseEnvLine extracts KEY=VALUE from a line. An optional "export " prefix
// and matching single or double quotes around the value are stripped.
func parseEnvLine(line string) (key, value string, ok bool) {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}

	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	value = strings.TrimSpace(value)
	if key == "" {
		return "", "", false
	}

	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			value = value[1 : len(value)-1]
		}
	}
	return key, value, true
}
