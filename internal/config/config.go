package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileExtensions are the native-source suffixes checked when nothing
// else is configured.
const DefaultFileExtensions = ".c,.cpp,.h,.cxx,.hxx,.hpp,.cc,.ipp"

// Defaults for the external tools and the stats endpoint.
const (
	DefaultClangFormatBin = "clang-format"
	DefaultGitBin         = "git"
	DefaultStyle          = "file"
	DefaultMemcachedAddr  = "127.0.0.1:11211"
)

// ProjectFileName is the per-repository config file, looked up in the repo root.
const ProjectFileName = ".clang-format-changed.yaml"

// GlobalFileName is the per-user config file inside Dir().
const GlobalFileName = "config.yaml"

// Environment variables that override file configuration.
const (
	EnvClangFormatBin = "CLANG_FORMAT_BIN"
	EnvGitBin         = "GIT_BIN"
	EnvMemcachedAddr  = "MEMCACHED_ADDR"
)

// Config holds the settings shared by the devtools commands.
type Config struct {
	FileExtensions string   `yaml:"file_extensions"`
	Exclude        []string `yaml:"exclude"`
	ClangFormatBin string   `yaml:"clang_format_bin"`
	GitBin         string   `yaml:"git_bin"`
	Style          string   `yaml:"style"`
	MemcachedAddr  string   `yaml:"memcached_addr"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		FileExtensions: DefaultFileExtensions,
		ClangFormatBin: DefaultClangFormatBin,
		GitBin:         DefaultGitBin,
		Style:          DefaultStyle,
		MemcachedAddr:  DefaultMemcachedAddr,
	}
}

// Merge overlays non-empty fields of other onto c.
// Exclusions accumulate rather than replace.
func (c *Config) Merge(other Config) {
	if other.FileExtensions != "" {
		c.FileExtensions = other.FileExtensions
	}
	if other.ClangFormatBin != "" {
		c.ClangFormatBin = other.ClangFormatBin
	}
	if other.GitBin != "" {
		c.GitBin = other.GitBin
	}
	if other.Style != "" {
		c.Style = other.Style
	}
	if other.MemcachedAddr != "" {
		c.MemcachedAddr = other.MemcachedAddr
	}
	c.Exclude = append(c.Exclude, other.Exclude...)
}

// ApplyEnv overlays tool paths and the stats address from the environment.
func (c *Config) ApplyEnv() {
	c.Merge(Config{
		ClangFormatBin: os.Getenv(EnvClangFormatBin),
		GitBin:         os.Getenv(EnvGitBin),
		MemcachedAddr:  os.Getenv(EnvMemcachedAddr),
	})
}

// LoadFile reads a YAML config file. A missing file is not an error and
// reports found=false. Unknown keys are rejected so typos surface early.
func LoadFile(path string) (cfg Config, found bool, err error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, false, nil
		}
		return Config{}, false, fmt.Errorf("opening config file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // best-effort close on read-only file

	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, true, nil
		}
		return Config{}, true, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, true, nil
}

// Resolve layers defaults, the global file, the project file in repoRoot
// (skipped when repoRoot is empty) and the environment. It returns the files
// that contributed, in load order.
func Resolve(repoRoot string) (Config, []string, error) {
	cfg := Defaults()
	var sources []string

	paths := make([]string, 0, 2)
	if dir := Dir(); dir != "" {
		paths = append(paths, filepath.Join(dir, GlobalFileName))
	}
	if repoRoot != "" {
		paths = append(paths, filepath.Join(repoRoot, ProjectFileName))
	}

	for _, path := range paths {
		fileCfg, found, err := LoadFile(path)
		if err != nil {
			return Config{}, sources, err
		}
		if !found {
			continue
		}
		cfg.Merge(fileCfg)
		sources = append(sources, path)
	}

	cfg.ApplyEnv()
	return cfg, sources, nil
}
