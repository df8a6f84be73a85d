// Package config provides configuration management for the backlink generator.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"blog-backlinks/pkg/httpclient"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingBaseURL  = errors.New("base_url is required")
	ErrInvalidBaseURL  = errors.New("base_url must be an absolute http(s) URL")
	ErrMissingOutput   = errors.New("output is required")
	ErrInvalidMaxCount = errors.New("max_count must be at least 1")
	ErrInvalidTimeout  = errors.New("timeout must be positive")
	ErrInvalidWorkers  = errors.New("title_workers must be at least 1")
)

// EnvPrefix prefixes every environment variable the generator reads.
const EnvPrefix = "BACKLINKS_"

// DefaultArticlePaths are the path hints of the target blog's post URLs.
var DefaultArticlePaths = []string{"/blog/", "/yazi/", "/yazilar/", "/post/", "/posts/", "/articles/", "/notlar/"}

// Config represents the complete generator configuration.
type Config struct {
	BaseURL      string        `yaml:"base_url"`
	Output       string        `yaml:"output"`
	MaxCount     int           `yaml:"max_count"`
	Timeout      time.Duration `yaml:"timeout"`
	FetchTitles  bool          `yaml:"fetch_titles"`
	TitleWorkers int           `yaml:"title_workers"`
	UserAgent    string        `yaml:"user_agent"`
	ClientType   string        `yaml:"client_type"`
	SiteName     string        `yaml:"site_name"`
	Generator    string        `yaml:"generator"`
	ArticlePaths []string      `yaml:"article_paths"`
	SitemapPaths []string      `yaml:"sitemap_paths"`
	FeedPaths    []string      `yaml:"feed_paths"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BaseURL:      "https://cengizyilmaz.net",
		Output:       "README.md",
		MaxCount:     10,
		Timeout:      15 * time.Second,
		FetchTitles:  true,
		TitleWorkers: 1,
		ClientType:   string(httpclient.BrowserClient),
		Generator:    "blog-backlinks",
		ArticlePaths: append([]string(nil), DefaultArticlePaths...),
	}
}

// Load builds the configuration from, in increasing precedence: defaults,
// the YAML file named by -config, the env file named by -env-file plus the
// process environment, and finally explicitly set flags.
func Load(args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("blog-backlinks", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a YAML config file")
	envFile := fs.String("env-file", ".env", "Path to an env file (ignored when missing)")
	flagged := *cfg
	articlePaths := strings.Join(flagged.ArticlePaths, ",")
	fs.StringVar(&flagged.BaseURL, "base-url", flagged.BaseURL, "Blog base URL")
	fs.StringVar(&flagged.Output, "output", flagged.Output, "Markdown file to regenerate")
	fs.IntVar(&flagged.MaxCount, "max", flagged.MaxCount, "Maximum number of links")
	fs.DurationVar(&flagged.Timeout, "timeout", flagged.Timeout, "Timeout for each HTTP request")
	fs.BoolVar(&flagged.FetchTitles, "fetch-titles", flagged.FetchTitles, "Fetch article pages for missing titles")
	fs.IntVar(&flagged.TitleWorkers, "title-workers", flagged.TitleWorkers, "Concurrent page title lookups")
	fs.StringVar(&flagged.ClientType, "client-type", flagged.ClientType, "HTTP header profile: browser or cloudflare")
	fs.StringVar(&articlePaths, "article-paths", articlePaths, "Comma separated article path hints")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			return nil, err
		}
	}

	if err := LoadEnvFile(*envFile); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(lookupEnv); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "base-url":
			cfg.BaseURL = flagged.BaseURL
		case "output":
			cfg.Output = flagged.Output
		case "max":
			cfg.MaxCount = flagged.MaxCount
		case "timeout":
			cfg.Timeout = flagged.Timeout
		case "fetch-titles":
			cfg.FetchTitles = flagged.FetchTitles
		case "title-workers":
			cfg.TitleWorkers = flagged.TitleWorkers
		case "client-type":
			cfg.ClientType = flagged.ClientType
		case "article-paths":
			cfg.ArticlePaths = splitList(articlePaths)
		}
	})

	cfg.fillDerived()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadFile overlays the YAML file at path onto c. Keys absent from the file
// keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	return nil
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays BACKLINKS_* variables onto c.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) error {
	if lookupEnv == nil {
		return nil
	}
	get := func(name string) (string, bool) {
		v, ok := lookupEnv(EnvPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	if v, ok := get("BASE_URL"); ok {
		c.BaseURL = v
	}
	if v, ok := get("OUTPUT"); ok {
		c.Output = v
	}
	if v, ok := get("MAX_COUNT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sMAX_COUNT: %w", EnvPrefix, err)
		}
		c.MaxCount = n
	}
	if v, ok := get("TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", EnvPrefix, err)
		}
		c.Timeout = d
	}
	if v, ok := get("FETCH_TITLES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sFETCH_TITLES: %w", EnvPrefix, err)
		}
		c.FetchTitles = b
	}
	if v, ok := get("TITLE_WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sTITLE_WORKERS: %w", EnvPrefix, err)
		}
		c.TitleWorkers = n
	}
	if v, ok := get("USER_AGENT"); ok {
		c.UserAgent = v
	}
	if v, ok := get("CLIENT_TYPE"); ok {
		c.ClientType = v
	}
	if v, ok := get("SITE_NAME"); ok {
		c.SiteName = v
	}
	if v, ok := get("ARTICLE_PATHS"); ok {
		c.ArticlePaths = splitList(v)
	}
	if v, ok := get("SITEMAP_PATHS"); ok {
		c.SitemapPaths = splitList(v)
	}
	if v, ok := get("FEED_PATHS"); ok {
		c.FeedPaths = splitList(v)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}

	parsed, err := url.Parse(c.BaseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
	}

	if c.Output == "" {
		return ErrMissingOutput
	}

	if c.MaxCount < 1 {
		return ErrInvalidMaxCount
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.TitleWorkers < 1 {
		return ErrInvalidWorkers
	}

	if _, err := httpclient.ParseClientType(c.ClientType); err != nil {
		return err
	}

	return nil
}

// fillDerived normalises the base URL and names the site after its host
// when no site name was configured.
func (c *Config) fillDerived() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.SiteName != "" {
		return
	}
	if parsed, err := url.Parse(c.BaseURL); err == nil && parsed.Host != "" {
		c.SiteName = strings.TrimPrefix(parsed.Hostname(), "www.")
	}
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{BaseURL: %s, Output: %s, MaxCount: %d, Timeout: %s, FetchTitles: %t}",
		c.BaseURL,
		c.Output,
		c.MaxCount,
		c.Timeout,
		c.FetchTitles,
	)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
