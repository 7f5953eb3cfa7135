// Package config loads lookupbot settings from flags, environment variables
// and an optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/B3RT1337/lookup-bot/internal/apperr"
	"github.com/B3RT1337/lookup-bot/internal/services/crtsh"
	"github.com/B3RT1337/lookup-bot/internal/services/hackertarget"
	"github.com/B3RT1337/lookup-bot/internal/services/ipinfo"
)

// ErrUnknownKey is returned for a key that is not a recognised setting.
var ErrUnknownKey = errors.New("unknown config key")

const (
	DefaultOutput      = "text"
	DefaultLogFormat   = "text"
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 3000
	DefaultTimeout     = 30 * time.Second
	DefaultConcurrency = 4

	SourceHackerTarget = "hackertarget"
	SourceCrtsh        = "crtsh"
)

// Config holds the fully-resolved settings.
type Config struct {
	// ConfigFile is the YAML file consulted, whether or not it exists.
	ConfigFile string `mapstructure:"-" yaml:"-"`

	Verbose   bool   `mapstructure:"verbose" yaml:"verbose"`
	Output    string `mapstructure:"output" yaml:"output"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`

	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`

	Proxy     string        `mapstructure:"proxy" yaml:"proxy"`
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// DNSServer, when set, is queried directly instead of the system resolver.
	DNSServer string `mapstructure:"dns_server" yaml:"dns_server"`

	// SubdomainSource selects the getsub backend: hackertarget or crtsh.
	SubdomainSource string `mapstructure:"subdomain_source" yaml:"subdomain_source"`
	SubdomainURL    string `mapstructure:"subdomain_url" yaml:"subdomain_url"`
	CrtshURL        string `mapstructure:"crtsh_url" yaml:"crtsh_url"`

	IPInfoURL   string `mapstructure:"ipinfo_url" yaml:"ipinfo_url"`
	IPInfoToken string `mapstructure:"ipinfo_token" yaml:"ipinfo_token"`

	// GeoIPDB, when set, replaces the HTTP geolocation service with a local
	// MaxMind City database.
	GeoIPDB string `mapstructure:"geoip_db" yaml:"geoip_db"`

	// Concurrency bounds how many commands `exec` runs at once from stdin.
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// Addr returns host:port for the HTTP listener.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks enum and range constraints that flag parsing cannot express.
func (c *Config) Validate() error {
	if !oneOf(c.Output, outputFormats) {
		return fmt.Errorf("%w: output format %q: must be \"text\" or \"json\"", apperr.ErrInvalidInput, c.Output)
	}
	if !oneOf(c.LogFormat, logFormats) {
		return fmt.Errorf("%w: log format %q: must be \"text\" or \"json\"", apperr.ErrInvalidInput, c.LogFormat)
	}
	if !oneOf(c.SubdomainSource, subdomainSources) {
		return fmt.Errorf("%w: subdomain source %q: must be \"hackertarget\" or \"crtsh\"", apperr.ErrInvalidInput, c.SubdomainSource)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port must be between 1 and 65535, got %d", apperr.ErrInvalidInput, c.Port)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", apperr.ErrInvalidInput, c.Timeout)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1, got %d", apperr.ErrInvalidInput, c.Concurrency)
	}
	return nil
}

// Values returns the settings keyed like the config file, with the geolocation
// token masked. Used by `config show`.
func (c *Config) Values() map[string]any {
	token := ""
	if c.IPInfoToken != "" {
		token = "********"
	}
	return map[string]any{
		"verbose":          c.Verbose,
		"output":           c.Output,
		"log_format":       c.LogFormat,
		"host":             c.Host,
		"port":             c.Port,
		"proxy":            c.Proxy,
		"user_agent":       c.UserAgent,
		"timeout":          c.Timeout.String(),
		"dns_server":       c.DNSServer,
		"subdomain_source": c.SubdomainSource,
		"subdomain_url":    c.SubdomainURL,
		"crtsh_url":        c.CrtshURL,
		"ipinfo_url":       c.IPInfoURL,
		"ipinfo_token":     token,
		"geoip_db":         c.GeoIPDB,
		"concurrency":      c.Concurrency,
	}
}

var (
	outputFormats    = []string{"text", "json"}
	logFormats       = []string{"text", "json"}
	subdomainSources = []string{SourceHackerTarget, SourceCrtsh}
)

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func defaults() map[string]any {
	return map[string]any{
		"verbose":          false,
		"output":           DefaultOutput,
		"log_format":       DefaultLogFormat,
		"host":             DefaultHost,
		"port":             DefaultPort,
		"proxy":            "",
		"user_agent":       "",
		"timeout":          DefaultTimeout,
		"dns_server":       "",
		"subdomain_source": SourceHackerTarget,
		"subdomain_url":    hackertarget.DefaultURL,
		"crtsh_url":        crtsh.DefaultURL,
		"ipinfo_url":       ipinfo.DefaultURL,
		"ipinfo_token":     "",
		"geoip_db":         "",
		"concurrency":      DefaultConcurrency,
	}
}
