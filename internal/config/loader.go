package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/B3RT1337/lookup-bot/internal/services/crtsh"
	"github.com/B3RT1337/lookup-bot/internal/services/hackertarget"
	"github.com/B3RT1337/lookup-bot/internal/services/ipinfo"
)

const envPrefix = "LOOKUPBOT"

// RegisterFlags adds every setting as a flag, plus --config.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file (default is <user config dir>/lookupbot/config.yaml)")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.StringP("output", "o", DefaultOutput, "output format: text or json")
	flags.String("log-format", DefaultLogFormat, "log format: text or json")
	flags.String("host", DefaultHost, "address the HTTP server binds to")
	flags.Int("port", DefaultPort, "port the HTTP server listens on (also read from PORT)")
	flags.String("proxy", "", "proxy URL for outbound requests (http, https, socks5)")
	flags.String("user-agent", "", "User-Agent header for outbound requests")
	flags.Duration("timeout", DefaultTimeout, "timeout for each outbound request")
	flags.String("dns-server", "", "name server (host[:port]) or DNS-over-HTTPS endpoint (https://...) used instead of the system resolver")
	flags.String("subdomain-source", SourceHackerTarget, "subdomain backend for getsub: hackertarget or crtsh")
	flags.String("subdomain-url", hackertarget.DefaultURL, "HackerTarget host search endpoint")
	flags.String("crtsh-url", crtsh.DefaultURL, "crt.sh certificate search endpoint")
	flags.String("ipinfo-url", ipinfo.DefaultURL, "IP geolocation endpoint")
	flags.String("ipinfo-token", "", "bearer token for the IP geolocation endpoint")
	flags.String("geoip-db", "", "MaxMind City database used instead of the geolocation endpoint")
	flags.IntP("concurrency", "c", DefaultConcurrency, "commands run in parallel by exec when reading stdin")
}

// DefaultConfigPath returns <user config dir>/lookupbot/config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(dir, "lookupbot", "config.yaml"), nil
}

// Load resolves the configuration. Precedence, highest first: explicitly set
// flags, LOOKUPBOT_* environment variables (and PORT), the YAML config file,
// built-in defaults. A missing config file is not an error.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for k, val := range defaults() {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("port", envPrefix+"_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("binding port environment: %w", err)
	}

	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || bindErr != nil {
			return
		}
		key := NormalizeKey(f.Name)
		if _, known := defaults()[key]; !known {
			return
		}
		bindErr = v.BindPFlag(key, f)
	})
	if bindErr != nil {
		return nil, fmt.Errorf("binding flags: %w", bindErr)
	}

	cfgFile, _ := flags.GetString("config")
	if cfgFile == "" {
		var err error
		if cfgFile, err = DefaultConfigPath(); err != nil {
			return nil, err
		}
	}
	v.SetConfigFile(cfgFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading config file %s: %w", cfgFile, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.ConfigFile = cfgFile
	return &cfg, nil
}

// NormalizeKey maps a flag-style key such as log-format to its config form.
func NormalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "-", "_")
}
