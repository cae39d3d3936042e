package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	MoralisKey    string
	OneInchKey    string
	Port          int
	AllowedOrigin string

	MoralisBaseURL string
	OneInchBaseURL string

	// GatewayURL is the base URL the CLI uses to reach a running gateway.
	GatewayURL string

	// EthRPCUrl is only needed by the confirmation watcher (status command).
	EthRPCUrl string

	Slippage float64

	RateLimitMax    int
	RateLimitWindow time.Duration
}

var globalConfig *Config

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetConfigName(".token-swap")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	// Set default values
	viper.SetDefault("port", 3001)
	viper.SetDefault("allowed_origin", "*")
	viper.SetDefault("moralis_base_url", "https://deep-index.moralis.io/api/v2.2")
	viper.SetDefault("one_inch_base_url", "https://api.1inch.dev/swap/v6.0/1")
	viper.SetDefault("gateway_url", "http://localhost:3001")
	viper.SetDefault("slippage", 2.5)
	viper.SetDefault("rate_limit_max", 100)
	viper.SetDefault("rate_limit_window", 15*time.Minute)

	// Read from environment variables
	viper.SetEnvPrefix("TOKEN_SWAP")
	viper.AutomaticEnv()

	// Read config file (optional)
	_ = viper.ReadInConfig()

	// Bare env names take precedence so the service runs with the same
	// variables the original deployment used.
	moralisKey := os.Getenv("MORALIS_KEY")
	if moralisKey == "" {
		moralisKey = viper.GetString("moralis_key")
	}
	oneInchKey := os.Getenv("ONE_INCH_API_KEY")
	if oneInchKey == "" {
		oneInchKey = viper.GetString("one_inch_key")
	}
	if port := os.Getenv("PORT"); port != "" {
		viper.Set("port", port)
	}
	if origin := os.Getenv("ALLOWED_ORIGIN"); origin != "" {
		viper.Set("allowed_origin", origin)
	}
	if rpc := os.Getenv("ETH_RPC_URL"); rpc != "" {
		viper.Set("eth_rpc_url", rpc)
	}

	cfg := &Config{
		MoralisKey:      moralisKey,
		OneInchKey:      oneInchKey,
		Port:            viper.GetInt("port"),
		AllowedOrigin:   viper.GetString("allowed_origin"),
		MoralisBaseURL:  viper.GetString("moralis_base_url"),
		OneInchBaseURL:  viper.GetString("one_inch_base_url"),
		GatewayURL:      viper.GetString("gateway_url"),
		EthRPCUrl:       viper.GetString("eth_rpc_url"),
		Slippage:        viper.GetFloat64("slippage"),
		RateLimitMax:    viper.GetInt("rate_limit_max"),
		RateLimitWindow: viper.GetDuration("rate_limit_window"),
	}

	globalConfig = cfg
	return cfg, nil
}

// RequireUpstreamKeys reports whether the upstream API credentials are
// present. The gateway cannot start without them; the CLI commands that
// only talk to a running gateway do not need them.
func (c *Config) RequireUpstreamKeys() error {
	if c.MoralisKey == "" || c.OneInchKey == "" {
		return fmt.Errorf("MORALIS_KEY or ONE_INCH_API_KEY is not set in the environment variables")
	}
	return nil
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		return cfg
	}
	return globalConfig
}

// Set updates the global configuration
func Set(cfg *Config) {
	globalConfig = cfg
}
