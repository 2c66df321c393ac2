package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var conf *Config

var (
	ErrMissingToken    = errors.New("DISCORD_TOKEN is required")
	ErrMissingClientID = errors.New("DISCORD_CLIENT_ID is required")
)

// Config 全ての設定を格納
type Config struct {
	Discord struct {
		Token    string `env:"DISCORD_TOKEN"`
		ClientID string `env:"DISCORD_CLIENT_ID"`
		Playing  string `env:"DISCORD_PLAYING"`
		// GuildID limits command registration to one guild. Empty registers globally.
		GuildID string `env:"DISCORD_GUILD_ID"`
	}
	Log struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Pretty bool   `env:"LOG_PRETTY"`
	}
	JoinLog struct {
		Path string `env:"JOIN_LOG_PATH"`
	}
	Metrics struct {
		Addr string `env:"METRICS_ADDR"`
	}
	File       string     `env:"BOT_CONFIG_FILE" envDefault:"config.toml"`
	Appearance Appearance
}

// Appearance holds the presentation settings read from the TOML file
type Appearance struct {
	WelcomeColor    int    `toml:"welcome_color"`
	ServerInfoColor int    `toml:"serverinfo_color"`
	RulesChannelID  string `toml:"rules_channel_id"`
}

type fileConfig struct {
	Appearance Appearance `toml:"appearance"`
}

// DefaultAppearance is used for every key the TOML file leaves out
func DefaultAppearance() Appearance {
	return Appearance{
		WelcomeColor:    0x6A0DAD,
		ServerInfoColor: 0x0099FF,
	}
}

// Load reads .env (if present), the environment and the optional TOML file
func Load() (*Config, error) {
	// .env ファイルが存在すれば読み込む（存在しなくても環境変数から読める）
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	c.Discord.Token = strings.TrimSpace(c.Discord.Token)
	c.Discord.ClientID = strings.TrimSpace(c.Discord.ClientID)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))

	if c.Discord.Token == "" {
		return nil, ErrMissingToken
	}
	if c.Discord.ClientID == "" {
		return nil, ErrMissingClientID
	}

	appearance, err := loadAppearance(c.File)
	if err != nil {
		return nil, err
	}
	c.Appearance = appearance

	conf = c
	return c, nil
}

func loadAppearance(path string) (Appearance, error) {
	fc := fileConfig{Appearance: DefaultAppearance()}
	if path == "" {
		return fc.Appearance, nil
	}
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultAppearance(), nil
		}
		return Appearance{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return fc.Appearance, nil
}

// GetConf is return config
func GetConf() *Config {
	return conf
}
