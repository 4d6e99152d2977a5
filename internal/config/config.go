package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Store StoreConfig `mapstructure:"store"`
	Seed  SeedConfig  `mapstructure:"seed"`
	Log   LogConfig   `mapstructure:"log"`
}

type StoreConfig struct {
	Path      string `mapstructure:"path"`
	ExportDir string `mapstructure:"export_dir"`
}

// SeedConfig describes the first-run administrator. The password is only
// used once, to derive the stored hash on an empty store.
type SeedConfig struct {
	AdminName     string `mapstructure:"admin_name"`
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetDefault("store.path", "cocada.db")
	v.SetDefault("store.export_dir", ".")
	v.SetDefault("seed.admin_name", "Adriana Souza")
	v.SetDefault("seed.admin_email", "adriana@cocadanordestina.com")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// no config file, env and defaults only
	}

	bindEnvVariables(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVariables(v *viper.Viper) {
	v.BindEnv("store.path", "COCADA_STORE_PATH")
	v.BindEnv("store.export_dir", "COCADA_EXPORT_DIR")

	v.BindEnv("seed.admin_name", "COCADA_ADMIN_NAME")
	v.BindEnv("seed.admin_email", "COCADA_ADMIN_EMAIL")
	v.BindEnv("seed.admin_password", "COCADA_ADMIN_PASSWORD")

	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
}
