package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Gateway  GatewayConfig
	Notifier NotifierConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
	// AdminToken protects the back-office routes. Empty fails closed.
	AdminToken string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type GatewayConfig struct {
	// Passphrase is the shared secret used to verify notification signatures.
	// When empty, verification fails closed and every notification is rejected.
	Passphrase    string
	SignatureAlgo string
}

type NotifierConfig struct {
	// URL of the CRM sync endpoint. Empty means notification is skipped.
	URL            string
	TimeoutSeconds int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("PAYFAST_SIGNATURE_ALGO", "md5")
	viper.SetDefault("CRM_TIMEOUT_SECONDS", 5)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:       viper.GetString("APP_NAME"),
			Port:       viper.GetString("PORT"),
			Debug:      viper.GetBool("DEBUG"),
			LogPath:    viper.GetString("LOG_PATH"),
			AdminToken: viper.GetString("ADMIN_API_TOKEN"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Gateway: GatewayConfig{
			Passphrase:    viper.GetString("PAYFAST_PASSPHRASE"),
			SignatureAlgo: viper.GetString("PAYFAST_SIGNATURE_ALGO"),
		},
		Notifier: NotifierConfig{
			URL:            viper.GetString("CRM_WEBHOOK_URL"),
			TimeoutSeconds: viper.GetInt("CRM_TIMEOUT_SECONDS"),
		},
	}

	return config, nil
}
