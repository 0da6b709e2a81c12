package main

import "github.com/spf13/viper"

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	Version     string `mapstructure:"VERSION"`

	DB struct {
		Host     string `mapstructure:"POSTGRES_HOST"`
		Port     string `mapstructure:"POSTGRES_PORT"`
		User     string `mapstructure:"POSTGRES_USER"`
		Password string `mapstructure:"POSTGRES_PASSWORD"`
		Name     string `mapstructure:"POSTGRES_DB"`
	}

	RabbitMQ struct {
		Host     string `mapstructure:"RABBITMQ_HOST"`
		Port     string `mapstructure:"RABBITMQ_PORT"`
		User     string `mapstructure:"RABBITMQ_USER"`
		Password string `mapstructure:"RABBITMQ_PASSWORD"`
	}

	Mail struct {
		Host     string `mapstructure:"MAIL_HOST"`
		Port     int    `mapstructure:"MAIL_PORT"`
		User     string `mapstructure:"MAIL_USER"`
		Password string `mapstructure:"MAIL_PASSWORD"`
		Sender   string `mapstructure:"MAIL_SENDER"`
		Notify   string `mapstructure:"MAIL_NOTIFY"`
	}

	S3 struct {
		Endpoint  string `mapstructure:"S3_ENDPOINT"`
		AccessKey string `mapstructure:"S3_ACCESS_KEY"`
		SecretKey string `mapstructure:"S3_SECRET_KEY"`
		Bucket    string `mapstructure:"S3_BUCKET"`
		UseSSL    bool   `mapstructure:"S3_USE_SSL"`
		PublicURL string `mapstructure:"S3_PUBLIC_URL"`
	}

	Content struct {
		DefaultAuthor  string `mapstructure:"DEFAULT_AUTHOR"`
		WordsPerMinute int    `mapstructure:"READ_WPM"`
	}

	Admin struct {
		Username string `mapstructure:"ADMIN_USERNAME"`
		Email    string `mapstructure:"ADMIN_EMAIL"`
		Password string `mapstructure:"ADMIN_PASSWORD"`
	}

	RateLimit struct {
		Enabled bool    `mapstructure:"RATE_LIMIT_ENABLED"`
		RPS     float64 `mapstructure:"RATE_LIMIT_RPS"`
		Burst   int     `mapstructure:"RATE_LIMIT_BURST"`
	}
}

func loadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := viper.Unmarshal(&config.DB); err != nil {
		return nil, err
	}
	if err := viper.Unmarshal(&config.RabbitMQ); err != nil {
		return nil, err
	}
	if err := viper.Unmarshal(&config.Mail); err != nil {
		return nil, err
	}
	if err := viper.Unmarshal(&config.S3); err != nil {
		return nil, err
	}
	if err := viper.Unmarshal(&config.Content); err != nil {
		return nil, err
	}
	if err := viper.Unmarshal(&config.Admin); err != nil {
		return nil, err
	}
	if err := viper.Unmarshal(&config.RateLimit); err != nil {
		return nil, err
	}

	return &config, nil
}
