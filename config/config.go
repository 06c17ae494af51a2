package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server  Server
	ExamAPI ExamAPI
	Mirror  Mirror
}

type Server struct {
	Port string
}

// ExamAPI points at the external Examinator backend that owns modules,
// questions and attempts.
type ExamAPI struct {
	BaseURL        string
	TimeoutSeconds int
}

// Mirror configures the local durable backup of in-progress answers.
type Mirror struct {
	Path string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("EXAM_API_TIMEOUT_SECONDS", 15)
	viper.SetDefault("MIRROR_DB_PATH", "examinator-mirror.db")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.ExamAPI.BaseURL = viper.GetString("EXAM_API_BASE_URL")
	config.ExamAPI.TimeoutSeconds = viper.GetInt("EXAM_API_TIMEOUT_SECONDS")
	config.Mirror.Path = viper.GetString("MIRROR_DB_PATH")

	log.Info().Interface("config", config).Msg("Config loaded")
	return &config, nil
}
