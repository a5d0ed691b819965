package config

import (
	"fmt"

	"pnovbridge/internal/logging"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type Env struct {
	AppAddr     string   `env:"APP_ADDR" env-default:":8080" validate:"required"`
	GinMode     string   `env:"GIN_MODE" validate:"omitempty,oneof=debug release test"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:","`

	MaxUploadMB  int64   `env:"PNOV_MAX_UPLOAD_MB" env-default:"32" validate:"min=1,max=1024"`
	HighValueMin float64 `env:"PNOV_HIGH_VALUE_MIN" env-default:"50" validate:"gte=0"`

	LogLevel      string `env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	LogFormat     string `env:"LOG_FORMAT" env-default:"text" validate:"oneof=text json"`
	LogOutput     string `env:"LOG_OUTPUT" env-default:"stderr" validate:"oneof=stderr file"`
	LogFilePath   string `env:"LOG_FILE_PATH" validate:"required_if=LogOutput file"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" env-default:"100" validate:"min=1"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" env-default:"3" validate:"min=0"`
	LogMaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" env-default:"7" validate:"min=0"`
	LogCompress   bool   `env:"LOG_COMPRESS" env-default:"true"`
}

// LoadEnv reads the process environment and rejects invalid settings.
func LoadEnv() (Env, error) {
	var env Env
	if err := cleanenv.ReadEnv(&env); err != nil {
		return Env{}, fmt.Errorf("read env: %w", err)
	}
	if err := env.Validate(); err != nil {
		return Env{}, err
	}
	return env, nil
}

func (e Env) Validate() error {
	if err := validator.New().Struct(e); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// MaxUploadBytes is the request body cap for report uploads.
func (e Env) MaxUploadBytes() int64 {
	return e.MaxUploadMB << 20
}

func (e Env) Logging() logging.Config {
	return logging.Config{
		Level:      e.LogLevel,
		Format:     e.LogFormat,
		Output:     e.LogOutput,
		FilePath:   e.LogFilePath,
		MaxSizeMB:  e.LogMaxSizeMB,
		MaxBackups: e.LogMaxBackups,
		MaxAgeDays: e.LogMaxAgeDays,
		Compress:   e.LogCompress,
	}
}
