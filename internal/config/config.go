package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort       string   `env:"HTTP_PORT" envDefault:"4000"`
	AppEnv         string   `env:"APP_ENV" envDefault:"development"`
	DatabaseURL    string   `env:"DATABASE_URL,required"`
	JWTSecret      string   `env:"JWT_SECRET,required"`
	JWTTTLMinutes  int      `env:"JWT_TTL_MINUTES" envDefault:"60"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	RedisAddr      string   `env:"REDIS_ADDR"`
	RedisPassword  string   `env:"REDIS_PASSWORD"`
	RedisDB        int      `env:"REDIS_DB" envDefault:"0"`
	LoginMaxTries  int      `env:"LOGIN_MAX_ATTEMPTS" envDefault:"10"`
	LoginWindowMin int      `env:"LOGIN_WINDOW_MINUTES" envDefault:"15"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction indica si el servicio corre en producción.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
