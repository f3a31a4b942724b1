package configs

import "os"

type Config struct {
	Port      string
	MongoURI  string
	DBName    string
	JWTSecret string
}

// Load reads configuration from the environment. main is responsible
// for loading .env first and for failing fast on missing values.
func Load() Config {
	cfg := Config{
		Port:      os.Getenv("PORT"),
		MongoURI:  os.Getenv("MONGO_URI"),
		DBName:    os.Getenv("DB_NAME"),
		JWTSecret: os.Getenv("JWT_SECRET"),
	}
	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	if cfg.DBName == "" {
		cfg.DBName = "jobboard"
	}
	return cfg
}
