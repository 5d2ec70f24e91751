package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// SetupEnv loads the optional .env file and registers defaults for every
// setting the application reads. Environment variables always win over
// defaults, so deployments override settings without touching code.
func SetupEnv() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("SQLITE_PATH", "yatube.db")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_NAME", "yatube")
	viper.SetDefault("POSTS_PER_PAGE", 10)
	viper.SetDefault("CACHE_TTL_SECONDS", 20)
	viper.SetDefault("MEDIA_ROOT", "./media")
	viper.SetDefault("STATIC_DIR", "./web/static")
	viper.SetDefault("BUCKET_NAME", "posts")
	viper.SetDefault("ALLOW_SELF_FOLLOW", false)
}

// Config returns the named setting as a string.
func Config(key string) string {
	return viper.GetString(key)
}

// Int returns the named setting as an int.
func Int(key string) int {
	return viper.GetInt(key)
}

// Bool returns the named setting as a bool.
func Bool(key string) bool {
	return viper.GetBool(key)
}
