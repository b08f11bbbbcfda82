// Package config loads application configuration with Viper.
//
// LoadConfig reads config.yml, then a .env file (via godotenv), then the
// process environment, and decodes the merged result into a struct using
// mapstructure tags.
//
// # Usage
//
//	var cfg AppConfig
//	if err := config.LoadConfig("chatgpt", &cfg); err != nil {
//	    return err
//	}
//
// Environment variables override the scalar keys the target struct declares:
// CHATGPT_API_KEY sets chatgpt.api_key and LOGGING_LEVEL sets logging.level.
// Variables that match no declared key are ignored. Map entries such as
// chatgpt.headers come from the file only.
package config
