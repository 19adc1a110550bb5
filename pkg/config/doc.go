// Package config loads typed configuration structs from environment
// variables. A .env file is loaded once, best-effort, before the first
// parse so local development does not need exported variables.
//
//	type AppConfig struct {
//	    Env       string `env:"APP_ENV" envDefault:"development"`
//	    JWTSecret string `env:"JWT_SECRET,required"`
//	}
//
//	var cfg AppConfig
//	config.MustLoad(&cfg)
//
// Required fields without values fail the parse; MustLoad turns that into
// a startup panic, which is the desired behavior for secrets like the
// session signing key.
package config
