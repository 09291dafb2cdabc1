// Package config loads environment variables into tagged structs.
//
// A .env file in the working directory is loaded once, if present, before
// the first parse; real environment variables always win over .env values.
//
//	type ServerConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//		Root string `env:"DROPDIR_ROOT,required"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
//
// MustLoad panics on failure, for configuration the process cannot start
// without.
package config
