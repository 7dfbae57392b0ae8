// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Built-in defaults cover the three Breton networks (Bibus, STAR, TUB), so a
// missing file is not an error. Environment variables, optionally read from
// a .env file, override the engine tunables and the default Bibus feed URLs.
package config
