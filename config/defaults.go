package config

const (
	defaultConfigPath  = "~/.config/prgconv/config.toml"
	projectConfigName  = "prgconv.toml"
	defaultPrettyPrint = true
	defaultFormat      = "auto"
	defaultLock        = true
	defaultLogLevel    = "info"
	defaultLogFormat   = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Convert: Convert{
			PrettyPrint: defaultPrettyPrint,
			Format:      defaultFormat,
			Lock:        defaultLock,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
