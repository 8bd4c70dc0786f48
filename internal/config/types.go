package config

// Config is the parsed config.toml.
type Config struct {
	Notify        bool   `toml:"notify"`
	NotifyCommand string `toml:"notify_command"`
	LogFile       string `toml:"log_file"`
}

// Defaults returns the configuration used when no config file exists.
func Defaults() Config {
	return Config{
		Notify:        true,
		NotifyCommand: "notify-send",
	}
}
