package config

const (
	defaultDataDir           = "~/.local/share/matchlock"
	defaultLogDir            = "~/.local/share/matchlock/logs"
	defaultFuzzyThreshold    = 0.8
	defaultFuzzyMargin       = 0.1
	defaultWorkers           = 4
	defaultEventBuffer       = 200
	defaultEventGraceSeconds = 60
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Matching: Matching{
			FuzzyThreshold:    defaultFuzzyThreshold,
			FuzzyMargin:       defaultFuzzyMargin,
			Workers:           defaultWorkers,
			EventBuffer:       defaultEventBuffer,
			EventGraceSeconds: defaultEventGraceSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
