package config

// This is the global app config for a ledger node.
type AppConfig struct {
	// How many leading 0s to form a valid hash. Only applies when starting a
	// fresh chain; a cached chain keeps the difficulty in its snapshot.
	DIFFICULTY int `yaml:"difficulty"`
	// Where the ledger snapshot is cached between runs.
	CACHE_PATH string `yaml:"cache_path"`
	// Port the HTTP API listens on.
	PORT string `yaml:"port"`
}
