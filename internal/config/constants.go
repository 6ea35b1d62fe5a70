package config

const (
	// Config file discovery
	ConfigPathEnvVar      = "HAREXTRACTOR_CONFIG"
	DefaultYAMLConfigFile = "harextractor.yaml"
	DefaultJSONConfigFile = "harextractor.json"
	MaxConfigFileSize     = 1024 * 1024

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Extractor Defaults
	DefaultDecoderBackend   = "auto"
	DefaultOutputSuffix     = ".d"
	DefaultFilePermissions  = 0644
	DefaultDirPermissions   = 0755
	DefaultStreamBufferSize = 64 * 1024
)
