package config

import (
	"os"
	"path/filepath"
)

// GetConfigPath determines the configuration file path.
// Priority:
// 1. --config command-line flag
// 2. HAREXTRACTOR_CONFIG environment variable
// 3. harextractor.yaml in the current working directory
// 4. harextractor.json in the current working directory
// An explicitly requested path is returned even if it does not exist, so that
// loading reports it. An empty result means no config file.
func GetConfigPath(configFilePathFlag string) string {
	if configFilePathFlag != "" {
		return configFilePathFlag
	}

	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		return envPath
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	for _, file := range []string{DefaultYAMLConfigFile, DefaultJSONConfigFile} {
		path := filepath.Join(cwd, file)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// Helper function to check if a file exists
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
