package config

// UserConfig holds per-username overrides for report generation.
// This allows customizing output for accounts that are rendered regularly.
type UserConfig struct {
	// OutputDir is the directory reports for this username are written
	// to when no explicit output path is given on the command line.
	OutputDir string `yaml:"outputDir,omitempty"`

	// PageSize overrides the number of tweet cards per HTML report page.
	// If zero, the global page size is used.
	PageSize int `yaml:"pageSize,omitempty"`
}

// File represents the structure of the .waybacktweets configuration file.
type File struct {
	// Users maps usernames (without the leading "@") to their overrides.
	Users map[string]UserConfig `yaml:"users,omitempty"`

	// Defaults contains overrides applied to every username unless
	// overridden in the per-username configuration.
	Defaults UserConfig `yaml:"defaults,omitempty"`
}

// GetUserConfig returns the configuration for a specific username.
// It merges the per-username configuration with defaults.
func (cf *File) GetUserConfig(username string) UserConfig {
	// Start with defaults
	result := cf.Defaults

	// Override with per-username configuration if present
	if userConfig, ok := cf.Users[username]; ok {
		if userConfig.OutputDir != "" {
			result.OutputDir = userConfig.OutputDir
		}
		if userConfig.PageSize != 0 {
			result.PageSize = userConfig.PageSize
		}
	}

	return result
}
