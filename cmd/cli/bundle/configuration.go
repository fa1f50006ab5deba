package bundle

import (
	"strings"

	"github.com/temirov/bundlekit/internal/assets"
	"github.com/temirov/bundlekit/internal/console"
	"github.com/temirov/bundlekit/internal/utils"
)

const (
	defaultProjectDirectoryConstant   = "."
	defaultStatisticsPathConstant     = "build/stats.json"
	defaultOutputDirectoryConstant    = "build"
	defaultBuildCommandConstant       = "npm run build"
	defaultCompletionMessageConstant  = "The build folder is ready to be deployed."
	defaultBannerTextConstant         = "bundlekit"
	projectConfigurationKeySuffix     = ".project"
	buildConfigurationKeySuffix       = ".build"
	bannerConfigurationKeySuffix      = ".banner"
	configurationKeySeparatorConstant = "."
)

// ProjectConfiguration locates the web project and its build output.
type ProjectConfiguration struct {
	Directory       string `mapstructure:"directory"`
	Statistics      string `mapstructure:"stats"`
	StatsFormat     string `mapstructure:"stats_format"`
	OutputDirectory string `mapstructure:"output_dir"`
	Budget          int64  `mapstructure:"budget"`
}

// BuildConfiguration describes the build command and its completion notice.
type BuildConfiguration struct {
	Command           string `mapstructure:"command"`
	EnvironmentFile   string `mapstructure:"env_file"`
	CompletionMessage string `mapstructure:"completion_message"`
	ShowBanner        bool   `mapstructure:"banner"`
}

// BannerConfiguration describes the startup banner.
type BannerConfiguration struct {
	Text           string `mapstructure:"text"`
	Font           string `mapstructure:"font"`
	FontFile       string `mapstructure:"font_file"`
	PrimaryColor   string `mapstructure:"primary_color"`
	SecondaryColor string `mapstructure:"secondary_color"`
}

// ToolsConfiguration groups the configuration of the bundle commands.
type ToolsConfiguration struct {
	Project ProjectConfiguration `mapstructure:"project"`
	Build   BuildConfiguration   `mapstructure:"build"`
	Banner  BannerConfiguration  `mapstructure:"banner"`
}

// DefaultToolsConfiguration returns the settings used when nothing is configured.
func DefaultToolsConfiguration() ToolsConfiguration {
	defaultColors := console.DefaultBannerColors()
	return ToolsConfiguration{
		Project: ProjectConfiguration{
			Directory:       defaultProjectDirectoryConstant,
			Statistics:      defaultStatisticsPathConstant,
			StatsFormat:     string(assets.StatsFormatWebpack),
			OutputDirectory: defaultOutputDirectoryConstant,
			Budget:          assets.DefaultBudget,
		},
		Build: BuildConfiguration{
			Command:           defaultBuildCommandConstant,
			EnvironmentFile:   utils.DefaultEnvironmentFileName,
			CompletionMessage: defaultCompletionMessageConstant,
			ShowBanner:        true,
		},
		Banner: BannerConfiguration{
			Text:           defaultBannerTextConstant,
			PrimaryColor:   string(defaultColors.Primary),
			SecondaryColor: string(defaultColors.Secondary),
		},
	}
}

// DefaultConfigurationValues flattens DefaultToolsConfiguration into Viper keys under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultToolsConfiguration()
	projectPrefix := prefix + projectConfigurationKeySuffix + configurationKeySeparatorConstant
	buildPrefix := prefix + buildConfigurationKeySuffix + configurationKeySeparatorConstant
	bannerPrefix := prefix + bannerConfigurationKeySuffix + configurationKeySeparatorConstant
	return map[string]any{
		projectPrefix + "directory":        defaults.Project.Directory,
		projectPrefix + "stats":            defaults.Project.Statistics,
		projectPrefix + "stats_format":     defaults.Project.StatsFormat,
		projectPrefix + "output_dir":       defaults.Project.OutputDirectory,
		projectPrefix + "budget":           defaults.Project.Budget,
		buildPrefix + "command":            defaults.Build.Command,
		buildPrefix + "env_file":           defaults.Build.EnvironmentFile,
		buildPrefix + "completion_message": defaults.Build.CompletionMessage,
		buildPrefix + "banner":             defaults.Build.ShowBanner,
		bannerPrefix + "text":              defaults.Banner.Text,
		bannerPrefix + "font":              defaults.Banner.Font,
		bannerPrefix + "font_file":         defaults.Banner.FontFile,
		bannerPrefix + "primary_color":     defaults.Banner.PrimaryColor,
		bannerPrefix + "secondary_color":   defaults.Banner.SecondaryColor,
	}
}

// Sanitize trims values and restores defaults for blank or non-positive settings.
func (configuration ToolsConfiguration) Sanitize() ToolsConfiguration {
	defaults := DefaultToolsConfiguration()
	sanitized := configuration

	sanitized.Project.Directory = valueOrDefault(configuration.Project.Directory, defaults.Project.Directory)
	sanitized.Project.Statistics = valueOrDefault(configuration.Project.Statistics, defaults.Project.Statistics)
	sanitized.Project.StatsFormat = valueOrDefault(configuration.Project.StatsFormat, defaults.Project.StatsFormat)
	sanitized.Project.OutputDirectory = valueOrDefault(configuration.Project.OutputDirectory, defaults.Project.OutputDirectory)
	if sanitized.Project.Budget <= 0 {
		sanitized.Project.Budget = defaults.Project.Budget
	}

	sanitized.Build.Command = valueOrDefault(configuration.Build.Command, defaults.Build.Command)
	sanitized.Build.EnvironmentFile = valueOrDefault(configuration.Build.EnvironmentFile, defaults.Build.EnvironmentFile)
	sanitized.Build.CompletionMessage = strings.TrimSpace(configuration.Build.CompletionMessage)

	sanitized.Banner.Text = strings.TrimSpace(configuration.Banner.Text)
	sanitized.Banner.Font = strings.TrimSpace(configuration.Banner.Font)
	sanitized.Banner.FontFile = strings.TrimSpace(configuration.Banner.FontFile)
	sanitized.Banner.PrimaryColor = valueOrDefault(configuration.Banner.PrimaryColor, defaults.Banner.PrimaryColor)
	sanitized.Banner.SecondaryColor = valueOrDefault(configuration.Banner.SecondaryColor, defaults.Banner.SecondaryColor)

	return sanitized
}

func valueOrDefault(value string, fallback string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return fallback
	}
	return trimmedValue
}
