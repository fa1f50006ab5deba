package bundle

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/bundlekit/internal/console"
)

const (
	bannerCommandUseConstant              = "banner [TEXT]"
	bannerCommandShortDescriptionConstant = "Print the colored startup banner"
	bannerCommandLongDescriptionConstant  = "banner renders text as large FIGlet lettering colored with the configured primary and secondary colors."
	fontFlagNameConstant                  = "font"
	fontFlagUsageConstant                 = "Bundled FIGlet font name."
	fontFileFlagNameConstant              = "font-file"
	fontFileFlagUsageConstant             = "Path to a FIGlet .flf font file; overrides --font."
	bannerTextSeparatorConstant           = " "
)

// BannerCommandBuilder assembles the banner command.
type BannerCommandBuilder struct {
	ConfigurationProvider ConfigurationProvider
	Dependencies          Dependencies
}

// Build constructs the banner command.
func (builder *BannerCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   bannerCommandUseConstant,
		Short: bannerCommandShortDescriptionConstant,
		Long:  bannerCommandLongDescriptionConstant,
		RunE:  builder.run,
	}
	command.Flags().String(fontFlagNameConstant, "", fontFlagUsageConstant)
	command.Flags().String(fontFileFlagNameConstant, "", fontFileFlagUsageConstant)
	return command, nil
}

func (builder *BannerCommandBuilder) run(command *cobra.Command, arguments []string) error {
	bannerConfiguration := resolveConfiguration(builder.ConfigurationProvider).Banner
	if len(arguments) > 0 {
		bannerConfiguration.Text = strings.Join(arguments, bannerTextSeparatorConstant)
	}
	bannerConfiguration.Font = stringFlagOrDefault(command, fontFlagNameConstant, bannerConfiguration.Font)
	bannerConfiguration.FontFile = stringFlagOrDefault(command, fontFileFlagNameConstant, bannerConfiguration.FontFile)

	return builder.Dependencies.printBanner(builder.Dependencies.consoleLogger(), bannerConfiguration)
}

func (resolved Dependencies) printBanner(consoleLogger *console.Logger, configuration BannerConfiguration) error {
	if len(strings.TrimSpace(configuration.Text)) == 0 {
		return nil
	}

	colors, colorError := parseBannerColors(configuration)
	if colorError != nil {
		return colorError
	}

	renderer := console.NewBannerRenderer(
		consoleLogger.Palette(),
		resolved.widthProvider(),
		console.BannerFont{Name: configuration.Font, FilePath: resolved.homeExpander().Expand(configuration.FontFile)},
	)
	rendered, renderError := renderer.Render(configuration.Text, colors)
	if renderError != nil {
		return renderError
	}
	consoleLogger.Print(rendered)
	return nil
}
