package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born05/schematic/internal/core/domain"
)

var settingsSplit bool

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the edition, excluded data types and document
location stored in schematic.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsEditionCmd = &cobra.Command{
	Use:   "edition [solo|pro]",
	Short: "Set the installation edition",
	Long: `Set the edition of the installation. Data types that need a higher
edition are not registered. Without an argument the edition is chosen
interactively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsEdition,
}

var settingsExcludeCmd = &cobra.Command{
	Use:   "exclude [data-type...]",
	Short: "Set data types that are never processed",
	Long:  `Replace the exclusion list. Run without arguments to clear it.`,
	RunE:  runSettingsExclude,
}

var settingsDocumentCmd = &cobra.Command{
	Use:   "document <path>",
	Short: "Set the document location",
	Long:  `Set the document path. With --split the path is a directory holding one file per data type.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsDocument,
}

func init() {
	settingsDocumentCmd.Flags().BoolVar(&settingsSplit, "split", false, "store one file per data type")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsEditionCmd)
	settingsCmd.AddCommand(settingsExcludeCmd)
	settingsCmd.AddCommand(settingsDocumentCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cfg, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[General]")
	cmd.Printf("  Edition: %s\n", cfg.Edition)
	cmd.Printf("  Force by default: %s\n", yesNo(cfg.Force))
	if len(cfg.Exclude) > 0 {
		cmd.Printf("  Exclude: %s\n", strings.Join(cfg.Exclude, ", "))
	} else {
		cmd.Printf("  Exclude: (none)\n")
	}
	cmd.Println()

	cmd.Println("[Document]")
	cmd.Printf("  Path: %s\n", cfg.Document.Path)
	cmd.Printf("  Split: %s\n", yesNo(cfg.Document.Split))
	if cfg.Document.OverridePath != "" {
		cmd.Printf("  Override: %s\n", cfg.Document.OverridePath)
	}
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Path: %s\n", cfg.Storage.Path)

	return nil
}

func runSettingsEdition(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var edition domain.Edition
	if len(args) == 1 {
		parsed, err := domain.ParseEdition(args[0])
		if err != nil {
			return fmt.Errorf("unknown edition %q", args[0])
		}
		edition = parsed
	} else {
		edition = promptEdition(cmd, cmd.InOrStdin())
	}

	if err := settingsService.SetEdition(edition); err != nil {
		return fmt.Errorf("failed to set edition: %w", err)
	}
	cmd.Printf("Edition set to: %s\n", edition)
	return nil
}

func runSettingsExclude(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetExclude(args); err != nil {
		return fmt.Errorf("failed to set exclusions: %w", err)
	}
	if len(args) == 0 {
		cmd.Println("Exclusion list cleared.")
		return nil
	}
	cmd.Printf("Excluding: %s\n", strings.Join(args, ", "))
	return nil
}

func runSettingsDocument(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetDocumentPath(args[0], settingsSplit); err != nil {
		return fmt.Errorf("failed to set document path: %w", err)
	}
	layout := "single file"
	if settingsSplit {
		layout = "one file per data type"
	}
	cmd.Printf("Document set to: %s (%s)\n", args[0], layout)
	return nil
}

func promptEdition(cmd *cobra.Command, in io.Reader) domain.Edition {
	editions := []domain.Edition{domain.EditionSolo, domain.EditionPro}

	cmd.Println("Select Edition")
	cmd.Println("--------------")
	for i, e := range editions {
		cmd.Printf("  %d. %s\n", i+1, e)
	}
	cmd.Print("\nEnter choice [2]: ")

	input := readLine(bufio.NewReader(in))
	return editions[parseChoice(input, len(editions), 2)-1]
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
