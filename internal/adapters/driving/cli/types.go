package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List registered data types",
	Long: `Lists the data types enabled for this installation in the order they
are exported and imported.`,
	Args: cobra.NoArgs,
	RunE: runTypes,
}

func init() {
	rootCmd.AddCommand(typesCmd)
}

func runTypes(cmd *cobra.Command, _ []string) error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}

	descriptors := syncService.DataTypes()
	if len(descriptors) == 0 {
		cmd.Println("No data types registered.")
		return nil
	}

	p := newPalette(cmd.OutOrStdout())
	width := len("HANDLE")
	for _, d := range descriptors {
		width = max(width, len(d.Handle))
	}

	cmd.Println(p.heading(fmt.Sprintf("%-*s  %s", width, "HANDLE", "MAPPER")))
	for _, d := range descriptors {
		cmd.Printf("%-*s  %s\n", width, d.Handle, d.MapperHandle)
	}
	return nil
}
