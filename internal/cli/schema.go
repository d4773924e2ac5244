package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macropower/kontrol/pkg/config"
)

// NewSchemaCmd prints the JSON schema of the configuration file.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := config.SchemaJSON()
			if err != nil {
				return err //nolint:wrapcheck // Already wrapped.
			}

			_, err = cmd.OutOrStdout().Write(b)
			if err != nil {
				return fmt.Errorf("write schema: %w", err)
			}

			return nil
		},
	}
}
