package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	schemaregistry "github.com/scan-io-git/diagval/internal/schema"
	"github.com/scan-io-git/diagval/pkg/shared/errors"
)

// RunOptionsSchema holds the arguments for the schema command.
type RunOptionsSchema struct {
	Name string
	List bool
}

var (
	schemaOptions      RunOptionsSchema
	exampleSchemaUsage = `  # Printing the top-level document schema
  diagval schema

  # Printing one of the named sub-schemas
  diagval schema --name position

  # Listing all schema names
  diagval schema --list`
)

// SchemaCmd represents the schema command.
var SchemaCmd = &cobra.Command{
	Use:                   "schema [--name NAME] [--list]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleSchemaUsage,
	Short:                 "Prints the diagnostic-result schema for external tooling",
	RunE:                  runSchemaCommand,
}

// runSchemaCommand executes the schema command.
func runSchemaCommand(cmd *cobra.Command, args []string) error {
	if schemaOptions.List {
		names := schemaregistry.Names()
		sort.Strings(names)
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}

	node, ok := schemaregistry.Get(schemaOptions.Name)
	if !ok {
		return errors.NewCommandError(fmt.Errorf("unknown schema %q", schemaOptions.Name), errors.ExitFailure)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(node); err != nil {
		return errors.NewCommandError(fmt.Errorf("failed to encode schema: %w", err), errors.ExitFailure)
	}
	return nil
}

// Initialize flags for the schema command.
func init() {
	SchemaCmd.Flags().StringVarP(&schemaOptions.Name, "name", "n", schemaregistry.NameDocument, "Logical schema name to print.")
	SchemaCmd.Flags().BoolVar(&schemaOptions.List, "list", false, "List available schema names.")
}
