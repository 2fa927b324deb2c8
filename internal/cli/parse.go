package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gorm.io/jdql/method"
)

// NewParseCommand creates the parse subcommand.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <method>...",
		Short: "Decode method names into query descriptors",
		Example: `  jdql parse findByNameLikeAndPriceLessThanEqual
  jdql parse --format json findByStatusOrderByNameAsc`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, rootOpts, args)
		},
	}
}

func runParse(cmd *cobra.Command, rootOpts *RootOptions, names []string) error {
	db, err := rootOpts.open(cmd)
	if err != nil {
		return err
	}

	out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
	descriptors := make([]*method.QueryDescriptor, 0, len(names))
	for _, name := range names {
		desc, err := db.Parse(cmd.Context(), name)
		if err != nil {
			_ = out.Error(ErrCodeInvalidMethod, err.Error(), syntaxDetails(err))
			return WrapExitError(ExitFailure, "parse", err)
		}
		descriptors = append(descriptors, desc)
	}

	if rootOpts.Format == "json" {
		return out.Success(descriptors)
	}

	var b strings.Builder
	for _, desc := range descriptors {
		writeDescriptor(&b, desc)
	}
	return out.Success(b.String())
}

// writeDescriptor text form of desc, e.g.
//
//	findByNameAndPriceLessThan
//	  action: find
//	  where: name Equal
//	  and: price LessThan
func writeDescriptor(b *strings.Builder, desc *method.QueryDescriptor) {
	fmt.Fprintf(b, "%s\n  action: %s\n", desc.Method, desc.Action)
	if desc.First > 0 {
		fmt.Fprintf(b, "  first: %d\n", desc.First)
	}

	for idx, c := range desc.Conditions {
		connector := "where"
		if idx > 0 {
			connector = "and"
			if !c.And {
				connector = "or"
			}
		}
		fmt.Fprintf(b, "  %s: %s\n", connector, c)
	}

	for _, o := range desc.OrderBy {
		if o.Direction == method.None {
			fmt.Fprintf(b, "  order by: %s\n", o.Property)
		} else {
			fmt.Fprintf(b, "  order by: %s %s\n", o.Property, o.Direction)
		}
	}
}

// syntaxDetails method and position of a syntax error for JSON output
func syntaxDetails(err error) map[string]interface{} {
	var syntaxErr *method.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return nil
	}
	return map[string]interface{}{
		"method":   syntaxErr.Method,
		"position": syntaxErr.Pos,
	}
}
