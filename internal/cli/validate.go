package cli

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	Entity     string
	Attributes []string
}

// ValidateResult is the outcome of a single method name.
type ValidateResult struct {
	Method string `json:"method"`
	Valid  bool   `json:"valid"`
	Error  string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate subcommand.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <method>...",
		Short: "Check method names against an entity's attributes",
		Long: `Check that method names parse and only reference attributes of the entity.

Attributes come from --attrs or from the entities section of the config file.`,
		Example:       `  jdql validate --entity Product --attrs name,price,address.city findByAddress_CityOrderByPriceDesc`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, rootOpts, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Entity, "entity", "e", "", "entity to validate against")
	cmd.Flags().StringSliceVar(&opts.Attributes, "attrs", nil, "entity attributes, comma separated")

	return cmd
}

func runValidate(cmd *cobra.Command, rootOpts *RootOptions, opts *ValidateOptions, names []string) error {
	entity := rootOpts.entity(opts.Entity)
	if entity == "" {
		return NewExitError(ExitCommandError, "--entity is required")
	}

	db, err := rootOpts.open(cmd)
	if err != nil {
		return err
	}
	if len(opts.Attributes) > 0 {
		db.RegisterAttributes(entity, opts.Attributes...)
	}

	var (
		out     = &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
		results = make([]ValidateResult, 0, len(names))
		errs    *multierror.Error
	)
	for _, name := range names {
		result := ValidateResult{Method: name, Valid: true}

		desc, err := db.Parse(cmd.Context(), name)
		if err == nil {
			err = db.Validate(entity, desc)
		}
		if err != nil {
			result.Valid = false
			result.Error = err.Error()
			errs = multierror.Append(errs, err)
		}
		results = append(results, result)
	}

	if errs.ErrorOrNil() != nil {
		if rootOpts.Format == "json" {
			_ = out.Error(ErrCodeValidation, "validation failed", results)
		} else {
			for _, result := range results {
				if !result.Valid {
					_ = out.Error(ErrCodeValidation, result.Error, nil)
				}
			}
		}
		return WrapExitError(ExitFailure, "validation failed", errs)
	}

	if rootOpts.Format == "json" {
		return out.Success(results)
	}
	return out.Success(fmt.Sprintf("%d method(s) valid for %s\n", len(results), entity))
}
