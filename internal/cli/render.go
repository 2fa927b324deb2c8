package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gorm.io/jdql"
	"gorm.io/jdql/clause"
	"gorm.io/jdql/utils"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	Entity  string
	OrderBy bool
	Args    []string
}

// RenderResult is the JSON form of a rendered method.
type RenderResult struct {
	Method string        `json:"method"`
	JDQL   string        `json:"jdql"`
	Params []interface{} `json:"params,omitempty"`
}

// NewRenderCommand creates the render subcommand.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render <method>...",
		Short: "Render method names as JDQL",
		Long: `Render method names as JDQL queries.

Without --arg every value is a named method parameter. With --arg the values
are bound in order to the numbered parameters of a single method.`,
		Example: `  jdql render --entity Product findByNameLikeAndPriceLessThanEqual
  jdql render --arg 10 --arg 20 findByPriceBetween`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, rootOpts, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Entity, "entity", "e", "", "entity the queries select from")
	cmd.Flags().BoolVar(&opts.OrderBy, "order-by", true, "render the OrderBy clause")
	cmd.Flags().StringArrayVarP(&opts.Args, "arg", "a", nil, "value bound to the next parameter (repeatable)")

	return cmd
}

func runRender(cmd *cobra.Command, rootOpts *RootOptions, opts *RenderOptions, names []string) error {
	if len(opts.Args) > 0 && len(names) > 1 {
		return NewExitError(ExitCommandError, "--arg binds a single method")
	}

	db, err := rootOpts.open(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("order-by") {
		db = db.Session(&jdql.Session{RenderOrderBy: &opts.OrderBy})
	}

	values := make([]interface{}, len(opts.Args))
	for idx, arg := range opts.Args {
		values[idx] = parseArg(arg)
	}

	var (
		out     = &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
		entity  = rootOpts.entity(opts.Entity)
		results = make([]RenderResult, 0, len(names))
	)
	for _, name := range names {
		var query *jdql.Query
		if len(values) > 0 {
			query, err = db.Bind(cmd.Context(), entity, name, values...)
		} else {
			query, err = db.Query(cmd.Context(), entity, name)
		}
		if err != nil {
			_ = out.Error(ErrCodeRender, err.Error(), syntaxDetails(err))
			return WrapExitError(ExitFailure, "render", err)
		}

		result := RenderResult{Method: name, JDQL: query.JDQL}
		for _, v := range query.Vars {
			if p, ok := v.(clause.Param); ok {
				result.Params = append(result.Params, p.String())
			} else {
				result.Params = append(result.Params, v)
			}
		}
		results = append(results, result)
	}

	if rootOpts.Format == "json" {
		return out.Success(results)
	}

	var b strings.Builder
	for _, result := range results {
		b.WriteString(result.JDQL)
		b.WriteByte('\n')
		if len(values) > 0 {
			params := make([]string, len(result.Params))
			for idx, v := range result.Params {
				params[idx] = fmt.Sprintf("?%d = %s", idx+1, utils.ToString(v))
			}
			fmt.Fprintf(&b, "  %s\n", strings.Join(params, ", "))
		}
	}
	return out.Success(b.String())
}

// parseArg value of a --arg flag, tried as integer, float, boolean and date
// before falling back to the string itself
func parseArg(arg string) interface{} {
	if i, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(arg, 64); err == nil {
		return f
	}
	if arg == "true" || arg == "false" {
		return arg == "true"
	}
	if t, err := clause.ParseTemporal(arg); err == nil {
		return t.Value
	}
	return arg
}
