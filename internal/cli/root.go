package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "PORTAL"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// NewRootCommand builds the portalctl command tree. Flags can also be
// supplied as PORTAL_* environment variables, e.g. PORTAL_JWT_SECRET.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "portalctl",
		Short:         "Operator tooling for the admin portal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch format := v.GetString("output"); format {
			case FormatText, FormatJSON:
				return nil
			default:
				return fmt.Errorf("unsupported output format: %s", format)
			}
		},
	}

	root.PersistentFlags().StringP("output", "o", FormatText, "output format (text|json)")
	_ = v.BindPFlag("output", root.PersistentFlags().Lookup("output"))

	root.AddCommand(
		newHashPasswordCommand(v),
		newIssueTokenCommand(v),
		newInspectTokenCommand(v),
	)
	return root
}

// Execute runs portalctl with the given arguments.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

// bindFlags binds the running command's local flags. Binding at run time
// keeps subcommands that share a flag name from shadowing each other.
func bindFlags(v *viper.Viper) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return v.BindPFlags(cmd.LocalFlags())
	}
}

func render(cmd *cobra.Command, v *viper.Viper, data any, text func(io.Writer)) error {
	out := cmd.OutOrStdout()
	if v.GetString("output") == FormatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	text(out)
	return nil
}
