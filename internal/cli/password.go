package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spec-kit/admin-portal/internal/auth"
)

func newHashPasswordCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hash-password <password>",
		Short:   "Hash a password for the admin_users table",
		Args:    cobra.ExactArgs(1),
		PreRunE: bindFlags(v),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return errors.New("password must not be empty")
			}
			hash, err := auth.HashPassword(args[0], v.GetInt("cost"))
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			return render(cmd, v, map[string]string{"hash": hash}, func(w io.Writer) {
				fmt.Fprintln(w, hash)
			})
		},
	}
	cmd.Flags().Int("cost", 12, "bcrypt cost")
	return cmd
}
