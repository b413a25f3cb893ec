package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yigit/studentrecords/internal/app/models/dto/enums"
	"github.com/yigit/studentrecords/internal/bootstrap"
)

func newTokenCmd(root *rootOptions) *cobra.Command {
	var (
		subject string
		role    string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for the write API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(root)
			if err != nil {
				return err
			}

			token, expiresIn, err := bootstrap.NewJWTService(cfg).GenerateToken(subject, enums.RoleType(role))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires in %ds\n", expiresIn)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Who the token is issued to (required)")
	cmd.Flags().StringVar(&role, "role", string(enums.RoleRegistrar), "Role claim: registrar or viewer")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
