package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sweatlog/internal/api"
	"sweatlog/internal/auth"
)

// whoamiCmd resolves the session against the identity endpoint and prints
// the result, without starting the interactive interface. Unlike the
// interactive flow it does not open the login page on rejection.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client := api.New(cfg.APIBaseURL, logger)
		session := auth.NewSession(client, nil, logger)
		if err := session.Resolve(cmd.Context()); err != nil {
			return fmt.Errorf("not signed in: %w", err)
		}

		u := session.User()
		fmt.Printf("%s <%s>\n", u.Name, u.Email)
		if len(u.RoleIDs) > 0 {
			fmt.Printf("roles: %s\n", strings.Join(u.RoleIDs, ", "))
		}
		return nil
	},
}
