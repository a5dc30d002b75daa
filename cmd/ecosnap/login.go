package main

import (
	"fmt"

	"github.com/ecosnap/ecosnap/internal/gateway"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func loginCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Register or look up your account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := requireEmail()
			if err != nil {
				return err
			}

			backend, err := gateway.NewClient(viper.GetString("backend.url"), nil)
			if err != nil {
				return err
			}

			status, user, err := backend.Login(cmd.Context(), email, name)
			if err != nil {
				return err
			}

			if status == "new" {
				fmt.Printf("Welcome, %s! Your username is %q.\n", user.Name, user.Username)
			} else {
				fmt.Printf("Welcome back, %s (%s).\n", user.Name, user.Username)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (used on first login)")
	return cmd
}
