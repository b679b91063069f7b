package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	authCmd := &cobra.Command{Use: "auth", Short: "Session operations"}

	// login
	var email, password string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and activate a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{"email": email, "password": password}
			data, err := checkResp(newClient().R().SetBody(payload).Post("/api/auth/login"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	loginCmd.Flags().StringVarP(&email, "email", "e", "", "Account email (required)")
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "Account password (required)")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
	authCmd.AddCommand(loginCmd)

	// signup
	var name, signupEmail, signupPassword string
	signupCmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and activate a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{"name": name, "email": signupEmail, "password": signupPassword}
			data, err := checkResp(newClient().R().SetBody(payload).Post("/api/auth/signup"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	signupCmd.Flags().StringVarP(&name, "name", "n", "", "Display name (required)")
	signupCmd.Flags().StringVarP(&signupEmail, "email", "e", "", "Account email (required)")
	signupCmd.Flags().StringVarP(&signupPassword, "password", "p", "", "Account password (required)")
	_ = signupCmd.MarkFlagRequired("name")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("password")
	authCmd.AddCommand(signupCmd)

	// logout
	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "End the active session",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := checkResp(newClient().R().Post("/api/auth/logout"))
			return err
		},
	}
	authCmd.AddCommand(logoutCmd)

	// session
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Show the active session user",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := checkResp(newClient().R().Get("/api/auth/session"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	authCmd.AddCommand(sessionCmd)

	rootCmd.AddCommand(authCmd)
}
