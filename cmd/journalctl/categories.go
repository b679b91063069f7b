package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	categoriesCmd := &cobra.Command{Use: "categories", Short: "Category operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the session user's categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := checkResp(newClient().R().Get("/api/categories"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	categoriesCmd.AddCommand(listCmd)

	var name, color string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{"name": name, "color": color}
			data, err := checkResp(newClient().R().SetBody(payload).Post("/api/categories"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&name, "name", "n", "", "Category name (required)")
	createCmd.Flags().StringVarP(&color, "color", "c", "", "Hex color like #8B7355 (required)")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("color")
	categoriesCmd.AddCommand(createCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete CATEGORY_ID",
		Short: "Delete a category (fails while memories reference it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := checkResp(newClient().R().Delete("/api/categories/" + args[0]))
			return err
		},
	}
	categoriesCmd.AddCommand(deleteCmd)

	memoriesCmd := &cobra.Command{
		Use:   "memories CATEGORY_ID",
		Short: "List memories in a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := checkResp(newClient().R().Get("/api/categories/" + args[0] + "/memories"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	categoriesCmd.AddCommand(memoriesCmd)

	rootCmd.AddCommand(categoriesCmd)
}
