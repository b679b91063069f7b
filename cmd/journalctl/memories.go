package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	memoriesCmd := &cobra.Command{Use: "memories", Short: "Memory operations"}

	var sortFlag string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the session user's memories",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := newClient().R()
			if sortFlag != "" {
				req.SetQueryParam("sort", sortFlag)
			}
			data, err := checkResp(req.Get("/api/memories"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	listCmd.Flags().StringVarP(&sortFlag, "sort", "s", "", "Sort order (date for newest first)")
	memoriesCmd.AddCommand(listCmd)

	var title, date, categoryID, description, imageURI string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a memory",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"title":      title,
				"date":       date,
				"categoryId": categoryID,
			}
			if description != "" {
				payload["description"] = description
			}
			if imageURI != "" {
				payload["imageUri"] = imageURI
			}
			data, err := checkResp(newClient().R().SetBody(payload).Post("/api/memories"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&title, "title", "t", "", "Memory title (required)")
	createCmd.Flags().StringVarP(&date, "date", "d", "", "Date as YYYY-MM-DD (required)")
	createCmd.Flags().StringVarP(&categoryID, "category", "c", "", "Category ID (required)")
	createCmd.Flags().StringVar(&description, "description", "", "Memory description")
	createCmd.Flags().StringVar(&imageURI, "image", "", "Image URI")
	_ = createCmd.MarkFlagRequired("title")
	_ = createCmd.MarkFlagRequired("date")
	_ = createCmd.MarkFlagRequired("category")
	memoriesCmd.AddCommand(createCmd)

	getCmd := &cobra.Command{
		Use:   "get MEMORY_ID",
		Short: "Get a memory by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := checkResp(newClient().R().Get("/api/memories/" + args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	memoriesCmd.AddCommand(getCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete MEMORY_ID",
		Short: "Delete a memory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := checkResp(newClient().R().Delete("/api/memories/" + args[0]))
			return err
		},
	}
	memoriesCmd.AddCommand(deleteCmd)

	searchCmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search memories by title, description, or date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := checkResp(newClient().R().SetQueryParam("q", args[0]).Get("/api/search"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	memoriesCmd.AddCommand(searchCmd)

	rootCmd.AddCommand(memoriesCmd)
}
