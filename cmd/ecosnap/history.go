package main

import (
	"fmt"

	"github.com/ecosnap/ecosnap/internal/gateway"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show your past scans",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := requireEmail()
			if err != nil {
				return err
			}

			backend, err := gateway.NewClient(viper.GetString("backend.url"), nil)
			if err != nil {
				return err
			}

			records, err := backend.FetchForOwner(cmd.Context(), email)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No recycling data available.")
				return nil
			}

			var totalPoints, recyclable int
			for _, rec := range records {
				verdict := "not recyclable"
				if rec.APIResponse.Recyclable {
					verdict = "recyclable"
					recyclable++
				}
				totalPoints += rec.APIResponse.Points
				fmt.Printf("%-30s %-16s %3d pts\n", rec.APIResponse.Item, verdict, rec.APIResponse.Points)
			}
			fmt.Printf("\n%d scans, %d recyclable, %d points total\n", len(records), recyclable, totalPoints)
			return nil
		},
	}
}
