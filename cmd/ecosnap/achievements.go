package main

import (
	"fmt"

	"github.com/ecosnap/ecosnap/internal/gateway"
	"github.com/ecosnap/ecosnap/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func achievementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "Show achievement progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := requireEmail()
			if err != nil {
				return err
			}

			backend, err := gateway.NewClient(viper.GetString("backend.url"), nil)
			if err != nil {
				return err
			}

			achievements, err := backend.Achievements(cmd.Context())
			if err != nil {
				return err
			}
			records, err := backend.FetchForOwner(cmd.Context(), email)
			if err != nil {
				return err
			}

			// Progress metrics: points sum over all scans, item count over
			// recyclable ones.
			var points, items int
			for _, rec := range records {
				points += rec.APIResponse.Points
				if rec.APIResponse.Recyclable {
					items++
				}
			}

			for _, a := range achievements {
				progress := points
				if a.Type == models.AchievementTypeItems {
					progress = items
				}
				status := fmt.Sprintf("%d/%d", progress, a.Goal)
				if progress >= a.Goal {
					status = "✅ done"
				}
				fmt.Printf("%-25s %-45s %s\n", a.Title, a.Description, status)
			}
			return nil
		},
	}
}
