package main

import (
	"fmt"
	"sort"

	"github.com/ecosnap/ecosnap/internal/gateway"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func leaderboardCmd() *cobra.Command {
	var by string

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if by != "points" && by != "items" {
				return fmt.Errorf("--by must be points or items")
			}

			backend, err := gateway.NewClient(viper.GetString("backend.url"), nil)
			if err != nil {
				return err
			}

			entries, err := backend.Leaderboard(cmd.Context())
			if err != nil {
				return err
			}

			// Backend order is unspecified; sort by the chosen metric here.
			sort.SliceStable(entries, func(i, j int) bool {
				if by == "items" {
					return entries[i].TotalRecyclable > entries[j].TotalRecyclable
				}
				return entries[i].TotalPoints > entries[j].TotalPoints
			})

			for i, e := range entries {
				medal := "  "
				switch i {
				case 0:
					medal = "🥇"
				case 1:
					medal = "🥈"
				case 2:
					medal = "🥉"
				}
				fmt.Printf("%s %-20s %5d pts %5d items\n", medal, e.Username, e.TotalPoints, e.TotalRecyclable)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&by, "by", "points", "ranking metric: points or items")
	return cmd
}
