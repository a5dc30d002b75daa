package main

import (
	"fmt"
	"sort"

	"github.com/ecosnap/ecosnap/internal/gateway"
	"github.com/ecosnap/ecosnap/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// scanStats aggregates one owner's scans for display.
type scanStats struct {
	Total       int
	Recyclable  int
	TotalPoints int
	Materials   map[string]int
}

// AverageScore is the mean score across all scans, 0 when there are none.
func (s scanStats) AverageScore() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.TotalPoints) / float64(s.Total)
}

// summarizeScans folds an owner's slice of the shared image feed into stats.
// Records belonging to other owners are filtered out here, client-side.
func summarizeScans(records []models.ScanRecord, owner string) scanStats {
	stats := scanStats{Materials: map[string]int{}}
	for _, rec := range records {
		if rec.Owner != owner {
			continue
		}
		stats.Total++
		stats.TotalPoints += rec.APIResponse.Points
		if rec.APIResponse.Recyclable {
			stats.Recyclable++
		}
		for _, m := range rec.APIResponse.Materials {
			if m.Material != "" {
				stats.Materials[m.Material]++
			}
		}
	}
	return stats
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Breakdown of your scans by material and recyclability",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := requireEmail()
			if err != nil {
				return err
			}

			backend, err := gateway.NewClient(viper.GetString("backend.url"), nil)
			if err != nil {
				return err
			}

			records, err := backend.AllImages(cmd.Context())
			if err != nil {
				return err
			}

			stats := summarizeScans(records, email)
			if stats.Total == 0 {
				fmt.Println("No recycling data available.")
				return nil
			}

			fmt.Printf("Scans:          %d\n", stats.Total)
			fmt.Printf("Recyclable:     %d\n", stats.Recyclable)
			fmt.Printf("Not recyclable: %d\n", stats.Total-stats.Recyclable)
			fmt.Printf("Average score:  %.1f\n", stats.AverageScore())

			if len(stats.Materials) == 0 {
				return nil
			}

			// Most common material first, ties by name.
			names := make([]string, 0, len(stats.Materials))
			for name := range stats.Materials {
				names = append(names, name)
			}
			sort.Slice(names, func(i, j int) bool {
				if stats.Materials[names[i]] != stats.Materials[names[j]] {
					return stats.Materials[names[i]] > stats.Materials[names[j]]
				}
				return names[i] < names[j]
			})

			fmt.Println("\nMaterials:")
			for _, name := range names {
				fmt.Printf("  %-20s %d\n", name, stats.Materials[name])
			}
			return nil
		},
	}
}
