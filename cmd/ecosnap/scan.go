package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ecosnap/ecosnap/internal/capture"
	"github.com/ecosnap/ecosnap/internal/gateway"
	"github.com/ecosnap/ecosnap/internal/vision"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func scanCmd() *cobra.Command {
	var noSubmit bool

	cmd := &cobra.Command{
		Use:   "scan <image-file>",
		Short: "Classify an image and store the result",
		Long: `Reads an image (use "-" for stdin), classifies it through the vision
API, and submits the result to the backend under your email.

A failed classification persists nothing; there is no partial record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := requireEmail()
			if err != nil {
				return err
			}

			apiKey := viper.GetString("openai.api_key")
			if apiKey == "" {
				return fmt.Errorf("OPENAI_API_KEY is required for scanning")
			}

			data, err := capture.FromFile(args[0])
			if err != nil {
				return err
			}

			encoded, err := capture.EncodeDataURI(data)
			if err != nil {
				return err
			}

			client, err := vision.NewClient(vision.Config{APIKey: apiKey})
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			fmt.Println("Analyzing image...")
			result, err := client.Classify(ctx, encoded)
			if err != nil {
				return err
			}

			verdict := "Not Recyclable"
			if result.Recyclable {
				verdict = "Recyclable"
			}
			fmt.Printf("%s — %s\n", result.Item, verdict)
			if len(result.Materials) > 0 {
				names := make([]string, len(result.Materials))
				for i, m := range result.Materials {
					names[i] = m.Material
				}
				fmt.Printf("Materials: %s\n", strings.Join(names, ", "))
			}
			fmt.Println(result.Description)
			fmt.Printf("Points: %d\n", result.Points)

			if noSubmit {
				return nil
			}

			backend, err := gateway.NewClient(viper.GetString("backend.url"), nil)
			if err != nil {
				return err
			}
			if _, err := backend.Submit(ctx, gateway.NewSubmission(email, encoded, result)); err != nil {
				return fmt.Errorf("classification succeeded but saving failed: %w", err)
			}
			fmt.Println("Saved.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSubmit, "no-submit", false, "classify only, do not store the result")
	return cmd
}
