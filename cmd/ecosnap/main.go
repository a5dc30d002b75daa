package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "ecosnap",
		Short: "♻️  Snap it, sort it, score it",
		Long: `ecosnap: photograph an object, find out whether it is recyclable,
bank the points, and climb the leaderboard.`,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/ecosnap/config.yaml)")
	rootCmd.PersistentFlags().String("backend-url", "http://localhost:8081", "EcoSnap backend base URL")
	rootCmd.PersistentFlags().String("email", "", "your account email (identity for all operations)")

	_ = viper.BindPFlag("backend.url", rootCmd.PersistentFlags().Lookup("backend-url"))
	_ = viper.BindPFlag("user.email", rootCmd.PersistentFlags().Lookup("email"))

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(leaderboardCmd())
	rootCmd.AddCommand(achievementsCmd())
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home + "/.config/ecosnap")
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetEnvPrefix("ECOSNAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("openai.api_key", "OPENAI_API_KEY")

	// Config file is optional; flags and env are enough.
	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// requireEmail resolves the caller's identity once; commands thread it
// explicitly instead of re-deriving it per call.
func requireEmail() (string, error) {
	email := viper.GetString("user.email")
	if email == "" {
		return "", fmt.Errorf("email is required (set --email, ECOSNAP_USER_EMAIL, or user.email in the config file)")
	}
	return email, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
