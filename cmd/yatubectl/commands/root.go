package commands

import (
	"fmt"
	"os"

	"github.com/madina-zvezda/yatube/src/core/config"
	"github.com/madina-zvezda/yatube/src/core/database"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "yatubectl",
	Short: "Yatube administration tool",
	Long: `yatubectl manages the parts of Yatube that have no web surface.

Groups are created and removed here, the site itself only reads them.
The tool reads the same environment (.env) the server does.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.SetupEnv()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDB connects with its own handle instead of the server's global.
func openDB() (*gorm.DB, error) {
	db, err := database.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
