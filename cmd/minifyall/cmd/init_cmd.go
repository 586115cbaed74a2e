package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"minifyall/internal/config"
	"minifyall/internal/logger"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default settings file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}
		written, err := config.WriteDefault(path)
		if err != nil {
			return err
		}
		if !written {
			logger.NotifyWarn("%s already exists, leaving it untouched", path)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
