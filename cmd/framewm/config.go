package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the framewm configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := loadConfig(opts)
			if err != nil {
				return err
			}
			source := res.File
			if source == "" {
				source = "defaults"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config: ok (%s)\n", source)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := loadConfig(opts)
			if err != nil {
				return err
			}
			data, err := res.Config.Marshal()
			if err != nil {
				return err
			}
			if res.File != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# source: %s\n", res.File)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	return configCmd
}
