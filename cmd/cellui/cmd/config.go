package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved project configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		r, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		var data []byte
		switch configFormat {
		case "yaml", "yml":
			data, err = yaml.Marshal(r)
		case "json":
			data, err = json.MarshalIndent(r, "", "  ")
			data = append(data, '\n')
		default:
			return fmt.Errorf("unknown format %q (want yaml or json)", configFormat)
		}
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configCmd.Flags().StringVarP(&configFormat, "format", "o", "yaml", "output format: yaml or json")
}
