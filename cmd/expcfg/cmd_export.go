package main

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/matforge/expcfg"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportCmd = &cobra.Command{
	Use:   "export -s schema.conf --format json|yaml file.conf",
	Short: "Validate one document and print its typed configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sch, err := loadSchema()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		doc, err := expcfg.ParseDocument(string(data))
		if err != nil {
			return err
		}
		cfg, iss := expcfg.Validate(sch, doc)
		if cfg == nil {
			for _, it := range iss {
				fmt.Fprintf(os.Stderr, "  %s: %s at %s\n", it.Code, it.Message, it.Path)
			}
			return fmt.Errorf("%s failed validation", args[0])
		}

		switch flagFormat {
		case "yaml":
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
		case "json", "text":
			out, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		default:
			return fmt.Errorf("unknown format %q", flagFormat)
		}
		return nil
	},
}
