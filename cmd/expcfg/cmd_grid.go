package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matforge/expcfg/gridparam"
	"github.com/spf13/cobra"
)

var gridCmd = &cobra.Command{
	Use:   "grid 'location;name;type;series;values'",
	Short: "Parse a grid-search parameter string and print its value grid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := gridparam.Parse(args[0])
		if err != nil {
			return err
		}
		vals := p.Expand()
		parts := make([]string, len(vals))
		for i, v := range vals {
			parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		fmt.Printf("%s.%s (%s, %s): %s\n", p.Location, p.Name, p.Type, p.Series, strings.Join(parts, ", "))
		return nil
	},
}
