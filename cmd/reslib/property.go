package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/maja42/resourcelib"
)

var propertyHash bool

func init() {
	propertyCmd.Flags().BoolVar(&propertyHash, "hash", false, "treat arguments as names and print their ids")
}

var propertyCmd = &cobra.Command{
	Use:   "property ids...",
	Short: "Look up property names by their CRC32 id",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if propertyHash {
			for _, name := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", resourcelib.PropertyID(name), name)
			}
			return nil
		}
		return lookupProperties(cmd.OutOrStdout(), app.lib, args)
	},
}

// lookupProperties prints one line per id. Ids may be decimal or 0x-prefixed hex.
func lookupProperties(out io.Writer, lib *resourcelib.Library, ids []string) error {
	for _, s := range ids {
		id, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return fmt.Errorf("invalid property id %q: %w", s, err)
		}
		name := lib.PropertyName(uint32(id))
		if name.IsNil() {
			fmt.Fprintf(out, "%d\t%s\n", id, faint("<unknown>"))
			continue
		}
		fmt.Fprintf(out, "%d\t%s\n", id, name.String())
	}
	return nil
}
