package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/maja42/resourcelib"
	"github.com/maja42/resourcelib/pack"
)

var packOut string

func init() {
	packBuildCmd.Flags().StringVarP(&packOut, "out", "o", "", "path of the resulting pack (required)")
	_ = packBuildCmd.MarkFlagRequired("out")

	packCmd.AddCommand(packBuildCmd)
	packCmd.AddCommand(packListCmd)
}

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Build and inspect resource packs",
}

var packBuildCmd = &cobra.Command{
	Use:   "build name=TYPE:path...",
	Short: "Bundle resource files into a pack",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := make([]pack.FileEntry, 0, len(args))
		for _, arg := range args {
			fe, err := parseFileEntry(arg)
			if err != nil {
				return err
			}
			files = append(files, fe)
		}

		if err := buildPack(packOut, files); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), success("packed %d resources into %s", len(files), packOut))
		return nil
	},
}

// buildPack writes a new pack file. The file is removed if anything fails.
func buildPack(path string, files []pack.FileEntry) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	if err := pack.WriteFiles(out, files, logrus.StandardLogger()); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close output file: %w", err)
	}
	return nil
}

var packListCmd = &cobra.Command{
	Use:   "list pack",
	Short: "List the resources of a pack",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pack.Open(args[0])
		if err != nil {
			return err
		}
		defer p.Close()
		listPack(cmd.OutOrStdout(), p, app.lib)
		return nil
	},
}

// parseFileEntry parses name=TYPE:path.
func parseFileEntry(arg string) (pack.FileEntry, error) {
	name, rest, ok := strings.Cut(arg, "=")
	if !ok || name == "" {
		return pack.FileEntry{}, fmt.Errorf("invalid resource %q (expected name=TYPE:path)", arg)
	}
	typ, path, ok := strings.Cut(rest, ":")
	if !ok || typ == "" || path == "" {
		return pack.FileEntry{}, fmt.Errorf("invalid resource %q (expected name=TYPE:path)", arg)
	}
	return pack.FileEntry{Name: name, Type: typ, Path: path}, nil
}

func listPack(out io.Writer, p *pack.Pack, lib *resourcelib.Library) {
	fmt.Fprintln(out, heading("%d resources", p.Count()))
	for _, name := range p.List() {
		typ := p.Type(name)
		if !lib.IsResourceTypeSupported(typ) {
			typ = failure("%s", typ)
		}
		fmt.Fprintf(out, "  %-24s %s %s\n", name, typ, faint("%d bytes", p.Size(name)))
	}
}
