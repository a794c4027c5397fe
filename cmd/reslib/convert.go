package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/maja42/resourcelib"
	"github.com/maja42/resourcelib/pack"
)

var (
	convertType   string
	convertPack   string
	convertOutDir string
)

func init() {
	convertCmd.Flags().StringVarP(&convertType, "type", "t", "", "resource type of the input files (eg. TEMP)")
	convertCmd.Flags().StringVar(&convertPack, "pack", "", "read resources from this pack; arguments are resource names (default: all)")
	convertCmd.Flags().StringVarP(&convertOutDir, "out", "o", "", "output directory (default: next to the input, or . for packs)")
}

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert binary resources to JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		var jobs []job
		if convertPack != "" {
			p, err := pack.Open(convertPack)
			if err != nil {
				return err
			}
			defer p.Close()
			if jobs, err = packConvertJobs(p, args, convertType, convertOutDir); err != nil {
				return err
			}
		} else {
			if convertType == "" {
				return fmt.Errorf("--type is required when converting files")
			}
			if len(args) == 0 {
				return fmt.Errorf("no input files")
			}
			jobs = fileJobs(args, convertType, convertOutDir, ".json")
		}

		n, err := runJobs(cmd.Context(), jobs, app.cfg.CLI.Workers, func(j job, data []byte) ([]byte, error) {
			doc, err := resourcelib.ConvertString(app.lib, j.resourceType, data)
			return []byte(doc), err
		})
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failure("converted %d of %d resources", n, len(jobs)))
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), success("converted %d resources", n))
		return nil
	},
}

// job converts a single input into a single output file.
type job struct {
	name         string
	resourceType string
	load         func() ([]byte, error)
	out          string
}

// fileJobs creates one job per input file.
// The output path is the input path with its extension replaced by ext.
func fileJobs(paths []string, resourceType, outDir, ext string) []job {
	jobs := make([]job, 0, len(paths))
	for _, path := range paths {
		jobs = append(jobs, job{
			name:         path,
			resourceType: resourceType,
			load:         func() ([]byte, error) { return os.ReadFile(path) },
			out:          outputPath(path, outDir, ext),
		})
	}
	return jobs
}

func outputPath(path, outDir, ext string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path)) + ext
	if outDir == "" {
		return base
	}
	return filepath.Join(outDir, filepath.Base(base))
}

// packConvertJobs creates one job per named pack resource, or for all of them.
// An explicit resource type overrides the types recorded in the pack.
// Outputs are named after the base name of each resource, which must be unique.
func packConvertJobs(p *pack.Pack, names []string, resourceType, outDir string) ([]job, error) {
	if len(names) == 0 {
		names = p.List()
	}
	if outDir == "" {
		outDir = "."
	}
	jobs := make([]job, 0, len(names))
	outputs := make(map[string]string, len(names))
	for _, name := range names {
		if p.Reader(name) == nil {
			return nil, fmt.Errorf("pack has no resource %q", name)
		}
		out := filepath.Join(outDir, filepath.Base(name)+".json")
		if other, dup := outputs[out]; dup {
			return nil, fmt.Errorf("resources %q and %q would both be written to %s", other, name, out)
		}
		outputs[out] = name

		typ := resourceType
		if typ == "" {
			typ = p.Type(name)
		}
		jobs = append(jobs, job{
			name:         name,
			resourceType: typ,
			load:         func() ([]byte, error) { return p.ReadResource(name) },
			out:          out,
		})
	}
	return jobs, nil
}

// runJobs runs all jobs with at most workers in parallel and returns the number of succeeded jobs.
// The first failure cancels the remaining jobs.
func runJobs(ctx context.Context, jobs []job, workers int, fn func(job, []byte) ([]byte, error)) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var done atomic.Int64
	for _, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := j.load()
			if err != nil {
				return fmt.Errorf("%s: %w", j.name, err)
			}
			result, err := fn(j, data)
			if err != nil {
				return fmt.Errorf("%s: %w", j.name, err)
			}
			if err := os.WriteFile(j.out, result, 0o644); err != nil {
				return err
			}
			logrus.WithField("type", j.resourceType).Infof("%s -> %s", j.name, j.out)
			done.Add(1)
			return nil
		})
	}
	err := g.Wait()
	return int(done.Load()), err
}
