package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jpl-au/rbloom"
	"github.com/spf13/cobra"
)

// maxLine bounds a single item read from stdin.
const maxLine = 1 << 20

func addCmd(a *app) *cobra.Command {
	var fromStdin bool
	cmd := &cobra.Command{
		Use:   "add [ITEM...]",
		Short: "Add items to the filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !fromStdin {
				return errors.New("no items: pass them as arguments or use --stdin")
			}
			ctx := cmd.Context()
			f, closeStore, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			b := newBatcher(f)
			for _, item := range args {
				if err := b.push(ctx, []byte(item)); err != nil {
					return err
				}
			}
			if fromStdin {
				sc := bufio.NewScanner(cmd.InOrStdin())
				sc.Buffer(make([]byte, 64*1024), maxLine)
				for sc.Scan() {
					if len(sc.Bytes()) == 0 {
						continue
					}
					if err := b.push(ctx, slices.Clone(sc.Bytes())); err != nil {
						return err
					}
				}
				if err := sc.Err(); err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}
			if err := b.flush(ctx); err != nil {
				return err
			}

			a.log.Info("items added", "bucket", f.Bucket(), "items", b.added)
			return a.emit(cmd.OutOrStdout(), added{Bucket: f.Bucket(), Items: b.added}, func(w io.Writer) {
				fmt.Fprintf(w, "%s %d items to %s\n", green("added"), b.added, f.Bucket())
			})
		},
	}
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read newline-separated items from stdin")
	return cmd
}

// batcher groups items into Add calls of at most the filter's batch limit.
type batcher struct {
	f     *rbloom.Filter
	limit int
	batch [][]byte
	added int
}

func newBatcher(f *rbloom.Filter) *batcher {
	limit := int(f.Config().BatchLimit)
	return &batcher{f: f, limit: limit, batch: make([][]byte, 0, limit)}
}

func (b *batcher) push(ctx context.Context, item []byte) error {
	b.batch = append(b.batch, item)
	if len(b.batch) >= b.limit {
		return b.flush(ctx)
	}
	return nil
}

func (b *batcher) flush(ctx context.Context) error {
	if len(b.batch) == 0 {
		return nil
	}
	if err := b.f.Add(ctx, b.batch...); err != nil {
		return err
	}
	b.added += len(b.batch)
	b.batch = b.batch[:0]
	return nil
}

func hasCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "has ITEM",
		Short: "Test whether an item may be in the filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, closeStore, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			ok, err := f.HasString(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), membership{Item: args[0], Present: ok}, func(w io.Writer) {
				if ok {
					fmt.Fprintln(w, green("present"))
				} else {
					fmt.Fprintln(w, yellow("absent"))
				}
			})
		},
	}
}

func hasAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hasadd ITEM",
		Short: "Test for an item and add it in one step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, closeStore, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			ok, err := f.HasAddString(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), insertion{Item: args[0], Existing: ok}, func(w io.Writer) {
				if ok {
					fmt.Fprintln(w, yellow("existing"))
				} else {
					fmt.Fprintln(w, green("added"))
				}
			})
		},
	}
}

func offsetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "offsets ITEM",
		Short: "Print the bit offsets an item maps to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.offline()
			if err != nil {
				return err
			}
			c := f.Config()
			item := []byte(args[0])

			report := offsetReport{Item: args[0], BitSpace: c.BitSpace, Offsets: f.Offsets(item)}
			for _, name := range c.Hashes {
				fn, _ := rbloom.LookupHash(name)
				report.Hashes = append(report.Hashes, hashOffset{Name: name, Offset: fn(item, c.BitSpace)})
			}
			return a.emit(cmd.OutOrStdout(), report, func(w io.Writer) {
				for _, h := range report.Hashes {
					fmt.Fprintf(w, "%-10s %d\n", h.Name, h.Offset)
				}
				fmt.Fprintf(w, "%-10s %v\n", bold("set"), report.Offsets)
			})
		},
	}
}

func planCmd(a *app) *cobra.Command {
	var members, fpp float64
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Size a filter for a member count and false positive rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := rbloom.Calibrate(members, fpp)
			if err != nil {
				return err
			}
			report := planReport{
				Members:           members,
				FalsePositiveRate: fpp,
				BitArraySize:      c.BitArraySize,
				HashFunctionCount: c.HashFunctionCount,
				BitSpace:          c.BitSpace(),
				Bytes:             c.Bytes(),
			}
			return a.emit(cmd.OutOrStdout(), report, func(w io.Writer) {
				fmt.Fprintf(w, "bits:       %.0f\n", report.BitArraySize)
				fmt.Fprintf(w, "hashes:     %d\n", report.HashFunctionCount)
				fmt.Fprintf(w, "bit_space:  %d\n", report.BitSpace)
				fmt.Fprintf(w, "bytes:      %d\n", report.Bytes)
			})
		},
	}
	cmd.Flags().Float64Var(&members, "members", 0, "expected number of members")
	cmd.Flags().Float64Var(&fpp, "fpp", 0.01, "target false positive rate")
	cmd.MarkFlagRequired("members")
	return cmd
}

func hashesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hashes",
		Short: "List the available hash functions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := hashList{Hashes: rbloom.HashNames(), Default: rbloom.DefaultHashes}
			return a.emit(cmd.OutOrStdout(), list, func(w io.Writer) {
				for _, name := range list.Hashes {
					if slices.Contains(list.Default, name) {
						fmt.Fprintf(w, "%s %s\n", name, bold("(default)"))
					} else {
						fmt.Fprintln(w, name)
					}
				}
			})
		},
	}
}

func benchCmd(a *app) *cobra.Command {
	var (
		count  int
		memory bool
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure throughput and false positive rate",
		Long: `Inserts random UUIDs into a scratch bucket next to the configured one,
probes the same number of fresh UUIDs, and reports throughput and the
observed false positive rate. The scratch bucket is deleted afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			ctx := cmd.Context()

			prefix := a.config.Filter.Bucket
			if prefix == "" {
				prefix = "rbloom"
			}
			c := a.config.Filter
			c.Bucket = prefix + ":bench:" + uuid.NewString()

			var store rbloom.Store = rbloom.NewMemoryStore()
			if !memory {
				rs, err := rbloom.DialRedis(ctx, a.config.Redis, rbloom.WithLogger(a.log.Zerolog()))
				if err != nil {
					return err
				}
				defer rs.Close()
				defer func() {
					if err := rs.Drop(context.WithoutCancel(ctx), c.Bucket); err != nil {
						a.log.Warn("scratch bucket not removed", "bucket", c.Bucket, "error", err)
					}
				}()
				store = rs
			}
			f, err := rbloom.New(store, c)
			if err != nil {
				return err
			}

			report, err := bench(ctx, f, count)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), report, report.text)
		},
	}
	cmd.Flags().IntVar(&count, "count", 10000, "members to insert and non-members to probe")
	cmd.Flags().BoolVar(&memory, "memory", false, "use an in-process store instead of Redis")
	return cmd
}

func bench(ctx context.Context, f *rbloom.Filter, count int) (benchReport, error) {
	c := f.Config()
	report := benchReport{
		Bucket:   f.Bucket(),
		Count:    count,
		BitSpace: c.BitSpace,
		Hashes:   len(c.Hashes),
	}

	b := newBatcher(f)
	start := time.Now()
	for range count {
		id := uuid.New()
		if err := b.push(ctx, id[:]); err != nil {
			return report, err
		}
	}
	if err := b.flush(ctx); err != nil {
		return report, err
	}
	report.AddsPerSecond = float64(count) / time.Since(start).Seconds()

	start = time.Now()
	for range count {
		id := uuid.New()
		ok, err := f.Has(ctx, id[:])
		if err != nil {
			return report, err
		}
		if ok {
			report.FalsePositives++
		}
	}
	report.ProbesPerSecond = float64(count) / time.Since(start).Seconds()
	report.FalsePositiveRate = float64(report.FalsePositives) / float64(count)
	report.ExpectedRate = rbloom.FalsePositiveRate(float64(c.BitSpace), float64(count), uint32(len(c.Hashes)))
	return report, nil
}
