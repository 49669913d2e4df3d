package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/apexhome/products-manager/app"
	"github.com/apexhome/products-manager/config"
	"github.com/apexhome/products-manager/internal/registry"
	"github.com/apexhome/products-manager/internal/store"
	"github.com/apexhome/products-manager/log"
	"github.com/spf13/cobra"
)

type seedFlags struct {
	file    string
	derive  bool
	confirm bool
	dryRun  bool
}

func seedCodesCmd() *cobra.Command {
	var f seedFlags
	cmd := &cobra.Command{
		Use:   "seed-codes",
		Short: "Replace every supplier and model code",
		Long: "Replaces both code registries with the codes of a JSON file (a registry backup is accepted) " +
			"or with codes derived from vendor and product names. Sequence counters are kept.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seedCodes(cmd.Context(), cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "JSON file with suppliers and models")
	cmd.Flags().BoolVar(&f.derive, "derive", false, "derive codes from vendor and product names")
	cmd.Flags().BoolVar(&f.confirm, "confirm", false, "confirm that every existing code is deleted")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "print the codes without writing them")
	return cmd
}

func readSnapshot(path string) (*registry.Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s registry.Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("can't parse %s: %w", path, err)
	}
	return &s, nil
}

func (f seedFlags) request() (*registry.ReseedRequest, error) {
	if (f.file == "") == !f.derive {
		return nil, fmt.Errorf("exactly one of --file and --derive is required")
	}
	req := &registry.ReseedRequest{Derive: f.derive, Confirm: f.confirm}
	if f.file != "" {
		s, err := readSnapshot(f.file)
		if err != nil {
			return nil, err
		}
		req.Seed = s
	}
	return req, nil
}

func seedCodes(ctx context.Context, out io.Writer, f seedFlags) error {
	req, err := f.request()
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("cannot load a config %v", err.Error())
	}
	slog.SetDefault(log.New(os.Stderr, cfg.Logger))

	db, err := store.New(ctx, cfg.DB)
	if err != nil {
		return err
	}
	a := app.New(cfg)
	defer a.Close()
	svc, err := a.Build(ctx, db)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if f.dryRun {
		seed, err := svc.Registry.PreviewSeed(ctx, req)
		if err != nil {
			return err
		}
		return enc.Encode(registry.SnapshotOf(seed))
	}
	res, err := svc.Registry.Reseed(ctx, req)
	if err != nil {
		return err
	}
	return enc.Encode(res)
}
