package main

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/modelmarket-catalog/internal/catalog"
	"github.com/rshade/modelmarket-catalog/internal/config"
	"github.com/rshade/modelmarket-catalog/internal/pricing"
)

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	cfg     config.Config
	logger  zerolog.Logger
	client  *catalog.Client
	display pricing.Display
	region  pricing.Region
}

type rootOptions struct {
	configPath string
	region     string
	host       string
	catalog    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}

	root := &cobra.Command{
		Use:   "modelcatalog",
		Short: "Browse the model marketplace catalog and its prices",
		Long: `modelcatalog lists marketplace models with their starting prices,
renders full price tables and quotes a price for a chosen parameter combination.

Examples:
  modelcatalog cards --category 最近上新
  modelcatalog search video
  modelcatalog table 198600000004
  modelcatalog quote 198600000004 --dim 0=1080p --dim 1=10s
  modelcatalog quote 198600000002 --dim 0=1 --qty 4`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default is ./"+config.DefaultFile+" when present)")
	flags.StringVar(&opts.region, "region", "", "preferred pricing region (domestic, international)")
	flags.StringVar(&opts.host, "host", "", "derive the pricing region from the serving host name")
	flags.StringVar(&opts.catalog, "catalog", "", "catalog store directory (default keeps the catalog in memory)")

	root.AddCommand(
		newCardsCmd(a),
		newSearchCmd(a),
		newTableCmd(a),
		newQuoteCmd(a),
		newValidateCmd(a),
		newExportCmd(a),
		newImportCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, opts *rootOptions) error {
	bootstrap := newLogger(config.LogConfig{Level: "warn"}, cmd.ErrOrStderr())
	cfg, err := config.Load(opts.configPath, bootstrap)
	if err != nil {
		return err
	}
	if opts.catalog != "" {
		cfg.Catalog = opts.catalog
	}

	a.cfg = cfg
	a.logger = newLogger(cfg.Log, cmd.ErrOrStderr())
	a.display = cfg.Display()

	switch {
	case opts.region != "":
		a.region = pricing.Region(opts.region)
		if !a.region.Valid() {
			return fmt.Errorf("unknown region %q", opts.region)
		}
	case opts.host != "":
		a.region = config.RegionForHost(opts.host)
	default:
		a.region = cfg.Region
	}

	var store catalog.Store = catalog.NewMemoryStore()
	if cfg.Catalog != "" {
		fs, err := catalog.NewFileStore(cfg.Catalog)
		if err != nil {
			return err
		}
		store = fs
	}
	a.client, err = catalog.NewClient(store, a.logger)
	if err != nil {
		return err
	}
	a.logger.Debug().
		Str("region", string(a.region)).
		Str("catalog_source", a.client.Source()).
		Msg("catalog ready")
	return nil
}

// record looks up an active or inactive model by its id argument.
func (a *app) record(arg string) (catalog.ModelRecord, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return catalog.ModelRecord{}, fmt.Errorf("invalid model id %q", arg)
	}
	m, ok := a.client.Get(id)
	if !ok {
		return catalog.ModelRecord{}, fmt.Errorf("model %d not found", id)
	}
	return m, nil
}
