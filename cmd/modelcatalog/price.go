package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rshade/modelmarket-catalog/internal/catalog"
	"github.com/rshade/modelmarket-catalog/internal/pricing"
)

// resolve picks the price block of m for the app region and prints the
// header line. It returns false when no region has a usable block.
func (a *app) resolve(w io.Writer, m catalog.ModelRecord) (pricing.Resolution, bool) {
	res, ok := pricing.ResolveRegion(m.Pricing, a.region)
	if !ok {
		fmt.Fprintf(w, "%s\n%s\n", m.Name, a.display.Labels.Undetermined)
		return res, false
	}
	header := fmt.Sprintf("%s [%s]", m.Name, res.Region)
	if res.Fallback(a.region) {
		header += " " + fallbackMark + string(a.region) + " pricing unavailable"
	}
	fmt.Fprintln(w, header)
	return res, true
}

func newTableCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "table ID",
		Short: "Print the full price table of a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.record(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			res, ok := a.resolve(out, m)
			if !ok {
				return nil
			}
			table := a.display.FormatTable(res.Block, res.Region)
			if table.Empty() {
				_, err := fmt.Fprintln(out, a.display.Labels.NoPriceData)
				return err
			}
			return writeTable(out, table)
		},
	}
}

func newQuoteCmd(a *app) *cobra.Command {
	var (
		dims     []string
		quantity string
	)
	cmd := &cobra.Command{
		Use:   "quote ID",
		Short: "Quote the price of a parameter combination",
		Long: `Quote drives a selection session over the model's price block.

Each --dim takes DIMENSION=VALUE where DIMENSION is the 0-based dimension
position and VALUE is either a value index or the literal value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.record(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			res, ok := a.resolve(out, m)
			if !ok {
				return nil
			}

			session := pricing.NewCoordinator(res.Block, a.logger)
			for _, d := range dims {
				if err := applyDimension(session, d); err != nil {
					return err
				}
			}
			if quantity != "" {
				q, err := decimal.NewFromString(quantity)
				if err != nil {
					return fmt.Errorf("invalid quantity %q: %w", quantity, err)
				}
				if !session.QuantityApplies() {
					a.logger.Warn().Str("quantity", quantity).Msg("quantity ignored for fixed-price selection")
				}
				session.SetQuantity(q)
			}

			quote, err := session.CurrentQuote()
			if err != nil {
				fmt.Fprintln(out, a.display.UnavailableReason(err))
				if errors.Is(err, pricing.ErrNotInteractive) {
					return writeTable(out, a.display.FormatTable(res.Block, res.Region))
				}
				return nil
			}

			fmt.Fprintf(out, "%s: %s\n", a.display.Labels.UnitPriceHeader,
				a.display.FormatAmount(quote.UnitPrice, res.Region)+"/"+unitText(a.display, quote))
			if session.QuantityApplies() {
				fmt.Fprintf(out, "quantity: %s\n", session.Quantity())
			}
			_, err = fmt.Fprintf(out, "total: %s\n", a.display.FormatQuote(quote, res.Region))
			return err
		},
	}
	cmd.Flags().StringArrayVar(&dims, "dim", nil, "dimension choice as DIMENSION=VALUE (repeatable)")
	cmd.Flags().StringVar(&quantity, "qty", "", "quantity for unit-priced selections")
	return cmd
}

func unitText(d pricing.Display, q pricing.Quote) string {
	if q.Mode == pricing.ModeFixed {
		return d.Labels.PerCall
	}
	return q.DisplayUnit
}

// applyDimension parses DIMENSION=VALUE and applies it to the session. A
// VALUE that parses as an in-range index selects by index; anything else is
// matched against the literal values.
func applyDimension(c *pricing.Coordinator, arg string) error {
	dimText, value, ok := strings.Cut(arg, "=")
	if !ok {
		return fmt.Errorf("invalid --dim %q: want DIMENSION=VALUE", arg)
	}
	dim, err := strconv.Atoi(strings.TrimSpace(dimText))
	if err != nil || dim < 0 || dim >= c.DimensionCount() {
		return fmt.Errorf("invalid --dim %q: dimension must be 0..%d", arg, c.DimensionCount()-1)
	}
	value = strings.TrimSpace(value)
	if idx, err := strconv.Atoi(value); err == nil && idx >= 0 && idx < c.ValueCount(dim) {
		c.SetDimensionValue(dim, idx)
		return nil
	}
	if !c.SetDimensionLiteral(dim, value) {
		return fmt.Errorf("invalid --dim %q: no value %q in dimension %d", arg, value, dim)
	}
	return nil
}
