package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/modelmarket-catalog/internal/catalog"
)

func newCardsCmd(a *app) *cobra.Command {
	var (
		category string
		page     int
	)
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "List model cards with starting prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if category != "" {
				records := a.client.Filter(catalog.Filter{CategoryTitle: category})
				return writeCards(out, a.paginate(records, page))
			}

			for _, cat := range a.client.Categories() {
				fmt.Fprintf(out, "== %s ==\n", cat.Title)
				if err := writeCards(out, a.paginate(cat.Records, page)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list models in this category title")
	cmd.Flags().IntVar(&page, "page", 1, "page number (1-based)")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var (
		page   int
		filter catalog.Filter
	)
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search models by name, description, category or task type",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter.Search = strings.Join(args, " ")
			return writeCards(cmd.OutOrStdout(), a.paginate(a.client.Filter(filter), page))
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number (1-based)")
	cmd.Flags().StringVar(&filter.TaskType, "task-type", "", "only models with this task type")
	cmd.Flags().StringVar(&filter.ModelType, "model-type", "", "only own or thirdParty models")
	cmd.Flags().StringVar(&filter.ChannelID, "channel", "", "only models from this channel id")
	return cmd
}

func (a *app) paginate(records []catalog.ModelRecord, page int) catalog.Page[catalog.Card] {
	cards := catalog.NewCards(a.display, records, a.region)
	return catalog.Paginate(cards, page, a.cfg.PageSize)
}
