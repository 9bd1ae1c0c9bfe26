package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/modelmarket-catalog/internal/pricing"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check every catalog record for malformed pricing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			records := a.client.All()
			bad := 0
			for _, m := range records {
				if err := pricing.ValidatePricing(m.Pricing); err != nil {
					bad++
					fmt.Fprintf(out, "%d %s:\n  %v\n", m.ID, m.Name, err)
				}
			}
			if bad > 0 {
				return fmt.Errorf("%d of %d records have malformed pricing", bad, len(records))
			}
			_, err := fmt.Fprintf(out, "%d records ok\n", len(records))
			return err
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [FILE]",
		Short: "Write a backup of the catalog to FILE or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.client.Export()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				_, err = cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return fmt.Errorf("failed to write backup: %w", err)
			}
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the stored catalog with a backup made by export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read backup: %w", err)
			}
			if err := a.client.Import(data); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d records\n", len(a.client.All()))
			return err
		},
	}
}
