package main

import (
	"fmt"

	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
)

const quantityFlag = "quantity"

var seedProductsFlags = map[string]cobraflags.Flag{
	quantityFlag: &cobraflags.IntFlag{
		Name:  quantityFlag,
		Value: dto.DefaultSeedQuantity,
		Usage: "Number of synthetic products to insert",
	},
}

func newSeedCommand() *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed [categories|products]",
		Short: "Insert demo catalog data",
	}
	seedCmd.AddCommand(newSeedCategoriesCommand())
	seedCmd.AddCommand(newSeedProductsCommand())
	return seedCmd
}

func newSeedCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Insert the fixed category set when no categories exist",
		RunE:  seedCategoriesCommand,
	}
}

func newSeedProductsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Insert synthetic products across the existing categories",
		RunE:  seedProductsCommand,
	}
	cobraflags.RegisterMap(cmd, seedProductsFlags)
	return cmd
}

func seedCategoriesCommand(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	created, err := a.categories.SeedCategories(cmd.Context())
	if err != nil {
		return err
	}
	if len(created) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "categories already present, nothing to do")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "inserted %d categories\n", len(created))
	return nil
}

func seedProductsCommand(cmd *cobra.Command, _ []string) error {
	quantity := seedProductsFlags[quantityFlag].GetInt()
	if err := dto.ValidateSeedQuantity(quantity); err != nil {
		return fmt.Errorf("--%s: %w", quantityFlag, err)
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	created, err := a.products.SeedProducts(cmd.Context(), quantity)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "inserted %d of %d products\n", len(created), quantity)
	return nil
}
