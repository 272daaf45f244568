package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/service"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Manage categories",
		Long:    `List, add, update, and delete the categories transactions are filed under.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			var categories []model.Category
			if kind == "" {
				categories, err = a.repos.Categories.List(ctx)
			} else {
				k := model.CategoryKind(kind)
				if !k.Valid() {
					return common.NewUserError(fmt.Sprintf("unknown kind %q (want expense, income, or both)", kind), common.ErrInvalidInput)
				}
				categories, err = a.repos.Categories.ListByKind(ctx, k)
			}
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			return a.out.Categories(categories)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "only list categories of this kind (expense, income, both)")

	return cmd
}

func addCategoryCmd() *cobra.Command {
	var (
		color string
		emoji string
		kind  string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			category, err := a.repos.Categories.Add(cmd.Context(), model.CategoryInput{
				Name:  args[0],
				Color: color,
				Emoji: emoji,
				Kind:  model.CategoryKind(kind),
			})
			if err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}

			a.success("Created category %q", category.Name)
			return a.out.Category(category)
		},
	}

	cmd.Flags().StringVar(&color, "color", "#6B7280", "display color as a hex string")
	cmd.Flags().StringVar(&emoji, "emoji", "", "display emoji")
	cmd.Flags().StringVar(&kind, "kind", string(model.CategoryKindExpense), "which flows may use the category (expense, income, both)")

	return cmd
}

func updateCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category",
		Long:  `Change the name, color, emoji, or kind of a category. Only the given flags are changed.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := model.CategoryPatch{
				Name:  changedString(cmd, "name"),
				Color: changedString(cmd, "color"),
				Emoji: changedString(cmd, "emoji"),
			}
			if k := changedString(cmd, "kind"); k != nil {
				kind := model.CategoryKind(*k)
				patch.Kind = &kind
			}
			if patch.IsEmpty() {
				return common.NewUserError("nothing to update: pass --name, --color, --emoji, or --kind", common.ErrInvalidInput)
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			category, err := a.repos.Categories.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return fmt.Errorf("failed to update category: %w", err)
			}

			a.success("Updated category %q", category.Name)
			return a.out.Category(category)
		},
	}

	cmd.Flags().String("name", "", "new category name")
	cmd.Flags().String("color", "", "new display color")
	cmd.Flags().String("emoji", "", "new display emoji")
	cmd.Flags().String("kind", "", "new kind (expense, income, both)")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long: `Delete a category. Transactions filed under it are kept and keep
pointing at the deleted category; reports show them as "Unknown".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			category, err := a.repos.Categories.Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get category: %w", err)
			}

			refs, err := a.repos.Transactions.List(ctx, service.TransactionFilter{CategoryID: category.ID})
			if err != nil {
				return fmt.Errorf("failed to check category usage: %w", err)
			}
			if len(refs) > 0 {
				a.warn("%d transaction(s) are filed under %q and will show as Unknown", len(refs), category.Name)
			}

			if !yes {
				ok, err := cli.Confirm(ctx, os.Stdin, cmd.ErrOrStderr(), fmt.Sprintf("Delete category %q?", category.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.ErrOrStderr(), cli.SubtleStyle.Render("Canceled."))
					return nil
				}
			}

			if err := a.repos.Categories.Delete(ctx, category.ID); err != nil {
				return fmt.Errorf("failed to delete category: %w", err)
			}

			a.success("Deleted category %q", category.Name)
			if a.jsonOutput() {
				return cli.RenderJSON(cmd.OutOrStdout(), map[string]string{"deleted": category.ID})
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

// changedString returns the flag's value if it was set on the command line.
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}
