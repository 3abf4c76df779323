package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/churrascode/churrasco/internal/itemstore"
)

func itemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "List and edit the items collaborators bring",
	}
	cmd.AddCommand(itemsListCmd(), itemsAddCmd(), itemsUpdateCmd(), itemsRemoveCmd())
	return cmd
}

func itemsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			items, err := env.Items.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "Nenhum item cadastrado.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tItem\tQtd\tUnidade\tColaborador\tObservações")
			for i, it := range items {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\n", i+1, it.Name, it.Quantity, it.Unit, it.CollaboratorName, it.Notes)
			}
			return tw.Flush()
		},
	}
}

func itemsAddCmd() *cobra.Command {
	var (
		name     string
		quantity int
		unit     string
		notes    string
	)
	cmd := &cobra.Command{
		Use:   "add <collaborator-id> <item>",
		Short: "Add an item for a collaborator",
		Long: `Add an item for a collaborator. The collaborator name is taken from the
payment roster unless --name is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			id := strings.TrimSpace(args[0])
			if name == "" {
				names := collaboratorNames(cmd, env)
				found, ok := names[id]
				if !ok {
					return fmt.Errorf("collaborator %s not in the payment roster (use --name)", id)
				}
				name = found
			}

			idx, err := env.Items.AddItem(id, name, args[1], quantity, unit, notes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Item #%d '%s' cadastrado para %s\n", idx+1, strings.TrimSpace(args[1]), name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "collaborator name (default from the roster)")
	cmd.Flags().IntVarP(&quantity, "qty", "q", 1, "quantity")
	cmd.Flags().StringVarP(&unit, "unit", "u", "", "unit, e.g. kg or \"barril 50L\"")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "notes")
	return cmd
}

func itemsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <number>",
		Short: "Change fields of an item",
		Long:  "Change fields of an item. Only the flags given are changed; numbers are as shown by 'items list'.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseItemNumber(args[0])
			if err != nil {
				return err
			}

			env, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			items, err := env.Items.List()
			if err != nil {
				return err
			}
			if idx >= len(items) {
				return &itemstore.IndexOutOfRangeError{Index: idx, Len: len(items)}
			}

			it := items[idx]
			flags := cmd.Flags()
			if flags.Changed("item") {
				it.Name, _ = flags.GetString("item")
			}
			if flags.Changed("qty") {
				it.Quantity, _ = flags.GetInt("qty")
			}
			if flags.Changed("unit") {
				it.Unit, _ = flags.GetString("unit")
			}
			if flags.Changed("notes") {
				it.Notes, _ = flags.GetString("notes")
			}
			if flags.Changed("collaborator") {
				it.CollaboratorID, _ = flags.GetString("collaborator")
				it.CollaboratorName = displayName(collaboratorNames(cmd, env), it.CollaboratorID)
			}

			if err := env.Items.UpdateItem(idx, it); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Item #%d '%s' atualizado\n", idx+1, strings.TrimSpace(it.Name))
			return nil
		},
	}
	cmd.Flags().String("item", "", "item name")
	cmd.Flags().IntP("qty", "q", 1, "quantity")
	cmd.Flags().StringP("unit", "u", "", "unit")
	cmd.Flags().StringP("notes", "n", "", "notes")
	cmd.Flags().String("collaborator", "", "move the item to another collaborator id")
	return cmd
}

func itemsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <number>",
		Aliases: []string{"delete"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseItemNumber(args[0])
			if err != nil {
				return err
			}

			env, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			items, err := env.Items.List()
			if err != nil {
				return err
			}
			if err := env.Items.DeleteItem(idx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Item '%s' excluído\n", items[idx].Name)
			return nil
		},
	}
}

// parseItemNumber converts the 1-based number shown by 'items list' to an index.
func parseItemNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid item number %q", s)
	}
	return n - 1, nil
}

func extrasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extras",
		Short: "Show or set extra guests per collaborator",
	}
	cmd.AddCommand(extrasShowCmd(), extrasSetCmd())
	return cmd
}

func extrasShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show extra guests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			doc, err := env.Items.Load()
			if err != nil {
				return err
			}
			names := collaboratorNames(cmd, env)

			ids := make([]string, 0, len(doc.ExtraGuests))
			for id, n := range doc.ExtraGuests {
				if n > 0 {
					ids = append(ids, id)
				}
			}
			sort.Strings(ids)

			out := cmd.OutOrStdout()
			if len(ids) == 0 {
				fmt.Fprintln(out, "Nenhuma pessoa extra.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, id := range ids {
				fmt.Fprintf(tw, "%s\t%s\t+%d\n", id, displayName(names, id), doc.ExtraGuests[id])
			}
			fmt.Fprintf(tw, "\tTotal\t%d\n", doc.ExtraGuestsTotal())
			return tw.Flush()
		},
	}
}

func extrasSetCmd() *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "set ID=N...",
		Short: "Set extra guests for collaborators",
		Long: `Set extra guests for collaborators. Ids not named keep their count
unless --replace is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := parseExtras(args)
			if err != nil {
				return err
			}

			env, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			doc, err := env.Items.Load()
			if err != nil {
				return err
			}
			merged := itemstore.ExtraGuests{}
			if !replace {
				for id, n := range doc.ExtraGuests {
					merged[id] = n
				}
			}
			for id, n := range updates {
				merged[id] = n
			}

			if err := env.Items.SetExtraGuests(merged); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Pessoas extras salvas (total %d)\n", itemstore.Document{ExtraGuests: merged}.ExtraGuestsTotal())
			return nil
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "drop counts for ids not named")
	return cmd
}

// parseExtras parses ID=N arguments.
func parseExtras(args []string) (itemstore.ExtraGuests, error) {
	out := make(itemstore.ExtraGuests, len(args))
	for _, arg := range args {
		id, value, ok := strings.Cut(arg, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("expected ID=N, got %q", arg)
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid count in %q", arg)
		}
		if n < 0 {
			return nil, fmt.Errorf("%q: %w", arg, itemstore.ErrNegativeGuests)
		}
		out[id] = n
	}
	return out, nil
}
