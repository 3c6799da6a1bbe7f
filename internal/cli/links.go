package cli

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newLinksCmd(e *env) *cobra.Command {
	linksCmd := &cobra.Command{Use: "links", Short: "Manage saved links"}

	var jsonOutput bool
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved links",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := e.linkManager(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			list := m.Links()
			if jsonOutput {
				data, err := json.MarshalIndent(list, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding links: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			if len(list) == 0 {
				fmt.Fprintln(out, "no links saved")
				return nil
			}
			for _, link := range list {
				fmt.Fprintf(out, "%s\t%s\n", link.ID, link.URL)
			}
			return nil
		},
	}
	listCmd.Flags().BoolVar(&jsonOutput, "json", false, "output JSON")

	addCmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Save a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := e.linkManager(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			link, ok, err := m.Add(args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to add")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s\t%s\n", link.ID, link.URL)
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a saved link",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := e.linkManager(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			removed, err := m.Delete(args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "no link with id %s\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the link list file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, fs, err := e.linkManager(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), fs.Path())
			return nil
		},
	}

	linksCmd.AddCommand(listCmd, addCmd, removeCmd, pathCmd)
	return linksCmd
}
