package main

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"notes/internal/note"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var (
	listJSON  bool
	filterTag string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, unbind, err := openView(cmd.Context())
		if err != nil {
			return err
		}
		defer unbind()

		var notes []note.Note
		tag := strings.ToLower(strings.TrimPrefix(filterTag, "#"))
		for _, n := range v.Notes() {
			if tag == "" || slices.Contains(n.Tags, tag) {
				notes = append(notes, n)
			}
		}

		out := cmd.OutOrStdout()
		if listJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if notes == nil {
				notes = []note.Note{}
			}
			return enc.Encode(notes)
		}
		if len(notes) == 0 {
			fmt.Fprintln(out, "No notes")
			return nil
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTEXT")
		for _, n := range notes {
			fmt.Fprintf(w, "%s\t%s\n", n.ID, n.Text)
		}
		return w.Flush()
	},
}

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Save a new note",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, unbind, err := openView(cmd.Context())
		if err != nil {
			return err
		}
		defer unbind()

		v.SetDraft(strings.Join(args, " "))
		n, err := v.Save(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Note has been saved. (%s)\n", n.ID)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id> <text>",
	Short: "Replace the text of a note",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, unbind, err := openView(cmd.Context())
		if err != nil {
			return err
		}
		defer unbind()

		v.StartEdit(args[0], "")
		v.SetEditedText(strings.Join(args[1:], " "))
		if _, err := v.SaveEdit(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Note has been edited.")
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a note",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, unbind, err := openView(cmd.Context())
		if err != nil {
			return err
		}
		defer unbind()

		if err := v.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Note has been deleted.")
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().StringVar(&filterTag, "tag", "", "Only notes with this hashtag")
	rootCmd.AddCommand(listCmd, addCmd, editCmd, rmCmd)
}
