package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tara-vision/readmegen/internal/storage"
	"github.com/tara-vision/readmegen/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previous runs in this directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), ui.NewRenderer().HistoryTable(store.List()))
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print the README of a previous run (pick one when no id is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		var id string
		if len(args) == 1 {
			id = args[0]
		} else if id, err = selectRun(store.List()); err != nil {
			return err
		}

		run, err := store.Get(id)
		if err != nil {
			return err
		}
		raw, _ := cmd.Flags().GetBool("raw")
		return showRun(cmd.OutOrStdout(), run, raw)
	},
}

func init() {
	historyShowCmd.Flags().Bool("raw", false, "print markdown without terminal rendering")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func openStore() (*storage.Manager, error) {
	workingDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("working directory: %w", err)
	}
	return storage.NewManager(afero.NewOsFs(), workingDir)
}

func showRun(w io.Writer, run *storage.Run, raw bool) error {
	if raw {
		_, err := io.WriteString(w, run.Readme)
		return err
	}
	r := ui.NewRenderer()
	header := fmt.Sprintf("%s (%s, %s summary, %s README)", run.Repository, run.CreatedAt.Local().Format("2006-01-02 15:04"), run.SummaryKind, run.ReadmeSource)
	fmt.Fprintln(w, r.InfoMessage(header))
	fmt.Fprintln(w)
	_, err := fmt.Fprintln(w, ui.RenderMarkdown(run.Readme))
	return err
}
