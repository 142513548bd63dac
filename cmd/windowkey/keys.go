package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/1broseidon/windowkey/internal/hotkeys"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the global hotkeys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printKeys(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func printKeys(w io.Writer) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("ID", "KEYS", "ACTION")

	for _, b := range hotkeys.Table() {
		t.Row(strconv.Itoa(b.ID), b.Combo(), b.Action.String())
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
