package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ukaji3/exsplit-go/pkg/exsplit"
)

func newSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets <input.xlsx|input.xls>",
		Short: "List the sheets of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := exsplit.Inspect(args[0])
			if err != nil {
				return err
			}
			pterm.Info.Printfln("%s (%s)", info.BookName, info.Format)
			for _, s := range info.Sheets {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}

func newColumnsCmd() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "columns <input.xlsx|input.xls>",
		Short: "List the header columns of a sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headers, err := exsplit.Headers(args[0], sheet)
			if err != nil {
				return err
			}
			for _, h := range headers {
				fmt.Fprintln(cmd.OutOrStdout(), h)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sheet, "sheet", "s", "", "Sheet name (default: first sheet)")
	return cmd
}
