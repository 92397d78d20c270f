package main

import (
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/ukaji3/exsplit-go/pkg/exsplit"
	"github.com/ukaji3/exsplit-go/pkg/exsplit/config"
)

type splitFlags struct {
	sheet          string
	conditionsFile string
	where          []string
	mode           string
	output         string
	dryRun         bool
}

func newSplitCmd() *cobra.Command {
	var flags splitFlags

	cmd := &cobra.Command{
		Use:   "split <input.xlsx|input.xls>",
		Short: "Split rows into sheets or files by conditions",
		Long: `Split applies each condition on its own, in order, and writes the rows it
selects under the condition's output name. A row may appear in several outputs
or in none. Conditions over a column the sheet does not have are skipped, and
conditions that select nothing produce no output.

Conditions come from --conditions (YAML, JSON or HCL) followed by every
--where expression:

  <column> [not] <op> <operand...> => <output>

with op one of >= > <= < == between contains regex, for example

  --where '分数 >= 90 => 优秀' --where '评语 not contains 缺勤 => 全勤'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.sheet, "sheet", "s", "", "Sheet name (default: from the condition file, else the first sheet)")
	cmd.Flags().StringVarP(&flags.conditionsFile, "conditions", "c", "", "Condition file (.yaml, .yml, .json or .hcl)")
	cmd.Flags().StringArrayVarP(&flags.where, "where", "w", nil, "Condition expression (repeatable)")
	cmd.Flags().StringVarP(&flags.mode, "mode", "m", "", "Output layout: single (one workbook, one sheet each) or multi (one file each)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Workbook path (single) or directory (multi)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Show the partitions without writing anything")

	return cmd
}

func runSplit(cmd *cobra.Command, inputPath string, flags splitFlags) error {
	ctx := cmd.Context()
	log := zerolog.Ctx(ctx)

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return errors.Errorf("file not found: %s", inputPath)
	}

	var list exsplit.ConditionList
	opts := exsplit.DefaultOptions()
	sheet := ""

	if flags.conditionsFile != "" {
		file, err := config.Load(ctx, flags.conditionsFile)
		if err != nil {
			return err
		}
		for _, c := range file.Conditions {
			if err := list.Add(c); err != nil {
				return err
			}
		}
		sheet = file.Sheet
		if file.Mode != "" {
			opts.Mode = file.Mode
		}
		opts.Output = file.Output
	}

	inline, err := config.ParseConditions(flags.where)
	if err != nil {
		return err
	}
	for _, c := range inline {
		if err := list.Add(c); err != nil {
			return err
		}
	}

	if flags.sheet != "" {
		sheet = flags.sheet
	}
	if flags.mode != "" {
		mode, err := exsplit.ParseMode(flags.mode)
		if err != nil {
			return err
		}
		opts.Mode = mode
	}
	if flags.output != "" {
		opts.Output = flags.output
	}
	opts.DryRun = flags.dryRun

	conds := list.Snapshot()
	if len(conds) == 0 {
		return errors.WithStack(exsplit.ErrNoConditions)
	}
	printConditions(conds)

	ds, err := exsplit.Load(inputPath, sheet)
	if err != nil {
		return err
	}
	log.Debug().
		Str("input", inputPath).
		Str("sheet", sheet).
		Int("rows", ds.Len()).
		Strs("columns", ds.Columns).
		Msg("sheet loaded")

	result, err := exsplit.Split(ctx, exsplit.Request{
		Dataset:    ds,
		Conditions: conds,
		Options:    opts,
	})
	if errors.Is(err, exsplit.ErrEmptyResult) {
		pterm.Info.Println("No rows matched any condition; nothing was written.")
		return nil
	}
	if err != nil {
		return err
	}

	printPartitions(result)

	switch {
	case opts.DryRun:
		pterm.Info.Println("Dry run; nothing was written.")
	case opts.Mode == exsplit.ModeMulti:
		pterm.Success.Printfln("Split complete: %d files saved to %s", result.Written.Count(), opts.OutputPath())
	default:
		pterm.Success.Printfln("Split complete: %d sheets saved to %s", result.Written.Count(), opts.OutputPath())
	}
	return nil
}

func printConditions(conds []exsplit.Condition) {
	data := pterm.TableData{{"#", "Column", "Kind", "Condition", "Output"}}
	for i, c := range conds {
		data = append(data, []string{strconv.Itoa(i + 1), c.Column, c.KindLabel(), c.Describe(), c.OutputName})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Warning.Printfln("rendering condition table: %v", err)
	}
}

func printPartitions(result *exsplit.Result) {
	data := pterm.TableData{{"Output", "Rows", "Written as"}}
	for i, p := range result.Partitions {
		target := "-"
		if w := result.Written; w != nil {
			switch {
			case len(w.Sheets) > i:
				target = w.Sheets[i]
			case len(w.Paths) > i && len(w.Sheets) == 0:
				target = w.Paths[i]
			}
		}
		data = append(data, []string{p.Name, strconv.Itoa(p.Rows()), target})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Warning.Printfln("rendering partition table: %v", err)
	}
}
