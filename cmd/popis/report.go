package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/erazemk/popis/internal/export"
	"github.com/erazemk/popis/internal/model"
)

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "hotel", Usage: "hotel code"},
		&cli.StringFlag{Name: "department", Usage: "department code"},
		&cli.StringFlag{Name: "status"},
	}
}

func exportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "csv or xlsx (default from config)"},
		&cli.StringFlag{Name: "dir", Usage: "output directory (default from config)"},
	}
}

func filterFromFlags(c *cli.Context) model.ReportFilter {
	return model.ReportFilter{
		HotelCode:      c.String("hotel"),
		DepartmentCode: c.String("department"),
		Status:         model.Status(c.String("status")),
	}
}

func reportCommand() *cli.Command {
	flags := append(filterFlags(), &cli.BoolFlag{Name: "export", Aliases: []string{"x"}, Usage: "export the result"})
	return &cli.Command{
		Name:  "report",
		Usage: "Preview items matching a filter",
		Flags: append(flags, exportFlags()...),
		Action: withEnv(func(c *cli.Context, e *env) error {
			report, err := e.reports.Preview(c.Context, filterFromFlags(c))
			if err != nil {
				return err
			}
			printItems(e.out, report.Items)
			if !c.Bool("export") {
				return nil
			}
			if !report.CanExport() {
				fmt.Fprintln(e.out, "Nothing to export.")
				return nil
			}
			return runExport(c, e, report.IDs())
		}),
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export items by ID, or the result of a filter",
		ArgsUsage: "[ID...]",
		Flags:     append(filterFlags(), exportFlags()...),
		Action: withEnv(func(c *cli.Context, e *env) error {
			ids := make([]int64, 0, c.NArg())
			for _, arg := range c.Args().Slice() {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("%w: invalid item ID %q", model.ErrUserInput, arg)
				}
				ids = append(ids, id)
			}
			if filter := filterFromFlags(c); !filter.Empty() {
				report, err := e.reports.Preview(c.Context, filter)
				if err != nil {
					return err
				}
				ids = append(ids, report.IDs()...)
			}
			return runExport(c, e, ids)
		}),
	}
}

func runExport(c *cli.Context, e *env, ids []int64) error {
	p, err := e.pipeline(c.String("format"), c.String("dir"))
	if err != nil {
		return err
	}
	if c.Bool("verbose") {
		p.OnState = func(s export.State) {
			fmt.Fprintf(c.App.ErrWriter, "export: %s\n", s)
		}
	}
	result, err := p.Run(c.Context, ids)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Exported %d items to %s\n", result.Rows, result.Path)
	if !result.Shared {
		fmt.Fprintln(e.out, result.Message)
	}
	return nil
}
