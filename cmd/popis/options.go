package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/erazemk/popis/internal/model"
)

func optionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "options",
		Usage: "Show valid codes, statuses and categories",
		Action: func(c *cli.Context) error {
			w := c.App.Writer
			fmt.Fprintf(w, "Hotels:      %s\n", strings.Join(model.HotelCodes, ", "))
			fmt.Fprintf(w, "Departments: %s\n", strings.Join(model.DepartmentCodes, ", "))

			statuses := make([]string, 0, len(model.Statuses()))
			for _, s := range model.Statuses() {
				statuses = append(statuses, string(s))
			}
			fmt.Fprintf(w, "Statuses:    %s\n", strings.Join(statuses, ", "))

			fmt.Fprintln(w, "Categories:")
			for _, t := range model.AssetTypes() {
				fmt.Fprintf(w, "  %s: %s\n", t, strings.Join(t.Categories(), ", "))
			}
			return nil
		},
	}
}
