package main

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/erazemk/popis/internal/client"
	"github.com/erazemk/popis/internal/model"
)

// itemFlags are shared by create and update. Required is enforced by
// Item.Validate, not by the flag parser, so update can take any subset.
func itemFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "hotel", Usage: "hotel code"},
		&cli.StringFlag{Name: "department", Usage: "department code"},
		&cli.StringFlag{Name: "name", Usage: "asset name"},
		&cli.StringFlag{Name: "type", Usage: "asset type (Hardware, Software, Virtual)"},
		&cli.StringFlag{Name: "category"},
		&cli.StringFlag{Name: "status", Usage: "Fixed Asset, Leased Asset or Disposal Asset"},
		&cli.StringFlag{Name: "brand", Usage: "brand / model"},
		&cli.StringFlag{Name: "serial", Usage: "serial number"},
		&cli.StringFlag{Name: "image", Usage: "local image path or remote URL"},
	}
}

// applyItemFlags copies every set flag onto it.
func applyItemFlags(c *cli.Context, it *model.Item) error {
	set := func(name string, dst *string) {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}
	set("hotel", &it.HotelCode)
	set("department", &it.DepartmentCode)
	set("name", &it.AssetName)
	set("category", &it.Category)
	set("brand", &it.BrandModel)
	set("serial", &it.SerialNumber)
	if c.IsSet("type") {
		it.AssetType = model.AssetType(c.String("type"))
	}
	if c.IsSet("status") {
		it.Status = model.Status(c.String("status"))
	}
	if c.IsSet("image") {
		ref, err := imageRef(c.String("image"))
		if err != nil {
			return err
		}
		it.Image = ref
	}
	return nil
}

// imageRef turns a plain path into a file reference. URLs are kept.
func imageRef(s string) (string, error) {
	if s == "" || client.IsLocalRef(s) {
		return s, nil
	}
	if u, err := url.Parse(s); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return s, nil
	}
	abs, err := filepath.Abs(s)
	if err != nil {
		return "", fmt.Errorf("resolving image path: %w", err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

func idArg(c *cli.Context) (int64, error) {
	if c.NArg() != 1 {
		return 0, fmt.Errorf("%w: expected one item ID", model.ErrUserInput)
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid item ID %q", model.ErrUserInput, c.Args().First())
	}
	return id, nil
}

func itemsCommand() *cli.Command {
	return &cli.Command{
		Name:  "items",
		Usage: "List and edit inventory items",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List every item",
				Action: withEnv(func(c *cli.Context, e *env) error {
					items, err := e.items.List(c.Context)
					if err != nil {
						return err
					}
					printItems(e.out, items)
					return nil
				}),
			},
			{
				Name:      "show",
				Usage:     "Show one item",
				ArgsUsage: "ID",
				Action: withEnv(func(c *cli.Context, e *env) error {
					id, err := idArg(c)
					if err != nil {
						return err
					}
					it, err := e.items.Get(c.Context, id)
					if err != nil {
						return err
					}
					printItem(e.out, it)
					return nil
				}),
			},
			{
				Name:  "create",
				Usage: "Create an item",
				Flags: itemFlags(),
				Action: withEnv(func(c *cli.Context, e *env) error {
					var it model.Item
					if err := applyItemFlags(c, &it); err != nil {
						return err
					}
					created, err := e.items.Create(c.Context, it)
					if err != nil {
						return err
					}
					fmt.Fprintf(e.out, "Created item %d (barcode %s)\n", created.ID, created.Barcode)
					return nil
				}),
			},
			{
				Name:      "update",
				Usage:     "Change fields of an item",
				ArgsUsage: "ID",
				Flags:     itemFlags(),
				Action: withEnv(func(c *cli.Context, e *env) error {
					id, err := idArg(c)
					if err != nil {
						return err
					}
					it, err := e.items.Get(c.Context, id)
					if err != nil {
						return err
					}
					if err := applyItemFlags(c, it); err != nil {
						return err
					}
					updated, err := e.items.Update(c.Context, id, *it)
					if err != nil {
						return err
					}
					fmt.Fprintf(e.out, "Updated item %d\n", updated.ID)
					return nil
				}),
			},
			{
				Name:      "delete",
				Usage:     "Delete an item",
				ArgsUsage: "ID",
				Action: withEnv(func(c *cli.Context, e *env) error {
					id, err := idArg(c)
					if err != nil {
						return err
					}
					if err := e.items.Delete(c.Context, id); err != nil {
						return err
					}
					fmt.Fprintf(e.out, "Deleted item %d\n", id)
					return nil
				}),
			},
		},
	}
}

func printItems(w io.Writer, items []model.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tHOTEL\tDEPT\tNAME\tTYPE\tCATEGORY\tSTATUS\tBARCODE")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			it.ID, it.HotelCode, it.DepartmentCode, it.AssetName, it.AssetType, it.Category, it.Status, it.Barcode)
	}
	tw.Flush()
}

func printItem(w io.Writer, it *model.Item) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", it.ID)
	fmt.Fprintf(tw, "Hotel:\t%s\n", it.HotelCode)
	fmt.Fprintf(tw, "Department:\t%s\n", it.DepartmentCode)
	fmt.Fprintf(tw, "Name:\t%s\n", it.AssetName)
	fmt.Fprintf(tw, "Type:\t%s\n", it.AssetType)
	fmt.Fprintf(tw, "Category:\t%s\n", it.Category)
	fmt.Fprintf(tw, "Status:\t%s\n", it.Status)
	fmt.Fprintf(tw, "Brand / Model:\t%s\n", it.BrandModel)
	fmt.Fprintf(tw, "Serial:\t%s\n", it.SerialNumber)
	fmt.Fprintf(tw, "Barcode:\t%s\n", it.Barcode)
	fmt.Fprintf(tw, "Image:\t%s\n", it.Image)
	tw.Flush()
}
