package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pribylovaa/vocal-site/internal/models"
	"github.com/pribylovaa/vocal-site/internal/service"
	"github.com/pribylovaa/vocal-site/internal/transport/http/dto"
)

func newListCmd(e *env) *cobra.Command {
	var (
		listing string
		f       models.FilterState
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List a page of a listing",
		Long: `List one page of a listing after type, topic and search filters.

Listings: ` + strings.Join(listingKeys(), ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := e.ctx(cmd)

			svc, err := e.service(ctx)
			if err != nil {
				return err
			}

			page, err := svc.Listing(ctx, listing, f)
			if err != nil {
				return err
			}

			return e.printListing(page)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&listing, "listing", service.ListingNewsroom, "listing key")
	fl.StringVar(&f.Type, "type", models.All, "content type (newsroom only)")
	fl.StringVar(&f.Topic, "topic", models.All, "topic/category")
	fl.StringVarP(&f.Query, "query", "q", "", "case-insensitive search in title and summary")
	fl.IntVar(&f.Page, "page", 1, "page number, clamped to the valid range")

	return cmd
}

func (e *env) printListing(page *models.ListingPage) error {
	p := e.out

	p.Header("%s", page.Title)
	if page.Description != "" {
		p.Print("%s", p.Dim(page.Description))
	}

	rows := make([][]string, 0, len(page.Items))
	for _, r := range page.Items {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			string(r.Type),
			r.Date.Format("2006-01-02"),
			r.Category,
			p.Bold(r.Title),
			dto.ContentPath(r),
		})
	}

	if len(rows) == 0 {
		p.Warn("No results match the current filters")
	} else if err := p.table([]string{"ID", "TYPE", "DATE", "TOPIC", "TITLE", "PATH"}, rows); err != nil {
		return err
	}

	pg := page.Pagination
	p.Print("Page %d of %d (%d results)", pg.Page, pg.TotalPages, pg.TotalItems)

	return nil
}

func listingKeys() []string {
	ls := service.Listings()

	keys := make([]string, 0, len(ls))
	for _, l := range ls {
		keys = append(keys, l.Key)
	}

	return keys
}
