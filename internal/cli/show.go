package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pribylovaa/vocal-site/internal/models"
	"github.com/pribylovaa/vocal-site/internal/transport/http/dto"
)

func newShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show TYPE ID",
		Short: "Resolve a content path and print the detail view",
		Long: `Resolve /content/{type}/{id} the way the site does: TYPE matches the
record type or its category.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[1])
			}

			ctx := e.ctx(cmd)

			svc, err := e.service(ctx)
			if err != nil {
				return err
			}

			d, err := svc.Detail(ctx, args[0], id)
			if err != nil {
				return err
			}

			url, err := svc.ContentURL(d.Record)
			if err != nil {
				return err
			}

			e.printDetail(d, url)

			return nil
		},
	}
}

func (e *env) printDetail(d *models.Detail, url string) {
	p := e.out
	r := d.Record

	p.Header("%s", r.Title)
	p.Print("%s · %s · %s", r.Type, d.CategoryTitle, r.Date.Format("January 2, 2006"))
	p.Print("%s", p.Dim(url))
	p.Print("")
	p.Print("%s", r.Summary())

	switch d.Capability {
	case models.Readable:
		p.Print("")
		p.Print("%d words, %d min read", d.Reading.Words, d.Reading.ReadingMinutes)

		for _, h := range d.Reading.Outline {
			p.Print("  # %s %s", h.Text, p.Dim("#"+h.Anchor))
		}
	case models.Playable:
		p.Print("")
		p.Print("Player: %s (%s)", d.Playback.EmbedURL, d.Playback.Duration)
	}

	if len(d.Related) > 0 {
		p.Print("")
		p.Header("Related")

		for _, rel := range d.Related {
			p.Print("  %s %s", p.Bold(rel.Title), p.Dim(dto.ContentPath(rel)))
		}
	}
}
