package cli

import (
	"github.com/spf13/cobra"

	"github.com/pribylovaa/vocal-site/internal/models"
	"github.com/pribylovaa/vocal-site/internal/service"
)

func newFacetsCmd(e *env) *cobra.Command {
	var (
		listing string
		typ     string
	)

	cmd := &cobra.Command{
		Use:   "facets",
		Short: "Print filter options of a listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := e.ctx(cmd)

			svc, err := e.service(ctx)
			if err != nil {
				return err
			}

			page, err := svc.Listing(ctx, listing, models.NewFilterState().WithType(typ))
			if err != nil {
				return err
			}

			p := e.out
			p.Header("Types")
			for _, t := range page.Facets.Types {
				p.Print("  %s", t)
			}

			p.Header("Topics")
			for _, t := range page.Facets.Topics {
				p.Print("  %s", t)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&listing, "listing", service.ListingNewsroom, "listing key")
	cmd.Flags().StringVar(&typ, "type", models.All, "restrict topics to a content type")

	return cmd
}
