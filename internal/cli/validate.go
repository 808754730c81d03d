package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pribylovaa/vocal-site/internal/app"
	"github.com/pribylovaa/vocal-site/internal/catalog"
	"github.com/pribylovaa/vocal-site/internal/config"
	"github.com/pribylovaa/vocal-site/internal/models"
	"github.com/pribylovaa/vocal-site/internal/storage/memory"
)

// ErrShadowed - есть записи, недостижимые по своему /content/{type}/{id}.
var ErrShadowed = errors.New("dataset has unreachable records")

func newValidateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check dataset invariants and detail path reachability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := e.ctx(cmd)

			ds, err := app.LoadDataset(ctx, *e.cfg)
			if err != nil {
				return err
			}

			st, err := memory.New(ds)
			if err != nil {
				return err
			}

			news, err := st.News(ctx)
			if err != nil {
				return err
			}

			media, err := st.Media(ctx)
			if err != nil {
				return err
			}

			p := e.out
			if err := p.table([]string{"COLLECTION", "RECORDS"}, [][]string{
				{string(models.CollectionNews), strconv.Itoa(len(news))},
				{string(models.CollectionMedia), strconv.Itoa(len(media))},
				{"pages", strconv.Itoa(len(ds.Pages))},
				{"social", strconv.Itoa(len(ds.Social))},
			}); err != nil {
				return err
			}

			shadowed := Shadowed(news, media)
			for _, r := range shadowed {
				p.Warn("%s %d %q is shadowed by another record with the same path", r.Type, r.ID, r.Title)
			}

			if len(shadowed) > 0 {
				return fmt.Errorf("%w: %d", ErrShadowed, len(shadowed))
			}

			p.Success("Dataset is valid (%s)", describeSource(e.cfg.Catalog.Source, e.cfg.Catalog.Path))

			return nil
		},
	}
}

// Shadowed возвращает записи, путь которых разрешается в другую запись:
// news просматривается раньше media, и совпадение по подтипу побеждает категорию.
func Shadowed(news, media []models.ContentRecord) []models.ContentRecord {
	var out []models.ContentRecord

	for _, c := range [][]models.ContentRecord{news, media} {
		for _, r := range c {
			got, err := catalog.Resolve(string(r.Type), r.ID, news, media)
			if err != nil || got.Collection != r.Collection {
				out = append(out, r)
			}
		}
	}

	return out
}

func describeSource(source, path string) string {
	if source == config.SourceFile {
		return source + ": " + path
	}

	return source
}

