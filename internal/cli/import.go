package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pribylovaa/vocal-site/internal/app"
	"github.com/pribylovaa/vocal-site/internal/storage/memory"
)

func newImportCmd(e *env) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the configured dataset into Postgres or MongoDB",
		Long: `Load the dataset from the configured source, validate it and upsert it
into the target store by record keys. Records missing from the dataset are
left in place. The site reads the target with catalog.source=postgres or
catalog.source=mongo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := e.ctx(cmd)

			ds, err := app.LoadDataset(ctx, *e.cfg)
			if err != nil {
				return err
			}

			// та же проверка, что и при старте сайта: в целевое хранилище
			// не должен попасть датасет, который сайт потом не загрузит
			if _, err := memory.New(ds); err != nil {
				return err
			}

			w, err := app.OpenWriter(ctx, *e.cfg, to)
			if err != nil {
				return err
			}
			defer func() { _ = w.Close() }()

			if err := w.Save(ctx, ds); err != nil {
				return fmt.Errorf("import into %s: %w", to, err)
			}

			e.out.Success("Imported %d news, %d media, %d pages, %d social posts into %s",
				len(ds.News), len(ds.Media), len(ds.Pages), len(ds.Social), to)

			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "target store: postgres|mongo")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
