// cli - команды catalogctl: просмотр и проверка датасета сайта
// из терминала поверх тех же catalog/service, что обслуживают HTTP.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pribylovaa/vocal-site/internal/app"
	"github.com/pribylovaa/vocal-site/internal/config"
	logpkg "github.com/pribylovaa/vocal-site/internal/pkg/log"
	"github.com/pribylovaa/vocal-site/internal/service"
)

// env - общее состояние команд, заполняется в PersistentPreRunE.
type env struct {
	configPath string
	source     string
	path       string
	colorMode  string
	verbose    bool

	cfg *config.Config
	log *slog.Logger
	out *printer
}

// NewRootCmd собирает дерево команд catalogctl с выводом в out.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:   "catalogctl",
		Short: "Inspect and publish the VOCAL Africa content dataset",
		Long: `catalogctl works with the same dataset sources as the site.

Example usage:
  catalogctl list --listing reports        # Impact reports, page 1
  catalogctl list --type Article --query vote
  catalogctl show "Press Statement" 4      # Detail view with related items
  catalogctl facets --listing newsroom     # Filter options
  catalogctl validate --source file --path content.yaml
  catalogctl import --to postgres          # Copy the dataset into Postgres`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.init(cmd)
		},
	}

	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&e.configPath, "config", "", "config file (default: CONFIG_PATH, ./local.yaml or env)")
	pf.StringVar(&e.source, "source", "", "dataset source override: embedded|file|postgres|mongo")
	pf.StringVar(&e.path, "path", "", "dataset YAML for --source file")
	pf.StringVar(&e.colorMode, "color", ColorAuto, "color output: auto|always|never")
	pf.BoolVarP(&e.verbose, "verbose", "v", false, "verbose logging to stderr")

	root.AddCommand(
		newListCmd(e),
		newShowCmd(e),
		newFacetsCmd(e),
		newValidateCmd(e),
		newImportCmd(e),
	)

	return root
}

func (e *env) init(cmd *cobra.Command) error {
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if e.source != "" {
		cfg.Catalog.Source = e.source
	}

	if e.path != "" {
		cfg.Catalog.Path = e.path
	}

	useColors, err := resolveColors(e.colorMode)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if e.verbose {
		level = slog.LevelDebug
	}

	e.cfg = cfg
	e.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	e.out = &printer{out: cmd.OutOrStdout(), useColors: useColors}

	e.log.Debug("configuration_loaded",
		slog.String("source", cfg.Catalog.Source),
		slog.String("path", cfg.Catalog.Path),
	)

	return nil
}

// service грузит датасет и собирает сервис без внешних клиентов:
// CLI только читает, троттлинг и ссылки ему не нужны.
func (e *env) service(ctx context.Context) (*service.Service, error) {
	st, err := app.LoadCatalog(ctx, *e.cfg, nil)
	if err != nil {
		return nil, err
	}

	return service.New(st, *e.cfg)
}

func (e *env) ctx(cmd *cobra.Command) context.Context {
	return logpkg.Into(cmd.Context(), e.log)
}

// Execute запускает catalogctl с аргументами процесса.
func Execute(ctx context.Context, out, errOut io.Writer) error {
	return NewRootCmd(out, errOut).ExecuteContext(ctx)
}
