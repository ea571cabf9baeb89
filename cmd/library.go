package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/ftsep/internal/formatter"
	"github.com/desertthunder/ftsep/internal/importer"
	"github.com/desertthunder/ftsep/internal/library"
	"github.com/desertthunder/ftsep/internal/models"
	"github.com/desertthunder/ftsep/internal/shared"
	"github.com/desertthunder/ftsep/internal/ui"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file from the embedded template when missing and migrates the library.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	if _, err := os.Stat(r.configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", r.configPath)
		if err := shared.CreateConfigFile(r.configPath); err != nil {
			return err
		}
		r.logger.Info("config file created", "path", r.configPath)

		if r.config, err = r.loadConfig(r.configPath, true); err != nil {
			return err
		}
	}

	if cmd.Bool("rollback") {
		return r.rollback()
	}

	r.logger.Info("initializing library", "path", r.config.Library.Path)
	if _, err := r.Library(ctx); err != nil {
		return fmt.Errorf("failed to initialize library: %w", err)
	}

	r.logger.Infof("setup complete for library: %v", r.config.Library.Path)
	return r.writePlain("%s %s\n", ui.Styles.OK("✓"), r.config.Library.Path)
}

func (r *Runner) rollback() error {
	db, err := shared.NewDatabase(r.config.Library.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RollbackMigration(db); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	r.logger.Warn("rolled back the latest migration", "path", r.config.Library.Path)
	return nil
}

// Config prints the effective configuration.
func (r *Runner) Config(ctx context.Context, cmd *cli.Command) error {
	return r.config.WriteTOML(r.output)
}

// Import runs the importer over the given paths with every registered import stage.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("%w: import needs at least one path", shared.ErrMissingArgument)
	}

	lib, err := r.Library(ctx)
	if err != nil {
		return err
	}

	im := importer.New(lib, library.NewTagger(), importer.Options{
		Write:  r.ShouldWrite(),
		Ignore: r.config.Import.Ignore,
	}, r.logger)
	im.AddStage(r.registry.ImportStages()...)

	summary, err := im.Run(ctx, paths)
	if summary != nil {
		r.writeSummary(summary)
	}
	return err
}

func (r *Runner) writeSummary(s *importer.Summary) {
	r.writePlain("%s\n", ui.Styles.Title("Import"))
	r.writePlain("%s, %s, %s",
		ui.Styles.Count(s.Tasks, "albums"),
		ui.Styles.Count(s.Items, "items"),
		ui.Styles.Count(s.Written, "written"),
	)
	if s.Skipped > 0 {
		r.writePlain(", %s", ui.Styles.Warn(fmt.Sprintf("%d skipped", s.Skipped)))
	}
	r.writePlain("\n")
}

// List prints the items matching the query.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	lib, err := r.Library(ctx)
	if err != nil {
		return err
	}

	items, err := lib.Items(ctx, cmd.Args().Slice())
	if err != nil {
		return err
	}

	found := make([]*models.Item, len(items))
	for i, item := range items {
		found[i] = item.Item
	}

	data, err := formatter.Render(format, found)
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}
