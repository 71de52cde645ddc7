package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studymaster/internal/config"
	"github.com/at-ishikawa/studymaster/internal/database"
	"github.com/at-ishikawa/studymaster/internal/datasync"
	"github.com/at-ishikawa/studymaster/internal/learning"
	"github.com/at-ishikawa/studymaster/internal/statistics"
	"github.com/at-ishikawa/studymaster/schemas"
)

func newDatasyncCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "datasync",
		Short: "Copy learning progress between the workspace and a database",
	}
	command.AddCommand(
		newDatasyncPushCommand(),
		newDatasyncPullCommand(),
	)
	return command
}

// openDatabase opens the configured database and applies pending migrations.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	if _, err := database.Migrate(ctx, db, schemas.Migrations); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database.Migrate() > %w", err)
	}
	return db, nil
}

func newDatasyncPushCommand() *cobra.Command {
	var dryRun bool
	var updateExisting bool

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Write workspace progress, quiz history and statistics into the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, ws, err := openWorkspace()
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			db, err := openDatabase(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			out := cmd.OutOrStdout()
			importer := datasync.NewImporter(learning.NewDBProgressRepository(db), statistics.NewDBRepository(db), out)
			opts := datasync.ImportOptions{
				DryRun:         dryRun,
				UpdateExisting: updateExisting,
			}
			result, err := importer.Import(ctx, ws.State(), opts)
			if err != nil {
				return fmt.Errorf("importer.Import() > %w", err)
			}

			fmt.Fprintln(out, "\nImport Summary:")
			if opts.DryRun {
				fmt.Fprintln(out, "  (dry-run mode, no changes made)")
			}
			fmt.Fprintf(out, "  Cards:          %d new, %d skipped, %d updated\n", result.CardsNew, result.CardsSkipped, result.CardsUpdated)
			fmt.Fprintf(out, "  Quiz questions: %d new, %d skipped, %d updated\n", result.QuestionsNew, result.QuestionsSkipped, result.QuestionsUpdated)
			fmt.Fprintf(out, "  Quiz results:   %d\n", result.QuizResults)
			if result.StatisticsSaved {
				fmt.Fprintln(out, "  Statistics:     saved")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the database")
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Update existing records with new data")
	return cmd
}

func newDatasyncPullCommand() *cobra.Command {
	var withStatistics bool

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Load progress stored in the database into the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, ws, err := openWorkspace()
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			db, err := openDatabase(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			data, err := datasync.NewExporter(learning.NewDBProgressRepository(db), statistics.NewDBRepository(db)).Export(ctx)
			if err != nil {
				return fmt.Errorf("exporter.Export() > %w", err)
			}
			data.Apply(ws.Store())
			if withStatistics {
				ws.Aggregator().Replace(data.Statistics)
			}
			if err := ws.Save(); err != nil {
				return fmt.Errorf("ws.Save() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d card and %d question progress records\n", len(data.Cards), len(data.Questions))
			return nil
		},
	}

	cmd.Flags().BoolVar(&withStatistics, "with-statistics", false, "Also replace the workspace statistics with the stored ones")
	return cmd
}
