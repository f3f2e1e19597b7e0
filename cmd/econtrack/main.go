package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/nicoortuno/econtrack"
	"github.com/nicoortuno/econtrack/core"
	"github.com/nicoortuno/econtrack/feed"
	"github.com/nicoortuno/econtrack/notification"
	"github.com/nicoortuno/econtrack/plot"
	"github.com/nicoortuno/econtrack/plot/indicator"
	"github.com/nicoortuno/econtrack/storage"
)

// Command line flags
var (
	// Serve command flags
	dataDir       string
	port          int
	interval      time.Duration
	snapshotFile  string
	historyFile   string
	telegramToken string
	telegramChat  int64
	alertPct      float64
	liveCurrency  bool

	// Import command flags
	importBoard string
	importFile  string
	importDB    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "econtrack",
		Short:   "Economic time-series dashboard engine",
		Version: "1.0.0",
	}

	rootCmd.AddCommand(buildServeCmd(), buildSnapshotCmd(), buildImportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildBoards wires one board per data source family found in the data
// directory. With --live, the currency board reads the P2P order book
// directly instead of the fetch job's CSV.
func buildBoards(log core.Logger) []econtrack.Board {
	var currencySource core.Source
	if liveCurrency {
		currencySource = feed.NewP2PFeed(feed.P2PConfig{
			Fiat:    "BOB",
			Asset:   "USDT",
			Country: "BO",
		}, log)
	} else {
		currencySource = feed.NewCSVFeed(feed.CSVTable{
			Name: "p2p-usdt-bob",
			File: filepath.Join(dataDir, "p2p_snapshots.csv"),
		}, log)
	}

	return []econtrack.Board{
		econtrack.NewCurrencyBoard(currencySource),
		econtrack.NewInflationBoard(feed.NewCSVFeed(feed.CSVTable{
			Name: "bcb-inflation",
			File: filepath.Join(dataDir, "bcb_inflation_history.csv"),
		}, log)),
		econtrack.NewMonetaryBoard(feed.NewCSVFeed(feed.CSVTable{
			Name: "bcb-base-monetaria",
			File: filepath.Join(dataDir, "base_monetaria.csv"),
		}, log)),
		econtrack.NewTradeBoard(
			feed.NewCSVFeed(feed.CSVTable{
				Name: "bcb-exports",
				File: filepath.Join(dataDir, "exports.csv"),
			}, log),
			feed.NewCSVFeed(feed.CSVTable{
				Name: "bcb-imports",
				File: filepath.Join(dataDir, "imports.csv"),
			}, log),
		),
	}
}

func buildServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard and refresh on an interval",
		RunE:  runServe,
	}

	serveCmd.Flags().StringVarP(&dataDir, "data", "d", "data", "Directory with the fetched table files")
	serveCmd.Flags().IntVarP(&port, "port", "p", 8080, "Chart server port")
	serveCmd.Flags().DurationVarP(&interval, "interval", "i", time.Hour, "Refresh interval")
	serveCmd.Flags().StringVar(&snapshotFile, "snapshots", "econtrack.bunt", "Latest-snapshot store file (:memory: to disable persistence)")
	serveCmd.Flags().StringVar(&historyFile, "history", "", "SQLite snapshot history file (disabled when empty)")
	serveCmd.Flags().StringVar(&telegramToken, "telegram-token", "", "Telegram bot token for alerts")
	serveCmd.Flags().Int64Var(&telegramChat, "telegram-chat", 0, "Telegram chat ID for alerts")
	serveCmd.Flags().Float64Var(&alertPct, "alert", 0.02, "Move alert threshold as a fraction")
	serveCmd.Flags().BoolVar(&liveCurrency, "live", false, "Fetch the currency order book live instead of from CSV")

	return serveCmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	log := econtrack.DefaultLog

	chart, err := plot.NewChart(log,
		plot.WithPort(port),
		plot.WithOverlays(indicator.SMA(7, "#ebcb8b")),
	)
	if err != nil {
		return err
	}

	snapshots, err := storage.NewFromFile(snapshotFile)
	if err != nil {
		return err
	}

	options := []econtrack.Option{
		econtrack.WithChart(chart),
		econtrack.WithSnapshotStorage(snapshots),
		econtrack.WithMoveAlert(alertPct),
	}

	if historyFile != "" {
		history, err := storage.NewFromSQLite(historyFile, storage.DefaultConfig())
		if err != nil {
			return err
		}
		options = append(options, econtrack.WithHistoryStorage(history))
	}

	if telegramToken != "" {
		telegram, err := notification.NewTelegram(notification.TelegramParams{
			Token:  telegramToken,
			ChatID: telegramChat,
		})
		if err != nil {
			return err
		}
		options = append(options, econtrack.WithNotifier(telegram))
	}

	engine := econtrack.New(log, buildBoards(log), options...)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	go func() {
		if err := engine.Run(ctx, interval); err != nil && ctx.Err() == nil {
			log.WithError(err).Fatal("engine stopped")
		}
	}()

	return chart.Start()
}

func buildSnapshotCmd() *cobra.Command {
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Refresh once and print the latest board snapshots",
		RunE:  runSnapshot,
	}

	snapshotCmd.Flags().StringVarP(&dataDir, "data", "d", "data", "Directory with the fetched table files")
	snapshotCmd.Flags().BoolVar(&liveCurrency, "live", false, "Fetch the currency order book live instead of from CSV")

	return snapshotCmd
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	log := econtrack.DefaultLog
	engine := econtrack.New(log, buildBoards(log))

	if err := engine.Refresh(cmd.Context()); err != nil {
		log.WithError(err).Warn("refresh incomplete")
	}
	engine.Summary()
	return nil
}

func buildImportCmd() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import a history CSV into the SQLite snapshot store",
		RunE:  runImport,
	}

	importCmd.Flags().StringVarP(&importBoard, "board", "b", "", "Board name to file the snapshots under")
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "History CSV file to import")
	importCmd.Flags().StringVar(&importDB, "db", "econtrack.db", "SQLite snapshot history file")

	if err := importCmd.MarkFlagRequired("board"); err != nil {
		panic(err)
	}
	if err := importCmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}

	return importCmd
}

func runImport(cmd *cobra.Command, _ []string) error {
	log := econtrack.DefaultLog

	history, err := storage.NewFromSQLite(importDB, storage.DefaultConfig())
	if err != nil {
		return err
	}

	source := feed.NewCSVFeed(feed.CSVTable{Name: importBoard, File: importFile}, log)
	rows, err := source.Rows(cmd.Context())
	if err != nil {
		return err
	}

	bar := progressbar.Default(int64(len(rows)), "importing")
	for _, row := range rows {
		snapshot := snapshotFromRow(importBoard, row)
		if err := history.AppendSnapshot(cmd.Context(), snapshot); err != nil {
			return err
		}
		if err := bar.Add(1); err != nil {
			return err
		}
	}

	log.Infof("imported %d snapshots into %s", len(rows), importDB)
	return nil
}

// snapshotFromRow files one raw history row as a snapshot, keeping only
// cells that coerce to numbers.
func snapshotFromRow(board string, row core.Row) core.Snapshot {
	snapshot := core.Snapshot{
		Board: board,
		Taken: time.Now(),
		Value: make(map[string]core.Value),
	}

	if label, ok := row.Resolve("date", "fecha", "ts", "timestamp"); ok {
		if s, ok := label.(string); ok {
			snapshot.Label = s
		}
	}
	for name, cell := range row {
		if value := core.ToNumeric(cell); value.Valid {
			snapshot.Value[name] = value
		}
	}
	return snapshot
}
