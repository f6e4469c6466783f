package commands

import (
	"context"
	"fmt"
	"time"

	"leadboard/internal/config"
	"leadboard/internal/pipeline"
	"leadboard/internal/server"
	"leadboard/internal/source"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	boardSource  string
	boardJSON    bool
	boardTimeout time.Duration
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Fetch the lead batch and print the four pipeline columns",
	Long: `Fetch the current lead batch from the configured source and print it
partitioned into the pipeline columns, in the same order the board shows them.

Examples:
  leadctl board
  leadctl board --source=remote
  leadctl board --json | jq '.discussions | length'`,
	RunE: runBoard,
}

func init() {
	boardCmd.Flags().StringVar(&boardSource, "source", "", "override LEAD_SOURCE (db or remote)")
	boardCmd.Flags().BoolVar(&boardJSON, "json", false, "print columns as JSON keyed by column id")
	boardCmd.Flags().DurationVar(&boardTimeout, "timeout", 30*time.Second, "fetch timeout")
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
	cfg, log := loadConfig()
	if boardSource != "" {
		cfg.LeadSource = boardSource
	}

	var deps server.Deps
	if cfg.LeadSource == config.SourceDB {
		db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err != nil {
			return printError("Cannot connect to database", err)
		}
		deps.DB = db
	}
	src, err := server.NewSource(cfg, deps)
	if err != nil {
		return printError("Invalid lead source", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), boardTimeout)
	defer cancel()
	board, dropped := pipeline.NewBoard(source.Load(ctx, src, log))

	out := cmd.OutOrStdout()
	if boardJSON {
		data, err := sonic.ConfigStd.MarshalIndent(boardColumns(board), "", "  ")
		if err != nil {
			return printError("Cannot encode board", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	printBoard(out, board, dropped)
	return nil
}
