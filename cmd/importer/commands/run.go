package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"zkbugs/cmd/importer/output"
	"zkbugs/internal/domain/importer/service"
	postRepository "zkbugs/internal/domain/post/repository"
	userRepository "zkbugs/internal/domain/user/repository"
	"zkbugs/internal/pkg/config"
	"zkbugs/pkg/cache"
	"zkbugs/pkg/database"
	"zkbugs/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importFile string
	ownerRef   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Import reports from a JSON file",
	Long: `Import reports from a JSON file. The file holds either an array of records
or an object with a "posts" array. Every imported report is owned by --owner,
which must be an admin account (email or user id).

Examples:
  importer run --file reports.json --owner admin@zkbugs.io
  importer run --file reports.json --owner 0b6f3a2e-6a4c-4a8e-9b1d-2f3c4d5e6f70 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runImport(ctx, cmd.OutOrStdout())
	},
}

func init() {
	runCmd.Flags().StringVarP(&importFile, "file", "f", "", "Path to the JSON import file")
	runCmd.Flags().StringVar(&ownerRef, "owner", "", "Owner admin email or user id")
	_ = runCmd.MarkFlagRequired("file")
	_ = runCmd.MarkFlagRequired("owner")
	rootCmd.AddCommand(runCmd)
}

func runImport(ctx context.Context, w io.Writer) error {
	data, err := os.ReadFile(importFile)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}
	records, err := service.ParseRecords(data)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.App.Env, verbose); err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.InitDatabase(database.Options{DSN: cfg.Database.DSN(), Debug: verbose})
	if err != nil {
		return err
	}
	defer database.Close(db)

	owner, err := service.ResolveOwner(ctx, userRepository.NewUserRepository(db), ownerRef)
	if err != nil {
		return err
	}

	c, closeCache := openCache(cfg.Redis)
	defer closeCache()

	im := service.NewImporter(postRepository.NewPostRepository(db), c)
	result, err := im.Import(ctx, records, owner.ID)
	if err != nil {
		return err
	}
	return report(w, result, jsonOutput)
}

// openCache 与服务端共用 Redis 时导入后统计缓存立即失效
func openCache(cfg config.RedisConfig) (cache.CacheService, func()) {
	if !cfg.Enabled {
		return nil, func() {}
	}
	rdb, err := database.InitRedis(database.RedisOptions{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	if err != nil {
		logger.Log.Warn("redis unavailable, stats cache will expire on its own", zap.Error(err))
		return nil, func() {}
	}
	return cache.NewRedisCache(rdb, "zkbugs"), func() { _ = rdb.Close() }
}

// ExitCode complete/empty 为 0，partial 为 2，failed 为 1
func ExitCode(status service.Status) int {
	switch status {
	case service.StatusPartial:
		return 2
	case service.StatusFailed:
		return 1
	default:
		return 0
	}
}

func report(w io.Writer, result *service.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		printSummary(w, result)
	}

	if code := ExitCode(result.Status()); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

func printSummary(w io.Writer, result *service.Result) {
	output.Section(w, "Import summary")
	for _, p := range result.Data {
		output.Muted(w, "  + %s (%s)", p.Title, p.Slug)
	}
	for _, e := range result.Errors {
		title := e.Title
		if title == "" {
			title = fmt.Sprintf("record #%d", e.Index+1)
		}
		output.Error(w, "%s: %s", title, e.Error)
	}
	fmt.Fprintln(w)

	switch result.Status() {
	case service.StatusComplete:
		output.Success(w, "Imported %d reports", result.Imported)
	case service.StatusPartial:
		output.Warning(w, "Imported %d reports, %d failed", result.Imported, len(result.Errors))
	case service.StatusFailed:
		output.Error(w, "All %d records failed", len(result.Errors))
	case service.StatusEmpty:
		output.Info(w, "No records to import")
	}
}
