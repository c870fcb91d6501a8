package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/nextprune/nextprune/internal/assets"
	"github.com/nextprune/nextprune/internal/classify"
	"github.com/nextprune/nextprune/internal/config"
	"github.com/nextprune/nextprune/internal/delete"
	"github.com/nextprune/nextprune/internal/diskstat"
	"github.com/nextprune/nextprune/internal/humanize"
	"github.com/nextprune/nextprune/internal/log"
	"github.com/nextprune/nextprune/internal/model"
	"github.com/nextprune/nextprune/internal/policy"
	"github.com/nextprune/nextprune/internal/report"
	"github.com/nextprune/nextprune/internal/scanner"
	"github.com/nextprune/nextprune/internal/tui/confirm"
)

// Sentinel errors for the CLI's exit-code branching (spec.md §6/§7).
var (
	ErrInvalidScopeToken          = errors.New("invalid cleanup scope token")
	ErrInvalidMaxDepth            = errors.New("max-depth must be a non-negative integer")
	ErrApplyProtectedWithoutApply = errors.New("selection contains apply-protected candidates; --apply is required")
)

func main() {
	os.Exit(run(os.Args[1:]))
}

type cliFlags struct {
	yes             bool
	dryRun          bool
	cwd             string
	list            bool
	jsonOut         bool
	monorepo        bool
	cleanupScope    string
	noNodeModules   bool
	noPMCaches      bool
	workspaceDetect bool
	maxDepth        string
	apply           bool
	logFormat       string
	logLevel        string
}

func run(args []string) int {
	var f cliFlags
	fs := flag.NewFlagSet("nextprune", flag.ContinueOnError)
	fs.BoolVar(&f.yes, "yes", false, "non-interactive execution")
	fs.BoolVar(&f.dryRun, "dry-run", false, "skip deletion; report what would be removed")
	fs.StringVar(&f.cwd, "cwd", ".", "scan root")
	fs.BoolVar(&f.list, "list", false, "emit human-readable listing")
	fs.BoolVar(&f.jsonOut, "json", false, "emit JSON listing (implies --list)")
	fs.BoolVar(&f.monorepo, "monorepo", false, "force monorepoMode=on")
	fs.StringVar(&f.cleanupScope, "cleanup-scope", "", "comma-separated scope selector")
	fs.BoolVar(&f.noNodeModules, "no-node-modules", false, "exclude node_modules candidates")
	fs.BoolVar(&f.noPMCaches, "no-pm-caches", false, "exclude package-manager cache candidates")
	fs.BoolVar(&f.workspaceDetect, "workspace-detect", false, "force workspaceDiscoveryMode=manifest-fallback")
	fs.StringVar(&f.maxDepth, "max-depth", "", "non-negative integer traversal depth limit")
	fs.BoolVar(&f.apply, "apply", false, "required with --yes when selection contains apply-protected items")
	fs.StringVar(&f.logFormat, "log-format", "text", "json|text")
	fs.StringVar(&f.logLevel, "log-level", "info", "debug|info|warn|error")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	log.Setup(f.logLevel, f.logFormat)
	logger := log.WithComponent("cli")

	root, err := filepath.Abs(f.cwd)
	if err != nil {
		logger.Error("failed to resolve scan root", "error", err)
		return 1
	}

	if err := runPrune(context.Background(), root, f, logger); err != nil {
		logger.Error("nextprune failed", "error", err)
		return 1
	}
	return 0
}

func runPrune(ctx context.Context, root string, f cliFlags, logger *slog.Logger) error {
	cfg := config.Resolve(root, log.WithComponent("config"))

	if f.monorepo {
		cfg.MonorepoMode = model.MonorepoOn
	}
	if f.workspaceDetect {
		cfg.WorkspaceDiscoveryMode = model.DiscoveryManifestFallback
	}
	if f.noNodeModules {
		cfg.IncludeNodeModules = false
	}
	if f.noPMCaches {
		cfg.IncludeProjectLocalPmCaches = false
	}
	if f.maxDepth != "" {
		n, err := strconv.Atoi(f.maxDepth)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %q", ErrInvalidMaxDepth, f.maxDepth)
		}
		cfg.MaxScanDepth = &n
	}

	items, err := scanner.Scan(ctx, root, scanner.Options{
		MonorepoMode:                cfg.MonorepoMode,
		WorkspaceDiscoveryMode:      cfg.WorkspaceDiscoveryMode,
		CleanupScopes:               cfg.CleanupScopes,
		IncludeNodeModules:          cfg.IncludeNodeModules,
		IncludeProjectLocalPmCaches: cfg.IncludeProjectLocalPmCaches,
		MaxDepth:                    cfg.MaxScanDepth,
		Logger:                      log.WithComponent("scanner"),
	})
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	allowed, err := classify.ParseScopeTokens(f.cleanupScope)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScopeToken, err)
	}
	classify.ApplyIncludeFlags(allowed, cfg.IncludeNodeModules, cfg.IncludeProjectLocalPmCaches)
	items = classify.Filter(items, allowed)

	if cfg.CheckUnusedAssets {
		unusedItems, err := resolveUnusedAssets(root, logger)
		if err != nil {
			logger.Warn("unused asset resolution failed", "error", err)
		} else {
			items = append(items, unusedItems...)
		}
	}

	items = policy.FilterNeverDelete(items, root, cfg.NeverDelete)
	alwaysDelete := policy.SelectAlwaysDeletePaths(items, root, cfg.AlwaysDelete)

	if f.jsonOut {
		f.list = true
	}

	if f.list {
		return printListing(items, f.jsonOut)
	}

	selected := items
	if !f.yes && !f.dryRun && isInteractive() {
		selected, err = confirm.Run(items, alwaysDelete)
		if err != nil {
			return fmt.Errorf("interactive confirmation failed: %w", err)
		}
	}
	selected = forceIncludeAlwaysDelete(items, selected, alwaysDelete)

	if f.dryRun {
		return printReport(root, selected, nil)
	}

	if policy.AnyApplyProtected(selected) && !f.apply {
		return ErrApplyProtectedWithoutApply
	}

	summary := delete.Items(ctx, delete.OSRemover, selected, 0)
	for _, r := range summary.Results {
		if !r.OK {
			logger.Warn("deletion failed", "path", r.Path, "error", r.Error)
		}
	}
	logger.Info("deletion complete", "deleted", summary.DeletedCount, "failed", summary.FailureCount,
		"reclaimed", humanize.Bytes(float64(summary.ReclaimedBytes)))

	if summary.FailureCount > 0 {
		return fmt.Errorf("%d deletions failed", summary.FailureCount)
	}
	return printReport(root, selected, &summary)
}

// forceIncludeAlwaysDelete returns selected with any item from items whose
// path matched an always-delete pattern added back in, even if it was
// deselected (non-interactive runs skip confirm.Run entirely, so this is
// what actually enforces alwaysDelete outside the TUI).
func forceIncludeAlwaysDelete(items, selected []model.ScanItem, alwaysDelete map[string]bool) []model.ScanItem {
	if len(alwaysDelete) == 0 {
		return selected
	}
	have := make(map[string]bool, len(selected))
	for _, item := range selected {
		have[item.Path] = true
	}
	out := selected
	for _, item := range items {
		if alwaysDelete[item.Path] && !have[item.Path] {
			out = append(out, item)
		}
	}
	return out
}

func resolveUnusedAssets(root string, logger *slog.Logger) ([]model.ScanItem, error) {
	paths, err := assets.FindUnused(root, assets.Options{})
	if err != nil {
		return nil, err
	}
	out := make([]model.ScanItem, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		out = append(out, model.ScanItem{
			Path:         p,
			RealPath:     p,
			CleanupScope: model.ScopeProject,
			CleanupType:  model.CleanupAsset,
			Stats: model.ArtifactStats{
				Size:      uint64(info.Size()),
				FileCount: 1,
				MTime:     info.ModTime(),
			},
		})
	}
	return out, nil
}

func isInteractive() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

func printListing(items []model.ScanItem, jsonOut bool) error {
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}
	for _, item := range items {
		fmt.Printf("%-10s %-24s %s\n", humanize.Bytes(float64(item.Stats.Size)), item.CleanupType, item.Path)
	}
	return nil
}

func printReport(root string, items []model.ScanItem, summary *model.DeleteSummary) error {
	disk, err := diskstat.ForPath(root)
	if err != nil {
		log.WithComponent("cli").Warn("disk usage unavailable", "path", root, "error", err)
		disk = diskstat.Usage{}
	}
	r := report.Build(uuid.NewString(), root, items, disk, time.Now())

	fmt.Printf("scan %s: %d candidates, %s reclaimable\n", r.ScanID, len(r.Items), humanize.Bytes(float64(r.TotalReclaimable())))
	fmt.Printf("signature: %s\n", r.Signature)
	fmt.Printf("disk free/total: %s / %s\n", humanize.Bytes(float64(disk.Free)), humanize.Bytes(float64(disk.Total)))
	if summary != nil {
		fmt.Printf("deleted: %d, failed: %d, reclaimed: %s\n", summary.DeletedCount, summary.FailureCount, humanize.Bytes(float64(summary.ReclaimedBytes)))
	}
	return nil
}
