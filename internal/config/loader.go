package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nextprune/nextprune/internal/log"
	"github.com/nextprune/nextprune/internal/model"
)

const rcFileName = ".next-prunerc.json"

// Resolve loads package.json's "next-prune" key and .next-prunerc.json from
// root, merges both over model.Defaults() (rc file wins on conflicts), and
// returns the fully-normalized PruneConfig. Read or parse failures on
// either source are absorbed silently — the result degrades to whatever was
// successfully read, down to the bare defaults. This function never fails.
func Resolve(root string, logger *slog.Logger) model.PruneConfig {
	if logger == nil {
		logger = log.WithComponent("config")
	}

	cfg := model.Defaults()

	if raw, ok := readPackageJSONConfig(root); ok {
		cfg = applyRaw(cfg, raw)
	} else {
		logger.Debug("no usable next-prune key in package.json")
	}

	if raw, ok := readRCConfig(root); ok {
		cfg = applyRaw(cfg, raw)
	} else {
		logger.Debug("no usable .next-prunerc.json")
	}

	return cfg
}

func readPackageJSONConfig(root string) (rawConfig, bool) {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return nil, false
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, false
	}

	obj, ok := pkg.NextPrune.(map[string]any)
	if !ok {
		return nil, false
	}
	return rawConfig(obj), true
}

func readRCConfig(root string) (rawConfig, bool) {
	data, err := os.ReadFile(filepath.Join(root, rcFileName))
	if err != nil {
		return nil, false
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false
	}
	return rawConfig(raw), true
}
