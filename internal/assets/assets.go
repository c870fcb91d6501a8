// Package assets resolves which image files under a project's public/
// directory are never referenced from its source, and are therefore safe
// deletion candidates.
package assets

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".svg": true,
	".webp": true, ".avif": true, ".ico": true, ".bmp": true,
}

var sourceExtensions = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true, ".css": true,
	".scss": true, ".sass": true, ".less": true, ".html": true, ".md": true, ".mdx": true,
}

var defaultSourceDirectories = []string{"src", "app", "pages", "components", "lib", "utils", "hooks"}

var extraSkipDirs = map[string]bool{"public": true, "dist": true, "build": true, "out": true}

// Options configures unused-asset resolution.
type Options struct {
	SourceDirectories []string
	ExtraSkipDirs     []string
	// ScannerSkipDirs is the scanner's default skip set, unioned with
	// extraSkipDirs and ExtraSkipDirs per spec §4.F.
	ScannerSkipDirs map[string]bool
}

type asset struct {
	fullPath     string
	filename     string
	relativePath string
}

// FindUnused returns the full paths of image files under root/public that
// are never referenced, by path or by globally-unique basename, from any
// source file directly in root or anywhere under one of the source
// directories. Returns an empty slice if root/public does not exist.
func FindUnused(root string, opts Options) ([]string, error) {
	publicDir := filepath.Join(root, "public")
	info, err := os.Stat(publicDir)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	skip := make(map[string]bool, len(extraSkipDirs)+len(opts.ExtraSkipDirs)+len(opts.ScannerSkipDirs))
	for name := range opts.ScannerSkipDirs {
		skip[name] = true
	}
	for name := range extraSkipDirs {
		skip[name] = true
	}
	for _, name := range opts.ExtraSkipDirs {
		skip[name] = true
	}

	assetList, err := collectAssets(publicDir)
	if err != nil {
		return nil, err
	}

	basenameCounts := make(map[string]int, len(assetList))
	for _, a := range assetList {
		basenameCounts[a.filename]++
	}

	sourceDirs := opts.SourceDirectories
	if len(sourceDirs) == 0 {
		sourceDirs = defaultSourceDirectories
	}

	unresolved := make(map[int]bool, len(assetList))
	for i := range assetList {
		unresolved[i] = true
	}

	visit := func(path string) error {
		if len(unresolved) == 0 {
			return nil
		}
		content, err := readUTF8(path)
		if err != nil {
			return nil
		}
		for i := range unresolved {
			a := assetList[i]
			if strings.Contains(content, a.relativePath) || strings.Contains(content, "/"+a.relativePath) {
				delete(unresolved, i)
				continue
			}
			if basenameCounts[a.filename] == 1 && strings.Contains(content, a.filename) {
				delete(unresolved, i)
			}
		}
		return nil
	}

	rootEntries, err := os.ReadDir(root)
	if err == nil {
		for _, entry := range rootEntries {
			if entry.IsDir() {
				continue
			}
			if sourceExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
				_ = visit(filepath.Join(root, entry.Name()))
			}
		}
	}

	for _, dir := range sourceDirs {
		dirPath := filepath.Join(root, dir)
		if info, err := os.Stat(dirPath); err != nil || !info.IsDir() {
			continue
		}
		_ = walkSourceFiles(dirPath, skip, visit)
	}

	out := make([]string, 0, len(unresolved))
	for i := range unresolved {
		out = append(out, assetList[i].fullPath)
	}
	return out, nil
}

func collectAssets(publicDir string) ([]asset, error) {
	var out []asset
	var walk func(dir string) error
	walk = func(dir string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil
		}
		for _, entry := range entries {
			full := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				if err := walk(full); err != nil {
					return err
				}
				continue
			}
			if !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
				continue
			}
			rel, err := filepath.Rel(publicDir, full)
			if err != nil {
				continue
			}
			out = append(out, asset{
				fullPath:     full,
				filename:     entry.Name(),
				relativePath: filepath.ToSlash(rel),
			})
		}
		return nil
	}
	if err := walk(publicDir); err != nil {
		return nil, err
	}
	return out, nil
}

func walkSourceFiles(dir string, skip map[string]bool, visit func(string) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, entry := range entries {
		if entry.IsDir() {
			if skip[entry.Name()] {
				continue
			}
			if err := walkSourceFiles(filepath.Join(dir, entry.Name()), skip, visit); err != nil {
				return err
			}
			continue
		}
		if sourceExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			if err := visit(filepath.Join(dir, entry.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

func readUTF8(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sb strings.Builder
	r := bufio.NewReader(f)
	if _, err := io.Copy(&sb, r); err != nil {
		return "", err
	}
	return sb.String(), nil
}
