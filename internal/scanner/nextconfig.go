package scanner

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/nextprune/nextprune/internal/pathutil"
)

var (
	blockCommentPattern = regexp.MustCompile(`/\*[\s\S]*?\*/`)
	lineCommentPattern  = regexp.MustCompile(`//[^\n]*`)
	distDirPattern      = regexp.MustCompile("\\bdistDir\\s*:\\s*(?:'([^']*)'|\"([^\"]*)\"|`([^`]*)`)")
)

// findCustomDistDir reads the first next.config.{js,mjs,cjs,ts,mts,cts} file
// present directly in dirPath and extracts a custom distDir, if any. It
// returns the joined absolute candidate path and true if a valid relative
// distDir was found and the joined path is an existing directory.
func findCustomDistDir(dirPath string) (string, bool) {
	for _, name := range nextConfigNames {
		path := filepath.Join(dirPath, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		stripped := stripComments(string(data))
		idx := distDirPattern.FindStringSubmatchIndex(stripped)
		if idx == nil {
			return "", false
		}

		var raw string
		switch {
		case idx[2] != -1:
			raw = stripped[idx[2]:idx[3]]
		case idx[4] != -1:
			raw = stripped[idx[4]:idx[5]]
		case idx[6] != -1:
			raw = stripped[idx[6]:idx[7]]
		default:
			return "", false
		}
		if raw == "" || raw[0] == '/' {
			return "", false
		}
		rel, err := pathutil.NormalizePathPattern(raw)
		if err != nil {
			return "", false
		}

		candidate := filepath.Join(dirPath, rel)
		info, err := os.Stat(candidate)
		if err != nil || !info.IsDir() {
			return "", false
		}
		return candidate, true
	}
	return "", false
}

func stripComments(src string) string {
	src = blockCommentPattern.ReplaceAllString(src, "")
	src = lineCommentPattern.ReplaceAllString(src, "")
	return src
}
