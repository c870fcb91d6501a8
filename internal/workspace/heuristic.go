package workspace

import "path/filepath"

var heuristicParents = []string{"apps", "packages", "services", "libs"}

// discoverHeuristic inspects the conventional monorepo parent directories
// under root, and falls back to scanning root's own top-level subdirectories
// if none of those parents yielded anything (keeps flat single-repo layouts
// working).
func discoverHeuristic(root string) []string {
	var found []string

	for _, parent := range heuristicParents {
		parentDir := filepath.Join(root, parent)
		if !isDir(parentDir) {
			continue
		}
		for _, name := range listSubdirs(parentDir) {
			if WorkspaceSkipDirs[name] {
				continue
			}
			candidate := filepath.Join(parentDir, name)
			if isPackageDir(candidate) {
				if abs, err := filepath.Abs(candidate); err == nil {
					found = append(found, abs)
				}
			}
		}
	}

	if len(found) > 0 {
		return found
	}

	for _, name := range listSubdirs(root) {
		if WorkspaceSkipDirs[name] {
			continue
		}
		candidate := filepath.Join(root, name)
		if isPackageDir(candidate) {
			if abs, err := filepath.Abs(candidate); err == nil {
				found = append(found, abs)
			}
		}
	}

	return found
}
