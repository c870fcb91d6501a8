// Package model holds the data types shared across next-prune's discovery
// and safety pipeline: the enums and records described in spec §3 that flow
// from config through scanning, classification, and deletion.
package model

import "time"

// CleanupScope identifies whether a candidate was discovered inside the root
// project or a workspace subtree.
type CleanupScope string

const (
	ScopeProject   CleanupScope = "project"
	ScopeWorkspace CleanupScope = "workspace"
)

// CleanupType is the fine-grained origin tag attached at discovery time.
type CleanupType string

const (
	CleanupArtifact               CleanupType = "artifact"
	CleanupAsset                  CleanupType = "asset"
	CleanupPMCache                CleanupType = "pm-cache"
	CleanupWorkspaceNodeModules   CleanupType = "workspace-node-modules"
)

// CandidateType is the policy-facing family derived from a ScanItem by the
// classifier.
type CandidateType string

const (
	CandidateArtifact     CandidateType = "artifact"
	CandidateAsset        CandidateType = "asset"
	CandidateNodeModules  CandidateType = "node_modules"
	CandidatePMCache      CandidateType = "pm-cache"
)

// MonorepoMode controls whether workspace discovery runs at all.
type MonorepoMode string

const (
	MonorepoAuto MonorepoMode = "auto"
	MonorepoOn   MonorepoMode = "on"
	MonorepoOff  MonorepoMode = "off"
)

// WorkspaceDiscoveryMode controls how workspace directories are discovered.
type WorkspaceDiscoveryMode string

const (
	DiscoveryManifestFallback WorkspaceDiscoveryMode = "manifest-fallback"
	DiscoveryManifestOnly     WorkspaceDiscoveryMode = "manifest-only"
	DiscoveryHeuristicOnly    WorkspaceDiscoveryMode = "heuristic-only"
)

// WorkspaceSource records how a WorkspaceDiscoveryResult was produced.
type WorkspaceSource string

const (
	SourceManifest  WorkspaceSource = "manifest"
	SourceHeuristic WorkspaceSource = "heuristic"
	SourceNone      WorkspaceSource = "none"
)

// ArtifactStats describes the recursive size/age of a scan candidate.
type ArtifactStats struct {
	Size        uint64
	MTime       time.Time
	FileCount   uint64
	IsDirectory bool
	Error       string
}

// ScanItem is one deletion candidate discovered by the scanner.
type ScanItem struct {
	Path         string
	RealPath     string
	Stats        ArtifactStats
	CleanupScope CleanupScope
	CleanupType  CleanupType
}

// DeleteResult is the per-item outcome of a deletion attempt.
type DeleteResult struct {
	Path          string
	OK            bool
	ReclaimedSize uint64
	Error         string
}

// DeleteSummary aggregates a batch of DeleteResults.
type DeleteSummary struct {
	Results        []DeleteResult
	DeletedCount   int
	FailureCount   int
	ReclaimedBytes uint64
}

// WorkspaceDiscoveryResult is the output of the workspace resolver.
type WorkspaceDiscoveryResult struct {
	RootRealpath        string
	WorkspaceDirectories []string
	Source              WorkspaceSource
	ManifestPatterns     []string
	HasManifest          bool
}

// PruneConfig is the fully-normalized, defaulted configuration consumed by
// the scanner, classifier, and policy layers.
type PruneConfig struct {
	AlwaysDelete                []string
	NeverDelete                 []string
	CheckUnusedAssets           bool
	MonorepoMode                MonorepoMode
	WorkspaceDiscoveryMode      WorkspaceDiscoveryMode
	CleanupScopes               []CleanupScope
	IncludeNodeModules          bool
	IncludeProjectLocalPmCaches bool
	MaxScanDepth                *int
}

// Defaults returns the baseline PruneConfig used when no config file
// supplies a value for a field.
func Defaults() PruneConfig {
	return PruneConfig{
		AlwaysDelete:                nil,
		NeverDelete:                 nil,
		CheckUnusedAssets:           false,
		MonorepoMode:                MonorepoAuto,
		WorkspaceDiscoveryMode:      DiscoveryManifestFallback,
		CleanupScopes:               []CleanupScope{ScopeProject, ScopeWorkspace},
		IncludeNodeModules:          false,
		IncludeProjectLocalPmCaches: false,
		MaxScanDepth:                nil,
	}
}
