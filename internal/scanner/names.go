package scanner

// artifactNames are directory names always treated as a candidate of
// cleanupType=artifact, never recursed into.
var artifactNames = map[string]bool{
	".next": true, "out": true, ".turbo": true, ".vercel_build_output": true,
	"coverage": true, ".swc": true, ".docusaurus": true, "storybook-static": true,
}

// defaultSkipNames are directory names never recursed into (the user's
// SkipDirs option is added on top). The walker checks artifact names,
// node_modules and .vercel before this set, so those names can still be
// emitted as candidates; any other name here is never emitted.
var defaultSkipNames = map[string]bool{
	".git": true, ".svn": true, ".hg": true, ".next": true, ".turbo": true,
	".vercel": true, "node_modules": true, "coverage": true, ".swc": true,
	".docusaurus": true, "storybook-static": true,
}

// pmCacheRelPaths are checked only directly under each scan root.
var pmCacheRelPaths = []string{
	".npm", ".pnpm-store", ".yarn/cache", ".yarn/unplugged", ".bun/install/cache",
}

// nextConfigNames are the Next.js config filenames inspected for a custom
// distDir, checked in this order; the first one found is used.
var nextConfigNames = []string{
	"next.config.js", "next.config.mjs", "next.config.cjs",
	"next.config.ts", "next.config.mts", "next.config.cts",
}
