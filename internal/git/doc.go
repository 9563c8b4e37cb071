// Package git provides Git operations via exec for the devtools CLIs.
//
// This package wraps git commands by shelling out to a configurable git
// executable, capturing stdout/stderr and translating failures to exit-coded
// errors. It exposes just what changed-file discovery needs:
//
//	r := git.NewRunner("git", log)
//	root, err := r.RepoRoot(ctx)     // git rev-parse --show-toplevel
//	entries, err := r.Status(ctx)    // git status --porcelain --ignore-submodules
//
// # Status Parsing
//
// ParseStatus turns porcelain v1 output into StatusEntry values. Renames
// resolve to their destination, quoted paths are decoded, and untracked
// directories are flagged with IsDir:
//
//	R  old.cc -> new.cc   => {Code: "R ", Path: "new.cc", OrigPath: "old.cc"}
//	?? src/new/           => {Code: "??", Path: "src/new", IsDir: true}
//
// Entries with D or ! in their status code are reported but not Changed().
//
// # Error Handling
//
// Errors are *output.ExitError:
//   - ExitSystemError (2) when the git binary cannot be launched
//   - git's own exit status (e.g. 128 outside a repository) when git fails
package git
