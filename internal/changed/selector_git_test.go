package changed

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"testing"

	"github.com/gorewood/devtools/internal/git"
)

func TestSelect_RealRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	runner := &git.Runner{Dir: dir}
	ctx := context.Background()

	run := func(args ...string) {
		t.Helper()
		if _, err := runner.Run(ctx, args...); err != nil {
			t.Fatalf("git %v: %v", args, err)
		}
	}
	write := func(rel string) {
		t.Helper()
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("int v;\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	run("init", "--initial-branch=main")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "Test User")
	run("config", "commit.gpgsign", "false")
	write("src/a.cpp")
	write("src/gone.cpp")
	write(".gitignore")
	run("add", ".")
	run("commit", "-m", "initial")

	if err := os.WriteFile(filepath.Join(dir, "src", "a.cpp"), []byte("int changed;\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	run("rm", "-q", "src/gone.cpp")
	write("newdir/b.h")
	write("newdir/skip.txt")

	sel := NewSelector(runner, NewFilter("*.cpp,*.h", nil), nil)
	got, err := sel.Select(ctx)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "newdir", "b.h"),
		filepath.Join(dir, "src", "a.cpp"),
	}
	slices.Sort(got)
	if !slices.Equal(got, want) {
		t.Errorf("Select() = %v, want %v", got, want)
	}
}
