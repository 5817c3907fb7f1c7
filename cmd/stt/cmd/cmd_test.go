package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/templui/screentime/internal/service"
)

func setupEnv(t *testing.T, backend string) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("APP_ENV", "development")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("STORE_BACKEND", backend)
	t.Setenv("DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("DB_CONNECTION", filepath.Join(dir, "data", "stt.db"))
	t.Setenv("BACKUP_DIR", filepath.Join(dir, "backups"))
	t.Setenv("S3_BUCKET", "")
	t.Setenv("SENTRY_DSN", "")
	t.Setenv("DIGEST_EMAIL", "me@example.com")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := RootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("stt %s: %v", strings.Join(args, " "), err)
	}
	return out
}

// tableID returns the ID column of the table row that mentions name.
func tableID(t *testing.T, out, name string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, name) {
			continue
		}
		for _, f := range strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == '│' || r == '|' }) {
			if len(f) == 36 && strings.Count(f, "-") == 4 {
				return f
			}
		}
	}
	t.Fatalf("no ID for %q in:\n%s", name, out)
	return ""
}

func TestAddTodayAndGoals(t *testing.T) {
	setupEnv(t, "file")

	out := mustRun(t, "add", "YouTube", "95", "-c", "entertainment", "-d", "tv")
	if !strings.Contains(out, "YouTube 1h 35m on "+time.Now().UTC().Format("2006-01-02")) {
		t.Errorf("add output = %q", out)
	}

	out = mustRun(t, "today")
	for _, want := range []string{"1h 35m", "Entertainment", "YouTube", "100.0%"} {
		if !strings.Contains(out, want) {
			t.Errorf("today output missing %q:\n%s", want, out)
		}
	}

	mustRun(t, "goals", "add", "category", "entertainment", "60")
	if _, err := run(t, "goals", "add", "category", "entertainment", "30"); err == nil {
		t.Error("duplicate category goal accepted")
	}
	for _, minutes := range []string{"lots", "30abc", "1.5"} {
		if _, err := run(t, "add", "YouTube", minutes); err == nil {
			t.Errorf("minutes %q accepted", minutes)
		}
	}
	if _, err := run(t, "goals", "add", "total", "90min"); err == nil {
		t.Error("limit 90min accepted")
	}

	out = mustRun(t, "goals")
	if !strings.Contains(out, "over by 35m") {
		t.Errorf("goals output = %q", out)
	}

	mustRun(t, "add", "Reddit", "5", "-c", "social")
	id := tableID(t, mustRun(t, "today"), "Reddit")
	if out := mustRun(t, "rm", id); !strings.Contains(out, "deleted "+id) {
		t.Errorf("rm output = %q", out)
	}

	mustRun(t, "goals", "add", "app", "Reddit", "10")
	goalID := tableID(t, mustRun(t, "goals"), "Reddit")
	if out := mustRun(t, "goals", "rm", goalID); !strings.Contains(out, "deleted goal "+goalID) {
		t.Errorf("goals rm output = %q", out)
	}

	out = mustRun(t, "digest", "--dry-run")
	if !strings.Contains(out, "Goals exceeded") {
		t.Errorf("digest output = %q", out)
	}
	if out := mustRun(t, "digest"); !strings.Contains(out, "me@example.com") {
		t.Errorf("digest send output = %q", out)
	}
}

func TestExportImportAndBackup(t *testing.T) {
	dir := setupEnv(t, "sql")

	if out := mustRun(t, "migrate", "up"); !strings.Contains(out, "schema version: 1") {
		t.Errorf("migrate up = %q", out)
	}
	if out := mustRun(t, "migrate", "status"); !strings.Contains(out, "schema version: 1") {
		t.Errorf("migrate status = %q", out)
	}

	mustRun(t, "add", "Slack", "30", "-c", "communication", "-d", "laptop", "--date", "2026-10-16")
	file := filepath.Join(dir, "export.json")
	mustRun(t, "export", file)

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"app": "Slack"`) {
		t.Errorf("export = %s", data)
	}

	if out := mustRun(t, "backup"); !strings.Contains(out, "saved backups/") {
		t.Errorf("backup output = %q", out)
	}
	out := mustRun(t, "backup", "list")
	if !strings.Contains(out, ".json") {
		t.Errorf("backup list = %q", out)
	}
	saved := strings.Fields(out)[0]
	if out := mustRun(t, "backup", "rm", saved); !strings.Contains(out, "deleted "+saved) {
		t.Errorf("backup rm = %q", out)
	}
	if _, err := run(t, "backup", "rm", saved); err == nil {
		t.Error("second backup rm succeeded")
	}

	if out := mustRun(t, "import", "--merge", file); !strings.Contains(out, "1 entries") {
		t.Errorf("merge import = %q", out)
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte(`[]`), 0o600); err != nil {
		t.Fatal(err)
	}
	if out := mustRun(t, "import", empty); !strings.Contains(out, "0 entries") {
		t.Errorf("replace import = %q", out)
	}
}

func TestMigrateRequiresSQLBackend(t *testing.T) {
	setupEnv(t, "file")
	if _, err := run(t, "migrate", "up"); err == nil {
		t.Error("migrate accepted the file backend")
	}
}

func TestBackupAge(t *testing.T) {
	p := "backups/" + service.BackupName(time.Now().Add(-3*time.Hour))
	if got := backupAge(p); got != "3 hours ago" {
		t.Errorf("backupAge = %q", got)
	}
	if got := backupAge("backups/notes.json"); got != "" {
		t.Errorf("backupAge(non timestamp) = %q", got)
	}
}
