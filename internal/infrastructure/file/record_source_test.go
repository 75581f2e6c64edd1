package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/campushub/user-gateway/internal/infrastructure/file"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "users.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestRecordSourceReadsCSV(t *testing.T) {
	t.Parallel()

	path := writeTempCSV(t, "email,password,role,given_name,family_name,name\n"+
		"alice@example.com,secretpass1,teacher,Alice,Smith,Alice Smith\n"+
		"bob@example.com,,student,,,\n")

	source, err := file.NewRecordSource(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records, err := source.Records()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Email != "alice@example.com" || first.Role != "teacher" || first.GivenName != "Alice" {
		t.Fatalf("unexpected record: %+v", first)
	}
	if records[1].Password != "" {
		t.Fatalf("expected empty password, got %q", records[1].Password)
	}
}

func TestRecordSourceHeaderOrderIndependent(t *testing.T) {
	t.Parallel()

	path := writeTempCSV(t, "role,email\nstaff,carol@example.com\n")

	source, err := file.NewRecordSource(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records, err := source.Records()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Email != "carol@example.com" || records[0].Role != "staff" {
		t.Fatalf("unexpected record: %+v", records[0])
	}
}

func TestRecordSourceCloseRemovesFile(t *testing.T) {
	t.Parallel()

	path := writeTempCSV(t, "email,role\n")

	source, err := file.NewRecordSource(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := source.Close(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expected upload file to be removed")
	}

	// Closing twice must stay quiet: the deferred cleanup can race a
	// manual one.
	if err := source.Close(); err != nil {
		t.Fatalf("expected second close to succeed, got %v", err)
	}
}

func TestRecordSourceRejectsUnknownExtension(t *testing.T) {
	t.Parallel()

	if _, err := file.NewRecordSource("upload.pdf"); err == nil {
		t.Fatal("expected unsupported type error")
	}
}

func TestRecordSourceEmptyFile(t *testing.T) {
	t.Parallel()

	path := writeTempCSV(t, "")

	source, err := file.NewRecordSource(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	records, err := source.Records()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}
