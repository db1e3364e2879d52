package cli

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aalvaropc/distmap/internal/domain"
	"github.com/aalvaropc/distmap/internal/usecase"
)

func noEnv(string) (string, bool) { return "", false }

func catalogueServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("format") != "json" || r.URL.Query().Get("response") != "full" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func distributionBody(name, distribution string) string {
	return fmt.Sprintf(`{"error_message":"","results":[{"name":%q,"distribution":%q}]}`, name, distribution)
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(noEnv)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func testDataDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.Abs(filepath.Join("testdata", "data"))
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestGenerateWritesPaintedMap(t *testing.T) {
	srv := catalogueServer(t, distributionBody("Panthera leo", "France; Germany 1990; Morocco; Atlantis"))
	out := filepath.Join(t.TempDir(), "lion.svg")

	stdout, stderr, err := runCLI(t,
		"--id", "6862841",
		"--base-url", srv.URL,
		"--data-dir", testDataDir(t),
		"--color", "Red",
		"--out", out,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v\nstderr: %s", err, stderr)
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	svg := string(b)
	if got := strings.Count(svg, `style="fill: Red;"`); got != 3 {
		t.Fatalf("expected 3 painted elements, got %d:\n%s", got, svg)
	}
	if !strings.Contains(svg, `id="EH-MA"`) {
		t.Fatalf("expected composite id to survive:\n%s", svg)
	}

	if !strings.Contains(stderr, "unknown country for location") || !strings.Contains(stderr, "Atlantis") {
		t.Fatalf("expected a warning for Atlantis, got %q", stderr)
	}
	if !strings.Contains(stdout, "Panthera leo") || !strings.Contains(stdout, "DE FR MA") {
		t.Fatalf("expected summary on stdout, got %q", stdout)
	}
}

func TestGenerateDefaultOutputPath(t *testing.T) {
	srv := catalogueServer(t, distributionBody("Panthera Leo", "USA"))
	dataDir := testDataDir(t)

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	tmp := t.TempDir()
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, stderr, err := runCLI(t, "--id", "x", "--base-url", srv.URL, "--data-dir", dataDir, "--quiet")
	if err != nil {
		t.Fatalf("unexpected error: %v\nstderr: %s", err, stderr)
	}

	b, err := os.ReadFile(filepath.Join(tmp, "panthera_leo.svg"))
	if err != nil {
		t.Fatalf("expected panthera_leo.svg: %v", err)
	}
	if !strings.Contains(string(b), `style="fill: Green;"`) {
		t.Fatalf("expected default color, got:\n%s", b)
	}
}

func TestGenerateToStdout(t *testing.T) {
	srv := catalogueServer(t, distributionBody("Puma concolor", "Spain"))

	stdout, _, err := runCLI(t, "--id", "x", "--base-url", srv.URL, "--data-dir", testDataDir(t), "--out", "-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(stdout), "<?xml") {
		t.Fatalf("expected only the svg document on stdout, got %q", stdout)
	}
	if strings.Contains(stdout, "locations") {
		t.Fatalf("summary must not be mixed into the document")
	}
}

func TestGenerateNoLocations(t *testing.T) {
	srv := catalogueServer(t, distributionBody("Ghost", ""))
	out := filepath.Join(t.TempDir(), "ghost.svg")

	_, stderr, err := runCLI(t, "--id", "x", "--base-url", srv.URL, "--data-dir", testDataDir(t), "--out", out)
	if !errors.Is(err, domain.ErrNoLocations) {
		t.Fatalf("expected ErrNoLocations, got %v", err)
	}
	if !strings.Contains(stderr, "no sampling locations recorded") {
		t.Fatalf("expected error log, got %q", stderr)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("no file must be written, stat err=%v", statErr)
	}
}

func TestGenerateRemoteError(t *testing.T) {
	srv := catalogueServer(t, `{"error_message":"No names found","results":[]}`)

	_, stderr, err := runCLI(t, "--id", "bogus", "--base-url", srv.URL, "--data-dir", testDataDir(t), "--out", filepath.Join(t.TempDir(), "x.svg"))
	if !domain.IsKind(err, domain.KindRemote) {
		t.Fatalf("expected remote error, got %v", err)
	}
	if !strings.Contains(stderr, "error downloading data from Catalogue of Life") {
		t.Fatalf("expected download error log, got %q", stderr)
	}
}

func TestGenerateMissingDataFiles(t *testing.T) {
	empty := t.TempDir()

	_, stderr, err := runCLI(t, "--id", "x", "--base-url", "http://127.0.0.1:1", "--data-dir", empty)
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
	for _, name := range []string{"map_world.svg", "codes.txt", "mapping_loc_country.json"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("expected %s in error, got %v", name, err)
		}
	}
	if !strings.Contains(stderr, "data files unavailable") {
		t.Fatalf("expected error log, got %q", stderr)
	}
}

func TestIDIsRequired(t *testing.T) {
	_, stderr, err := runCLI(t, "--data-dir", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "id") {
		t.Fatalf("expected required flag error, got %v", err)
	}
	if !strings.Contains(stderr, `"id"`) {
		t.Fatalf("expected the flag error on stderr, got %q", stderr)
	}
}

func TestFlagErrorsAreReported(t *testing.T) {
	cases := [][]string{
		{"--id"},
		{"--id", "x", "--bogus"},
		{"--id", "x", "extra"},
	}
	for _, args := range cases {
		_, stderr, err := runCLI(t, args...)
		if err == nil {
			t.Fatalf("%v: expected error", args)
		}
		if strings.TrimSpace(stderr) == "" {
			t.Fatalf("%v: expected error output on stderr", args)
		}
	}
}

func TestGenerateFailuresAreLoggedOnce(t *testing.T) {
	srv := catalogueServer(t, distributionBody("Ghost", ""))

	_, stderr, err := runCLI(t, "--id", "x", "--base-url", srv.URL, "--data-dir", testDataDir(t), "--out", filepath.Join(t.TempDir(), "g.svg"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if strings.Contains(stderr, "Error:") {
		t.Fatalf("logged failures must not be repeated by cobra, got %q", stderr)
	}
}

func TestGenerateInvalidBaseURLIsDownloadError(t *testing.T) {
	_, stderr, err := runCLI(t, "--id", "x", "--base-url", "webservice.catalogueoflife.org/col", "--data-dir", testDataDir(t), "--out", filepath.Join(t.TempDir(), "x.svg"))
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
	if !strings.Contains(stderr, "error downloading data from Catalogue of Life") {
		t.Fatalf("expected download error log, got %q", stderr)
	}
}

func TestLoadConfigFlagsWinOverEnv(t *testing.T) {
	env := func(k string) (string, bool) {
		switch k {
		case "DISTMAP_COLOR":
			return "Blue", true
		case "DISTMAP_TIMEOUT":
			return "10s", true
		}
		return "", false
	}
	changed := func(name string) bool { return name == "color" }

	cfg, err := loadConfig(t.TempDir(), rootFlags{color: "Red", timeout: "99s"}, changed, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Map.Color != "Red" {
		t.Fatalf("expected flag color, got %q", cfg.Map.Color)
	}
	if cfg.Service.Timeout != 10*time.Second {
		t.Fatalf("unset flag must not override env, got %v", cfg.Service.Timeout)
	}
}

func TestLoadConfigRejectsBadTimeoutFlag(t *testing.T) {
	changed := func(name string) bool { return name == "timeout" }
	_, err := loadConfig(t.TempDir(), rootFlags{timeout: "soon"}, changed, noEnv)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}

type fixedLocator struct {
	dir string
	err error
}

func (f fixedLocator) FindDataDir(string) (string, error) { return f.dir, f.err }

func TestResolveDataDir(t *testing.T) {
	got, err := resolveDataDir("", "/work", fixedLocator{dir: "/opt/data"})
	if err != nil || got != "/opt/data" {
		t.Fatalf("expected locator result, got %q, %v", got, err)
	}

	abs, _ := filepath.Abs("somewhere")
	got, err = resolveDataDir(" somewhere ", "/work", fixedLocator{err: errors.New("must not be called")})
	if err != nil || got != abs {
		t.Fatalf("expected configured dir %q, got %q, %v", abs, got, err)
	}
}

func TestIsCatalogueError(t *testing.T) {
	wrapped := fmt.Errorf("unexpected status 502: %w", &domain.OpError{Op: "catalogue.parse", Kind: domain.KindParse})
	if !isCatalogueError(wrapped) {
		t.Fatalf("expected wrapped catalogue error to be detected")
	}
	if isCatalogueError(&domain.OpError{Op: "reference.load_codes", Kind: domain.KindNotFound}) {
		t.Fatalf("reference errors are not download errors")
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, DefaultTheme(), usecase.GenerateMapResult{
		OrganismName: "Panthera leo",
		OutPath:      "panthera_leo.svg",
		Locations:    3,
		Countries:    []string{"DE", "FR"},
		Unresolved:   []domain.Unresolved{{Location: "Germanyy", Suggestion: "germany"}},
		Painted:      []string{"DE", "FR"},
	})

	out := buf.String()
	for _, want := range []string{"Panthera leo", "panthera_leo.svg", "DE FR", "Germanyy", `did you mean "germany"?`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in summary:\n%s", want, out)
		}
	}
}
