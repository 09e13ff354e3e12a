package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/baasman/cakecutter/internal/app"
	"github.com/baasman/cakecutter/internal/template/generator"
)

func TestE2E_SimpleTemplate(t *testing.T) {
	tempDir := t.TempDir()
	templatePath := copyFixtureToTemp(t, "simple-template", tempDir)
	chdir(t, tempDir)

	cfg := testConfig()
	cfg.DefaultContext["author"] = "Config Author"
	cfg.DefaultContext["year"] = "2026"

	result, err := app.Generate(context.Background(), cfg, app.GenerateOptions{
		Template:  templatePath,
		OutputDir: "out",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.Generation.State != generator.StateComplete {
		t.Errorf("state = %v, want complete", result.Generation.State)
	}

	readme := readFile(t, filepath.Join("out", "hello-world", "README.md"))
	for _, want := range []string{
		"# Hello World",
		"Maintained by Jane Doe.",
		"Licensed under MIT.",
		"Use {{ placeholders }} in your own templates.",
	} {
		if !strings.Contains(readme, want) {
			t.Errorf("README.md missing %q:\n%s", want, readme)
		}
	}
	if strings.Contains(readme, "internal note") {
		t.Errorf("comment was not dropped:\n%s", readme)
	}

	doc := readFile(t, filepath.Join("out", "hello-world", "docs", "hello_world.md"))
	if strings.TrimSpace(doc) != "Documentation for Hello World." {
		t.Errorf("doc = %q", doc)
	}

	// The template's declared values win; config defaults fill the rest.
	if got, _ := result.Template.Context.Get("author"); got.Text() != "Jane Doe" {
		t.Errorf("author = %v, want Jane Doe", got)
	}
	if got, _ := result.Template.Context.Get("year"); got.Text() != "2026" {
		t.Errorf("year = %v, want 2026", got)
	}
}

func TestE2E_GoProject(t *testing.T) {
	tempDir := t.TempDir()
	templatePath := copyFixtureToTemp(t, "go-project", tempDir)
	chdir(t, tempDir)

	fixture := filepath.Join(templatePath, "{{cakecutter.project_slug}}")
	result, err := app.Generate(context.Background(), testConfig(), app.GenerateOptions{
		Template:  templatePath,
		OutputDir: "out",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	project := filepath.Join("out", "svc")
	if got := readFile(t, filepath.Join(project, "go.mod")); got != "module github.com/acme/svc\n\ngo 1.21\n" {
		t.Errorf("go.mod = %q", got)
	}
	if got := readFile(t, filepath.Join(project, "cmd", "svc", "main.go")); !strings.Contains(got, `fmt.Println("svc")`) {
		t.Errorf("main.go not rendered:\n%s", got)
	}

	// Copy-only and binary files are byte-identical to the template.
	for _, rel := range []string{"templates/page.tmpl", "assets/logo.bin", "favicon.ico"} {
		want, err := os.ReadFile(filepath.Join(fixture, filepath.FromSlash(rel)))
		if err != nil {
			t.Fatal(err)
		}
		got, err := os.ReadFile(filepath.Join(project, filepath.FromSlash(rel)))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("%s changed: got %q, want %q", rel, got, want)
		}
	}
	if result.Generation.FilesCopied != 3 {
		t.Errorf("FilesCopied = %d, want 3", result.Generation.FilesCopied)
	}
}

func TestE2E_Overwrite(t *testing.T) {
	tempDir := t.TempDir()
	templatePath := copyFixtureToTemp(t, "simple-template", tempDir)
	chdir(t, tempDir)

	opts := app.GenerateOptions{Template: templatePath, OutputDir: "out"}
	if _, err := app.Generate(context.Background(), testConfig(), opts); err != nil {
		t.Fatalf("first Generate failed: %v", err)
	}

	extra := filepath.Join("out", "hello-world", "NOTES.txt")
	if err := os.WriteFile(extra, []byte("mine"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := app.Generate(context.Background(), testConfig(), opts)
	if kind := app.Classify(err); kind != app.KindDestinationExists {
		t.Fatalf("second Generate: kind = %v, want destination exists (err: %v)", kind, err)
	}

	opts.Overwrite = true
	result, err := app.Generate(context.Background(), testConfig(), opts)
	if err != nil {
		t.Fatalf("overwrite Generate failed: %v", err)
	}
	if result.Generation.FilesOverwritten != 2 {
		t.Errorf("FilesOverwritten = %d, want 2", result.Generation.FilesOverwritten)
	}
	if got := readFile(t, extra); got != "mine" {
		t.Errorf("unrelated file changed: %q", got)
	}
}

func TestE2E_DryRun(t *testing.T) {
	tempDir := t.TempDir()
	templatePath := copyFixtureToTemp(t, "go-project", tempDir)
	chdir(t, tempDir)

	result, err := app.Generate(context.Background(), testConfig(), app.GenerateOptions{
		Template:  templatePath,
		OutputDir: "out",
		DryRun:    true,
	})
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if len(result.Generation.DryRunFiles) != 5 {
		t.Errorf("planned %d files, want 5", len(result.Generation.DryRunFiles))
	}
	if _, err := os.Stat("out"); !os.IsNotExist(err) {
		t.Errorf("dry run created output: %v", err)
	}
}

func TestE2E_RenderFailureLeavesNothing(t *testing.T) {
	tempDir := t.TempDir()
	templatePath := copyFixtureToTemp(t, "simple-template", tempDir)
	chdir(t, tempDir)

	broken := filepath.Join(templatePath, "{{cakecutter.project_slug}}", "zz-broken.txt")
	if err := os.WriteFile(broken, []byte("{{ cakecutter.undefined }}"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, keep := range []bool{false, true} {
		result, err := app.Generate(context.Background(), testConfig(), app.GenerateOptions{
			Template:      templatePath,
			OutputDir:     "out",
			KeepOnFailure: keep,
		})
		if kind := app.Classify(err); kind != app.KindRender {
			t.Fatalf("keep=%v: kind = %v, want render (err: %v)", keep, kind, err)
		}
		if result.Generation.State != generator.StateAborted {
			t.Errorf("keep=%v: state = %v, want aborted", keep, result.Generation.State)
		}
		if _, err := os.Stat(filepath.Join("out", "hello-world")); !os.IsNotExist(err) {
			t.Errorf("keep=%v: destination exists after failed run", keep)
		}
	}
}

func TestE2E_TemplateSubdirectory(t *testing.T) {
	tempDir := t.TempDir()
	copyFixtureToTemp(t, "go-project", filepath.Join(tempDir, "repo", "templates"))
	chdir(t, tempDir)

	result, err := app.Generate(context.Background(), testConfig(), app.GenerateOptions{
		Template:  "repo",
		Directory: filepath.Join("templates", "go-project"),
		OutputDir: "out",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.Generation.Destination != filepath.Join("out", "svc") {
		t.Errorf("destination = %s", result.Generation.Destination)
	}

	_, err = app.Generate(context.Background(), testConfig(), app.GenerateOptions{
		Template:  "repo",
		Directory: "../outside",
		OutputDir: "out",
	})
	if kind := app.Classify(err); kind != app.KindProvider {
		t.Errorf("escaping directory: kind = %v, want template source error", kind)
	}
}
