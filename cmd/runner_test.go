package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"vtriage/internal/models"
	"vtriage/internal/services"
	"vtriage/internal/shared"
	tu "vtriage/internal/testing"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			api := services.NewAPIService("http://example.com", httpClient)
			svc := services.NewTriageService(api)

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Service:    svc,
				API:        api,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.svc != services.Service(svc) {
				t.Error("expected service to be set")
			}
			if runner.api != api {
				t.Error("expected api to be set")
			}
			if runner.engine == nil {
				t.Error("expected engine to be constructed")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{HTTPClient: nil})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), `{"key":"value"}`) {
				t.Errorf("expected compact JSON, got %s", output.String())
			}
		})

		t.Run("fails on unmarshalable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Error("expected error for unmarshalable data")
			}
		})

		t.Run("fails on write error", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Error("expected error for failed write")
			}
		})

		t.Run("fails on newline write error", func(t *testing.T) {
			output := &bytes.Buffer{}
			limited := tu.NewLimitedWriter(1, 0, output)
			runner := NewRunner(RunnerOpts{Output: &limited})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Error("expected error when newline write fails")
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlain("hello %s\n", "world"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.String() != "hello world\n" {
			t.Errorf("unexpected output: %q", output.String())
		}

		failing := NewRunner(RunnerOpts{Output: &tu.FWriter{}})
		if err := failing.writePlain("hello"); err == nil {
			t.Error("expected error for failed write")
		}
	})
}

// newTestRunner wires a Runner to an httptest backend, capturing output.
func newTestRunner(t *testing.T, handler http.HandlerFunc) (*Runner, *bytes.Buffer) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	api := services.NewAPIService(server.URL, nil)
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Service: services.NewTriageService(api),
		API:     api,
		Output:  output,
	})
	return runner, output
}

func runCommand(t *testing.T, r *Runner, args ...string) error {
	t.Helper()

	app := &cli.Command{
		Name:     "vtriage",
		Commands: r.register(),
	}
	return app.Run(context.Background(), append([]string{"vtriage"}, args...))
}

func TestVideoCommands(t *testing.T) {
	t.Run("inbox lists videos", func(t *testing.T) {
		runner, output := newTestRunner(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/videos/inbox" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode([]models.Video{
				{ID: "v1", Title: "First Video"},
			})
		})

		if err := runCommand(t, runner, "videos", "inbox"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "First Video") {
			t.Errorf("expected video title in output, got %s", output.String())
		}
	})

	t.Run("inbox json output", func(t *testing.T) {
		runner, output := newTestRunner(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]models.Video{{ID: "v1", Title: "First Video"}})
		})

		if err := runCommand(t, runner, "videos", "inbox", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		var videos []models.Video
		if err := json.Unmarshal(output.Bytes(), &videos); err != nil {
			t.Fatalf("expected JSON output, got %s", output.String())
		}
		if len(videos) != 1 || videos[0].ID != "v1" {
			t.Errorf("unexpected videos: %v", videos)
		}
	})

	t.Run("save single video", func(t *testing.T) {
		runner, output := newTestRunner(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/videos/v1/save" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(models.Video{ID: "v1", Title: "Kept", Status: models.StatusSaved})
		})

		if err := runCommand(t, runner, "videos", "save", "v1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "saved") {
			t.Errorf("expected saved confirmation, got %s", output.String())
		}
	})

	t.Run("save multiple videos uses bulk endpoint", func(t *testing.T) {
		var bulkCalls int
		runner, output := newTestRunner(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/videos/bulk-save" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			bulkCalls++
			json.NewEncoder(w).Encode([]models.Video{
				{ID: "v1", Status: models.StatusSaved},
				{ID: "v2", Status: models.StatusSaved},
			})
		})

		if err := runCommand(t, runner, "videos", "save", "v1", "v2"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if bulkCalls != 1 {
			t.Errorf("expected one bulk call, got %d", bulkCalls)
		}
		if !strings.Contains(output.String(), "Succeeded: 2") {
			t.Errorf("expected aggregate in output, got %s", output.String())
		}
	})

	t.Run("save requires an id", func(t *testing.T) {
		runner, _ := newTestRunner(t, func(w http.ResponseWriter, r *http.Request) {})

		if err := runCommand(t, runner, "videos", "save"); err == nil {
			t.Error("expected error for missing id")
		}
	})

	t.Run("purge requires confirmation", func(t *testing.T) {
		called := false
		runner, _ := newTestRunner(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		if err := runCommand(t, runner, "videos", "purge"); err == nil {
			t.Error("expected error without --yes")
		}
		if called {
			t.Error("expected no backend call without confirmation")
		}
	})

	t.Run("purge with confirmation", func(t *testing.T) {
		runner, output := newTestRunner(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				t.Errorf("expected DELETE, got %s", r.Method)
			}
			json.NewEncoder(w).Encode(models.PurgeResult{DeletedCount: 4, Message: "Permanently deleted 4 videos"})
		})

		if err := runCommand(t, runner, "videos", "purge", "--yes"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Permanently deleted 4 videos") {
			t.Errorf("expected purge message, got %s", output.String())
		}
	})
}

func TestImportExportCommands(t *testing.T) {
	t.Run("import urls from arguments", func(t *testing.T) {
		runner, output := newTestRunner(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/import-export/import/video-urls" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(models.ImportResult{Total: 1, Imported: 1})
		})

		if err := runCommand(t, runner, "import", "urls", "https://youtube.com/watch?v=a"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Succeeded: 1") {
			t.Errorf("expected import aggregate, got %s", output.String())
		}
	})

	t.Run("import urls requires input", func(t *testing.T) {
		runner, _ := newTestRunner(t, func(w http.ResponseWriter, r *http.Request) {})

		if err := runCommand(t, runner, "import", "urls"); err == nil {
			t.Error("expected error without urls")
		}
	})

	t.Run("export writes file", func(t *testing.T) {
		runner, output := newTestRunner(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(models.ExportData{
				Version:  "1.0",
				Channels: []models.ChannelExport{{YouTubeChannelID: "UC1", Name: "Chan"}},
			})
		})

		path := t.TempDir() + "/export.json"
		if err := runCommand(t, runner, "export", "--output", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, path)
		content := tu.MustReadFile(t, path)
		if !strings.Contains(content, "UC1") {
			t.Errorf("expected channel in export file, got %s", content)
		}
		if !strings.Contains(output.String(), "Exported 1 channels") {
			t.Errorf("expected summary, got %s", output.String())
		}
	})
}
