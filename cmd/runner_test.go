package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"
	"github.com/ytmcli/ytmcli/internal/models"
	"github.com/ytmcli/ytmcli/internal/shared"
	"github.com/ytmcli/ytmcli/internal/store"
	tu "github.com/ytmcli/ytmcli/internal/testing"
)

func newTestStores(t *testing.T) (*store.PlaylistStore, *store.DislikeStore, *sql.DB) {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := store.Init(db); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}

	return store.NewPlaylistStore(db), store.NewDislikeStore(db), db
}

func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()

	playlists, dislikes, _ := newTestStores(t)
	output := &bytes.Buffer{}

	runner := NewRunner(RunnerOpts{
		YouTube:   &tu.MockSearchService{},
		Lyrics:    &tu.MockLyricsProvider{},
		Playlists: playlists,
		Dislikes:  dislikes,
		Logger:    shared.NewLogger(io.Discard),
		Output:    output,
	})

	return runner, output
}

func runCLI(t *testing.T, r *Runner, args ...string) error {
	t.Helper()

	app := &cli.Command{
		Name:     "ytmcli",
		Commands: r.register(),
	}
	return app.Run(context.Background(), append([]string{"ytmcli"}, args...))
}

func TestNewRunner(t *testing.T) {
	t.Run("with nil config uses defaults", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		if runner.config == nil {
			t.Error("expected default config to be set")
		}
	})

	t.Run("with nil logger uses default", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		if runner.logger == nil {
			t.Error("expected default logger to be set")
		}
	})

	t.Run("with nil output uses stdout", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		if runner.output != os.Stdout {
			t.Error("expected output to default to os.Stdout")
		}
	})

	t.Run("queue builder requires search and dislikes", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{YouTube: &tu.MockSearchService{}})
		if runner.queue != nil {
			t.Error("expected no queue builder without a dislike store")
		}

		_, dislikes, _ := newTestStores(t)
		runner = NewRunner(RunnerOpts{YouTube: &tu.MockSearchService{}, Dislikes: dislikes})
		if runner.queue == nil {
			t.Error("expected queue builder with both dependencies")
		}
	})
}

func TestWriters(t *testing.T) {
	t.Run("writeJSON compact and pretty", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(io.Discard)})

		if err := runner.writeJSON(map[string]int{"a": 1}, false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := output.String(); got != "{\"a\":1}\n" {
			t.Errorf("unexpected compact output: %q", got)
		}

		output.Reset()
		if err := runner.writeJSON(map[string]int{"a": 1}, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "  \"a\": 1") {
			t.Errorf("expected indented output, got %q", output.String())
		}
	})

	t.Run("writePlain propagates writer errors", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}, Logger: shared.NewLogger(io.Discard)})
		if err := runner.writePlain("hello"); err == nil {
			t.Error("expected write error")
		}
	})
}

func TestPlaylistCommands(t *testing.T) {
	seed := func(t *testing.T, r *Runner) {
		t.Helper()
		tracks := []models.Track{
			{VideoID: "v1", Title: "One", Artist: "A", Duration: 100},
			{VideoID: "v2", Title: "Two", Artist: "B", Duration: 200},
		}
		for _, track := range tracks {
			if err := r.playlists.AddTrack("Road Trip", track); err != nil {
				t.Fatalf("failed to seed playlist: %v", err)
			}
		}
	}

	t.Run("list reports empty store", func(t *testing.T) {
		runner, output := newTestRunner(t)

		if err := runCLI(t, runner, "playlist", "list"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "No playlists") {
			t.Errorf("expected empty message, got %q", output.String())
		}
	})

	t.Run("list shows names and counts", func(t *testing.T) {
		runner, output := newTestRunner(t)
		seed(t, runner)

		if err := runCLI(t, runner, "playlist", "list"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "Road Trip (2 tracks)") {
			t.Errorf("expected playlist row, got %q", output.String())
		}
	})

	t.Run("show prints tracks in order", func(t *testing.T) {
		runner, output := newTestRunner(t)
		seed(t, runner)

		if err := runCLI(t, runner, "playlist", "show", "Road Trip"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := output.String()
		first := strings.Index(got, "One - A")
		second := strings.Index(got, "Two - B")
		if first == -1 || second == -1 || first > second {
			t.Errorf("expected ordered tracks, got %q", got)
		}
	})

	t.Run("show unknown playlist fails", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		err := runCLI(t, runner, "playlist", "show", "Nope")
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("delete removes the playlist", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		seed(t, runner)

		if err := runCLI(t, runner, "playlist", "delete", "Road Trip"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		names, err := runner.playlists.Names()
		if err != nil {
			t.Fatalf("failed to list names: %v", err)
		}
		if len(names) != 0 {
			t.Errorf("expected no playlists, got %v", names)
		}
	})

	t.Run("export writes csv files", func(t *testing.T) {
		runner, output := newTestRunner(t)
		seed(t, runner)

		base := filepath.Join(t.TempDir(), "export")
		if err := runCLI(t, runner, "playlist", "export", "Road Trip", "--format", "csv", "--output", base); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		tu.AssertFileExists(t, base+"_tracks.csv")
		tu.AssertFileExists(t, base+"_metadata.json")
		if !strings.Contains(output.String(), "Exported tracks") {
			t.Errorf("expected confirmation, got %q", output.String())
		}
	})

	t.Run("export rejects unknown format", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		seed(t, runner)

		err := runCLI(t, runner, "playlist", "export", "Road Trip", "--format", "yaml")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("commands fail without a database", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: &bytes.Buffer{}})

		err := runCLI(t, runner, "playlist", "list")
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestDislikeCommands(t *testing.T) {
	t.Run("list remove clear round trip", func(t *testing.T) {
		runner, output := newTestRunner(t)

		for _, track := range []models.Track{
			{VideoID: "v1", Title: "One", Artist: "A"},
			{VideoID: "v2", Title: "Two", Artist: "B"},
		} {
			if err := runner.dislikes.Add(track); err != nil {
				t.Fatalf("failed to seed dislikes: %v", err)
			}
		}

		if err := runCLI(t, runner, "dislikes", "list"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "One - A") {
			t.Errorf("expected disliked track in output, got %q", output.String())
		}

		if err := runCLI(t, runner, "dislikes", "remove", "v1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if disliked, _ := runner.dislikes.IsDisliked("v1"); disliked {
			t.Error("expected v1 to be removed")
		}

		output.Reset()
		if err := runCLI(t, runner, "dislikes", "clear"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "Removed 1") {
			t.Errorf("expected clear count, got %q", output.String())
		}
	})

	t.Run("remove unknown id fails", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		err := runCLI(t, runner, "dislikes", "remove", "missing")
		if !errors.Is(err, shared.ErrTrackNotFound) {
			t.Errorf("expected ErrTrackNotFound, got %v", err)
		}
	})
}

func TestPlayValidation(t *testing.T) {
	t.Run("requires a query", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		err := runCLI(t, runner, "play")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("requires the search service", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: &bytes.Buffer{}})

		err := runCLI(t, runner, "play", "some song")
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestSetupCommands(t *testing.T) {
	t.Run("setup config creates the file", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := runCLI(t, runner, "setup", "config", "--config", configPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		tu.AssertFileExists(t, configPath)
		if _, err := shared.LoadConfig(configPath); err != nil {
			t.Errorf("created config should parse: %v", err)
		}
	})

	t.Run("setup database initializes the schema", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.toml")
		dbPath := filepath.Join(dir, "test.db")

		content := "[database]\npath = \"" + dbPath + "\"\n"
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if err := runCLI(t, runner, "setup", "database", "--config", configPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		tu.AssertFileExists(t, dbPath)

		db, err := shared.NewDatabase(dbPath)
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer db.Close()

		var count int
		row := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('playlists','playlist_tracks','dislikes')")
		if err := row.Scan(&count); err != nil {
			t.Fatalf("failed to query schema: %v", err)
		}
		if count != 3 {
			t.Errorf("expected 3 tables, got %d", count)
		}
	})

	t.Run("setup auth writes browser.json from curl", func(t *testing.T) {
		runner, output := newTestRunner(t)
		outputPath := filepath.Join(t.TempDir(), "browser.json")

		curl := `curl 'https://music.youtube.com/youtubei/v1/browse' -H 'Cookie: VISITOR_INFO1_LIVE=abc' -H 'User-Agent: Mozilla/5.0' -H 'Authorization: SAPISIDHASH xyz'`
		if err := runCLI(t, runner, "setup", "auth", "--curl", curl, "--output", outputPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content := tu.MustReadFile(t, outputPath)
		if !strings.Contains(content, "authorization") {
			t.Errorf("expected lower-cased headers in browser.json, got %s", content)
		}
		if !strings.Contains(output.String(), "Auth file saved") {
			t.Errorf("expected confirmation, got %q", output.String())
		}
	})

	t.Run("setup auth rejects conflicting flags", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		err := runCLI(t, runner, "setup", "auth", "--curl", "curl 'x'", "--curl-file", "y.sh")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("setup auth requires a source", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		err := runCLI(t, runner, "setup", "auth")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}
