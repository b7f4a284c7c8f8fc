package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/Conceptual-Machines/echo-api/internal/audio"
	"github.com/Conceptual-Machines/echo-api/internal/config"
	"github.com/Conceptual-Machines/echo-api/internal/database"
	"github.com/Conceptual-Machines/echo-api/internal/drafts"
	"github.com/Conceptual-Machines/echo-api/internal/metrics"
)

func openStore(ctx context.Context, cfg *config.Config) (*drafts.Store, error) {
	db, err := database.Connect(ctx, cfg.DBType, cfg.DatabaseURL, debugSQL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return drafts.NewStore(db), nil
}

func listDrafts(ctx context.Context, cfg *config.Config) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	list, err := store.ListDrafts(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tUPDATED\tLINES\tGENERATED")
	for _, d := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%t\n", d.ID, d.Name, d.UpdatedAt.Format(time.RFC3339), len(d.Song.Lyrics), d.Song.Generated)
	}
	return w.Flush()
}

func deleteDraft(ctx context.Context, cfg *config.Config, id string) error {
	if id == "" {
		return errors.New("missing -id")
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if err := store.DeleteDraft(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "deleted %s\n", id)
	return nil
}

func exportDrafts(ctx context.Context, cfg *config.Config, output string) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	list, err := store.ListDrafts(ctx)
	if err != nil {
		return err
	}

	if output == "" {
		return drafts.WriteCSV(stdout, list)
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("couldn't create %s: %w", output, err)
	}
	defer f.Close()
	if err := drafts.WriteCSV(f, list); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "exported %d drafts to %s\n", len(list), output)
	return nil
}

func nextTitle(ctx context.Context, cfg *config.Config, base string) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	title, err := store.NextDraftTitle(ctx, base)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, title)
	return nil
}

// generate composes a track for a draft and saves the draft with the
// generated audio on success
func generate(ctx context.Context, cfg *config.Config, draftID string) error {
	if draftID == "" {
		return errors.New("missing -draft")
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	draft, err := store.GetDraft(ctx, draftID)
	if err != nil {
		return err
	}
	if !draft.Song.CanGenerate() {
		return fmt.Errorf("draft %s has no melody description", draftID)
	}

	svc, err := audio.NewServiceFromConfig(ctx, cfg, metrics.NewSentryMetrics())
	if err != nil {
		return err
	}
	if !svc.Enabled() {
		return errors.New("missing -elevenlabs-key")
	}

	result := svc.Generate(ctx, draft.Song.Lyrics, draft.Song.MelodyDescription)
	if !result.Succeeded() {
		return fmt.Errorf("generation failed: %s", result.Message)
	}

	draft.Song.SetGeneratedAudio(result.Path)
	if _, err := store.SaveDraft(ctx, draft.Song, draft.ID); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s (%s)\n", result.Path, result.Duration)
	return nil
}
