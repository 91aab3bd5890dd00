package app_test

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"localnotes/internal/notes/adapters/storage/memory"
	"localnotes/internal/notes/app"
	"localnotes/internal/notes/domain/entities"
)

func newRapidStore() (*app.NoteStore, *memory.Storage) {
	storage := memory.New(nil)
	store := app.NewNoteStore(entities.DefaultSnapshot(entities.English), storage,
		&sequentialIDs{}, &frozenClock{now: baseTime})
	return store, storage
}

// pickID draws either an existing note id or one that never exists.
func pickID(t *rapid.T, store *app.NoteStore, label string) string {
	existing := ids(store.Notes())
	if len(existing) == 0 || rapid.Bool().Draw(t, label+"Missing") {
		return "missing-" + rapid.StringMatching(`[a-z]{1,4}`).Draw(t, label+"Suffix")
	}
	return rapid.SampledFrom(existing).Draw(t, label)
}

func TestProperty_CreateDeleteCount(t *testing.T) {
	ctx := context.Background()

	rapid.Check(t, func(t *rapid.T) {
		store, _ := newRapidStore()
		creates, deletes := 0, 0

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for range steps {
			if rapid.Bool().Draw(t, "create") {
				store.CreateNote(ctx, entities.DefaultFolderID)
				creates++
				continue
			}
			before := store.Notes()
			if store.DeleteNote(ctx, pickID(t, store, "delete")) {
				deletes++
			} else if !slices.Equal(ids(before), ids(store.Notes())) {
				t.Fatalf("failed delete changed the collection")
			}
		}

		if got := len(store.Notes()); got != creates-deletes {
			t.Fatalf("len(notes) = %d, want %d", got, creates-deletes)
		}
	})
}

func TestProperty_UpdateAndFavorite(t *testing.T) {
	ctx := context.Background()

	rapid.Check(t, func(t *rapid.T) {
		store, _ := newRapidStore()
		note := store.CreateNote(ctx, entities.DefaultFolderID)
		prev := note

		for range rapid.IntRange(1, 10).Draw(t, "rounds") {
			title := rapid.String().Draw(t, "title")
			content := rapid.String().Draw(t, "content")

			updated, ok := store.UpdateNote(ctx, note.ID, title, content)
			if !ok || updated.Title != title || updated.Content != content {
				t.Fatalf("update not applied: %+v", updated)
			}
			if !updated.UpdatedAt.After(prev.UpdatedAt) {
				t.Fatalf("updatedAt did not advance: %s -> %s", prev.UpdatedAt, updated.UpdatedAt)
			}

			once, _ := store.ToggleFavorite(ctx, note.ID)
			twice, _ := store.ToggleFavorite(ctx, note.ID)
			if twice.Favorite != updated.Favorite || once.Favorite == updated.Favorite {
				t.Fatalf("favorite did not flip back")
			}
			if !once.UpdatedAt.After(updated.UpdatedAt) || !twice.UpdatedAt.After(once.UpdatedAt) {
				t.Fatalf("updatedAt did not advance on toggle")
			}
			prev = twice
		}
	})
}

func TestProperty_Duplicate(t *testing.T) {
	ctx := context.Background()

	rapid.Check(t, func(t *rapid.T) {
		store, _ := newRapidStore()
		for range rapid.IntRange(1, 5).Draw(t, "notes") {
			n := store.CreateNote(ctx, entities.DefaultFolderID)
			store.UpdateNote(ctx, n.ID, rapid.String().Draw(t, "title"), rapid.String().Draw(t, "content"))
		}
		store.SetActiveNote(pickID(t, store, "active"))
		activeBefore, hadActive := store.ActiveNote()

		source := rapid.SampledFrom(store.Notes()).Draw(t, "source")
		dup, ok := store.DuplicateNote(ctx, source.ID)

		if !ok || dup.ID == source.ID || dup.Title != source.Title+" (copy)" ||
			dup.Content != source.Content || dup.FolderID != source.FolderID {
			t.Fatalf("bad duplicate %+v of %+v", dup, source)
		}
		activeAfter, hasActive := store.ActiveNote()
		if hadActive != hasActive || activeBefore.ID != activeAfter.ID {
			t.Fatalf("active note changed")
		}
	})
}

func TestProperty_Search(t *testing.T) {
	ctx := context.Background()

	rapid.Check(t, func(t *rapid.T) {
		store, _ := newRapidStore()
		for range rapid.IntRange(0, 8).Draw(t, "notes") {
			n := store.CreateNote(ctx, entities.DefaultFolderID)
			store.UpdateNote(ctx, n.ID,
				rapid.StringMatching(`[a-zA-Z ]{0,12}`).Draw(t, "title"),
				rapid.StringMatching(`[a-zA-Z ]{0,24}`).Draw(t, "content"))
		}

		if got := store.SearchNotes(""); len(got) != 0 {
			t.Fatalf("empty query returned %d notes", len(got))
		}

		query := rapid.StringMatching(`[a-zA-Z]{1,3}`).Draw(t, "query")
		got := ids(store.SearchNotes(query))

		var want []string
		lower := strings.ToLower(query)
		for _, n := range store.Notes() {
			if strings.Contains(strings.ToLower(n.Title), lower) || strings.Contains(strings.ToLower(n.Content), lower) {
				want = append(want, n.ID)
			}
		}
		if !slices.Equal(got, want) {
			t.Fatalf("search %q = %v, want %v", query, got, want)
		}
	})
}

func TestProperty_DeleteFolder(t *testing.T) {
	ctx := context.Background()

	rapid.Check(t, func(t *rapid.T) {
		store, _ := newRapidStore()
		folders := []string{entities.DefaultFolderID}
		for range rapid.IntRange(1, 4).Draw(t, "folders") {
			folders = append(folders, store.CreateFolder(ctx, rapid.String().Draw(t, "name")).ID)
		}
		for range rapid.IntRange(0, 10).Draw(t, "notes") {
			store.CreateNote(ctx, rapid.SampledFrom(folders).Draw(t, "folder"))
		}

		target := rapid.SampledFrom(folders[1:]).Draw(t, "target")
		wasActive := rapid.Bool().Draw(t, "active")
		if wasActive {
			store.SetActiveFolder(target)
		}

		if !store.DeleteFolder(ctx, target) {
			t.Fatalf("delete of %s ignored", target)
		}
		for _, n := range store.Notes() {
			if n.FolderID == target {
				t.Fatalf("note %s still in deleted folder", n.ID)
			}
		}
		if wasActive && store.ActiveFolder() != entities.AllFolderID {
			t.Fatalf("active folder = %s", store.ActiveFolder())
		}
	})
}

func TestProperty_RoundTrip(t *testing.T) {
	ctx := context.Background()

	rapid.Check(t, func(t *rapid.T) {
		store, storage := newRapidStore()
		for range rapid.IntRange(1, 15).Draw(t, "ops") {
			switch rapid.IntRange(0, 4).Draw(t, "op") {
			case 0:
				store.CreateNote(ctx, entities.DefaultFolderID)
			case 1:
				store.UpdateNote(ctx, pickID(t, store, "update"), rapid.String().Draw(t, "title"), rapid.String().Draw(t, "content"))
			case 2:
				store.ToggleFavorite(ctx, pickID(t, store, "favorite"))
			case 3:
				store.DuplicateNote(ctx, pickID(t, store, "duplicate"))
			case 4:
				store.CreateFolder(ctx, rapid.String().Draw(t, "folder"))
			}
		}
		require.NoError(t, app.SaveSnapshot(ctx, storage, store.Snapshot()))

		loaded, err := app.LoadSnapshot(ctx, storage, entities.English)
		require.NoError(t, err)
		reloaded := app.NewNoteStore(loaded, storage, &sequentialIDs{}, &frozenClock{now: baseTime})

		require.Equal(t, store.Notes(), reloaded.Notes())
		require.Equal(t, store.Folders(), reloaded.Folders())
	})
}
