package service_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stucom/basketball-fans-service/internal/model"
	"github.com/stucom/basketball-fans-service/internal/repository"
	"github.com/stucom/basketball-fans-service/internal/service"
)

type fakeGameStore struct {
	nextID int64
	rows   map[int64]model.Game
}

func newFakeGameStore() *fakeGameStore {
	return &fakeGameStore{nextID: 1, rows: map[int64]model.Game{}}
}

func (f *fakeGameStore) Create(_ context.Context, g model.Game) (model.Game, error) {
	g.ID = f.nextID
	f.nextID++
	f.rows[g.ID] = g
	return g, nil
}

func (f *fakeGameStore) Update(_ context.Context, g model.Game) (model.Game, error) {
	if _, ok := f.rows[g.ID]; !ok {
		return model.Game{}, repository.ErrNotFound
	}
	f.rows[g.ID] = g
	return g, nil
}

func (f *fakeGameStore) GetByID(_ context.Context, id int64) (model.Game, error) {
	g, ok := f.rows[id]
	if !ok {
		return model.Game{}, repository.ErrNotFound
	}
	return g, nil
}

func (f *fakeGameStore) List(context.Context, repository.Page) (repository.PageResult[model.Game], error) {
	return repository.PageResult[model.Game]{}, nil
}

func (f *fakeGameStore) Delete(_ context.Context, id int64) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeGameStore) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.rows[id]
	return ok, nil
}

var _ repository.GameRepository = (*fakeGameStore)(nil)

// fakeTx runs the unit of work inline and counts invocations.
type fakeTx struct{ calls int }

func (f *fakeTx) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	f.calls++
	return fn(ctx)
}

var _ repository.TxManager = (*fakeTx)(nil)

func newGameService(store repository.GameRepository, tx repository.TxManager) service.GameService {
	return service.NewGameService(store, tx, zerolog.New(io.Discard))
}

func TestCreateGame_Validation(t *testing.T) {
	ts := func(s string) *time.Time {
		v, err := time.Parse(time.RFC3339, s)
		if err != nil {
			t.Fatalf("bad fixture: %v", err)
		}
		return &v
	}

	cases := []struct {
		name  string
		game  model.Game
		field string
	}{
		{"preset id", model.Game{ID: 3, Name: "ok"}, "id"},
		{"empty name", model.Game{Name: "   "}, "name"},
		{"name too long", model.Game{Name: strings.Repeat("x", 101)}, "name"},
		{"negative local score", model.Game{Name: "ok", LocalScore: -1}, "local_score"},
		{"negative visitor score", model.Game{Name: "ok", VisitorScore: -3}, "visitor_score"},
		{"final before init", model.Game{Name: "ok", DateInit: ts("2026-01-02T18:00:00Z"), DateFinal: ts("2026-01-02T16:00:00Z")}, "date_final"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newGameService(newFakeGameStore(), &fakeTx{})
			_, err := svc.CreateGame(context.Background(), tc.game)
			if !serviceErrIsInvalid(err) {
				t.Fatalf("expected invalid input, got %v", err)
			}
			for _, fe := range service.FieldErrors(err) {
				if fe.Field == tc.field {
					return
				}
			}
			t.Fatalf("missing field error for %q: %v", tc.field, service.FieldErrors(err))
		})
	}
}

func TestCreateGame_OK(t *testing.T) {
	store := newFakeGameStore()
	tx := &fakeTx{}
	svc := newGameService(store, tx)

	g, err := svc.CreateGame(context.Background(), model.Game{Name: "  Finals Game 7  ", LocalScore: 98, VisitorScore: 95})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if g.Name != "Finals Game 7" {
		t.Fatalf("expected trimmed name, got %q", g.Name)
	}
	if tx.calls != 1 {
		t.Fatalf("expected one transaction, got %d", tx.calls)
	}
}

func TestUpdateGame_RequiresID(t *testing.T) {
	svc := newGameService(newFakeGameStore(), &fakeTx{})
	if _, err := svc.UpdateGame(context.Background(), model.Game{Name: "ok"}); !serviceErrIsInvalid(err) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestUpdateGame_NotFound(t *testing.T) {
	svc := newGameService(newFakeGameStore(), &fakeTx{})
	if _, err := svc.UpdateGame(context.Background(), model.Game{ID: 9, Name: "ok"}); err != repository.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteGame_Idempotent(t *testing.T) {
	svc := newGameService(newFakeGameStore(), &fakeTx{})
	if err := svc.DeleteGame(context.Background(), 42); err != nil {
		t.Fatalf("deleting an absent game must succeed, got %v", err)
	}
}
