package service_test

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stucom/basketball-fans-service/internal/model"
	"github.com/stucom/basketball-fans-service/internal/repository"
	"github.com/stucom/basketball-fans-service/internal/service"
)

type fakeFavouriteRepo struct {
	nextID  int64
	rows    []model.FavouritePlayer
	deleted []int64
}

func newFakeFavouriteRepo() *fakeFavouriteRepo { return &fakeFavouriteRepo{nextID: 1} }

func (f *fakeFavouriteRepo) Create(_ context.Context, fav model.FavouritePlayer) (model.FavouritePlayer, error) {
	fav.ID = f.nextID
	f.nextID++
	f.rows = append(f.rows, fav)
	return fav, nil
}

func (f *fakeFavouriteRepo) Update(_ context.Context, fav model.FavouritePlayer) (model.FavouritePlayer, error) {
	for i, row := range f.rows {
		if row.ID == fav.ID {
			f.rows[i] = fav
			return fav, nil
		}
	}
	return model.FavouritePlayer{}, repository.ErrNotFound
}

func (f *fakeFavouriteRepo) GetByID(_ context.Context, id int64) (model.FavouritePlayer, error) {
	for _, row := range f.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return model.FavouritePlayer{}, repository.ErrNotFound
}

func (f *fakeFavouriteRepo) List(context.Context, repository.Page) (repository.PageResult[model.FavouritePlayer], error) {
	return repository.PageResult[model.FavouritePlayer]{Items: f.rows, Total: len(f.rows)}, nil
}

func (f *fakeFavouriteRepo) ListByUser(_ context.Context, userID int64) ([]model.FavouritePlayer, error) {
	var out []model.FavouritePlayer
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

// Delete never reports a missing row, matching the real store.
func (f *fakeFavouriteRepo) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	for i, row := range f.rows {
		if row.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeFavouriteRepo) TopPlayers(context.Context) ([]model.PlayerFavourites, error) {
	counts := map[int64]int64{}
	for _, row := range f.rows {
		counts[row.PlayerID]++
	}
	var out []model.PlayerFavourites
	for id, n := range counts {
		out = append(out, model.PlayerFavourites{Player: model.Player{ID: id}, NumFavs: n})
	}
	return out, nil
}

var _ repository.FavouriteRepository = (*fakeFavouriteRepo)(nil)

type fakePlayerLookup struct{ ok map[int64]bool }

func (f *fakePlayerLookup) Create(context.Context, model.Player) (model.Player, error) {
	return model.Player{}, nil
}
func (f *fakePlayerLookup) Update(context.Context, model.Player) (model.Player, error) {
	return model.Player{}, nil
}
func (f *fakePlayerLookup) GetByID(_ context.Context, id int64) (model.Player, error) {
	if f.ok[id] {
		return model.Player{ID: id, Name: "player"}, nil
	}
	return model.Player{}, repository.ErrNotFound
}
func (f *fakePlayerLookup) List(context.Context, repository.Page) (repository.PageResult[model.Player], error) {
	return repository.PageResult[model.Player]{}, nil
}
func (f *fakePlayerLookup) Delete(context.Context, int64) error { return nil }
func (f *fakePlayerLookup) Exists(_ context.Context, id int64) (bool, error) {
	return f.ok[id], nil
}

var _ repository.PlayerRepository = (*fakePlayerLookup)(nil)

func newFavouriteService(favs repository.FavouriteRepository, players repository.PlayerRepository, users repository.UserRepository) service.FavouriteService {
	return service.NewFavouriteService(favs, players, users, zerolog.New(io.Discard))
}

func TestAddFavourite_PlayerMissing(t *testing.T) {
	svc := newFavouriteService(newFakeFavouriteRepo(), &fakePlayerLookup{ok: map[int64]bool{}}, &fakeUserLookup{users: map[string]int64{"alice": 1}})
	if _, err := svc.AddFavourite(context.Background(), "alice", 0, 7); err != repository.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddFavourite_AuthRequired(t *testing.T) {
	svc := newFavouriteService(newFakeFavouriteRepo(), &fakePlayerLookup{ok: map[int64]bool{7: true}}, &fakeUserLookup{users: map[string]int64{}})
	if _, err := svc.AddFavourite(context.Background(), "", 0, 7); err != service.ErrAuthRequired {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
	if _, err := svc.AddFavourite(context.Background(), "ghost", 0, 7); err != service.ErrAuthRequired {
		t.Fatalf("expected ErrAuthRequired for unknown login, got %v", err)
	}
}

func TestAddFavourite_PresetIDRejected(t *testing.T) {
	svc := newFavouriteService(newFakeFavouriteRepo(), &fakePlayerLookup{ok: map[int64]bool{7: true}}, &fakeUserLookup{users: map[string]int64{"alice": 1}})
	_, err := svc.AddFavourite(context.Background(), "alice", 42, 7)
	if !serviceErrIsInvalid(err) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestAddFavourite_DuplicatesAllowed(t *testing.T) {
	repo := newFakeFavouriteRepo()
	svc := newFavouriteService(repo, &fakePlayerLookup{ok: map[int64]bool{7: true}}, &fakeUserLookup{users: map[string]int64{"alice": 1}})

	first, err := svc.AddFavourite(context.Background(), "alice", 0, 7)
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	second, err := svc.AddFavourite(context.Background(), "alice", 0, 7)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected two distinct rows, both got id %d", first.ID)
	}
	if len(repo.rows) != 2 {
		t.Fatalf("expected two stored rows, got %d", len(repo.rows))
	}
	if first.FavouriteDateTime.IsZero() {
		t.Fatalf("favourite timestamp not set server-side")
	}
}

func TestDeleteFavourite_Idempotent(t *testing.T) {
	repo := newFakeFavouriteRepo()
	svc := newFavouriteService(repo, &fakePlayerLookup{ok: map[int64]bool{}}, &fakeUserLookup{users: map[string]int64{}})

	if err := svc.DeleteFavourite(context.Background(), 99); err != nil {
		t.Fatalf("deleting an absent favourite must succeed, got %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Fatalf("expected delete to reach the store, got %v", repo.deleted)
	}
}

func TestListFavouritesByUser_AuthRequired(t *testing.T) {
	svc := newFavouriteService(newFakeFavouriteRepo(), &fakePlayerLookup{ok: map[int64]bool{}}, &fakeUserLookup{users: map[string]int64{}})
	if _, err := svc.ListFavouritesByUser(context.Background(), ""); err != service.ErrAuthRequired {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
}
