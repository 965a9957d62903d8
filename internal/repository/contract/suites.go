// Package contract holds storage-agnostic test suites for the repository
// interfaces. A backend passes factories that build repositories and seed
// helpers; the suites assert the behavioral contract against them.
package contract

import (
	"context"
	"testing"
	"time"

	"github.com/stucom/basketball-fans-service/internal/model"
	"github.com/stucom/basketball-fans-service/internal/repository"
)

type GameFactory func(t *testing.T) (repository.GameRepository, func())

type PlayerFactory func(t *testing.T) (repository.PlayerRepository, func())

type RatingFactory func(t *testing.T) (repo repository.RatingRepository, mkUser func(ctx context.Context, login string) (int64, error), mkGame func(ctx context.Context, name string) (int64, error), cleanup func())

type FavouriteFactory func(t *testing.T) (repo repository.FavouriteRepository, mkUser func(ctx context.Context, login string) (int64, error), mkPlayer func(ctx context.Context, name string) (int64, error), cleanup func())

type UserFactory func(t *testing.T) (repo repository.UserRepository, mkUser func(ctx context.Context, login string) (int64, error), cleanup func())

type TxFactory func(t *testing.T) (tx repository.TxManager, games repository.GameRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func RunGameRepositoryContract(t *testing.T, makeRepo GameFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		start := time.Now().UTC().Truncate(time.Second)
		created, err := repo.Create(ctx, model.Game{Name: "Opening night", LocalScore: 101, VisitorScore: 99, DateInit: &start})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.ID != created.ID || got.Name != "Opening night" || got.LocalScore != 101 {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), 999999)
		if err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("update_roundtrip", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, model.Game{Name: "Draft"})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		created.Name = "Final"
		created.LocalScore = 77
		updated, err := repo.Update(ctx, created)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Name != "Final" || updated.LocalScore != 77 {
			t.Fatalf("mismatch after update: %+v", updated)
		}
	})

	t.Run("update_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.Update(context.Background(), model.Game{ID: 424242, Name: "ghost"})
		if err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_pagination_total", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i := 0; i < 7; i++ {
			if _, err := repo.Create(ctx, model.Game{Name: "G-" + string(rune('A'+i))}); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		res, err := repo.List(ctx, repository.Page{Limit: 3, Offset: 0})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 3 || res.Total != 7 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
		res2, err := repo.List(ctx, repository.Page{Limit: 3, Offset: 6})
		if err != nil {
			t.Fatalf("list2: %v", err)
		}
		if len(res2.Items) != 1 || res2.Total != 7 {
			t.Fatalf("unexpected tail page: len=%d total=%d", len(res2.Items), res2.Total)
		}
	})

	t.Run("delete_idempotent", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, model.Game{Name: "Short-lived"})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("second delete must be a no-op, got %v", err)
		}
		if _, err := repo.GetByID(ctx, created.ID); err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("exists", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, model.Game{Name: "Exists"})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		ok, err := repo.Exists(ctx, created.ID)
		if err != nil || !ok {
			t.Fatalf("expected exists=true, got ok=%v err=%v", ok, err)
		}
		ok, err = repo.Exists(ctx, 999999)
		if err != nil || ok {
			t.Fatalf("expected exists=false, got ok=%v err=%v", ok, err)
		}
	})
}

func RunPlayerRepositoryContract(t *testing.T, makeRepo PlayerFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, model.Player{Name: "Ricky Rubio", Team: "Barcelona"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Name != "Ricky Rubio" || got.Team != "Barcelona" {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		if _, err := repo.GetByID(context.Background(), 999999); err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete_idempotent", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, model.Player{Name: "Temp"})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("second delete must be a no-op, got %v", err)
		}
	})
}

func RunUserRepositoryContract(t *testing.T, makeRepo UserFactory) {
	t.Helper()

	t.Run("get_by_login", func(t *testing.T) {
		repo, mkUser, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		id, err := mkUser(ctx, "alice")
		if err != nil {
			t.Fatalf("seed user: %v", err)
		}
		got, err := repo.GetByLogin(ctx, "alice")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ID != id || got.Login != "alice" {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("unknown_login", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		if _, err := repo.GetByLogin(context.Background(), "nobody"); err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func RunRatingRepositoryContract(t *testing.T, makeRepo RatingFactory) {
	t.Helper()

	seed := func(t *testing.T, ctx context.Context, mkUser func(context.Context, string) (int64, error), mkGame func(context.Context, string) (int64, error)) (int64, int64) {
		t.Helper()
		userID, err := mkUser(ctx, "voter")
		if err != nil {
			t.Fatalf("seed user: %v", err)
		}
		gameID, err := mkGame(ctx, "Rated game")
		if err != nil {
			t.Fatalf("seed game: %v", err)
		}
		return userID, gameID
	}

	t.Run("upsert_insert_then_overwrite", func(t *testing.T) {
		repo, mkUser, mkGame, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		userID, gameID := seed(t, ctx, mkUser, mkGame)

		first, err := repo.Upsert(ctx, model.GameRating{Score: 3, ScoreDateTime: time.Now().UTC(), UserID: userID, GameID: gameID})
		if err != nil {
			t.Fatalf("first upsert: %v", err)
		}
		if !first.Created {
			t.Fatalf("expected insert path, got overwrite")
		}

		second, err := repo.Upsert(ctx, model.GameRating{Score: 5, ScoreDateTime: time.Now().UTC(), UserID: userID, GameID: gameID})
		if err != nil {
			t.Fatalf("second upsert: %v", err)
		}
		if second.Created {
			t.Fatalf("expected overwrite path, got insert")
		}
		if second.Rating.ID != first.Rating.ID {
			t.Fatalf("overwrite must keep the row: ids %d and %d", first.Rating.ID, second.Rating.ID)
		}
		if second.Rating.Score != 5 {
			t.Fatalf("last write must win, score=%d", second.Rating.Score)
		}

		votes, err := repo.ListByUser(ctx, userID)
		if err != nil {
			t.Fatalf("list by user: %v", err)
		}
		if len(votes) != 1 {
			t.Fatalf("expected a single vote, got %d", len(votes))
		}
	})

	t.Run("upsert_distinct_users_coexist", func(t *testing.T) {
		repo, mkUser, mkGame, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		gameID, err := mkGame(ctx, "Shared game")
		if err != nil {
			t.Fatalf("seed game: %v", err)
		}
		for _, login := range []string{"u1", "u2"} {
			userID, err := mkUser(ctx, login)
			if err != nil {
				t.Fatalf("seed user: %v", err)
			}
			res, err := repo.Upsert(ctx, model.GameRating{Score: 4, ScoreDateTime: time.Now().UTC(), UserID: userID, GameID: gameID})
			if err != nil {
				t.Fatalf("upsert %s: %v", login, err)
			}
			if !res.Created {
				t.Fatalf("each user's first vote must insert")
			}
		}
	})

	t.Run("avg_score", func(t *testing.T) {
		repo, mkUser, mkGame, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		gameID, err := mkGame(ctx, "Averaged game")
		if err != nil {
			t.Fatalf("seed game: %v", err)
		}

		avg, err := repo.AvgScoreByGame(ctx, gameID)
		if err != nil {
			t.Fatalf("avg on empty: %v", err)
		}
		if avg != nil {
			t.Fatalf("expected nil average for unrated game, got %v", *avg)
		}

		scores := []int{2, 4}
		for i, s := range scores {
			userID, err := mkUser(ctx, "avg-user-"+string(rune('a'+i)))
			if err != nil {
				t.Fatalf("seed user: %v", err)
			}
			if _, err := repo.Upsert(ctx, model.GameRating{Score: s, ScoreDateTime: time.Now().UTC(), UserID: userID, GameID: gameID}); err != nil {
				t.Fatalf("upsert: %v", err)
			}
		}
		avg, err = repo.AvgScoreByGame(ctx, gameID)
		if err != nil {
			t.Fatalf("avg: %v", err)
		}
		if avg == nil || *avg != 3 {
			t.Fatalf("expected average 3, got %v", avg)
		}
	})

	t.Run("top_by_score_limit_and_order", func(t *testing.T) {
		repo, mkUser, mkGame, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		userID, err := mkUser(ctx, "ranker")
		if err != nil {
			t.Fatalf("seed user: %v", err)
		}
		for i := 0; i < 7; i++ {
			gameID, err := mkGame(ctx, "Ranked-"+string(rune('A'+i)))
			if err != nil {
				t.Fatalf("seed game: %v", err)
			}
			if _, err := repo.Upsert(ctx, model.GameRating{Score: i % 6, ScoreDateTime: time.Now().UTC(), UserID: userID, GameID: gameID}); err != nil {
				t.Fatalf("upsert: %v", err)
			}
		}
		top, err := repo.TopByScore(ctx, 5)
		if err != nil {
			t.Fatalf("top: %v", err)
		}
		if len(top) != 5 {
			t.Fatalf("expected 5 rows, got %d", len(top))
		}
		for i := 1; i < len(top); i++ {
			if top[i].Score > top[i-1].Score {
				t.Fatalf("scores not descending at %d: %+v", i, top)
			}
			if top[i].Score == top[i-1].Score && top[i].ID < top[i-1].ID {
				t.Fatalf("ties not ordered by id at %d: %+v", i, top)
			}
		}
	})

	t.Run("delete_idempotent", func(t *testing.T) {
		repo, mkUser, mkGame, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		userID, gameID := seed(t, ctx, mkUser, mkGame)
		res, err := repo.Upsert(ctx, model.GameRating{Score: 1, ScoreDateTime: time.Now().UTC(), UserID: userID, GameID: gameID})
		if err != nil {
			t.Fatalf("seed vote: %v", err)
		}
		if err := repo.Delete(ctx, res.Rating.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := repo.Delete(ctx, res.Rating.ID); err != nil {
			t.Fatalf("second delete must be a no-op, got %v", err)
		}
	})
}

func RunFavouriteRepositoryContract(t *testing.T, makeRepo FavouriteFactory) {
	t.Helper()

	t.Run("duplicates_allowed", func(t *testing.T) {
		repo, mkUser, mkPlayer, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		userID, err := mkUser(ctx, "fan")
		if err != nil {
			t.Fatalf("seed user: %v", err)
		}
		playerID, err := mkPlayer(ctx, "Pau Gasol")
		if err != nil {
			t.Fatalf("seed player: %v", err)
		}

		first, err := repo.Create(ctx, model.FavouritePlayer{FavouriteDateTime: time.Now().UTC(), UserID: userID, PlayerID: playerID})
		if err != nil {
			t.Fatalf("first create: %v", err)
		}
		second, err := repo.Create(ctx, model.FavouritePlayer{FavouriteDateTime: time.Now().UTC(), UserID: userID, PlayerID: playerID})
		if err != nil {
			t.Fatalf("duplicate create must succeed: %v", err)
		}
		if first.ID == second.ID {
			t.Fatalf("expected distinct rows")
		}

		favs, err := repo.ListByUser(ctx, userID)
		if err != nil {
			t.Fatalf("list by user: %v", err)
		}
		if len(favs) != 2 {
			t.Fatalf("expected both rows, got %d", len(favs))
		}
	})

	t.Run("top_players_counts_and_order", func(t *testing.T) {
		repo, mkUser, mkPlayer, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		popular, err := mkPlayer(ctx, "Popular")
		if err != nil {
			t.Fatalf("seed player: %v", err)
		}
		niche, err := mkPlayer(ctx, "Niche")
		if err != nil {
			t.Fatalf("seed player: %v", err)
		}
		for i := 0; i < 3; i++ {
			userID, err := mkUser(ctx, "top-fan-"+string(rune('a'+i)))
			if err != nil {
				t.Fatalf("seed user: %v", err)
			}
			if _, err := repo.Create(ctx, model.FavouritePlayer{FavouriteDateTime: time.Now().UTC(), UserID: userID, PlayerID: popular}); err != nil {
				t.Fatalf("create: %v", err)
			}
			if i == 0 {
				if _, err := repo.Create(ctx, model.FavouritePlayer{FavouriteDateTime: time.Now().UTC(), UserID: userID, PlayerID: niche}); err != nil {
					t.Fatalf("create: %v", err)
				}
			}
		}

		top, err := repo.TopPlayers(ctx)
		if err != nil {
			t.Fatalf("top players: %v", err)
		}
		if len(top) != 2 {
			t.Fatalf("expected both ranked players, got %d", len(top))
		}
		if top[0].Player.ID != popular || top[0].NumFavs != 3 {
			t.Fatalf("unexpected leader: %+v", top[0])
		}
		if top[1].Player.ID != niche || top[1].NumFavs != 1 {
			t.Fatalf("unexpected runner-up: %+v", top[1])
		}
	})

	t.Run("delete_idempotent", func(t *testing.T) {
		repo, _, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		if err := repo.Delete(context.Background(), 999999); err != nil {
			t.Fatalf("deleting an absent row must succeed, got %v", err)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_persists", func(t *testing.T) {
		tx, games, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var id int64
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			g, err := games.Create(ctx, model.Game{Name: "Committed"})
			if err != nil {
				return err
			}
			id = g.ID
			return nil
		})
		if err != nil {
			t.Fatalf("tx: %v", err)
		}
		if _, err := games.GetByID(ctx, id); err != nil {
			t.Fatalf("row must survive commit: %v", err)
		}
	})

	t.Run("rollback_discards", func(t *testing.T) {
		tx, games, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var id int64
		sentinel := context.Canceled
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			g, err := games.Create(ctx, model.Game{Name: "Rolled back"})
			if err != nil {
				return err
			}
			id = g.ID
			return sentinel
		})
		if err == nil {
			t.Fatalf("expected the sentinel error")
		}
		if _, err := games.GetByID(ctx, id); err != repository.ErrNotFound {
			t.Fatalf("row must not survive rollback, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()

	t.Run("ping", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("ping: %v", err)
		}
	})
}
