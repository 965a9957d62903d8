// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import "time"

// Game represents a single match between a local and a visitor team.
type Game struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	LocalScore   int        `json:"local_score"`
	VisitorScore int        `json:"visitor_score"`
	DateInit     *time.Time `json:"date_init,omitempty"`
	DateFinal    *time.Time `json:"date_final,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Player represents an athlete fans can mark as favourite.
type Player struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Team      string    `json:"team"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User is a read-only reference to an account owned by the auth subsystem.
// Only the login travels in tokens; the id anchors foreign keys.
type User struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

// GameRating is a user's vote for a game. At most one row exists per
// (user, game) pair; the database enforces it with a unique constraint.
type GameRating struct {
	ID            int64     `json:"id"`
	Score         int       `json:"score"`
	ScoreDateTime time.Time `json:"score_date_time"`
	UserID        int64     `json:"user_id"`
	GameID        int64     `json:"game_id"`
}

// FavouritePlayer ties a user to a player they marked as favourite.
// Duplicates per (user, player) are allowed.
type FavouritePlayer struct {
	ID                int64     `json:"id"`
	FavouriteDateTime time.Time `json:"favourite_date_time"`
	UserID            int64     `json:"user_id"`
	PlayerID          int64     `json:"player_id"`
}

// RatingResult carries an upserted rating together with a discriminator:
// Created is true when the vote was new, false when an existing vote was
// overwritten.
type RatingResult struct {
	Rating  GameRating `json:"rating"`
	Created bool       `json:"-"`
}

// GameAverage is the read model for the average-score query.
// AvgScore is nil when the game has no ratings; an empty set has no average.
type GameAverage struct {
	Game     Game     `json:"game"`
	AvgScore *float64 `json:"avg_score"`
}

// PlayerFavourites is the read model for the top-players ranking.
type PlayerFavourites struct {
	Player  Player `json:"player"`
	NumFavs int64  `json:"num_favs"`
}
