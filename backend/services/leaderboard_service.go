package services

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "leaderboard:skill_score"

// LeaderboardService mirrors skill scores into a Redis sorted set so top-N
// and rank queries stay cheap. It is optional: with a nil client every call
// is a no-op, so the platform runs without Redis.
type LeaderboardService struct {
	rdb *redis.Client
}

func NewLeaderboardService(rdb *redis.Client) *LeaderboardService {
	return &LeaderboardService{rdb: rdb}
}

func (ls *LeaderboardService) Enabled() bool {
	return ls != nil && ls.rdb != nil
}

// LeaderboardEntry is one row of the skill score leaderboard.
type LeaderboardEntry struct {
	UserID     uint   `json:"userId"`
	Name       string `json:"name"`
	SkillScore int    `json:"skillScore"`
	Rank       int    `json:"rank"`
}

// RecordScore keeps the sorted set in sync with the stored skill score.
func (ls *LeaderboardService) RecordScore(ctx context.Context, userID uint, score int) error {
	if !ls.Enabled() {
		return nil
	}
	return ls.rdb.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(score),
		Member: strconv.FormatUint(uint64(userID), 10),
	}).Err()
}

// Top returns the highest-scoring users, best first. Rank is 1-based.
func (ls *LeaderboardService) Top(ctx context.Context, count int) ([]LeaderboardEntry, error) {
	if !ls.Enabled() {
		return []LeaderboardEntry{}, nil
	}

	members, err := ls.rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(count-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(members))
	for i, member := range members {
		id, err := strconv.ParseUint(member.Member.(string), 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			UserID:     uint(id),
			SkillScore: int(member.Score),
			Rank:       i + 1,
		})
	}

	return entries, nil
}

// Rank returns the user's 1-based leaderboard position, or 0 when the user
// has no recorded score.
func (ls *LeaderboardService) Rank(ctx context.Context, userID uint) (int, error) {
	if !ls.Enabled() {
		return 0, nil
	}

	rank, err := ls.rdb.ZRevRank(ctx, leaderboardKey, strconv.FormatUint(uint64(userID), 10)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return int(rank) + 1, nil
}
