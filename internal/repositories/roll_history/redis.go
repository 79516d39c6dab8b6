package rollhistory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KirkDiggler/age-toolbox/internal/entities"
	"github.com/KirkDiggler/age-toolbox/internal/errors"
	redisclient "github.com/KirkDiggler/age-toolbox/internal/redis"
)

const (
	// Key pattern: roll_history:{session_id}
	historyKeyPrefix = "roll_history:"
	defaultTTL       = 24 * time.Hour

	errSessionIDEmpty = "session ID cannot be empty"
	errRollNil        = "roll cannot be nil"
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
	TTL    time.Duration
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// NewRedis creates a roll history repository backed by one Redis list per session
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    ttl,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Append pushes the roll to the head of the list and trims it to capacity
func (r *redisRepository) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}
	if input.Roll == nil {
		return nil, errors.InvalidArgument(errRollNil)
	}

	rollJSON, err := json.Marshal(input.Roll)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal roll")
	}

	key := historyKeyPrefix + input.SessionID

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, rollJSON)
	pipe.LTrim(ctx, key, 0, entities.RollHistoryCapacity-1)
	pipe.Expire(ctx, key, r.ttl)
	rangeCmd := pipe.LRange(ctx, key, 0, -1)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to append roll for session %s", input.SessionID)
	}

	rolls, err := decodeRolls(rangeCmd.Val())
	if err != nil {
		return nil, err
	}

	return &AppendOutput{Rolls: rolls}, nil
}

// List returns the rolls of a session, most recent first
func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	raw, err := r.client.LRange(ctx, historyKeyPrefix+input.SessionID, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read roll history for session %s", input.SessionID)
	}

	rolls, err := decodeRolls(raw)
	if err != nil {
		return nil, err
	}

	return &ListOutput{Rolls: rolls}, nil
}

// Clear deletes the session list
func (r *redisRepository) Clear(ctx context.Context, input ClearInput) (*ClearOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	key := historyKeyPrefix + input.SessionID

	pipe := r.client.TxPipeline()
	lenCmd := pipe.LLen(ctx, key)
	pipe.Del(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to clear roll history for session %s", input.SessionID)
	}

	return &ClearOutput{
		// nolint:gosec // list length is bounded by RollHistoryCapacity
		RollsCleared: int32(lenCmd.Val()),
	}, nil
}

func decodeRolls(raw []string) ([]*entities.DiceRollResult, error) {
	rolls := make([]*entities.DiceRollResult, 0, len(raw))
	for _, item := range raw {
		var roll entities.DiceRollResult
		if err := json.Unmarshal([]byte(item), &roll); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal roll")
		}
		rolls = append(rolls, &roll)
	}
	return rolls, nil
}
