package stunt

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/age-toolbox/internal/entities"
	"github.com/KirkDiggler/age-toolbox/internal/errors"
	redisclient "github.com/KirkDiggler/age-toolbox/internal/redis"
)

const (
	// Key patterns: stunt:{id}, sorted by id in stunt:index
	indexKey  = "stunt:index"
	nextIDKey = "stunt:next_id"
)

// entityKey derives the storage key from the rpg-toolkit entity identity
func entityKey(e core.Entity) string {
	return e.GetType() + ":" + e.GetID()
}

func stuntKey(id int64) string {
	return entityKey(&entities.Stunt{ID: id})
}

// RedisConfig contains configuration for the Redis stunt repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedis creates a new Redis-backed stunt repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	ids, err := r.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read stunt index")
	}
	if len(ids) == 0 {
		return &ListOutput{Stunts: []*entities.Stunt{}}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = entities.EntityTypeStunt + ":" + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get stunts")
	}

	stunts := make([]*entities.Stunt, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// Index entry without a record, clean up the index
			slog.WarnContext(ctx, "stunt not found, cleaning up index",
				"stunt_id", ids[i])
			r.client.ZRem(ctx, indexKey, ids[i])
			continue
		}

		stunt, err := decodeStunt(raw)
		if err != nil {
			return nil, err
		}
		stunts = append(stunts, stunt)
	}

	return &ListOutput{Stunts: stunts}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateID(input.ID); err != nil {
		return nil, err
	}

	result, err := r.client.Get(ctx, stuntKey(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, notFound(input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get stunt")
	}

	stunt, err := decodeStunt(result)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Stunt: stunt}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Stunt == nil {
		return nil, errors.InvalidArgument(errStuntNil)
	}

	id, err := r.client.Incr(ctx, nextIDKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to allocate stunt ID")
	}

	stunt := input.Stunt.Clone()
	stunt.ID = id

	data, err := json.Marshal(stunt)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal stunt")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, entityKey(stunt), data, 0)
	pipe.ZAdd(ctx, indexKey, redis.Z{Score: float64(id), Member: stunt.GetID()})

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create stunt")
	}

	return &CreateOutput{Stunt: stunt}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Stunt == nil {
		return nil, errors.InvalidArgument(errStuntNil)
	}
	if err := validateID(input.Stunt.ID); err != nil {
		return nil, err
	}

	stunt := input.Stunt.Clone()

	data, err := json.Marshal(stunt)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal stunt")
	}

	// SET XX only overwrites an existing record
	updated, err := r.client.SetXX(ctx, entityKey(stunt), data, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update stunt")
	}
	if !updated {
		return nil, notFound(stunt.ID)
	}

	return &UpdateOutput{Stunt: stunt}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateID(input.ID); err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	delCmd := pipe.Del(ctx, stuntKey(input.ID))
	pipe.ZRem(ctx, indexKey, strconv.FormatInt(input.ID, 10))

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete stunt")
	}
	if delCmd.Val() == 0 {
		return nil, notFound(input.ID)
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) Count(ctx context.Context, _ CountInput) (*CountOutput, error) {
	count, err := r.client.ZCard(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to count stunts")
	}

	return &CountOutput{Count: count}, nil
}

func decodeStunt(raw string) (*entities.Stunt, error) {
	var stunt entities.Stunt
	if err := json.Unmarshal([]byte(raw), &stunt); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal stunt")
	}
	return &stunt, nil
}
