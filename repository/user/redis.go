package user

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/xam1dullo/identity-api/model"
)

const (
	userKeyPrefix = "users:"
	txMaxRetries  = 5
)

// Redis stores user records as JSON values under the "users:" key
// namespace. Create relies on SETNX for atomic create-if-absent;
// Update runs under WATCH so a concurrent write to the same key
// aborts the transaction and the merge is retried on fresh state.
type Redis struct {
	client *redis.Client
}

func NewRedisUserRepository(client *redis.Client) UserRepository {
	return &Redis{client: client}
}

// storedUser is the persisted wire form. Unlike model.UserEntity's
// JSON view, it must round-trip the password hash.
type storedUser struct {
	Email        string     `json:"email"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	PasswordHash string     `json:"passwordHash"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

func toStored(e *model.UserEntity) *storedUser {
	return &storedUser{
		Email:        e.Email,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Phone:        e.Phone,
		Address:      e.Address,
		PasswordHash: e.PasswordHash,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func (s *storedUser) toEntity() *model.UserEntity {
	return &model.UserEntity{
		Email:        s.Email,
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		Phone:        s.Phone,
		Address:      s.Address,
		PasswordHash: s.PasswordHash,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func userKey(email string) string {
	return userKeyPrefix + email
}

func (r *Redis) Exists(ctx context.Context, email string) (bool, error) {
	n, err := r.client.Exists(ctx, userKey(email)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Redis) Create(ctx context.Context, entity *model.UserEntity) error {
	entity.CreatedAt = time.Now().UTC()
	payload, err := json.Marshal(toStored(entity))
	if err != nil {
		return err
	}

	ok, err := r.client.SetNX(ctx, userKey(entity.Email), payload, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrDuplicateKey
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, email string) (*model.UserEntity, error) {
	val, err := r.client.Get(ctx, userKey(email)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var stored storedUser
	if err := json.Unmarshal([]byte(val), &stored); err != nil {
		return nil, err
	}
	return stored.toEntity(), nil
}

func (r *Redis) Update(ctx context.Context, email string, patch *model.UserPatch) (*model.UserEntity, error) {
	key := userKey(email)
	var merged *model.UserEntity

	apply := func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				return ErrNotFound
			}
			return err
		}

		var stored storedUser
		if err := json.Unmarshal([]byte(val), &stored); err != nil {
			return err
		}

		entity := stored.toEntity()
		entity.ApplyPatch(patch)
		now := time.Now().UTC()
		entity.UpdatedAt = &now

		payload, err := json.Marshal(toStored(entity))
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			return nil
		})
		if err != nil {
			return err
		}
		merged = entity
		return nil
	}

	for i := 0; i < txMaxRetries; i++ {
		err := r.client.Watch(ctx, apply, key)
		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			return nil, err
		}
		return merged, nil
	}
	return nil, redis.TxFailedErr
}

func (r *Redis) Delete(ctx context.Context, email string) error {
	n, err := r.client.Del(ctx, userKey(email)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Redis) List(ctx context.Context) ([]*model.UserEntity, error) {
	keys := make([]string, 0)
	var cursor uint64
	for {
		batch, next, err := r.client.Scan(ctx, cursor, userKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	entities := make([]*model.UserEntity, 0, len(keys))
	if len(keys) == 0 {
		return entities, nil
	}

	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for _, val := range vals {
		raw, ok := val.(string)
		if !ok {
			// key deleted between SCAN and MGET
			continue
		}
		var stored storedUser
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			return nil, err
		}
		entities = append(entities, stored.toEntity())
	}

	sort.Slice(entities, func(i, j int) bool {
		return entities[i].Email < entities[j].Email
	})
	return entities, nil
}
