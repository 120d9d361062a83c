package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

var _ ports.RoleCache = (*RedisRoleCache)(nil)

const keyPrefix = "boutique:role:"

// cachedRole forma serializada del rol en Redis.
type cachedRole struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Description string    `json:"description"`
	Modules     []string  `json:"modules"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RedisRoleCache caché de roles con TTL. Los errores de Redis se registran y se tratan como miss.
type RedisRoleCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewRedisRoleCache construye la caché. ttl <= 0 usa 5 minutos.
func NewRedisRoleCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisRoleCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisRoleCache{rdb: rdb, ttl: ttl, log: log}
}

// Connect abre el cliente y verifica la conexión con PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func (c *RedisRoleCache) Get(ctx context.Context, roleID string) (*entity.Role, bool) {
	val, err := c.rdb.Get(ctx, keyPrefix+roleID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("role_id", roleID).Msg("role cache get")
		}
		return nil, false
	}
	var cr cachedRole
	if err := json.Unmarshal(val, &cr); err != nil {
		c.log.Warn().Err(err).Str("role_id", roleID).Msg("role cache decode")
		return nil, false
	}
	return cr.toEntity(), true
}

func (c *RedisRoleCache) Set(ctx context.Context, role *entity.Role) {
	if role == nil {
		return
	}
	data, err := json.Marshal(fromEntity(role))
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+role.ID, data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("role_id", role.ID).Msg("role cache set")
	}
}

func (c *RedisRoleCache) Invalidate(ctx context.Context, roleID string) {
	if err := c.rdb.Del(ctx, keyPrefix+roleID).Err(); err != nil {
		c.log.Warn().Err(err).Str("role_id", roleID).Msg("role cache invalidate")
	}
}

func fromEntity(r *entity.Role) cachedRole {
	return cachedRole{
		ID:          r.ID,
		Name:        r.Name,
		DisplayName: r.DisplayName,
		Description: r.Description,
		Modules:     r.Modules.Strings(),
		Permissions: r.Permissions.Strings(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (cr cachedRole) toEntity() *entity.Role {
	mods := make([]entity.Module, len(cr.Modules))
	for i, m := range cr.Modules {
		mods[i] = entity.Module(m)
	}
	verbs := make([]entity.Verb, len(cr.Permissions))
	for i, v := range cr.Permissions {
		verbs[i] = entity.Verb(v)
	}
	return &entity.Role{
		ID:          cr.ID,
		Name:        cr.Name,
		DisplayName: cr.DisplayName,
		Description: cr.Description,
		Modules:     entity.NewModuleSet(mods...),
		Permissions: entity.NewVerbSet(verbs...),
		CreatedAt:   cr.CreatedAt,
		UpdatedAt:   cr.UpdatedAt,
	}
}
