// Package redisstore implementa el adaptador de persistencia sobre Redis:
// cada colección es un documento JSON bajo una clave, y cada escritura
// publica en un canal pub/sub. Es la variante de store remoto con
// suscripción en vivo: otros procesos (u otra sesión de este mismo
// servicio) reciben la colección actualizada y refrescan su proyección en
// memoria.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/qmd-apps/inventario-ledger/internal/domain/entity"
	"github.com/qmd-apps/inventario-ledger/internal/domain/repository"
	"github.com/qmd-apps/inventario-ledger/pkg/config"
	"github.com/qmd-apps/inventario-ledger/pkg/logger"
)

const (
	itemsKey     = "inventario:items"
	movementsKey = "inventario:movements"

	itemsChannel     = "inventario:items:changed"
	movementsChannel = "inventario:movements:changed"
)

var _ repository.LiveStore = (*Store)(nil)

// Store documento JSON por colección + pub/sub de cambios.
type Store struct {
	client *redis.Client
	log    *logger.Logger
}

// New conecta con Redis y verifica la conexión.
func New(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Store{client: client, log: log}, nil
}

// Close cierra la conexión.
func (s *Store) Close() error {
	return s.client.Close()
}

// LoadItems lee el documento de artículos. Clave ausente = colección vacía.
func (s *Store) LoadItems(ctx context.Context) ([]entity.Item, error) {
	var items []entity.Item
	if err := s.load(ctx, itemsKey, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveItems reemplaza el documento de artículos y publica el cambio.
func (s *Store) SaveItems(ctx context.Context, items []entity.Item) error {
	return s.save(ctx, itemsKey, itemsChannel, items)
}

// LoadMovements lee el documento de movimientos.
func (s *Store) LoadMovements(ctx context.Context) ([]entity.Movement, error) {
	var movements []entity.Movement
	if err := s.load(ctx, movementsKey, &movements); err != nil {
		return nil, err
	}
	return movements, nil
}

// SaveMovements reemplaza el documento de movimientos y publica el cambio.
func (s *Store) SaveMovements(ctx context.Context, movements []entity.Movement) error {
	return s.save(ctx, movementsKey, movementsChannel, movements)
}

// SubscribeItems entrega la colección completa de artículos tras cada
// cambio publicado. Devuelve la función de cancelación.
func (s *Store) SubscribeItems(ctx context.Context, fn func([]entity.Item)) (func(), error) {
	return s.subscribe(ctx, itemsChannel, func(ctx context.Context) {
		items, err := s.LoadItems(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("recargar artículos tras evento pub/sub")
			return
		}
		fn(items)
	})
}

// SubscribeMovements entrega la colección completa de movimientos tras cada
// cambio publicado.
func (s *Store) SubscribeMovements(ctx context.Context, fn func([]entity.Movement)) (func(), error) {
	return s.subscribe(ctx, movementsChannel, func(ctx context.Context) {
		movements, err := s.LoadMovements(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("recargar movimientos tras evento pub/sub")
			return
		}
		fn(movements)
	})
}

func (s *Store) load(ctx context.Context, key string, out any) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return fmt.Errorf("GET %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsear %s: %w", key, err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, key, channel string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("SET %s: %w", key, err)
	}
	// Notificación de cambio; los suscriptores recargan el documento.
	if err := s.client.Publish(ctx, channel, "changed").Err(); err != nil {
		s.log.Warn().Err(err).Str("channel", channel).Msg("publicar cambio")
	}
	return nil
}

// subscribe lanza la goroutine consumidora del canal. La cancelación cierra
// el PubSub, lo que termina la goroutine.
func (s *Store) subscribe(ctx context.Context, channel string, reload func(context.Context)) (func(), error) {
	pubsub := s.client.Subscribe(ctx, channel)
	// Forzar la suscripción antes de devolver, para no perder eventos.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("suscribir %s: %w", channel, err)
	}

	go func() {
		for range pubsub.Channel() {
			reload(context.Background())
		}
	}()

	return func() { _ = pubsub.Close() }, nil
}
