package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

type ValkeySettings struct {
	Address   string
	Password  string
	DB        int
	KeyPrefix string
}

// Valkey is a Store backed by a Valkey (or Redis) server, shared between
// processes.
type Valkey struct {
	client valkey.Client
	prefix string
}

// NewValkey connects and pings the server before returning.
func NewValkey(ctx context.Context, settings ValkeySettings) (*Valkey, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:      []string{settings.Address},
		Password:         settings.Password,
		SelectDB:         settings.DB,
		ConnWriteTimeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create valkey client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping valkey at %s: %w", settings.Address, err)
	}

	return NewValkeyFromClient(client, settings.KeyPrefix), nil
}

// NewValkeyFromClient wraps an existing client. Keys are stored under prefix.
func NewValkeyFromClient(client valkey.Client, prefix string) *Valkey {
	return &Valkey{client: client, prefix: prefix}
}

func (v *Valkey) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := v.client.Do(ctx, v.client.B().Get().Key(v.key(key)).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("valkey get %s: %w", key, err)
	}
	return value, true, nil
}

func (v *Valkey) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var cmd valkey.Completed
	if secs := int64(ttl / time.Second); secs > 0 {
		cmd = v.client.B().Set().Key(v.key(key)).Value(valkey.BinaryString(value)).ExSeconds(secs).Build()
	} else {
		cmd = v.client.B().Set().Key(v.key(key)).Value(valkey.BinaryString(value)).Build()
	}
	if err := v.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("valkey set %s: %w", key, err)
	}
	return nil
}

func (v *Valkey) Delete(ctx context.Context, key string) error {
	if err := v.client.Do(ctx, v.client.B().Del().Key(v.key(key)).Build()).Error(); err != nil {
		return fmt.Errorf("valkey del %s: %w", key, err)
	}
	return nil
}

func (v *Valkey) Close() {
	v.client.Close()
}

func (v *Valkey) key(k string) string {
	return v.prefix + k
}
