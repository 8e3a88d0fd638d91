package history

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"
)

// ValkeyGateway persists values in a Valkey-compatible database.
type ValkeyGateway struct {
	client valkey.Client
	prefix string
}

func NewValkeyGateway(client valkey.Client, prefix string) *ValkeyGateway {
	if prefix == "" {
		prefix = "weather-widget"
	}
	return &ValkeyGateway{client: client, prefix: prefix}
}

// DialValkey connects to a single Valkey node.
func DialValkey(address, password string, db int) (valkey.Client, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{address},
		Password:    password,
		SelectDB:    db,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to valkey: %w", err)
	}
	return client, nil
}

func (v *ValkeyGateway) Get(ctx context.Context, key string) (string, bool, error) {
	payload, err := v.client.Do(ctx, v.client.B().Get().Key(v.key(key)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return payload, true, nil
}

func (v *ValkeyGateway) Set(ctx context.Context, key, value string) error {
	return v.client.Do(ctx, v.client.B().Set().Key(v.key(key)).Value(value).Build()).Error()
}

func (v *ValkeyGateway) Ping(ctx context.Context) error {
	return v.client.Do(ctx, v.client.B().Ping().Build()).Error()
}

func (v *ValkeyGateway) Close() error {
	v.client.Close()
	return nil
}

func (v *ValkeyGateway) key(key string) string {
	return fmt.Sprintf("%s:%s", v.prefix, key)
}

var _ StorageGateway = (*ValkeyGateway)(nil)
