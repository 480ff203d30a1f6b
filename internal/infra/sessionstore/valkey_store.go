package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/skycast/internal/domain/widget"
)

var beginScript = valkey.NewLuaScript(`
local id = redis.call('INCR', KEYS[1])
redis.call('PEXPIRE', KEYS[1], ARGV[1])
return id
`)

// KEYS[1] query counter, KEYS[2] state; ARGV[1] query id, ARGV[2] state, ARGV[3] ttl ms.
var publishScript = valkey.NewLuaScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if current ~= tonumber(ARGV[1]) then
  return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

// ValkeyStore persists widget sessions in a Valkey-compatible database so
// several instances can serve the same session.
type ValkeyStore struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string, ttl time.Duration) *ValkeyStore {
	if prefix == "" {
		prefix = "skycast"
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ValkeyStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *ValkeyStore) Begin(ctx context.Context, sessionID string) (uint64, error) {
	id, err := beginScript.Exec(ctx, s.client, []string{s.queryKey(sessionID)}, []string{s.ttlArg()}).AsInt64()
	if err != nil {
		return 0, fmt.Errorf("begin query: %w", err)
	}
	return uint64(id), nil
}

func (s *ValkeyStore) Publish(ctx context.Context, sessionID string, st widget.State) (bool, error) {
	payload, err := json.Marshal(st)
	if err != nil {
		return false, err
	}
	keys := []string{s.queryKey(sessionID), s.stateKey(sessionID)}
	args := []string{strconv.FormatUint(st.QueryID, 10), string(payload), s.ttlArg()}
	applied, err := publishScript.Exec(ctx, s.client, keys, args).AsInt64()
	if err != nil {
		return false, fmt.Errorf("publish state: %w", err)
	}
	return applied == 1, nil
}

func (s *ValkeyStore) Load(ctx context.Context, sessionID string) (widget.State, bool, error) {
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.stateKey(sessionID)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return widget.State{}, false, nil
		}
		return widget.State{}, false, err
	}
	var st widget.State
	if err := json.Unmarshal([]byte(payload), &st); err != nil {
		return widget.State{}, false, err
	}
	return st, true, nil
}

func (s *ValkeyStore) ttlArg() string {
	return strconv.FormatInt(s.ttl.Milliseconds(), 10)
}

// Both keys of a session share a hash tag so the scripts work on a cluster.
func (s *ValkeyStore) queryKey(sessionID string) string {
	return fmt.Sprintf("%s:{%s}:query", s.prefix, sessionID)
}

func (s *ValkeyStore) stateKey(sessionID string) string {
	return fmt.Sprintf("%s:{%s}:state", s.prefix, sessionID)
}

var _ widget.Store = (*ValkeyStore)(nil)

// Close releases the underlying client.
func (s *ValkeyStore) Close() {
	s.client.Close()
}
