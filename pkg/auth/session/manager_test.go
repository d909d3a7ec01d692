package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	m.data[key] = fmt.Sprint(value)
	return true, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

type mockKeyer struct{}

func (mockKeyer) SessionTokenKey(token string) string {
	return "bz:session:token:" + token
}

func (mockKeyer) SessionAccountKey(accountID string) string {
	return "bz:session:account:" + accountID
}

func newTestManager() (*Manager, *mockStore) {
	store := newMockStore()
	return &Manager{store: store, keyer: mockKeyer{}}, store
}

func TestIssueCreatesAndResolves(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	token, err := manager.Issue(ctx, "acct-1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" {
		t.Fatal("Issue returned empty token")
	}

	accountID, err := manager.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if accountID != "acct-1" {
		t.Fatalf("Resolve returned %q, want acct-1", accountID)
	}
}

func TestIssueIsIdempotentPerAccount(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	first, err := manager.Issue(ctx, "acct-1")
	if err != nil {
		t.Fatalf("first Issue returned error: %v", err)
	}
	second, err := manager.Issue(ctx, "acct-1")
	if err != nil {
		t.Fatalf("second Issue returned error: %v", err)
	}
	if first != second {
		t.Fatalf("expected the same token on re-login, got %q and %q", first, second)
	}
}

func TestIssueConcurrentLoginsShareOneToken(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	const logins = 16
	tokens := make([]string, logins)
	var wg sync.WaitGroup
	for i := 0; i < logins; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token, err := manager.Issue(ctx, "acct-1")
			if err != nil {
				t.Errorf("Issue returned error: %v", err)
				return
			}
			tokens[i] = token
		}(i)
	}
	wg.Wait()

	for _, token := range tokens {
		if token != tokens[0] {
			t.Fatalf("concurrent logins produced distinct tokens: %q vs %q", token, tokens[0])
		}
	}
}

func TestRevokeInvalidatesToken(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	token, err := manager.Issue(ctx, "acct-1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if err := manager.Revoke(ctx, token); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}

	if _, err := manager.Resolve(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after revoke, got %v", err)
	}

	// A fresh login after logout mints a brand new token.
	next, err := manager.Issue(ctx, "acct-1")
	if err != nil {
		t.Fatalf("Issue after revoke returned error: %v", err)
	}
	if next == token {
		t.Fatal("expected a new token after revoke")
	}
}

func TestResolveUnknownToken(t *testing.T) {
	manager, _ := newTestManager()
	if _, err := manager.Resolve(context.Background(), "nope"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRevokeUnknownToken(t *testing.T) {
	manager, _ := newTestManager()
	if err := manager.Revoke(context.Background(), "nope"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
