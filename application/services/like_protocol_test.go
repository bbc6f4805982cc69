package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trustnet-backend/application/ports"
	"trustnet-backend/domain/threat"
	pkgerrors "trustnet-backend/pkg/errors"
	"trustnet-backend/pkg/observability"
	"trustnet-backend/tests/fixtures"
)

// fakeLikeStore is an in-memory ports.LikeRepository that enforces the same
// guards as the DynamoDB transactions: the counter update requires the threat
// row to exist (and stay positive on decrement), the membership write requires
// the row to be absent (present on delete). Both sides commit atomically under
// one lock, so the counter and the membership set can only drift if the
// service logic lets them.
type fakeLikeStore struct {
	mu      sync.Mutex
	threats map[string]*threat.Threat
	rows    map[ports.LikeKey]threat.Like
}

func newFakeLikeStore(threats ...*threat.Threat) *fakeLikeStore {
	s := &fakeLikeStore{
		threats: make(map[string]*threat.Threat),
		rows:    make(map[ports.LikeKey]threat.Like),
	}
	for _, t := range threats {
		s.threats[t.ThreatID] = t
	}
	return s
}

func (s *fakeLikeStore) Get(ctx context.Context, userID, threatID string) (*threat.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.rows[ports.LikeKey{UserID: userID, ThreatID: threatID}]; ok {
		return &row, nil
	}
	return nil, nil
}

func (s *fakeLikeStore) ListByThreat(ctx context.Context, threatID string) ([]threat.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var likes []threat.Like
	for key, row := range s.rows {
		if key.ThreatID == threatID {
			likes = append(likes, row)
		}
	}
	return likes, nil
}

func (s *fakeLikeStore) ListByUser(ctx context.Context, userID string) ([]threat.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var likes []threat.Like
	for key, row := range s.rows {
		if key.UserID == userID {
			likes = append(likes, row)
		}
	}
	return likes, nil
}

func (s *fakeLikeStore) Like(ctx context.Context, userID string, key threat.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.threats[key.ThreatID]
	if !ok {
		return ports.ErrThreatGone
	}
	lk := ports.LikeKey{UserID: userID, ThreatID: key.ThreatID}
	if _, exists := s.rows[lk]; exists {
		return ports.ErrAlreadyLiked
	}

	s.rows[lk] = threat.NewLike(userID, key)
	t.Likes++
	return nil
}

func (s *fakeLikeStore) Unlike(ctx context.Context, userID string, key threat.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.threats[key.ThreatID]
	if !ok {
		return ports.ErrThreatGone
	}
	if t.Likes <= 0 {
		return ports.ErrNotLiked
	}
	lk := ports.LikeKey{UserID: userID, ThreatID: key.ThreatID}
	if _, exists := s.rows[lk]; !exists {
		return ports.ErrNotLiked
	}

	delete(s.rows, lk)
	t.Likes--
	return nil
}

func (s *fakeLikeStore) counter(threatID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.threats[threatID].Likes
}

func (s *fakeLikeStore) rowCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *fakeLikeStore) deleteThreat(threatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.threats, threatID)
}

func protocolService(store *fakeLikeStore) *LikeService {
	return NewLikeService(nil, store, nil, observability.NewTracer("trustnet-backend"), zap.NewNop())
}

func TestLikeProtocol_DistinctUsersCountOnce(t *testing.T) {
	target := fixtures.NewThreatBuilder().Build()
	store := newFakeLikeStore(target)
	svc := protocolService(store)
	ctx := context.Background()

	const users = 50
	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Like(ctx, fmt.Sprintf("user-%d", i), target.Key())
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, users, store.counter(target.ThreatID))
	assert.Equal(t, users, store.rowCount())
}

func TestLikeProtocol_SameUserRacingItself(t *testing.T) {
	target := fixtures.NewThreatBuilder().Build()
	store := newFakeLikeStore(target)
	svc := protocolService(store)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := svc.Like(ctx, "user-1", target.Key())
			// Every racing call succeeds; exactly one of them is OutcomeLiked.
			assert.NoError(t, err)
			assert.NotNil(t, result)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, store.counter(target.ThreatID))
	assert.Equal(t, 1, store.rowCount())
}

func TestLikeProtocol_ToggleChurnKeepsCounterConsistent(t *testing.T) {
	target := fixtures.NewThreatBuilder().Build()
	store := newFakeLikeStore(target)
	svc := protocolService(store)
	ctx := context.Background()

	const users = 10
	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", i)
			for j := 0; j < 20; j++ {
				if j%2 == 0 {
					_, err := svc.Like(ctx, userID, target.Key())
					assert.NoError(t, err)
				} else {
					_, err := svc.Unlike(ctx, userID, target.Key())
					assert.NoError(t, err)
				}
				assert.GreaterOrEqual(t, store.counter(target.ThreatID), 0,
					"counter must never go negative")
			}
		}(i)
	}
	wg.Wait()

	// Every user ended on an unlike, and the counter tracks the rows exactly.
	assert.Equal(t, store.rowCount(), store.counter(target.ThreatID))
	assert.Equal(t, 0, store.counter(target.ThreatID))
}

func TestLikeProtocol_UnlikeWithoutLikeIsIdempotent(t *testing.T) {
	target := fixtures.NewThreatBuilder().Build()
	store := newFakeLikeStore(target)
	svc := protocolService(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := svc.Unlike(ctx, "user-1", target.Key())
		require.NoError(t, err)
		assert.Equal(t, OutcomeAlreadyUnliked, result.Outcome)
	}
	assert.Equal(t, 0, store.counter(target.ThreatID))
}

func TestLikeProtocol_LikeAfterThreatDeleted(t *testing.T) {
	target := fixtures.NewThreatBuilder().Build()
	store := newFakeLikeStore(target)
	svc := protocolService(store)
	ctx := context.Background()

	store.deleteThreat(target.ThreatID)

	_, err := svc.Like(ctx, "user-1", target.Key())
	assert.True(t, pkgerrors.IsNotFound(err))
}
