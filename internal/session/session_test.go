package session

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/envmon/console/internal/models"
	"github.com/redis/go-redis/v9"
)

func TestMemoryTokensIncrease(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	var last uint64
	for i := 0; i < 5; i++ {
		tok, err := s.Begin(ctx, "a", ViewQuery)
		if err != nil {
			t.Fatal(err)
		}
		if tok <= last {
			t.Fatalf("token %d not greater than %d", tok, last)
		}
		last = tok
	}
	other, _ := s.Begin(ctx, "a", ViewCorrelation)
	if other != 1 {
		t.Fatalf("views have independent sequences, got %d", other)
	}
}

func TestMemoryStaleCommitDiscarded(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	first, _ := s.Begin(ctx, "a", ViewQuery)
	second, _ := s.Begin(ctx, "a", ViewQuery)

	// the second request answers first
	err := s.Commit(ctx, "a", ViewQuery, second, func(ws *Workspace) {
		ws.Query = &models.QueryResult{Params: models.QueryParams{Source: models.SourceWeather}}
	})
	if err != nil {
		t.Fatalf("latest commit: %v", err)
	}
	err = s.Commit(ctx, "a", ViewQuery, first, func(ws *Workspace) {
		ws.Query = &models.QueryResult{Params: models.QueryParams{Source: models.SourceSensor}}
	})
	if !errors.Is(err, ErrStale) {
		t.Fatalf("want ErrStale, got %v", err)
	}

	ws, _ := s.Load(ctx, "a")
	if ws.Query.Params.Source != models.SourceWeather {
		t.Fatalf("stale result overwrote workspace: %v", ws.Query.Params.Source)
	}
}

func TestMemoryConcurrentBegin(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	const n = 50
	seen := make(chan uint64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok, _ := s.Begin(ctx, "a", ViewQuery)
			seen <- tok
		}()
	}
	wg.Wait()
	close(seen)

	unique := map[uint64]bool{}
	for tok := range seen {
		if unique[tok] {
			t.Fatalf("token %d issued twice", tok)
		}
		unique[tok] = true
	}
	if len(unique) != n {
		t.Fatalf("got %d tokens", len(unique))
	}
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	SetFlash(ctx, s, "a", "hello", false)
	now = now.Add(2 * time.Minute)
	flash, _ := TakeFlash(ctx, s, "a")
	if flash != nil {
		t.Fatalf("expired session kept flash %+v", flash)
	}
}

func TestFlashIsOneShot(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	if err := SetFlash(ctx, s, "a", "Selected rows deleted successfully.", false); err != nil {
		t.Fatal(err)
	}
	flash, err := TakeFlash(ctx, s, "a")
	if err != nil || flash == nil || flash.Message != "Selected rows deleted successfully." {
		t.Fatalf("flash = %+v, %v", flash, err)
	}
	if again, _ := TakeFlash(ctx, s, "a"); again != nil {
		t.Fatalf("flash shown twice: %+v", again)
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	if NewSessionID() == NewSessionID() {
		t.Fatal("session ids must differ")
	}
}

// TestRedisStore runs against a real server when ENVMON_TEST_REDIS is set,
// e.g. ENVMON_TEST_REDIS=localhost:6379.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("ENVMON_TEST_REDIS")
	if addr == "" {
		t.Skip("ENVMON_TEST_REDIS not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	s := NewRedisStore(client, time.Minute)
	defer s.Close()

	sid := NewSessionID()
	first, err := s.Begin(ctx, sid, ViewQuery)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := s.Begin(ctx, sid, ViewQuery)
	if second <= first {
		t.Fatalf("tokens %d, %d", first, second)
	}
	if err := s.Commit(ctx, sid, ViewQuery, first, func(ws *Workspace) {}); !errors.Is(err, ErrStale) {
		t.Fatalf("want ErrStale, got %v", err)
	}
	err = s.Commit(ctx, sid, ViewQuery, second, func(ws *Workspace) {
		ws.CorrelationID = "42"
	})
	if err != nil {
		t.Fatal(err)
	}
	ws, err := s.Load(ctx, sid)
	if err != nil || ws.CorrelationID != "42" {
		t.Fatalf("workspace = %+v, %v", ws, err)
	}
}
