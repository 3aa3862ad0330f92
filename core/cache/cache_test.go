package cache

import (
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"
)

func TestLRUCache_BasicOperations(t *testing.T) {
	cache := NewLRUCache(Config[string, int]{MaxSize: 3})

	cache.Put("a", 1)
	cache.Put("b", 2)
	cache.Put("c", 3)

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		if v, ok := cache.Get(key); !ok || v != want {
			t.Errorf("Get(%s) = %d, %v; want %d, true", key, v, ok, want)
		}
	}
	if _, ok := cache.Get("d"); ok {
		t.Error("Get(d) should return false")
	}
	if n := cache.Len(); n != 3 {
		t.Errorf("Len() = %d; want 3", n)
	}
}

func TestLRUCache_Eviction(t *testing.T) {
	cache := NewLRUCache(Config[string, int]{MaxSize: 2})

	cache.Put("a", 1)
	cache.Put("b", 2)
	cache.Get("a")    // a is now most recently used
	cache.Put("c", 3) // evicts b

	if _, ok := cache.Get("b"); ok {
		t.Error("Get(b) should return false after eviction")
	}
	if _, ok := cache.Get("a"); !ok {
		t.Error("Get(a) should survive eviction")
	}
	if got := cache.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d; want 1", got)
	}
}

func TestLRUCache_UpdateAndKeys(t *testing.T) {
	cache := NewLRUCache(Config[string, int]{MaxSize: 3})
	cache.Put("a", 1)
	cache.Put("b", 2)
	cache.Put("a", 10)

	if v, _ := cache.Get("a"); v != 10 {
		t.Errorf("Get(a) = %d; want 10", v)
	}
	if got := cache.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Keys() = %v; want [a b]", got)
	}
	if cache.Len() != 2 {
		t.Errorf("Len() = %d; want 2", cache.Len())
	}
}

func TestLRUCache_RemoveAndClear(t *testing.T) {
	var evicted []string
	cache := NewLRUCache(Config[string, int]{
		OnEvict: func(key string, _ int) { evicted = append(evicted, key) },
	})
	cache.Put("a", 1)
	cache.Put("b", 2)

	cache.Remove("a")
	cache.Remove("missing")
	if _, ok := cache.Get("a"); ok {
		t.Error("Get(a) should fail after Remove")
	}
	if !reflect.DeepEqual(evicted, []string{"a"}) {
		t.Errorf("OnEvict calls = %v; want [a]", evicted)
	}

	cache.Clear()
	if cache.Len() != 0 || len(cache.Keys()) != 0 {
		t.Error("Clear() should empty the cache")
	}
}

func TestLRUCache_TTL(t *testing.T) {
	cache := NewLRUCache(Config[string, int]{TTL: 20 * time.Millisecond})
	cache.Put("a", 1)

	if _, ok := cache.Get("a"); !ok {
		t.Fatal("Get(a) should succeed before expiry")
	}
	time.Sleep(40 * time.Millisecond)
	if _, ok := cache.Get("a"); ok {
		t.Error("Get(a) should fail after expiry")
	}
	if cache.Len() != 0 {
		t.Error("expired entry should be dropped")
	}
}

func TestLRUCache_Stats(t *testing.T) {
	cache := NewLRUCache(Config[string, int]{MaxSize: 5})
	cache.Put("a", 1)
	cache.Get("a")
	cache.Get("a")
	cache.Get("b")

	s := cache.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.Size != 1 || s.MaxSize != 5 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig[string, int]()
	if cfg.MaxSize != DefaultMaxSize || cfg.TTL != 0 || cfg.OnEvict != nil {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
	if got := NewLRUCache(Config[string, int]{MaxSize: -1}).Stats().MaxSize; got != 0 {
		t.Errorf("negative MaxSize should become unlimited, got %d", got)
	}
}

func TestLRUCache_Concurrency(t *testing.T) {
	cache := NewLRUCache(Config[string, int]{MaxSize: 50})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*200+i)%75)
				cache.Put(key, i)
				cache.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if cache.Len() > 50 {
		t.Errorf("Len() = %d; want <= 50", cache.Len())
	}
}

func BenchmarkLRUCache_PutGet(b *testing.B) {
	cache := NewLRUCache(Config[int, int]{MaxSize: 1000})
	for i := 0; i < b.N; i++ {
		cache.Put(i%2000, i)
		cache.Get(i % 1000)
	}
}
