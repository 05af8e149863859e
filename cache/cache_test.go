package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestCache_HitAndMiss(t *testing.T) {
	c := New(10, time.Minute)

	key := Key("강남 맛집")
	if _, hit := c.Get(key); hit {
		t.Error("unexpected hit on empty cache")
	}

	c.Set(key, []string{"강남 맛집 추천", "강남 맛집 리스트"})

	got, hit := c.Get(key)
	if !hit {
		t.Fatal("expected hit after Set")
	}
	if len(got) != 2 || got[0] != "강남 맛집 추천" {
		t.Errorf("got %v", got)
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New(10, 10*time.Millisecond)

	key := Key("keyword")
	c.Set(key, []string{"a"})
	time.Sleep(30 * time.Millisecond)

	if _, hit := c.Get(key); hit {
		t.Error("expected expired entry to miss")
	}
}

func TestCache_CapacityEviction(t *testing.T) {
	c := New(5, time.Minute)

	for i := 0; i < 8; i++ {
		c.Set(Key(fmt.Sprintf("k%d", i)), []string{"v"})
	}

	c.mu.RLock()
	size := len(c.store)
	c.mu.RUnlock()

	if size > 5 {
		t.Errorf("cache grew to %d entries, cap is 5", size)
	}
}

func TestKey_DistinctKeywords(t *testing.T) {
	if Key("하나") == Key("둘") {
		t.Error("distinct keywords produced the same key")
	}
	if Key("같음") != Key("같음") {
		t.Error("same keyword produced different keys")
	}
}
