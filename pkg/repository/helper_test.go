package repository_test

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kith/pkg/adapter"
)

// faultyKVS wraps the memory backend and fails on demand
type faultyKVS struct {
	*adapter.Memory
	mu      sync.Mutex
	failGet bool
	failSet bool
	failDel bool
	sets    int
}

func newFaultyKVS() *faultyKVS {
	return &faultyKVS{Memory: adapter.NewMemory()}
}

func (f *faultyKVS) setFailures(get, set, del bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failGet, f.failSet, f.failDel = get, set, del
}

func (f *faultyKVS) setCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sets
}

func (f *faultyKVS) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	fail := f.failGet
	f.mu.Unlock()
	if fail {
		return "", false, goerr.New("injected get fault", goerr.V("key", key))
	}
	return f.Memory.Get(ctx, key)
}

func (f *faultyKVS) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	fail := f.failSet
	f.sets++
	f.mu.Unlock()
	if fail {
		return goerr.New("injected set fault", goerr.V("key", key))
	}
	return f.Memory.Set(ctx, key, value)
}

func (f *faultyKVS) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	fail := f.failDel
	f.mu.Unlock()
	if fail {
		return goerr.New("injected delete fault", goerr.V("key", key))
	}
	return f.Memory.Delete(ctx, key)
}

func (f *faultyKVS) raw(key string) string {
	v, _, _ := f.Memory.Get(context.Background(), key)
	return v
}
