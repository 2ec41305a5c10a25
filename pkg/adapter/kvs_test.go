package adapter_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/kith/pkg/adapter"
	"github.com/m-mizutani/kith/pkg/interfaces"
)

// testKVS runs the behaviour every backend must share
func testKVS(t *testing.T, kvs interfaces.KVS) {
	ctx := context.Background()
	key := fmt.Sprintf("test-%d", time.Now().UnixNano())

	t.Run("missing key is not found", func(t *testing.T) {
		v, found, err := kvs.Get(ctx, key)
		gt.NoError(t, err)
		gt.False(t, found)
		gt.Equal(t, v, "")
	})

	t.Run("set then get", func(t *testing.T) {
		gt.NoError(t, kvs.Set(ctx, key, `[{"id":"1"}]`))
		v, found, err := kvs.Get(ctx, key)
		gt.NoError(t, err)
		gt.True(t, found)
		gt.Equal(t, v, `[{"id":"1"}]`)
	})

	t.Run("set overwrites", func(t *testing.T) {
		gt.NoError(t, kvs.Set(ctx, key, `[]`))
		v, found, err := kvs.Get(ctx, key)
		gt.NoError(t, err)
		gt.True(t, found)
		gt.Equal(t, v, `[]`)
	})

	t.Run("delete removes key", func(t *testing.T) {
		gt.NoError(t, kvs.Delete(ctx, key))
		_, found, err := kvs.Get(ctx, key)
		gt.NoError(t, err)
		gt.False(t, found)
	})

	t.Run("delete missing key is not an error", func(t *testing.T) {
		gt.NoError(t, kvs.Delete(ctx, key+"-never-set"))
	})
}

func TestMemory(t *testing.T) {
	testKVS(t, adapter.NewMemory())
}

func TestSQLite(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "kith.db")

	kvs, err := adapter.NewSQLite(ctx, dbPath)
	gt.NoError(t, err)
	defer kvs.Close()

	testKVS(t, kvs)
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "kith.db")

	first, err := adapter.NewSQLite(ctx, dbPath)
	gt.NoError(t, err)
	gt.NoError(t, first.Set(ctx, "people", `[]`))
	gt.NoError(t, first.Close())

	second, err := adapter.NewSQLite(ctx, dbPath)
	gt.NoError(t, err)
	defer second.Close()

	v, found, err := second.Get(ctx, "people")
	gt.NoError(t, err)
	gt.True(t, found)
	gt.Equal(t, v, `[]`)
}

func TestSQLiteRequiresPath(t *testing.T) {
	_, err := adapter.NewSQLite(context.Background(), "")
	gt.Error(t, err)
}

func TestRedis(t *testing.T) {
	mr, err := miniredis.Run()
	gt.NoError(t, err)
	defer mr.Close()

	kvs, err := adapter.NewRedis(context.Background(), adapter.RedisConfig{
		Address: mr.Addr(),
		Prefix:  "kith:",
	})
	gt.NoError(t, err)
	defer kvs.Close()

	testKVS(t, kvs)
}

func TestRedisPrefix(t *testing.T) {
	mr, err := miniredis.Run()
	gt.NoError(t, err)
	defer mr.Close()

	ctx := context.Background()
	kvs, err := adapter.NewRedis(ctx, adapter.RedisConfig{Address: mr.Addr(), Prefix: "kith:"})
	gt.NoError(t, err)
	defer kvs.Close()

	gt.NoError(t, kvs.Set(ctx, "people", `[]`))
	gt.True(t, mr.Exists("kith:people"))
	gt.False(t, mr.Exists("people"))
}

func TestRedisFault(t *testing.T) {
	mr, err := miniredis.Run()
	gt.NoError(t, err)

	ctx := context.Background()
	kvs, err := adapter.NewRedis(ctx, adapter.RedisConfig{Address: mr.Addr()})
	gt.NoError(t, err)
	defer kvs.Close()

	mr.Close()

	_, _, err = kvs.Get(ctx, "people")
	gt.Error(t, err)
	gt.Error(t, kvs.Set(ctx, "people", `[]`))
}

func TestRedisUnreachable(t *testing.T) {
	mr, err := miniredis.Run()
	gt.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = adapter.NewRedis(context.Background(), adapter.RedisConfig{Address: addr})
	gt.Error(t, err)
}

func TestFirestore(t *testing.T) {
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if projectID == "" || databaseID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID and TEST_FIRESTORE_DATABASE_ID must be set to run Firestore tests")
	}

	kvs, err := adapter.NewFirestore(context.Background(), projectID, databaseID,
		adapter.WithFirestoreCollection("kith_test"))
	gt.NoError(t, err)
	defer kvs.Close()

	testKVS(t, kvs)
}

func TestCloudStorage(t *testing.T) {
	bucket := os.Getenv("TEST_GCS_BUCKET")
	if bucket == "" {
		t.Skip("TEST_GCS_BUCKET is not set")
	}

	kvs, err := adapter.NewCloudStorage(context.Background(), bucket, "kith-test")
	gt.NoError(t, err)
	defer kvs.Close()

	testKVS(t, kvs)
}
