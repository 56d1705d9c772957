package rbloom

import (
	"context"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func BenchmarkHash(b *testing.B) {
	data := []byte("The quick brown fox jumps over the lazy dog")
	for _, name := range HashNames() {
		fn, _ := LookupHash(name)
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for i := 0; i < b.N; i++ {
				fn(data, goldenSpace)
			}
		})
	}
}

func BenchmarkOffsets(b *testing.B) {
	f := newTestFilter(b, NewMemoryStore())
	items := make([][]byte, 100)
	for i := range items {
		items[i] = []byte("item-" + strconv.Itoa(i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Offsets(items...)
	}
}

func BenchmarkMemoryHasAdd(b *testing.B) {
	f := newTestFilter(b, NewMemoryStore())
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.HasAddString(ctx, strconv.Itoa(i))
	}
}

func BenchmarkRedisAdd(b *testing.B) {
	mr := miniredis.RunT(b)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	c := testConfig()
	c.BitSpace = smallSpace
	f, err := New(NewRedisStore(client), c)
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	batch := make([][]byte, 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := range batch {
			batch[j] = []byte(strconv.Itoa(i*len(batch) + j))
		}
		if err := f.Add(ctx, batch...); err != nil {
			b.Fatal(err)
		}
	}
}
