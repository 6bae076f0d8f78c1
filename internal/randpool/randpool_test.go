package randpool_test

import (
	"testing"

	"github.com/momentics/anonstream/internal/randpool"
)

func TestGetPutRoundTrip(t *testing.T) {
	r := randpool.Get()
	if r == nil {
		t.Fatal("Get() returned nil")
	}
	v := r.Float64()
	if v < 0 || v >= 1 {
		t.Fatalf("Float64() = %v, want [0,1)", v)
	}
	randpool.Put(r)
}

func TestConcurrentGetDoesNotPanic(t *testing.T) {
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			r := randpool.Get()
			_ = r.Float64()
			randpool.Put(r)
			done <- struct{}{}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
