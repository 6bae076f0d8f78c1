package noise_test

import (
	"testing"

	"github.com/momentics/anonstream/noise"
	"github.com/momentics/anonstream/qi"
)

func sampleQIs() []qi.Value {
	return []qi.Value{
		qi.NewInterval(50, 33, 85, 1),
		qi.NewNominal(0, 1, 1),
	}
}

func TestAddNoisePreservesShape(t *testing.T) {
	n := noise.New(0.1, 3, 0.1)
	qis := sampleQIs()
	out := n.AddNoise(qis)
	if len(out) != len(qis) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(qis))
	}
	for i, v := range out {
		if v.Kind != qis[i].Kind {
			t.Errorf("position %d kind = %v, want %v", i, v.Kind, qis[i].Kind)
		}
	}
}

func TestAddNoiseStaysInDomain(t *testing.T) {
	n := noise.New(0.1, 3, 0.1)
	for i := 0; i < 20; i++ {
		out := n.AddNoise(sampleQIs())
		if out[0].Value < 33 || out[0].Value > 85 {
			t.Fatalf("interval noise escaped domain: %v", out[0].Value)
		}
		if out[1].Code < 0 || out[1].Code > 1 {
			t.Fatalf("nominal noise escaped domain: %v", out[1].Code)
		}
	}
}

func TestCloneStartsWithFreshState(t *testing.T) {
	proto := noise.New(0.1, 3, 0.1)
	a := proto.Clone()
	b := proto.Clone()

	a.AddNoise(sampleQIs())
	a.AddNoise([]qi.Value{qi.NewInterval(80, 33, 85, 1), qi.NewNominal(1, 1, 1)})

	// b has never observed a value yet; its first AddNoise call lazily
	// constructs its own sub-noisers independent of a's accumulated
	// history/observed-code state.
	out := b.AddNoise(sampleQIs())
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
}
