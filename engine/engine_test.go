package engine_test

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/momentics/anonstream/analyser"
	"github.com/momentics/anonstream/api"
	"github.com/momentics/anonstream/control"
	"github.com/momentics/anonstream/engine"
	"github.com/momentics/anonstream/noise"
	"github.com/momentics/anonstream/publisherfake"
	"github.com/momentics/anonstream/qi"
	"github.com/momentics/anonstream/recordfake"
)

func testConfig() *control.Config {
	cfg := &control.Config{
		K: 3, KMax: 10, L: 2, C: 2,
		Eps: 0.1, DiffThres: 0.65, DeltaSeconds: 10, NoiseThr: 0.1,
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

func newTestEngine(pub api.Publisher) *engine.Engine {
	cfg := testConfig()
	noiserProto := noise.New(cfg.Eps, cfg.K, cfg.NoiseThr)
	analysers := analyser.Set{analyser.NewMSE(), analyser.NewClusterStat()}
	return engine.New(cfg, pub, noiserProto, analysers, zerolog.Nop())
}

func ageGenderRec(age float64, gender int, ts int64) *recordfake.Record {
	qis := []qi.Value{
		qi.NewInterval(age, 33, 85, 1),
		qi.NewNominal(gender, 1, 1),
	}
	return recordfake.New(qis, api.SensitiveStringValue("A"), ts)
}

// S1/S2 — cluster creation then reuse: two close records land in the same
// cluster, and no release happens before |W_cur| reaches k.
func TestAnonymizeCreatesAndReusesCluster(t *testing.T) {
	pub := publisherfake.New()
	e := newTestEngine(pub)

	if err := e.Anonymize(ageGenderRec(30, 0, 0)); err != nil {
		t.Fatal(err)
	}
	if e.LiveClusterCount() != 1 {
		t.Fatalf("live clusters = %d, want 1", e.LiveClusterCount())
	}
	if err := e.Anonymize(ageGenderRec(30, 0, 0)); err != nil {
		t.Fatal(err)
	}
	if e.LiveClusterCount() != 1 {
		t.Fatalf("live clusters after reuse = %d, want 1", e.LiveClusterCount())
	}
	if len(pub.Records()) != 0 {
		t.Fatalf("published = %d, want 0 (|W_cur|=2 < k=3)", len(pub.Records()))
	}
}

// S3 — a record far enough from the existing centroid creates a second
// cluster instead of joining the first.
func TestAnonymizeCreatesSecondClusterWhenFar(t *testing.T) {
	pub := publisherfake.New()
	e := newTestEngine(pub)

	e.Anonymize(ageGenderRec(30, 0, 0))
	e.Anonymize(ageGenderRec(50, 1, 0))

	if e.LiveClusterCount() != 2 {
		t.Fatalf("live clusters = %d, want 2", e.LiveClusterCount())
	}
}

// S4 — hitting |W_cur| == k triggers publish_all: exactly k outputs.
func TestAnonymizeReleasesAllAtK(t *testing.T) {
	pub := publisherfake.New()
	e := newTestEngine(pub)

	e.Anonymize(ageGenderRec(30, 0, 0))
	e.Anonymize(ageGenderRec(30, 0, 0))
	e.Anonymize(ageGenderRec(31, 0, 0))

	if len(pub.Records()) != 3 {
		t.Fatalf("published = %d, want 3", len(pub.Records()))
	}
}

func TestSchemaMismatchPanics(t *testing.T) {
	pub := publisherfake.New()
	e := newTestEngine(pub)
	e.Anonymize(ageGenderRec(30, 0, 0))

	defer func() {
		if recover() == nil {
			t.Error("expected panic on schema mismatch")
		}
	}()
	badQIs := []qi.Value{qi.NewInterval(30, 33, 85, 1)} // missing the gender position
	e.Anonymize(recordfake.New(badQIs, api.SensitiveStringValue("A"), 0))
}

func TestClusterStateCountsReportsGrowing(t *testing.T) {
	pub := publisherfake.New()
	e := newTestEngine(pub)

	e.Anonymize(ageGenderRec(30, 0, 0))

	counts := e.ClusterStateCounts()
	if counts["growing"] != 1 {
		t.Errorf("counts[growing] = %d, want 1 (got %v)", counts["growing"], counts)
	}
}

func TestDrainPublishesRemainingWhenConfigured(t *testing.T) {
	pub := publisherfake.New()
	cfg := testConfig()
	cfg.PublishRemainingOnShutdown = true
	noiserProto := noise.New(cfg.Eps, cfg.K, cfg.NoiseThr)
	analysers := analyser.Set{analyser.NewMSE()}
	e := engine.New(cfg, pub, noiserProto, analysers, zerolog.Nop())

	e.Anonymize(ageGenderRec(30, 0, 0))
	e.Anonymize(ageGenderRec(30, 1, 0))

	e.Drain()
	if len(pub.Records()) != 2 {
		t.Fatalf("published after Drain = %d, want 2", len(pub.Records()))
	}
	if err := e.Anonymize(ageGenderRec(30, 0, 0)); err != engine.ErrClosed {
		t.Errorf("Anonymize after Drain err = %v, want ErrClosed", err)
	}
}
