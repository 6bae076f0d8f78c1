package cluster_test

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/momentics/anonstream/analyser"
	"github.com/momentics/anonstream/api"
	"github.com/momentics/anonstream/cluster"
	"github.com/momentics/anonstream/noise"
	"github.com/momentics/anonstream/publisherfake"
	"github.com/momentics/anonstream/qi"
	"github.com/momentics/anonstream/recordfake"
)

func newParams() cluster.Params {
	return cluster.Params{K: 3, KMax: 10, L: 2, C: 2, MaxBufferSize: 5}
}

func ageGenderRec(age float64, gender int, ts int64) *recordfake.Record {
	qis := []qi.Value{
		qi.NewInterval(age, 33, 85, 1),
		qi.NewNominal(gender, 1, 1),
	}
	return recordfake.New(qis, api.SensitiveStringValue("A"), ts)
}

func newTestCluster() *cluster.Cluster {
	return cluster.New(newParams(), noise.New(0.1, 3, 0.1), zerolog.Nop())
}

func newTestClusterWithBuffer(maxBuf int) *cluster.Cluster {
	params := cluster.Params{K: 3, KMax: 10, L: 2, C: 2, MaxBufferSize: maxBuf}
	return cluster.New(params, noise.New(0.1, 3, 0.1), zerolog.Nop())
}

// ageOnlyRec carries a single numeric QI and no categorical position, so
// DetectDrift's "all QIs numeric" (flatten + two-sample KS) branch fires
// rather than the categorical-distance branch (spec.md §4.4).
func ageOnlyRec(age float64, ts int64) *recordfake.Record {
	qis := []qi.Value{qi.NewInterval(age, 0, 100, 1)}
	return recordfake.New(qis, api.SensitiveStringValue("A"), ts)
}

func TestAddUpdatesFrequenciesAndCentroid(t *testing.T) {
	c := newTestCluster()
	c.Add(ageGenderRec(30, 0, 1), 1)
	c.Add(ageGenderRec(40, 0, 2), 2)

	if c.CompleteBufferAmount != 2 {
		t.Errorf("CompleteBufferAmount = %d, want 2", c.CompleteBufferAmount)
	}
	if c.WCur.Centroid().QIs()[0].Value != 35 {
		t.Errorf("centroid age = %v, want 35", c.WCur.Centroid().QIs()[0].Value)
	}
	if c.SensitiveFreq["s:A"] != 2 {
		t.Errorf("SensitiveFreq = %v, want 2", c.SensitiveFreq["s:A"])
	}
	if c.CategoricalFreq[1][0] != 2 {
		t.Errorf("CategoricalFreq[gender=0] = %v, want 2", c.CategoricalFreq[1][0])
	}
}

// S7 — diversity gate: 3 records all sensitive=A at k=3,c=2. s=[3],
// 3 < 2*0 is false, so diversity fails and releases must be suppressed
// (randomized), not centroid+noise.
func TestDiversityFailureSuppresses(t *testing.T) {
	c := newTestCluster()
	pub := publisherfake.New()
	analysers := analyser.Set{analyser.NewMSE()}

	c.Add(ageGenderRec(30, 0, 1), 1)
	c.Add(ageGenderRec(30, 0, 2), 2)
	c.Add(ageGenderRec(30, 0, 3), 3)

	c.PublishAll(pub, analysers, 10)

	published := pub.Records()
	if len(published) != 3 {
		t.Fatalf("published = %d, want 3", len(published))
	}
}

func TestPublishLatestReleasesOnlyMostRecentUnreleased(t *testing.T) {
	c := newTestCluster()
	pub := publisherfake.New()
	analysers := analyser.Set{analyser.NewMSE()}

	c.Add(ageGenderRec(30, 0, 1), 1)
	c.Add(ageGenderRec(30, 1, 2), 2)
	c.Add(ageGenderRec(30, 0, 3), 3)
	c.Add(ageGenderRec(30, 1, 4), 4)

	c.PublishLatest(pub, analysers, 10)
	if len(pub.Records()) != 1 {
		t.Fatalf("published = %d, want 1", len(pub.Records()))
	}

	// Releasing the same entry twice must never happen: calling
	// PublishLatest again releases the next-most-recent unreleased entry,
	// not the one already marked released.
	c.PublishLatest(pub, analysers, 11)
	if len(pub.Records()) != 2 {
		t.Fatalf("published = %d, want 2", len(pub.Records()))
	}
}

// S5 — drift rejected (numeric only): W_prev and W_cur are two fully
// separated 8-entry distributions (33 vs 85), giving a two-sample KS
// statistic of 1.0 against a threshold well below 1, so rejection must
// fire and the cluster centroid must reset to W_prev's (33).
func TestDetectDriftRejectsOnLargeDivergenceAndResetsCentroid(t *testing.T) {
	c := newTestClusterWithBuffer(8)
	for i := 0; i < 8; i++ {
		c.WPrev.Admit(ageOnlyRec(33, int64(i)))
	}
	for i := 0; i < 8; i++ {
		c.WCur.Admit(ageOnlyRec(85, int64(i)))
	}

	c.DetectDrift(cluster.DefaultKSAlpha)

	if c.WCur.Len() != 0 {
		t.Errorf("WCur.Len() after DetectDrift = %d, want 0", c.WCur.Len())
	}
	if got := c.Centroid().QIs()[0].Value; got != 33 {
		t.Errorf("centroid after rejected drift = %v, want 33 (reset to W_prev)", got)
	}
}

// S6 — drift not rejected: W_prev and W_cur hold the same distribution, so
// the KS statistic is 0 and the centroid must be left unchanged.
func TestDetectDriftAcceptsOnSimilarDistributionsAndKeepsCentroid(t *testing.T) {
	c := newTestClusterWithBuffer(8)
	for i := 0; i < 8; i++ {
		c.WPrev.Admit(ageOnlyRec(45, int64(i)))
	}
	for i := 0; i < 8; i++ {
		c.WCur.Admit(ageOnlyRec(45, int64(i)))
	}

	c.DetectDrift(cluster.DefaultKSAlpha)

	if c.WCur.Len() != 0 {
		t.Errorf("WCur.Len() after DetectDrift = %d, want 0 (entries always cleared)", c.WCur.Len())
	}
	if got := c.Centroid().QIs()[0].Value; got != 45 {
		t.Errorf("centroid after accepted drift = %v, want 45 (unchanged)", got)
	}
}

func TestStateTransitions(t *testing.T) {
	c := newTestCluster() // K:3, KMax:10, MaxBufferSize:5

	if got := c.State(0, 1000); got != cluster.Growing {
		t.Errorf("state before any admission = %v, want Growing", got)
	}

	c.Add(ageGenderRec(30, 0, 1), 1)
	c.Add(ageGenderRec(30, 0, 2), 2)
	c.Add(ageGenderRec(30, 0, 3), 3)
	if got := c.State(3, 1000); got != cluster.ReadyToPublish {
		t.Errorf("state at |W_cur|=k=3 = %v, want ReadyToPublish", got)
	}

	c.Add(ageGenderRec(30, 0, 4), 4)
	if got := c.State(4, 1000); got != cluster.PostK {
		t.Errorf("state at |W_cur|=4 (k<4<=k_max+1) = %v, want PostK", got)
	}

	if got := c.State(5000, 1000); got != cluster.Expired {
		t.Errorf("state at age >= delta_ns = %v, want Expired", got)
	}

	c.CompleteBufferAmount = int64(c.Params.KMax) + 1
	if got := c.State(4, 1000); got != cluster.Dead {
		t.Errorf("state at complete_buffer_amount > k_max = %v, want Dead", got)
	}
}

func TestAgeNS(t *testing.T) {
	c := newTestCluster()
	c.Add(ageGenderRec(30, 0, 1), 100)
	if got := c.AgeNS(150); got != 50 {
		t.Errorf("AgeNS = %d, want 50", got)
	}
}
