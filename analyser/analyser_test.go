package analyser_test

import (
	"testing"

	"github.com/momentics/anonstream/analyser"
	"github.com/momentics/anonstream/api"
	"github.com/momentics/anonstream/qi"
)

type fakeRecord struct {
	qis []qi.Value
	ts  int64
}

func (r *fakeRecord) QIs() []qi.Value                       { return r.qis }
func (r *fakeRecord) WithQIs(qis []qi.Value) api.Record      { return &fakeRecord{qis: qis, ts: r.ts} }
func (r *fakeRecord) Sensitive() api.Sensitive               { return api.SensitiveStringValue("A") }
func (r *fakeRecord) Timestamp() int64                       { return r.ts }
func (r *fakeRecord) ToStringRow(string, float64) []string   { return nil }

func rec(age float64, ts int64) *fakeRecord {
	return &fakeRecord{qis: []qi.Value{qi.NewInterval(age, 0, 100, 1)}, ts: ts}
}

func TestSetObserveFeedsMSEAndSSEAndDelay(t *testing.T) {
	set := analyser.Set{analyser.NewMSE(), analyser.NewSSE(), analyser.NewDelay()}
	orig := rec(30, 100)
	out := rec(35, 100)

	set.Observe(orig, out, 150)
	snap := set.Snapshot()

	if snap["analyser.mse"].(float64) <= 0 {
		t.Error("expected positive MSE after one observation")
	}
	if snap["analyser.sse"].(float64) <= 0 {
		t.Error("expected positive SSE after one observation")
	}
	if snap["analyser.publishing_delay_ns"].(int64) != 50 {
		t.Errorf("delay = %v, want 50", snap["analyser.publishing_delay_ns"])
	}
}

func TestClusterStatCounters(t *testing.T) {
	set := analyser.Set{analyser.NewClusterStat()}
	set.ClusterCreated()
	set.ClusterCreated()
	set.ClusterDeleted()

	snap := set.Snapshot()
	if snap["analyser.clusters_created"].(int64) != 2 {
		t.Errorf("created = %v, want 2", snap["analyser.clusters_created"])
	}
	if snap["analyser.clusters_deleted"].(int64) != 1 {
		t.Errorf("deleted = %v, want 1", snap["analyser.clusters_deleted"])
	}
}

func TestDisclosureRiskFreshestAmongMinima(t *testing.T) {
	set := analyser.Set{analyser.NewDisclosureRisk(3)}

	// First release: ring is empty before insertion of orig, so orig is
	// the only ring entry when the distance is measured -> always index 0.
	risk := set.Observe(rec(30, 0), rec(30, 0), 0)
	if risk != 1 {
		t.Errorf("first disclosure risk = %v, want 1", risk)
	}
}
