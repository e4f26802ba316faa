package archive

import (
	"math"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/matzehuels/neoscope/pkg/neo"
)

func testDataset() *neo.Dataset {
	return neo.NewDataset([]neo.Observation{
		neo.NewObservation("1", "(1)", "2024-01-01", 0.1, 0.3, true, 40000, 2e6, 21),
		neo.NewObservation("2", "(2)", "2024-01-02", 0.01, 0.02, false, 12000, 7e6, 26),
	}, neo.Meta{
		ID:        "snap-1",
		LoadedAt:  time.Date(2024, 1, 9, 12, 0, 0, 0, time.UTC),
		StartDate: "2024-01-01",
		EndDate:   "2024-01-08",
	})
}

func TestDocumentLayout(t *testing.T) {
	raw, err := bson.Marshal(toDocument(testDataset()))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if m["_id"] != "snap-1" {
		t.Errorf("_id = %v, want snapshot ID", m["_id"])
	}
	for _, key := range []string{"loaded_at", "start_date", "end_date", "count", "observations"} {
		if _, ok := m[key]; !ok {
			t.Errorf("document missing %q", key)
		}
	}
	if m["count"] != int32(2) {
		t.Errorf("count = %v (%T), want 2", m["count"], m["count"])
	}
}

func TestDocumentRestoresDataset(t *testing.T) {
	ds := testDataset()
	raw, _ := bson.Marshal(toDocument(ds))

	var doc document
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	back := doc.dataset()

	if back.ID() != ds.ID() || !back.Meta().LoadedAt.Equal(ds.Meta().LoadedAt) {
		t.Errorf("meta = %+v, want %+v", back.Meta(), ds.Meta())
	}
	if back.Len() != 2 || back.HazardousCount() != 1 {
		t.Errorf("restored %d obs / %d hazardous", back.Len(), back.HazardousCount())
	}
	if got := back.Observations()[0].DiameterAvg; math.Abs(got-0.2) > 1e-12 {
		t.Errorf("DiameterAvg = %v, want 0.2", got)
	}
}
