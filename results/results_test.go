package results_test

import (
	"encoding/json"
	"os"
	"path"
	"reflect"
	"testing"
	"time"

	"github.com/m-lab/go/rtx"

	"github.com/nettime/htdate/estimator"
	"github.com/nettime/htdate/metadata"
	"github.com/nettime/htdate/results"
)

func TestNew(t *testing.T) {
	r := results.New("reference.example.com:80")
	if r.UUID == "" {
		t.Error("a fresh record must carry a UUID")
	}
	if r.SchemaVersion != results.CurrentSchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", r.SchemaVersion, results.CurrentSchemaVersion)
	}
	if r.Host != "reference.example.com:80" {
		t.Errorf("Host = %q", r.Host)
	}
	if r.StartTime.IsZero() {
		t.Error("StartTime should be initialized")
	}
}

func TestFillAndSave(t *testing.T) {
	datadir := t.TempDir()
	r := results.New("reference.example.com:80")
	start := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
	r.Fill(estimator.Estimate{
		Skew:    -0.25,
		Lower:   -0.8,
		Upper:   0.3,
		Rounds:  8,
		LastRTT: 42 * time.Millisecond,
		Start:   start,
		End:     start.Add(5 * time.Second),
	})
	r.Applied = true
	r.ServerMetadata = metadata.FromMap(map[string]string{"deployment": "canary"})

	rtx.Must(results.Save(datadir, r), "Could not save record")

	name := path.Join(datadir, "2023/11/14", r.UUID+".json")
	raw, err := os.ReadFile(name)
	rtx.Must(err, "Could not read the saved record")
	got := &results.Record{}
	rtx.Must(json.Unmarshal(raw, got), "Could not unmarshal the saved record")
	if !reflect.DeepEqual(got, r) {
		t.Errorf("round-tripped record %+v != %+v", got, r)
	}
}

func TestSaveBadDatadir(t *testing.T) {
	r := results.New("reference.example.com:80")
	if err := results.Save("/dev/null/not-a-dir", r); err == nil {
		t.Error("Save() into an impossible directory should fail")
	}
}
