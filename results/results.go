// Package results archives completed htdate runs as JSON records on
// disk.
package results

import (
	"encoding/json"
	"os"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/m-lab/go/prometheusx"

	"github.com/nettime/htdate/estimator"
	"github.com/nettime/htdate/metadata"
	"github.com/nettime/htdate/version"
)

// CurrentSchemaVersion is the current version of the Record struct
// below. Increment it for every structure change so that historical
// records stay parsable.
const CurrentSchemaVersion = 1

// Record is serialized as JSON to disk as the archival record of one
// estimation run. Failed runs produce no estimate and are never
// archived.
type Record struct {
	// UUID identifies this run in logs and on disk.
	UUID string
	// GitShortCommit is the Git commit (short form) of the running code.
	GitShortCommit string
	// Version is the symbolic version (if any) of the running code.
	Version string
	// SchemaVersion is the version of this structure.
	SchemaVersion int

	// Host is the reference address the run measured against.
	Host string

	StartTime time.Time
	EndTime   time.Time

	// Rounds is the number of exchanges performed.
	Rounds int
	// SkewSeconds is the final estimate: positive means the local clock
	// was ahead of the reference.
	SkewSeconds float64
	// LowerBoundSeconds and UpperBoundSeconds are the final skew
	// interval.
	LowerBoundSeconds float64
	UpperBoundSeconds float64
	// LastRTTSeconds is the round-trip time of the final exchange.
	LastRTTSeconds float64
	// Applied records whether the estimate was committed to the system
	// clock.
	Applied bool

	// ServerMetadata holds deployment labels passed on the command
	// line.
	ServerMetadata []metadata.NameValue `json:",omitempty"`
}

// New fills in the identifying fields of a fresh record for a run
// against host.
func New(host string) *Record {
	return &Record{
		UUID:           uuid.NewString(),
		GitShortCommit: prometheusx.GitShortCommit,
		Version:        version.Version,
		SchemaVersion:  CurrentSchemaVersion,
		Host:           host,
		StartTime:      time.Now(),
	}
}

// Fill copies the outcome of a completed run into the record.
func (r *Record) Fill(est estimator.Estimate) {
	r.StartTime = est.Start
	r.EndTime = est.End
	r.Rounds = est.Rounds
	r.SkewSeconds = est.Skew
	r.LowerBoundSeconds = est.Lower
	r.UpperBoundSeconds = est.Upper
	r.LastRTTSeconds = est.LastRTT.Seconds()
}

// Save writes the record under datadir in dated subdirectories, one file
// per run named by the run UUID.
func Save(datadir string, r *Record) error {
	dir := path.Join(datadir, r.StartTime.Format("2006/01/02"))
	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}
	file, err := os.Create(path.Join(dir, r.UUID+".json"))
	if err != nil {
		return err
	}
	defer file.Close()
	return json.NewEncoder(file).Encode(r)
}
