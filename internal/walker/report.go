package walker

// Outcome is the terminal state of one input file.
type Outcome string

const (
	// OutcomeConverted: the file was transformed and written under items/.
	OutcomeConverted Outcome = "converted"

	// OutcomeCopied: the file passed through byte-for-byte at its original
	// relative path.
	OutcomeCopied Outcome = "copied"

	// OutcomeSkipped: a candidate file produced no output under the active
	// mode (documented skip rules only, never silent).
	OutcomeSkipped Outcome = "skipped"

	// OutcomeError: the file's conversion aborted on a read/write or
	// processing failure; the run continues with the next file.
	OutcomeError Outcome = "error"
)

// FileEvent records what happened to one input file.
type FileEvent struct {
	Path    string  `json:"path"`
	Outcome Outcome `json:"outcome"`
	Detail  string  `json:"detail,omitempty"`
}

// Reporter receives one event per processed file. Implementations render
// progress however they like; the walker only counts.
type Reporter interface {
	FileDone(ev FileEvent)
}

// Summary is the explicit result value of a pack walk. Counters live here
// rather than in package state so repeated runs stay isolated.
type Summary struct {
	Converted int
	Copied    int
	Skipped   int
	Errored   int
	Events    []FileEvent
}

// Total returns the number of input files seen.
func (s *Summary) Total() int {
	return s.Converted + s.Copied + s.Skipped + s.Errored
}

func (s *Summary) record(ev FileEvent) {
	switch ev.Outcome {
	case OutcomeConverted:
		s.Converted++
	case OutcomeCopied:
		s.Copied++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeError:
		s.Errored++
	}
	s.Events = append(s.Events, ev)
}
