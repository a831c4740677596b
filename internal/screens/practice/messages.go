package practice

import (
	"github.com/abhisek/feprep/internal/questiongen"
)

// generatedMsg carries a finished generation run. gen identifies the run so
// results for a closed screen are dropped.
type generatedMsg struct {
	gen   int
	batch *questiongen.Batch
}

// timerTickMsg is sent every second while a timed quiz runs.
type timerTickMsg struct {
	gen int
}
