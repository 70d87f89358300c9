package keydetect

import (
	"fmt"
	"math"
	"sort"

	"github.com/rohitdeveloper22/SongKeyFinder/algorithms/chroma"
	"github.com/rohitdeveloper22/SongKeyFinder/algorithms/tonal"
)

// TopNote is one entry of the pitch-class strength report
type TopNote struct {
	Note    string `json:"note"`    // pitch class label, e.g. "C#"
	Percent string `json:"percent"` // energy share, formatted "X.X"
}

// Result is what the caller (HTTP layer, CLI) receives for one analysis
type Result struct {
	Key        string    `json:"key"`        // title case, e.g. "C Major"
	Camelot    string    `json:"camelot"`    // wheel code, e.g. "8B", or "N/A"
	Confidence float64   `json:"confidence"` // best correlation as a percentage, 2 decimals
	TopNotes   []TopNote `json:"top_notes"`  // strongest pitch classes, descending
}

// buildResult assembles the caller-facing result from an estimate and the
// chroma distribution it was made from
func buildResult(estimate tonal.KeyEstimate, chromaVector chroma.Vector, topCount int) *Result {
	return &Result{
		Key:        estimate.Key.Name(),
		Camelot:    tonal.CamelotCode(estimate.Key),
		Confidence: math.Round(estimate.Score*100*100) / 100,
		TopNotes:   topNotes(chromaVector, topCount),
	}
}

// topNotes ranks pitch classes by energy share, descending. The sort is
// stable over chromatic order, so equal energies keep the lower pitch
// class index first.
func topNotes(chromaVector chroma.Vector, count int) []TopNote {
	names := chroma.NoteNames()

	indices := make([]int, chroma.NumPitchClasses)
	for i := range indices {
		indices[i] = i
	}

	sort.SliceStable(indices, func(a, b int) bool {
		return chromaVector[indices[a]] > chromaVector[indices[b]]
	})

	if count > len(indices) {
		count = len(indices)
	}
	if count < 0 {
		count = 0
	}

	notes := make([]TopNote, count)
	for i := 0; i < count; i++ {
		idx := indices[i]
		notes[i] = TopNote{
			Note:    names[idx],
			Percent: fmt.Sprintf("%.1f", chromaVector[idx]*100),
		}
	}

	return notes
}
