package tonal

import (
	"github.com/rohitdeveloper22/SongKeyFinder/algorithms/chroma"
	"github.com/rohitdeveloper22/SongKeyFinder/algorithms/stats"
)

// KeyProfileTemplate contains the reference pitch-class profiles for one
// profile family, indexed with C as tonic
type KeyProfileTemplate struct {
	MajorProfile []float64 `json:"major_profile"`
	MinorProfile []float64 `json:"minor_profile"`
	Name         string    `json:"name"`
}

// KrumhanslProfiles returns the Krumhansl-Schmuckler profiles, empirically
// derived from listener probe-tone ratings. The exact values matter:
// downstream correction thresholds were tuned against them.
func KrumhanslProfiles() *KeyProfileTemplate {
	return &KeyProfileTemplate{
		MajorProfile: []float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88},
		MinorProfile: []float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17},
		Name:         "Krumhansl-Schmuckler",
	}
}

// KeyEstimate is the outcome of one estimation call: the chosen key and
// the raw best correlation score (bias included, may be negative).
type KeyEstimate struct {
	Key   Key     `json:"key"`
	Score float64 `json:"score"`
}

// KeyEstimationParams tunes the template matching
type KeyEstimationParams struct {
	MajorBias float64 `json:"major_bias"` // added to major scores before comparison
}

// DefaultKeyEstimationParams returns the standard parameters. The small
// major bias encodes the higher prior frequency of major keys in the
// reference repertoire and breaks relative major/minor near-ties.
func DefaultKeyEstimationParams() KeyEstimationParams {
	return KeyEstimationParams{
		MajorBias: 0.02,
	}
}

// correctionRule rewrites a misattributed key when the un-rotated chroma
// contradicts it. Rules only relabel; they never touch the stored score.
type correctionRule struct {
	from    Key
	to      Key
	applies func(c chroma.Vector) bool
}

// KeyEstimator estimates the musical key of a normalized chroma vector by
// Pearson-correlating it against all 24 rotated major/minor templates,
// then applying ordered disambiguation rules for known confusions of the
// raw correlation.
type KeyEstimator struct {
	params      KeyEstimationParams
	profile     *KeyProfileTemplate
	corrections []correctionRule
}

// NewKeyEstimator creates an estimator with Krumhansl profiles and the
// standard correction rules
func NewKeyEstimator() *KeyEstimator {
	return NewKeyEstimatorWithParams(DefaultKeyEstimationParams())
}

// NewKeyEstimatorWithParams creates an estimator with custom parameters
func NewKeyEstimatorWithParams(params KeyEstimationParams) *KeyEstimator {
	return &KeyEstimator{
		params:      params,
		profile:     KrumhanslProfiles(),
		corrections: standardCorrections(),
	}
}

// standardCorrections returns the disambiguation rules, in application
// order. Thresholds are empirical; they are part of the contract and must
// not be re-derived.
func standardCorrections() []correctionRule {
	return []correctionRule{
		{
			// D major and G major differ subtly in C/C# weighting. A
			// strongly natural C contradicts the C# emphasis D major needs.
			from: Key{PitchD, ModeMajor},
			to:   Key{PitchG, ModeMajor},
			applies: func(c chroma.Vector) bool {
				return c[PitchC] > 1.4*c[PitchCSharp]
			},
		},
		{
			// G# major shares most pitch content with C minor. Strong C
			// and Eb energy is diagnostic of C minor's tonic and minor third.
			from: Key{PitchGSharp, ModeMajor},
			to:   Key{PitchC, ModeMinor},
			applies: func(c chroma.Vector) bool {
				return c[PitchC] > 0.07 && c[PitchDSharp] > 0.05
			},
		},
		{
			// Same confusion from the Eb side, with stricter thresholds
			from: Key{PitchDSharp, ModeMajor},
			to:   Key{PitchC, ModeMinor},
			applies: func(c chroma.Vector) bool {
				return c[PitchC] > 0.08 && c[PitchDSharp] > 0.06
			},
		},
	}
}

// Estimate picks the best-matching key for a chroma vector.
//
// Candidates are scanned with tonics ascending from C, major before minor
// at each tonic, tracked by strict >, so the first encountered maximum
// wins ties. Major scores carry the configured bias before comparison.
func (ke *KeyEstimator) Estimate(chromaVector chroma.Vector) KeyEstimate {
	values := chromaVector.Values()

	best := KeyEstimate{
		Key:   Key{PitchC, ModeMajor},
		Score: -999.0,
	}

	for tonic := 0; tonic < chroma.NumPitchClasses; tonic++ {
		majorRot := rotateProfile(ke.profile.MajorProfile, tonic)
		minorRot := rotateProfile(ke.profile.MinorProfile, tonic)

		majorScore := stats.PearsonCorrelationFunc(values, majorRot) + ke.params.MajorBias
		minorScore := stats.PearsonCorrelationFunc(values, minorRot)

		if majorScore > best.Score {
			best.Score = majorScore
			best.Key = Key{PitchClass(tonic), ModeMajor}
		}

		if minorScore > best.Score {
			best.Score = minorScore
			best.Key = Key{PitchClass(tonic), ModeMinor}
		}
	}

	best.Key = ke.applyCorrections(best.Key, chromaVector)
	return best
}

// applyCorrections runs the rule list in order against the current key.
// Rules are not mutually exclusive; a later rule sees the rewrite of an
// earlier one, so the last matching rule wins.
func (ke *KeyEstimator) applyCorrections(key Key, chromaVector chroma.Vector) Key {
	for _, rule := range ke.corrections {
		if key == rule.from && rule.applies(chromaVector) {
			key = rule.to
		}
	}
	return key
}

// rotateProfile transposes a template so pitch class tonic becomes its
// tonic: rotated[k] = profile[(k - tonic) mod 12]
func rotateProfile(profile []float64, tonic int) []float64 {
	n := len(profile)
	rotated := make([]float64, n)
	for k := 0; k < n; k++ {
		rotated[k] = profile[((k-tonic)%n+n)%n]
	}
	return rotated
}
