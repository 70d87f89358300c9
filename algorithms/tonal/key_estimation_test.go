package tonal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rohitdeveloper22/SongKeyFinder/algorithms/chroma"
)

func templateChroma(profile []float64, tonic int) chroma.Vector {
	rotated := rotateProfile(profile, tonic)

	var v chroma.Vector
	copy(v[:], rotated)
	normalized, err := v.Normalized()
	if err != nil {
		panic(err)
	}
	return normalized
}

func TestRotatedTemplateSelfCorrelation(t *testing.T) {
	ke := NewKeyEstimator()
	profiles := KrumhanslProfiles()

	for tonic := 0; tonic < 12; tonic++ {
		est := ke.Estimate(templateChroma(profiles.MajorProfile, tonic))
		// A shape-identical chroma correlates at exactly 1.0; majors carry the bias
		assert.InDelta(t, 1.02, est.Score, 1e-9, "major tonic %d", tonic)

		est = ke.Estimate(templateChroma(profiles.MinorProfile, tonic))
		assert.InDelta(t, 1.0, est.Score, 1e-9, "minor tonic %d", tonic)
		assert.Equal(t, Key{PitchClass(tonic), ModeMinor}, est.Key, "minor tonic %d", tonic)
	}
}

func TestMajorTemplateDetection(t *testing.T) {
	ke := NewKeyEstimator()
	profiles := KrumhanslProfiles()

	for tonic := 0; tonic < 12; tonic++ {
		est := ke.Estimate(templateChroma(profiles.MajorProfile, tonic))

		switch PitchClass(tonic) {
		case PitchDSharp, PitchGSharp:
			// Their own templates put enough energy on C and Eb to trip the
			// relative/enharmonic correction toward C minor
			assert.Equal(t, Key{PitchC, ModeMinor}, est.Key, "tonic %d", tonic)
		default:
			assert.Equal(t, Key{PitchClass(tonic), ModeMajor}, est.Key, "tonic %d", tonic)
		}
	}
}

func TestUniformChromaIsDeterministic(t *testing.T) {
	ke := NewKeyEstimator()

	var uniform chroma.Vector
	for i := range uniform {
		uniform[i] = 1.0 / 12.0
	}

	// Zero-variance chroma correlates at 0 with every template; the bias
	// lifts every major to 0.02 and strict > keeps the first one scanned
	est := ke.Estimate(uniform)
	assert.Equal(t, Key{PitchC, ModeMajor}, est.Key)
	assert.InDelta(t, 0.02, est.Score, 1e-9)
}

func TestMajorBiasBreaksTies(t *testing.T) {
	profiles := KrumhanslProfiles()
	aMinor := templateChroma(profiles.MinorProfile, int(PitchA))

	// Default bias is small enough that an exact minor match survives
	est := NewKeyEstimator().Estimate(aMinor)
	assert.Equal(t, Key{PitchA, ModeMinor}, est.Key)

	// Without the bias, same outcome
	est = NewKeyEstimatorWithParams(KeyEstimationParams{MajorBias: 0}).Estimate(aMinor)
	assert.Equal(t, Key{PitchA, ModeMinor}, est.Key)

	// A bias exceeding the correlation gap flips the comparison to major
	est = NewKeyEstimatorWithParams(KeyEstimationParams{MajorBias: 1.0}).Estimate(aMinor)
	assert.Equal(t, ModeMajor, est.Key.Mode)
}

func TestCorrectionDMajorToGMajor(t *testing.T) {
	ke := NewKeyEstimator()
	profiles := KrumhanslProfiles()

	// Base chroma that the raw correlation assigns to D major
	base := templateChroma(profiles.MajorProfile, int(PitchD))

	triggering := base
	triggering[PitchC] = 0.10
	triggering[PitchCSharp] = 0.05

	est := ke.Estimate(triggering)
	assert.Equal(t, Key{PitchG, ModeMajor}, est.Key)

	nonTriggering := base
	nonTriggering[PitchC] = 0.02
	nonTriggering[PitchCSharp] = 0.05

	est = ke.Estimate(nonTriggering)
	assert.Equal(t, Key{PitchD, ModeMajor}, est.Key)

	// The pure template has C#-heavy weighting and must not trigger
	est = ke.Estimate(base)
	assert.Equal(t, Key{PitchD, ModeMajor}, est.Key)
}

func TestCorrectionKeepsScore(t *testing.T) {
	ke := NewKeyEstimator()
	profiles := KrumhanslProfiles()

	// G# major template chroma trips the C minor correction, but the score
	// stays the raw (biased) best correlation of the original winner
	est := ke.Estimate(templateChroma(profiles.MajorProfile, int(PitchGSharp)))
	assert.Equal(t, Key{PitchC, ModeMinor}, est.Key)
	assert.InDelta(t, 1.02, est.Score, 1e-9)

	est = ke.Estimate(templateChroma(profiles.MajorProfile, int(PitchDSharp)))
	assert.Equal(t, Key{PitchC, ModeMinor}, est.Key)
	assert.InDelta(t, 1.02, est.Score, 1e-9)
}

func TestRotateProfile(t *testing.T) {
	profile := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

	rotated := rotateProfile(profile, 0)
	assert.Equal(t, profile, rotated)

	// rotated[k] = profile[(k - tonic) mod 12]
	rotated = rotateProfile(profile, 3)
	assert.Equal(t, []float64{9, 10, 11, 0, 1, 2, 3, 4, 5, 6, 7, 8}, rotated)
}

func TestKeyLabels(t *testing.T) {
	k := Key{PitchCSharp, ModeMinor}
	assert.Equal(t, "c# minor", k.Label())
	assert.Equal(t, "C# Minor", k.Name())

	k = Key{PitchC, ModeMajor}
	assert.Equal(t, "c major", k.Label())
	assert.Equal(t, "C Major", k.Name())
}
