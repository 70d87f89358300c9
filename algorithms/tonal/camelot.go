package tonal

// CamelotNotFound is returned for any key outside the 24-entry wheel.
// The key space is closed by construction, so hitting it means a caller
// built a Key by hand; the lookup stays total either way.
const CamelotNotFound = "N/A"

// camelotWheel maps each of the 24 keys to its Camelot wheel code.
// Adjacent numbers mix harmonically; the letter separates minor (A) from
// major (B). The values are fixed notation and must not change.
var camelotWheel = map[Key]string{
	{PitchC, ModeMajor}:      "8B",
	{PitchA, ModeMinor}:      "8A",
	{PitchG, ModeMajor}:      "9B",
	{PitchE, ModeMinor}:      "9A",
	{PitchD, ModeMajor}:      "10B",
	{PitchB, ModeMinor}:      "10A",
	{PitchA, ModeMajor}:      "11B",
	{PitchFSharp, ModeMinor}: "11A",
	{PitchE, ModeMajor}:      "12B",
	{PitchCSharp, ModeMinor}: "12A",
	{PitchB, ModeMajor}:      "1B",
	{PitchGSharp, ModeMinor}: "1A",
	{PitchFSharp, ModeMajor}: "2B",
	{PitchDSharp, ModeMinor}: "2A",
	{PitchCSharp, ModeMajor}: "3B",
	{PitchASharp, ModeMinor}: "3A",
	{PitchGSharp, ModeMajor}: "4B",
	{PitchF, ModeMinor}:      "4A",
	{PitchDSharp, ModeMajor}: "5B",
	{PitchC, ModeMinor}:      "5A",
	{PitchASharp, ModeMajor}: "6B",
	{PitchG, ModeMinor}:      "6A",
	{PitchF, ModeMajor}:      "7B",
	{PitchD, ModeMinor}:      "7A",
}

// CamelotCode returns the Camelot wheel code for a key, or CamelotNotFound
// for anything outside the wheel. Never fails.
func CamelotCode(key Key) string {
	if code, ok := camelotWheel[key]; ok {
		return code
	}
	return CamelotNotFound
}

// AllKeys returns the 24 canonical keys in chromatic order, major before
// minor at each tonic.
func AllKeys() []Key {
	keys := make([]Key, 0, 24)
	for tonic := PitchC; tonic <= PitchB; tonic++ {
		keys = append(keys, Key{tonic, ModeMajor})
		keys = append(keys, Key{tonic, ModeMinor})
	}
	return keys
}
