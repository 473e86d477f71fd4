package kit

// Wav is a reference-only descriptor for a sample file: enough to locate it
// on disk and to compute tempo-synced playback rates, but it owns no file
// handle itself. Every playing voice opens its own handle against the path.
type Wav struct {
	Tempo *float32 `json:"tempo,omitempty"` // steps per minute / StepDiv; nil if the sample has no natural tempo
	Steps uint16   `json:"steps"`           // duration in step units
	Path  string   `json:"path"`
	Len   uint64   `json:"len"` // PCM body length in bytes
}

// Rd is the sidecar metadata loaded from a WAV's .rd JSON file: the same
// tempo/step fields as Wav plus the ordered onset byte offsets a kit author
// can assign to pads. Immutable once loaded.
type Rd struct {
	Tempo  *float32 `json:"tempo,omitempty"`
	Steps  uint16   `json:"steps"`
	Onsets []uint64 `json:"onsets"`
}

// Onset is a playback origin: a Wav plus a byte offset into its PCM body.
// StartByte must be even since samples are 16-bit.
type Onset struct {
	Wav       Wav    `json:"wav"`
	StartByte uint64 `json:"start"`
}
