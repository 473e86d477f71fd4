// Package wavkit walks a directory of .wav files (each with an optional .rd
// JSON sidecar) and builds the Onset candidates a control-side UI can
// assign to pads. This is the "filesystem browsing" collaborator §2 of the
// engine specification treats as external to the realtime engine.
package wavkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/retrocoderamen/grain-bank-dx/internal/kit"
)

// Sample is one discovered WAV plus the onsets its sidecar offers.
type Sample struct {
	Wav    kit.Wav
	Onsets []kit.Onset
}

// Scan walks dir non-recursively for *.wav files and pairs each with a
// same-named .rd sidecar when present.
func Scan(dir string) ([]Sample, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("wavkit: read dir %s: %w", dir, err)
	}

	var samples []Sample
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".wav") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		sample, err := loadSample(path)
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func loadSample(path string) (Sample, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Sample{}, fmt.Errorf("wavkit: stat %s: %w", path, err)
	}
	bodyLen := info.Size() - 44
	if bodyLen < 0 {
		bodyLen = 0
	}

	w := kit.Wav{Path: path, Len: uint64(bodyLen)}
	var onsets []kit.Onset

	rdPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".rd"
	if rd, ok, err := loadRd(rdPath); err != nil {
		return Sample{}, err
	} else if ok {
		w.Tempo = rd.Tempo
		w.Steps = rd.Steps
		for _, start := range rd.Onsets {
			onsets = append(onsets, kit.Onset{Wav: w, StartByte: start})
		}
	}
	if len(onsets) == 0 {
		onsets = append(onsets, kit.Onset{Wav: w, StartByte: 0})
	}

	return Sample{Wav: w, Onsets: onsets}, nil
}

func loadRd(path string) (kit.Rd, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return kit.Rd{}, false, nil
		}
		return kit.Rd{}, false, fmt.Errorf("wavkit: read %s: %w", path, err)
	}
	var rd kit.Rd
	if err := json.Unmarshal(data, &rd); err != nil {
		return kit.Rd{}, false, fmt.Errorf("wavkit: decode %s: %w", path, err)
	}
	return rd, true, nil
}
