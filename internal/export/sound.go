package export

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/afero/mem"

	"github.com/jchantrell/doomarc/internal/archive"
	"github.com/jchantrell/doomarc/internal/lump"
)

// EncodeWAV wraps unsigned 8-bit mono samples in a WAV container.
func EncodeWAV(samples []byte, rate int) ([]byte, error) {
	// the encoder patches chunk sizes on Close, so it needs a seekable sink
	f := mem.NewFileHandle(mem.CreateFile("sound.wav"))

	enc := wav.NewEncoder(f, rate, 8, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 8,
	}
	for i, s := range samples {
		buf.Data[i] = int(s)
	}
	if err := enc.Write(buf); err != nil {
		return nil, fmt.Errorf("encoding wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("finishing wav: %w", err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return io.ReadAll(f)
}

// DMXToWAV converts a DMX sound lump, digital or PC speaker, to WAV.
func DMXToWAV(data []byte) ([]byte, *lump.DMX, error) {
	snd, err := lump.DecodeDMX(data)
	if err != nil {
		return nil, nil, err
	}
	samples, rate := snd.PCM()
	out, err := EncodeWAV(samples, rate)
	if err != nil {
		return nil, nil, err
	}
	return out, snd, nil
}

// convertSound turns DMX sounds into WAV and tags MUS music. Anything else
// is kept as is.
func convertSound(h archive.LumpHeader, data []byte) ([]byte, string, bool) {
	if h.Extension != "lmp" {
		return data, h.Extension, false
	}
	switch h.Namespace {
	case "sounds":
		out, _, err := DMXToWAV(data)
		if err != nil {
			slog.Info("Could not convert sound, keeping original", "lump", h.Name, "error", err)
			return data, h.Extension, false
		}
		return out, "wav", true
	case "music":
		if lump.IsMUS(data) {
			return data, "mus", true
		}
	}
	return data, h.Extension, false
}
