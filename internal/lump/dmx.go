package lump

import (
	"bytes"
	"fmt"
)

const (
	FormatPCSpeaker = 0
	FormatDigital   = 3

	dmxPadding = 16
)

// DMX is a decoded Doom sound effect. Digital sounds carry unsigned 8-bit
// PCM in Samples; PC speaker sounds carry timer note indices in Notes.
type DMX struct {
	Format     int
	SampleRate int
	Samples    []byte
	Notes      []byte
}

func DecodeDMX(data []byte) (*DMX, error) {
	c := newCursor(data)
	format := int(c.u16())

	switch format {
	case FormatDigital:
		rate := int(c.u16())
		count := c.u32()
		if c.short || count < 2*dmxPadding {
			return nil, fmt.Errorf("%w: bad digital sample count", ErrSoundSanity)
		}
		c.skip(dmxPadding)
		samples := c.take(int(count - 2*dmxPadding))
		if c.short {
			return nil, fmt.Errorf("%w: %d samples declared in %d bytes", ErrSoundSanity, count-2*dmxPadding, len(data))
		}
		return &DMX{Format: format, SampleRate: rate, Samples: samples}, nil

	case FormatPCSpeaker:
		count := int(c.u16())
		notes := c.take(count)
		if c.short {
			return nil, fmt.Errorf("%w: %d notes declared in %d bytes", ErrSoundSanity, count, len(data))
		}
		return &DMX{Format: format, Notes: notes}, nil
	}

	if c.short {
		return nil, fmt.Errorf("%w: %d bytes", ErrSoundSanity, len(data))
	}
	return nil, fmt.Errorf("%w: %d", ErrUnsupportedSound, format)
}

func (d *DMX) IsPCSpeaker() bool {
	return d.Format == FormatPCSpeaker
}

// PCM returns unsigned 8-bit mono samples and their rate. PC speaker sounds
// are synthesized.
func (d *DMX) PCM() ([]byte, int) {
	if d.IsPCSpeaker() {
		return SynthesizePCSpeaker(d.Notes), PCSpeakerSampleRate
	}
	return d.Samples, d.SampleRate
}

var musSignature = []byte("MUS\x1a")

// IsMUS reports whether data is a MUS format music lump.
func IsMUS(data []byte) bool {
	return bytes.HasPrefix(data, musSignature)
}
