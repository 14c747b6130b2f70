package lump

const (
	// PCSpeakerSampleRate is the output rate of SynthesizePCSpeaker.
	PCSpeakerSampleRate = 44100

	pitTimerFrequency = 1193181
	pcSpeakerVolume   = 20
	notesPerSecond    = 140
)

// Timer divisors for each PC speaker note index. 0 is silence.
var pcSpeakerCounters = [128]int{
	0,
	6818, 6628, 6449, 6279, 6087, 5906, 5736, 5575,
	5423, 5279, 5120, 4971, 4830, 4697, 4554, 4435,
	4307, 4186, 4058, 3950, 3836, 3728, 3615, 3519,
	3418, 3323, 3224, 3131, 3043, 2960, 2875, 2794,
	2711, 2633, 2560, 2485, 2415, 2348, 2281, 2213,
	2153, 2089, 2032, 1975, 1918, 1864, 1810, 1757,
	1709, 1659, 1612, 1565, 1521, 1478, 1435, 1395,
	1355, 1316, 1280, 1242, 1207, 1173, 1140, 1107,
	1075, 1045, 1015, 986, 959, 931, 905, 879,
	854, 829, 806, 783, 760, 739, 718, 697,
	677, 658, 640, 621, 604, 586, 570, 553,
	538, 522, 507, 493, 479, 465, 452, 439,
	427, 415, 403, 391, 380, 369, 359, 348,
	339, 329, 319, 310, 302, 293, 285, 276,
	269, 261, 253, 246, 239, 232, 226, 219,
	213, 207, 201, 195, 190, 184, 179,
}

// SynthesizePCSpeaker renders a PC speaker note sequence to unsigned 8-bit
// PCM at PCSpeakerSampleRate. It steps a virtual timer chip tick by tick,
// jumping between events (note change, output sample, oscillator toggle),
// and samples the speaker level at each output boundary. Each note lasts
// 1/140 s. Note indices outside the counter table hold the current note.
func SynthesizePCSpeaker(notes []byte) []byte {
	const (
		rate     = pitTimerFrequency * 2
		low      = 128 - pcSpeakerVolume
		high     = 128 + pcSpeakerVolume
		silence  = 128
		noteTick = rate / notesPerSecond
		sampTick = rate / PCSpeakerSampleRate
	)

	totalTicks := int(float64(rate) * ((1.0 / notesPerSecond) * float64(len(notes))))
	out := make([]byte, 0, totalTicks/sampTick+1)

	state := low
	count := 0
	tickCount := 0
	note := 0

	for ticks := 0; ticks < totalTicks; ticks++ {
		nextNote := 0
		if r := ticks % noteTick; r != 0 {
			nextNote = noteTick - r
		}
		nextSample := 0
		if r := ticks % sampTick; r != 0 {
			nextSample = sampTick - r
		}

		if count > 0 {
			step := min(nextNote, nextSample, count)
			ticks += step
			tickCount += step
		} else {
			ticks += min(nextNote, nextSample)
		}

		if ticks%noteTick == 0 && note < len(notes) && int(notes[note]) < len(pcSpeakerCounters) {
			count = pcSpeakerCounters[notes[note]]
			note++
		}

		switch {
		case count == 0:
			state = silence
			tickCount = 0
		case tickCount >= count:
			tickCount = 0
			if state > 127 {
				state = low
			} else {
				state = high
			}
		default:
			tickCount++
		}

		if ticks%sampTick == 0 {
			out = append(out, byte(state))
		}
	}
	return out
}
