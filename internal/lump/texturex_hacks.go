package lump

// Point corrections for vanilla IWAD texture tables, keyed by the md5 of the
// whole lump. These textures only render right in vanilla by accident.
type textureHack struct {
	texture string
	patch   int
	originX *int
	originY *int
}

func at(v int) *int { return &v }

var textureHacks = map[string][]textureHack{
	// TEXTURE1 doom.wad: SKY1 is offset -8
	"9f4957d0d57ff1eeb3f398ce78b29af9": {
		{texture: "SKY1", patch: 0, originY: at(0)},
	},
	// TEXTURE2 doom.wad registered: BIGDOOR7 at (-4,-4),(124,-4)
	"504034fe4f64d013d116ceb6c30f4d57": {
		{texture: "BIGDOOR7", patch: 0, originY: at(0)},
		{texture: "BIGDOOR7", patch: 1, originY: at(0)},
	},
	// TEXTURE2 doom.wad ultimate
	"3cb230c3e9adaeea06f5e8160d06e17b": {
		{texture: "BIGDOOR7", patch: 0, originY: at(0)},
		{texture: "BIGDOOR7", patch: 1, originY: at(0)},
	},
	// TEXTURE1 doom2.wad: BIGDOOR7 moved to (-5,0),(123,0)
	"5698887560a77c74446f9c4a112dc48b": {
		{texture: "BIGDOOR7", patch: 0, originX: at(-4)},
		{texture: "BIGDOOR7", patch: 1, originX: at(124)},
	},
	// TEXTURE1 tnt.wad
	"96f1a941ac536ff2c224b3383902fcb6": {
		{texture: "BIGDOOR7", patch: 0, originX: at(-4)},
		{texture: "BIGDOOR7", patch: 1, originX: at(124)},
	},
	// TEXTURE1 plutonia.wad
	"0f03e07e0a2d52703dbf6717633fa64d": {
		{texture: "BIGDOOR7", patch: 0, originX: at(-4)},
		{texture: "BIGDOOR7", patch: 1, originX: at(124)},
	},
}

func applyTextureHacks(sum string, defs []TextureDef) {
	hacks, ok := textureHacks[sum]
	if !ok {
		return
	}
	for i := range defs {
		for _, h := range hacks {
			if defs[i].Name != h.texture || h.patch >= len(defs[i].Patches) {
				continue
			}
			p := &defs[i].Patches[h.patch]
			if h.originX != nil {
				p.OriginX = *h.originX
			}
			if h.originY != nil {
				p.OriginY = *h.originY
			}
		}
	}
}
