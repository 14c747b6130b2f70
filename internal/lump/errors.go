package lump

import "errors"

var (
	ErrPictureSanity     = errors.New("failed picture format sanity check")
	ErrRawSanity         = errors.New("dimensions of raw image could not be determined")
	ErrTextureXSanity    = errors.New("texture table size does not make sense for either doom or strife format")
	ErrPNamesSanity      = errors.New("patch name table is truncated")
	ErrPaletteSanity     = errors.New("palette lump is shorter than one palette")
	ErrSoundSanity       = errors.New("failed sound format sanity check")
	ErrUnsupportedSound  = errors.New("unsupported dmx sound format")
	ErrUnrecognizedImage = errors.New("could not identify lump as an image")
	ErrNoPalette         = errors.New("palette required to decode indexed image")
)
