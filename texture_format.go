package ggweb

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggweb/host"
)

// engineTextureFormats is the engine's texture format enumeration. A
// format's native index is its position in this table.
var engineTextureFormats = []gputypes.TextureFormat{
	gputypes.TextureFormatUndefined,
	gputypes.TextureFormatR8Unorm,
	gputypes.TextureFormatR8Snorm,
	gputypes.TextureFormatR8Uint,
	gputypes.TextureFormatR8Sint,
	gputypes.TextureFormatR16Uint,
	gputypes.TextureFormatR16Sint,
	gputypes.TextureFormatR16Float,
	gputypes.TextureFormatRG8Unorm,
	gputypes.TextureFormatRG8Snorm,
	gputypes.TextureFormatRG8Uint,
	gputypes.TextureFormatRG8Sint,
	gputypes.TextureFormatR32Float,
	gputypes.TextureFormatR32Uint,
	gputypes.TextureFormatR32Sint,
	gputypes.TextureFormatRG16Uint,
	gputypes.TextureFormatRG16Sint,
	gputypes.TextureFormatRG16Float,
	gputypes.TextureFormatRGBA8Unorm,
	gputypes.TextureFormatRGBA8UnormSrgb,
	gputypes.TextureFormatRGBA8Snorm,
	gputypes.TextureFormatRGBA8Uint,
	gputypes.TextureFormatRGBA8Sint,
	gputypes.TextureFormatBGRA8Unorm,
	gputypes.TextureFormatBGRA8UnormSrgb,
	gputypes.TextureFormatRGB10A2Unorm,
	gputypes.TextureFormatRG11B10Ufloat,
	gputypes.TextureFormatRGB9E5Ufloat,
	gputypes.TextureFormatRG32Float,
	gputypes.TextureFormatRG32Uint,
	gputypes.TextureFormatRG32Sint,
	gputypes.TextureFormatRGBA16Uint,
	gputypes.TextureFormatRGBA16Sint,
	gputypes.TextureFormatRGBA16Float,
	gputypes.TextureFormatRGBA32Float,
	gputypes.TextureFormatRGBA32Uint,
	gputypes.TextureFormatRGBA32Sint,
	gputypes.TextureFormatStencil8,
	gputypes.TextureFormatDepth16Unorm,
	gputypes.TextureFormatDepth24Plus,
	gputypes.TextureFormatDepth24PlusStencil8,
	gputypes.TextureFormatDepth32Float,
	gputypes.TextureFormatDepth32FloatStencil8,
}

// TextureFormatIndex returns the engine's index for f. Undefined and
// formats the engine does not know are rejected.
func TextureFormatIndex(f gputypes.TextureFormat) (int, error) {
	if f != gputypes.TextureFormatUndefined {
		for i, ef := range engineTextureFormats {
			if ef == f {
				return i, nil
			}
		}
	}
	name := host.FormatName(f)
	if name == "" {
		name = fmt.Sprintf("%#x", uint32(f))
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedTextureFormat, name)
}
