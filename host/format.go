package host

import "github.com/gogpu/gputypes"

var formatNames = map[gputypes.TextureFormat]string{
	gputypes.TextureFormatR8Unorm:             "r8unorm",
	gputypes.TextureFormatRG8Unorm:            "rg8unorm",
	gputypes.TextureFormatRGBA8Unorm:          "rgba8unorm",
	gputypes.TextureFormatRGBA8UnormSrgb:      "rgba8unorm-srgb",
	gputypes.TextureFormatBGRA8Unorm:          "bgra8unorm",
	gputypes.TextureFormatBGRA8UnormSrgb:      "bgra8unorm-srgb",
	gputypes.TextureFormatRGB10A2Unorm:        "rgb10a2unorm",
	gputypes.TextureFormatRGBA16Float:         "rgba16float",
	gputypes.TextureFormatRGBA32Float:         "rgba32float",
	gputypes.TextureFormatDepth24Plus:         "depth24plus",
	gputypes.TextureFormatDepth24PlusStencil8: "depth24plus-stencil8",
}

// FormatName returns the WebGPU string name of f, or "" if unknown.
func FormatName(f gputypes.TextureFormat) string {
	return formatNames[f]
}

// ParseFormat returns the texture format with the given WebGPU name.
func ParseFormat(name string) (gputypes.TextureFormat, bool) {
	for f, n := range formatNames {
		if n == name {
			return f, true
		}
	}
	return gputypes.TextureFormatUndefined, false
}
