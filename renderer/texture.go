package renderer

import (
	"image"
	"image/draw"

	"github.com/richinsley/gldraw/gpu"
)

// toNRGBA returns img as tightly packed non-premultiplied RGBA, the layout
// SRC_ALPHA blending expects.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Stride == 4*n.Rect.Dx() && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Bounds(), img, b.Min, draw.Src)
	return n
}

// FilterMode converts a filter name to min and mag filters. Unknown names
// use the mipmapped default.
func FilterMode(name string) (minFilter, magFilter gpu.Enum) {
	switch name {
	case "mipmap":
		return gpu.LinearMipmapLinear, gpu.Linear
	case "linear":
		return gpu.Linear, gpu.Linear
	case "nearest":
		return gpu.Nearest, gpu.Nearest
	default:
		return gpu.NearestMipmapLinear, gpu.Linear
	}
}

// WrapMode converts a wrap name to a wrap mode.
func WrapMode(name string) gpu.Enum {
	switch name {
	case "clamp":
		return gpu.ClampToEdge
	default:
		return gpu.Repeat
	}
}

func isMipmapFilter(f gpu.Enum) bool {
	switch f {
	case gpu.NearestMipmapNearest, gpu.LinearMipmapNearest, gpu.NearestMipmapLinear, gpu.LinearMipmapLinear:
		return true
	}
	return false
}

// uploadTexture creates a texture on unit 0 holding img and leaves it bound.
func uploadTexture(ctx *gpu.Context, img image.Image, minFilter, magFilter, wrap gpu.Enum) gpu.Texture {
	pix := toNRGBA(img)
	w, h := pix.Rect.Dx(), pix.Rect.Dy()

	tex := ctx.CreateTexture()
	ctx.ActiveTexture(gpu.Texture0)
	ctx.BindTexture(gpu.Texture2D, tex)
	ctx.TexImage2D(gpu.Texture2D, 0, gpu.RGBA, w, h, gpu.RGBA, gpu.UnsignedByte, pix.Pix)

	ctx.TexParameteri(gpu.Texture2D, gpu.TextureWrapS, int(wrap))
	ctx.TexParameteri(gpu.Texture2D, gpu.TextureWrapT, int(wrap))
	ctx.TexParameteri(gpu.Texture2D, gpu.TextureMinFilter, int(minFilter))
	ctx.TexParameteri(gpu.Texture2D, gpu.TextureMagFilter, int(magFilter))
	if isMipmapFilter(minFilter) {
		ctx.GenerateMipmap(gpu.Texture2D)
	}
	return tex
}
