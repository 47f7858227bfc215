// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package mockbackend

import (
	"testing"

	"github.com/gviegas/nodegfx/gfx"
)

func TestClearAndReadPixels(t *testing.T) {
	b := New(4, 4)
	b.Clear(nil, [4]float32{1, 0, 0, 1}, 1, 0, gfx.ClearColor)
	px := b.ReadPixel(2, 2)
	if px != [4]byte{255, 0, 0, 255} {
		t.Errorf("ReadPixel = %v, want opaque red", px)
	}
}

func TestReadPixelsRect(t *testing.T) {
	b := New(4, 4)
	b.Clear(nil, [4]float32{0, 1, 0, 1}, 1, 0, gfx.ClearColor)
	rect := b.ReadPixels(1, 1, 2, 2)
	if len(rect) != 2*2*4 {
		t.Fatalf("ReadPixels returned %d bytes, want %d", len(rect), 2*2*4)
	}
	for i := 0; i < len(rect); i += 4 {
		if rect[i] != 0 || rect[i+1] != 255 || rect[i+2] != 0 || rect[i+3] != 255 {
			t.Errorf("pixel %d = %v, want opaque green", i/4, rect[i:i+4])
		}
	}
}

func TestPipelineCacheElidesRedundantBind(t *testing.T) {
	b := New(2, 2)
	pl, err := b.NewPipeline(gfx.PipelineDesc{})
	if err != nil {
		t.Fatal(err)
	}
	b.SetPipeline(pl)
	n := len(b.Calls)
	b.SetPipeline(pl)
	if len(b.Calls) != n {
		t.Errorf("SetPipeline with the same pipeline issued a redundant call")
	}
}

func TestTextureUploadAndSample(t *testing.T) {
	b := New(2, 2)
	tex, err := b.NewTexture(gfx.TextureDesc{Width: 2, Height: 2, Format: gfx.RGBA8})
	if err != nil {
		t.Fatal(err)
	}
	data := make([]byte, 2*2*4)
	for i := 0; i < 4; i++ {
		data[i*4+0] = 255
		data[i*4+3] = 255
	}
	if err := b.UpdateTexture(tex, data, 2, 2); err != nil {
		t.Fatal(err)
	}
	b.SetTexture(0, tex)
	b.DrawIndexed(gfx.Triangles, 6, 1, 0, nil)
	px := b.ReadPixel(1, 1)
	if px != [4]byte{255, 0, 0, 255} {
		t.Errorf("ReadPixel after textured draw = %v, want opaque red", px)
	}
}
