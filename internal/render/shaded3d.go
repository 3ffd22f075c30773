package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchTriangles keeps vertex indices within uint16.
const maxBatchTriangles = 65535 / 3

// RenderShaded3D draws the meshes of its scene with flat Lambert shading.
type RenderShaded3D struct {
	scene *Scene
	white *ebiten.Image

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewShaded3D creates the plugin with an empty scene.
func NewShaded3D() *RenderShaded3D {
	return &RenderShaded3D{scene: NewScene()}
}

// Scene returns the scene the plugin draws.
func (r *RenderShaded3D) Scene() *Scene {
	return r.scene
}

func (r *RenderShaded3D) Name() string { return "render_shaded_3d" }

func (r *RenderShaded3D) Setup(env *Env) error {
	if env.Logger != nil {
		env.Logger.Debug("shaded renderer scene", "meshes", len(r.scene.Meshes))
	}
	return nil
}

// Draw projects the scene onto screen.
func (r *RenderShaded3D) Draw(screen *ebiten.Image, f Frame) {
	tris := r.scene.project(f.Width, f.Height)
	if len(tris) == 0 {
		return
	}
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	for start := 0; start < len(tris); start += maxBatchTriangles {
		end := min(start+maxBatchTriangles, len(tris))
		r.vertices = r.vertices[:0]
		r.indices = r.indices[:0]
		for _, t := range tris[start:end] {
			base := uint16(len(r.vertices))
			for _, p := range t.points {
				r.vertices = append(r.vertices, ebiten.Vertex{
					DstX:   p.X(),
					DstY:   p.Y(),
					SrcX:   1,
					SrcY:   1,
					ColorR: t.color.X(),
					ColorG: t.color.Y(),
					ColorB: t.color.Z(),
					ColorA: t.color.W(),
				})
			}
			r.indices = append(r.indices, base, base+1, base+2)
		}
		screen.DrawTriangles(r.vertices, r.indices, r.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
	}
}
