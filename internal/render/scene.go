package render

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera looking from Eye at Target.
type Camera struct {
	Eye, Target, Up mgl32.Vec3
	FovY            float32 // degrees
	Near, Far       float32
}

// Light is a single directional light plus an ambient term.
type Light struct {
	Direction mgl32.Vec3 // direction the light travels
	Color     mgl32.Vec3
	Ambient   float32
}

// Mesh is a triangle list with one color and a model transform. Triangles
// wind counter-clockwise when seen from the front.
type Mesh struct {
	Triangles [][3]mgl32.Vec3
	Color     mgl32.Vec4
	Model     mgl32.Mat4
}

// Scene is everything the shaded renderer draws.
type Scene struct {
	Camera Camera
	Light  Light
	Meshes []*Mesh
}

// NewScene returns an empty scene with a default camera and light.
func NewScene() *Scene {
	return &Scene{
		Camera: Camera{
			Eye:    mgl32.Vec3{0, 2, 6},
			Target: mgl32.Vec3{0, 0, 0},
			Up:     mgl32.Vec3{0, 1, 0},
			FovY:   60,
			Near:   0.1,
			Far:    300,
		},
		Light: Light{
			Direction: mgl32.Vec3{-0.4, -1, -0.6},
			Color:     mgl32.Vec3{1, 1, 1},
			Ambient:   0.25,
		},
	}
}

// Add places m in the scene.
func (s *Scene) Add(m *Mesh) {
	s.Meshes = append(s.Meshes, m)
}

// Cube returns an axis-aligned cube of the given edge length centred on the origin.
func Cube(size float32, color mgl32.Vec4) *Mesh {
	h := size / 2
	v := [8]mgl32.Vec3{
		{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
		{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
	}
	quads := [6][4]int{
		{4, 5, 6, 7}, // +z
		{1, 0, 3, 2}, // -z
		{5, 1, 2, 6}, // +x
		{0, 4, 7, 3}, // -x
		{7, 6, 2, 3}, // +y
		{0, 1, 5, 4}, // -y
	}
	m := &Mesh{Color: color, Model: mgl32.Ident4()}
	for _, q := range quads {
		m.Triangles = append(m.Triangles,
			[3]mgl32.Vec3{v[q[0]], v[q[1]], v[q[2]]},
			[3]mgl32.Vec3{v[q[0]], v[q[2]], v[q[3]]},
		)
	}
	return m
}

// shadedTriangle is a projected, lit triangle in screen space.
type shadedTriangle struct {
	points [3]mgl32.Vec2
	depth  float32
	color  mgl32.Vec4
}

// project transforms, culls, lights and depth-sorts every triangle for a
// width x height target. The result is ordered back to front.
func (s *Scene) project(width, height int) []shadedTriangle {
	if len(s.Meshes) == 0 || width <= 0 || height <= 0 {
		return nil
	}

	cam := s.Camera
	view := mgl32.LookAtV(cam.Eye, cam.Target, cam.Up)
	proj := mgl32.Perspective(mgl32.DegToRad(cam.FovY), float32(width)/float32(height), cam.Near, cam.Far)
	viewProj := proj.Mul4(view)

	toLight := s.Light.Direction.Mul(-1)
	if toLight.Len() > 0 {
		toLight = toLight.Normalize()
	}

	var out []shadedTriangle
	for _, m := range s.Meshes {
		for _, tri := range m.Triangles {
			var world [3]mgl32.Vec3
			for i, p := range tri {
				world[i] = m.Model.Mul4x1(p.Vec4(1)).Vec3()
			}

			normal := world[1].Sub(world[0]).Cross(world[2].Sub(world[0]))
			if normal.Len() == 0 {
				continue
			}
			normal = normal.Normalize()
			if normal.Dot(cam.Eye.Sub(world[0])) <= 0 {
				continue // back face
			}

			var st shadedTriangle
			visible := true
			for i, p := range world {
				clip := viewProj.Mul4x1(p.Vec4(1))
				if clip.W() <= 0 {
					visible = false
					break
				}
				ndc := clip.Vec3().Mul(1 / clip.W())
				if ndc.Z() < -1 || ndc.Z() > 1 {
					visible = false
					break
				}
				st.points[i] = mgl32.Vec2{
					(ndc.X() + 1) / 2 * float32(width),
					(1 - ndc.Y()) / 2 * float32(height),
				}
				st.depth += ndc.Z() / 3
			}
			if !visible {
				continue
			}

			st.color = s.shade(m.Color, normal, toLight)
			out = append(out, st)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].depth > out[j].depth })
	return out
}

// shade applies Lambert lighting to base.
func (s *Scene) shade(base mgl32.Vec4, normal, toLight mgl32.Vec3) mgl32.Vec4 {
	diffuse := normal.Dot(toLight)
	if diffuse < 0 {
		diffuse = 0
	}
	ambient := s.Light.Ambient
	intensity := ambient + (1-ambient)*diffuse

	c := s.Light.Color
	return mgl32.Vec4{
		clamp01(base.X() * c.X() * intensity),
		clamp01(base.Y() * c.Y() * intensity),
		clamp01(base.Z() * c.Z() * intensity),
		base.W(),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
