// Package render owns the GPU side of the solar system: uploaded meshes, textures,
// per-planet depth maps and the two shader programs. It draws the scene.Frame that
// the scene package plans; it computes no matrices of its own.
package render

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"solar-system/internal/assets"
	"solar-system/internal/body"
	"solar-system/internal/scene"
)

var (
	ErrShader      = errors.New("shader did not compile")
	ErrFramebuffer = errors.New("depth framebuffer incomplete")
)

// depthFormat tags the depth attachment so raylib treats it as a non-color texture.
const depthFormat rl.PixelFormat = 19

// ImageSource resolves a body's texture path.
type ImageSource interface {
	Image(name string) (*assets.Image, error)
}

// resources is everything uploaded for one body. depth is zero for the sun and the
// universe, which receive no shadows.
type resources struct {
	mesh  rl.Mesh
	mtl   rl.Material
	depth rl.RenderTexture2D
}

// Sequencer draws shadow passes then the color pass. Create it after the window
// exists and use it from the window's thread only.
type Sequencer struct {
	lit      rl.Shader
	depth    rl.Shader
	depthMtl rl.Material
	locs     map[string]int32
	depthMVP int32

	shadowSize int32
	bodies     map[*body.Body]*resources
}

// Load compiles the shaders and uploads every body in reg. Planets also get a
// shadowSize×shadowSize depth map. On error everything loaded so far is released.
func Load(reg *body.Registry, images ImageSource, shadowSize int) (*Sequencer, error) {
	s := &Sequencer{
		locs:       make(map[string]int32),
		shadowSize: int32(shadowSize),
		bodies:     make(map[*body.Body]*resources),
	}
	if err := s.loadShaders(); err != nil {
		s.Unload()
		return nil, err
	}
	for _, b := range reg.All() {
		if err := s.loadBody(b, images); err != nil {
			s.Unload()
			return nil, fmt.Errorf("render: %s: %w", b.Name, err)
		}
	}
	return s, nil
}

func (s *Sequencer) loadShaders() error {
	s.lit = rl.LoadShaderFromMemory(litVS, litFS)
	if !rl.IsShaderValid(s.lit) || s.lit.ID == rl.GetShaderIdDefault() {
		return fmt.Errorf("render: lit: %w", ErrShader)
	}
	for _, name := range []string{
		uniModel, uniView, uniProj, uniDistort, uniLightMVP,
		uniCameraPosition, uniLightPosition, uniEnableShading, uniCloud, uniCloudModel,
	} {
		s.locs[name] = rl.GetShaderLocation(s.lit, name)
	}
	// DrawMesh binds material map i to the sampler at ShaderLocMapDiffuse+i.
	s.lit.UpdateLocation(rl.ShaderLocMapDiffuse, rl.GetShaderLocation(s.lit, uniTexture))
	s.lit.UpdateLocation(rl.ShaderLocMapSpecular, rl.GetShaderLocation(s.lit, uniShadowMap))

	s.depth = rl.LoadShaderFromMemory(depthVS, depthFS)
	if !rl.IsShaderValid(s.depth) || s.depth.ID == rl.GetShaderIdDefault() {
		return fmt.Errorf("render: depth: %w", ErrShader)
	}
	s.depthMVP = rl.GetShaderLocation(s.depth, uniDepthMVP)
	s.depthMtl = rl.LoadMaterialDefault()
	s.depthMtl.Shader = s.depth
	return nil
}

func (s *Sequencer) loadBody(b *body.Body, images ImageSource) error {
	img, err := images.Image(b.TexturePath)
	if err != nil {
		return err
	}
	r := &resources{mesh: uploadMesh(b.Mesh)}
	s.bodies[b] = r

	tex := rl.LoadTextureFromImage(rl.NewImage(img.Pix, int32(img.Width()), int32(img.Height()), 1, rl.UncompressedR8g8b8a8))
	rl.SetTextureWrap(tex, rl.WrapRepeat)
	rl.SetTextureFilter(tex, rl.FilterBilinear)

	r.mtl = rl.LoadMaterialDefault()
	r.mtl.Shader = s.lit
	rl.SetMaterialTexture(&r.mtl, rl.MapAlbedo, tex)

	if b.Index < 0 {
		return nil
	}
	r.depth, err = loadDepthTarget(s.shadowSize)
	if err != nil {
		return err
	}
	rl.SetMaterialTexture(&r.mtl, rl.MapSpecular, r.depth.Depth)
	return nil
}

func uploadMesh(m *assets.Mesh) rl.Mesh {
	mesh := rl.Mesh{
		VertexCount:   int32(m.VertexCount()),
		TriangleCount: int32(m.TriangleCount()),
		Vertices:      &m.Vertices[0],
		Normals:       &m.Normals[0],
		Texcoords:     &m.Texcoords[0],
	}
	rl.UploadMesh(&mesh, false)
	return mesh
}

func loadDepthTarget(size int32) (rl.RenderTexture2D, error) {
	id := rl.LoadFramebuffer()
	if id == 0 {
		return rl.RenderTexture2D{}, ErrFramebuffer
	}
	rl.EnableFramebuffer(id)
	depth := rl.LoadTextureDepth(size, size, false)
	rl.FramebufferAttach(id, depth, rl.AttachmentDepth, rl.AttachmentTexture2d, 0)
	ok := rl.FramebufferComplete(id)
	rl.DisableFramebuffer()
	if !ok {
		rl.UnloadFramebuffer(id)
		return rl.RenderTexture2D{}, ErrFramebuffer
	}
	return rl.RenderTexture2D{
		ID:      id,
		Texture: rl.Texture2D{Width: size, Height: size},
		Depth:   rl.NewTexture2D(depth, size, size, 1, depthFormat),
	}, nil
}

// Draw renders one frame: every planet's depth map, then the lit planets, then the
// sun and the universe unlit. Call between BeginDrawing and EndDrawing.
func (s *Sequencer) Draw(f scene.Frame) {
	rl.DisableBackfaceCulling()
	rl.EnableDepthTest()

	for _, pass := range f.Shadows {
		s.shadowPass(pass)
	}

	s.setMatrix(uniView, f.View)
	s.setMatrix(uniProj, f.Projection)
	s.setMatrix(uniDistort, f.Distort)
	s.setMatrix(uniCloudModel, f.CloudModel)
	s.setVec3(uniCameraPosition, f.CameraPosition)
	s.setVec3(uniLightPosition, f.LightPosition)

	for _, d := range f.Lit {
		s.drawBody(d, true)
	}
	for _, d := range f.Unlit {
		s.drawBody(d, false)
	}

	rl.DisableDepthTest()
	rl.EnableBackfaceCulling()
}

func (s *Sequencer) shadowPass(pass scene.ShadowPass) {
	r, ok := s.bodies[pass.Receiver]
	if !ok || r.depth.ID == 0 {
		return
	}
	rl.BeginTextureMode(r.depth)
	rl.ClearScreenBuffers()
	for _, c := range pass.Casters {
		cr, ok := s.bodies[c.Body]
		if !ok {
			continue
		}
		rl.SetShaderValueMatrix(s.depth, s.depthMVP, matrix(c.MVP))
		rl.DrawMesh(cr.mesh, s.depthMtl, rl.MatrixIdentity())
	}
	rl.EndTextureMode()
}

func (s *Sequencer) drawBody(d scene.Draw, shaded bool) {
	r, ok := s.bodies[d.Body]
	if !ok {
		return
	}
	s.setMatrix(uniModel, d.Model)
	s.setMatrix(uniLightMVP, d.LightMVP)
	s.setFlag(uniEnableShading, shaded)
	s.setFlag(uniCloud, d.Clouds)
	rl.DrawMesh(r.mesh, r.mtl, rl.MatrixIdentity())
}

func (s *Sequencer) setMatrix(name string, m mgl32.Mat4) {
	if loc := s.locs[name]; loc >= 0 {
		rl.SetShaderValueMatrix(s.lit, loc, matrix(m))
	}
}

func (s *Sequencer) setVec3(name string, v mgl32.Vec3) {
	if loc := s.locs[name]; loc >= 0 {
		rl.SetShaderValue(s.lit, loc, []float32{v[0], v[1], v[2]}, rl.ShaderUniformVec3)
	}
}

func (s *Sequencer) setFlag(name string, on bool) {
	loc := s.locs[name]
	if loc < 0 {
		return
	}
	v := float32(0)
	if on {
		v = 1
	}
	rl.SetShaderValue(s.lit, loc, []float32{v}, rl.ShaderUniformFloat)
}

// Unload releases every GPU resource. The Sequencer must not be used afterwards.
func (s *Sequencer) Unload() {
	for b, r := range s.bodies {
		rl.UnloadMesh(&r.mesh)
		if r.mtl.Maps != nil {
			// shared shader and the depth texture are released separately
			r.mtl.Shader = rl.Shader{}
			rl.SetMaterialTexture(&r.mtl, rl.MapSpecular, rl.Texture2D{})
			rl.UnloadMaterial(r.mtl)
		}
		if r.depth.ID != 0 {
			rl.UnloadFramebuffer(r.depth.ID)
		}
		delete(s.bodies, b)
	}
	if s.depthMtl.Maps != nil {
		s.depthMtl.Shader = rl.Shader{}
		rl.UnloadMaterial(s.depthMtl)
		s.depthMtl = rl.Material{}
	}
	if s.lit.ID != 0 {
		rl.UnloadShader(s.lit)
		s.lit = rl.Shader{}
	}
	if s.depth.ID != 0 {
		rl.UnloadShader(s.depth)
		s.depth = rl.Shader{}
	}
}

// matrix converts a column-major mgl32 matrix to raylib's layout.
func matrix(m mgl32.Mat4) rl.Matrix {
	return rl.NewMatrix(
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	)
}
