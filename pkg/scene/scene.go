package scene

import "github.com/go-gl/mathgl/mgl32"

// The box fragment shader declares fixed-size light arrays; lights beyond
// these counts are ignored by it.
const (
	MaxDirLights   = 4
	MaxPointLights = 4
)

var (
	Pink  = mgl32.Vec3{1, 0.275, 0.855}
	Cyan  = mgl32.Vec3{0.271, 0.808, 1}
	White = mgl32.Vec3{1, 1, 1}
)

// Scene is the fixed set of boxes and lights drawn each frame. The spot
// light is a flashlight: its position and direction follow the camera, and
// Flashlight.On is only its initial state.
type Scene struct {
	ClearColor mgl32.Vec3
	Near       float32
	Far        float32

	CameraStart mgl32.Vec3
	CameraUp    mgl32.Vec3

	Boxes []mgl32.Vec3
	// Box i is rotated by BoxTilt*i degrees around BoxAxis.
	BoxTilt float32
	BoxAxis mgl32.Vec3

	DirLights   []DirLight
	PointLights []PointLight
	Flashlight  SpotLight
	Material    Material
}

func Default() *Scene {
	pointAttenuation := Attenuation{Constant: 1, Linear: 0.05, Quadratic: 0.02}
	return &Scene{
		ClearColor:  mgl32.Vec3{0.1, 0.1, 0.1},
		Near:        0.1,
		Far:         100,
		CameraStart: mgl32.Vec3{0, 0, 10},
		CameraUp:    mgl32.Vec3{0, 1, 0},
		Boxes: []mgl32.Vec3{
			{1.5, 0, 1.5},
			{-0.5, 0, -0.5},
			{-1, 0, 2},
			{2, 0, -2},
		},
		BoxTilt: 20,
		BoxAxis: mgl32.Vec3{0.3, 0.3, 0.3},
		DirLights: []DirLight{
			{Position: mgl32.Vec3{20, 20, 0}, Phong: PhongFromColor(White)},
		},
		PointLights: []PointLight{
			{Position: mgl32.Vec3{5, 0, 0}, Phong: PhongFromColor(Pink), Attenuation: pointAttenuation},
			{Position: mgl32.Vec3{-4, 0, 0}, Phong: PhongFromColor(Cyan), Attenuation: pointAttenuation},
		},
		Flashlight: SpotLight{
			CutOff:      CutOff(10),
			OuterCutOff: CutOff(12),
			On:          true,
			Phong:       PhongFromColor(White),
			Attenuation: Attenuation{Constant: 1, Linear: 0.09, Quadratic: 0.032},
		},
		Material: Material{DiffuseUnit: 0, SpecularUnit: 1, Shininess: 32},
	}
}

func (s *Scene) NewCamera() *Camera {
	return NewCamera(s.CameraStart, s.CameraUp)
}

func (s *Scene) BoxModel(i int) mgl32.Mat4 {
	p := s.Boxes[i]
	model := mgl32.Translate3D(p[0], p[1], p[2])
	angle := mgl32.DegToRad(s.BoxTilt * float32(i))
	return model.Mul4(mgl32.HomogRotate3D(angle, s.BoxAxis.Normalize()))
}

func (s *Scene) LightModel(i int) mgl32.Mat4 {
	p := s.PointLights[i].Position
	return mgl32.Translate3D(p[0], p[1], p[2])
}

// Frame holds the per-frame matrices shared by every draw.
type Frame struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Camera     *Camera
	Flashlight bool
}

func (s *Scene) NewFrame(cam *Camera, aspect float32, flashlight bool) Frame {
	return Frame{
		View:       cam.ViewMatrix(),
		Projection: cam.Projection(aspect, s.Near, s.Far),
		Camera:     cam,
		Flashlight: flashlight,
	}
}

// ApplyLightCube sets the uniforms of the small cube marking point light i.
func (s *Scene) ApplyLightCube(u Uniforms, i int, f Frame) {
	u.SetMat4("model", s.LightModel(i))
	u.SetMat4("view", f.View)
	u.SetMat4("projection", f.Projection)
	u.SetVec3("lightColor", s.PointLights[i].Diffuse)
}

// ApplyBox sets the transform of box i and every light slot of the box
// program.
func (s *Scene) ApplyBox(u Uniforms, i int, f Frame) {
	u.SetMat4("model", s.BoxModel(i))
	u.SetMat4("view", f.View)
	u.SetMat4("projection", f.Projection)
	u.SetVec3("cameraPos", f.Camera.Position)

	u.SetInt("dirLightCount", int32(min(len(s.DirLights), MaxDirLights)))
	u.SetInt("pointLightCount", int32(min(len(s.PointLights), MaxPointLights)))
	for idx, l := range s.DirLights {
		l.Apply(u, idx)
	}
	for idx, l := range s.PointLights {
		l.Apply(u, idx)
	}
	spot := s.Flashlight
	spot.Position = f.Camera.Position
	spot.Direction = f.Camera.Front
	spot.On = f.Flashlight
	spot.Apply(u, 0)
}
