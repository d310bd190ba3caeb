package scene

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Uniforms is the setter surface a light needs; *shader.Binding satisfies it.
type Uniforms interface {
	SetBool(name string, value bool)
	SetInt(name string, value int32)
	SetFloat(name string, value float32)
	SetVec3(name string, value mgl32.Vec3)
	SetMat4(name string, value mgl32.Mat4)
}

// Attenuation divides light intensity by Constant + Linear*d + Quadratic*d².
type Attenuation struct {
	Constant  float32
	Linear    float32
	Quadratic float32
}

func (a Attenuation) apply(u Uniforms, prefix string) {
	u.SetFloat(prefix+".constant", a.Constant)
	u.SetFloat(prefix+".linear", a.Linear)
	u.SetFloat(prefix+".quadratic", a.Quadratic)
}

type Phong struct {
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
}

// PhongFromColor is the scene's usual split: a tenth of the colour as
// ambient, the full colour as diffuse and specular.
func PhongFromColor(color mgl32.Vec3) Phong {
	return Phong{Ambient: color.Mul(0.1), Diffuse: color, Specular: color}
}

func (p Phong) apply(u Uniforms, prefix string) {
	u.SetVec3(prefix+".ambient", p.Ambient)
	u.SetVec3(prefix+".diffuse", p.Diffuse)
	u.SetVec3(prefix+".specular", p.Specular)
}

type DirLight struct {
	Position mgl32.Vec3
	Phong
}

func (l DirLight) Apply(u Uniforms, index int) {
	prefix := fmt.Sprintf("dirLight[%d]", index)
	u.SetVec3(prefix+".position", l.Position)
	l.Phong.apply(u, prefix)
}

type PointLight struct {
	Position mgl32.Vec3
	Phong
	Attenuation
}

func (l PointLight) Apply(u Uniforms, index int) {
	prefix := fmt.Sprintf("pointLight[%d]", index)
	u.SetVec3(prefix+".position", l.Position)
	l.Phong.apply(u, prefix)
	l.Attenuation.apply(u, prefix)
}

// SpotLight cut-offs are cosines of the cone half-angles, which is what the
// fragment shader compares against.
type SpotLight struct {
	Position    mgl32.Vec3
	Direction   mgl32.Vec3
	CutOff      float32
	OuterCutOff float32
	On          bool
	Phong
	Attenuation
}

func CutOff(degrees float32) float32 {
	return math32.Cos(mgl32.DegToRad(degrees))
}

func (l SpotLight) Apply(u Uniforms, index int) {
	prefix := fmt.Sprintf("spotLight[%d]", index)
	u.SetVec3(prefix+".position", l.Position)
	u.SetVec3(prefix+".direction", l.Direction)
	u.SetFloat(prefix+".cutOff", l.CutOff)
	u.SetFloat(prefix+".outerCutOff", l.OuterCutOff)
	u.SetBool(prefix+".on", l.On)
	l.Phong.apply(u, prefix)
	l.Attenuation.apply(u, prefix)
}

// Material binds the diffuse and specular maps to texture units.
type Material struct {
	DiffuseUnit  int32
	SpecularUnit int32
	Shininess    float32
}

func (m Material) Apply(u Uniforms) {
	u.SetInt("material.diffuse", m.DiffuseUnit)
	u.SetInt("material.specular", m.SpecularUnit)
	u.SetFloat("material.shininess", m.Shininess)
}
