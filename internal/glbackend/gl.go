// Package glbackend drives pkg/shader through OpenGL 3.3 core via go-gl.
// Every method must run on the thread that owns the current GL context.
package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/kjkrol/gokl/pkg/shader"
)

type Backend struct{}

// Init loads the GL function pointers for the current context.
func Init() (*Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl.Init error: %w", err)
	}
	return &Backend{}, nil
}

func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

var stageTypes = map[shader.Stage]uint32{
	shader.VertexStage:   gl.VERTEX_SHADER,
	shader.FragmentStage: gl.FRAGMENT_SHADER,
}

func (*Backend) CreateShader(stage shader.Stage) uint32 {
	return gl.CreateShader(stageTypes[stage])
}

func (*Backend) CompileShader(id uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
	gl.CompileShader(id)
}

func (*Backend) ShaderCompiled(id uint32) bool {
	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (*Backend) ShaderInfoLog(id uint32, limit int) string {
	buf := make([]uint8, limit)
	var length int32
	gl.GetShaderInfoLog(id, int32(limit), &length, &buf[0])
	return string(buf[:length])
}

func (*Backend) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

func (*Backend) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (*Backend) AttachShader(program, id uint32) {
	gl.AttachShader(program, id)
}

func (*Backend) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (*Backend) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (*Backend) ProgramInfoLog(program uint32, limit int) string {
	buf := make([]uint8, limit)
	var length int32
	gl.GetProgramInfoLog(program, int32(limit), &length, &buf[0])
	return string(buf[:length])
}

func (*Backend) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (*Backend) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (*Backend) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (*Backend) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (*Backend) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (*Backend) Uniform3f(location int32, x, y, z float32) {
	gl.Uniform3f(location, x, y, z)
}

func (*Backend) Uniform4f(location int32, x, y, z, w float32) {
	gl.Uniform4f(location, x, y, z, w)
}

func (*Backend) UniformMatrix4fv(location int32, m *[16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

// UniformMat4 reads a mat4 uniform back from the driver.
func (*Backend) UniformMat4(program uint32, location int32) [16]float32 {
	var m [16]float32
	gl.GetUniformfv(program, location, &m[0])
	return m
}

// CurrentProgram reports the driver's GL_CURRENT_PROGRAM.
func (*Backend) CurrentProgram() uint32 {
	var id int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &id)
	return uint32(id)
}

var _ shader.Backend = (*Backend)(nil)
