package shader

import (
	"regexp"
	"strings"
)

var uniformDecl = regexp.MustCompile(`uniform\s+\w+\s+(\w+)\s*;`)

type fakeShader struct {
	stage    Stage
	source   string
	compiled bool
	deleted  bool
}

type fakeProgram struct {
	shaders  []uint32
	linked   bool
	deleted  bool
	uniforms []string
}

// fakeBackend compiles anything that declares main, links when both stages
// compiled (unless failLink is set), and records every uniform upload by
// location.
type fakeBackend struct {
	failLink bool
	nextID   uint32
	shaders  map[uint32]*fakeShader
	programs map[uint32]*fakeProgram
	active   uint32
	values   map[int32][]float32
	uploads  int
	infoLog  string
	calls    []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		shaders:  make(map[uint32]*fakeShader),
		programs: make(map[uint32]*fakeProgram),
		values:   make(map[int32][]float32),
		infoLog:  "0:1(1): error: syntax error, unexpected IDENTIFIER",
	}
}

func (f *fakeBackend) id() uint32 {
	f.nextID++
	return f.nextID
}

func (f *fakeBackend) CreateShader(stage Stage) uint32 {
	id := f.id()
	f.shaders[id] = &fakeShader{stage: stage}
	f.calls = append(f.calls, "CreateShader")
	return id
}

func (f *fakeBackend) CompileShader(shader uint32, source string) {
	s := f.shaders[shader]
	s.source = source
	s.compiled = strings.Contains(source, "void main") && !strings.Contains(source, "@@")
	f.calls = append(f.calls, "CompileShader")
}

func (f *fakeBackend) ShaderCompiled(shader uint32) bool { return f.shaders[shader].compiled }

func (f *fakeBackend) ShaderInfoLog(shader uint32, limit int) string {
	if len(f.infoLog) > limit {
		return f.infoLog[:limit]
	}
	return f.infoLog
}

func (f *fakeBackend) DeleteShader(shader uint32) {
	if s, ok := f.shaders[shader]; ok {
		s.deleted = true
	}
	f.calls = append(f.calls, "DeleteShader")
}

func (f *fakeBackend) CreateProgram() uint32 {
	id := f.id()
	f.programs[id] = &fakeProgram{}
	f.calls = append(f.calls, "CreateProgram")
	return id
}

func (f *fakeBackend) AttachShader(program, shader uint32) {
	p := f.programs[program]
	p.shaders = append(p.shaders, shader)
}

func (f *fakeBackend) LinkProgram(program uint32) {
	p := f.programs[program]
	p.linked = len(p.shaders) == 2 && !f.failLink
	for _, id := range p.shaders {
		s := f.shaders[id]
		if !s.compiled {
			p.linked = false
		}
		for _, m := range uniformDecl.FindAllStringSubmatch(s.source, -1) {
			p.uniforms = append(p.uniforms, m[1])
		}
	}
	f.calls = append(f.calls, "LinkProgram")
}

func (f *fakeBackend) ProgramLinked(program uint32) bool { return f.programs[program].linked }

func (f *fakeBackend) ProgramInfoLog(program uint32, limit int) string {
	return "error: linking with uncompiled/unspecialized shader"
}

func (f *fakeBackend) DeleteProgram(program uint32) {
	if p, ok := f.programs[program]; ok {
		p.deleted = true
	}
}

func (f *fakeBackend) UseProgram(program uint32) { f.active = program }

func (f *fakeBackend) UniformLocation(program uint32, name string) int32 {
	p, ok := f.programs[program]
	if !ok || !p.linked {
		return InvalidLocation
	}
	for i, u := range p.uniforms {
		if u == name {
			return int32(program)<<8 | int32(i)
		}
	}
	return InvalidLocation
}

func (f *fakeBackend) record(location int32, v ...float32) {
	f.values[location] = v
	f.uploads++
}

func (f *fakeBackend) Uniform1i(location int32, v int32)   { f.record(location, float32(v)) }
func (f *fakeBackend) Uniform1f(location int32, v float32) { f.record(location, v) }
func (f *fakeBackend) Uniform3f(location int32, x, y, z float32) {
	f.record(location, x, y, z)
}
func (f *fakeBackend) Uniform4f(location int32, x, y, z, w float32) {
	f.record(location, x, y, z, w)
}
func (f *fakeBackend) UniformMatrix4fv(location int32, m *[16]float32) {
	f.record(location, m[:]...)
}

func (f *fakeBackend) liveShaders() int {
	n := 0
	for _, s := range f.shaders {
		if !s.deleted {
			n++
		}
	}
	return n
}

func (f *fakeBackend) livePrograms() int {
	n := 0
	for _, p := range f.programs {
		if !p.deleted {
			n++
		}
	}
	return n
}
