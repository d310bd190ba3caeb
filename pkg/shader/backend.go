package shader

// Backend is the slice of the graphics API the builder and the uniform
// binder talk to. internal/glbackend implements it on top of go-gl; tests
// substitute a recording fake.
type Backend interface {
	CreateShader(stage Stage) uint32
	CompileShader(shader uint32, source string)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32, limit int) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32, limit int) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	UniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, x, y, z float32)
	Uniform4f(location int32, x, y, z, w float32)
	UniformMatrix4fv(location int32, m *[16]float32)
}

// InvalidLocation is what UniformLocation yields for a name the program
// does not declare (or that the linker optimised away).
const InvalidLocation int32 = -1

// InfoLogLimit bounds every compile and link diagnostic.
const InfoLogLimit = 512

type Stage uint8

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}
