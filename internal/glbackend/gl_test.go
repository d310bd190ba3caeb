package glbackend

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kjkrol/gokl/internal/platform"
	"github.com/kjkrol/gokl/pkg/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vertexSource = `#version 330 core
layout (location = 0) in vec3 aPos;
uniform mat4 model;
uniform mat4 view;
void main() { gl_Position = view * model * vec4(aPos, 1.0); }
`

const fragmentSource = `#version 330 core
out vec4 FragColor;
uniform vec3 lightColor;
void main() { FragColor = vec4(lightColor, 1.0); }
`

// withContext runs fn on a locked thread that owns a hidden GL 3.3 context.
// Machines without a display or GL driver skip.
func withContext(t *testing.T, fn func(b *Backend)) {
	t.Helper()
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" && runtime.GOOS == "linux" {
		t.Skip("no display available for an offscreen GL context")
	}
	ctx, err := platform.NewOffscreenContext(64, 64)
	if err != nil {
		t.Skipf("no GL context: %v", err)
	}
	defer ctx.Close()

	backend, err := Init()
	require.NoError(t, err)
	t.Logf("GL %s", Version())
	fn(backend)
}

// GL calls must stay on the thread that owns the context, so each test
// runs its steps in one goroutine rather than as subtests.

func TestPassThroughProgramLinks(t *testing.T) {
	withContext(t, func(backend *Backend) {
		program, err := shader.NewBuilder(backend).BuildSource(vertexSource, fragmentSource)
		require.NoError(t, err)
		defer program.Delete()
		assert.NotZero(t, program.ID())

		shader.NewContext(backend).Use(program)
		assert.Equal(t, program.ID(), backend.CurrentProgram())
	})
}

func TestSyntaxErrorIsReported(t *testing.T) {
	withContext(t, func(backend *Backend) {
		_, err := shader.NewBuilder(backend).BuildSource(vertexSource, "#version 330 core\nvoid main() { oops }\n")
		var compileErr *shader.CompileError
		require.ErrorAs(t, err, &compileErr)
		assert.Equal(t, shader.FragmentStage, compileErr.Stage)
		assert.NotEmpty(t, compileErr.Log)
		assert.LessOrEqual(t, len(compileErr.Log), shader.InfoLogLimit)
	})
}

func TestMissingFileDegradesLeniently(t *testing.T) {
	dir := t.TempDir()
	vertexPath := filepath.Join(dir, "ok.vert")
	require.NoError(t, os.WriteFile(vertexPath, []byte(vertexSource), 0o644))

	withContext(t, func(backend *Backend) {
		var program *shader.Program
		require.NotPanics(t, func() {
			program = shader.NewBuilder(backend).BuildLenient(vertexPath, filepath.Join(dir, "missing.frag"))
		})
		defer program.Delete()
		var fileErr *shader.FileError
		assert.ErrorAs(t, program.Err(), &fileErr)
	})
}

func TestMat4ReadsBackColumnMajor(t *testing.T) {
	withContext(t, func(backend *Backend) {
		program, err := shader.NewBuilder(backend).BuildSource(vertexSource, fragmentSource)
		require.NoError(t, err)
		defer program.Delete()

		binding := shader.NewContext(backend).Use(program)
		axis := mgl32.Vec3{0.3, 0.3, 0.3}.Normalize()
		model := mgl32.Translate3D(1.5, 0, 1.5).Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(20), axis))
		binding.SetMat4("model", model)
		binding.SetMat4("view", mgl32.Ident4())
		binding.SetVec3("doesNotExist", mgl32.Vec3{1, 2, 3})
		require.NoError(t, binding.Err())

		loc := backend.UniformLocation(program.ID(), "model")
		require.NotEqual(t, shader.InvalidLocation, loc)
		got := backend.UniformMat4(program.ID(), loc)
		assert.InDeltaSlice(t, model[:], got[:], 1e-6)
	})
}

func TestShippedShadersBuild(t *testing.T) {
	withContext(t, func(backend *Backend) {
		builder := shader.NewBuilder(backend)
		dir := filepath.Join("..", "..", "assets", "shaders")
		for _, name := range []string{"box", "light"} {
			program, err := builder.Build(filepath.Join(dir, name+".vert"), filepath.Join(dir, name+".frag"))
			require.NoError(t, err, name)
			assert.NotEqual(t, shader.InvalidLocation, backend.UniformLocation(program.ID(), "projection"), name)
			program.Delete()
		}
	})
}
