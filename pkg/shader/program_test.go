package shader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const passThroughVertex = `#version 330 core
layout (location = 0) in vec3 aPos;
uniform mat4 model;
void main() { gl_Position = model * vec4(aPos, 1.0); }
`

const passThroughFragment = `#version 330 core
out vec4 FragColor;
uniform vec3 lightColor;
uniform float strength;
uniform int mode;
uniform bool enabled;
uniform vec4 tint;
void main() { FragColor = vec4(lightColor, 1.0); }
`

const brokenFragment = `#version 330 core
out vec4 FragColor;
void main() { FragColor = @@ }
`

func writeSources(t *testing.T, vertex, fragment string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	vertexPath := filepath.Join(dir, "pass.vert")
	fragmentPath := filepath.Join(dir, "pass.frag")
	require.NoError(t, os.WriteFile(vertexPath, []byte(vertex), 0o644))
	require.NoError(t, os.WriteFile(fragmentPath, []byte(fragment), 0o644))
	return vertexPath, fragmentPath
}

func TestBuildPassThrough(t *testing.T) {
	backend := newFakeBackend()
	vertexPath, fragmentPath := writeSources(t, passThroughVertex, passThroughFragment)

	program, err := NewBuilder(backend).Build(vertexPath, fragmentPath)
	require.NoError(t, err)
	require.NotNil(t, program)

	assert.NotZero(t, program.ID())
	assert.NoError(t, program.Err())
	assert.True(t, backend.programs[program.ID()].linked)
	assert.Zero(t, backend.liveShaders(), "stages must be released after linking")

	v, f := program.Paths()
	assert.Equal(t, vertexPath, v)
	assert.Equal(t, fragmentPath, f)
}

func TestBuildCompileError(t *testing.T) {
	backend := newFakeBackend()
	vertexPath, fragmentPath := writeSources(t, passThroughVertex, brokenFragment)

	program, err := NewBuilder(backend).Build(vertexPath, fragmentPath)
	assert.Nil(t, program)

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, FragmentStage, compileErr.Stage)
	assert.Equal(t, fragmentPath, compileErr.Path)
	assert.Contains(t, compileErr.Log, "syntax error")
	assert.Zero(t, backend.liveShaders())
	assert.NotContains(t, backend.calls, "CreateProgram", "no program is created after a failed compile")
}

func TestBuildBothStagesFailing(t *testing.T) {
	backend := newFakeBackend()
	_, err := NewBuilder(backend).BuildSource("@@", "@@")

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Contains(t, err.Error(), "vertex stage")
	assert.Contains(t, err.Error(), "fragment stage")
}

func TestBuildMissingFile(t *testing.T) {
	backend := newFakeBackend()
	vertexPath, _ := writeSources(t, passThroughVertex, passThroughFragment)
	missing := filepath.Join(t.TempDir(), "missing.frag")

	program, err := NewBuilder(backend).Build(vertexPath, missing)
	assert.Nil(t, program)

	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, FragmentStage, fileErr.Stage)
	assert.Equal(t, missing, fileErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Empty(t, backend.calls, "nothing reaches the GPU when a source is unreadable")
}

func TestBuildLenientMissingFile(t *testing.T) {
	backend := newFakeBackend()
	core, logs := observer.New(zap.DebugLevel)
	vertexPath, _ := writeSources(t, passThroughVertex, passThroughFragment)
	missing := filepath.Join(t.TempDir(), "missing.frag")

	var program *Program
	require.NotPanics(t, func() {
		program = NewBuilder(backend, WithLogger(zap.New(core))).BuildLenient(vertexPath, missing)
	})
	require.NotNil(t, program)
	assert.NotZero(t, program.ID())

	var fileErr *FileError
	assert.ErrorAs(t, program.Err(), &fileErr)
	var linkErr *LinkError
	assert.ErrorAs(t, program.Err(), &linkErr)

	fragment := backend.shaders[2]
	assert.Equal(t, FragmentStage, fragment.stage)
	assert.Empty(t, fragment.source, "unreadable source proceeds as empty")
	assert.Zero(t, backend.liveShaders())

	assert.Equal(t, 1, logs.FilterMessage("shader file not read").Len())
	assert.Equal(t, 1, logs.FilterMessage("shader stage compilation failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("shader program link failed").Len())
}

func TestBuildLenientCompileError(t *testing.T) {
	backend := newFakeBackend()
	core, logs := observer.New(zap.ErrorLevel)
	vertexPath, fragmentPath := writeSources(t, passThroughVertex, brokenFragment)

	program := NewBuilder(backend, WithLogger(zap.New(core))).BuildLenient(vertexPath, fragmentPath)
	require.NotNil(t, program)

	var compileErr *CompileError
	assert.ErrorAs(t, program.Err(), &compileErr)
	entries := logs.FilterMessage("shader stage compilation failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "fragment", entries[0].ContextMap()["stage"])
	assert.Zero(t, backend.liveShaders())
}

func TestInfoLogIsBounded(t *testing.T) {
	backend := newFakeBackend()
	backend.infoLog = strings.Repeat("x", 4*InfoLogLimit)

	_, err := NewBuilder(backend).BuildSource(passThroughVertex, brokenFragment)
	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Len(t, compileErr.Log, InfoLogLimit)
}

func TestInfoLogCutKeepsWholeRunes(t *testing.T) {
	backend := newFakeBackend()
	backend.infoLog = strings.Repeat("€", InfoLogLimit)

	_, err := NewBuilder(backend).BuildSource(passThroughVertex, brokenFragment)
	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.True(t, utf8.ValidString(compileErr.Log))
	assert.Len(t, compileErr.Log, InfoLogLimit/3*3)
}

func TestBuildLinkErrorReleasesEverything(t *testing.T) {
	backend := newFakeBackend()
	backend.failLink = true
	vertexPath, fragmentPath := writeSources(t, passThroughVertex, passThroughFragment)

	program, err := NewBuilder(backend).Build(vertexPath, fragmentPath)

	var linkErr *LinkError
	require.ErrorAs(t, err, &linkErr)
	assert.NotEmpty(t, linkErr.Log)
	assert.Nil(t, program)
	assert.Zero(t, backend.liveShaders(), "stages must be released after a failed link")
	assert.Zero(t, backend.livePrograms(), "the unlinked program must be deleted")
}

func TestBuildWithFS(t *testing.T) {
	backend := newFakeBackend()
	fsys := fstest.MapFS{
		"shaders/pass.vert": {Data: []byte(passThroughVertex)},
		"shaders/pass.frag": {Data: []byte(passThroughFragment)},
	}

	program, err := NewBuilder(backend, WithFS(fsys)).Build("shaders/pass.vert", "shaders/pass.frag")
	require.NoError(t, err)
	assert.NotZero(t, program.ID())
}

func TestProgramDelete(t *testing.T) {
	backend := newFakeBackend()
	program, err := NewBuilder(backend).BuildSource(passThroughVertex, passThroughFragment)
	require.NoError(t, err)

	id := program.ID()
	program.Delete()
	assert.True(t, backend.programs[id].deleted)
	assert.Zero(t, program.ID())
	assert.NotPanics(t, program.Delete)
}
