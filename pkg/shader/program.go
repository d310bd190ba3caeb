package shader

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Program is a linked vertex+fragment pair. It is never relinked: reloading
// a shader means building a new Program and deleting the old one.
type Program struct {
	id           uint32
	vertexPath   string
	fragmentPath string
	backend      Backend
	err          error
}

func (p *Program) ID() uint32 {
	if p == nil {
		return 0
	}
	return p.id
}

// Err is nil for a program produced by Build. A program produced by
// BuildLenient may carry the file, compile or link failures it was built
// through, in which case drawing with it is undefined.
func (p *Program) Err() error {
	if p == nil {
		return nil
	}
	return p.err
}

func (p *Program) Paths() (vertex, fragment string) {
	return p.vertexPath, p.fragmentPath
}

func (p *Program) Delete() {
	if p == nil || p.id == 0 {
		return
	}
	p.backend.DeleteProgram(p.id)
	p.id = 0
}

type Builder struct {
	backend  Backend
	logger   *zap.Logger
	readFile func(path string) ([]byte, error)
}

type BuilderOption func(*Builder)

func WithLogger(logger *zap.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithFS makes the builder resolve source paths inside fsys instead of the
// process working directory.
func WithFS(fsys fs.FS) BuilderOption {
	return func(b *Builder) {
		b.readFile = func(path string) ([]byte, error) {
			return fs.ReadFile(fsys, path)
		}
	}
}

func NewBuilder(backend Backend, opts ...BuilderOption) *Builder {
	b := &Builder{
		backend:  backend,
		logger:   zap.NewNop(),
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type stageSource struct {
	stage Stage
	path  string
	code  string
}

// Build reads, compiles and links the two sources. On any failure nothing is
// left allocated and the returned error is a *FileError, *CompileError or
// *LinkError (joined when more than one stage failed).
func (b *Builder) Build(vertexPath, fragmentPath string) (*Program, error) {
	vertex, vertexErr := b.read(VertexStage, vertexPath)
	fragment, fragmentErr := b.read(FragmentStage, fragmentPath)
	if err := errors.Join(vertexErr, fragmentErr); err != nil {
		b.logger.Debug("shader source unreadable", zap.Error(err))
		return nil, err
	}
	return b.assemble(vertex, fragment, false)
}

func (b *Builder) BuildSource(vertexSource, fragmentSource string) (*Program, error) {
	return b.assemble(
		stageSource{stage: VertexStage, code: vertexSource},
		stageSource{stage: FragmentStage, code: fragmentSource},
		false,
	)
}

// BuildLenient never fails: unreadable files compile as empty source, and
// compile and link diagnostics are logged and recorded on the returned
// program instead of aborting the build.
func (b *Builder) BuildLenient(vertexPath, fragmentPath string) *Program {
	vertex, vertexErr := b.read(VertexStage, vertexPath)
	fragment, fragmentErr := b.read(FragmentStage, fragmentPath)
	for _, err := range []error{vertexErr, fragmentErr} {
		if err != nil {
			b.logger.Error("shader file not read", zap.Error(err))
		}
	}
	program, err := b.assemble(vertex, fragment, true)
	program.err = errors.Join(vertexErr, fragmentErr, err)
	return program
}

func (b *Builder) read(stage Stage, path string) (stageSource, error) {
	src := stageSource{stage: stage, path: path}
	data, err := b.readFile(path)
	if err != nil {
		return src, &FileError{Stage: stage, Path: path, Err: err}
	}
	src.code = string(data)
	return src, nil
}

func (b *Builder) assemble(vertex, fragment stageSource, keep bool) (*Program, error) {
	vertexShader, vertexErr := b.compile(vertex, keep)
	fragmentShader, fragmentErr := b.compile(fragment, keep)
	compileErr := errors.Join(vertexErr, fragmentErr)
	if compileErr != nil && !keep {
		b.backend.DeleteShader(vertexShader)
		b.backend.DeleteShader(fragmentShader)
		return nil, compileErr
	}

	id := b.backend.CreateProgram()
	b.backend.AttachShader(id, vertexShader)
	b.backend.AttachShader(id, fragmentShader)
	b.backend.LinkProgram(id)

	var linkErr error
	if !b.backend.ProgramLinked(id) {
		linkErr = &LinkError{Log: boundLog(b.backend.ProgramInfoLog(id, InfoLogLimit))}
		b.logFailure(keep, "shader program link failed",
			zap.String("vertex", vertex.path),
			zap.String("fragment", fragment.path),
			zap.Error(linkErr))
	}

	b.backend.DeleteShader(vertexShader)
	b.backend.DeleteShader(fragmentShader)

	if linkErr != nil && !keep {
		b.backend.DeleteProgram(id)
		return nil, linkErr
	}
	return &Program{
		id:           id,
		vertexPath:   vertex.path,
		fragmentPath: fragment.path,
		backend:      b.backend,
	}, errors.Join(compileErr, linkErr)
}

func (b *Builder) compile(src stageSource, keep bool) (uint32, error) {
	shader := b.backend.CreateShader(src.stage)
	b.backend.CompileShader(shader, src.code)
	if b.backend.ShaderCompiled(shader) {
		return shader, nil
	}
	err := &CompileError{
		Stage: src.stage,
		Path:  src.path,
		Log:   boundLog(b.backend.ShaderInfoLog(shader, InfoLogLimit)),
	}
	b.logFailure(keep, "shader stage compilation failed",
		zap.Stringer("stage", src.stage),
		zap.String("path", src.path),
		zap.String("log", err.Log))
	return shader, err
}

func (b *Builder) logFailure(keep bool, msg string, fields ...zap.Field) {
	if keep {
		b.logger.Error(msg, fields...)
		return
	}
	b.logger.Debug(msg, fields...)
}

func boundLog(log string) string {
	if len(log) > InfoLogLimit {
		log = log[:InfoLogLimit]
	}
	// Drop a trailing rune the byte limit cut in two.
	for i := len(log) - 1; i >= 0 && i >= len(log)-utf8.UTFMax; i-- {
		if utf8.RuneStart(log[i]) {
			if !utf8.FullRuneInString(log[i:]) {
				log = log[:i]
			}
			break
		}
	}
	return strings.TrimRight(log, "\x00\r\n ")
}
