package renderer

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kjkrol/gokl/internal/config"
	"github.com/kjkrol/gokl/pkg/shader"
)

type programSlot struct {
	name    string
	paths   config.ProgramPaths
	program *shader.Program
	setup   func(b *shader.Binding)
}

func (s *programSlot) uses(path string) bool {
	return samePath(s.paths.Vertex, path) || samePath(s.paths.Fragment, path)
}

// programSet owns the scene's shader programs and rebuilds them when their
// source files change.
type programSet struct {
	builder *shader.Builder
	shaders *shader.Context
	lenient bool
	slots   []*programSlot
	logger  *zap.Logger
}

func newProgramSet(builder *shader.Builder, shaders *shader.Context, lenient bool, logger *zap.Logger) *programSet {
	return &programSet{builder: builder, shaders: shaders, lenient: lenient, logger: logger}
}

// add builds a program and runs setup with it active. setup runs again
// after every successful reload.
func (s *programSet) add(name string, paths config.ProgramPaths, setup func(b *shader.Binding)) (*programSlot, error) {
	slot := &programSlot{name: name, paths: paths, setup: setup}
	if s.lenient {
		slot.program = s.builder.BuildLenient(paths.Vertex, paths.Fragment)
	} else {
		program, err := s.builder.Build(paths.Vertex, paths.Fragment)
		if err != nil {
			return nil, fmt.Errorf("build %s program: %w", name, err)
		}
		slot.program = program
	}
	s.configure(slot)
	s.slots = append(s.slots, slot)
	return slot, nil
}

func (s *programSet) configure(slot *programSlot) {
	if slot.setup == nil {
		return
	}
	b := s.shaders.Use(slot.program)
	slot.setup(b)
	if err := b.Err(); err != nil {
		s.logger.Warn("program setup lost its binding", zap.String("program", slot.name), zap.Error(err))
	}
}

// reload rebuilds every program that reads path. A program that fails to
// rebuild keeps running its previous version.
func (s *programSet) reload(path string) (int, error) {
	rebuilt := 0
	var errs []error
	for _, slot := range s.slots {
		if !slot.uses(path) {
			continue
		}
		program, err := s.builder.Build(slot.paths.Vertex, slot.paths.Fragment)
		if err != nil {
			s.logger.Error("shader reload failed, keeping previous program",
				zap.String("program", slot.name), zap.Error(err))
			errs = append(errs, fmt.Errorf("reload %s program: %w", slot.name, err))
			continue
		}
		slot.program.Delete()
		slot.program = program
		s.configure(slot)
		rebuilt++
		s.logger.Info("shader program reloaded", zap.String("program", slot.name))
	}
	return rebuilt, errors.Join(errs...)
}

func (s *programSet) close() {
	s.shaders.Release()
	for _, slot := range s.slots {
		slot.program.Delete()
	}
	s.slots = nil
}

func samePath(a, b string) bool {
	if a == b {
		return true
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
