package shader

import "github.com/go-gl/mathgl/mgl32"

// Context owns the "which program is active" state of one GL context.
// Every activation goes through Use, so a Binding can tell whether it is
// still the active one.
type Context struct {
	backend    Backend
	current    *Program
	generation uint64
}

func NewContext(backend Backend) *Context {
	return &Context{backend: backend}
}

// Use activates program and returns the token its uniforms are set through.
// The previous token stops accepting uniforms.
func (c *Context) Use(program *Program) *Binding {
	c.backend.UseProgram(program.ID())
	c.current = program
	c.generation++
	return &Binding{ctx: c, program: program, generation: c.generation}
}

// Release deactivates whatever program is current.
func (c *Context) Release() {
	c.backend.UseProgram(0)
	c.current = nil
	c.generation++
}

func (c *Context) Current() *Program {
	return c.current
}

// Binding is the active-program token handed out by Context.Use. Uniforms are
// resolved by name on every call; a name the program does not declare is a
// silent no-op.
type Binding struct {
	ctx        *Context
	program    *Program
	generation uint64
	err        error
}

func (b *Binding) Active() bool {
	return b.ctx.generation == b.generation && b.ctx.current == b.program
}

// Err reports ErrInactiveBinding once a setter was called after the binding
// lost activation. Those calls upload nothing.
func (b *Binding) Err() error {
	return b.err
}

func (b *Binding) location(name string) (int32, bool) {
	if !b.Active() {
		b.err = ErrInactiveBinding
		return InvalidLocation, false
	}
	loc := b.ctx.backend.UniformLocation(b.program.ID(), name)
	return loc, loc != InvalidLocation
}

func (b *Binding) SetBool(name string, value bool) {
	var v int32
	if value {
		v = 1
	}
	if loc, ok := b.location(name); ok {
		b.ctx.backend.Uniform1i(loc, v)
	}
}

func (b *Binding) SetInt(name string, value int32) {
	if loc, ok := b.location(name); ok {
		b.ctx.backend.Uniform1i(loc, value)
	}
}

func (b *Binding) SetFloat(name string, value float32) {
	if loc, ok := b.location(name); ok {
		b.ctx.backend.Uniform1f(loc, value)
	}
}

func (b *Binding) SetVec3(name string, value mgl32.Vec3) {
	if loc, ok := b.location(name); ok {
		b.ctx.backend.Uniform3f(loc, value[0], value[1], value[2])
	}
}

func (b *Binding) SetVec4(name string, value mgl32.Vec4) {
	if loc, ok := b.location(name); ok {
		b.ctx.backend.Uniform4f(loc, value[0], value[1], value[2], value[3])
	}
}

// SetMat4 uploads value as-is: mgl32 matrices are already column-major.
func (b *Binding) SetMat4(name string, value mgl32.Mat4) {
	if loc, ok := b.location(name); ok {
		m := [16]float32(value)
		b.ctx.backend.UniformMatrix4fv(loc, &m)
	}
}
