package refraction

import "github.com/hajimehoshi/ebiten/v2"

// OpCode identifies the kind of recorded command.
type OpCode uint8

const (
	OpGetTemporary     OpCode = iota // declare a scratch target sized from the viewport
	OpReleaseTemporary               // return a scratch target to the pool
	OpBlit                           // copy/resample one target into another
	OpSetVector                      // set a list-scoped vector parameter
	OpSetFloat                       // set a list-scoped scalar parameter
	OpSetGlobalTexture               // publish a target as a scene-wide texture
)

// String returns the op name used in logs.
func (o OpCode) String() string {
	switch o {
	case OpGetTemporary:
		return "get-temporary"
	case OpReleaseTemporary:
		return "release-temporary"
	case OpBlit:
		return "blit"
	case OpSetVector:
		return "set-vector"
	case OpSetFloat:
		return "set-float"
	case OpSetGlobalTexture:
		return "set-global-texture"
	default:
		return "unknown"
	}
}

// TargetID names an image a command reads or writes: either the camera's
// backbuffer or a scratch target declared in the same list.
type TargetID struct {
	name string
}

// Backbuffer is the viewport of the camera executing the list.
var Backbuffer = TargetID{}

// Target returns the ID of the scratch target declared under name.
func Target(name string) TargetID {
	return TargetID{name: name}
}

// IsBackbuffer reports whether id refers to the camera backbuffer.
func (id TargetID) IsBackbuffer() bool {
	return id.name == ""
}

// Name returns the scratch target name, or "" for the backbuffer.
func (id TargetID) Name() string {
	return id.name
}

// String returns a readable form for logs and test failures.
func (id TargetID) String() string {
	if id.IsBackbuffer() {
		return "<backbuffer>"
	}
	return id.name
}

// Command is a single recorded operation. Which fields are meaningful
// depends on Op.
type Command struct {
	Op OpCode
	// Name is the scratch target (get/release), parameter (set-vector,
	// set-float) or published texture (set-global-texture) name.
	Name string
	// Src and Dst are the blit endpoints; Src is also the published target.
	Src, Dst TargetID
	Size     SizePolicy
	Filter   FilterMode
	// Material, when non-nil on a blit, runs the copy through its shader.
	Material *Material
	Vector   Vec4
	Float    float64
}

// scratchTarget is a declared target retained by a list between executions.
type scratchTarget struct {
	img    *ebiten.Image
	filter FilterMode
}

// CommandList is an ordered sequence of GPU operations recorded once and
// replayed by every camera it is attached to, each frame. Recording does no
// GPU work; scratch targets are allocated on execution and the ones not
// released inside the list are kept until the list is detached.
type CommandList struct {
	// Name is used in logs.
	Name string

	commands []Command
	targets  map[string]*scratchTarget
}

// NewCommandList creates an empty list.
func NewCommandList(name string) *CommandList {
	return &CommandList{Name: name}
}

// Commands returns the recorded commands. The returned slice MUST NOT be mutated.
func (l *CommandList) Commands() []Command {
	return l.commands
}

// Len returns the number of recorded commands.
func (l *CommandList) Len() int {
	return len(l.commands)
}

// Clear drops every recorded command. Retained targets are kept until the
// list is detached.
func (l *CommandList) Clear() {
	l.commands = l.commands[:0]
}

// GetTemporaryTarget declares a scratch target. Re-declaring a name is not
// an error; the last declaration wins.
func (l *CommandList) GetTemporaryTarget(name string, size SizePolicy, filter FilterMode) {
	l.commands = append(l.commands, Command{Op: OpGetTemporary, Name: name, Size: size, Filter: filter})
}

// ReleaseTemporaryTarget returns a declared scratch target to the pool at
// this point of the list.
func (l *CommandList) ReleaseTemporaryTarget(name string) {
	l.commands = append(l.commands, Command{Op: OpReleaseTemporary, Name: name})
}

// Blit copies src into dst, resampling with src's filter when sizes differ.
func (l *CommandList) Blit(src, dst TargetID) {
	l.commands = append(l.commands, Command{Op: OpBlit, Src: src, Dst: dst})
}

// BlitMaterial copies src into dst through m's shader. src is bound as
// Images[0]; list-scoped parameters and m's properties become uniforms.
func (l *CommandList) BlitMaterial(src, dst TargetID, m *Material) {
	l.commands = append(l.commands, Command{Op: OpBlit, Src: src, Dst: dst, Material: m})
}

// SetVector sets a vector parameter seen by the following material blits.
func (l *CommandList) SetVector(name string, v Vec4) {
	l.commands = append(l.commands, Command{Op: OpSetVector, Name: name, Vector: v})
}

// SetFloat sets a scalar parameter seen by the following material blits.
func (l *CommandList) SetFloat(name string, v float64) {
	l.commands = append(l.commands, Command{Op: OpSetFloat, Name: name, Float: v})
}

// SetGlobalTexture publishes src under name for draws later in the frame.
func (l *CommandList) SetGlobalTexture(name string, src TargetID) {
	l.commands = append(l.commands, Command{Op: OpSetGlobalTexture, Name: name, Src: src})
}

// releaseTargets returns every retained target to s's pool and unpublishes
// them. s may be nil for a list that never ran in a scene.
func (l *CommandList) releaseTargets(s *Scene) {
	for name, t := range l.targets {
		if s != nil {
			s.globals.forgetTexture(t.img)
			s.rtPool.release(t.img)
		} else {
			t.img.Deallocate()
		}
		delete(l.targets, name)
	}
}

// RetainedTargets returns the number of scratch targets the list currently
// holds between executions.
func (l *CommandList) RetainedTargets() int {
	return len(l.targets)
}
