package compute

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/san-kum/argonmd/internal/md"
)

// GLBackend runs the force and move kernels as OpenGL 4.3 compute shaders.
// The device mirrors (float32 vec4 SSBOs) are uploaded before and read back
// after every kernel invocation; its force kernel does not reduce the
// potential energy, so that sum comes from the CPU pair loop.
//
// First use creates a hidden GLFW window for an offscreen GL context and
// pins the goroutine to its OS thread. On hosts without a display or a
// GL 4.3 driver, Available() reports false and the auto-selection falls
// back to CPU. All calls must come from the goroutine that initialized
// the backend.
type GLBackend struct {
	progZero      uint32
	progForce     uint32
	progBootstrap uint32
	progVerlet    uint32

	// SSBO bindings 0..3: r, r1, v, f
	ssbo     [4]uint32
	capacity int

	window *glfw.Window

	initOnce sync.Once
	initErr  error
	compiled bool

	cpu *CPUBackend
}

const (
	bufPos = iota
	bufPrev
	bufVel
	bufForce
)

func NewGLBackend() *GLBackend {
	return &GLBackend{cpu: NewCPUBackend()}
}

func (g *GLBackend) Name() string { return "gpu (gl compute)" }

func (g *GLBackend) Available() bool { return g.ensureInit() == nil }

func (g *GLBackend) Cleanup() {
	if g.compiled {
		gl.DeleteProgram(g.progZero)
		gl.DeleteProgram(g.progForce)
		gl.DeleteProgram(g.progBootstrap)
		gl.DeleteProgram(g.progVerlet)
		if g.capacity > 0 {
			gl.DeleteBuffers(4, &g.ssbo[0])
		}
		g.compiled = false
	}
	if g.window != nil {
		g.window.Destroy()
		glfw.Terminate()
		g.window = nil
	}
}

func (g *GLBackend) ensureInit() error {
	g.initOnce.Do(func() {
		// The GL context binds to the current OS thread.
		runtime.LockOSThread()

		if err := glfw.Init(); err != nil {
			g.initErr = fmt.Errorf("glfw init: %w", err)
			return
		}

		glfw.WindowHint(glfw.Visible, glfw.False)
		glfw.WindowHint(glfw.ContextVersionMajor, 4)
		glfw.WindowHint(glfw.ContextVersionMinor, 3)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

		win, err := glfw.CreateWindow(1, 1, "argonmd compute", nil, nil)
		if err != nil {
			glfw.Terminate()
			g.initErr = fmt.Errorf("offscreen context: %w", err)
			return
		}
		win.MakeContextCurrent()
		g.window = win

		if err := gl.Init(); err != nil {
			win.Destroy()
			glfw.Terminate()
			g.window = nil
			g.initErr = fmt.Errorf("gl init: %w", err)
			return
		}
		if g.progZero, err = createComputeProgram(zeroForceSrc); err != nil {
			g.initErr = fmt.Errorf("zero-force kernel: %w", err)
			return
		}
		if g.progForce, err = createComputeProgram(forceSrc); err != nil {
			g.initErr = fmt.Errorf("force kernel: %w", err)
			return
		}
		if g.progBootstrap, err = createComputeProgram(bootstrapSrc); err != nil {
			g.initErr = fmt.Errorf("bootstrap kernel: %w", err)
			return
		}
		if g.progVerlet, err = createComputeProgram(verletSrc); err != nil {
			g.initErr = fmt.Errorf("verlet kernel: %w", err)
			return
		}
		g.compiled = true
	})
	return g.initErr
}

func (g *GLBackend) Forces(s *md.State) error {
	if err := g.ensureInit(); err != nil {
		return err
	}
	g.ensureBuffers(s.NumAtom)

	g.upload(bufPos, s.R)

	g.dispatch(g.progZero, s.NumAtom, func(prog uint32) {
		uniform1i(prog, "numAtom", int32(s.NumAtom))
	})

	g.dispatch(g.progForce, s.NumAtom, func(prog uint32) {
		uniform1i(prog, "ncp", md.Ncp)
		uniform1i(prog, "numAtom", int32(s.NumAtom))
		uniform1f(prog, "periodicLen", float32(s.PeriodicLen))
		uniform1f(prog, "rc2", float32(s.LJ.Rc2))
	})

	g.download(bufForce, s.F)

	// The force kernel has no energy reduction; sum Up on the host.
	s.Up = g.cpu.potentialEnergy(s)
	return nil
}

func (g *GLBackend) Bootstrap(s *md.State, scale float64) error {
	if err := g.ensureInit(); err != nil {
		return err
	}
	g.ensureBuffers(s.NumAtom)

	g.upload(bufPos, s.R)
	g.upload(bufPrev, s.R1)
	g.upload(bufVel, s.V)
	g.upload(bufForce, s.F)

	g.dispatch(g.progBootstrap, s.NumAtom, func(prog uint32) {
		uniform1i(prog, "numAtom", int32(s.NumAtom))
		uniform1f(prog, "dt", float32(s.Dt))
		uniform1f(prog, "s", float32(scale))
	})

	g.download(bufPos, s.R)
	g.download(bufPrev, s.R1)
	g.download(bufVel, s.V)

	s.Wrap()
	return nil
}

func (g *GLBackend) Verlet(s *md.State) error {
	if err := g.ensureInit(); err != nil {
		return err
	}
	g.ensureBuffers(s.NumAtom)

	g.upload(bufPos, s.R)
	g.upload(bufPrev, s.R1)
	g.upload(bufVel, s.V)
	g.upload(bufForce, s.F)

	g.dispatch(g.progVerlet, s.NumAtom, func(prog uint32) {
		uniform1i(prog, "numAtom", int32(s.NumAtom))
		uniform1f(prog, "dt", float32(s.Dt))
	})

	g.download(bufPos, s.R)
	g.download(bufPrev, s.R1)
	g.download(bufVel, s.V)

	s.Wrap()
	return nil
}

func (g *GLBackend) ensureBuffers(n int) {
	if g.capacity == n {
		return
	}
	if g.capacity > 0 {
		gl.DeleteBuffers(4, &g.ssbo[0])
	}

	size := n * 4 * 4 // vec4 of float32

	gl.GenBuffers(4, &g.ssbo[0])
	for i := 0; i < 4; i++ {
		gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, g.ssbo[i])
		gl.BufferData(gl.SHADER_STORAGE_BUFFER, size, nil, gl.DYNAMIC_DRAW)
		gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, uint32(i), g.ssbo[i])
	}
	g.capacity = n
}

func (g *GLBackend) upload(idx int, vs []md.Vector4) {
	data := packVec4(vs, nil)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, g.ssbo[idx])
	gl.BufferSubData(gl.SHADER_STORAGE_BUFFER, 0, len(data)*4, gl.Ptr(data))
}

func (g *GLBackend) download(idx int, vs []md.Vector4) {
	data := make([]float32, len(vs)*4)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, g.ssbo[idx])
	gl.GetBufferSubData(gl.SHADER_STORAGE_BUFFER, 0, len(data)*4, gl.Ptr(data))
	unpackVec4(data, vs)
}

// dispatch runs one kernel over n atoms and blocks until it completes. The
// integrator depends on finished force values, so the wait is explicit.
func (g *GLBackend) dispatch(prog uint32, n int, setUniforms func(prog uint32)) {
	gl.UseProgram(prog)
	setUniforms(prog)

	groups := uint32((n + localSize - 1) / localSize)
	gl.DispatchCompute(groups, 1, 1)
	gl.MemoryBarrier(gl.SHADER_STORAGE_BARRIER_BIT)
	gl.Finish()
}

func uniform1i(prog uint32, name string, v int32) {
	gl.Uniform1i(gl.GetUniformLocation(prog, gl.Str(name+"\x00")), v)
}

func uniform1f(prog uint32, name string, v float32) {
	gl.Uniform1f(gl.GetUniformLocation(prog, gl.Str(name+"\x00")), v)
}

func createComputeProgram(source string) (uint32, error) {
	content := source + "\x00"

	shader := gl.CreateShader(gl.COMPUTE_SHADER)
	csources, free := gl.Strs(content)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to compile compute shader: %v", log)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, shader)
	gl.LinkProgram(program)

	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		return 0, fmt.Errorf("failed to link program")
	}

	gl.DeleteShader(shader)
	return program, nil
}
