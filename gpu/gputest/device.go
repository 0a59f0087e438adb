// Package gputest provides an in-memory gpu.Functions that records every
// object it hands out, so tests can check create/delete symmetry and bound
// state without a GPU.
package gputest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/richinsley/gldraw/gpu"
)

// Kind identifies an object class tracked by the device.
type Kind int

const (
	KindShader Kind = iota
	KindProgram
	KindBuffer
	KindTexture
)

func (k Kind) String() string {
	switch k {
	case KindShader:
		return "shader"
	case KindProgram:
		return "program"
	case KindBuffer:
		return "buffer"
	case KindTexture:
		return "texture"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Pointer is the recorded VertexAttribPointer configuration of one slot.
type Pointer struct {
	Buffer     gpu.Buffer
	Size       int
	Type       gpu.Enum
	Normalized bool
	Stride     int
	Offset     int
}

// DrawCall is one recorded DrawArrays.
type DrawCall struct {
	Program gpu.Program
	Mode    gpu.Enum
	First   int
	Count   int
	// Enabled attribute slots at the time of the call.
	Enabled []gpu.Attrib
	// Texture bound to TEXTURE_2D on the active unit, and its state.
	Texture      gpu.Texture
	TextureState *Texture
	Blend        bool
}

// UniformUpload is one recorded uniform upload.
type UniformUpload struct {
	Program gpu.Program
	Name    string
	Value   []float32
}

// Texture is the recorded state of a texture object.
type Texture struct {
	Width, Height int
	Internal      gpu.Enum
	Pixels        []byte
	Params        map[gpu.Enum]int
	Mipmapped     bool
}

type shaderObject struct {
	ty       gpu.Enum
	source   string
	compiled bool
	log      string
}

type programObject struct {
	attached []gpu.Shader
	linked   bool
	log      string
	attribs  map[string]gpu.Attrib
	uniforms map[string]gpu.Uniform
	values   map[gpu.Uniform][]float32
}

// Device implements gpu.Functions in memory.
type Device struct {
	// CompileFunc decides whether a stage compiles. The default accepts any
	// source that defines main and contains no #error directive.
	CompileFunc func(ty gpu.Enum, src string) (ok bool, log string)
	// LinkFunc decides whether a program links. The default rejects programs
	// whose fragment inputs are not written by the vertex stage.
	LinkFunc func(vertex, fragment string) (ok bool, log string)

	nextID uint32

	shaders  map[gpu.Shader]*shaderObject
	programs map[gpu.Program]*programObject
	buffers  map[gpu.Buffer][]float32
	textures map[gpu.Texture]*Texture

	created map[Kind]int
	deleted map[Kind]int

	CurrentProgram gpu.Program
	ArrayBuffer    gpu.Buffer
	ActiveUnit     gpu.Enum
	Bound          map[gpu.Enum]gpu.Texture
	Attribs        map[gpu.Attrib]bool
	Pointers       map[gpu.Attrib]Pointer
	Caps           map[gpu.Enum]bool
	BlendSrc       gpu.Enum
	BlendDst       gpu.Enum
	ViewportRect   [4]int
	ClearValue     [4]float32
	Clears         int
	Draws          []DrawCall
	Uploads        []UniformUpload

	// Calls lists every entry point invoked, in order.
	Calls []string
	// Errors collects calls that a real driver would reject.
	Errors []string
}

var _ gpu.Functions = (*Device)(nil)

// New returns an empty device.
func New() *Device {
	return &Device{
		shaders:    make(map[gpu.Shader]*shaderObject),
		programs:   make(map[gpu.Program]*programObject),
		buffers:    make(map[gpu.Buffer][]float32),
		textures:   make(map[gpu.Texture]*Texture),
		created:    make(map[Kind]int),
		deleted:    make(map[Kind]int),
		ActiveUnit: gpu.Texture0,
		Bound:      make(map[gpu.Enum]gpu.Texture),
		Attribs:    make(map[gpu.Attrib]bool),
		Pointers:   make(map[gpu.Attrib]Pointer),
		Caps:       make(map[gpu.Enum]bool),
	}
}

// Surface is a fixed size framebuffer.
type Surface struct {
	Width, Height int
}

// GetFramebufferSize implements gpu.Surface.
func (s Surface) GetFramebufferSize() (int, int) { return s.Width, s.Height }

// NewContext returns a context over a fresh device and a width x height
// surface.
func NewContext(width, height int) (*gpu.Context, *Device) {
	d := New()
	return gpu.NewContext(d, Surface{Width: width, Height: height}), d
}

// Created returns how many objects of kind were allocated.
func (d *Device) Created(k Kind) int { return d.created[k] }

// Deleted returns how many objects of kind were freed.
func (d *Device) Deleted(k Kind) int { return d.deleted[k] }

// Live returns how many objects of kind are still allocated.
func (d *Device) Live(k Kind) int { return d.created[k] - d.deleted[k] }

// LiveTotal returns the number of allocated objects of every kind.
func (d *Device) LiveTotal() int {
	n := 0
	for _, k := range []Kind{KindShader, KindProgram, KindBuffer, KindTexture} {
		n += d.Live(k)
	}
	return n
}

// IsProgram reports whether p names a live program.
func (d *Device) IsProgram(p gpu.Program) bool {
	_, ok := d.programs[p]
	return ok
}

// IsTexture reports whether t names a live texture.
func (d *Device) IsTexture(t gpu.Texture) bool {
	_, ok := d.textures[t]
	return ok
}

// TextureState returns the recorded state of a live texture.
func (d *Device) TextureState(t gpu.Texture) (*Texture, bool) {
	tex, ok := d.textures[t]
	return tex, ok
}

// UniformValue returns the last value uploaded to a uniform of program p.
func (d *Device) UniformValue(p gpu.Program, name string) ([]float32, bool) {
	prog, ok := d.programs[p]
	if !ok {
		return nil, false
	}
	loc, ok := prog.uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := prog.values[loc]
	return v, ok
}

// EnabledAttribs returns the number of attribute slots currently enabled.
func (d *Device) EnabledAttribs() int {
	n := 0
	for _, on := range d.Attribs {
		if on {
			n++
		}
	}
	return n
}

func (d *Device) call(name string) {
	d.Calls = append(d.Calls, name)
}

func (d *Device) fail(format string, args ...any) {
	d.Errors = append(d.Errors, fmt.Sprintf(format, args...))
}

func (d *Device) alloc(k Kind) uint32 {
	d.nextID++
	d.created[k]++
	return d.nextID
}

func (d *Device) CreateShader(ty gpu.Enum) gpu.Shader {
	d.call("CreateShader")
	s := gpu.Shader(d.alloc(KindShader))
	d.shaders[s] = &shaderObject{ty: ty}
	return s
}

func (d *Device) ShaderSource(s gpu.Shader, src string) {
	d.call("ShaderSource")
	sh, ok := d.shaders[s]
	if !ok {
		d.fail("ShaderSource: invalid shader %d", s)
		return
	}
	sh.source = src
}

func (d *Device) CompileShader(s gpu.Shader) {
	d.call("CompileShader")
	sh, ok := d.shaders[s]
	if !ok {
		d.fail("CompileShader: invalid shader %d", s)
		return
	}
	compile := d.CompileFunc
	if compile == nil {
		compile = defaultCompile
	}
	sh.compiled, sh.log = compile(sh.ty, sh.source)
}

func (d *Device) GetShaderi(s gpu.Shader, pname gpu.Enum) int {
	sh, ok := d.shaders[s]
	if !ok {
		d.fail("GetShaderi: invalid shader %d", s)
		return 0
	}
	if pname == gpu.CompileStatus && sh.compiled {
		return 1
	}
	return 0
}

func (d *Device) GetShaderInfoLog(s gpu.Shader) string {
	if sh, ok := d.shaders[s]; ok {
		return sh.log
	}
	return ""
}

func (d *Device) DeleteShader(s gpu.Shader) {
	d.call("DeleteShader")
	if _, ok := d.shaders[s]; !ok {
		return
	}
	delete(d.shaders, s)
	d.deleted[KindShader]++
}

func (d *Device) CreateProgram() gpu.Program {
	d.call("CreateProgram")
	p := gpu.Program(d.alloc(KindProgram))
	d.programs[p] = &programObject{}
	return p
}

func (d *Device) AttachShader(p gpu.Program, s gpu.Shader) {
	d.call("AttachShader")
	prog, ok := d.programs[p]
	if !ok {
		d.fail("AttachShader: invalid program %d", p)
		return
	}
	if _, ok := d.shaders[s]; !ok {
		d.fail("AttachShader: invalid shader %d", s)
		return
	}
	prog.attached = append(prog.attached, s)
}

func (d *Device) DetachShader(p gpu.Program, s gpu.Shader) {
	d.call("DetachShader")
	prog, ok := d.programs[p]
	if !ok {
		d.fail("DetachShader: invalid program %d", p)
		return
	}
	for i, a := range prog.attached {
		if a == s {
			prog.attached = append(prog.attached[:i], prog.attached[i+1:]...)
			return
		}
	}
	d.fail("DetachShader: shader %d not attached to program %d", s, p)
}

func (d *Device) LinkProgram(p gpu.Program) {
	d.call("LinkProgram")
	prog, ok := d.programs[p]
	if !ok {
		d.fail("LinkProgram: invalid program %d", p)
		return
	}
	var vs, fs string
	var haveVS, haveFS bool
	for _, s := range prog.attached {
		sh := d.shaders[s]
		if sh == nil || !sh.compiled {
			prog.linked, prog.log = false, "ERROR: Linking with uncompiled/unspecialized shader"
			return
		}
		switch sh.ty {
		case gpu.VertexShader:
			vs, haveVS = sh.source, true
		case gpu.FragmentShader:
			fs, haveFS = sh.source, true
		}
	}
	if !haveVS || !haveFS {
		prog.linked, prog.log = false, "ERROR: program requires a vertex and a fragment shader"
		return
	}
	link := d.LinkFunc
	if link == nil {
		link = defaultLink
	}
	prog.linked, prog.log = link(vs, fs)
	if !prog.linked {
		return
	}
	prog.attribs = make(map[string]gpu.Attrib)
	for i, name := range declared(inputDecl, vs) {
		prog.attribs[name] = gpu.Attrib(i)
	}
	prog.uniforms = make(map[string]gpu.Uniform)
	for _, name := range append(declared(uniformDecl, vs), declared(uniformDecl, fs)...) {
		if _, ok := prog.uniforms[name]; !ok {
			prog.uniforms[name] = gpu.Uniform(len(prog.uniforms))
		}
	}
	prog.values = make(map[gpu.Uniform][]float32)
}

func (d *Device) GetProgrami(p gpu.Program, pname gpu.Enum) int {
	prog, ok := d.programs[p]
	if !ok {
		d.fail("GetProgrami: invalid program %d", p)
		return 0
	}
	if pname == gpu.LinkStatus && prog.linked {
		return 1
	}
	return 0
}

func (d *Device) GetProgramInfoLog(p gpu.Program) string {
	if prog, ok := d.programs[p]; ok {
		return prog.log
	}
	return ""
}

func (d *Device) UseProgram(p gpu.Program) {
	d.call("UseProgram")
	if p != 0 {
		prog, ok := d.programs[p]
		if !ok || !prog.linked {
			d.fail("UseProgram: program %d is not linked", p)
			return
		}
	}
	d.CurrentProgram = p
}

func (d *Device) DeleteProgram(p gpu.Program) {
	d.call("DeleteProgram")
	if _, ok := d.programs[p]; !ok {
		return
	}
	delete(d.programs, p)
	d.deleted[KindProgram]++
	if d.CurrentProgram == p {
		d.CurrentProgram = 0
	}
}

func (d *Device) GetAttribLocation(p gpu.Program, name string) gpu.Attrib {
	prog, ok := d.programs[p]
	if !ok || !prog.linked {
		d.fail("GetAttribLocation: program %d is not linked", p)
		return -1
	}
	if loc, ok := prog.attribs[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) GetUniformLocation(p gpu.Program, name string) gpu.Uniform {
	prog, ok := d.programs[p]
	if !ok || !prog.linked {
		d.fail("GetUniformLocation: program %d is not linked", p)
		return -1
	}
	if loc, ok := prog.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) CreateBuffer() gpu.Buffer {
	d.call("CreateBuffer")
	b := gpu.Buffer(d.alloc(KindBuffer))
	d.buffers[b] = nil
	return b
}

func (d *Device) BindBuffer(target gpu.Enum, b gpu.Buffer) {
	d.call("BindBuffer")
	if target != gpu.ArrayBuffer {
		d.fail("BindBuffer: unsupported target 0x%x", uint32(target))
		return
	}
	if _, ok := d.buffers[b]; b != 0 && !ok {
		d.fail("BindBuffer: invalid buffer %d", b)
		return
	}
	d.ArrayBuffer = b
}

func (d *Device) BufferData(target gpu.Enum, data []float32, usage gpu.Enum) {
	d.call("BufferData")
	if d.ArrayBuffer == 0 {
		d.fail("BufferData: no buffer bound")
		return
	}
	d.buffers[d.ArrayBuffer] = append([]float32(nil), data...)
}

func (d *Device) DeleteBuffer(b gpu.Buffer) {
	d.call("DeleteBuffer")
	if _, ok := d.buffers[b]; !ok {
		return
	}
	delete(d.buffers, b)
	d.deleted[KindBuffer]++
	if d.ArrayBuffer == b {
		d.ArrayBuffer = 0
	}
}

func (d *Device) VertexAttribPointer(a gpu.Attrib, size int, ty gpu.Enum, normalized bool, stride, offset int) {
	d.call("VertexAttribPointer")
	if a < 0 {
		d.fail("VertexAttribPointer: invalid location %d", a)
		return
	}
	if d.ArrayBuffer == 0 {
		d.fail("VertexAttribPointer: no buffer bound")
		return
	}
	if size < 1 || size > 4 {
		d.fail("VertexAttribPointer: invalid size %d", size)
		return
	}
	d.Pointers[a] = Pointer{Buffer: d.ArrayBuffer, Size: size, Type: ty, Normalized: normalized, Stride: stride, Offset: offset}
}

func (d *Device) EnableVertexAttribArray(a gpu.Attrib) {
	d.call("EnableVertexAttribArray")
	if a < 0 {
		d.fail("EnableVertexAttribArray: invalid location %d", a)
		return
	}
	d.Attribs[a] = true
}

func (d *Device) DisableVertexAttribArray(a gpu.Attrib) {
	d.call("DisableVertexAttribArray")
	if a < 0 {
		d.fail("DisableVertexAttribArray: invalid location %d", a)
		return
	}
	d.Attribs[a] = false
}

func (d *Device) setUniform(name string, u gpu.Uniform, v []float32) {
	d.call(name)
	if u < 0 {
		// WebGL ignores uploads to location -1.
		return
	}
	prog, ok := d.programs[d.CurrentProgram]
	if !ok {
		d.fail("%s: no current program", name)
		return
	}
	prog.values[u] = v
	for n, loc := range prog.uniforms {
		if loc == u {
			d.Uploads = append(d.Uploads, UniformUpload{Program: d.CurrentProgram, Name: n, Value: v})
			break
		}
	}
}

// LastUpload returns the most recent value uploaded to a uniform called name
// in any program.
func (d *Device) LastUpload(name string) ([]float32, bool) {
	for i := len(d.Uploads) - 1; i >= 0; i-- {
		if d.Uploads[i].Name == name {
			return d.Uploads[i].Value, true
		}
	}
	return nil, false
}

func (d *Device) UniformMatrix4fv(u gpu.Uniform, m []float32) {
	if len(m) != 16 {
		d.fail("UniformMatrix4fv: got %d values", len(m))
		return
	}
	d.setUniform("UniformMatrix4fv", u, append([]float32(nil), m...))
}

func (d *Device) Uniform1i(u gpu.Uniform, v int) {
	d.setUniform("Uniform1i", u, []float32{float32(v)})
}

func (d *Device) Uniform1f(u gpu.Uniform, v float32) {
	d.setUniform("Uniform1f", u, []float32{v})
}

func (d *Device) CreateTexture() gpu.Texture {
	d.call("CreateTexture")
	t := gpu.Texture(d.alloc(KindTexture))
	d.textures[t] = &Texture{Params: make(map[gpu.Enum]int)}
	return t
}

func (d *Device) ActiveTexture(unit gpu.Enum) {
	d.call("ActiveTexture")
	d.ActiveUnit = unit
}

func (d *Device) BindTexture(target gpu.Enum, t gpu.Texture) {
	d.call("BindTexture")
	if _, ok := d.textures[t]; t != 0 && !ok {
		d.fail("BindTexture: invalid texture %d", t)
		return
	}
	d.Bound[d.ActiveUnit] = t
}

func (d *Device) boundTexture() *Texture {
	return d.textures[d.Bound[d.ActiveUnit]]
}

func (d *Device) TexImage2D(target gpu.Enum, level int, internalFormat gpu.Enum, width, height int, format, ty gpu.Enum, pixels []byte) {
	d.call("TexImage2D")
	tex := d.boundTexture()
	if tex == nil {
		d.fail("TexImage2D: no texture bound")
		return
	}
	if want := width * height * 4; format == gpu.RGBA && ty == gpu.UnsignedByte && len(pixels) != want {
		d.fail("TexImage2D: got %d bytes, want %d", len(pixels), want)
		return
	}
	if level == 0 {
		tex.Width, tex.Height = width, height
		tex.Internal = internalFormat
		tex.Pixels = append([]byte(nil), pixels...)
		tex.Mipmapped = false
	}
}

func (d *Device) TexParameteri(target, pname gpu.Enum, param int) {
	d.call("TexParameteri")
	tex := d.boundTexture()
	if tex == nil {
		d.fail("TexParameteri: no texture bound")
		return
	}
	tex.Params[pname] = param
}

func (d *Device) GenerateMipmap(target gpu.Enum) {
	d.call("GenerateMipmap")
	tex := d.boundTexture()
	if tex == nil || tex.Width == 0 {
		d.fail("GenerateMipmap: no texture image")
		return
	}
	tex.Mipmapped = true
}

func (d *Device) DeleteTexture(t gpu.Texture) {
	d.call("DeleteTexture")
	if _, ok := d.textures[t]; !ok {
		return
	}
	delete(d.textures, t)
	d.deleted[KindTexture]++
	for unit, bound := range d.Bound {
		if bound == t {
			d.Bound[unit] = 0
		}
	}
}

func (d *Device) Enable(capability gpu.Enum) {
	d.call("Enable")
	d.Caps[capability] = true
}

func (d *Device) Disable(capability gpu.Enum) {
	d.call("Disable")
	d.Caps[capability] = false
}

func (d *Device) BlendFunc(sfactor, dfactor gpu.Enum) {
	d.call("BlendFunc")
	d.BlendSrc, d.BlendDst = sfactor, dfactor
}

func (d *Device) Viewport(x, y, width, height int) {
	d.call("Viewport")
	d.ViewportRect = [4]int{x, y, width, height}
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.call("ClearColor")
	d.ClearValue = [4]float32{r, g, b, a}
}

func (d *Device) Clear(mask gpu.Enum) {
	d.call("Clear")
	d.Clears++
}

func (d *Device) DrawArrays(mode gpu.Enum, first, count int) {
	d.call("DrawArrays")
	if d.CurrentProgram == 0 {
		d.fail("DrawArrays: no current program")
		return
	}
	var enabled []gpu.Attrib
	for a, on := range d.Attribs {
		if on {
			enabled = append(enabled, a)
		}
	}
	d.Draws = append(d.Draws, DrawCall{
		Program:      d.CurrentProgram,
		Mode:         mode,
		First:        first,
		Count:        count,
		Enabled:      enabled,
		Texture:      d.Bound[d.ActiveUnit],
		TextureState: d.boundTexture(),
		Blend:        d.Caps[gpu.Blend],
	})
}

var (
	qualifier   = `(?:(?:highp|mediump|lowp|flat|smooth)\s+)*`
	layout      = `(?:layout\s*\([^)]*\)\s*)?`
	inputDecl   = regexp.MustCompile(`(?m)^\s*` + layout + `in\s+` + qualifier + `\w+\s+(\w+)\s*;`)
	outputDecl  = regexp.MustCompile(`(?m)^\s*` + layout + `out\s+` + qualifier + `\w+\s+(\w+)\s*;`)
	uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+` + qualifier + `\w+\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)
)

func declared(re *regexp.Regexp, src string) []string {
	var names []string
	for _, m := range re.FindAllStringSubmatch(src, -1) {
		names = append(names, m[1])
	}
	return names
}

func defaultCompile(ty gpu.Enum, src string) (bool, string) {
	if strings.Contains(src, "#error") {
		return false, "ERROR: 0:1: '#error' : user error directive"
	}
	if !strings.Contains(src, "main(") {
		return false, "ERROR: 0:1: '' : missing main()"
	}
	return true, ""
}

func defaultLink(vertex, fragment string) (bool, string) {
	written := make(map[string]bool)
	for _, name := range declared(outputDecl, vertex) {
		written[name] = true
	}
	for _, name := range declared(inputDecl, fragment) {
		if !written[name] {
			return false, fmt.Sprintf("ERROR: Input of fragment shader '%s' not written by vertex shader", name)
		}
	}
	return true, ""
}
