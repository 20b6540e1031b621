package renderer

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	shader "github.com/richinsley/glshapes/shader"
	xlate "github.com/richinsley/glshapes/translator"
)

// shapeProgram is the single program every scene draws with.
type shapeProgram struct {
	id           uint32
	transformLoc int32
	colorLoc     int32
}

// buildShapeProgram compiles the built-in desktop GLSL sources, or the ESSL
// sources run through the shader translator when translate is set.
func buildShapeProgram(translate bool) (*shapeProgram, error) {
	vs := shader.GenerateVertexShader(false)
	fs := shader.GetFragmentShader(false)
	transformName, colorName := shader.TransformUniform, shader.ColorUniform

	if translate {
		p, err := xlate.Translate(shader.GenerateVertexShader(true), shader.GetFragmentShader(true))
		if err != nil {
			return nil, err
		}
		vs, fs = p.VertexCode, p.FragmentCode
		transformName = p.UniformName(shader.TransformUniform)
		colorName = p.UniformName(shader.ColorUniform)
	}

	id, err := newProgram(vs, fs)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	sp := &shapeProgram{
		id:           id,
		transformLoc: gl.GetUniformLocation(id, gl.Str(transformName+"\x00")),
		colorLoc:     gl.GetUniformLocation(id, gl.Str(colorName+"\x00")),
	}
	if sp.transformLoc < 0 || sp.colorLoc < 0 {
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("shape program is missing uniforms (transform=%d, color=%d)", sp.transformLoc, sp.colorLoc)
	}
	return sp, nil
}

func (sp *shapeProgram) destroy() {
	gl.DeleteProgram(sp.id)
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile %s shader: %v", shaderKind(shaderType), logText)
	}
	return shader, nil
}

func shaderKind(shaderType uint32) string {
	switch shaderType {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	default:
		return fmt.Sprintf("0x%x", shaderType)
	}
}
