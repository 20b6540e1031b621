package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator *gst.ShaderTranslator
	initErr    error
	initOnce   sync.Once
)

// GetTranslator lazily starts the shared translator instance.
func GetTranslator() (*gst.ShaderTranslator, error) {
	initOnce.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, initErr
}

// Program is a vertex/fragment pair translated to desktop GLSL 4.10.
type Program struct {
	VertexCode   string
	FragmentCode string
	// Uniforms maps source uniform names to the names the translator emitted.
	Uniforms map[string]string
}

// UniformName returns the emitted name for a source uniform, or the source
// name when the translator did not report it.
func (p *Program) UniformName(name string) string {
	if mapped, ok := p.Uniforms[name]; ok && mapped != "" {
		return mapped
	}
	return name
}

// Translate converts ESSL 3.00 sources into GLSL 4.10.
func Translate(vertexSource, fragmentSource string) (*Program, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to start shader translator: %w", err)
	}

	vs, err := t.TranslateShader(vertexSource, "vertex", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, fmt.Errorf("vertex shader translation failed: %w", err)
	}
	fs, err := t.TranslateShader(fragmentSource, "fragment", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}

	p := &Program{
		VertexCode:   vs.Code,
		FragmentCode: fs.Code,
		Uniforms:     make(map[string]string),
	}
	for name, v := range vs.Variables {
		p.Uniforms[name] = v.MappedName
	}
	for name, v := range fs.Variables {
		p.Uniforms[name] = v.MappedName
	}
	return p, nil
}
