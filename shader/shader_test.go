package shader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSources(t *testing.T) {
	for _, gles := range []bool{false, true} {
		vs := GenerateVertexShader(gles)
		fs := GetFragmentShader(gles)

		assert.Contains(t, vs, "uniform mat4 "+TransformUniform+";")
		assert.Contains(t, vs, "layout (location = 0) in vec3 aPos;")
		assert.Contains(t, fs, "uniform vec4 "+ColorUniform+";")

		version := "#version 410 core"
		if gles {
			version = "#version 300 es"
		}
		assert.True(t, strings.HasPrefix(vs, version))
		assert.True(t, strings.HasPrefix(fs, version))
	}
}
