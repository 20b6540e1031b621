package shader

// Both programs take positions at attribute location 0, a row-major transform
// uploaded as a column-major mat4, and a flat RGBA color.

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const vertexShaderSourceGL = `#version 410 core
layout (location = 0) in vec3 aPos;
uniform mat4 transform;
void main() {
    gl_Position = transform * vec4(aPos, 1.0);
}
`

const fragmentShaderSourceGL = `#version 410 core
out vec4 FragColor;
uniform vec4 color;
void main() {
    FragColor = color;
}
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

const vertexShaderSourceGLES = `#version 300 es
layout (location = 0) in vec3 aPos;
uniform mat4 transform;
void main() {
    gl_Position = transform * vec4(aPos, 1.0);
}
`

const fragmentShaderSourceGLES = `#version 300 es
precision mediump float;
out vec4 FragColor;
uniform vec4 color;
void main() {
    FragColor = color;
}
`

// ────────────────────────────────── Public API ─────────────────────────────────

const (
	TransformUniform = "transform"
	ColorUniform     = "color"
)

func GenerateVertexShader(isGLES bool) string {
	if isGLES {
		return vertexShaderSourceGLES
	}
	return vertexShaderSourceGL
}

func GetFragmentShader(isGLES bool) string {
	if isGLES {
		return fragmentShaderSourceGLES
	}
	return fragmentShaderSourceGL
}
