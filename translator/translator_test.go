package translator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUniformName(t *testing.T) {
	p := &Program{Uniforms: map[string]string{"transform": "_utransform", "color": ""}}
	require.Equal(t, "_utransform", p.UniformName("transform"))
	require.Equal(t, "color", p.UniformName("color"))
	require.Equal(t, "missing", p.UniformName("missing"))
}
