package render

import (
	"strings"
	"testing"
)

func TestShaderSourcesTerminated(t *testing.T) {
	for name, src := range map[string]string{
		"circle.vert": circleVertSrc,
		"circle.frag": circleFragSrc,
		"mesh.vert":   meshVertSrc,
		"mesh.frag":   meshFragSrc,
	} {
		if !strings.HasSuffix(src, "\x00") {
			t.Errorf("%s: expected NUL terminator", name)
		}
		if !strings.HasPrefix(src, "#version 410 core") {
			t.Errorf("%s: expected #version 410 core header", name)
		}
	}
}

func TestShaderUniformsDeclared(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		uniforms []string
	}{
		{"circle.vert", circleVertSrc, []string{"aspect_matrix", "model_matrix"}},
		{"circle.frag", circleFragSrc, []string{"solid_color", "b_solid_color"}},
		{"mesh.vert", meshVertSrc, []string{"aspect_matrix", "projection_matrix", "view_matrix", "model_matrix"}},
		{"mesh.frag", meshFragSrc, []string{"tc_mode"}},
	}
	for _, tt := range tests {
		for _, u := range tt.uniforms {
			if !strings.Contains(tt.src, " "+u+";") {
				t.Errorf("%s: expected uniform %s", tt.name, u)
			}
		}
	}
}

func TestVertexAttributeLocations(t *testing.T) {
	for name, src := range map[string]string{"circle.vert": circleVertSrc, "mesh.vert": meshVertSrc} {
		for _, decl := range []string{
			"layout(location = 0) in vec3 position;",
			"layout(location = 1) in vec3 normal;",
			"layout(location = 2) in vec2 texcoord;",
		} {
			if !strings.Contains(src, decl) {
				t.Errorf("%s: expected %q", name, decl)
			}
		}
	}
}
