package render

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Circle vertex shader: unit fan scaled and placed by the model matrix.
const circleVertSrc = `#version 410 core

layout(location = 0) in vec3 position;
layout(location = 1) in vec3 normal;
layout(location = 2) in vec2 texcoord;

uniform mat4 aspect_matrix;
uniform mat4 model_matrix;

out vec2 tc;

void main() {
    gl_Position = aspect_matrix * model_matrix * vec4(position, 1.0);
    tc = texcoord;
}
` + "\x00"

// Circle fragment shader: solid body color, or texcoords as color.
const circleFragSrc = `#version 410 core

uniform vec4 solid_color;
uniform bool b_solid_color;

in vec2 tc;
out vec4 fragColor;

void main() {
    fragColor = b_solid_color ? solid_color : vec4(tc.xy, 0.0, 1.0);
}
` + "\x00"

// Mesh vertex shader shared by the sphere and the planets. The sphere
// passes its fixed view-projection as view_matrix and the identity as
// projection_matrix; the planets do the reverse with aspect_matrix.
const meshVertSrc = `#version 410 core

layout(location = 0) in vec3 position;
layout(location = 1) in vec3 normal;
layout(location = 2) in vec2 texcoord;

uniform mat4 aspect_matrix;
uniform mat4 projection_matrix;
uniform mat4 view_matrix;
uniform mat4 model_matrix;

out vec3 norm;
out vec2 tc;

void main() {
    gl_Position = aspect_matrix * projection_matrix * view_matrix * model_matrix * vec4(position, 1.0);
    norm = normalize(mat3(model_matrix) * normal);
    tc = texcoord;
}
` + "\x00"

// Mesh fragment shader: tc_mode 0 shows (u,v,0), 1 shows u as gray, 2
// shows v as gray.
const meshFragSrc = `#version 410 core

uniform int tc_mode;

in vec3 norm;
in vec2 tc;
out vec4 fragColor;

void main() {
    if (tc_mode == 1)      fragColor = vec4(tc.xxx, 1.0);
    else if (tc_mode == 2) fragColor = vec4(tc.yyy, 1.0);
    else                   fragColor = vec4(tc.xy, 0.0, 1.0);
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}
