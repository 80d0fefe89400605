// Package renderer draws the scene pieces that are not ECS bubbles: the
// backdrop, the lattice guides and effect particles.
package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

const backgroundFS = `#version 330
in vec2 fragTexCoord;
out vec4 finalColor;
uniform float time;
uniform vec2 resolution;
uniform float warning;
uniform vec3 topColor;
uniform vec3 bottomColor;

void main() {
    vec2 uv = gl_FragCoord.xy / resolution;
    vec3 col = mix(bottomColor, topColor, uv.y);
    float shimmer = 0.02 * sin(uv.x * 9.0 + time * 0.7) * sin(uv.y * 7.0 - time * 0.4);
    col += shimmer;
    float pulse = warning * (0.5 + 0.5 * sin(time * 6.2831));
    col = mix(col, vec3(0.35, 0.05, 0.05), 0.35 * pulse * (1.0 - uv.y));
    finalColor = vec4(col, 1.0);
}
`

// BackgroundRenderer renders a vertical gradient that pulses red while the
// stack is close to the baseline.
type BackgroundRenderer struct {
	shader         rl.Shader
	timeLoc        int32
	resolutionLoc  int32
	warningLoc     int32
	topColorLoc    int32
	bottomColorLoc int32

	screenW, screenH float32
	top, bottom      [3]float32
	warning          float32
	initialized      bool
}

// Default backdrop gradient.
var (
	SkyTop    = rl.Color{R: 28, G: 40, B: 64, A: 255}
	SkyBottom = rl.Color{R: 8, G: 10, B: 16, A: 255}
)

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(screenW, screenH int32, top, bottom rl.Color) *BackgroundRenderer {
	return &BackgroundRenderer{
		screenW: float32(screenW),
		screenH: float32(screenH),
		top:     toVec3(top),
		bottom:  toVec3(bottom),
	}
}

func toVec3(c rl.Color) [3]float32 {
	return [3]float32{float32(c.R) / 255.0, float32(c.G) / 255.0, float32(c.B) / 255.0}
}

// Init loads the shader (must be called after raylib window is created).
func (b *BackgroundRenderer) Init() {
	if b.initialized {
		return
	}

	b.shader = rl.LoadShaderFromMemory("", backgroundFS)
	b.timeLoc = rl.GetShaderLocation(b.shader, "time")
	b.resolutionLoc = rl.GetShaderLocation(b.shader, "resolution")
	b.warningLoc = rl.GetShaderLocation(b.shader, "warning")
	b.topColorLoc = rl.GetShaderLocation(b.shader, "topColor")
	b.bottomColorLoc = rl.GetShaderLocation(b.shader, "bottomColor")

	rl.SetShaderValue(b.shader, b.topColorLoc, b.top[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(b.shader, b.bottomColorLoc, b.bottom[:], rl.ShaderUniformVec3)
	b.initialized = true
	b.Resize(int32(b.screenW), int32(b.screenH))
}

// Resize updates the resolution uniform.
func (b *BackgroundRenderer) Resize(screenW, screenH int32) {
	b.screenW = float32(screenW)
	b.screenH = float32(screenH)
	if b.initialized {
		rl.SetShaderValue(b.shader, b.resolutionLoc, []float32{b.screenW, b.screenH}, rl.ShaderUniformVec2)
	}
}

// Draw renders the backdrop. The warning tint eases in and out over dt.
func (b *BackgroundRenderer) Draw(time, dt float32, warning bool) {
	if !b.initialized {
		b.Init()
	}

	target := float32(0)
	if warning {
		target = 1
	}
	b.warning += (target - b.warning) * min(1, 3*dt)

	rl.SetShaderValue(b.shader, b.timeLoc, []float32{time}, rl.ShaderUniformFloat)
	rl.SetShaderValue(b.shader, b.warningLoc, []float32{b.warning}, rl.ShaderUniformFloat)

	rl.BeginShaderMode(b.shader)
	rl.DrawRectangle(0, 0, int32(b.screenW), int32(b.screenH), rl.White)
	rl.EndShaderMode()
}

// Unload frees resources.
func (b *BackgroundRenderer) Unload() {
	if b.initialized {
		rl.UnloadShader(b.shader)
		b.initialized = false
	}
}
