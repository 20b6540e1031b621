package animation

import (
	math32 "github.com/chewxy/math32"
)

// Color is an RGBA color with components in [0,1].
type Color [4]float32

var (
	White = Color{1, 1, 1, 1}
	// Slate is the fixed clear color of the window scene.
	Slate = Color{0.07, 0.13, 0.17, 1}
)

// Clamp01 limits v to [0,1].
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// TransitionParam maps the current time to progress through a transition that
// begins at start and lasts duration seconds. The result is always in [0,1].
// A non-positive duration makes the transition an instant step at start.
func TransitionParam(now, start, duration float32) float32 {
	if duration <= 0 {
		if now < start {
			return 0
		}
		return 1
	}
	return Clamp01((now - start) / duration)
}

// Oscillate maps sin(time*freq) from [-1,1] into [0,1].
func Oscillate(time, freq float32) float32 {
	return (math32.Sin(time*freq) + 1) / 2
}

// OscillateCos is Oscillate with a cosine phase.
func OscillateCos(time, freq float32) float32 {
	return (math32.Cos(time*freq) + 1) / 2
}

// BackgroundColor is the slowly cycling clear color shared by the animated scenes.
func BackgroundColor(time float32) Color {
	return Color{
		Oscillate(time, 0.5),
		OscillateCos(time, 0.3),
		Oscillate(time, 0.7),
		1,
	}
}
