// Shader debug tool - renders the backdrop shader to a PNG file for inspection.
//
// Usage: go run ./cmd/shaderdebug -warning -out debug.png
package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bubbles/renderer"
)

func main() {
	outPath := flag.String("out", "debug.png", "Output PNG path")
	width := flag.Int("width", 512, "Render width")
	height := flag.Int("height", 512, "Render height")
	warning := flag.Bool("warning", false, "Render with the warning tint fully applied")
	t := flag.Float64("time", 0, "Shader time in seconds")
	flag.Parse()

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Shader Debug")
	defer rl.CloseWindow()

	bg := renderer.NewBackgroundRenderer(int32(*width), int32(*height), renderer.SkyTop, renderer.SkyBottom)
	bg.Init()
	defer bg.Unload()

	target := rl.LoadRenderTexture(int32(*width), int32(*height))
	defer rl.UnloadRenderTexture(target)

	// A full second of easing settles the warning tint
	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Black)
	bg.Draw(float32(*t), 1, *warning)
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if !success {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
	fmt.Printf("Backdrop rendered to: %s (%dx%d, warning=%v)\n", *outPath, *width, *height, *warning)
}
