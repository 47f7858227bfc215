// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Command nglplay is a small reference harness that configures an
// ngl.Context, builds or loads a scene, and plays it back frame by
// frame until the window is closed (§2 DOMAIN STACK: "a thin CLI
// front-end exercising set_scene/configure/draw loop end to end"),
// grounded on the teacher's driver/vk/spinningcube_test.go demo
// harness shape (window creation, fixed clear color, per-frame draw
// loop) and built with github.com/spf13/cobra the way the rest of the
// retrieved pack's CLIs are structured.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gviegas/nodegfx/drawable"
	"github.com/gviegas/nodegfx/gfx/glbackend"
	"github.com/gviegas/nodegfx/linear"
	"github.com/gviegas/nodegfx/ngl"
	"github.com/gviegas/nodegfx/nglcfg"
	"github.com/gviegas/nodegfx/transform"
)

func main() {
	root := &cobra.Command{
		Use:   "nglplay",
		Short: "play back a node-graph scene",
	}
	root.AddCommand(newRunCmd(), newDemoCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func commonFlags(cmd *cobra.Command) (width, height *int) {
	width = cmd.Flags().Int("width", 1280, "window width")
	height = cmd.Flags().Int("height", 720, "window height")
	return
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scene.yaml>",
		Short: "load a YAML scene description and play it back",
		Args:  cobra.ExactArgs(1),
	}
	width, height := commonFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		scene, err := ngl.LoadSceneYAML(args[0])
		if err != nil {
			return err
		}
		return playback(*width, *height, scene)
	}
	return cmd
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "build a built-in textured-quad scene and play it back",
	}
	width, height := commonFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		scene, err := buildDemoScene(float64(*width) / float64(*height))
		if err != nil {
			return err
		}
		return playback(*width, *height, scene)
	}
	return cmd
}

// buildDemoScene wires a Camera over a single TexturedShape quad, the
// same minimal shape §8.3 scenario 1 exercises against mockbackend.
func buildDemoScene(aspect float64) (*ngl.Node, error) {
	quad, err := ngl.NodeCreate(drawable.KindQuad,
		linear.V3{-0.5, -0.5, 0}, linear.V3{1, 0, 0}, linear.V3{0, 1, 0})
	if err != nil {
		return nil, err
	}
	shader, err := ngl.NodeCreate(drawable.KindShader)
	if err != nil {
		return nil, err
	}
	shape, err := ngl.NodeCreate(drawable.KindTexturedShape, quad, shader)
	if err != nil {
		return nil, err
	}
	eye, err := ngl.NodeCreate(transform.KindTranslate, linear.V3{0, 0, 3})
	if err != nil {
		return nil, err
	}
	eyeTerm, err := ngl.NodeCreate(transform.KindIdentity)
	if err != nil {
		return nil, err
	}
	if err := ngl.NodeParamSet(eye, "child", eyeTerm); err != nil {
		return nil, err
	}
	center, err := ngl.NodeCreate(transform.KindIdentity)
	if err != nil {
		return nil, err
	}
	up, err := ngl.NodeCreate(transform.KindIdentity)
	if err != nil {
		return nil, err
	}
	camera, err := ngl.NodeCreate(drawable.KindCamera, 60.0, aspect, 0.1, 100.0)
	if err != nil {
		return nil, err
	}
	for key, val := range map[string]any{"eye": eye, "center": center, "up": up, "child": shape} {
		if err := ngl.NodeParamSet(camera, key, val); err != nil {
			return nil, err
		}
	}
	return camera, nil
}

func playback(width, height int, scene *ngl.Node) error {
	ctx := ngl.Create()
	cfg := nglcfg.Default()
	cfg.Width, cfg.Height = width, height
	if err := ctx.Configure(cfg); err != nil {
		return err
	}
	defer ctx.Free()

	if err := ctx.SetScene(scene); err != nil {
		return err
	}

	for {
		if err := ctx.Draw(glbackend.Now()); err != nil {
			return err
		}
		if b, ok := ctx.Backend().(interface{ ShouldClose() bool }); ok && b.ShouldClose() {
			return nil
		}
	}
}
