package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/gputypes"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/triangle"
)

// maxSceneSize bounds the scene file and the shader it references.
const maxSceneSize = 1024 * 1024

// Scene is the optional YAML description of what to render.
//
//	width: 640
//	height: 480
//	clear: [0, 0.5, 1, 1]
//	shader: triangle.wgsl
//	entry_points: {vertex: vertex_main, fragment: fragment_main}
//	vertices:
//	  - [0.0, 0.6, 0, 1, 1, 0, 0, 1]
type Scene struct {
	Width       uint32       `yaml:"width"`
	Height      uint32       `yaml:"height"`
	Clear       []float64    `yaml:"clear"`
	Shader      string       `yaml:"shader"`
	EntryPoints *EntryPoints `yaml:"entry_points"`
	Vertices    [][]float32  `yaml:"vertices"`
}

// EntryPoints names the shader entry points.
type EntryPoints struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

// LoadScene reads a scene file. Relative shader paths resolve against the
// scene file's directory.
func LoadScene(path string) (*Scene, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxSceneSize {
		return nil, fmt.Errorf("scene file %s too large (%d bytes)", path, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	if scene.Shader != "" && !filepath.IsAbs(scene.Shader) {
		scene.Shader = filepath.Join(filepath.Dir(path), scene.Shader)
	}
	return &scene, nil
}

// Options converts the scene into render options.
func (s *Scene) Options() ([]triangle.Option, error) {
	var opts []triangle.Option

	if len(s.Vertices) > 0 {
		vertices := make([]triangle.Vertex, len(s.Vertices))
		for i, v := range s.Vertices {
			if len(v) != 8 {
				return nil, fmt.Errorf("vertex %d has %d components, want 8 (x y z w r g b a)", i, len(v))
			}
			vertices[i] = triangle.V(v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7])
		}
		opts = append(opts, triangle.WithVertices(vertices))
	}

	if len(s.Clear) > 0 {
		if len(s.Clear) != 4 {
			return nil, fmt.Errorf("clear color has %d components, want 4 (r g b a)", len(s.Clear))
		}
		opts = append(opts, triangle.WithClearColor(gputypes.Color{
			R: s.Clear[0], G: s.Clear[1], B: s.Clear[2], A: s.Clear[3],
		}))
	}

	if s.Shader != "" {
		info, err := os.Stat(s.Shader)
		if err != nil {
			return nil, err
		}
		if info.Size() > maxSceneSize {
			return nil, fmt.Errorf("shader %s too large (%d bytes)", s.Shader, info.Size())
		}
		src, err := os.ReadFile(s.Shader)
		if err != nil {
			return nil, err
		}
		opts = append(opts, triangle.WithShaderSource(string(src)))
	}

	if s.EntryPoints != nil {
		vertex, fragment := s.EntryPoints.Vertex, s.EntryPoints.Fragment
		if vertex == "" {
			vertex = triangle.DefaultVertexEntry
		}
		if fragment == "" {
			fragment = triangle.DefaultFragmentEntry
		}
		opts = append(opts, triangle.WithEntryPoints(vertex, fragment))
	}

	return opts, nil
}
