package config

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Vec3 is written in YAML as a three element flow sequence, [x, y, z].
type Vec3 [3]float32

func (v Vec3) Vec() mgl32.Vec3 { return mgl32.Vec3(v) }

func (v *Vec3) UnmarshalYAML(node *yaml.Node) error {
	return decodeFixed(node, v[:])
}

func (v Vec3) MarshalYAML() (interface{}, error) {
	return flowSeq(v[:]), nil
}

// Color is an RGBA clear colour, [r, g, b, a].
type Color [4]float32

func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	return decodeFixed(node, c[:])
}

func (c Color) MarshalYAML() (interface{}, error) {
	return flowSeq(c[:]), nil
}

func decodeFixed(node *yaml.Node, dst []float32) error {
	var vals []float32
	if err := node.Decode(&vals); err != nil {
		return err
	}
	if len(vals) != len(dst) {
		return fmt.Errorf("line %d: want %d numbers, got %d", node.Line, len(dst), len(vals))
	}
	copy(dst, vals)
	return nil
}

func flowSeq(vals []float32) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle, Tag: "!!seq"}
	for _, v := range vals {
		n.Content = append(n.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!float",
			Value: fmt.Sprintf("%g", v),
		})
	}
	return n
}
