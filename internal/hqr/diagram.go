package hqr

import "math"

// Role is the semantic colour slot a diagram primitive is painted with.
type Role string

const (
	RoleBoundary     Role = "boundary"
	RoleBulk         Role = "bulkSpace"
	RoleNetwork      Role = "network"
	RoleBoundaryLink Role = "boundaryLink"
)

// Glyph is the legend swatch shape.
type Glyph int

const (
	GlyphLine Glyph = iota
	GlyphDot
)

// Diagram sizes, in units of the boundary radius.
const (
	CenterRadius  = 0.065
	NodeRadius    = 0.025
	RootRadius    = 0.08
	NetworkLevels = 4
	NetworkAlpha  = 0.4
	RadialAlpha   = 0.6
	RadialCount   = 8
)

// BulkRingScales are the concentric AdS bulk rings, outermost first.
var BulkRingScales = []float64{0.8, 0.6, 0.4, 0.2}

type Circle struct {
	Radius float64
	Width  float64
	Alpha  float64
	Role   Role
}

type Segment struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Alpha          float64
	Role           Role
}

type Node struct {
	X, Y   float64
	Radius float64
	Level  int
	Role   Role
}

type LegendEntry struct {
	Label string
	Role  Role
	Glyph Glyph
}

// Network is the MERA tensor network overlay shown in 11D.
type Network struct {
	Alpha float64
	Nodes []Node
	Edges []Segment
}

// Diagram is the static AdS/CFT picture on a unit disc centred at the origin.
// Renderers draw the fields in declaration order.
type Diagram struct {
	Mode     DimensionMode
	Boundary Circle
	Rings    []Circle
	Radials  []Segment
	Center   Node
	Network  *Network
	Legend   []LegendEntry
}

// BuildDiagram lays out the holographic diagram for mode. Only 11D carries a
// tensor network.
func BuildDiagram(mode DimensionMode) Diagram {
	d := Diagram{
		Mode:     mode,
		Boundary: Circle{Radius: 1, Width: 3, Alpha: 1, Role: RoleBoundary},
		Center:   Node{Radius: CenterRadius, Role: RoleBulk},
		Legend: []LegendEntry{
			{Label: "CFT Boundary (Our 4D Reality)", Role: RoleBoundary, Glyph: GlyphLine},
			{Label: "AdS Bulk (Higher Dimensions)", Role: RoleBulk, Glyph: GlyphDot},
		},
	}
	for _, s := range BulkRingScales {
		d.Rings = append(d.Rings, Circle{
			Radius: s,
			Width:  1 + (1-s)*2,
			Alpha:  0.4 + (1-s)*0.6,
			Role:   RoleBulk,
		})
	}
	for i := 0; i < RadialCount; i++ {
		a := float64(i) * 2 * math.Pi / RadialCount
		d.Radials = append(d.Radials, Segment{
			X2: math.Cos(a), Y2: math.Sin(a),
			Width: 1, Alpha: RadialAlpha, Role: RoleNetwork,
		})
	}
	if mode == ElevenD {
		d.Network = buildNetwork()
		d.Legend = append(d.Legend, LegendEntry{Label: "MERA Tensor Network", Role: RoleNetwork, Glyph: GlyphLine})
	}
	return d
}

func levelRadius(level int) float64 {
	if level == 0 {
		return RootRadius
	}
	return 0.2 + float64(level)*0.2
}

func levelNodes(level int) int {
	return 4 + level*2
}

func nodeAt(level, i int) (x, y float64) {
	a := float64(i) / float64(levelNodes(level)) * 2 * math.Pi
	r := levelRadius(level)
	return r * math.Cos(a), r * math.Sin(a)
}

func buildNetwork() *Network {
	n := &Network{Alpha: NetworkAlpha}
	for level := 0; level < NetworkLevels; level++ {
		role := RoleBulk
		if level == NetworkLevels-1 {
			role = RoleBoundary
		}
		for i := 0; i < levelNodes(level); i++ {
			x, y := nodeAt(level, i)
			n.Nodes = append(n.Nodes, Node{X: x, Y: y, Radius: NodeRadius, Level: level, Role: role})
		}
	}
	for level := 0; level < NetworkLevels-1; level++ {
		role := RoleNetwork
		if level == NetworkLevels-2 {
			role = RoleBoundaryLink
		}
		outer := levelNodes(level + 1)
		for i := 0; i < levelNodes(level); i++ {
			x1, y1 := nodeAt(level, i)
			for _, j := range []int{i * 2, i*2 + 1} {
				x2, y2 := nodeAt(level+1, j%outer)
				n.Edges = append(n.Edges, Segment{X1: x1, Y1: y1, X2: x2, Y2: y2, Width: 1, Alpha: 1, Role: role})
			}
		}
	}
	return n
}
