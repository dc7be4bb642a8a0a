package planck

import (
	"fmt"

	"github.com/setanarut/vec"
)

// ShapeData is the serializable form of a shape. Only the fields for the
// named type are meaningful.
type ShapeData struct {
	Type     string     `json:"type"`
	Radius   float64    `json:"radius,omitempty"`
	Center   vec.Vec2   `json:"center,omitempty"`
	Vertices []vec.Vec2 `json:"vertices,omitempty"`
	Loop     bool       `json:"loop,omitempty"`
}

// FixtureData is the serializable form of a fixture.
type FixtureData struct {
	Friction     float64   `json:"friction"`
	Restitution  float64   `json:"restitution"`
	Density      float64   `json:"density"`
	IsSensor     bool      `json:"isSensor"`
	GroupIndex   int16     `json:"groupIndex"`
	CategoryBits uint16    `json:"categoryBits"`
	MaskBits     uint16    `json:"maskBits"`
	Shape        ShapeData `json:"shape"`
}

// Data returns the fixture's serializable form. User data is not included.
func (f *Fixture) Data() FixtureData {
	return FixtureData{
		Friction:     f.friction,
		Restitution:  f.restitution,
		Density:      f.density,
		IsSensor:     f.sensor,
		GroupIndex:   f.filter.GroupIndex,
		CategoryBits: f.filter.CategoryBits,
		MaskBits:     f.filter.MaskBits,
		Shape:        shapeData(f.shape),
	}
}

func shapeData(s Shape) ShapeData {
	switch s := s.(type) {
	case *Circle:
		return ShapeData{
			Type:   CircleType.String(),
			Radius: s.Radius(),
			Center: s.Center,
		}
	case *Edge:
		return ShapeData{
			Type:     EdgeType.String(),
			Vertices: []vec.Vec2{s.V1, s.V2},
		}
	case *Polygon:
		return ShapeData{
			Type:     PolygonType.String(),
			Vertices: s.Vertices,
		}
	case *Chain:
		return ShapeData{
			Type:     ChainType.String(),
			Vertices: s.Vertices,
			Loop:     s.Loop,
		}
	}
	panic(fmt.Sprintf("cannot serialize shape type %T", s))
}

// ShapeRestorer rebuilds a shape from its serialized form. A restorer may
// substitute shape implementations or reject data it does not recognize.
type ShapeRestorer func(ShapeData) (Shape, error)

// RestoreShape is the default restorer for the built-in shape set.
func RestoreShape(data ShapeData) (Shape, error) {
	switch data.Type {
	case CircleType.String():
		return NewCircleAt(data.Center, data.Radius), nil
	case EdgeType.String():
		if len(data.Vertices) != 2 {
			return nil, fmt.Errorf("restore edge: want 2 vertices, got %d", len(data.Vertices))
		}
		return NewEdge(data.Vertices[0], data.Vertices[1]), nil
	case PolygonType.String():
		if len(data.Vertices) < 3 {
			return nil, fmt.Errorf("restore polygon: want at least 3 vertices, got %d", len(data.Vertices))
		}
		return NewPolygon(data.Vertices), nil
	case ChainType.String():
		if data.Loop {
			if len(data.Vertices) < 3 {
				return nil, fmt.Errorf("restore chain loop: want at least 3 vertices, got %d", len(data.Vertices))
			}
			return NewChainLoop(data.Vertices), nil
		}
		if len(data.Vertices) < 2 {
			return nil, fmt.Errorf("restore chain: want at least 2 vertices, got %d", len(data.Vertices))
		}
		return NewChain(data.Vertices), nil
	}
	return nil, fmt.Errorf("restore shape: unknown type %q", data.Type)
}

// RestoreFixture recreates a fixture on the body from its serialized form. If
// restorer is nil the default RestoreShape is used. On a restore failure no
// fixture is created.
func (b *Body) RestoreFixture(data FixtureData, restorer ShapeRestorer) (*Fixture, error) {
	if restorer == nil {
		restorer = RestoreShape
	}
	shape, err := restorer(data.Shape)
	if err != nil {
		return nil, fmt.Errorf("restore fixture: %w", err)
	}

	def := FixtureDef{
		Shape:       shape,
		Friction:    data.Friction,
		Restitution: data.Restitution,
		Density:     data.Density,
		IsSensor:    data.IsSensor,
		Filter: Filter{
			GroupIndex:   data.GroupIndex,
			CategoryBits: data.CategoryBits,
			MaskBits:     data.MaskBits,
		},
	}
	return b.CreateFixture(def), nil
}
