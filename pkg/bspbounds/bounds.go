// Package bspbounds derives a playfield boundary from a compiled BSP map.
package bspbounds

import (
	"github.com/galaco/bsp"
	"github.com/galaco/bsp/lumps"
	"github.com/galaco/bsp/primitives/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/saiko-tech/boundary-portals/pkg/portals"
)

// ErrNoGeometry is returned for maps without world model or vertices.
var ErrNoGeometry = errors.New("map has no world geometry")

// LoadBoundary reads the BSP file at path and returns the box around its
// world model. Maps without a models lump fall back to the bounds of all
// vertices.
func LoadBoundary(path string) (portals.Boundary, error) {
	bspfile, err := bsp.ReadFromFile(path)
	if err != nil {
		return portals.Boundary{}, errors.Wrapf(err, "failed to read bsp %q", path)
	}

	models, ok := bspfile.Lump(bsp.LumpModels).(*lumps.Model)
	if !ok {
		return portals.Boundary{}, errors.Errorf("bsp %q: unsupported version %d", path, bspfile.Header().Version)
	}

	min, max, ok := worldBounds(models.GetData())
	if !ok {
		if vertices, isVertex := bspfile.Lump(bsp.LumpVertexes).(*lumps.Vertex); isVertex {
			min, max, ok = vertexBounds(vertices.GetData())
		}
	}

	if !ok {
		return portals.Boundary{}, errors.Wrapf(ErrNoGeometry, "bsp %q", path)
	}

	b, err := fromMinMax(min, max)
	if err != nil {
		return portals.Boundary{}, errors.Wrapf(err, "bsp %q", path)
	}

	return b, nil
}

// worldBounds returns the bounds of model 0, which is always the world.
func worldBounds(models []model.Model) (mgl32.Vec3, mgl32.Vec3, bool) {
	if len(models) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}

	return models[0].Mins, models[0].Maxs, true
}

func vertexBounds(vertices []mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3, bool) {
	if len(vertices) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}

	min, max := vertices[0], vertices[0]
	for _, v := range vertices[1:] {
		for i := range v {
			if v[i] < min[i] {
				min[i] = v[i]
			}

			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
	}

	return min, max, true
}

func fromMinMax(min, max mgl32.Vec3) (portals.Boundary, error) {
	return portals.NewBoundary(min.Add(max).Mul(0.5), max.Sub(min))
}
