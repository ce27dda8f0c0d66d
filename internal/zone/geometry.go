package zone

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Polygon returns the boundary as a closed orb polygon (lng/lat order).
func (z Zone) Polygon() orb.Polygon {
	ring := make(orb.Ring, 0, len(z.Boundary)+1)
	for _, c := range z.Boundary {
		ring = append(ring, orb.Point{c.Lng, c.Lat})
	}
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return orb.Polygon{ring}
}

// Centroid returns the area-weighted centre of the boundary.
func (z Zone) Centroid() Coordinate {
	p, _ := planar.CentroidArea(z.Polygon())
	return Coordinate{Lat: p.Lat(), Lng: p.Lon()}
}

// AreaHectares is the geodesic area enclosed by the boundary.
func (z Zone) AreaHectares() float64 {
	return geo.Area(z.Polygon()) / 10_000
}

// Contains reports whether c lies inside the boundary.
func (z Zone) Contains(c Coordinate) bool {
	return planar.PolygonContains(z.Polygon(), orb.Point{c.Lng, c.Lat})
}

// Bounds returns the bounding box covering every zone.
func Bounds(zones []Zone) orb.Bound {
	var b orb.Bound
	for i, z := range zones {
		zb := z.Polygon().Bound()
		if i == 0 {
			b = zb
			continue
		}
		b = b.Union(zb)
	}
	return b
}

// Feature encodes the zone as a GeoJSON feature.
func (z Zone) Feature() *geojson.Feature {
	f := geojson.NewFeature(z.Polygon())
	f.ID = z.ID
	f.Properties["name"] = z.Name
	f.Properties["cropType"] = z.CropType
	f.Properties["status"] = string(z.Status)
	f.Properties["color"] = z.Status.Color()
	f.Properties["confidence"] = z.Confidence
	f.Properties["lastScan"] = z.LastScan
	if z.PredictedIssue != "" {
		f.Properties["predictedIssue"] = z.PredictedIssue
	}
	return f
}

// FeatureCollection encodes zones in order.
func FeatureCollection(zones []Zone) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, z := range zones {
		fc.Append(z.Feature())
	}
	return fc
}
