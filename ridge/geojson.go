package ridge

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

// RidgeLineString converts a ridge to a polyline through pixel centers,
// x being the column and y the row (image coordinates, y down).
func RidgeLineString(r Ridge) orb.LineString {
	ls := make(orb.LineString, len(r))
	for x, y := range r {
		ls[x] = orb.Point{float64(x) + 0.5, float64(y) + 0.5}
	}
	return ls
}

// RidgesToGeoJSON builds one LineString feature per layer. When tolerance is
// positive, a Douglas-Peucker simplified copy of each line is added with the
// "simplified" property set.
func RidgesToGeoJSON(layers []Layer, tolerance float64) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, l := range layers {
		ls := RidgeLineString(l.Ridge)
		fc.Append(ridgeFeature(l, ls, false))

		if tolerance > 0 && len(ls) > 2 {
			simplified, ok := simplify.DouglasPeucker(tolerance).Simplify(ls.Clone()).(orb.LineString)
			if ok {
				fc.Append(ridgeFeature(l, simplified, true))
			}
		}
	}
	return fc
}

func ridgeFeature(l Layer, ls orb.LineString, simplified bool) *geojson.Feature {
	f := geojson.NewFeature(ls)
	f.Properties["name"] = l.Name
	f.Properties["color"] = fmt.Sprintf("#%02X%02X%02X", l.Color.R, l.Color.G, l.Color.B)
	f.Properties["columns"] = len(l.Ridge)
	f.Properties["points"] = len(ls)
	f.Properties["length"] = planar.Length(ls)
	f.Properties["simplified"] = simplified
	return f
}

// WriteGeoJSON marshals the collection to path.
func WriteGeoJSON(path string, fc *geojson.FeatureCollection) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling geojson: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing geojson: %w", err)
	}
	return nil
}
