package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jengzang/ridetiles/internal/middleware"
	"github.com/jengzang/ridetiles/internal/spatial"
	"github.com/jengzang/ridetiles/internal/tiles"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tilectl",
		Short:         "Offline tile coverage tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAnalyzeCmd(), newCellCmd(), newTokenCmd())
	return root
}

func newAnalyzeCmd() *cobra.Command {
	opts := tiles.DefaultOptions()
	var input string
	var asGeoJSON bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyse LineString tracks from a GeoJSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if input != "" && input != "-" {
				f, err := os.Open(input)
				if err != nil {
					return errors.Wrap(err, "failed to open input")
				}
				defer f.Close()
				r = f
			}

			tracks, err := readTracks(r)
			if err != nil {
				return err
			}
			report, err := tiles.Analyze(tracks, opts)
			if err != nil {
				return err
			}

			if asGeoJSON {
				return writeJSON(cmd.OutOrStdout(), tiles.ReportGeoJSON(report))
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", "-", "GeoJSON FeatureCollection of tracks, - for stdin")
	f.IntVar(&opts.Zoom, "zoom", opts.Zoom, "tile zoom level")
	f.IntVar(&opts.TopK, "k", opts.TopK, "number of disjoint squares")
	f.IntVar(&opts.Depth, "depth", opts.Depth, "planning depth")
	f.Float64Var(&opts.GapThresholdMeters, "gap", opts.GapThresholdMeters, "gap fill threshold in meters")
	f.Float64Var(&opts.StepMeters, "step", opts.StepMeters, "gap fill step in meters")
	f.BoolVar(&asGeoJSON, "geojson", false, "print a GeoJSON FeatureCollection instead of the report")
	return cmd
}

func newCellCmd() *cobra.Command {
	var lat, lon float64
	zoom := tiles.DefaultZoom

	cmd := &cobra.Command{
		Use:   "cell",
		Short: "Print the cell containing a coordinate",
		RunE: func(cmd *cobra.Command, args []string) error {
			cell, err := tiles.CellOf(lat, lon, zoom)
			if err != nil {
				return err
			}
			b := cell.Bound(zoom)
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"zoom":     zoom,
				"cell":     cell,
				"min_lat":  b.Min.Lat(),
				"max_lat":  b.Max.Lat(),
				"min_lon":  b.Min.Lon(),
				"max_lon":  b.Max.Lon(),
				"area_km2": tiles.CellArea(cell, zoom),
			})
		},
	}

	f := cmd.Flags()
	f.Float64Var(&lat, "lat", 0, "latitude in degrees")
	f.Float64Var(&lon, "lon", 0, "longitude in degrees")
	f.IntVar(&zoom, "zoom", zoom, "tile zoom level")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var user string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an admin bearer token signed with JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := os.Getenv("JWT_SECRET")
			if secret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			token, err := middleware.IssueToken(secret, user, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&user, "user", "admin", "username claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}

// readTracks extracts every LineString and MultiLineString part as a track.
// Other geometries are ignored.
func readTracks(r io.Reader) ([][]spatial.Point, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read input")
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse GeoJSON")
	}

	var tracks [][]spatial.Point
	for _, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.LineString:
			tracks = append(tracks, lineToPoints(g))
		case orb.MultiLineString:
			for _, ls := range g {
				tracks = append(tracks, lineToPoints(ls))
			}
		}
	}
	return tracks, nil
}

func lineToPoints(ls orb.LineString) []spatial.Point {
	pts := make([]spatial.Point, len(ls))
	for i, p := range ls {
		pts[i] = spatial.Point{Lat: p.Lat(), Lon: p.Lon()}
	}
	return pts
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
