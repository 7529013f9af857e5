/*
 * SPDX-FileCopyrightText: © HTMIndex authors
 * SPDX-License-Identifier: Apache-2.0
 */

// Package cover implements the console harness: it covers a single region
// given on the command line and writes the resulting ranges as tab-separated
// lo/hi/full rows to standard output.
package cover

import (
	"bufio"
	"fmt"
	"iter"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/golang/geo/s2"
	"github.com/golang/glog"
	geojson "github.com/paulmach/go.geojson"
	"github.com/spf13/cobra"
	"github.com/twpayne/go-geom"
	geomjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/dkondor/HTMIndex/htm"
	"github.com/dkondor/HTMIndex/index"
	"github.com/dkondor/HTMIndex/region"
	"github.com/dkondor/HTMIndex/sphere"
	"github.com/dkondor/HTMIndex/x"
)

// Cover is the sub-command invoked when running "htmindex cover".
var Cover x.SubCommand

func init() {
	Cover.Cmd = &cobra.Command{
		Use:   "cover",
		Short: "Cover a region with HTM trixel ranges",
		Long: `
Cover reads a polygonal region as WKT or GeoJSON, indexes it and prints one
"lo<TAB>hi<TAB>full" row per trixel of the covering, with lo and hi at the
deepest mesh level.`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
	Cover.EnvPrefix = "HTMINDEX_COVER"

	flags := Cover.Cmd.Flags()
	flags.StringP("query", "q", "", "Region to cover, as WKT or GeoJSON.")
	flags.IntP("max-level", "m", 20, "Deepest level to refine trixels to.")
	flags.IntP("seed-level", "s", index.DefaultSeedLevel,
		"Level of the initial cover; 0 or more than 16 falls back to 10.")
	flags.IntP("level-skip", "k", index.DefaultLevelSkip,
		"Levels descended per subdivision step (1, 2 or 3).")
	flags.Float64P("epsilon", "e", index.DefaultEpsilon,
		"Shrink factor applied to the containment probe.")
	flags.String("seed-mode", "hull",
		"How to bound the region before refining: hull, host-hull, cap or globe.")
	flags.Bool("seed-only", false, "Only emit the seed cover, without refinement.")
	flags.String("chull-dump", "", "Write the convex hull as GeoJSON to this file.")
}

func run() {
	query := Cover.GetString("query")
	if query == "" {
		x.Fatalf("no region given; use --query")
	}
	g := parseQuery(query)
	pts, err := region.Vertices(g)
	x.Check(err)

	if path := Cover.GetString("chull-dump"); path != "" {
		dumpHull(pts, path)
	}

	seed := seedTrixels(g, pts)
	var rows iter.Seq[index.Row]
	if Cover.GetBool("seed-only") {
		rows = index.RangesOf(seed)
	} else {
		r, err := region.FromGeom(g)
		x.Check(err)
		records, err := index.Evaluate(r, seed, index.Options{
			MaxLevel:  Cover.GetInt("max-level"),
			SeedLevel: Cover.GetInt("seed-level"),
			LevelSkip: Cover.GetInt("level-skip"),
			Epsilon:   Cover.GetFloat64("epsilon"),
		})
		x.Check(err)
		rows = index.Normalize(records)
	}

	w := bufio.NewWriter(os.Stdout)
	defer func() { x.Check(w.Flush()) }()
	var count int64
	for row := range rows {
		_, err := fmt.Fprintf(w, "%d\t%d\t%t\n", row.Lo, row.Hi, row.Full)
		x.Check(err)
		count++
	}
	glog.Infof("emitted %s rows", humanize.Comma(count))
}

func parseQuery(query string) geom.T {
	g, err := wkt.Unmarshal(query)
	if err == nil {
		return g
	}
	var gj geom.T
	if jerr := geomjson.Unmarshal([]byte(query), &gj); jerr != nil {
		x.Fatalf("query is neither WKT (%v) nor GeoJSON (%v)", err, jerr)
	}
	return gj
}

func seedTrixels(g geom.T, pts []s2.Point) []htm.ID {
	mode := Cover.GetString("seed-mode")
	if mode == "globe" {
		return index.SeedGlobe()
	}

	var cv *sphere.Convex
	var err error
	switch mode {
	case "hull":
		cv, err = index.SeedFromVertices(pts)
	case "host-hull":
		cv, err = index.SeedFromHullGeometry(g)
	case "cap":
		var center s2.Point
		var radius float64
		center, radius, err = sphere.BoundingCap(pts)
		if err == nil {
			cv = index.SeedFromEnvelope(center, radius)
		}
	default:
		x.Fatalf("unknown seed mode %q", mode)
	}
	x.Checkf(err, "seeding region in mode %q", mode)
	return index.SeedCover(cv, Cover.GetInt("seed-level"))
}

func dumpHull(pts []s2.Point, path string) {
	hull, err := sphere.HullVertices(pts)
	x.Checkf(err, "dumping convex hull")
	ring := make([][]float64, 0, len(hull)+1)
	for _, p := range hull {
		ring = append(ring, []float64{region.RA(p), region.Dec(p)})
	}
	ring = append(ring, ring[0])
	f := geojson.NewPolygonFeature([][][]float64{ring})
	data, err := f.MarshalJSON()
	x.Check(err)
	x.Checkf(os.WriteFile(path, data, 0644), "writing %s", path)
}
