package persist_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/gridmap/persist"
)

func TestFlexIntTolerance(t *testing.T) {
	cases := []struct {
		in   string
		want persist.FlexInt
	}{
		{`7`, 7},
		{`"7"`, 7},
		{`7.9`, 7},
		{`null`, 0},
		{`"ten"`, 0},
		{`[1]`, 0},
	}
	for _, c := range cases {
		var got persist.FlexInt
		require.NoError(t, json.Unmarshal([]byte(c.in), &got), "input %s", c.in)
		assert.Equal(t, c.want, got, "input %s", c.in)
	}
}

func TestPositionTolerance(t *testing.T) {
	var p persist.Position
	require.NoError(t, json.Unmarshal([]byte(`[80, 180]`), &p))
	assert.Equal(t, persist.Position{X: 80, Y: 180}, p)

	for _, bad := range []string{`null`, `"80,180"`, `[80]`, `{}`} {
		p = persist.Position{X: 1, Y: 2}
		require.NoError(t, json.Unmarshal([]byte(bad), &p), "input %s", bad)
		assert.Equal(t, persist.Position{}, p, "input %s", bad)
	}
}

func TestDocumentDecodesLegacyFile(t *testing.T) {
	// A file in the shape older builds wrote: string limit, missing
	// show_grid, extra unknown keys.
	raw := `{
	  "version": 1,
	  "grid": {"cell_size": "25", "draw_distance": 30},
	  "objects": [
	    {"spec": {"name": "R4", "size_w": 3, "size_h": 3, "fill": "#ffd3d3d3",
	      "limit": "10", "limit_key": "R4", "template_id": "abc"},
	     "pos": [100.0, 250.0]}
	  ],
	  "zone_counter": 4,
	  "cells": 1000,
	  "unknown_key": true
	}`

	var doc persist.Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, persist.FlexInt(25), doc.Grid.CellSize)
	assert.Nil(t, doc.Grid.ShowGrid)
	require.Len(t, doc.Objects, 1)
	assert.Equal(t, persist.FlexInt(10), doc.Objects[0].Spec.Limit)
	assert.Equal(t, persist.Position{X: 100, Y: 250}, doc.Objects[0].Pos)

	st := persist.Restore(&doc)
	assert.Equal(t, 25, st.Scene.Grid().CellSize)
	assert.True(t, st.Scene.ShowGrid())
	assert.Equal(t, 4, st.Scene.ZoneDraw().ZoneCounter())
	var limit int
	for o := range st.Scene.Registry().Objects() {
		limit = o.Spec.Limit
	}
	assert.Equal(t, 10, limit)
}
