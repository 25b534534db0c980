package asset_test

import (
	"testing"

	"github.com/sextant-data/sextant/core/asset"
	"github.com/stretchr/testify/assert"
)

func TestBuildFilter(t *testing.T) {
	type testCase struct {
		Description string
		SourceList  string
		Expected    asset.Filter
		ExpectErr   bool
	}

	var testCases = []testCase{
		{
			Description: "should return zero filter for empty list",
			SourceList:  "",
			Expected:    asset.Filter{},
		},
		{
			Description: "should parse a comma separated list case-insensitively",
			SourceList:  "hive, SNOWFLAKE",
			Expected:    asset.Filter{Sources: []asset.Source{asset.SourceHive, asset.SourceSnowflake}},
		},
		{
			Description: "should skip empty segments",
			SourceList:  "ADLS,,",
			Expected:    asset.Filter{Sources: []asset.Source{asset.SourceADLS}},
		},
		{
			Description: "should error on an unknown source",
			SourceList:  "Hive,Teradata",
			ExpectErr:   true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Description, func(t *testing.T) {
			flt, err := asset.BuildFilter(tc.SourceList)
			if tc.ExpectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.Expected, flt)
		})
	}
}

func TestFilter_Wants(t *testing.T) {
	type testCase struct {
		Description    string
		Filter         asset.Filter
		WantsFlatFile  bool
		WantsWarehouse bool
	}

	var testCases = []testCase{
		{
			Description:    "empty filter selects flat-file sources only",
			Filter:         asset.Filter{},
			WantsFlatFile:  true,
			WantsWarehouse: false,
		},
		{
			Description:    "warehouse must be selected explicitly",
			Filter:         asset.Filter{Sources: []asset.Source{asset.SourceSnowflake}},
			WantsFlatFile:  false,
			WantsWarehouse: true,
		},
		{
			Description:    "mixed selection reads both stores",
			Filter:         asset.Filter{Sources: []asset.Source{asset.SourceHive, asset.SourceSnowflake}},
			WantsFlatFile:  true,
			WantsWarehouse: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Description, func(t *testing.T) {
			assert.Equal(t, tc.WantsFlatFile, tc.Filter.WantsFlatFile())
			assert.Equal(t, tc.WantsWarehouse, tc.Filter.WantsWarehouse())
		})
	}
}

func TestFilter_Matches(t *testing.T) {
	empty := asset.Filter{}
	assert.True(t, empty.Matches(asset.SourceHive))
	assert.True(t, empty.Matches(asset.SourceADLS))

	hiveOnly := asset.Filter{Sources: []asset.Source{asset.SourceHive}}
	assert.True(t, hiveOnly.Matches(asset.SourceHive))
	assert.False(t, hiveOnly.Matches(asset.SourceADLS))
}
