package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestEncodeCases_RoundTrip(t *testing.T) {
	groups := loadTestCases(t)

	out, err := EncodeCases(groups)
	require.NoError(t, err)
	assert.True(t, gjson.ValidBytes(out))
	assert.Equal(t, int64(5), gjson.GetBytes(out, "0.data.1.N").Int())

	parsed, err := ParseCases(out)
	require.NoError(t, err)
	assert.Equal(t, groups, parsed)
}

func TestEncodeCases_Empty(t *testing.T) {
	out, err := EncodeCases(nil)
	require.NoError(t, err)
	groups, err := ParseCases(out)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestFailedGroupsFromDB_Export(t *testing.T) {
	d := openTestDB(t)
	s, err := NewRunner(OrderSizeColor, 1, quietLogger()).Run(context.Background(), loadTestCases(t))
	require.NoError(t, err)
	id, err := RecordSummary(d, "testdata/cases.json", s)
	require.NoError(t, err)

	failed, order, err := FailedGroupsFromDB(d, id)
	require.NoError(t, err)
	assert.Equal(t, OrderSizeColor, order)
	require.Len(t, failed, 2)
	assert.Empty(t, failed[0].Cases)
	require.Len(t, failed[1].Cases, 1)
	assert.Equal(t, [2]int{3, 4}, failed[1].Cases[0].LargestSegment)

	out, err := EncodeCases(failed)
	require.NoError(t, err)
	reparsed, err := ParseCases(out)
	require.NoError(t, err)
	// The empty first group survives the export.
	require.Len(t, reparsed, 2)
	assert.Empty(t, reparsed[0].Cases)
}
