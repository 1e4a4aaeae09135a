package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ProfitManager-api/pkg/textutil"
)

func ptr(s string) *string { return &s }

func TestBlankToNil(t *testing.T) {
	assert.Nil(t, textutil.BlankToNil(nil))
	assert.Nil(t, textutil.BlankToNil(ptr("")))
	assert.Nil(t, textutil.BlankToNil(ptr("   \t\n")))

	got := textutil.BlankToNil(ptr("  a1 "))
	require.NotNil(t, got)
	assert.Equal(t, "a1", *got)
}

func TestClean_NormalizaNFC(t *testing.T) {
	combinado := "Ana Pe\u0301rez"
	assert.Equal(t, "Ana P\u00e9rez", textutil.Clean("  "+combinado+" "))
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "Natural", textutil.OrDefault(nil, "Natural"))
	assert.Equal(t, "Natural", textutil.OrDefault(ptr("  "), "Natural"))
	assert.Equal(t, "Juridica", textutil.OrDefault(ptr(" Juridica "), "Natural"))
}
