package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name           string
		companyCode    string
		deviceTypeCode string
		existing       []string
		expected       string
	}{
		{
			name:           "First Number For Pair",
			companyCode:    "WWP",
			deviceTypeCode: "02",
			existing:       nil,
			expected:       "WWP-02/0001",
		},
		{
			name:           "Continues From Highest Sequence",
			companyCode:    "WWP",
			deviceTypeCode: "02",
			existing:       []string{"WWP-02/0001", "WWP-02/0022", "WWP-01/0099"},
			expected:       "WWP-02/0023",
		},
		{
			name:           "Ignores Non Conforming Legacy Numbers",
			companyCode:    "WWP",
			deviceTypeCode: "02",
			existing:       []string{"OLD-TAG-7", "WWP-02/0003", "WWP-02-0100"},
			expected:       "WWP-02/0004",
		},
		{
			name:           "Sequence Grows Past Four Digits",
			companyCode:    "ACM",
			deviceTypeCode: "01",
			existing:       []string{"ACM-01/9999"},
			expected:       "ACM-01/10000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := Generate(tt.companyCode, tt.deviceTypeCode, tt.existing)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestNextSequence(t *testing.T) {
	existing := []string{"WWP-02/0001", "WWP-02/0022", "WWP-01/0099"}

	assert.Equal(t, 23, NextSequence("WWP", "02", existing))
	assert.Equal(t, 100, NextSequence("WWP", "01", existing))
	assert.Equal(t, 1, NextSequence("WWP", "03", existing))
}

func TestPatternAnchorsLiteralCodes(t *testing.T) {
	pattern := Pattern("WWP", "02")

	assert.True(t, pattern.MatchString("WWP-02/0005"))
	assert.False(t, pattern.MatchString("XWWP-02/0005"))
	assert.False(t, pattern.MatchString("WWP-02/0005-extra"))
	assert.False(t, pattern.MatchString("WWP-020/005"))
}
