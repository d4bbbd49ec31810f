package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NewProduction_EpsilonNormalization(t *testing.T) {
	testCases := []struct {
		name string
		body []Symbol
		want []Symbol
	}{
		{name: "no epsilon", body: []Symbol{"a", "b"}, want: []Symbol{"a", "b"}},
		{name: "sole epsilon", body: []Symbol{Epsilon}, want: []Symbol{Epsilon}},
		{name: "epsilon mixed with symbols is stripped", body: []Symbol{"a", Epsilon, "b"}, want: []Symbol{"a", "b"}},
		{name: "empty body normalizes like a sole epsilon", body: nil, want: []Symbol{Epsilon}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			p := NewProduction("A", tc.body)
			assert.Equal(tc.want, p.Body)
		})
	}
}

func Test_Production_IsEpsilon(t *testing.T) {
	assert := assert.New(t)
	assert.True(NewProduction("A", []Symbol{Epsilon}).IsEpsilon())
	assert.False(NewProduction("A", []Symbol{"a"}).IsEpsilon())
}

func Test_Production_Equal(t *testing.T) {
	assert := assert.New(t)
	a := NewProduction("A", []Symbol{"a", "b"})
	b := NewProduction("A", []Symbol{"a", "b"})
	c := NewProduction("A", []Symbol{"a"})
	d := NewProduction("B", []Symbol{"a", "b"})

	assert.True(a.Equal(b))
	assert.False(a.Equal(c))
	assert.False(a.Equal(d))
}

func Test_Production_String(t *testing.T) {
	assert := assert.New(t)
	p := NewProduction("E", []Symbol{"E", "+", "T"})
	assert.Equal("E -> E + T", p.String())
}
