package query

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKeys []string
		want     map[string]string
	}{
		{name: "empty", raw: "", wantKeys: []string{}, want: map[string]string{}},
		{name: "leading question mark", raw: "?tab=settings", wantKeys: []string{"tab"}, want: map[string]string{"tab": "settings"}},
		{name: "multiple", raw: "a=1&b=2", wantKeys: []string{"a", "b"}, want: map[string]string{"a": "1", "b": "2"}},
		{name: "no equals", raw: "flag&x=1", wantKeys: []string{"flag", "x"}, want: map[string]string{"flag": "", "x": "1"}},
		{name: "first equals splits", raw: "expr=a=b", wantKeys: []string{"expr"}, want: map[string]string{"expr": "a=b"}},
		{name: "last wins", raw: "a=1&b=2&a=3", wantKeys: []string{"a", "b"}, want: map[string]string{"a": "3", "b": "2"}},
		{name: "empty pieces skipped", raw: "&&a=1&", wantKeys: []string{"a"}, want: map[string]string{"a": "1"}},
		{name: "percent decoding", raw: "q=hello%20world&k%26=v%3D", wantKeys: []string{"q", "k&"}, want: map[string]string{"q": "hello world", "k&": "v="}},
		{name: "plus is space", raw: "q=a+b", wantKeys: []string{"q"}, want: map[string]string{"q": "a b"}},
		{name: "bad escape kept", raw: "q=100%", wantKeys: []string{"q"}, want: map[string]string{"q": "100%"}},
		{name: "booleans stay strings", raw: "share=false", wantKeys: []string{"share"}, want: map[string]string{"share": "false"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Parse(tt.raw)
			assert.Equal(t, tt.wantKeys, append([]string{}, m.Keys()...))
			assert.Equal(t, tt.want, m.ToMap())
		})
	}
}

func TestEncode(t *testing.T) {
	m := New("tab", "settings", "q", "a b&c", "empty", "")
	assert.Equal(t, "tab=settings&q=a+b%26c&empty=", m.Encode())
	assert.Equal(t, "", Map{}.Encode())
}

func TestBool(t *testing.T) {
	m := Parse("share=true&draft=false&on=1")
	assert.True(t, m.Bool("share"))
	assert.False(t, m.Bool("draft"))
	assert.False(t, m.Bool("on"))
	assert.False(t, m.Bool("missing"))
}

func TestSetKeepsPosition(t *testing.T) {
	var m Map
	m.Set("a", "1")
	m.Set("b", "2")
	m.Set("a", "3")
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	assert.Equal(t, "3", m.Get("a"))
}

func TestDel(t *testing.T) {
	m := New("a", "1", "b", "2", "c", "3")
	m.Del("b")
	m.Del("missing")
	assert.Equal(t, []string{"a", "c"}, m.Keys())
	_, ok := m.Lookup("b")
	assert.False(t, ok)
}

func TestEqualAndClone(t *testing.T) {
	a := New("x", "1", "y", "2")
	b := a.Clone()
	require.True(t, a.Equal(b))

	b.Set("y", "3")
	assert.False(t, a.Equal(b))
	assert.Equal(t, "2", a.Get("y"), "clone must not alias the original")

	assert.False(t, New("x", "1", "y", "2").Equal(New("y", "2", "x", "1")), "order matters")
	assert.True(t, Map{}.Equal(Parse("")))
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal(New("b", "2", "a", "1"))
	require.NoError(t, err)
	assert.Equal(t, `{"b":"2","a":"1"}`, string(data))

	data, err = json.Marshal(Map{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestEncodeParseRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("Parse(Encode(m)) == m", prop.ForAll(
		func(keys []string, values []string) bool {
			var m Map
			for i, k := range keys {
				v := ""
				if i < len(values) {
					v = values[i]
				}
				m.Set(k, v)
			}
			return Parse(m.Encode()).Equal(m)
		},
		gen.SliceOf(gen.AnyString().SuchThat(func(s string) bool { return s != "" })),
		gen.SliceOf(gen.AnyString()),
	))

	properties.TestingRun(t)
}
