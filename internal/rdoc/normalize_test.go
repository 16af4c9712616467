package rdoc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "", expected: ""},
		{input: "plain text", expected: "plain text"},
		{input: "<p>a & b</p>", expected: "&lt;p&gt;a &amp; b&lt;/p&gt;"},
		{input: "a &lt; b", expected: "a &lt; b"},
		{input: "<code>a &lt;=&gt; b</code>", expected: "&lt;code&gt;a &lt;=&amp;gt; b&lt;/code&gt;"},
		{input: `say "hi" 'there'`, expected: "say &quot;hi&quot; &apos;there&apos;"},
		{input: "<p>Syck::Stream</p>", expected: "&lt;p&gt;YAML::Stream&lt;/p&gt;"},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, Normalize(test.input), test.input)
	}
}

func TestNormalizeDoesNotDoubleEscapeLt(t *testing.T) {
	out := Normalize("x &lt; y &lt; z")
	require.Equal(t, "x &lt; y &lt; z", out)
	require.NotContains(t, out, "&amp;lt;")
}

func TestRenameLegacy(t *testing.T) {
	require.Equal(t, "YAML", RenameLegacy("Syck"))
	require.Equal(t, "YAML::YAML", RenameLegacy("YAML::Syck"))
	require.Equal(t, "YAML::Store YAML", RenameLegacy("Syck::Store Syck"))
	require.Equal(t, "Psych", RenameLegacy("Psych"))
}

func TestConvertCall(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "ary.each {|item| block } → ary", expected: "ary.each {|item| block } -> ary"},
		{input: "  str.length → integer\n", expected: "str.length -> integer"},
		{input: "a → b → c", expected: "a -> b -> c"},
		{input: "str.center(width) → new_str — padded", expected: "str.center(width) -> new_str — padded"},
		{input: "Array.new(size=0, obj=nil)", expected: "Array.new(size=0, obj=nil)"},
	}

	for _, test := range testCases {
		out := ConvertCall(test.input)
		require.Equal(t, test.expected, out)
		require.NotContains(t, out, "%")
	}
}

func TestRequireNotice(t *testing.T) {
	require.Equal(t, "", RequireNotice(Core))
	require.Equal(t, "<p>require 'set'</p><br />\n", RequireNotice(Package("set")))
	require.Equal(t, "<p>require 'yaml'</p><br />\n", RequireNotice(Package("syck")))
}

func TestMethodKind(t *testing.T) {
	require.Equal(t, "method-i", InstanceMethod.AnchorPrefix())
	require.Equal(t, "method-c", ClassMethod.AnchorPrefix())
	require.Equal(t, "instance", InstanceMethod.String())
	require.Equal(t, "class", ClassMethod.String())
}

func TestNewNodeDataHasEmptyLists(t *testing.T) {
	node := NewNodeData()
	require.NotNil(t, node.Attributes)
	require.NotNil(t, node.Constants)
	require.NotNil(t, node.Includes)
	require.Len(t, node.Methods(InstanceMethod), 0)
	require.Len(t, node.Methods(ClassMethod), 0)
}

func TestEscapeText(t *testing.T) {
	require.Equal(t, "A &amp;lt; &lt;B&gt; &quot;Syck&quot; &apos;", EscapeText(`A &lt; <B> "Syck" '`))
}
