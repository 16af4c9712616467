package rubydoc

import (
	"context"
	"rdoc-scraper/internal/rdoc"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, contents string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contents))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestExtractMethodCallSequences(t *testing.T) {
	doc := loadFixture(t, "core/Array.html")

	method, ok := ExtractMethod(doc, "#each", "#method-i-each", rdoc.InstanceMethod, "Array", rdoc.Core)
	require.True(t, ok)

	expected := rdoc.MethodData{
		Name:        "each",
		FullName:    "Array#each",
		Namespace:   "Array",
		Aliases:     []rdoc.Alias{},
		BlockParams: "ary.each {|item| block }   -&gt; ary\nary.each                    -&gt; an_enumerator",
		Params:      "",
		Visibility:  "public",
		IsSingleton: false,
	}
	diff := cmp.Diff(expected, method, cmp.FilterPath(func(p cmp.Path) bool {
		return p.String() == "HTMLComment"
	}, cmp.Ignore()))
	if diff != "" {
		t.Fatal(diff)
	}
	require.Contains(t, method.HTMLComment, "Calls &lt;em&gt;block&lt;/em&gt; once")
}

func TestExtractMethodNameAndAliases(t *testing.T) {
	doc := loadFixture(t, "core/Array.html")

	method, ok := ExtractMethod(doc, "#length", "#method-i-length", rdoc.InstanceMethod, "Array", rdoc.Core)
	require.True(t, ok)
	require.Equal(t, "length", method.BlockParams)
	require.Equal(t, "()", method.Params)
	require.Equal(t, []rdoc.Alias{{Name: "size"}}, method.Aliases)
}

func TestExtractMethodRemovesSourceCode(t *testing.T) {
	doc := loadFixture(t, "core/Array.html")

	method, ok := ExtractMethod(doc, "::new", "#method-c-new", rdoc.ClassMethod, "Array", rdoc.Core)
	require.True(t, ok)
	require.Equal(t, "new", method.Name)
	require.Equal(t, "Array::new", method.FullName)
	require.True(t, method.IsSingleton)
	require.Equal(t, "new(size=0, obj=nil)\nnew(array) -&gt; new_ary", method.BlockParams)
	require.NotContains(t, method.HTMLComment, "rb_ary_initialize")

	// the document itself must be left intact
	require.Equal(t, 1, doc.Find("#new-source").Length())
}

func TestExtractMethodMissingAnchor(t *testing.T) {
	doc := loadFixture(t, "core/Array.html")

	_, ok := ExtractMethod(doc, "#ghost", "#method-i-ghost", rdoc.InstanceMethod, "Array", rdoc.Core)
	require.False(t, ok)
}

const blankMethodPage = `<html><body>
<a href="#method-i-empty">#empty</a>
<a href="#method-i-legacy">#legacy</a>
<div class="method-detail">
  <a name="method-i-empty"></a>
  <div class="method-heading"><span class="method-name">empty</span><span class="method-args">()</span></div>
  <div class="method-description">
    <div class="method-source-code"><pre>def empty; end</pre></div>
  </div>
</div>
<div class="method-detail">
  <a name="method-i-legacy"></a>
  <div class="method-heading"><span class="method-name">legacy</span><span class="method-args">()</span></div>
  <div class="method-description"><p>YAML::Syck::Node#legacy is kept for compatibility.</p></div>
</div>
</body></html>`

func TestExtractMethodsBlankDescription(t *testing.T) {
	doc := parseDoc(t, blankMethodPage)

	packaged := ExtractMethods(context.Background(), doc, rdoc.InstanceMethod, "Node", rdoc.Package("yaml"))
	require.Len(t, packaged, 0)

	core := ExtractMethods(context.Background(), doc, rdoc.InstanceMethod, "Node", rdoc.Core)
	require.Equal(t, []string{"empty", "legacy"}, methodNames(core))
	require.Equal(t, "empty", core[0].BlockParams)
	require.Equal(t, "()", core[0].Params)
}

func TestExtractMethodPackageFields(t *testing.T) {
	doc := loadFixture(t, "stdlib/libdoc/set/rdoc/Array.html")

	toSet, ok := ExtractMethod(doc, "#to_set", "#method-i-to_set", rdoc.InstanceMethod, "Array", rdoc.Package("set"))
	require.True(t, ok)
	require.Equal(t, "to_set(klass = Set, *args, &amp;block)", toSet.BlockParams)
	require.Equal(t, "", toSet.Params)
	require.True(t, strings.HasPrefix(toSet.HTMLComment, "&lt;p&gt;require &apos;set&apos;&lt;/p&gt;&lt;br /&gt;\n"))

	fromSet, ok := ExtractMethod(doc, "::from_set", "#method-c-from_set", rdoc.ClassMethod, "Array", rdoc.Package("set"))
	require.True(t, ok)
	require.Equal(t, "Array.from_set(set) -&gt; array", fromSet.BlockParams)
	require.Equal(t, "", fromSet.Params)
}

func TestExtractMethodsSingletonByKind(t *testing.T) {
	doc := loadFixture(t, "core/Array.html")

	for _, m := range ExtractMethods(context.Background(), doc, rdoc.ClassMethod, "Array", rdoc.Core) {
		require.True(t, m.IsSingleton, m.Name)
		require.Equal(t, "public", m.Visibility)
	}
	for _, m := range ExtractMethods(context.Background(), doc, rdoc.InstanceMethod, "Array", rdoc.Core) {
		require.False(t, m.IsSingleton, m.Name)
		require.Equal(t, "public", m.Visibility)
	}
}

func TestExtractMethodsSyckRequireNotice(t *testing.T) {
	doc := loadFixture(t, "stdlib/libdoc/syck/rdoc/Syck.html")

	methods := ExtractMethods(context.Background(), doc, rdoc.ClassMethod, "YAML", rdoc.Package("syck"))
	require.Equal(t, []string{"load"}, methodNames(methods))
	require.Contains(t, methods[0].HTMLComment, "require &apos;yaml&apos;")
	require.NotContains(t, methods[0].HTMLComment, "require &apos;syck&apos;")
	require.Equal(t, "load( io )", methods[0].BlockParams)
	require.Equal(t, "YAML::load", methods[0].FullName)
}
