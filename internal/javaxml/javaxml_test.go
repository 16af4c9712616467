package javaxml

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"rdoc-scraper/internal/rdoc"
	"testing"

	"github.com/stretchr/testify/require"
)

type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []xmlNode  `xml:",any"`
	Text     string     `xml:",chardata"`
}

func (n xmlNode) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// property returns the value element of the bean property with the given name.
func (n xmlNode) property(t *testing.T, name string) xmlNode {
	for _, c := range n.Children {
		if c.XMLName.Local == "void" && c.attr("property") == name {
			require.Len(t, c.Children, 1, name)
			return c.Children[0]
		}
	}
	t.Fatalf("property %s not found", name)
	return xmlNode{}
}

func sampleNode() rdoc.NodeData {
	node := rdoc.NewNodeData()
	node.Name = "YAML::Stream"
	node.FullName = "YAML::Stream"
	node.Namespace = "YAML"
	node.HTMLComment = rdoc.Normalize("<p>A stream of &lt;documents&gt;</p>")
	node.InstanceMethods = []rdoc.MethodData{{
		Name:        "emit",
		FullName:    "YAML::Stream#emit",
		Namespace:   "YAML::Stream",
		HTMLComment: rdoc.Normalize("<p>require 'yaml'</p><br />\n<p>Emits.</p>"),
		Aliases:     []rdoc.Alias{{Name: "dump"}},
		BlockParams: rdoc.Normalize(rdoc.ConvertCall("stream.emit(io = nil) → string")),
		Params:      "",
		Visibility:  "public",
	}}
	node.ClassMethods = []rdoc.MethodData{{
		Name:        "new",
		FullName:    "YAML::Stream::new",
		Namespace:   "YAML::Stream",
		Aliases:     []rdoc.Alias{},
		Visibility:  "public",
		IsSingleton: true,
	}}
	return node
}

func render(t *testing.T, node rdoc.NodeData) xmlNode {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	err = renderer.Render(&buf, node)
	if err != nil {
		t.Fatal(err)
	}

	var root xmlNode
	err = xml.Unmarshal(buf.Bytes(), &root)
	if err != nil {
		t.Fatal(err, buf.String())
	}
	return root
}

func TestRender(t *testing.T) {
	root := render(t, sampleNode())
	require.Equal(t, "java", root.XMLName.Local)
	require.Len(t, root.Children, 1)

	class := root.Children[0]
	require.Equal(t, "org.jedit.ruby.ri.ClassDescription", class.attr("class"))
	require.Equal(t, "YAML::Stream", class.property(t, "name").Text)
	require.Equal(t, "YAML::Stream", class.property(t, "fullName").Text)
	require.Equal(t, "YAML", class.property(t, "namespace").Text)
	require.Equal(t, "", class.property(t, "superclass").Text)
	// already escaped entities decode once, raw markup decodes back to itself
	require.Equal(t, "<p>A stream of <documents&gt;</p>", class.property(t, "comment").Text)

	for _, empty := range []string{"attributes", "constants", "includes"} {
		list := class.property(t, empty)
		require.Equal(t, "java.util.ArrayList", list.attr("class"))
		require.Len(t, list.Children, 0)
	}

	instanceMethods := class.property(t, "instanceMethods").Children
	require.Len(t, instanceMethods, 1)
	emit := instanceMethods[0].Children[0]
	require.Equal(t, "org.jedit.ruby.ri.MethodDescription", emit.attr("class"))
	require.Equal(t, "emit", emit.property(t, "name").Text)
	require.Equal(t, "YAML::Stream#emit", emit.property(t, "fullName").Text)
	require.Equal(t, "stream.emit(io = nil) -> string", emit.property(t, "blockParameters").Text)
	require.Equal(t, "<p>require 'yaml'</p><br />\n<p>Emits.</p>", emit.property(t, "comment").Text)
	require.Equal(t, "false", emit.property(t, "isSingleton").Text)
	require.Equal(t, "false", emit.property(t, "isClassMethod").Text)
	require.Equal(t, "public", emit.property(t, "visibility").Text)

	aliases := emit.property(t, "aliases").Children
	require.Len(t, aliases, 1)
	require.Equal(t, "dump", aliases[0].Children[0].Text)

	classMethods := class.property(t, "classMethods").Children
	require.Len(t, classMethods, 1)
	newMethod := classMethods[0].Children[0]
	require.Equal(t, "true", newMethod.property(t, "isSingleton").Text)
	require.Equal(t, "true", newMethod.property(t, "isClassMethod").Text)
}

func TestWriterWritesAndOverwrites(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	writer := NewWriter(renderer, dir, "1.9.3")

	node := sampleNode()
	path, err := writer.Write(node)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "1.9.3", "YAML::Stream", "YAML::Stream.xml"), path)

	first, err := os.ReadFile(path)
	require.NoError(t, err)

	node.InstanceMethods = nil
	_, err = writer.Write(node)
	require.NoError(t, err)

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Less(t, len(second), len(first))
	require.NotContains(t, string(second), "emit")
}

func TestWriteAll(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	writer := NewWriter(renderer, t.TempDir(), "1.9.3")

	array := rdoc.NewNodeData()
	array.Name = "Array"
	paths, err := writer.WriteAll([]rdoc.NodeData{sampleNode(), array})
	require.NoError(t, err)
	require.Len(t, paths, 2)
	for _, p := range paths {
		_, err := os.Stat(p)
		require.NoError(t, err)
	}
}

func TestNewRendererFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.tmpl")
	err := os.WriteFile(path, []byte(`{{.Name}}:{{len .InstanceMethods}}`), 0600)
	require.NoError(t, err)

	renderer, err := NewRendererFromFile(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(&buf, sampleNode()))
	require.Equal(t, "YAML::Stream:1", buf.String())
}

func TestRenderEscapesNamespace(t *testing.T) {
	node := sampleNode()
	node.Namespace = "Net::HTTP & <Friends>"

	class := render(t, node).Children[0]
	require.Equal(t, "Net::HTTP & <Friends>", class.property(t, "namespace").Text)
}
