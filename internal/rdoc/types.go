// Package rdoc holds the records scraped from rdoc generated html and the text
// normalization rules every scraped field goes through.
package rdoc

// MethodKind is the kind of method an anchor refers to.
type MethodKind int

const (
	InstanceMethod MethodKind = iota
	ClassMethod
)

// AnchorPrefix is the prefix rdoc gives to the anchor ids of methods of this kind,
// ex. "method-i" for "#method-i-each".
func (k MethodKind) AnchorPrefix() string {
	if k == ClassMethod {
		return "method-c"
	}
	return "method-i"
}

func (k MethodKind) String() string {
	if k == ClassMethod {
		return "class"
	}
	return "instance"
}

// Package is the label of the library whose documentation is being scraped.
// The zero value stands for the pages of the core library.
type Package string

const Core Package = ""

func (p Package) IsCore() bool {
	return p == Core
}

type Alias struct {
	Name string
}

type MethodData struct {
	Name        string
	FullName    string
	Namespace   string
	HTMLComment string
	Aliases     []Alias
	BlockParams string
	Params      string
	Visibility  string
	IsSingleton bool
}

// NodeData is a single class or module.
//
// Superclass, Attributes, Constants and Includes are never scraped, they exist
// so the rendered document carries the (empty) properties its reader expects.
type NodeData struct {
	Name            string
	FullName        string
	Namespace       string
	Superclass      string
	HTMLComment     string
	InstanceMethods []MethodData
	ClassMethods    []MethodData
	Attributes      []string
	Constants       []string
	Includes        []string
}

func NewNodeData() NodeData {
	return NodeData{
		InstanceMethods: []MethodData{},
		ClassMethods:    []MethodData{},
		Attributes:      []string{},
		Constants:       []string{},
		Includes:        []string{},
	}
}

// Methods returns the method list of the given kind.
func (n NodeData) Methods(kind MethodKind) []MethodData {
	if kind == ClassMethod {
		return n.ClassMethods
	}
	return n.InstanceMethods
}
