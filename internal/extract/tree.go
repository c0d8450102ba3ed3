package extract

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyDocument is returned when a document has no root element
var ErrEmptyDocument = errors.New("document has no root element")

// Node is an element of a parsed XML document
type Node struct {
	Name     xml.Name
	Attr     []xml.Attr
	Text     string // Character data directly inside the element
	Parent   *Node
	Children []*Node
}

// ParseTree parses an XML document into a Node tree and returns its root
func ParseTree(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	var root, cur *Node
	var text strings.Builder

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if cur != nil {
				cur.Text += text.String()
			}
			text.Reset()

			n := &Node{
				Name:   t.Name,
				Attr:   append([]xml.Attr(nil), t.Attr...),
				Parent: cur,
			}
			if cur == nil {
				if root != nil {
					return nil, fmt.Errorf("decode xml: multiple root elements")
				}
				root = n
			} else {
				cur.Children = append(cur.Children, n)
			}
			cur = n

		case xml.EndElement:
			if cur == nil {
				return nil, fmt.Errorf("decode xml: unexpected end element %s", t.Name.Local)
			}
			cur.Text += text.String()
			text.Reset()
			cur = cur.Parent

		case xml.CharData:
			if cur != nil {
				text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, ErrEmptyDocument
	}
	return root, nil
}

// AttrValue returns the value of the attribute with the given local name
func (n *Node) AttrValue(local string) string {
	for _, a := range n.Attr {
		if a.Name.Local == local && a.Name.Space == "" {
			return a.Value
		}
	}
	return ""
}

// DefaultNamespace returns the default namespace declared on n, if any
func (n *Node) DefaultNamespace() string {
	for _, a := range n.Attr {
		if a.Name.Space == "" && a.Name.Local == "xmlns" {
			return a.Value
		}
	}
	return n.Name.Space
}

// Child returns the first direct child with the given name
func (n *Node) Child(name xml.Name) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all direct children with the given name
func (n *Node) ChildrenNamed(name xml.Name) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// FindAll returns every descendant of n (n excluded) matching predicate,
// in document order
func (n *Node) FindAll(predicate func(*Node) bool) []*Node {
	var results []*Node

	var walk func(*Node)
	walk = func(node *Node) {
		for _, c := range node.Children {
			if predicate(c) {
				results = append(results, c)
			}
			walk(c)
		}
	}

	walk(n)
	return results
}

// FindFirst returns the first descendant of n matching predicate, or nil
func (n *Node) FindFirst(predicate func(*Node) bool) *Node {
	var result *Node

	var walk func(*Node) bool
	walk = func(node *Node) bool {
		for _, c := range node.Children {
			if predicate(c) {
				result = c
				return true
			}
			if walk(c) {
				return true
			}
		}
		return false
	}

	walk(n)
	return result
}

// Named returns a predicate matching elements with the given name
func Named(name xml.Name) func(*Node) bool {
	return func(n *Node) bool {
		return n.Name == name
	}
}
