package vo

// Props of an element, the reserved "key" entry identifies siblings
type Props map[string]interface{}

// PropKey is the reserved prop for list reconciliation identity
const PropKey = "key"

// Copy returns a shallow copy, a nil Props yields an empty map
func (p Props) Copy() Props {
	c := make(Props, len(p)+1)
	for name, value := range p {
		c[name] = value
	}
	return c
}

// Element is the descriptor emitted for every converted markup element.
// Children holds *Element, string or nil (a dropped child kept as a gap).
// Children is nil for terminal elements, they were created without children
// and marshal to null, an empty element marshals to [].
type Element struct {
	Type     string        `json:"type"`
	Props    Props         `json:"props"`
	Children []interface{} `json:"children"`
}

// NewElement is the default element construction primitive
func NewElement(elementType string, props Props, children []interface{}) interface{} {
	return &Element{
		Type:     elementType,
		Props:    props,
		Children: children,
	}
}

// Terminal elements have no descendants
func (e *Element) Terminal() bool {
	return e.Children == nil
}

// Key of the element
func (e *Element) Key() string {
	key, _ := e.Props[PropKey].(string)
	return key
}
