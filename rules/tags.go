package rules

var voidTags = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"keygen": true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// markup attribute name => framework prop name
var attributeMapping = map[string]string{
	"class":       "className",
	"for":         "htmlFor",
	"crossorigin": "crossOrigin",
	"srclang":     "srcLang",
	"accesskey":   "accessKey",
}

// IsVoid tells if a lower case tag name can not have children
func IsVoid(tagName string) bool {
	return voidTags[tagName]
}

// PropName maps an attribute name to its prop name, unknown names pass unchanged
func PropName(attributeName string) string {
	if propName, ok := attributeMapping[attributeName]; ok {
		return propName
	}
	return attributeName
}
