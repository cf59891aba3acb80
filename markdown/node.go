package markdown

// Node is the JSON form of a Block. Type carries the Kind name and only the
// fields of that variant are set.
type Node struct {
	Type     string   `json:"type"`
	Level    int      `json:"level,omitempty"`
	Text     string   `json:"text,omitempty"`
	Language string   `json:"language,omitempty"`
	Code     string   `json:"code,omitempty"`
	Items    []string `json:"items,omitempty"`
	HTML     string   `json:"html,omitempty"`
}

// ToNodes converts blocks to their JSON form, preserving order.
func ToNodes(blocks []Block) []Node {
	nodes := make([]Node, 0, len(blocks))
	for _, b := range blocks {
		n := Node{Type: b.Kind().String()}
		switch v := b.(type) {
		case Heading:
			n.Level, n.Text = v.Level, v.Text
		case CodeBlock:
			n.Language, n.Code = v.Language, v.Code
		case BulletList:
			n.Items = v.Items
		case NumberedList:
			n.Items = v.Items
		case Blockquote:
			n.Text = v.Text
		case Paragraph:
			n.HTML = v.HTML
		}
		nodes = append(nodes, n)
	}
	return nodes
}
