package markdown

// Kind identifies the variant of a Block.
type Kind int

const (
	KindHeading Kind = iota
	KindCode
	KindBulletList
	KindNumberedList
	KindBlockquote
	KindParagraph
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindCode:
		return "code"
	case KindBulletList:
		return "bullet-list"
	case KindNumberedList:
		return "numbered-list"
	case KindBlockquote:
		return "blockquote"
	case KindParagraph:
		return "paragraph"
	}
	return "unknown"
}

// Block is one classified segment of a post body. The concrete types below are
// the only implementations.
type Block interface {
	Kind() Kind
}

// Heading is a level 1-3 title. Text is plain text.
type Heading struct {
	Level int
	Text  string
}

// CodeBlock is a fenced code segment. Code is plain text.
type CodeBlock struct {
	Language string
	Code     string
}

// BulletList holds unordered item texts.
type BulletList struct {
	Items []string
}

// NumberedList holds ordered item texts, markers removed.
type NumberedList struct {
	Items []string
}

// Blockquote is a single-line quote. Text is plain text.
type Blockquote struct {
	Text string
}

// Paragraph carries HTML: the source text escaped, then the inline link,
// bold, italic and code substitutions applied.
type Paragraph struct {
	HTML string
}

func (Heading) Kind() Kind      { return KindHeading }
func (CodeBlock) Kind() Kind    { return KindCode }
func (BulletList) Kind() Kind   { return KindBulletList }
func (NumberedList) Kind() Kind { return KindNumberedList }
func (Blockquote) Kind() Kind   { return KindBlockquote }
func (Paragraph) Kind() Kind    { return KindParagraph }

// Clone returns a deep copy of blocks. List items get fresh backing arrays.
func Clone(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		switch v := b.(type) {
		case BulletList:
			out[i] = BulletList{Items: append([]string(nil), v.Items...)}
		case NumberedList:
			out[i] = NumberedList{Items: append([]string(nil), v.Items...)}
		default:
			out[i] = b
		}
	}
	return out
}
