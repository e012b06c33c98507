package pdf

import (
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	bodySize   = 11.0
	lineHeight = 6.0
)

var markdown = goldmark.New()

// renderMarkdown writes headings, paragraphs, emphasis and lists at the
// current position.
func renderMarkdown(pdf *fpdf.Fpdf, tr func(string) string, source []byte) {
	doc := markdown.Parser().Parse(text.NewReader(source))
	r := &mdRenderer{pdf: pdf, tr: tr, source: source}
	r.updateFont()
	_ = ast.Walk(doc, r.walk)
	pdf.Ln(2)
}

type mdRenderer struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	source []byte
	bold   bool
	italic bool
	lists  []listState
}

type listState struct {
	ordered bool
	next    int
}

func (r *mdRenderer) updateFont() {
	style := ""
	if r.bold {
		style += "B"
	}
	if r.italic {
		style += "I"
	}
	r.pdf.SetFont(fontFamily, style, bodySize)
}

func (r *mdRenderer) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Heading:
		if entering {
			r.pdf.Ln(2)
			size := 14.0
			if node.Level > 1 {
				size = 12
			}
			r.pdf.SetFont(fontFamily, "B", size)
		} else {
			r.pdf.Ln(lineHeight + 2)
			r.updateFont()
		}
	case *ast.Paragraph:
		if !entering {
			if len(r.lists) == 0 {
				r.pdf.Ln(lineHeight + 2)
			}
		}
	case *ast.Text:
		if entering {
			r.pdf.Write(lineHeight, r.tr(string(node.Segment.Value(r.source))))
			if node.HardLineBreak() {
				r.pdf.Ln(lineHeight)
			} else if node.SoftLineBreak() {
				r.pdf.Write(lineHeight, " ")
			}
		}
	case *ast.Emphasis:
		if node.Level == 2 {
			r.bold = entering
		} else {
			r.italic = entering
		}
		r.updateFont()
	case *ast.List:
		if entering {
			r.lists = append(r.lists, listState{ordered: node.IsOrdered(), next: node.Start})
		} else {
			r.lists = r.lists[:len(r.lists)-1]
			if len(r.lists) == 0 {
				r.pdf.Ln(lineHeight)
			}
		}
	case *ast.ListItem:
		if entering {
			r.listItem()
		} else {
			r.pdf.Ln(lineHeight)
		}
	case *ast.ThematicBreak:
		if entering {
			y := r.pdf.GetY() + 2
			r.pdf.Line(15, y, 195, y)
			r.pdf.Ln(4)
		}
	}
	return ast.WalkContinue, nil
}

func (r *mdRenderer) listItem() {
	depth := len(r.lists)
	if depth == 0 {
		return
	}
	st := &r.lists[depth-1]
	r.pdf.SetX(15 + float64(depth)*5)
	if st.ordered {
		r.pdf.Write(lineHeight, strconv.Itoa(st.next)+". ")
		st.next++
		return
	}
	r.pdf.Write(lineHeight, "- ")
}
