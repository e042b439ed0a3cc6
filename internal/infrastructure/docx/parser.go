package docx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/kirillkom/syllabus-stats/internal/core/domain"
)

// Text conventions follow Word's object model so the heuristics see the same
// characters they would in Word: every paragraph ends with '\r', a table cell
// ends with "\r\a", a row adds another "\r\a", a manual line break is '\v' and
// a page break is '\f'.
const (
	paragraphMark = "\r"
	cellMark      = "\a"
	rowMark       = "\r\a"
	lineBreak     = "\v"
	pageBreak     = "\f"
)

type anchor struct {
	text   string
	offset int
}

// model is everything read from word/document.xml. Offsets are byte offsets
// into content.
type model struct {
	content        string
	paragraphs     []string
	tables         []domain.Table
	pictures       []anchor
	boxes          []anchor
	renderedBreaks []int
	hardBreaks     []int
}

// pageStarts prefers the page breaks Word stored on its last layout pass.
// Without them only explicit breaks are known.
func (m *model) pageStarts() []int {
	breaks := m.hardBreaks
	if len(m.renderedBreaks) > 0 {
		breaks = m.renderedBreaks
	}
	starts := append([]int{0}, breaks...)
	slices.Sort(starts)
	return slices.Compact(starts)
}

// Elements are matched by local name. Transitional and strict documents use
// different namespace URIs for the same vocabulary.
type parser struct {
	dec   *xml.Decoder
	body  strings.Builder
	out   *strings.Builder
	inBox bool
	// nesting counts open tables; nested tables stay part of their cell
	nesting int
	m       model
}

func parseDocumentXML(r io.Reader) (*model, error) {
	p := &parser{dec: xml.NewDecoder(r)}
	p.out = &p.body

	for {
		tok, err := p.dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, errors.New("document.xml has no body")
		}
		if err != nil {
			return nil, fmt.Errorf("decode document.xml: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == "body" {
			if err := p.blocks(); err != nil {
				return nil, err
			}
			break
		}
	}

	p.m.content = p.body.String()
	return &p.m, nil
}

func (p *parser) offset() int { return p.body.Len() }

// next returns the next start element, or nil once the enclosing element is
// closed.
func (p *parser) next() (*xml.StartElement, error) {
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return &t, nil
		case xml.EndElement:
			return nil, nil
		}
	}
}

// blocks reads block-level content (paragraphs and tables) up to the end of
// the current element.
func (p *parser) blocks() error {
	for {
		el, err := p.next()
		if err != nil || el == nil {
			return err
		}
		switch el.Name.Local {
		case "p":
			err = p.paragraph()
		case "tbl":
			var table domain.Table
			outer := p.nesting == 0 && !p.inBox
			table, err = p.table()
			if err == nil && outer {
				p.m.tables = append(p.m.tables, table)
			}
		case "sdt", "sdtContent", "customXml", "ins":
			err = p.blocks()
		default:
			err = p.dec.Skip()
		}
		if err != nil {
			return err
		}
	}
}

func (p *parser) paragraph() error {
	start := p.out.Len()
	bodyStart := p.offset()
	sectionBreak := false

	if err := p.inline(&sectionBreak, bodyStart); err != nil {
		return err
	}
	p.out.WriteString(paragraphMark)

	if p.inBox {
		return nil
	}
	p.m.paragraphs = append(p.m.paragraphs, p.out.String()[start:])
	if sectionBreak {
		p.m.hardBreaks = append(p.m.hardBreaks, p.offset())
	}
	return nil
}

// inline reads paragraph content: runs and the containers that wrap them.
func (p *parser) inline(sectionBreak *bool, paragraphStart int) error {
	for {
		el, err := p.next()
		if err != nil || el == nil {
			return err
		}
		switch el.Name.Local {
		case "pPr":
			err = p.paragraphProperties(sectionBreak, paragraphStart)
		case "r":
			err = p.run()
		case "hyperlink", "ins", "smartTag", "sdt", "sdtContent", "fldSimple", "customXml", "bdo", "dir", "moveTo":
			err = p.inline(sectionBreak, paragraphStart)
		case "AlternateContent":
			err = p.alternateContent(func() error { return p.inline(sectionBreak, paragraphStart) })
		default:
			err = p.dec.Skip()
		}
		if err != nil {
			return err
		}
	}
}

func (p *parser) paragraphProperties(sectionBreak *bool, paragraphStart int) error {
	for {
		el, err := p.next()
		if err != nil || el == nil {
			return err
		}
		switch el.Name.Local {
		case "pageBreakBefore":
			if isOn(el) && !p.inBox {
				p.m.hardBreaks = append(p.m.hardBreaks, paragraphStart)
			}
			err = p.dec.Skip()
		case "sectPr":
			var breaks bool
			breaks, err = p.sectionStartsPage()
			*sectionBreak = *sectionBreak || breaks
		default:
			err = p.dec.Skip()
		}
		if err != nil {
			return err
		}
	}
}

// sectionStartsPage reports whether the section that follows starts on a new
// page. Sections without an explicit type are next-page sections.
func (p *parser) sectionStartsPage() (bool, error) {
	breaks := true
	for {
		el, err := p.next()
		if err != nil || el == nil {
			return breaks, err
		}
		if el.Name.Local == "type" {
			switch attr(el, "val") {
			case "continuous", "nextColumn":
				breaks = false
			}
		}
		if err := p.dec.Skip(); err != nil {
			return breaks, err
		}
	}
}

func (p *parser) run() error {
	for {
		el, err := p.next()
		if err != nil || el == nil {
			return err
		}
		switch el.Name.Local {
		case "t":
			var text string
			text, err = p.text()
			p.out.WriteString(text)
		case "tab", "ptab":
			p.out.WriteString("\t")
			err = p.dec.Skip()
		case "br":
			p.lineOrPageBreak(attr(el, "type"))
			err = p.dec.Skip()
		case "cr":
			p.out.WriteString(lineBreak)
			err = p.dec.Skip()
		case "noBreakHyphen":
			p.out.WriteString("-")
			err = p.dec.Skip()
		case "lastRenderedPageBreak":
			if !p.inBox {
				p.m.renderedBreaks = append(p.m.renderedBreaks, p.offset())
			}
			err = p.dec.Skip()
		case "drawing":
			err = p.drawing()
		case "pict":
			err = p.pict()
		case "AlternateContent":
			err = p.alternateContent(p.run)
		default:
			// rPr, delText, instrText, fldChar and the like carry no visible text.
			err = p.dec.Skip()
		}
		if err != nil {
			return err
		}
	}
}

func (p *parser) lineOrPageBreak(kind string) {
	switch kind {
	case "page":
		p.out.WriteString(pageBreak)
		if !p.inBox {
			p.m.hardBreaks = append(p.m.hardBreaks, p.offset())
		}
	case "column":
	default:
		p.out.WriteString(lineBreak)
	}
}

func (p *parser) text() (string, error) {
	var b strings.Builder
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.EndElement:
			return b.String(), nil
		}
	}
}

// alternateContent keeps the first mc:Choice and drops mc:Fallback, which
// repeats the same object in an older markup.
func (p *parser) alternateContent(choice func() error) error {
	taken := false
	for {
		el, err := p.next()
		if err != nil || el == nil {
			return err
		}
		if el.Name.Local == "Choice" && !taken {
			taken = true
			err = choice()
		} else {
			err = p.dec.Skip()
		}
		if err != nil {
			return err
		}
	}
}

// drawing records inline pictures and text boxes of floating shapes at the
// current content offset.
func (p *parser) drawing() error {
	at := p.offset()
	for {
		el, err := p.next()
		if err != nil || el == nil {
			return err
		}
		switch el.Name.Local {
		case "inline":
			err = p.inlineShape(at)
		case "anchor":
			err = p.floatingShape(at)
		default:
			err = p.dec.Skip()
		}
		if err != nil {
			return err
		}
	}
}

func (p *parser) inlineShape(at int) error {
	var descr, title string
	picture := false

	depth := 1
	for depth > 0 {
		tok, err := p.dec.Token()
		if err != nil {
			return fmt.Errorf("decode document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "docPr":
				descr, title = attr(&t, "descr"), attr(&t, "title")
			case "pic":
				picture = true
			}
		case xml.EndElement:
			depth--
		}
	}

	if picture && !p.inBox {
		text := descr
		if strings.TrimSpace(text) == "" {
			text = title
		}
		p.m.pictures = append(p.m.pictures, anchor{text: text, offset: at})
	}
	return nil
}

func (p *parser) floatingShape(at int) error {
	depth := 1
	for depth > 0 {
		tok, err := p.dec.Token()
		if err != nil {
			return fmt.Errorf("decode document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "txbxContent" {
				if err := p.textBox(at); err != nil {
					return err
				}
				continue
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

// pict handles legacy VML shapes. A shape with a text box is a box anchor;
// a shape that only carries v:imagedata counts as an inline picture, the way
// converted .doc files store them.
func (p *parser) pict() error {
	at := p.offset()
	var alt, title string
	image, boxed := false, false

	depth := 1
	for depth > 0 {
		tok, err := p.dec.Token()
		if err != nil {
			return fmt.Errorf("decode document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "txbxContent":
				boxed = true
				if err := p.textBox(at); err != nil {
					return err
				}
				continue
			case "shape":
				if alt == "" {
					alt = attr(&t, "alt")
				}
			case "imagedata":
				image = true
				if title == "" {
					title = attr(&t, "title")
				}
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}

	if image && !boxed && !p.inBox {
		text := alt
		if strings.TrimSpace(text) == "" {
			text = title
		}
		p.m.pictures = append(p.m.pictures, anchor{text: text, offset: at})
	}
	return nil
}

// textBox reads a w:txbxContent element into its own buffer. Its text does
// not flow into the document content.
func (p *parser) textBox(at int) error {
	if p.inBox {
		return p.dec.Skip()
	}
	var box strings.Builder
	p.out, p.inBox = &box, true
	err := p.blocks()
	p.out, p.inBox = &p.body, false
	if err != nil {
		return err
	}
	p.m.boxes = append(p.m.boxes, anchor{text: box.String(), offset: at})
	return nil
}

func (p *parser) table() (domain.Table, error) {
	p.nesting++
	defer func() { p.nesting-- }()

	var table domain.Table
	err := p.rows(&table)
	return table, err
}

func (p *parser) rows(table *domain.Table) error {
	for {
		el, err := p.next()
		if err != nil || el == nil {
			return err
		}
		switch el.Name.Local {
		case "tr":
			var row []string
			row, err = p.row()
			table.Rows = append(table.Rows, row)
		case "sdt", "sdtContent", "customXml":
			err = p.rows(table)
		default:
			err = p.dec.Skip()
		}
		if err != nil {
			return err
		}
	}
}

func (p *parser) row() ([]string, error) {
	var cells []string
	for {
		el, err := p.next()
		if err != nil {
			return nil, err
		}
		if el == nil {
			p.out.WriteString(rowMark)
			return cells, nil
		}
		if el.Name.Local != "tc" {
			if err := p.dec.Skip(); err != nil {
				return nil, err
			}
			continue
		}
		start := p.out.Len()
		if err := p.blocks(); err != nil {
			return nil, err
		}
		p.out.WriteString(cellMark)
		cells = append(cells, p.out.String()[start:])
	}
}

func attr(el *xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// isOn reads an OOXML on/off property: a missing w:val means on.
func isOn(el *xml.StartElement) bool {
	switch attr(el, "val") {
	case "0", "false", "off":
		return false
	default:
		return true
	}
}
