package docx

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const documentTemplate = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
 xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
 xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
 xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"
 xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"
 xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape"
 xmlns:v="urn:schemas-microsoft-com:vml"
 xmlns:o="urn:schemas-microsoft-com:office:office"
 xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<w:body>%s<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:body>
</w:document>`

func para(runs ...string) string {
	return "<w:p>" + strings.Join(runs, "") + "</w:p>"
}

func run(text string) string {
	return `<w:r><w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

func cell(paragraphs ...string) string {
	return "<w:tc><w:tcPr/>" + strings.Join(paragraphs, "") + "</w:tc>"
}

func table(rows ...[]string) string {
	var b strings.Builder
	b.WriteString("<w:tbl><w:tblPr/><w:tblGrid/>")
	for _, cells := range rows {
		b.WriteString("<w:tr>" + strings.Join(cells, "") + "</w:tr>")
	}
	b.WriteString("</w:tbl>")
	return b.String()
}

func inlinePicture(descr, title string) string {
	return fmt.Sprintf(`<w:r><w:drawing><wp:inline><wp:extent cx="1" cy="1"/><wp:docPr id="1" name="Picture 1" descr=%q title=%q/>`+
		`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture"><pic:pic><pic:nvPicPr/></pic:pic></a:graphicData></a:graphic>`+
		`</wp:inline></w:drawing></w:r>`, descr, title)
}

// vmlPicture is a legacy image shape as written by .doc to .docx conversion.
func vmlPicture(alt, title string) string {
	return fmt.Sprintf(`<w:r><w:pict><v:shape id="_x0000_i1025" type="#_x0000_t75" alt=%q style="width:100pt;height:20pt">`+
		`<v:imagedata r:id="rId5" o:title=%q/></v:shape></w:pict></w:r>`, alt, title)
}

// floatingTextBox mirrors what Word writes: a DrawingML text box with a VML
// fallback carrying the same text.
func floatingTextBox(text string) string {
	return `<w:r><mc:AlternateContent><mc:Choice Requires="wps"><w:drawing><wp:anchor><wp:docPr id="2" name="Text Box 2"/>` +
		`<a:graphic><a:graphicData><wps:wsp><wps:txbx><w:txbxContent>` + para(run(text)) + `</w:txbxContent></wps:txbx></wps:wsp></a:graphicData></a:graphic>` +
		`</wp:anchor></w:drawing></mc:Choice><mc:Fallback><w:pict><v:shape><v:textbox><w:txbxContent>` + para(run(text)) +
		`</w:txbxContent></v:textbox></v:shape></w:pict></mc:Fallback></mc:AlternateContent></w:r>`
}

func writeDocx(t *testing.T, name, body string, declaredPages int) string {
	t.Helper()

	parts := map[string]string{
		"word/document.xml": fmt.Sprintf(documentTemplate, body),
	}
	if declaredPages > 0 {
		parts["docProps/app.xml"] = fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>`+
			`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"><Pages>%d</Pages></Properties>`, declaredPages)
	}
	return writeArchive(t, name, parts)
}

// writeArchive stores parts verbatim, so it can also build malformed packages.
func writeArchive(t *testing.T, name string, parts map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer file.Close()

	zw := zip.NewWriter(file)
	for partName, content := range parts {
		w, err := zw.Create(partName)
		if err != nil {
			t.Fatalf("create part %s: %v", partName, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write part %s: %v", partName, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return path
}
