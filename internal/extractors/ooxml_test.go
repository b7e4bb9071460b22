package extractors

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("zip Create(%s): %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("zip Write(%s): %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zip Close: %v", err)
	}
	return buf.Bytes()
}

const testCoreXML = `<?xml version="1.0" encoding="UTF-8"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
  xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/">
  <dc:title>Quarterly Report</dc:title>
  <dc:creator>Jane Doe</dc:creator>
  <dc:subject>Finance</dc:subject>
</cp:coreProperties>`

func TestExtractDOCXReadsParagraphsAndMetadata(t *testing.T) {
	documentXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	raw := buildZip(t, map[string]string{
		"word/document.xml": documentXML,
		"docProps/core.xml": testCoreXML,
	})

	result, err := ExtractDOCX(context.Background(), Source{Bytes: raw}, nil)
	if err != nil {
		t.Fatalf("ExtractDOCX() error: %v", err)
	}
	if !result.Success {
		t.Fatal("expected Success true")
	}

	meta, ok := result.Metadata.DocumentMetadata()
	if !ok {
		t.Fatal("expected document metadata to be present")
	}
	if meta.ParagraphCount != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", meta.ParagraphCount)
	}
	if meta.Title == nil || *meta.Title != "Quarterly Report" {
		t.Fatalf("unexpected title: %+v", meta.Title)
	}
	if meta.Author == nil || *meta.Author != "Jane Doe" {
		t.Fatalf("unexpected author: %+v", meta.Author)
	}
	if result.Content == "" {
		t.Fatal("expected non-empty content")
	}
}

func TestExtractDOCXInvalidZipReturnsParsingError(t *testing.T) {
	_, err := ExtractDOCX(context.Background(), Source{Bytes: []byte("not a zip")}, nil)
	if err == nil {
		t.Fatal("expected an error for an invalid docx container")
	}
	if kind, ok := kreuzberg.KindOf(err); !ok || kind != kreuzberg.ErrorKindParsing {
		t.Fatalf("expected ErrorKindParsing, got %v (ok=%v)", kind, ok)
	}
}

func TestExtractPPTXReadsSlidesInOrder(t *testing.T) {
	slide1 := `<?xml version="1.0" encoding="UTF-8"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
  xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld><p:spTree><p:sp><p:txBody><a:p><a:r><a:t>Welcome</a:t></a:r></a:p></p:txBody></p:sp></p:spTree></p:cSld>
</p:sld>`
	slide2 := `<?xml version="1.0" encoding="UTF-8"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
  xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld><p:spTree><p:sp><p:txBody><a:p><a:r><a:t>Second slide</a:t></a:r></a:p></p:txBody></p:sp></p:spTree></p:cSld>
</p:sld>`

	raw := buildZip(t, map[string]string{
		"ppt/slides/slide1.xml": slide1,
		"ppt/slides/slide2.xml": slide2,
		"docProps/core.xml":     testCoreXML,
	})

	result, err := ExtractPPTX(context.Background(), Source{Bytes: raw}, nil)
	if err != nil {
		t.Fatalf("ExtractPPTX() error: %v", err)
	}
	if len(result.Pages) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(result.Pages))
	}
	if result.Pages[0].Content != "Welcome" {
		t.Fatalf("expected slide 1 to read 'Welcome', got %q", result.Pages[0].Content)
	}
	if result.Pages[1].Content != "Second slide" {
		t.Fatalf("expected slide 2 to read 'Second slide', got %q", result.Pages[1].Content)
	}

	meta, ok := result.Metadata.PresentationMetadata()
	if !ok {
		t.Fatal("expected presentation metadata to be present")
	}
	if meta.SlideCount != 2 {
		t.Fatalf("expected SlideCount 2, got %d", meta.SlideCount)
	}
}

func TestExtractPPTXNoSlidesReturnsParsingError(t *testing.T) {
	raw := buildZip(t, map[string]string{"docProps/core.xml": testCoreXML})
	_, err := ExtractPPTX(context.Background(), Source{Bytes: raw}, nil)
	if err == nil {
		t.Fatal("expected an error when the pptx has no slides")
	}
}
