package opf

import "strings"

import "testing"

const sampleOPF = `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="2.0" unique-identifier="BookID">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:opf="http://www.idpf.org/2007/opf">
    <dc:title>The Go Programming Language</dc:title>
    <dc:creator opf:role="aut">Alan A. A. Donovan</dc:creator>
    <dc:creator opf:role="aut">Brian W. Kernighan</dc:creator>
    <dc:identifier id="BookID" opf:scheme="ISBN">9780134190440</dc:identifier>
    <dc:language>en</dc:language>
    <dc:publisher>Addison-Wesley</dc:publisher>
    <dc:date>2015-10-26</dc:date>
    <meta name="cover" content="cover-image"/>
  </metadata>
  <manifest/>
  <spine/>
</package>`

func TestParseMetadataEntries(t *testing.T) {
	pkg, err := Parse(strings.NewReader(sampleOPF))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if pkg.Version != "2.0" || pkg.UniqueID != "BookID" {
		t.Errorf("pkg = %+v, unexpected package attrs", pkg)
	}

	title, ok := pkg.Find("title")
	if !ok || title.Text != "The Go Programming Language" {
		t.Errorf("title = %+v, %v", title, ok)
	}

	creators := pkg.FindAll("creator")
	if len(creators) != 2 {
		t.Fatalf("len(creators) = %d, want 2", len(creators))
	}
	if creators[0].Text != "Alan A. A. Donovan" {
		t.Errorf("creators[0].Text = %q", creators[0].Text)
	}
	if role, ok := creators[0].Attr("role"); !ok || role != "aut" {
		t.Errorf("creators[0].Attr(role) = %q, %v", role, ok)
	}

	id, ok := pkg.Find("identifier")
	if !ok {
		t.Fatalf("identifier not found")
	}
	if scheme, ok := id.Attr("scheme"); !ok || scheme != "ISBN" {
		t.Errorf("identifier scheme = %q, %v", scheme, ok)
	}
	if id.Text != "9780134190440" {
		t.Errorf("identifier text = %q", id.Text)
	}

	meta, ok := pkg.Find("meta")
	if !ok {
		t.Fatalf("meta element not found")
	}
	if name, _ := meta.Attr("name"); name != "cover" {
		t.Errorf("meta name attr = %q", name)
	}
}

func TestParseMissingPackage(t *testing.T) {
	if _, err := Parse(strings.NewReader("<not-opf/>")); err == nil {
		t.Fatalf("expected error for non-OPF document")
	}
}
