package format

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// xmlDecl starts every document clang-format emits with -output-replacements-xml.
const xmlDecl = "<?xml"

// replacementMarker is present in the output whenever a replacement was proposed.
const replacementMarker = "replacement offset"

// replacementsDoc is one <replacements> document, emitted per input file.
type replacementsDoc struct {
	XMLName      xml.Name      `xml:"replacements"`
	Incomplete   bool          `xml:"incomplete_format,attr"`
	Replacements []Replacement `xml:"replacement"`
}

// Replacement is a single edit clang-format would apply.
type Replacement struct {
	Offset int    `xml:"offset,attr" json:"offset"`
	Length int    `xml:"length,attr" json:"length"`
	Text   string `xml:",chardata"   json:"text"`
}

// ParseReplacements splits clang-format's XML output into one replacement
// list per document, in output order.
func ParseReplacements(out string) ([][]Replacement, error) {
	var docs [][]Replacement
	for _, chunk := range strings.Split(out, xmlDecl) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		var doc replacementsDoc
		if err := xml.Unmarshal([]byte(xmlDecl+chunk), &doc); err != nil {
			return nil, fmt.Errorf("parsing replacements document %d: %w", len(docs)+1, err)
		}
		docs = append(docs, doc.Replacements)
	}
	return docs, nil
}

// HasReplacements reports whether raw formatter output mentions any
// replacement, without parsing it.
func HasReplacements(out string) bool {
	return strings.Contains(out, replacementMarker)
}
