package feeds

import "encoding/xml"

// Both MIV feeds share the same skeleton: a root element holding repeated
// meetpunt elements keyed by a numeric unieke_id attribute. The measurement
// feed additionally nests meetdata groups, one per measurement class.

type feedDocument struct {
	MeasurePoints []measurePointXML `xml:"meetpunt"`
}

type measurePointXML struct {
	UniqueID string     `xml:"unieke_id,attr"`
	Children []fieldXML `xml:",any"`
}

// fieldXML captures any child element: leaves carry their text in Value,
// meetdata groups carry their class id and nested fields.
type fieldXML struct {
	XMLName  xml.Name
	ClassID  string     `xml:"klasse_id,attr"`
	Value    string     `xml:",chardata"`
	Children []fieldXML `xml:",any"`
}
