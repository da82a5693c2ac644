package domain

// AnnotationList is a IIIF Content Search 0.x response: the highlighted
// words of one document as annotations on its canvases.
type AnnotationList struct {
	Context   []string        `json:"@context"`
	ID        string          `json:"@id"`
	Type      string          `json:"@type"`
	Within    AnnotationLayer `json:"within"`
	Resources []Annotation    `json:"resources"`
	Hits      []AnnotationHit `json:"hits"`
}

// AnnotationLayer describes the result set the annotations belong to.
type AnnotationLayer struct {
	Type    string   `json:"@type"`
	Total   int      `json:"total"`
	Ignored []string `json:"ignored"`
}

// Annotation places one highlighted word on a canvas.
type Annotation struct {
	ID         string        `json:"@id"`
	Type       string        `json:"@type"`
	Motivation string        `json:"motivation"`
	Resource   ContentAsText `json:"resource"`
	On         string        `json:"on"`
}

// ContentAsText is the textual body of an annotation.
type ContentAsText struct {
	Type  string `json:"@type"`
	Chars string `json:"chars"`
}

// AnnotationHit groups the annotations of one highlighted span.
type AnnotationHit struct {
	Type        string   `json:"@type"`
	Annotations []string `json:"annotations"`
	Match       string   `json:"match"`

	// Before and After are nil when the match could not be located in
	// the passage text.
	Before *string `json:"before"`
	After  *string `json:"after"`
}
