package contentful

// Sys is the subset of Contentful system metadata the migration needs.
type Sys struct {
	ID      string `json:"id"`
	Version int    `json:"version,omitempty"`
}

// FileField describes one locale's binary file on an asset. Upload is set on
// creation; URL appears once the platform has processed the file.
type FileField struct {
	ContentType string `json:"contentType,omitempty"`
	FileName    string `json:"fileName,omitempty"`
	Upload      string `json:"upload,omitempty"`
	URL         string `json:"url,omitempty"`
}

// AssetFields are the locale-keyed asset fields.
type AssetFields struct {
	Title map[string]string    `json:"title,omitempty"`
	File  map[string]FileField `json:"file,omitempty"`
}

// Asset is a Contentful media asset.
type Asset struct {
	Sys    Sys         `json:"sys"`
	Fields AssetFields `json:"fields"`
}

// Entry is a structured content record. Fields map field name to a
// locale-keyed value map; values for the credits field are markdown strings.
type Entry struct {
	Sys    Sys                       `json:"sys"`
	Fields map[string]map[string]any `json:"fields"`
}

type assetCollection struct {
	Items []Asset `json:"items"`
}

type entryCollection struct {
	Items []Entry `json:"items"`
}
