package model

type DeviceType string

const (
	DeviceSTB DeviceType = "STB"
	DeviceTV  DeviceType = "TV"
)

// SearchQuery identifies the build to look up. An empty BrandFilter selects
// the first search result unconditionally.
type SearchQuery struct {
	Device      string
	CommitHash  string
	BrandFilter string
}

type SearchEntry struct {
	URI string `json:"uri"`
}

// SearchResponse is the body of the property search endpoint. Results is nil
// when the server omitted the field.
type SearchResponse struct {
	Results []SearchEntry `json:"results"`
}

type ResolvedArtifact struct {
	DownloadURI string `json:"downloadUri"`
}
