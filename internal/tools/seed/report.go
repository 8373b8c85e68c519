package seed

import (
	"encoding/json"
	"io"
)

// ciReport is the machine-readable result emitted under --ci so pipelines can
// gate on the seed step without scraping log lines.
type ciReport struct {
	OK      bool     `json:"ok"`
	Title   string   `json:"title"`
	Details []string `json:"details,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func (rep ciReport) write(w io.Writer) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(rep)
}
