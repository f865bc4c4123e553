package report

import (
	"encoding/json"
	"io"

	"github.com/pathwarden/pathwarden/internal/types"
)

// toolVersion appears in the SARIF tool descriptor; keep in step with the
// CLI version.
const toolVersion = "0.1.0"

type sarif struct {
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt `json:"artifactLocation"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

// WriteSARIF writes the skipped sensitive paths as SARIF 2.1.0 so CI systems
// can surface them as code-scanning warnings.
func WriteSARIF(w io.Writer, skipped []types.SkippedFile) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{Name: "pathwarden", Version: toolVersion}},
	}
	for _, sf := range skipped {
		run.Results = append(run.Results, sarifResult{
			RuleID:  "sensitive-" + string(sf.Category),
			Level:   "warning",
			Message: sarifMessage{Text: sf.Reason},
			Locations: []sarifLoc{{
				PhysicalLocation: sarifPhys{
					ArtifactLocation: sarifArt{URI: sf.Path},
				},
			}},
		})
	}
	doc := sarif{Version: "2.1.0", Runs: []sarifRun{run}}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
