package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pathwarden/pathwarden/internal/types"
)

func TestWriteSARIF(t *testing.T) {
	skipped := []types.SkippedFile{
		{Path: "a/.env", Reason: "environment file", Category: types.CatFilename},
	}
	var buf bytes.Buffer
	if err := WriteSARIF(&buf, skipped); err != nil {
		t.Fatalf("WriteSARIF: %v", err)
	}
	var doc struct {
		Version string `json:"version"`
		Runs    []struct {
			Results []struct {
				RuleID  string `json:"ruleId"`
				Level   string `json:"level"`
				Message struct {
					Text string `json:"text"`
				} `json:"message"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v; body=%s", err, buf.String())
	}
	if doc.Version != "2.1.0" {
		t.Fatalf("expected SARIF 2.1.0, got %q", doc.Version)
	}
	if len(doc.Runs) != 1 || len(doc.Runs[0].Results) != 1 {
		t.Fatalf("expected one run with one result: %s", buf.String())
	}
	r := doc.Runs[0].Results[0]
	if r.RuleID != "sensitive-filename-pattern" || r.Level != "warning" {
		t.Fatalf("unexpected result metadata: %+v", r)
	}
	if r.Locations[0].PhysicalLocation.ArtifactLocation.URI != "a/.env" {
		t.Fatalf("unexpected location: %+v", r.Locations)
	}
}
