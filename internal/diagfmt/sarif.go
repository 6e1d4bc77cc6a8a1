package diagfmt

import (
	"encoding/json"
	"io"

	"effectlint/internal/analysis"
	"effectlint/internal/catalog"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID                   string            `json:"id"`
	Name                 string            `json:"name,omitempty"`
	ShortDescription     sarifText         `json:"shortDescription"`
	FullDescription      sarifText         `json:"fullDescription"`
	DefaultConfiguration sarifRuleConfig   `json:"defaultConfiguration"`
	Properties           map[string]string `json:"properties,omitempty"`
}

type sarifRuleConfig struct {
	Level string `json:"level"`
}

type sarifText struct {
	Text string `json:"text"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifResult struct {
	RuleID     string          `json:"ruleId"`
	Level      string          `json:"level"`
	Message    sarifText       `json:"message"`
	Locations  []sarifLocation `json:"locations"`
	Properties map[string]any  `json:"properties,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
}

func sarifLevel(l catalog.Level) string {
	switch l {
	case catalog.LevelError:
		return "error"
	case catalog.LevelOff:
		return "none"
	}
	return "warning"
}

// Sarif writes reports as a SARIF v2.1.0 log with one run. Rules lists
// every catalog rule so viewers can resolve ids; parse failures become
// results of the pseudo-rule "parse-error".
func Sarif(w io.Writer, reports []analysis.Report, cat *catalog.Catalog, meta SarifRunMeta) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:           meta.ToolName,
			Version:        meta.ToolVersion,
			InformationURI: meta.InformationURI,
			Rules:          sarifRules(cat),
		}},
		Results: []sarifResult{},
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{Arguments: meta.InvocationArgs, ExecutionSuccessful: true}}
	}
	for _, r := range reports {
		uri := formatPath(r.Filename, meta.PathMode, meta.BaseDir)
		if pe := r.ParseError; pe != nil {
			run.Results = append(run.Results, sarifResult{
				RuleID:  "parse-error",
				Level:   "error",
				Message: sarifText{Text: pe.Code + ": " + pe.Message},
				Locations: []sarifLocation{location(uri, sarifRegion{
					StartLine: pe.Range.StartLine, StartColumn: pe.Range.StartCol,
					EndLine: pe.Range.EndLine, EndColumn: pe.Range.EndCol,
				})},
			})
			continue
		}
		for _, f := range r.Findings {
			res := sarifResult{
				RuleID:  f.RuleID,
				Level:   sarifLevel(f.Level),
				Message: sarifText{Text: f.Message},
				Locations: []sarifLocation{location(uri, sarifRegion{
					StartLine: f.Range.StartLine, StartColumn: f.Range.StartCol,
					EndLine: f.Range.EndLine, EndColumn: f.Range.EndCol,
				})},
				Properties: map[string]any{"findingId": f.ID, "severity": string(f.Severity)},
			}
			if len(f.RefactoringIDs) > 0 {
				res.Properties["fixIds"] = f.RefactoringIDs
			}
			run.Results = append(run.Results, res)
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(sarifLog{Version: sarifVersion, Schema: sarifSchema, Runs: []sarifRun{run}})
}

func sarifRules(cat *catalog.Catalog) []sarifRule {
	if cat == nil {
		return []sarifRule{}
	}
	rules := cat.Rules()
	out := make([]sarifRule, 0, len(rules))
	for _, r := range rules {
		out = append(out, sarifRule{
			ID:                   r.ID,
			Name:                 r.Title,
			ShortDescription:     sarifText{Text: r.Title},
			FullDescription:      sarifText{Text: r.Message},
			DefaultConfiguration: sarifRuleConfig{Level: sarifLevel(r.DefaultLevel)},
			Properties:           map[string]string{"category": r.Category, "severity": string(r.Severity)},
		})
	}
	return out
}

func location(uri string, region sarifRegion) sarifLocation {
	return sarifLocation{PhysicalLocation: sarifPhysical{
		ArtifactLocation: sarifArtifact{URI: uri},
		Region:           region,
	}}
}
