// Package ingest implements the resume ingestion pipeline: file bytes are
// extracted to plain text, then the completion service derives structured
// fields (location, years of experience) from a bounded prefix of that text.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/brillia/career-coach/internal/extract"
	"github.com/brillia/career-coach/internal/llm"
	intschemas "github.com/brillia/career-coach/internal/schemas"
	"github.com/brillia/career-coach/internal/types"
	"github.com/brillia/career-coach/schemas"
)

// Stage is one advisory progress step of the pipeline. Stages drive a
// progress indicator only; none is retried or rolled back individually.
type Stage int

// Pipeline stages, in order.
const (
	StageReading Stage = iota
	StageAnalyzing
	StageFinalizing
)

func (s Stage) String() string {
	switch s {
	case StageReading:
		return "reading"
	case StageAnalyzing:
		return "analyzing"
	case StageFinalizing:
		return "finalizing"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// ProgressFunc receives advisory stage notifications. May be nil.
type ProgressFunc func(Stage)

// EmptyContentError indicates extraction produced no usable text; the
// completion service is never called in that case.
type EmptyContentError struct {
	FileName string
}

func (e *EmptyContentError) Error() string {
	return fmt.Sprintf("could not extract any text from %s", e.FileName)
}

// analysisPrefixLimit bounds how much resume text is sent to the completion
// service, to respect downstream prompt limits.
const analysisPrefixLimit = 8000

// defaultYearsOfExperience is used when the model cannot determine a value.
const defaultYearsOfExperience = 3

// Extractor produces plain text from file bytes.
type Extractor func(fileName string, data []byte) (string, error)

// Pipeline orchestrates text extraction and structured analysis.
type Pipeline struct {
	client    llm.Client
	extractor Extractor
}

// New creates a pipeline backed by the default file extractor.
func New(client llm.Client) *Pipeline {
	return &Pipeline{client: client, extractor: extract.Text}
}

// NewWithExtractor creates a pipeline with a custom extractor, used by tests.
func NewWithExtractor(client llm.Client, extractor Extractor) *Pipeline {
	return &Pipeline{client: client, extractor: extractor}
}

// Ingest runs the full pipeline for one uploaded resume file.
func (p *Pipeline) Ingest(ctx context.Context, fileName string, data []byte, onProgress ProgressFunc) (*types.ProcessedResume, error) {
	report := func(s Stage) {
		if onProgress != nil {
			onProgress(s)
		}
	}

	report(StageReading)
	text, err := p.extractor(fileName, data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, &EmptyContentError{FileName: fileName}
	}

	report(StageAnalyzing)
	raw, err := p.client.GenerateJSON(ctx, llm.Request{Prompt: analysisPrompt(text)})
	if err != nil {
		return nil, err
	}

	candidate, err := llm.ExtractJSON(raw)
	if err != nil {
		return nil, err
	}
	if err := intschemas.ValidateJSONString(schemas.ResumeAnalysis, string(candidate)); err != nil {
		return nil, &llm.MalformedResponseError{Message: "resume analysis payload failed validation", Cause: err}
	}

	var analysis struct {
		Location          string `json:"location"`
		YearsOfExperience *int   `json:"yearsOfExperience"`
	}
	if err := llm.DecodeJSON(string(candidate), &analysis); err != nil {
		return nil, err
	}

	years := defaultYearsOfExperience
	if analysis.YearsOfExperience != nil {
		years = *analysis.YearsOfExperience
	}

	report(StageFinalizing)
	return &types.ProcessedResume{
		ResumeText:        text,
		Location:          analysis.Location,
		YearsOfExperience: years,
	}, nil
}

func analysisPrompt(resumeText string) string {
	if len(resumeText) > analysisPrefixLimit {
		resumeText = resumeText[:analysisPrefixLimit]
	}
	return fmt.Sprintf(`Analyze the following resume text and perform two tasks:
1. Identify the user's most recent location (e.g., 'San Francisco, USA'). If no location is found, return the exact string "NOT_FOUND".
2. Calculate the total years of professional work experience. If it cannot be determined, default to %d.

Return a single JSON object with the keys: "location", and "yearsOfExperience".

--- RESUME TEXT ---
%s
--- END RESUME TEXT ---`, defaultYearsOfExperience, resumeText)
}
