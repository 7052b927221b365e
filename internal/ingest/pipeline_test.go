package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brillia/career-coach/internal/llm"
	"github.com/brillia/career-coach/internal/types"
)

// fakeClient returns canned responses and records the prompts it saw.
type fakeClient struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeClient) GenerateContent(_ context.Context, req llm.Request) (string, error) {
	f.prompts = append(f.prompts, req.Prompt)
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, req llm.Request) (string, error) {
	f.prompts = append(f.prompts, req.Prompt)
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

func textExtractor(text string) Extractor {
	return func(string, []byte) (string, error) { return text, nil }
}

func TestIngest_Success(t *testing.T) {
	client := &fakeClient{response: `{"location": "Austin, USA", "yearsOfExperience": 7}`}
	p := NewWithExtractor(client, textExtractor("10 years shipping Go services in Austin."))

	var stages []Stage
	result, err := p.Ingest(context.Background(), "resume.pdf", []byte("%PDF"), func(s Stage) {
		stages = append(stages, s)
	})

	require.NoError(t, err)
	assert.Equal(t, "Austin, USA", result.Location)
	assert.Equal(t, 7, result.YearsOfExperience)
	assert.Equal(t, "10 years shipping Go services in Austin.", result.ResumeText)
	assert.Equal(t, []Stage{StageReading, StageAnalyzing, StageFinalizing}, stages)
}

func TestIngest_EmptyContent(t *testing.T) {
	client := &fakeClient{}
	p := NewWithExtractor(client, textExtractor("   \n\t  "))

	_, err := p.Ingest(context.Background(), "blank.pdf", []byte("%PDF"), nil)

	var emptyErr *EmptyContentError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, "blank.pdf", emptyErr.FileName)
	assert.Empty(t, client.prompts, "model must not be called for empty content")
}

func TestIngest_ExtractionFailurePropagates(t *testing.T) {
	wantErr := errors.New("boom")
	p := NewWithExtractor(&fakeClient{}, func(string, []byte) (string, error) {
		return "", wantErr
	})

	_, err := p.Ingest(context.Background(), "resume.docx", nil, nil)
	assert.ErrorIs(t, err, wantErr)
}

func TestIngest_LocationNotFound(t *testing.T) {
	client := &fakeClient{response: `{"location": "NOT_FOUND", "yearsOfExperience": 2}`}
	p := NewWithExtractor(client, textExtractor("some resume text"))

	result, err := p.Ingest(context.Background(), "resume.txt", nil, nil)

	require.NoError(t, err)
	assert.Equal(t, types.LocationNotFound, result.Location)
	assert.Equal(t, 2, result.YearsOfExperience)
}

func TestIngest_ProseWrappedResponse(t *testing.T) {
	client := &fakeClient{
		response: `Sure! Here is the analysis: {"location": "Berlin, Germany", "yearsOfExperience": 5} Hope that helps.`,
	}
	p := NewWithExtractor(client, textExtractor("resume text"))

	result, err := p.Ingest(context.Background(), "resume.txt", nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "Berlin, Germany", result.Location)
	assert.Equal(t, 5, result.YearsOfExperience)
}

func TestIngest_MalformedResponse(t *testing.T) {
	client := &fakeClient{response: "I could not analyze this resume."}
	p := NewWithExtractor(client, textExtractor("resume text"))

	_, err := p.Ingest(context.Background(), "resume.txt", nil, nil)

	var malformed *llm.MalformedResponseError
	assert.ErrorAs(t, err, &malformed)
}

func TestIngest_InvalidPayloadRejected(t *testing.T) {
	client := &fakeClient{response: `{"location": "Austin, USA", "yearsOfExperience": "seven"}`}
	p := NewWithExtractor(client, textExtractor("resume text"))

	_, err := p.Ingest(context.Background(), "resume.txt", nil, nil)

	var malformed *llm.MalformedResponseError
	assert.ErrorAs(t, err, &malformed)
}

func TestIngest_PromptBoundsResumeText(t *testing.T) {
	client := &fakeClient{response: `{"location": "NOT_FOUND", "yearsOfExperience": 3}`}
	long := strings.Repeat("x", analysisPrefixLimit+5000)
	p := NewWithExtractor(client, textExtractor(long))

	result, err := p.Ingest(context.Background(), "resume.txt", nil, nil)

	require.NoError(t, err)
	require.Len(t, client.prompts, 1)
	assert.Less(t, len(client.prompts[0]), analysisPrefixLimit+1000, "prompt should carry only a prefix of the resume")
	assert.Len(t, result.ResumeText, len(long), "stored text keeps the full extraction")
}

func TestIngest_ModelErrorPropagates(t *testing.T) {
	client := &fakeClient{err: &llm.TimeoutError{}}
	p := NewWithExtractor(client, textExtractor("resume text"))

	_, err := p.Ingest(context.Background(), "resume.txt", nil, nil)

	var timeout *llm.TimeoutError
	assert.ErrorAs(t, err, &timeout)
}
