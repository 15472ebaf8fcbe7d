package scraping

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/scholarship-tracker/internal/db"
	"github.com/jonathan/scholarship-tracker/internal/llm"
)

// fakeLLM returns a canned JSON response.
type fakeLLM struct {
	response string
	err      error
}

var _ llm.Client = (*fakeLLM)(nil)

func (f *fakeLLM) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) GenerateWithSystem(_ context.Context, _, _ string, _ llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Close() error { return nil }

const samplePage = `<!DOCTYPE html>
<html>
<head><title>STEM Futures Scholarship</title></head>
<body>
<nav>Home | Scholarships | Contact</nav>
<main>
<h1>STEM Futures Scholarship</h1>
<p>The Futures Foundation offers full tuition for first-year engineering students.</p>
<p>Applications close 31 March 2026. Applicants must hold New Zealand citizenship.</p>
</main>
<footer>Copyright 2026</footer>
</body>
</html>`

const extractedJSON = `{
	"title": "STEM Futures Scholarship",
	"provider": "Futures Foundation",
	"description": "Full tuition for first-year engineering students.",
	"benefits": ["Full tuition"],
	"opening_date": "2026-01-01T00:00:00Z",
	"closing_date": "2099-03-31T23:59:59Z",
	"citizenship": ["New Zealand"],
	"income_cap": null,
	"min_grades": {"Mathematics": 80},
	"essay_question": "Why engineering?",
	"group_task_description": "",
	"interview_focus_areas": ["goals"]
}`

func newScrapeServer(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func noBrowserOptions() *Options {
	return &Options{UseBrowser: false}
}

func TestFetchURL(t *testing.T) {
	srv := newScrapeServer(t, samplePage)

	result, err := FetchURL(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.HTML, "STEM Futures Scholarship")
}

func TestFetchURL_InvalidURL(t *testing.T) {
	_, err := FetchURL(context.Background(), "not-a-url")
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
}

func TestFetchURL_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := FetchURL(context.Background(), srv.URL)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "404")
}

func TestExtractMainText(t *testing.T) {
	text, err := ExtractMainText(samplePage)
	require.NoError(t, err)
	assert.Contains(t, text, "full tuition")
	assert.NotContains(t, text, "Home | Scholarships", "nav should be stripped")
	assert.NotContains(t, text, "Copyright", "footer should be stripped")
}

func TestExtractMainText_FallsBackToBody(t *testing.T) {
	text, err := ExtractMainText("<html><body><p>bare content</p></body></html>")
	require.NoError(t, err)
	assert.Contains(t, text, "bare content")
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("short"))
	assert.True(t, ShouldUseBrowser("   "))
	assert.False(t, ShouldUseBrowser(strings.Repeat("long enough content ", 50)))
}

func TestScrape(t *testing.T) {
	srv := newScrapeServer(t, samplePage)
	scraper := NewScraper(&fakeLLM{response: extractedJSON}, noBrowserOptions())

	input, err := scraper.Scrape(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "STEM Futures Scholarship", input.Title)
	assert.Equal(t, "Futures Foundation", input.Provider)
	assert.Equal(t, db.ScholarshipStatusOpen, input.Status)
	assert.Equal(t, []string{"New Zealand"}, input.Citizenship)
	assert.Nil(t, input.IncomeCap)
	assert.Equal(t, 80.0, input.MinGrades["Mathematics"])
	require.NotNil(t, input.SourceURL)
	assert.Equal(t, srv.URL, *input.SourceURL)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), input.OpeningDate)
}

func TestScrape_PastDeadlineMarksClosed(t *testing.T) {
	srv := newScrapeServer(t, samplePage)
	past := strings.Replace(extractedJSON, "2099-03-31T23:59:59Z", "2020-03-31T23:59:59Z", 1)
	scraper := NewScraper(&fakeLLM{response: past}, noBrowserOptions())

	input, err := scraper.Scrape(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, db.ScholarshipStatusClosed, input.Status)
}

func TestScrape_FencedJSONAccepted(t *testing.T) {
	srv := newScrapeServer(t, samplePage)
	fenced := "```json\n" + extractedJSON + "\n```"
	scraper := NewScraper(&fakeLLM{response: fenced}, noBrowserOptions())

	input, err := scraper.Scrape(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "STEM Futures Scholarship", input.Title)
}

func TestScrape_SchemaViolationRejected(t *testing.T) {
	srv := newScrapeServer(t, samplePage)
	scraper := NewScraper(&fakeLLM{response: `{"provider": "Nobody"}`}, noBrowserOptions())

	_, err := scraper.Scrape(context.Background(), srv.URL)
	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Contains(t, err.Error(), "schema")
}

func TestScrape_GenerationFailure(t *testing.T) {
	srv := newScrapeServer(t, samplePage)
	scraper := NewScraper(&fakeLLM{err: errors.New("model overloaded")}, noBrowserOptions())

	_, err := scraper.Scrape(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw     string
		want    time.Time
		wantErr bool
	}{
		{raw: "", want: time.Time{}},
		{raw: "2026-03-31T23:59:59Z", want: time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)},
		{raw: "2026-03-31", want: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)},
		{raw: "end of March", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseDate(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want))
		})
	}
}
