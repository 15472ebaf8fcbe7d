package scraping

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/scholarship-tracker/internal/db"
	"github.com/jonathan/scholarship-tracker/internal/llm"
	"github.com/jonathan/scholarship-tracker/internal/prompts"
	"github.com/jonathan/scholarship-tracker/internal/schemas"
)

const scrapingFile = "scraping.json"

// Options configures scraping behavior.
type Options struct {
	UseBrowser     bool // render JavaScript-heavy pages in a headless browser
	BrowserTimeout time.Duration
	Verbose        bool
}

// DefaultOptions returns sensible defaults for scraping.
func DefaultOptions() *Options {
	return &Options{
		UseBrowser:     true,
		BrowserTimeout: 30 * time.Second,
	}
}

// Scraper extracts structured scholarship records from web pages.
type Scraper struct {
	llm  llm.Client
	opts *Options
}

// NewScraper creates a Scraper backed by the given LLM client.
func NewScraper(llmClient llm.Client, opts *Options) *Scraper {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Scraper{llm: llmClient, opts: opts}
}

// extractedScholarship mirrors the JSON shape the extraction prompt requests.
// Dates arrive as strings and are parsed during conversion.
type extractedScholarship struct {
	Title                string             `json:"title"`
	Provider             string             `json:"provider"`
	Description          string             `json:"description"`
	Benefits             []string           `json:"benefits"`
	OpeningDate          string             `json:"opening_date"`
	ClosingDate          string             `json:"closing_date"`
	Citizenship          []string           `json:"citizenship"`
	IncomeCap            *int               `json:"income_cap"`
	MinGrades            map[string]float64 `json:"min_grades"`
	EssayQuestion        string             `json:"essay_question"`
	GroupTaskDescription string             `json:"group_task_description"`
	InterviewFocusAreas  []string           `json:"interview_focus_areas"`
}

// Scrape fetches a scholarship page and returns a structured record ready for
// insertion. The extracted JSON is validated against the scholarship schema
// before conversion.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) (*db.ScholarshipInput, error) {
	text, err := s.fetchText(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, &ExtractionError{URL: pageURL, Message: "page contained no extractable text"}
	}

	prompt := prompts.Format(prompts.MustGet(scrapingFile, "extract_scholarship"), map[string]string{
		"URL":     pageURL,
		"Content": text,
	})

	raw, err := s.llm.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to extract scholarship from %s: %w", pageURL, err)
	}
	cleaned := llm.CleanJSONBlock(raw)

	if err := schemas.ValidateScholarship(cleaned); err != nil {
		return nil, &ExtractionError{URL: pageURL, Message: "extracted JSON failed schema validation", Cause: err}
	}

	var extracted extractedScholarship
	if err := json.Unmarshal([]byte(cleaned), &extracted); err != nil {
		return nil, &ExtractionError{URL: pageURL, Message: "failed to parse extracted JSON", Cause: err}
	}

	return s.convert(pageURL, &extracted)
}

// fetchText fetches the page and extracts its main text, falling back to
// headless browser rendering when the static HTML is too thin.
func (s *Scraper) fetchText(ctx context.Context, pageURL string) (string, error) {
	result, err := FetchURL(ctx, pageURL)
	if err != nil {
		return "", err
	}

	text, err := ExtractMainText(result.HTML)
	if err != nil {
		return "", &ExtractionError{URL: pageURL, Message: "failed to extract text", Cause: err}
	}

	if s.opts.UseBrowser && ShouldUseBrowser(text) {
		if s.opts.Verbose {
			log.Printf("[scrape] %s: static HTML too thin (%d bytes), rendering in browser", pageURL, len(text))
		}
		html, err := FetchWithBrowser(ctx, pageURL, s.opts.BrowserTimeout, s.opts.Verbose)
		if err != nil {
			// Keep the static text if the browser is unavailable
			return text, nil
		}
		rendered, err := ExtractMainText(html)
		if err == nil && len(rendered) > len(text) {
			text = rendered
		}
	}

	return text, nil
}

// convert maps the extracted record to a ScholarshipInput.
func (s *Scraper) convert(pageURL string, extracted *extractedScholarship) (*db.ScholarshipInput, error) {
	opening, err := parseDate(extracted.OpeningDate)
	if err != nil {
		return nil, &ExtractionError{URL: pageURL, Message: "invalid opening_date", Cause: err}
	}
	closing, err := parseDate(extracted.ClosingDate)
	if err != nil {
		return nil, &ExtractionError{URL: pageURL, Message: "invalid closing_date", Cause: err}
	}

	status := db.ScholarshipStatusOpen
	if !closing.IsZero() && closing.Before(time.Now()) {
		status = db.ScholarshipStatusClosed
	}

	sourceURL := pageURL
	return &db.ScholarshipInput{
		Title:                extracted.Title,
		Provider:             extracted.Provider,
		Description:          extracted.Description,
		Benefits:             extracted.Benefits,
		Status:               status,
		OpeningDate:          opening,
		ClosingDate:          closing,
		Citizenship:          extracted.Citizenship,
		IncomeCap:            extracted.IncomeCap,
		MinGrades:            extracted.MinGrades,
		EssayQuestion:        extracted.EssayQuestion,
		GroupTaskDescription: extracted.GroupTaskDescription,
		InterviewFocusAreas:  extracted.InterviewFocusAreas,
		SourceURL:            &sourceURL,
	}, nil
}

// parseDate accepts RFC 3339 timestamps and bare dates. Empty strings parse
// to the zero time.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
	}
	return t, nil
}
