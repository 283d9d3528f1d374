package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/arens/quizdeck/internal/logger"
)

// Response codes returned by the Open Trivia DB API.
const (
	codeSuccess         = 0
	codeNoResults       = 1
	codeInvalidParam    = 2
	codeTokenNotFound   = 3
	codeTokenEmpty      = 4
	codeRateLimited     = 5
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://opentdb.com"
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.Default().WithPrefix("opentdb"),
	}
}

// Result is one raw question record as returned by the API. Text fields are
// HTML-entity encoded; normalization happens in the questions package.
type Result struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type apiResponse struct {
	ResponseCode int      `json:"response_code"`
	Results      []Result `json:"results"`
}

// FetchQuestions queries the trivia API for multiple-choice questions in the
// given category. An empty difficulty or "mixed" requests any difficulty.
// An empty result set is not an error here; the caller decides how to
// surface "no questions available".
func (c *Client) FetchQuestions(ctx context.Context, categoryID, amount int, difficulty string) ([]Result, error) {
	log := logger.FromContext(ctx).WithPrefix("opentdb").WithField("category_id", categoryID)

	params := url.Values{}
	params.Set("amount", strconv.Itoa(amount))
	params.Set("type", "multiple")
	if categoryID > 0 {
		params.Set("category", strconv.Itoa(categoryID))
	}
	if difficulty != "" && difficulty != "mixed" {
		params.Set("difficulty", difficulty)
	}
	reqURL := fmt.Sprintf("%s/api.php?%s", c.baseURL, params.Encode())

	log.Debug("fetching questions from: %s", reqURL)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch questions: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("trivia response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("trivia request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("trivia api status %d: %s", resp.StatusCode, string(body))
	}

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Error("failed to decode trivia response: %v", err)
		return nil, err
	}

	switch out.ResponseCode {
	case codeSuccess:
	case codeNoResults, codeTokenEmpty:
		log.Warn("trivia api returned no results for category %d", categoryID)
		return nil, nil
	case codeRateLimited:
		return nil, fmt.Errorf("trivia api rate limited")
	default:
		return nil, fmt.Errorf("trivia api response code %d", out.ResponseCode)
	}

	log.Info("fetched %d questions for category %d", len(out.Results), categoryID)
	return out.Results, nil
}
