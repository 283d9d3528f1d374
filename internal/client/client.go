package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/arens/quizdeck/internal/errors"
	"github.com/arens/quizdeck/internal/logger"
	"github.com/arens/quizdeck/internal/models"
	"github.com/arens/quizdeck/internal/quiz"
)

// Client talks to the QuizDeck API. Session state (token plus cached
// user) lives in the Store so it survives restarts.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *Store
	log        *logger.Logger
}

func New(baseURL string, store *Store) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		store:      store,
		log:        logger.Default().WithPrefix("client"),
	}
}

// IsLoggedIn reports whether a session token is stored. The token may
// still be expired; the server has the final say.
func (c *Client) IsLoggedIn() bool {
	return c.store.Token() != ""
}

// AuthHeaders returns the headers that authenticate requests, empty when
// logged out.
func (c *Client) AuthHeaders() http.Header {
	h := http.Header{}
	if token := c.store.Token(); token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// CurrentUser returns the logged-in user, refreshing the cached record
// from the server. A rejected token clears the stored session and
// reports logged out rather than an error.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	if !c.IsLoggedIn() {
		return nil, nil
	}

	var user models.User
	err := c.do(ctx, http.MethodGet, "/api/me", nil, &user)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok && appErr.Status == http.StatusUnauthorized {
			c.log.Debug("stored token rejected, clearing session")
			_ = c.store.Clear()
			return nil, nil
		}
		return nil, err
	}

	_ = c.store.SetUser(&user)
	return &user, nil
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates an account and stores the returned session.
func (c *Client) Register(ctx context.Context, username, password string) (*models.User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if err := c.store.SetSession(resp.Token, resp.User); err != nil {
		return nil, err
	}
	c.log.Info("registered as %s", resp.User.Username)
	return resp.User, nil
}

// Login authenticates and stores the returned session.
func (c *Client) Login(ctx context.Context, username, password string) (*models.User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if err := c.store.SetSession(resp.Token, resp.User); err != nil {
		return nil, err
	}
	c.log.Info("logged in as %s", resp.User.Username)
	return resp.User, nil
}

// Logout clears the stored session. Tokens are stateless so there is
// nothing to revoke server-side.
func (c *Client) Logout() error {
	c.log.Info("logged out")
	return c.store.Clear()
}

// SaveScore submits a finished solo session's result. Two-player results
// are local only and are silently skipped. A logged-out user gets an
// AuthRequired error before any request is made; an expired session
// surfaces the server's 401 as-is, with no retry.
func (c *Client) SaveScore(ctx context.Context, s *quiz.Session, categoryID, subcategoryID, difficulty string) (*models.Score, error) {
	if s.Mode() != quiz.ModeSolo {
		c.log.Debug("two-player results are not submitted")
		return nil, nil
	}
	if !s.Ended() {
		return nil, quiz.ErrInvalidState
	}
	if !c.IsLoggedIn() {
		return nil, errors.NewAuthRequiredError("save your score")
	}

	var saved models.Score
	err := c.do(ctx, http.MethodPost, "/api/scores", map[string]any{
		"category_id":     categoryID,
		"subcategory_id":  subcategoryID,
		"difficulty":      difficulty,
		"score":           s.Scores()[1],
		"total_questions": s.Len(),
	}, &saved)
	if err != nil {
		return nil, err
	}
	c.log.Info("score saved: %d/%d", saved.Score, saved.TotalQuestions)
	return &saved, nil
}

// Leaderboard fetches the public leaderboard, optionally filtered.
func (c *Client) Leaderboard(ctx context.Context, categoryID, subcategoryID string, limit int) ([]models.LeaderboardEntry, error) {
	params := url.Values{}
	if categoryID != "" {
		params.Set("category_id", categoryID)
	}
	if subcategoryID != "" {
		params.Set("subcategory_id", subcategoryID)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/leaderboard"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var resp struct {
		Entries []models.LeaderboardEntry `json:"entries"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

// CreateQuiz creates an empty custom quiz.
func (c *Client) CreateQuiz(ctx context.Context, title string) (*models.CustomQuizWithQuestions, error) {
	var created models.CustomQuizWithQuestions
	if err := c.do(ctx, http.MethodPost, "/api/my/quizzes/", map[string]string{"title": title}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// MyQuizzes lists the caller's custom quizzes.
func (c *Client) MyQuizzes(ctx context.Context) ([]models.CustomQuiz, error) {
	var resp struct {
		Quizzes []models.CustomQuiz `json:"quizzes"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/my/quizzes/", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Quizzes, nil
}

// GetQuiz fetches one of the caller's quizzes with its questions.
func (c *Client) GetQuiz(ctx context.Context, id int64) (*models.CustomQuizWithQuestions, error) {
	var q models.CustomQuizWithQuestions
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/my/quizzes/%d", id), nil, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateQuiz renames a quiz.
func (c *Client) UpdateQuiz(ctx context.Context, id int64, title string) (*models.CustomQuizWithQuestions, error) {
	var q models.CustomQuizWithQuestions
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/my/quizzes/%d", id), map[string]string{"title": title}, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// DeleteQuiz removes a quiz and its questions.
func (c *Client) DeleteQuiz(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/my/quizzes/%d", id), nil, nil)
}

// AddQuestion appends a question to a quiz.
func (c *Client) AddQuestion(ctx context.Context, quizID int64, q models.CustomQuizQuestion) (*models.CustomQuizQuestion, error) {
	var added models.CustomQuizQuestion
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/my/quizzes/%d/questions", quizID), map[string]any{
		"question":    q.Text,
		"options":     q.Options,
		"answerIndex": q.AnswerIndex,
	}, &added)
	if err != nil {
		return nil, err
	}
	return &added, nil
}

// UpdateQuestion replaces a question's content.
func (c *Client) UpdateQuestion(ctx context.Context, quizID, questionID int64, q models.CustomQuizQuestion) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/my/quizzes/%d/questions/%d", quizID, questionID), map[string]any{
		"question":    q.Text,
		"options":     q.Options,
		"answerIndex": q.AnswerIndex,
	}, nil)
}

// DeleteQuestion removes a question from a quiz.
func (c *Client) DeleteQuestion(ctx context.Context, quizID, questionID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/my/quizzes/%d/questions/%d", quizID, questionID), nil, nil)
}

// PlayQuiz fetches one of the caller's quizzes in playable form.
// Quizzes are private, so a logged-out user gets an AuthRequired error
// before any request is made.
func (c *Client) PlayQuiz(ctx context.Context, id int64) (string, []quiz.Question, error) {
	if !c.IsLoggedIn() {
		return "", nil, errors.NewAuthRequiredError("play your quizzes")
	}

	var resp struct {
		Title     string          `json:"title"`
		Questions []quiz.Question `json:"questions"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/custom-quizzes/%d/play", id), nil, &resp); err != nil {
		return "", nil, err
	}
	return resp.Title, resp.Questions, nil
}

// do sends one request and decodes the response into out (when non-nil).
// Non-2xx responses are returned as *errors.AppError using the server's
// error payload.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.store.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug("%s %s", method, path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Error.Code == "" {
		return &errors.AppError{
			Code:    errors.ErrCodeInternal,
			Message: fmt.Sprintf("unexpected response %d", resp.StatusCode),
			Status:  resp.StatusCode,
		}
	}
	return &errors.AppError{
		Code:    payload.Error.Code,
		Message: payload.Error.Message,
		Status:  resp.StatusCode,
	}
}
