// Package report fetches a user's summary and log history from the API and
// renders them for a terminal.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Body struct {
	WeightUnit string `json:"weight_unit"`
	HeightUnit string `json:"height_unit"`
	Weight     string `json:"weight"`
	Height     string `json:"height"`
}

type Summary struct {
	Period         string  `json:"period"`
	From           string  `json:"from"`
	To             string  `json:"to"`
	Score          float64 `json:"score"`
	Percentile     int     `json:"percentile"`
	Badge          string  `json:"badge"`
	Achievement    string  `json:"achievement"`
	Motivational   string  `json:"motivational"`
	WorkoutsDone   int     `json:"workouts_done"`
	WorkoutsTarget int     `json:"workouts_target"`
	MealsDone      int     `json:"meals_done"`
	MealsTarget    int     `json:"meals_target"`
	HasPR          bool    `json:"has_pr"`
	AthleteLabel   string  `json:"athlete_label"`
	Body           Body    `json:"body"`
}

type LogPoint struct {
	Date     string `json:"date"`
	Workouts int    `json:"workouts"`
	Meals    int    `json:"meals"`
	HasPR    bool   `json:"has_pr"`
}

// APIError is a non-2xx answer in the API's error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: %s (%d): %s", e.Code, e.Status, e.Message)
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Summary(ctx context.Context, period, weightUnit, heightUnit string) (Summary, error) {
	query := url.Values{}
	query.Set("period", period)
	if weightUnit != "" {
		query.Set("weight_unit", weightUnit)
	}
	if heightUnit != "" {
		query.Set("height_unit", heightUnit)
	}

	var summary Summary
	err := c.get(ctx, "/api/summary?"+query.Encode(), &summary)
	return summary, err
}

func (c *Client) History(ctx context.Context, days int) ([]LogPoint, error) {
	var payload struct {
		Items []LogPoint `json:"items"`
	}
	err := c.get(ctx, "/api/logs/history?days="+strconv.Itoa(days), &payload)
	return payload.Items, err
}

func (c *Client) get(ctx context.Context, path string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&envelope) == nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
