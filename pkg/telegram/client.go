package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/iconidentify/vidgate/internal/config"
	"github.com/iconidentify/vidgate/internal/domain"
)

// Client talks to the Telegram Bot API over HTTPS.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a new Bot API client.
func NewClient(cfg config.BotConfig) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		token:   cfg.Token,
	}
}

// apiResponse is the Bot API envelope around every method result.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
}

// call invokes a Bot API method and decodes its result into out.
// out may be nil when the caller only cares about success.
func (c *Client) call(ctx context.Context, method string, params url.Values, out interface{}) error {
	endpoint := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	var env apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if !env.OK {
		return fmt.Errorf("%w: %s %s (code %d)", domain.ErrTelegramAPI, method, env.Description, env.ErrorCode)
	}

	if out != nil {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
	}

	return nil
}

// GetMe returns the bot's own account, including its username
// used for deep links.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	var user User
	if err := c.call(ctx, "getMe", url.Values{}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetFile resolves a file handle into a downloadable file path.
func (c *Client) GetFile(ctx context.Context, fileID string) (*File, error) {
	params := url.Values{}
	params.Set("file_id", fileID)

	var file File
	if err := c.call(ctx, "getFile", params, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// DownloadFile fetches file content by the path returned from GetFile
// and writes it to destPath.
func (c *Client) DownloadFile(ctx context.Context, filePath, destPath string) error {
	endpoint := fmt.Sprintf("%s/file/bot%s/%s", c.baseURL, c.token, filePath)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", domain.ErrDownloadFailed, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("create download directory: %w", err)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	_, err = io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(destPath)
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// SendMessage sends a plain text message to a chat.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	params := url.Values{}
	params.Set("chat_id", strconv.FormatInt(chatID, 10))
	params.Set("text", text)

	return c.call(ctx, "sendMessage", params, nil)
}

// SendVideo sends a video to a chat by its file handle. Telegram
// serves the original bytes itself; nothing is re-uploaded.
func (c *Client) SendVideo(ctx context.Context, chatID int64, fileID string) error {
	params := url.Values{}
	params.Set("chat_id", strconv.FormatInt(chatID, 10))
	params.Set("video", fileID)

	return c.call(ctx, "sendVideo", params, nil)
}

// SetWebhook registers webhookURL as the bot's update endpoint and
// returns the API's human-readable description.
func (c *Client) SetWebhook(ctx context.Context, webhookURL string) (string, error) {
	params := url.Values{}
	params.Set("url", webhookURL)

	endpoint := fmt.Sprintf("%s/bot%s/setWebhook", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	var env apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if !env.OK {
		return env.Description, fmt.Errorf("%w: setWebhook %s (code %d)", domain.ErrTelegramAPI, env.Description, env.ErrorCode)
	}

	return env.Description, nil
}
