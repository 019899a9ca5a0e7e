package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// Provider error codes translated to user-facing messages. The provider
// surfaces opaque codes; everything unknown maps to a generic message.
var errorMessages = map[string]string{
	"auth/wrong-password":         "Incorrect email or password.",
	"auth/user-not-found":         "Incorrect email or password.",
	"auth/email-already-in-use":   "An account with this email already exists.",
	"auth/weak-password":          "Password is too weak. Use at least 6 characters.",
	"auth/too-many-requests":      "Too many attempts. Try again later.",
	"auth/invalid-email":          "Email address is not valid.",
	"auth/network-request-failed": "Could not reach the sign-in service. Try again.",
}

// TranslateErrorCode maps a provider error code to a user message.
func TranslateErrorCode(code string) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "Sign-in failed. Please try again."
}

// Client talks to the external auth provider over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

func (c *Client) Login(req LoginRequest) (*SessionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest("POST", c.baseURL+"/auth/login/", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var apiResp SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		if apiResp.Code != "" {
			return nil, errors.New(TranslateErrorCode(apiResp.Code))
		}
		return nil, errors.New("Auth API returned non-OK status: " + resp.Status)
	}

	return &apiResp, nil
}

func (c *Client) Register(req RegisterRequest) (*SessionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest("POST", c.baseURL+"/auth/register/", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var apiResp SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		if apiResp.Code != "" {
			return nil, errors.New(TranslateErrorCode(apiResp.Code))
		}
		return nil, errors.New("Auth API returned non-OK status: " + resp.Status)
	}

	return &apiResp, nil
}
