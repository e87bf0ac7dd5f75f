package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// oauthError is the error body of the identity server.
type oauthError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	var oe oauthError
	if json.Unmarshal(resp.Body(), &oe) == nil {
		switch oe.Error {
		case ErrInvalidGrant.Error():
			return fmt.Errorf("%w: %s", ErrInvalidGrant, oe.ErrorDescription)
		case ErrInvalidClient.Error():
			return fmt.Errorf("%w: %s", ErrInvalidClient, oe.ErrorDescription)
		}
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("%w: http %d: %s", ErrRequestFailed, resp.StatusCode(), body)
	}
}
