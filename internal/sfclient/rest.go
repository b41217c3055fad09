package sfclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/locvowork/objectdoc/internal/domain"
)

type restError struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}

func decodeAPIError(status int, data []byte) error {
	apiErr := &APIError{StatusCode: status}
	var errs []restError
	if err := json.Unmarshal(data, &errs); err == nil && len(errs) > 0 {
		apiErr.Code = errs[0].ErrorCode
		apiErr.Message = errs[0].Message
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(data))
	return apiErr
}

// Describe returns the full schema describe of one object.
func (c *Client) Describe(ctx context.Context, objectName string) (*domain.ObjectDescribe, error) {
	data, err := c.getJSON(ctx, "/sobjects/"+url.PathEscape(objectName)+"/describe")
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", objectName, err)
	}
	var d domain.ObjectDescribe
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode describe %s: %w", objectName, err)
	}
	return &d, nil
}

// DescribeGlobal lists every object visible to the session.
func (c *Client) DescribeGlobal(ctx context.Context) (*domain.GlobalDescribe, error) {
	data, err := c.getJSON(ctx, "/sobjects")
	if err != nil {
		return nil, fmt.Errorf("describe global: %w", err)
	}
	var g domain.GlobalDescribe
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decode describe global: %w", err)
	}
	return &g, nil
}
