package httpclient

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient with the specified timeout.
// A zero timeout leaves the call bounded only by the request context.
func NewRestyClient(timeout time.Duration) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(timeout)}
}

// newRestyBaseClient creates a new resty.Client with the specified timeout.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	c.SetTimeout(timeout)
	c.SetRetryCount(0)
	return c
}

// Post performs an HTTP POST with the raw body and the given headers.
// Responses carrying Content-Encoding: gzip are decompressed by resty.
func (r *RestyClient) Post(ctx context.Context, url string, headers map[string]string, body []byte) (Response, error) {
	req := r.client.R().SetContext(ctx)
	// resty rejects a nil []byte body.
	if len(body) > 0 {
		req.SetBody(body)
	}
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Post(url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }

// Status returns the reason phrase without the leading status code.
func (r *restyResponseAdapter) Status() string {
	return ReasonPhrase(r.resp.StatusCode(), r.resp.Status())
}

// ReasonPhrase extracts the reason from a status line such as "503 Service Unavailable",
// falling back to the canonical text for the code.
func ReasonPhrase(code int, status string) string {
	status = strings.TrimSpace(status)
	if rest, ok := strings.CutPrefix(status, strconv.Itoa(code)); ok {
		status = strings.TrimSpace(rest)
	}
	if status == "" {
		return http.StatusText(code)
	}
	return status
}
