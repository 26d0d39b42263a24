package httpc

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"time"
)

// Client represents an HTTP client with customizable options
type Client struct {
	httpClient *http.Client
	transport  *http.Transport
	baseURL    string
	headers    map[string]string
	proxyErr   error
}

// ClientOption is a function that configures a Client
type ClientOption func(*Client)

// NewClient creates a new HTTP client with the given options
func NewClient(options ...ClientOption) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	client := &Client{
		transport: transport,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		headers: make(map[string]string),
	}

	// Apply options
	for _, option := range options {
		option(client)
	}

	return client
}

// WithBaseURL sets the base URL for the client
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the timeout for the client
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHeader adds a header to the client
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithProxy routes all outbound requests through the given proxy URL.
// This is the explicit seam for an intercepting debugging proxy;
// ambient HTTP_PROXY/HTTPS_PROXY environment settings are not consulted
// once a proxy is set here.
func WithProxy(proxyURL string) ClientOption {
	return func(c *Client) {
		parsed, err := url.Parse(proxyURL)
		if err != nil {
			c.proxyErr = err
			return
		}
		c.transport.Proxy = http.ProxyURL(parsed)
	}
}

// WithInsecureTLS disables verification of the upstream's TLS
// certificate chain. Needed when an intercepting proxy re-signs
// traffic with its own CA that the host does not trust.
func WithInsecureTLS(insecure bool) ClientOption {
	return func(c *Client) {
		if c.transport.TLSClientConfig == nil {
			c.transport.TLSClientConfig = &tls.Config{}
		}
		c.transport.TLSClientConfig.InsecureSkipVerify = insecure
	}
}

// WithTransport replaces the underlying transport entirely.
// Options that mutate the transport (WithProxy, WithInsecureTLS) must
// come after it to take effect.
func WithTransport(transport *http.Transport) ClientOption {
	return func(c *Client) {
		c.transport = transport
		c.httpClient.Transport = transport
	}
}

// BaseURL returns the base URL the client resolves request paths against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes an HTTP request and returns the response with detailed timing information
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if c.proxyErr != nil {
		return nil, c.proxyErr
	}

	// Build the HTTP request
	httpReq, err := req.Build(c.baseURL)
	if err != nil {
		return nil, err
	}

	// Add client headers
	for key, value := range c.headers {
		httpReq.Header.Set(key, value)
	}

	// Initialize timing info
	timing := TimingInfo{
		StartTime: time.Now(),
	}

	// Create a trace to capture detailed timing information
	var dnsStart, connectStart, tlsHandshakeStart time.Time
	var dnsDone, connectDone bool
	var lastPhaseEnd time.Time

	// The first phase starts at the request start
	lastPhaseEnd = timing.StartTime

	trace := &httptrace.ClientTrace{
		DNSStart: func(info httptrace.DNSStartInfo) {
			dnsStart = time.Now()
		},
		DNSDone: func(info httptrace.DNSDoneInfo) {
			dnsEnd := time.Now()
			timing.DNSLookupTime = dnsEnd.Sub(dnsStart)
			dnsDone = true
			lastPhaseEnd = dnsEnd
		},
		ConnectStart: func(network, addr string) {
			if dnsDone {
				connectStart = time.Now()
			}
		},
		ConnectDone: func(network, addr string, err error) {
			if err == nil {
				connectEnd := time.Now()
				timing.TCPConnectTime = connectEnd.Sub(connectStart)
				connectDone = true
				lastPhaseEnd = connectEnd
			}
		},
		TLSHandshakeStart: func() {
			if connectDone {
				tlsHandshakeStart = time.Now()
			}
		},
		TLSHandshakeDone: func(state tls.ConnectionState, err error) {
			if err == nil {
				tlsHandshakeEnd := time.Now()
				timing.TLSHandshakeTime = tlsHandshakeEnd.Sub(tlsHandshakeStart)
				lastPhaseEnd = tlsHandshakeEnd
			}
		},
		GotFirstResponseByte: func() {
			// Time to first byte counts from the end of the last
			// completed connection phase
			timing.TimeToFirstByte = time.Since(lastPhaseEnd)
		},
	}

	// Add the trace to the request context
	httpReq = httpReq.WithContext(httptrace.WithClientTrace(ctx, trace))

	// Execute the request
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}

	// Read and close the body
	contentTransferStart := time.Now()
	bodyBytes, err := io.ReadAll(httpResp.Body)
	httpResp.Body.Close()
	if err != nil {
		return nil, err
	}
	timing.ContentTransferTime = time.Since(contentTransferStart)

	timing.TotalTime = time.Since(timing.StartTime)

	// Create response with the body already read and cached
	resp := &Response{
		StatusCode:   httpResp.StatusCode,
		Status:       httpResp.Status,
		Headers:      httpResp.Header,
		Body:         io.NopCloser(bytes.NewReader(bodyBytes)),
		ResponseTime: timing.TotalTime,
		Timing:       timing,
		rawBody:      bodyBytes,
		parsed:       true,
	}

	return resp, nil
}
