package clinic_api

import (
	"bytes"
	"clinic-booking-service/internal/app/config"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/exceptions"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client is the shared transport to the clinic backend. It forwards the
// caller's access token as a cookie and throttles outbound calls.
type Client struct {
	BaseUrl    string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Log        *zap.Logger
}

func NewClient(logger *zap.Logger, internalConfig *config.InternalConfig) *Client {
	timeout := time.Duration(internalConfig.Clinic.RequestTimeoutInSeconds) * time.Second
	limit := rate.Inf
	burst := 1
	if internalConfig.Clinic.MaxRequestsPerSecond > 0 {
		limit = rate.Limit(internalConfig.Clinic.MaxRequestsPerSecond)
		burst = internalConfig.Clinic.MaxRequestsPerSecond
	}

	return &Client{
		BaseUrl:    strings.TrimRight(internalConfig.Clinic.BaseUrl, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Limiter:    rate.NewLimiter(limit, burst),
		Log:        logger,
	}
}

type clinicRequest struct {
	method   string
	resource string
	path     string
	query    url.Values
	body     interface{}
}

// do sends the request and returns the body of a 2xx response. Any other
// status is translated into a CustomError.
func (c *Client) do(ctx context.Context, in clinicRequest) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	endpoint := c.BaseUrl + in.path
	if len(in.query) > 0 {
		endpoint += "?" + in.query.Encode()
	}
	c.Log.Info("clinic_api.Client.do built URL",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMethodKey, in.method),
		zap.String(constvars.LoggingClinicUrlKey, endpoint),
	)

	var body io.Reader
	if in.body != nil {
		payload, err := json.Marshal(in.body)
		if err != nil {
			return nil, exceptions.ErrCannotMarshalJSON(err)
		}
		body = bytes.NewReader(payload)
	}

	if err := c.Limiter.Wait(ctx); err != nil {
		c.Log.Error("clinic_api.Client.do rate limiter wait failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrClinicTimeout(err, in.resource)
	}

	req, err := http.NewRequestWithContext(ctx, in.method, endpoint, body)
	if err != nil {
		c.Log.Error("clinic_api.Client.do error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	if in.body != nil {
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	}
	if requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}
	if accessToken, ok := ctx.Value(constvars.CONTEXT_ACCESS_TOKEN_KEY).(string); ok && accessToken != "" {
		req.AddCookie(&http.Cookie{Name: constvars.CookieUserAccessToken, Value: accessToken})
	}

	startTime := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("clinic_api.Client.do error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(startTime)),
			zap.Error(err),
		)
		if isTimeout(err) {
			return nil, exceptions.ErrClinicTimeout(err, in.resource)
		}
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Log.Error("clinic_api.Client.do error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if isTimeout(err) {
			return nil, exceptions.ErrClinicTimeout(err, in.resource)
		}
		return nil, exceptions.ErrReadHTTPResponse(err)
	}

	c.Log.Info("clinic_api.Client.do received response",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		zap.Duration(constvars.LoggingDurationKey, time.Since(startTime)),
	)

	if resp.StatusCode < constvars.StatusOK || resp.StatusCode >= 300 {
		backendErr := classifyResponse(in.resource, resp.StatusCode, bodyBytes)
		c.Log.Error("clinic_api.Client.do clinic backend error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(backendErr),
		)
		return nil, backendErr
	}
	return bodyBytes, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
