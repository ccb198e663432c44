package restmachinery

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/adcsa/ged/sdk/meta"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// APIClientOptions encapsulates optional API client configuration.
type APIClientOptions struct {
	// AllowInsecureConnections disables TLS certificate verification.
	AllowInsecureConnections bool
	// Timeout bounds every call. Zero means no timeout.
	Timeout time.Duration
	// WrapTransport, when non-nil, wraps the client's transport. Request
	// decorators are installed this way.
	WrapTransport func(http.RoundTripper) http.RoundTripper
}

// BaseClient provides "API machinery" used by all the specialized API
// clients. Its various functions remove the tedium from common API-related
// operations.
type BaseClient struct {
	APIAddress string
	HTTPClient *http.Client
}

// NewBaseClient returns a BaseClient for the API at apiAddress.
func NewBaseClient(apiAddress string, opts *APIClientOptions) *BaseClient {
	if opts == nil {
		opts = &APIClientOptions{}
	}
	var transport http.RoundTripper = &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: opts.AllowInsecureConnections, // nolint: gosec
		},
	}
	if opts.WrapTransport != nil {
		transport = opts.WrapTransport(transport)
	}
	return &BaseClient{
		APIAddress: strings.TrimSuffix(apiAddress, "/"),
		HTTPClient: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
	}
}

// ExecuteRequest submits the request and, if a RespObj was supplied, decodes
// the response body into it. When a RespSchemaLoader was supplied, the body
// must satisfy that schema before it is decoded.
func (b *BaseClient) ExecuteRequest(
	ctx context.Context,
	req OutboundRequest,
) error {
	resp, err := b.SubmitRequest(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if req.RespObj != nil {
		respBodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return errors.Wrap(err, "error reading response body")
		}
		if req.RespSchemaLoader != nil {
			if err = validateResponseBody(req.RespSchemaLoader, respBodyBytes); err != nil {
				return err
			}
		}
		if err := json.Unmarshal(respBodyBytes, req.RespObj); err != nil {
			return errors.Wrap(err, "error unmarshaling response body")
		}
	}
	return nil
}

// SubmitRequest submits the request and returns the raw response. Any status
// other than the expected success code is translated into one of the typed
// errors from the meta package.
func (b *BaseClient) SubmitRequest(
	ctx context.Context,
	req OutboundRequest,
) (*http.Response, error) {
	var reqBodyReader io.Reader
	if req.ReqBodyObj != nil {
		switch rb := req.ReqBodyObj.(type) {
		case []byte:
			reqBodyReader = bytes.NewBuffer(rb)
		default:
			reqBodyBytes, err := json.Marshal(req.ReqBodyObj)
			if err != nil {
				return nil, errors.Wrap(err, "error marshaling request body")
			}
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	r, err := http.NewRequestWithContext(
		ctx,
		req.Method,
		fmt.Sprintf("%s/%s", b.APIAddress, req.Path),
		reqBodyReader,
	)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error creating request %s %s",
			req.Method,
			req.Path,
		)
	}
	if len(req.QueryParams) > 0 {
		q := r.URL.Query()
		for k, v := range req.QueryParams {
			q.Set(k, v)
		}
		r.URL.RawQuery = q.Encode()
	}
	if reqBodyReader != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	r.Header.Set("Accept", "application/json")
	for k, v := range req.Headers {
		r.Header.Add(k, v)
	}

	resp, err := b.HTTPClient.Do(r)
	if err != nil {
		return nil, errors.Wrap(err, "error invoking API")
	}

	if (req.SuccessCode == 0 && resp.StatusCode != http.StatusOK) ||
		(req.SuccessCode != 0 && resp.StatusCode != req.SuccessCode) {
		defer resp.Body.Close()
		// HTTP Response code hints at what sort of error might be in the body
		// of the response
		var apiErr error
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			apiErr = &meta.ErrAuthentication{}
		case http.StatusForbidden:
			apiErr = &meta.ErrAuthorization{}
		case http.StatusBadRequest:
			apiErr = &meta.ErrBadRequest{}
		case http.StatusNotFound:
			apiErr = &meta.ErrNotFound{}
		case http.StatusConflict:
			apiErr = &meta.ErrConflict{}
		case http.StatusInternalServerError:
			apiErr = &meta.ErrInternalServer{}
		default:
			return nil, errors.Errorf("received %d from API server", resp.StatusCode)
		}
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.Wrap(err, "error reading error response body")
		}
		if len(bodyBytes) > 0 && json.Valid(bodyBytes) {
			if err = json.Unmarshal(bodyBytes, apiErr); err != nil {
				return nil, errors.Wrap(err, "error unmarshaling error response body")
			}
		}
		return nil, apiErr
	}
	return resp, nil
}

func validateResponseBody(
	schemaLoader gojsonschema.JSONLoader,
	bodyBytes []byte,
) error {
	validationResult, err := gojsonschema.Validate(
		schemaLoader,
		gojsonschema.NewBytesLoader(bodyBytes),
	)
	if err != nil {
		return errors.Wrap(err, "error validating response body")
	}
	if !validationResult.Valid() {
		verrStrs := make([]string, len(validationResult.Errors()))
		for i, verr := range validationResult.Errors() {
			verrStrs[i] = verr.String()
		}
		return errors.Errorf(
			"response body failed JSON validation: %s",
			strings.Join(verrStrs, "; "),
		)
	}
	return nil
}
