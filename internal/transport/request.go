package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/agentstation/marquee/pkg/errors"
	"github.com/agentstation/marquee/pkg/logging"
)

// DecodeResponse decodes a JSON response into target and closes the body.
// A non-200 status or an undecodable body is a NetworkError.
func DecodeResponse(resp *http.Response, target any, operation string) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Str("operation", operation).Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapNetwork(operation, err)
	}

	if resp.StatusCode != http.StatusOK {
		return errors.NewNetworkError(operation, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if err := json.Unmarshal(body, target); err != nil {
		return &errors.NetworkError{Operation: operation, StatusCode: resp.StatusCode, Message: "malformed response body", Err: err}
	}

	return nil
}
