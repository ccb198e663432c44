package authx

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/adcsa/ged/sdk/internal/restmachinery"
	"github.com/stretchr/testify/require"
)

var testClientOptions = &APIClientOptions{
	AllowInsecureConnections: true,
}

func requireBaseClient(t *testing.T, baseClient *restmachinery.BaseClient) {
	require.NotNil(t, baseClient)
	require.NotNil(t, baseClient.HTTPClient)
}

func requireRequestBody(t *testing.T, r *http.Request, expected interface{}) {
	bodyBytes, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	expectedBytes, err := json.Marshal(expected)
	require.NoError(t, err)
	require.JSONEq(t, string(expectedBytes), string(bodyBytes))
}
