package ipinfo_test

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"

	"github.com/imroc/req/v3"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/B3RT1337/lookup-bot/internal/services"
	"github.com/B3RT1337/lookup-bot/internal/services/ipinfo"
	"github.com/B3RT1337/lookup-bot/internal/testutil"
)

func newTestClient(t *testing.T) *req.Client {
	t.Helper()
	client := req.NewClient()
	httpmock.ActivateNonDefault(client.GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return client
}

func TestRun_ValidIP(t *testing.T) {
	fixture, err := os.ReadFile("testdata/ipinfo_response.json")
	require.NoError(t, err)

	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, "https://ipinfo.io/8.8.8.8/json",
		httpmock.NewBytesResponder(http.StatusOK, fixture).HeaderSet(http.Header{"Content-Type": {"application/json"}}))

	svc := ipinfo.NewService(client, "", "", testutil.NopLogger())
	details, err := svc.Run(context.Background(), "8.8.8.8")
	require.NoError(t, err)

	assert.Equal(t, services.IPDetails{
		IP:           "8.8.8.8",
		Hostname:     "dns.google",
		City:         "Mountain View",
		Region:       "California",
		Country:      "US",
		Coordinates:  "37.4056,-122.0775",
		Organization: "AS15169 Google LLC",
		Timezone:     "America/Los_Angeles",
		PostalCode:   "94043",
		Network:      "N/A",
	}, *details)
}

func TestRun_MissingFieldsDefaultToNA(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, "https://ipinfo.io/192.0.2.1/json",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{"ip": "192.0.2.1", "bogon": true}))

	svc := ipinfo.NewService(client, "", "", testutil.NopLogger())
	details, err := svc.Run(context.Background(), "192.0.2.1")
	require.NoError(t, err)

	assert.Equal(t, "192.0.2.1", details.IP)
	assert.Equal(t, "N/A", details.City)
	assert.Equal(t, "N/A", details.Hostname)
	assert.Equal(t, "N/A", details.Organization)
	assert.Equal(t, "N/A", details.PostalCode)
}

func TestRun_TokenSentAsBearer(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, "https://ipinfo.io/1.1.1.1/json",
		func(r *http.Request) (*http.Response, error) {
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			return httpmock.NewJsonResponse(http.StatusOK, map[string]string{"ip": "1.1.1.1"})
		})

	svc := ipinfo.NewService(client, "", "secret", testutil.NopLogger())
	_, err := svc.Run(context.Background(), "1.1.1.1")
	require.NoError(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestRun_CustomBaseURL(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, "http://geo.internal/v1/9.9.9.9/json",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]string{"ip": "9.9.9.9", "city": "Zurich"}))

	svc := ipinfo.NewService(client, "http://geo.internal/v1/", "", testutil.NopLogger())
	details, err := svc.Run(context.Background(), "9.9.9.9")
	require.NoError(t, err)
	assert.Equal(t, "Zurich", details.City)
}

func TestRun_MalformedInputRejectedByAPI(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, "https://ipinfo.io/not-an-ip/json",
		httpmock.NewStringResponder(http.StatusNotFound, `{"status":404,"error":{"title":"Wrong ip"}}`))

	svc := ipinfo.NewService(client, "", "", testutil.NopLogger())
	details, err := svc.Run(context.Background(), "not-an-ip")
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrRequestFailed)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "not-an-ip")
	assert.Nil(t, details)
}

func TestRun_NetworkError(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, "https://ipinfo.io/8.8.8.8/json",
		httpmock.NewErrorResponder(fmt.Errorf("connection reset by peer")))

	svc := ipinfo.NewService(client, "", "", testutil.NopLogger())
	details, err := svc.Run(context.Background(), "8.8.8.8")
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrRequestFailed)
	assert.Contains(t, err.Error(), "connection reset by peer")
	assert.Nil(t, details)
}

func TestRun_ANSISanitization(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, "https://ipinfo.io/8.8.8.8/json",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]string{"ip": "8.8.8.8", "org": "\x1b[31mEvil\x1b[0m"}))

	svc := ipinfo.NewService(client, "", "", testutil.NopLogger())
	details, err := svc.Run(context.Background(), "8.8.8.8")
	require.NoError(t, err)
	assert.Equal(t, "Evil", details.Organization)
}
