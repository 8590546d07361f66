package predict

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequest() Request {
	return Request{
		SoftSkillsRating: 7,
		Major:            "CS",
		TechnicalSkills:  "Python",
		SoftSkills:       "Communication",
		CareerInterest:   "Data",
	}
}

func TestRequest_WireFormat(t *testing.T) {
	body, err := json.Marshal(sampleRequest())
	require.NoError(t, err)
	want := `{"SoftSkillsRating":7,"Major":"CS","Technical Skills":"Python","Soft Skills":"Communication","Career Interest":"Data"}`
	assert.Equal(t, want, string(body))
}

func TestRequest_Validate(t *testing.T) {
	require.NoError(t, sampleRequest().Validate())

	bad := sampleRequest()
	bad.SoftSkillsRating = 11
	bad.Major = ""
	err := bad.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	var fields []string
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"SoftSkillsRating", "Major"}, fields)
	assert.Contains(t, err.Error(), "SoftSkillsRating must not exceed 10")
}

func TestResponse_PredictionText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"Data Scientist"`, "Data Scientist"},
		{`42`, "42"},
		{``, ""},
	}
	for _, tt := range tests {
		r := Response{Prediction: json.RawMessage(tt.raw)}
		assert.Equal(t, tt.want, r.PredictionText())
	}
}

func TestClient_Predict_Success(t *testing.T) {
	var gotBody []byte
	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		gotHeaders = r.Header.Clone()
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"prediction":"Data Scientist"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/predict", WithUserAgent("test-agent"))
	ctx := WithRequestID(context.Background(), "req-42")
	resp, err := c.Predict(ctx, sampleRequest())
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "Data Scientist", resp.PredictionText())

	var sent, want map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &sent))
	wantBody, _ := json.Marshal(sampleRequest())
	require.NoError(t, json.Unmarshal(wantBody, &want))
	if diff := cmp.Diff(want, sent); diff != "" {
		t.Errorf("request body mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "test-agent", gotHeaders.Get("User-Agent"))
	assert.Equal(t, "req-42", gotHeaders.Get("X-Request-ID"))
}

func TestClient_Predict_GeneratesRequestID(t *testing.T) {
	var id string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`{"success":true,"prediction":"x"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Predict(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Len(t, id, 36)
}

func TestClient_Predict_ApplicationFailureIgnoresStatus(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusBadRequest, http.StatusUnauthorized, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"success":false,"error":"Model unavailable"}`))
		}))

		resp, err := NewClient(srv.URL).Predict(context.Background(), sampleRequest())
		srv.Close()
		require.NoError(t, err, "status %d", status)
		assert.False(t, resp.Success)
		assert.Equal(t, "Model unavailable", resp.ErrorText())
	}
}

func TestClient_Predict_NonStringError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"object", `{"success":false,"error":{"code":42,"detail":"bad input"}}`, `{"code":42,"detail":"bad input"}`},
		{"null", `{"success":false,"error":null}`, ""},
		{"omitted", `{"success":false}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			resp, err := NewClient(srv.URL).Predict(context.Background(), sampleRequest())
			require.NoError(t, err)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.want, resp.ErrorText())
		})
	}
}

func TestClient_Predict_TransportFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"html", "<html>502 Bad Gateway</html>"},
		{"empty", ""},
		{"null", "null"},
		{"array", `[{"success":true}]`},
		{"truncated", `{"success":tr`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).Predict(context.Background(), sampleRequest())
			require.Error(t, err)
			assert.True(t, IsTransport(err), "got %T: %v", err, err)
		})
	}
}

func TestClient_Predict_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Predict(context.Background(), sampleRequest())
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "send request", te.Op)
}

func TestClient_Predict_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, WithTimeout(50*time.Millisecond))
	_, err := c.Predict(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.True(t, IsTransport(err))
}

func TestClient_Predict_InvalidRequestNotSent(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	req := sampleRequest()
	req.SoftSkillsRating = 0
	_, err := NewClient(srv.URL).Predict(context.Background(), req)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.False(t, IsTransport(err))
	assert.False(t, called)
}
