package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/bank-accounts/pkg/configpkg"
)

func TestCreateLogger(t *testing.T) {
	prod := CreateLogger(configpkg.Config{Environment: "production"})
	require.Equal(t, zerolog.InfoLevel, prod.GetLevel())

	dev := CreateLogger(configpkg.Config{Environment: "development"})
	require.Equal(t, zerolog.TraceLevel, dev.GetLevel())
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name          string
		requestID     string
		handler       gin.HandlerFunc
		wantStatus    int
		wantLevel     string
		wantRequestID func(t *testing.T, got string)
	}{
		{
			name: "GeneratesRequestID",
			handler: func(c *gin.Context) {
				zerolog.Ctx(c.Request.Context()).Info().Msg("inside handler")
				c.Status(http.StatusOK)
			},
			wantStatus: http.StatusOK,
			wantLevel:  "info",
			wantRequestID: func(t *testing.T, got string) {
				require.Len(t, got, 36)
			},
		},
		{
			name:      "KeepsRequestID",
			requestID: "req-42",
			handler: func(c *gin.Context) {
				c.Status(http.StatusNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantLevel:  "info",
			wantRequestID: func(t *testing.T, got string) {
				require.Equal(t, "req-42", got)
			},
		},
		{
			name: "Panic",
			handler: func(c *gin.Context) {
				panic("boom")
			},
			wantStatus: http.StatusInternalServerError,
			wantLevel:  "error",
			wantRequestID: func(t *testing.T, got string) {
				require.NotEmpty(t, got)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer

			server := gin.New()
			server.Use(RequestLogger(zerolog.New(&buf)))
			server.GET("/ping", tc.handler)

			req, err := http.NewRequest(http.MethodGet, "/ping", nil)
			require.NoError(t, err)

			if tc.requestID != "" {
				req.Header.Set(RequestIDHeader, tc.requestID)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			require.Equal(t, tc.wantStatus, recorder.Code)

			requestID := recorder.Header().Get(RequestIDHeader)
			tc.wantRequestID(t, requestID)

			lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
			require.NotEmpty(t, lines)

			var last map[string]any
			require.NoError(t, json.Unmarshal(lines[len(lines)-1], &last))

			require.Equal(t, tc.wantLevel, last["level"])
			require.Equal(t, requestID, last["request_id"])
			require.Equal(t, "/ping", last["path"])
			require.Equal(t, float64(tc.wantStatus), last["status_code"])

			for _, line := range lines {
				var entry map[string]any
				require.NoError(t, json.Unmarshal(line, &entry))
				require.Equal(t, requestID, entry["request_id"])
			}
		})
	}
}
