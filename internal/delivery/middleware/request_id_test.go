package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverycontext "brewshare/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware_Process(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantKept bool
	}{
		{name: "client id kept", header: "abc-123_x.y", wantKept: true},
		{name: "missing id minted"},
		{name: "unsafe id replaced", header: "abc\nlevel=ERROR"},
		{name: "oversized id replaced", header: strings.Repeat("a", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			m := NewRequestIDMiddleware(slog.New(slog.NewJSONHandler(&logs, nil)))

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var ctxID string
			err := m.Process(func(c echo.Context) error {
				ctxID = deliverycontext.GetRequestIDFromContext(c.Request().Context())
				deliverycontext.GetLogger(c.Request().Context()).Info("inside")

				return nil
			})(c)
			require.NoError(t, err)

			headerID := rec.Header().Get(deliverycontext.HeaderXRequestID)
			assert.NotEmpty(t, headerID)
			assert.Equal(t, headerID, ctxID)
			assert.Equal(t, headerID, deliverycontext.GetRequestID(c))
			assert.Contains(t, logs.String(), `"request_id":"`+headerID+`"`)
			if tt.wantKept {
				assert.Equal(t, tt.header, headerID)
			} else {
				assert.NotEqual(t, tt.header, headerID)
			}
		})
	}
}
