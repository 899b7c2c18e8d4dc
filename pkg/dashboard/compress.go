package dashboard

import (
	"io"
	"net/http"

	"github.com/andybalholm/brotli"
	"github.com/labstack/echo/v4"
)

// compressedWriter sends the body through the negotiated encoder while
// headers and status go to the underlying response.
type compressedWriter struct {
	io.Writer
	http.ResponseWriter
}

func (w *compressedWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

// compressMiddleware encodes responses with brotli or gzip according to the
// request's Accept-Encoding. Skipped paths are served as is.
func compressMiddleware(skip ...string) echo.MiddlewareFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, path := range skip {
		skipped[path] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := skipped[c.Path()]; ok || c.Request().Method == http.MethodHead {
				return next(c)
			}

			response := c.Response()
			original := response.Writer
			encoder := brotli.HTTPCompressor(original, c.Request())
			response.Writer = &compressedWriter{Writer: encoder, ResponseWriter: original}

			// Errors are rendered here so the error body is encoded too.
			if err := next(c); err != nil {
				c.Error(err)
			}

			if response.Size == 0 {
				response.Header().Del(echo.HeaderContentEncoding)
				response.Writer = original
				return nil
			}
			return encoder.Close()
		}
	}
}
