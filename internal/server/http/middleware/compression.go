package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxRequestBody bounds request bodies after decompression.
const maxRequestBody = 1 << 20

// DecompressRequest transparently handles gzip encoded requests and caps the
// body size.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		originalBody := c.Request.Body
		if !strings.Contains(c.GetHeader("Content-Encoding"), "gzip") {
			c.Request.Body = http.MaxBytesReader(c.Writer, originalBody, maxRequestBody)
			c.Next()
			return
		}

		reader, err := gzip.NewReader(originalBody)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer reader.Close()
		defer originalBody.Close()

		c.Request.Body = http.MaxBytesReader(c.Writer, io.NopCloser(reader), maxRequestBody)
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}
