package server

import (
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var gzipPool = sync.Pool{
	New: func() interface{} {
		return gzip.NewWriter(io.Discard)
	},
}

var zstdPool = sync.Pool{
	New: func() interface{} {
		w, _ := zstd.NewWriter(io.Discard, zstd.WithEncoderLevel(zstd.SpeedFastest))
		return w
	},
}

// encodingResponseWriter routes the body through a compressing writer.
type encodingResponseWriter struct {
	io.Writer
	http.ResponseWriter
}

func (w *encodingResponseWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

// Content-Length describes the uncompressed body, so drop it before
// the status goes out.
func (w *encodingResponseWriter) WriteHeader(code int) {
	w.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(code)
}

// compressHandler negotiates a response encoding from Accept-Encoding,
// preferring zstd over gzip.
func compressHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept := r.Header.Get("Accept-Encoding")
		switch {
		case strings.Contains(accept, "zstd"):
			zw := zstdPool.Get().(*zstd.Encoder)
			zw.Reset(w)
			defer func() {
				_ = zw.Close()
				zstdPool.Put(zw)
			}()
			w.Header().Set("Content-Encoding", "zstd")
			next.ServeHTTP(&encodingResponseWriter{Writer: zw, ResponseWriter: w}, r)
		case strings.Contains(accept, "gzip"):
			gz := gzipPool.Get().(*gzip.Writer)
			gz.Reset(w)
			defer func() {
				_ = gz.Close()
				gzipPool.Put(gz)
			}()
			w.Header().Set("Content-Encoding", "gzip")
			next.ServeHTTP(&encodingResponseWriter{Writer: gz, ResponseWriter: w}, r)
		default:
			next.ServeHTTP(w, r)
		}
	})
}
