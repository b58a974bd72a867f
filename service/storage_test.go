package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentType(t *testing.T) {
	assert.Contains(t, contentType("deck_linear_view.html"), "text/html")
	assert.Equal(t, "application/pdf", contentType("deck_linear_view.pdf"))
	assert.Equal(t, "application/octet-stream", contentType("deck"))
}

func TestContentDisposition(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{"deck_linear_view.html", "attachment; filename=deck_linear_view.html"},
		{"a;b,c.html", `attachment; filename="a;b,c.html"`},
		{`say "hi".html`, `attachment; filename="say \"hi\".html"`},
		{"資料.html", "attachment; filename*=utf-8''%E8%B3%87%E6%96%99.html"},
	}
	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentDisposition(tt.fileName))
		})
	}
}
