package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"text_trans_api/pkg/docx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBytesTxt(t *testing.T) {
	text, err := FromBytes([]byte("plain text\nwith lines"), "txt")
	require.NoError(t, err)
	assert.Equal(t, "plain text\nwith lines", text)
}

func TestFromBytesTxtInvalidUTF8(t *testing.T) {
	_, err := FromBytes([]byte{0xff, 0xfe, 0xfd}, "txt")
	assert.Error(t, err)
}

func TestFromBytesDocx(t *testing.T) {
	archive := docx.GeneratePlain("first paragraph\nsecond paragraph")

	text, err := FromBytes(archive, "docx")
	require.NoError(t, err)
	assert.Equal(t, "first paragraph\nsecond paragraph", text)
}

func TestFromBytesUnsupported(t *testing.T) {
	_, err := FromBytes([]byte("data"), "exe")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestIsSupportedType(t *testing.T) {
	assert.True(t, IsSupportedType("pdf"))
	assert.True(t, IsSupportedType("docx"))
	assert.True(t, IsSupportedType("txt"))
	assert.False(t, IsSupportedType("doc"))
	assert.False(t, IsSupportedType(""))
}

func TestFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("fetched content"))
	}))
	defer server.Close()

	text, err := FromURL(context.Background(), server.URL+"/file.txt", "txt")
	require.NoError(t, err)
	assert.Equal(t, "fetched content", text)
}

func TestFromURLFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := FromURL(context.Background(), server.URL+"/file.txt", "txt")
	assert.Error(t, err)
}

func TestFromURLUnsupportedTypeSkipsFetch(t *testing.T) {
	// The type check happens before any network call.
	_, err := FromURL(context.Background(), "http://127.0.0.1:0/unreachable", "exe")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
