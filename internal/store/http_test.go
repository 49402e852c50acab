package store

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer mimics the /api/data endpoints over an in-memory map.
func fakeServer(t *testing.T, token string) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	docs := map[string][]byte{}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if token != "" && c.GetHeader("Authorization") != "Bearer "+token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	})
	r.GET("/api/data/:key", func(c *gin.Context) {
		data, ok := docs[c.Param("key")]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.Data(http.StatusOK, "application/json", data)
	})
	r.POST("/api/data/:key", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		docs[c.Param("key")] = body
		c.JSON(http.StatusOK, gin.H{"message": "Data saved successfully"})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPStore(t *testing.T) {
	srv := fakeServer(t, "tok")
	exerciseStore(t, NewHTTPStore(srv.URL, "tok"))
}

func TestHTTPStore_Unauthorized(t *testing.T) {
	srv := fakeServer(t, "tok")
	s := NewHTTPStore(srv.URL, "wrong")

	_, err := s.Load(context.Background(), "sari")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")

	err = s.Save(context.Background(), "sari", sampleSnapshot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestHTTPStore_Unreachable(t *testing.T) {
	srv := fakeServer(t, "")
	url := srv.URL
	srv.Close()

	_, err := NewHTTPStore(url, "").Load(context.Background(), "sari")
	assert.Error(t, err)
}
