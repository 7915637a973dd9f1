package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/nutri-api/pkg/errors"
)

func TestConstructors(t *testing.T) {
	ok := Success("x")
	assert.True(t, ok.OK())
	assert.Equal(t, "x", ok.Value())
	assert.Equal(t, http.StatusOK, ok.Status)
	assert.Equal(t, "OK", ok.StatusText)

	created := Created(42)
	assert.Equal(t, http.StatusCreated, created.Status)
	assert.Equal(t, "Created", created.StatusText)

	empty := NoContent[int]()
	assert.Nil(t, empty.Data)
	assert.Equal(t, "No Content", empty.StatusText)

	nf := NotFound[string]("Patient")
	assert.False(t, nf.OK())
	assert.Equal(t, errors.CodeNotFound, nf.Error.Code)
	assert.Equal(t, "Patient not found", nf.Error.Message)
	assert.Equal(t, http.StatusNotFound, nf.Status)

	unauth := Unauthorized[string]()
	assert.Equal(t, "User not authenticated", unauth.Error.Message)
	assert.Equal(t, http.StatusUnauthorized, unauth.Status)

	custom := ErrorResponse[string]("TEAPOT", "short and stout", 418)
	assert.Equal(t, "Unknown", custom.StatusText)
}

func TestFailWithPlainError(t *testing.T) {
	resp := Fail[string](fmt.Errorf("network down"))
	assert.Equal(t, errors.CodeUnknown, resp.Error.Code)
	assert.Equal(t, "network down", resp.Error.Message)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
}

func TestForwardKeepsFailure(t *testing.T) {
	src := BadRequest[int]("Name is required")
	dst := Forward[string](src)
	assert.Equal(t, src.Error, dst.Error)
	assert.Equal(t, http.StatusBadRequest, dst.Status)
	assert.Equal(t, errors.CodeBadRequest, dst.Err().Code)
}

func TestWrite(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("json envelope", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		Write(c, NotFound[map[string]string]("Patient"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Nil(t, body["data"])
		assert.Equal(t, "Not Found", body["statusText"])
		assert.Equal(t, "NOT_FOUND", body["error"].(map[string]any)["code"])
	})

	t.Run("no content", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		Write(c, NoContent[struct{}]())
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}
