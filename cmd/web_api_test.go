package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const lookupDescription = `{
	"degree": 1,
	"gates": ["RandomAccessGate { vec_size: 3 }<D=1>"],
	"rows": [{"gate": 0, "wires": {"0": 1, "1": %s, "2": 5, "3": 9, "4": 2}}],
	"public_inputs_hash": [0, 0, 0, 0]
}`

func postCheck(t *testing.T, body string) (int, map[string]interface{}) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodPost, "/check", strings.NewReader(body))
	require.NoError(t, err)
	newRouter().ServeHTTP(w, req)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w.Code, response
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/health", nil)
	require.NoError(t, err)
	newRouter().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestCheckEndpoint(t *testing.T) {
	code, response := postCheck(t, strings.Replace(lookupDescription, "%s", "9", 1))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, float64(1), response["rows"])

	// Three equality dummies and three index matches.
	wires := response["wires"].([]interface{})
	require.Len(t, wires, 6)
	last := wires[5].(map[string]interface{})
	require.Equal(t, float64(10), last["column"])
	require.Equal(t, float64(0), last["value"])
}

func TestCheckEndpointFailures(t *testing.T) {
	code, response := postCheck(t, strings.Replace(lookupDescription, "%s", "5", 1))
	require.Equal(t, http.StatusUnprocessableEntity, code)
	require.Equal(t, float64(0), response["row"])
	require.Equal(t, float64(5), response["constraint"])

	code, _ = postCheck(t, `{"gates": ["UnknownGate"]}`)
	require.Equal(t, http.StatusBadRequest, code)

	code, response = postCheck(t, `{"gates": ["RandomAccessGate { vec_size: 3 }<D=1>"], "rows": [{"gate": 0}]}`)
	require.Equal(t, http.StatusBadRequest, code)
	require.Contains(t, response["error"], "invalid circuit description")

	code, response = postCheck(t, `{"degree": 3, "gates": ["NoopGate"], "rows": [{"gate": 0}]}`)
	require.Equal(t, http.StatusBadRequest, code)
	require.Contains(t, response["error"], "unsupported extension degree 3")

	code, response = postCheck(t, strings.Replace(strings.Replace(lookupDescription, "%s", "9", 1), `"0": 1`, `"0": 7`, 1))
	require.Equal(t, http.StatusUnprocessableEntity, code)
	require.Contains(t, response["error"], "access index out of range")
}
