// Package integration provides end-to-end integration tests for the vault API.
// Tests run against a real database and are skipped when none is reachable.
package integration

import (
	"bytes"
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zasta/tokenvault/internal/app"
	authDomain "github.com/zasta/tokenvault/internal/auth/domain"
	"github.com/zasta/tokenvault/internal/config"
	"github.com/zasta/tokenvault/internal/testutil"
)

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
	dbDriver  string
}

// registeredService holds the credentials of a service created during setup.
type registeredService struct {
	ID     string
	Secret string
	Role   authDomain.Role
}

// makeRequest performs an HTTP request and returns the response and body.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
	bearer string,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// generateMasterKeyHex creates a fresh hex-encoded 32-byte master key for testing.
func generateMasterKeyHex(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err, "failed to generate master key")
	return hex.EncodeToString(key)
}

// setupIntegrationTest initializes all components for integration testing.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	var db *sql.DB
	var dsn string
	if dbDriver == "postgres" {
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
	} else {
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
	}

	cfg := &config.Config{
		DBDriver:                dbDriver,
		DBConnectionString:      dsn,
		DBMaxOpenConnections:    10,
		DBMaxIdleConnections:    5,
		DBConnMaxLifetime:       time.Hour,
		ServerHost:              "localhost",
		ServerPort:              8080,
		LogLevel:                "error",
		MasterKeyHex:            generateMasterKeyHex(t),
		CredentialSigningSecret: "integration-test-signing-secret",
		CredentialExpiration:    time.Hour,
		TokenizeParallelism:     4,
	}

	container := app.NewContainer(cfg)

	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to get HTTP server")

	router := httpSrv.GetRouter()
	require.NotNil(t, router, "router should not be nil after SetupRouter")

	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		if err := container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: container shutdown: %v", err)
		}
		testutil.TeardownDB(t, db)
	})

	return &integrationTestContext{
		container: container,
		db:        db,
		server:    server,
		dbDriver:  dbDriver,
	}
}

// registerService creates a service with the given role and returns its credentials.
func (ctx *integrationTestContext) registerService(
	t *testing.T,
	serviceID string,
	role authDomain.Role,
) registeredService {
	t.Helper()

	authUseCase, err := ctx.container.AuthUseCase()
	require.NoError(t, err, "failed to get auth use case")

	output, err := authUseCase.CreateService(context.Background(), &authDomain.CreateServiceInput{
		ID:   serviceID,
		Role: role,
	})
	require.NoError(t, err, "failed to create service")

	return registeredService{
		ID:     output.ID,
		Secret: output.PlainSecret,
		Role:   output.Role,
	}
}

// authenticate exchanges a service's secret for a bearer credential.
func (ctx *integrationTestContext) authenticate(t *testing.T, svc registeredService) string {
	t.Helper()

	resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/auth", map[string]string{
		"service_id": svc.ID,
		"secret":     svc.Secret,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, "auth failed: %s", string(body))

	var authResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &authResp))
	require.NotEmpty(t, authResp.Token)

	return authResp.Token
}

// runAPITests runs the full endpoint suite against the given database driver.
func runAPITests(t *testing.T, dbDriver string) {
	ctx := setupIntegrationTest(t, dbDriver)

	tokenizer := ctx.registerService(t, "tokenizer-svc", authDomain.TokenizerRole)
	detokenizer := ctx.registerService(t, "detokenizer-svc", authDomain.DetokenizerRole)
	visitor := ctx.registerService(t, "visitor-svc", authDomain.VisitorRole)

	tokenizerCred := ctx.authenticate(t, tokenizer)
	detokenizerCred := ctx.authenticate(t, detokenizer)
	visitorCred := ctx.authenticate(t, visitor)

	t.Run("health", func(t *testing.T) {
		resp, body := ctx.makeRequest(t, http.MethodGet, "/health", nil, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "healthy")
	})

	t.Run("ready", func(t *testing.T) {
		resp, body := ctx.makeRequest(t, http.MethodGet, "/ready", nil, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "ready")
	})

	t.Run("auth rejects wrong secret", func(t *testing.T) {
		resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/auth", map[string]string{
			"service_id": tokenizer.ID,
			"secret":     "wrong-secret",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("auth rejects unknown service with same status", func(t *testing.T) {
		resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/auth", map[string]string{
			"service_id": "no-such-service",
			"secret":     "whatever-secret",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	var issuedTokens map[string]string

	t.Run("tokenize and detokenize round trip", func(t *testing.T) {
		fields := map[string]string{
			"card_number": "4111111111111111",
			"cvv":         "123",
		}

		resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/tokenize", map[string]interface{}{
			"id":   "req-1",
			"data": fields,
		}, tokenizerCred)
		require.Equal(t, http.StatusCreated, resp.StatusCode, "tokenize failed: %s", string(body))

		var tokenizeResp struct {
			ID   string            `json:"id"`
			Data map[string]string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(body, &tokenizeResp))
		assert.Equal(t, "req-1", tokenizeResp.ID)
		require.Len(t, tokenizeResp.Data, len(fields))

		for name, token := range tokenizeResp.Data {
			assert.NotEmpty(t, token)
			assert.NotEqual(t, fields[name], token, "token must not equal the original value")
		}
		assert.NotEqual(t, tokenizeResp.Data["card_number"], tokenizeResp.Data["cvv"])

		issuedTokens = tokenizeResp.Data

		resp, body = ctx.makeRequest(t, http.MethodPost, "/v1/detokenize", map[string]interface{}{
			"id":   "req-2",
			"data": issuedTokens,
		}, detokenizerCred)
		require.Equal(t, http.StatusOK, resp.StatusCode, "detokenize failed: %s", string(body))

		var detokenizeResp struct {
			ID   string `json:"id"`
			Data map[string]struct {
				Found bool   `json:"found"`
				Value string `json:"value"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(body, &detokenizeResp))
		assert.Equal(t, "req-2", detokenizeResp.ID)

		for name, value := range fields {
			result, ok := detokenizeResp.Data[name]
			require.True(t, ok, "missing field %s in response", name)
			assert.True(t, result.Found)
			assert.Equal(t, value, result.Value)
		}
	})

	t.Run("detokenize reports unknown tokens per field", func(t *testing.T) {
		resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/detokenize", map[string]interface{}{
			"id": "req-3",
			"data": map[string]string{
				"known":     issuedTokens["card_number"],
				"unknown":   "9e7e14d4-8a25-4e39-b4a4-0b2b1b9b7c11",
				"malformed": "not-a-token",
			},
		}, detokenizerCred)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var detokenizeResp struct {
			Data map[string]struct {
				Found bool   `json:"found"`
				Value string `json:"value"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(body, &detokenizeResp))

		assert.True(t, detokenizeResp.Data["known"].Found)
		assert.False(t, detokenizeResp.Data["unknown"].Found)
		assert.Empty(t, detokenizeResp.Data["unknown"].Value)
		assert.False(t, detokenizeResp.Data["malformed"].Found)
	})

	t.Run("detokenizer can tokenize", func(t *testing.T) {
		resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/tokenize", map[string]interface{}{
			"id":   "req-4",
			"data": map[string]string{"field1": "value1"},
		}, detokenizerCred)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("tokenizer cannot detokenize", func(t *testing.T) {
		resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/detokenize", map[string]interface{}{
			"id":   "req-5",
			"data": map[string]string{"field1": issuedTokens["card_number"]},
		}, tokenizerCred)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("visitor cannot tokenize or detokenize", func(t *testing.T) {
		for _, path := range []string{"/v1/tokenize", "/v1/detokenize"} {
			resp, _ := ctx.makeRequest(t, http.MethodPost, path, map[string]interface{}{
				"id":   "req-6",
				"data": map[string]string{"field1": "value1"},
			}, visitorCred)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
		}
	})

	t.Run("vault endpoints require a credential", func(t *testing.T) {
		resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/tokenize", map[string]interface{}{
			"id":   "req-7",
			"data": map[string]string{"field1": "value1"},
		}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("stored values are encrypted at rest", func(t *testing.T) {
		token, ok := issuedTokens["card_number"]
		require.True(t, ok)

		var ciphertext []byte
		query := "SELECT ciphertext FROM vault_records WHERE token = $1"
		if ctx.dbDriver == "mysql" {
			query = "SELECT ciphertext FROM vault_records WHERE token = ?"
		}
		err := ctx.db.QueryRow(query, token).Scan(&ciphertext)
		require.NoError(t, err)

		assert.NotContains(t, string(ciphertext), "4111111111111111")
	})

	t.Run("tokenize validates payload", func(t *testing.T) {
		resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/tokenize", map[string]interface{}{
			"id":   "req-8",
			"data": map[string]string{},
		}, tokenizerCred)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestAPI_PostgreSQL(t *testing.T) {
	runAPITests(t, "postgres")
}

func TestAPI_MySQL(t *testing.T) {
	runAPITests(t, "mysql")
}
