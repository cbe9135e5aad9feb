package portal_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/clienthub/pkg/cryptox"
	"github.com/aussiebroadwan/clienthub/pkg/jwtx"
	"github.com/aussiebroadwan/clienthub/pkg/portalsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for portal service end-to-end tests.
 * The identity provider is simulated in-process: the test owns the signing
 * key and hands the container its public JWKS inline.
 */

const (
	testImageName = "clienthub-portal-test:latest"

	identityIssuer   = "https://id.agency.com"
	identityAudience = "portal"
	staffDomain      = "agency.com"
)

type principal struct {
	id, email, name, role string
}

var (
	staffUser  = principal{"staff-1", "jordan@agency.com", "Jordan Staff", "staff"}
	clientUser = principal{"client-1", "sarah@acme.com", "Sarah Connor", "client"}
	otherUser  = principal{"client-2", "john@acme.com", "John Connor", "client"}
	outsider   = principal{"client-9", "eve@evil.com", "Eve", "client"}
)

var idp jwtx.Signer

// TestMain builds the Docker image once before all tests and cleans it up
// after all tests complete. Without a docker binary the suite is skipped.
func TestMain(m *testing.M) {
	if _, err := exec.LookPath("docker"); err != nil {
		fmt.Fprintln(os.Stdout, "docker not available, skipping portal e2e tests")
		os.Exit(0)
	}

	pemKey, err := cryptox.GenerateEd25519Key()
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate identity key: %v\n", err)
		os.Exit(1)
	}
	if idp, err = jwtx.NewSignerEdDSA("e2e-idp", pemKey); err != nil {
		fmt.Fprintf(os.Stderr, "create identity signer: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Building Portal Service Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Portal Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/portal/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// publicJWKS renders the simulated provider's key set.
func publicJWKS(t *testing.T) string {
	t.Helper()

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(idp))
	raw, err := json.Marshal(keys.PublicJWKS())
	require.NoError(t, err)
	return string(raw)
}

// setupPortalContainer starts the portal service with relaxed rate limits
// and returns an SDK client pointed at it.
func setupPortalContainer(t *testing.T) *portalsdk.Client {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"ENV":                  "test",
			"LOG_LEVEL":            "info",
			"LOG_FORMAT":           "json",
			"PORTAL_DATABASE_FILE": "/tmp/portal.db",
			"PORTAL_STAFF_DOMAIN":  staffDomain,
			"IDENTITY_ISSUER":      identityIssuer,
			"IDENTITY_AUDIENCE":    identityAudience,
			"IDENTITY_JWKS":        publicJWKS(t),

			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
		},
		WaitingFor: wait.ForHTTP("/readyz").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return portalsdk.NewClient(fmt.Sprintf("http://%s:%s", host, mappedPort.Port()))
}

// sessionFor signs a session token for p as the identity provider would.
func sessionFor(t *testing.T, c *portalsdk.Client, p principal) *portalsdk.Session {
	t.Helper()

	claims := jwtx.NewSessionClaims(p.id, p.email, p.name, p.role, time.Hour,
		identityIssuer, []string{identityAudience}, time.Now().UTC())
	token, err := idp.Sign(claims)
	require.NoError(t, err)
	return c.Session(token)
}

func requireAPIError(t *testing.T, err error, status int, code string) *portalsdk.APIError {
	t.Helper()

	var apiErr *portalsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
	return apiErr
}
