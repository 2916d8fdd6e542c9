package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/teamtools/github-client/internal/testutil"
	"github.com/teamtools/github-client/pkg/github"
)

// setupClient wires a client against a fresh mock GitHub API server.
func setupClient(t *testing.T, token string) (*github.Client, *testutil.MockGitHub) {
	t.Helper()

	mock := testutil.NewMockGitHub()
	t.Cleanup(mock.Close)

	client, err := github.New(github.Config{
		Token:   token,
		BaseURL: mock.URL(),
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	return client, mock
}

func TestRESTLookupEndToEnd(t *testing.T) {
	client, mock := setupClient(t, "")

	mock.SetResponse("/users/octocat", testutil.NewUserResponse(
		`{"id": 583231, "login": "octocat", "name": "The Octocat", "email": null}`,
	))

	user, err := client.User(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("User failed: %v", err)
	}

	if user.ID != 583231 || user.Login != "octocat" {
		t.Errorf("Unexpected user: %+v", user)
	}
	if mock.GetRequestCount() != 1 {
		t.Errorf("RequestCount = %d, want 1", mock.GetRequestCount())
	}
}

func TestBulkResolutionEndToEnd(t *testing.T) {
	client, mock := setupClient(t, "test-token")

	// 150 ids: two chunks, a handful of ids unresolved in each.
	ids := make([]int64, 150)
	for i := range ids {
		ids[i] = int64(i + 1)
	}

	mock.QueueGraphQL(
		chunkResponse(ids[:100], 7),
		chunkResponse(ids[100:], 142),
	)

	names, err := client.Usernames(context.Background(), ids)
	if err != nil {
		t.Fatalf("Usernames failed: %v", err)
	}

	if len(names) != 148 {
		t.Errorf("len(names) = %d, want 148 (two unresolved)", len(names))
	}
	if _, ok := names[7]; ok {
		t.Error("id 7 should be unresolved")
	}
	if names[1] != "user1" || names[150] != "user150" {
		t.Errorf("Unexpected mappings: %q, %q", names[1], names[150])
	}
	if mock.GetGraphQLCount() != 2 {
		t.Errorf("GraphQLCount = %d, want 2", mock.GetGraphQLCount())
	}
}

func TestMissingTokenEndToEnd(t *testing.T) {
	client, mock := setupClient(t, "")

	_, err := client.Usernames(context.Background(), []int64{1, 2, 3})
	if !errors.Is(err, github.ErrMissingToken) {
		t.Fatalf("Expected ErrMissingToken, got %v", err)
	}
	if mock.GetRequestCount() != 0 {
		t.Errorf("RequestCount = %d, want 0 (fail before network)", mock.GetRequestCount())
	}
}

// chunkResponse resolves every id except the skipped one to "user<id>".
func chunkResponse(ids []int64, skip int64) testutil.MockResponse {
	nodes := make([]string, len(ids))
	for i, id := range ids {
		if id == skip {
			nodes[i] = "null"
			continue
		}
		nodes[i] = fmt.Sprintf(`{"databaseId": %d, "login": "user%d"}`, id, id)
	}
	return testutil.NewGraphQLData(`{"nodes": [` + strings.Join(nodes, ", ") + `]}`)
}
