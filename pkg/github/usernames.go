package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"slices"
)

// maxNodeIDs is the largest number of node identifiers the GitHub GraphQL
// API accepts in a single nodes(ids:) query.
const maxNodeIDs = 100

const usernamesQuery = `
	query($ids: [ID!]!) {
		nodes(ids: $ids) {
			... on User {
				databaseId
				login
			}
		}
	}
`

// Usernames resolves numeric user ids to logins in bulk. The input is
// windowed into chunks of at most 100 ids, one GraphQL query per chunk,
// processed sequentially. Ids that do not resolve to a User node are
// skipped. Any chunk failure aborts the whole call; no partial map is
// returned.
func (c *Client) Usernames(ctx context.Context, ids []int64) (map[int64]string, error) {
	type userNode struct {
		DatabaseID int64  `json:"databaseId"`
		Login      string `json:"login"`
	}
	type params struct {
		IDs []string `json:"ids"`
	}

	result := make(map[int64]string, len(ids))
	for chunk := range slices.Chunk(ids, maxNodeIDs) {
		nodeIDs := make([]string, len(chunk))
		for i, id := range chunk {
			nodeIDs[i] = UserNodeID(id)
		}

		res, err := execute[graphNodes[userNode]](ctx, c, usernamesQuery, params{IDs: nodeIDs})
		if err != nil {
			return nil, err
		}

		for _, node := range res.Nodes {
			if node == nil {
				continue
			}
			result[node.DatabaseID] = node.Login
		}
	}

	c.logger.Debug().
		Int("requested", len(ids)).
		Int("resolved", len(result)).
		Msg("Resolved usernames")

	return result, nil
}

// UserNodeID encodes a numeric user id as the platform's opaque global
// node identifier. The "04:User" prefix must match the schema version in
// use exactly: a wrong prefix does not error, it makes every lookup
// resolve to not-found.
func UserNodeID(id int64) string {
	return base64.StdEncoding.EncodeToString(fmt.Appendf(nil, "04:User%d", id))
}
