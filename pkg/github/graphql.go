package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// graphRequest is the JSON body shape for a GraphQL HTTP request.
type graphRequest struct {
	Query     string `json:"query"`
	Variables any    `json:"variables"`
}

// graphError is a single error entry in a GraphQL response envelope.
type graphError struct {
	Message string `json:"message"`
}

// graphResult is the GraphQL response envelope. A non-empty Errors list
// makes Data unusable even when it is populated.
type graphResult[T any] struct {
	Data   *T           `json:"data"`
	Errors []graphError `json:"errors"`
}

// graphNodes is the shape of a nodes(ids:) query result. Entries are nil
// for identifiers that do not resolve to a node of the fragment type.
type graphNodes[T any] struct {
	Nodes []*T `json:"nodes"`
}

// execute posts a GraphQL query to the API and unwraps the response
// envelope. Go methods cannot be generic, so this is a package-level
// function over *Client.
//
// The envelope is resolved in strict order: a non-empty errors list wins
// over any data (only the first message is kept), then present data is
// returned, and a response with neither fails with ErrMissingData.
func execute[T any](ctx context.Context, c *Client, query string, variables any) (*T, error) {
	body, err := json.Marshal(graphRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("marshal graphql request: %w", err)
	}

	req, err := c.prepare(ctx, true, http.MethodPost, "graphql", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req, "/graphql")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var res graphResult[T]
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		errorsTotal.WithLabelValues(errKindProtocol).Inc()
		return nil, fmt.Errorf("decode graphql response: %w", err)
	}

	if len(res.Errors) > 0 {
		c.logger.Warn().
			Str("message", res.Errors[0].Message).
			Int("errors", len(res.Errors)).
			Msg("GraphQL error")
		errorsTotal.WithLabelValues(errKindGraphQL).Inc()
		return nil, &GraphQLError{Message: res.Errors[0].Message}
	}
	if res.Data == nil {
		errorsTotal.WithLabelValues(errKindProtocol).Inc()
		return nil, ErrMissingData
	}

	return res.Data, nil
}
