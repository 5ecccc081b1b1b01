// Package outline reads change-log documents from a publicly shared Outline
// wiki tree.
package outline

import (
	"context"
	"log/slog"
	"net/http"

	ferrors "git.home.luguber.info/inful/relnotes/internal/foundation/errors"
	"git.home.luguber.info/inful/relnotes/internal/httpclient"
	"git.home.luguber.info/inful/relnotes/internal/logfields"
	"git.home.luguber.info/inful/relnotes/internal/release"
	"git.home.luguber.info/inful/relnotes/internal/sources"
)

// Node is one entry of a shared document tree.
type Node struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Children []Node `json:"children"`
}

type shareInfoResponse struct {
	Data struct {
		SharedTree *Node `json:"sharedTree"`
	} `json:"data"`
}

type documentInfoResponse struct {
	Data struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Text  string `json:"text"`
	} `json:"data"`
}

// Client talks to the Outline API using a share id instead of credentials.
type Client struct {
	api     *httpclient.API
	shareID string
	logger  *slog.Logger
}

func New(httpClient *http.Client, apiBaseURL, shareID, userAgent string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		api:     httpclient.NewAPI(httpClient, apiBaseURL, userAgent),
		shareID: shareID,
		logger:  logger,
	}
}

// SharedTree returns the top-level documents of the share.
func (c *Client) SharedTree(ctx context.Context) ([]Node, error) {
	var resp shareInfoResponse
	if err := c.api.Post(ctx, "shares.info", map[string]string{"id": c.shareID}, &resp); err != nil {
		return nil, err
	}
	if resp.Data.SharedTree == nil {
		return nil, ferrors.ParseError("share has no document tree").
			WithContext("share_id", c.shareID).
			Build()
	}
	return resp.Data.SharedTree.Children, nil
}

// DocumentText returns the Markdown body of one shared document.
func (c *Client) DocumentText(ctx context.Context, id string) (string, error) {
	var resp documentInfoResponse
	body := map[string]string{"id": id, "shareId": c.shareID}
	if err := c.api.Post(ctx, "documents.info", body, &resp); err != nil {
		return "", err
	}
	return resp.Data.Text, nil
}

// Documents fetches every top-level document of the share. A failed listing
// fails the call; a failed document is recorded and skipped.
func (c *Client) Documents(ctx context.Context) (sources.Batch, error) {
	nodes, err := c.SharedTree(ctx)
	if err != nil {
		return sources.Batch{}, err
	}

	batch := sources.Batch{Documents: make([]release.Document, 0, len(nodes))}
	for _, n := range nodes {
		if err := ctx.Err(); err != nil {
			return batch, err
		}
		text, err := c.DocumentText(ctx, n.ID)
		if err != nil {
			c.logger.Warn("Skipping document", logfields.Document(n.Title), logfields.Error(err))
			batch.Failures = append(batch.Failures, sources.Failure{ID: n.ID, Title: n.Title, Err: err})
			continue
		}
		batch.Documents = append(batch.Documents, release.Document{ID: n.ID, Title: n.Title, Body: text})
	}
	c.logger.Info("Fetched shared documents",
		logfields.Count(len(batch.Documents)),
		slog.Int("failed", len(batch.Failures)))
	return batch, nil
}

var _ sources.Source = (*Client)(nil)
