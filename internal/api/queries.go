package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	graphql "github.com/hasura/go-graphql-client"
)

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var q struct {
		Me []struct {
			ID        int      `graphql:"id"`
			Nickname  string   `graphql:"nickname"`
			Email     *string  `graphql:"email"`
			ImageURL  *string  `graphql:"image_url"`
			HobbyTags []string `graphql:"hobby_tags"`
			CreatedAt string   `graphql:"created_at"`
		} `graphql:"me"`
	}

	if err := c.Query(ctx, &q, nil); err != nil {
		return nil, fmt.Errorf("query me: %w", err)
	}
	if len(q.Me) == 0 {
		return nil, fmt.Errorf("query me: %w", &Error{
			Op:   "query",
			Kind: KindServer,
			Err:  errors.New("not authenticated or no user found"),
		})
	}

	me := q.Me[0]
	tags := me.HobbyTags
	if tags == nil {
		tags = []string{}
	}
	return &Profile{
		ID:        me.ID,
		Nickname:  me.Nickname,
		Email:     me.Email,
		ImageURL:  me.ImageURL,
		HobbyTags: tags,
		CreatedAt: parseTimestamp(me.CreatedAt),
	}, nil
}

// CheckNickname asks the service whether candidate is already taken.
func (c *Client) CheckNickname(ctx context.Context, candidate string) (*NicknameCheck, error) {
	var q struct {
		CheckNickname struct {
			Exists  bool    `graphql:"exists"`
			Message *string `graphql:"message"`
		} `graphql:"check_nickname(nickname: $nickname)"`
	}

	vars := map[string]interface{}{
		"nickname": graphql.String(candidate),
	}

	if err := c.Query(ctx, &q, vars); err != nil {
		return nil, fmt.Errorf("query check_nickname: %w", err)
	}

	res := &NicknameCheck{Exists: q.CheckNickname.Exists}
	if q.CheckNickname.Message != nil {
		res.Message = *q.CheckNickname.Message
	}
	return res, nil
}

// parseTimestamp accepts the timestamp layouts the service is known to emit.
// Unparseable values yield the zero time.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
