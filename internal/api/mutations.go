package api

import (
	"context"
	"errors"
	"fmt"

	graphql "github.com/hasura/go-graphql-client"
)

// UpdateNickname sets the authenticated user's nickname.
func (c *Client) UpdateNickname(ctx context.Context, nickname string) error {
	var m struct {
		UpdateNickname struct {
			ID    *int    `graphql:"id"`
			Error *string `graphql:"error"`
		} `graphql:"update_nickname(nickname: $nickname)"`
	}

	vars := map[string]interface{}{
		"nickname": graphql.String(nickname),
	}

	if err := c.Mutate(ctx, &m, vars); err != nil {
		return fmt.Errorf("update nickname: %w", err)
	}

	if m.UpdateNickname.ID == nil {
		errMsg := "unknown error"
		if m.UpdateNickname.Error != nil && *m.UpdateNickname.Error != "" {
			errMsg = *m.UpdateNickname.Error
		}
		return fmt.Errorf("update nickname: %w", &Error{
			Op:   "mutate",
			Kind: KindServer,
			Err:  errors.New(errMsg),
		})
	}
	return nil
}
